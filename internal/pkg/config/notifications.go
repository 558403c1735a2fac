package config

import "fmt"

// NotificationsConfig holds alert delivery settings
type NotificationsConfig struct {
	Email EmailConfig `yaml:"email"`
	// Cooldown in seconds between repeated alerts for a component that
	// stays down. Status changes are never held back.
	Cooldown int `yaml:"cooldown"`
}

// EmailConfig holds SMTP settings
type EmailConfig struct {
	Enabled         bool     `yaml:"enabled"`
	SMTPServer      string   `yaml:"smtp_server"`
	SMTPPort        int      `yaml:"smtp_port"`
	UseTLS          bool     `yaml:"use_tls"` // STARTTLS when offered
	UseSSL          bool     `yaml:"use_ssl"` // implicit TLS
	Username        string   `yaml:"username"`
	Password        string   `yaml:"password"`
	SenderEmail     string   `yaml:"sender_email"`
	SenderName      string   `yaml:"sender_name"`
	RecipientEmails []string `yaml:"recipient_emails"`
	Timeout         int      `yaml:"timeout"`
	RetryCount      int      `yaml:"retry_count"`
	RetryInterval   int      `yaml:"retry_interval"`
}

func (n NotificationsConfig) validate() error {
	if !n.Email.Enabled {
		return nil
	}
	if n.Email.SMTPServer == "" || n.Email.SMTPPort <= 0 {
		return fmt.Errorf("notifications.email needs smtp_server and smtp_port")
	}
	if n.Email.SenderEmail == "" || len(n.Email.RecipientEmails) == 0 {
		return fmt.Errorf("notifications.email needs sender_email and recipient_emails")
	}
	if n.Cooldown < 0 || n.Email.RetryCount < 0 {
		return fmt.Errorf("notifications cooldown and retry_count must not be negative")
	}
	return nil
}
