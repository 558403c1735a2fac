// Package notifications delivers alert messages to operators
package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"InfraDash/internal/pkg/config"
	"InfraDash/internal/pkg/logger"
)

// ErrDisabled is returned when email notifications are switched off
var ErrDisabled = errors.New("email notifications are disabled")

// EmailManager handles sending email notifications
type EmailManager struct {
	cfg     config.EmailConfig
	appName string
}

// NewEmailManager creates a new instance of EmailManager
func NewEmailManager(cfg *config.Config) *EmailManager {
	return &EmailManager{cfg: cfg.Notifications.Email, appName: cfg.AppName}
}

// SendEmail sends an HTML email to every configured recipient, retrying
// retry_count times. It gives up early when ctx is done.
func (e *EmailManager) SendEmail(ctx context.Context, subject, body string) error {
	if !e.cfg.Enabled {
		logger.Debug("Email notifications are disabled")
		return ErrDisabled
	}

	subject = fmt.Sprintf("[%s] %s", e.appName, subject)
	msg := e.buildMessage(subject, body)
	addr := net.JoinHostPort(e.cfg.SMTPServer, fmt.Sprint(e.cfg.SMTPPort))
	retryInterval := time.Duration(e.cfg.RetryInterval) * time.Second

	var lastErr error
	for attempt := 0; attempt <= e.cfg.RetryCount; attempt++ {
		if attempt > 0 {
			logger.Info("Retrying email sending",
				logger.Int("attempt", attempt+1),
				logger.Int("max_attempts", e.cfg.RetryCount+1))
			select {
			case <-ctx.Done():
				return fmt.Errorf("email sending cancelled: %w", ctx.Err())
			case <-time.After(retryInterval):
			}
		}

		lastErr = e.send(ctx, addr, msg)
		if lastErr == nil {
			logger.Info("Email sent successfully",
				logger.String("subject", subject),
				logger.Int("recipients", len(e.cfg.RecipientEmails)),
				logger.Int("attempt", attempt+1))
			return nil
		}

		logger.Warn("Attempt to send email failed",
			logger.Err(lastErr),
			logger.Int("attempt", attempt+1),
			logger.Int("remaining_retries", e.cfg.RetryCount-attempt))
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", e.cfg.RetryCount+1, lastErr)
}

func (e *EmailManager) buildMessage(subject, body string) []byte {
	from := e.cfg.SenderEmail
	if e.cfg.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", e.cfg.SenderName, e.cfg.SenderEmail)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(e.cfg.RecipientEmails, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(body)
	return msg.Bytes()
}

// send runs one SMTP session
func (e *EmailManager) send(ctx context.Context, addr string, msg []byte) error {
	timeout := time.Duration(e.cfg.Timeout) * time.Second
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	dialer := &net.Dialer{KeepAlive: 30 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	tlsConfig := &tls.Config{ServerName: e.cfg.SMTPServer, MinVersion: tls.VersionTLS12}
	if e.cfg.UseSSL {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, e.cfg.SMTPServer)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if e.cfg.UseTLS && !e.cfg.UseSSL {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("STARTTLS failed: %w", err)
			}
		}
	}

	if e.cfg.Username != "" {
		auth := smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.SMTPServer)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(e.cfg.SenderEmail); err != nil {
		return fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	for _, rcpt := range e.cfg.RecipientEmails {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO %s rejected: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA rejected: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("message rejected: %w", err)
	}

	return client.Quit()
}
