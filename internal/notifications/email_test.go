package notifications

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"

	"InfraDash/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smtpServer speaks just enough SMTP for net/smtp and records each message
type smtpServer struct {
	ln       net.Listener
	mu       sync.Mutex
	messages []string
	rcpts    []string
	// rejectData fails every DATA with a 554
	rejectData bool
}

func newSMTPServer(t *testing.T) *smtpServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &smtpServer{ln: ln}
	t.Cleanup(func() { ln.Close() })
	go s.serve()
	return s
}

func (s *smtpServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *smtpServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *smtpServer) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }

	reply("220 localhost ESMTP")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
			reply("250 localhost")
		case strings.HasPrefix(cmd, "MAIL FROM"):
			reply("250 OK")
		case strings.HasPrefix(cmd, "RCPT TO"):
			s.mu.Lock()
			s.rcpts = append(s.rcpts, strings.TrimSpace(line[len("RCPT TO:"):]))
			s.mu.Unlock()
			reply("250 OK")
		case cmd == "DATA":
			if s.rejectData {
				reply("554 no thanks")
				continue
			}
			reply("354 go ahead")
			var body strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				body.WriteString(l)
			}
			s.mu.Lock()
			s.messages = append(s.messages, body.String())
			s.mu.Unlock()
			reply("250 queued")
		case cmd == "QUIT":
			reply("221 bye")
			return
		default:
			reply("502 not implemented")
		}
	}
}

func emailConfig(port int) *config.Config {
	cfg := config.GetDefaultConfig()
	cfg.Notifications.Email = config.EmailConfig{
		Enabled:         true,
		SMTPServer:      "127.0.0.1",
		SMTPPort:        port,
		SenderEmail:     "dash@example.com",
		SenderName:      "InfraDash",
		RecipientEmails: []string{"ops@example.com", "oncall@example.com"},
		Timeout:         5,
	}
	return cfg
}

func TestSendEmailDeliversHTML(t *testing.T) {
	srv := newSMTPServer(t)
	m := NewEmailManager(emailConfig(srv.port()))

	require.NoError(t, m.SendEmail(context.Background(), "Redis is down", "<p>down</p>"))

	srv.mu.Lock()
	defer srv.mu.Unlock()
	require.Len(t, srv.messages, 1)
	msg := srv.messages[0]
	assert.Contains(t, msg, "Subject: [InfraDash] Redis is down\r\n")
	assert.Contains(t, msg, "From: InfraDash <dash@example.com>\r\n")
	assert.Contains(t, msg, "To: ops@example.com, oncall@example.com\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, msg, "<p>down</p>")
	assert.Equal(t, []string{"<ops@example.com>", "<oncall@example.com>"}, srv.rcpts)
}

func TestSendEmailRetriesThenFails(t *testing.T) {
	srv := newSMTPServer(t)
	srv.rejectData = true

	cfg := emailConfig(srv.port())
	cfg.Notifications.Email.RetryCount = 2
	cfg.Notifications.Email.RetryInterval = 0

	err := NewEmailManager(cfg).SendEmail(context.Background(), "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestSendEmailDisabled(t *testing.T) {
	cfg := emailConfig(25)
	cfg.Notifications.Email.Enabled = false
	assert.ErrorIs(t, NewEmailManager(cfg).SendEmail(context.Background(), "s", "b"), ErrDisabled)
}

func TestSendEmailUnreachableServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	err = NewEmailManager(emailConfig(port)).SendEmail(context.Background(), "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:"+strconv.Itoa(port))
}
