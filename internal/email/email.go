// Package email sends application packages (cover letter plus resume
// reference) over SMTP.
package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

// Message is one outgoing email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Error represents a send failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("email error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("email error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Sender delivers messages through one SMTP account.
type Sender struct {
	cfg  Config
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSender validates the configuration and returns a Sender.
func NewSender(cfg Config) (*Sender, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, &Error{Message: "SMTP host and port are required"}
	}
	if cfg.From == "" {
		return nil, &Error{Message: "from address is required"}
	}
	return &Sender{cfg: cfg, send: smtp.SendMail}, nil
}

// Send delivers one message.
func (s *Sender) Send(msg Message) error {
	if len(msg.To) == 0 {
		return &Error{Message: "no recipients"}
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.From, msg.To, BuildMIME(s.cfg.From, msg)); err != nil {
		return &Error{Message: "send failed", Cause: err}
	}
	return nil
}

// BuildMIME renders the RFC 5322 message bytes.
func BuildMIME(from string, msg Message) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&sb, "Subject: %s\r\n", sanitizeHeader(msg.Subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(msg.Body)
	return []byte(sb.String())
}

// sanitizeHeader strips CR/LF so user-provided subjects cannot inject
// additional headers.
func sanitizeHeader(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.ReplaceAll(value, "\n", " ")
}
