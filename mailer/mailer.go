package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
	"sync"
)

// EmailConfig holds the per-user SMTP settings entered at runtime.
// Credentials live in process memory only and are never written to the store.
type EmailConfig struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	SMTPHost     string `json:"smtp_host"`
	SMTPPort     int    `json:"smtp_port"`
	ReminderDays int    `json:"reminder_days"`
}

// ConfigStore keeps each user's email configuration for the lifetime of
// the process, keyed by user ID.
type ConfigStore struct {
	mu      sync.RWMutex
	configs map[uint]EmailConfig
}

func NewConfigStore() *ConfigStore {
	return &ConfigStore{configs: make(map[uint]EmailConfig)}
}

func (s *ConfigStore) Set(userID uint, cfg EmailConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[userID] = cfg
}

func (s *ConfigStore) Get(userID uint) (EmailConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[userID]
	return cfg, ok
}

// Sender delivers a single HTML email. Split out as an interface so
// handlers can be exercised without a live SMTP server.
type Sender interface {
	Send(cfg EmailConfig, to, subject, htmlBody string) error
}

// SMTPSender sends mail synchronously over SMTP with STARTTLS and LOGIN
// auth. No retry and no delivery tracking beyond the synchronous response.
type SMTPSender struct{}

func (SMTPSender) Send(cfg EmailConfig, to, subject, htmlBody string) error {
	var msg strings.Builder
	msg.WriteString("From: " + cfg.Email + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	auth := smtp.PlainAuth("", cfg.Email, cfg.Password, cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)

	return smtp.SendMail(addr, auth, cfg.Email, []string{to}, []byte(msg.String()))
}
