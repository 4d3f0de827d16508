package mailer

import (
	"testing"
	"time"

	"interviewprep/models"

	"github.com/stretchr/testify/assert"
)

func TestConfigStore(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get(1)
	assert.False(t, ok)

	cfg := EmailConfig{
		Email:        "a@x.com",
		Password:     "app-password",
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		ReminderDays: 1,
	}
	store.Set(1, cfg)

	got, ok := store.Get(1)
	assert.True(t, ok)
	assert.Equal(t, cfg, got)

	// Configs are per user.
	_, ok = store.Get(2)
	assert.False(t, ok)

	// Saving again overwrites.
	cfg.SMTPPort = 465
	store.Set(1, cfg)
	got, _ = store.Get(1)
	assert.Equal(t, 465, got.SMTPPort)
}

func TestReminderTemplates(t *testing.T) {
	iv := &models.Interview{
		CompanyName:      "Acme",
		Role:             "SWE",
		InterviewDate:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		PreparationLevel: 3,
	}

	assert.Equal(t, "Interview Reminder: Acme - SWE", ReminderSubject(iv))

	body := ReminderBody(iv)
	assert.Contains(t, body, "Acme")
	assert.Contains(t, body, "SWE")
	assert.Contains(t, body, "January 10, 2025")
	assert.Contains(t, body, "***")

	assert.Contains(t, TestBody(), "Test Email Successful")
}
