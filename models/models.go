package models

import (
	"time"

	"gorm.io/gorm"
)

// Interview status values. The four stages an application moves through.
const (
	StatusApplied     = "Applied"
	StatusInterviewed = "Interviewed"
	StatusSelected    = "Selected"
	StatusRejected    = "Rejected"
)

// Statuses lists every valid interview status in display order.
var Statuses = []string{StatusApplied, StatusInterviewed, StatusSelected, StatusRejected}

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	LastLogin    *time.Time
}

type Interview struct {
	gorm.Model
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	CompanyName      string    `gorm:"not null" json:"company_name"`
	Role             string    `gorm:"not null" json:"role"`
	InterviewDate    time.Time `json:"interview_date"`
	Status           string    `gorm:"default:Applied" json:"status"`
	PreparationLevel int       `json:"preparation_level"`
	Notes            string    `json:"notes"`
	TechnicalTopics  string    `json:"technical_topics"` // comma-separated
	ReminderSent     bool      `gorm:"default:false" json:"reminder_sent"`
	Skills           []InterviewSkill `json:"skills,omitempty"`
}

type InterviewSkill struct {
	gorm.Model
	InterviewID uint   `gorm:"index;not null" json:"interview_id"`
	SkillName   string `gorm:"not null" json:"skill_name"`
	SkillScore  int    `json:"skill_score"`
}
