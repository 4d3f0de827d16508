package utils

import (
	"slices"
	"strings"
	"time"

	"interviewprep/models"
)

// ValidStatus reports whether status is one of the four interview stages.
func ValidStatus(status string) bool {
	return slices.Contains(models.Statuses, status)
}

// ValidPreparationLevel reports whether level is in the 1-5 self-rating range.
func ValidPreparationLevel(level int) bool {
	return level >= 1 && level <= 5
}

// ValidEmail does a minimal shape check. The original system only ever
// required an "@", and a stricter grammar would reject addresses it accepted.
func ValidEmail(email string) bool {
	return strings.Contains(email, "@")
}

// ParseDate parses a YYYY-MM-DD wire date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
