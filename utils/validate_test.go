package utils

import (
	"testing"
	"time"

	"interviewprep/models"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range models.Statuses {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("Ghosted"))
	assert.False(t, ValidStatus("applied"))
	assert.False(t, ValidStatus(""))
}

func TestValidPreparationLevel(t *testing.T) {
	assert.False(t, ValidPreparationLevel(0))
	for level := 1; level <= 5; level++ {
		assert.True(t, ValidPreparationLevel(level))
	}
	assert.False(t, ValidPreparationLevel(6))
	assert.False(t, ValidPreparationLevel(-1))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@x.com"))
	assert.True(t, ValidEmail("weird@"))
	assert.False(t, ValidEmail("ax.com"))
	assert.False(t, ValidEmail(""))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-01-10")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("10/01/2025")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}
