package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftHoursDaytime(t *testing.T) {
	assert.Equal(t, 8.0, ShiftHours("2025-11-04", "06:00", "14:00"))
	assert.Equal(t, 8.0, ShiftHours("2025-11-04", "14:00", "22:00"))
}

func TestShiftHoursOvernight(t *testing.T) {
	assert.Equal(t, 8.0, ShiftHours("2025-11-04", "22:00", "06:00"))
	assert.Equal(t, 0.5, ShiftHours("2025-11-04", "23:45", "00:15"))
}

func TestShiftHoursZeroLengthWrapsFullDay(t *testing.T) {
	// Equal start and end reads as a midnight crossing, which the
	// generator then rejects for exceeding the 16 hour cap.
	assert.Equal(t, 24.0, ShiftHours("2025-11-04", "08:00", "08:00"))
}

func TestShiftHoursUnparsableInput(t *testing.T) {
	assert.Equal(t, 0.0, ShiftHours("2025-11-04", "late", "06:00"))
	assert.Equal(t, 0.0, ShiftHours("2025-11-04", "22:00", ""))
	assert.Equal(t, 0.0, ShiftHours("not-a-date", "22:00", "06:00"))
}
