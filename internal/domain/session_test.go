package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionWithSeats_SeatsRemaining(t *testing.T) {
	s := &SessionWithSeats{Capacity: 10, SeatsTaken: 3}
	assert.Equal(t, 7, s.SeatsRemaining())
	assert.False(t, s.IsFull())

	s.SeatsTaken = 10
	assert.Equal(t, 0, s.SeatsRemaining())
	assert.True(t, s.IsFull())

	// Сессия, зафиксированная принудительным обменом, может иметь
	// seats_taken выше вместимости - отрицательный остаток не утекает
	s.SeatsTaken = 12
	assert.Equal(t, 0, s.SeatsRemaining())
	assert.True(t, s.IsFull())
}

func TestSessionWithSeats_ZeroCapacity(t *testing.T) {
	s := &SessionWithSeats{Capacity: 0, SeatsTaken: 0}
	assert.True(t, s.IsFull())
	assert.Equal(t, 0, s.SeatsRemaining())
}

func TestSlotTemplate_MatchesDate(t *testing.T) {
	tmpl := &SlotTemplate{Weekday: time.Wednesday}

	wednesday := time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)
	thursday := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, tmpl.MatchesDate(wednesday))
	assert.False(t, tmpl.MatchesDate(thursday))
}

func TestSlotTemplate_IsActive(t *testing.T) {
	tmpl := &SlotTemplate{Active: true}
	assert.True(t, tmpl.IsActive())

	deactivatedAt := time.Now()
	tmpl.Active = false
	tmpl.DeactivatedAt = &deactivatedAt
	assert.False(t, tmpl.IsActive())
}
