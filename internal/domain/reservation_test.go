package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusReservado.IsTerminal())
	assert.True(t, StatusPresente.IsTerminal())
	assert.True(t, StatusFaltou.IsTerminal())
	assert.True(t, StatusCancelado.IsTerminal())
}

func TestReservationStatus_TakesSeat(t *testing.T) {
	assert.True(t, StatusReservado.TakesSeat())
	assert.True(t, StatusPresente.TakesSeat())
	assert.False(t, StatusFaltou.TakesSeat())
	assert.False(t, StatusCancelado.TakesSeat())
}

func TestReservation_CanBeCancelled(t *testing.T) {
	r := &Reservation{Status: StatusReservado}
	assert.True(t, r.CanBeCancelled())

	for _, status := range TerminalStatuses {
		r.Status = status
		assert.False(t, r.CanBeCancelled(), "статус %s", status)
	}
}

func TestParseReservationStatus(t *testing.T) {
	status, ok := ParseReservationStatus("Reservado")
	assert.True(t, ok)
	assert.Equal(t, StatusReservado, status)

	status, ok = ParseReservationStatus("Faltou")
	assert.True(t, ok)
	assert.Equal(t, StatusFaltou, status)

	// Регистр и неизвестные значения не принимаются
	_, ok = ParseReservationStatus("reservado")
	assert.False(t, ok)

	_, ok = ParseReservationStatus("Unknown")
	assert.False(t, ok)

	_, ok = ParseReservationStatus("")
	assert.False(t, ok)
}
