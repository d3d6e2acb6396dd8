package common

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarMessage(t *testing.T) {
	callback := &models.CallbackQuery{
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{ID: 42},
		},
	}
	msg, err := CalendarMessage(callback)
	require.NoError(t, err)
	assert.Equal(t, 42, msg.ID)

	_, err = CalendarMessage(&models.CallbackQuery{})
	assert.ErrorIs(t, err, ErrNoMessage)
}
