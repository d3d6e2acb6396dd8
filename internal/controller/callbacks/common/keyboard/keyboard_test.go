package keyboard

import (
	"testing"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Grid(t *testing.T) {
	kb := NewBuilder().Grid(2,
		Button("a", "a"), Button("b", "b"), Button("c", "c"),
	).Build()

	require.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[1], 1)
}

func TestCalendarKeyboard_Daily(t *testing.T) {
	view := &calendar.View{Columns: []calendar.Column{
		{Title: "Ms Lee", TutorID: 1},
		{Title: "Mr Chan", TutorID: 2, Collapsed: true},
	}}

	kb := CalendarKeyboard(state.ViewState{Mode: calendar.ModeDaily}, view)

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, "cal:prev", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "cal:week", kb.InlineKeyboard[1][0].CallbackData)

	toggles := kb.InlineKeyboard[2]
	require.Len(t, toggles, 2)
	assert.Equal(t, "➖ Lee", toggles[0].Text)
	assert.Equal(t, "➕ Chan", toggles[1].Text)
	assert.Equal(t, callbacktypes.CalendarData(callbacktypes.ActionCollapse, 2), toggles[1].CallbackData)
}

func TestCalendarKeyboard_Weekly(t *testing.T) {
	view := &calendar.View{Columns: make([]calendar.Column, calendar.DaysInWeek)}

	kb := CalendarKeyboard(state.ViewState{Mode: calendar.ModeWeekly, Fill: true}, view)

	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "◀️ Неделя", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "cal:day", kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "↕️ Обычный масштаб", kb.InlineKeyboard[1][1].Text)
}

func TestBuilder_Empty(t *testing.T) {
	kb := NewBuilder().Row().Build()
	require.NotNil(t, kb.InlineKeyboard)
	assert.Empty(t, kb.InlineKeyboard)
}

func TestToggle(t *testing.T) {
	on := Toggle(true, "on", "off", callbacktypes.ActionCollapse, 7)
	off := Toggle(false, "on", "off", callbacktypes.ActionCollapse, 7)
	assert.Equal(t, "on", on.Text)
	assert.Equal(t, "off", off.Text)
	assert.Equal(t, on.CallbackData, off.CallbackData)
}
