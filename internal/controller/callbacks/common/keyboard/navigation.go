package keyboard

import (
	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/layout"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/state"
	"github.com/go-telegram/bot/models"
)

// tutorsPerRow кнопок сворачивания колонок в ряду
const tutorsPerRow = 3

// CalendarKeyboard клавиатура под изображением календаря
func CalendarKeyboard(vs state.ViewState, view *calendar.View) *models.InlineKeyboardMarkup {
	weekly := vs.Mode == calendar.ModeWeekly

	prev, next := "◀️ Вчера", "Завтра ▶️"
	if weekly {
		prev, next = "◀️ Неделя", "Неделя ▶️"
	}

	kb := NewBuilder().Row(
		Action(prev, callbacktypes.ActionPrev),
		Action("📍 Сегодня", callbacktypes.ActionToday),
		Action(next, callbacktypes.ActionNext),
	)

	modeButton := Action("🗓 Неделя", callbacktypes.ActionWeekly)
	if weekly {
		modeButton = Action("📆 День", callbacktypes.ActionDaily)
	}
	kb.Row(
		modeButton,
		Toggle(vs.Fill, "↕️ Обычный масштаб", "↕️ Растянуть", callbacktypes.ActionFill),
		Action("🔄", callbacktypes.ActionRefresh),
	)

	if !weekly && view != nil {
		toggles := make([]models.InlineKeyboardButton, 0, len(view.Columns))
		for _, col := range view.Columns {
			name := layout.TutorSortName(col.Title)
			toggles = append(toggles, Toggle(col.Collapsed, "➕ "+name, "➖ "+name,
				callbacktypes.ActionCollapse, col.TutorID))
		}
		kb.Grid(tutorsPerRow, toggles...)
	}

	return kb.Build()
}
