package keyboard

import (
	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot/models"
)

// Builder собирает inline-клавиатуру по рядам
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Row добавляет ряд; пустые ряды пропускаются
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Grid раскладывает кнопки по рядам не длиннее perRow
func (b *Builder) Grid(perRow int, buttons ...models.InlineKeyboardButton) *Builder {
	if perRow <= 0 {
		perRow = 1
	}
	for start := 0; start < len(buttons); start += perRow {
		end := min(start+perRow, len(buttons))
		b.Row(buttons[start:end]...)
	}
	return b
}

// Build возвращает клавиатуру; Telegram не принимает null вместо списка рядов
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	rows := b.rows
	if rows == nil {
		rows = [][]models.InlineKeyboardButton{}
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// Action кнопка навигации календаря
func Action(text string, action callbacktypes.CalendarAction, arg ...int64) models.InlineKeyboardButton {
	return Button(text, callbacktypes.CalendarData(action, arg...))
}

// Toggle кнопка-переключатель: подпись зависит от текущего состояния
func Toggle(on bool, onText, offText string, action callbacktypes.CalendarAction, arg ...int64) models.InlineKeyboardButton {
	if on {
		return Action(onText, action, arg...)
	}
	return Action(offText, action, arg...)
}
