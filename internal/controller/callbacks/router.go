package callbacks

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	case data == "noop":
		common.Answer(ctx, b, callback, "")
	default:
		action, arg, ok := callbacktypes.ParseCalendarData(data)
		if !ok {
			h.Logger.Warn("Unknown callback",
				zap.String("data", data),
				zap.Int64("user_id", callback.From.ID))
			common.Answer(ctx, b, callback, "❌ Неизвестная команда")
			return
		}
		HandleCalendarAction(ctx, b, callback, h, action, arg)
	}
}

// ApplyAction меняет вид календаря в ответ на нажатие кнопки
func ApplyAction(vs state.ViewState, action callbacktypes.CalendarAction, arg int64, today time.Time) state.ViewState {
	switch action {
	case callbacktypes.ActionPrev:
		return vs.Shift(-1)
	case callbacktypes.ActionNext:
		return vs.Shift(1)
	case callbacktypes.ActionToday:
		vs.Date = today
	case callbacktypes.ActionDaily:
		vs.Mode = calendar.ModeDaily
	case callbacktypes.ActionWeekly:
		vs.Mode = calendar.ModeWeekly
	case callbacktypes.ActionFill:
		vs.Fill = !vs.Fill
	case callbacktypes.ActionCollapse:
		if vs.Collapsed == nil {
			vs.Collapsed = make(map[int64]bool)
		}
		if vs.Collapsed[arg] {
			delete(vs.Collapsed, arg)
		} else {
			vs.Collapsed[arg] = true
		}
	}
	return vs
}

// HandleCalendarAction обрабатывает кнопки навигации календаря
func HandleCalendarAction(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, action callbacktypes.CalendarAction, arg int64) {
	msg, err := common.CalendarMessage(callback)
	if err != nil {
		common.AnswerError(ctx, b, callback, err)
		return
	}

	telegramID := callback.From.ID
	today := common.DefaultView(h).Date

	vs, ok := h.StateManager.UpdateView(telegramID, func(vs state.ViewState) state.ViewState {
		return ApplyAction(vs, action, arg, today)
	})
	if !ok {
		// Бот перезапускался: начинаем с сегодняшнего дня
		vs = ApplyAction(common.DefaultView(h), action, arg, today)
	}

	if err := common.ShowCalendar(ctx, b, h, msg.Chat.ID, telegramID, vs, msg.ID); err != nil {
		h.Logger.Error("Failed to show calendar",
			zap.Int64("telegram_id", telegramID),
			zap.String("action", string(action)),
			zap.Error(err))
		common.AnswerError(ctx, b, callback, err)
		return
	}

	common.Answer(ctx, b, callback, "")
}
