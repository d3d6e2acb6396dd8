package handlers

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleDay обрабатывает команду /day [дата]
func (h *Handlers) HandleDay(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.openCalendar(ctx, b, update, calendar.ModeDaily)
}

// HandleWeek обрабатывает команду /week [дата]
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.openCalendar(ctx, b, update, calendar.ModeWeekly)
}

func (h *Handlers) openCalendar(ctx context.Context, b *bot.Bot, update *models.Update, mode calendar.Mode) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	today := calendar.NormalizeToDay(time.Now().In(h.calendarService.Location()))
	date, err := parseDateArg(commandArgs(update.Message.Text), today)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Дата в формате ГГГГ-ММ-ДД, например /day 2026-10-20")
		return
	}

	vs, exists := h.stateManager.GetView(user.TelegramID)
	if !exists {
		vs = common.DefaultView(h.deps)
	}
	vs.Mode = mode
	vs.Date = date

	// Новый календарь отправляется отдельным сообщением, старое не трогаем
	if err := common.ShowCalendar(ctx, b, h.deps, update.Message.Chat.ID, user.TelegramID, vs, 0); err != nil {
		h.logger.Error("Failed to show calendar",
			zap.Int64("telegram_id", user.TelegramID),
			zap.String("mode", string(mode)),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
	}
}
