package common

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/state"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// DefaultView вид по умолчанию: сегодняшний день
func DefaultView(h *callbacktypes.Handler) state.ViewState {
	return state.ViewState{
		Mode: calendar.ModeDaily,
		Date: calendar.NormalizeToDay(time.Now().In(h.CalendarService.Location())),
	}
}

// RenderCalendar рисует календарь по виду пользователя
func RenderCalendar(ctx context.Context, h *callbacktypes.Handler, vs state.ViewState, location string) ([]byte, *calendar.View, error) {
	if vs.Mode == calendar.ModeWeekly {
		return h.CalendarService.RenderWeekly(ctx, service.WeekQuery{
			Date:             vs.Date,
			Location:         location,
			ViewportHeight:   float64(h.ImageHeight),
			FillHeight:       vs.Fill,
			IncludeProposals: true,
			ImageHeight:      h.ImageHeight,
		})
	}

	return h.CalendarService.RenderDaily(ctx, service.DayQuery{
		Date:             vs.Date,
		Location:         location,
		ViewportHeight:   float64(h.ImageHeight),
		FillHeight:       vs.Fill,
		Collapsed:        vs.Collapsed,
		IncludeProposals: true,
		ImageHeight:      h.ImageHeight,
	})
}

// ShowCalendar отправляет изображение календаря с клавиатурой навигации.
// replaceMessageID != 0 - предыдущее сообщение с календарём удаляется.
func ShowCalendar(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID, telegramID int64, vs state.ViewState, replaceMessageID int) error {
	user, err := h.UserService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}

	imageData, view, err := RenderCalendar(ctx, h, vs, user.Location)
	if err != nil {
		return fmt.Errorf("render calendar: %w", err)
	}

	msg, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: string(vs.Mode) + ".png", Data: bytes.NewReader(imageData)},
		Caption:     formatting.CalendarCaption(view),
		ReplyMarkup: keyboard.CalendarKeyboard(vs, view),
	})
	if err != nil {
		return fmt.Errorf("send calendar photo: %w", err)
	}

	// Удаляем старое сообщение
	if replaceMessageID != 0 {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: replaceMessageID,
		})
	}

	vs.MessageID = msg.ID
	h.StateManager.SetView(telegramID, vs)

	h.Logger.Debug("Calendar sent",
		zap.Int64("telegram_id", telegramID),
		zap.String("mode", string(vs.Mode)),
		zap.Time("date", vs.Date),
		zap.Int("bytes", len(imageData)),
	)
	return nil
}
