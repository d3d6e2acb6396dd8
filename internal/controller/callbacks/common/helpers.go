package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Answer подтверждает нажатие кнопки; непустой text показывается всплывающей подсказкой
func Answer(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, text string) {
	_, _ = b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
		Text:            text,
	})
}

// AnswerError показывает ошибку окном, которое пользователь закрывает сам
func AnswerError(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, err error) {
	_, _ = b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
		Text:            ErrorMessage(err),
		ShowAlert:       true,
	})
}

// CalendarMessage сообщение с календарём, под которым нажали кнопку.
// Слишком старые сообщения Telegram присылает как недоступные.
func CalendarMessage(callback *models.CallbackQuery) (*models.Message, error) {
	if callback.Message.Message == nil {
		return nil, ErrNoMessage
	}
	return callback.Message.Message, nil
}
