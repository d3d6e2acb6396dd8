package common

import (
	"errors"

	"github.com/Freeeeeet/tutor_calendar/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNoView        = errors.New("calendar view is not open")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, service.ErrSessionNotFound):
		return "❌ Занятие не найдено"
	case errors.Is(err, service.ErrInvalidTransition):
		return "❌ Для этого занятия такая смена статуса недоступна"
	case errors.Is(err, service.ErrUnknownStatus):
		return "❌ Неизвестный статус"
	case errors.Is(err, service.ErrProposalNotFound):
		return "❌ Предложение отработки не найдено"
	case errors.Is(err, service.ErrProposalNotPending):
		return "❌ Предложение уже обработано"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrNoView):
		return "❌ Календарь устарел. Откройте его заново: /day или /week"
	default:
		return "❌ Произошла ошибка"
	}
}
