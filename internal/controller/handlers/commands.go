package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/state"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/day [ГГГГ-ММ-ДД] - Расписание на день по тьюторам\n" +
	"/week [ГГГГ-ММ-ДД] - Расписание на неделю по дням\n" +
	"/location <филиал> - Выбрать филиал\n" +
	"/attend <id> - Отметить посещение занятия\n" +
	"/cancel - Отменить текущую операцию\n" +
	"/help - Показать эту справку\n\n" +
	"Для администраторов:\n" +
	"/status <id> <статус> - Исправить статус занятия\n\n" +
	"Под календарём есть кнопки навигации и сворачивания колонок тьюторов."

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From

	// Регистрируем пользователя
	registeredUser, err := h.userService.Register(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	location := registeredUser.Location
	if location == "" {
		location = "все филиалы"
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это календарь занятий центра.\n"+
			"📍 Филиал: %s\n\n",
		registeredUser.DisplayName(),
		location,
	) + helpText

	h.sendText(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendText(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendText(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	// Очищаем состояние
	h.stateManager.ClearState(telegramID)

	h.sendText(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}

// HandleLocation обрабатывает команду /location
func (h *Handlers) HandleLocation(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	location := commandTail(update.Message.Text)
	if location == "" {
		h.stateManager.SetState(user.TelegramID, state.StateAwaitingLocation)
		h.sendText(ctx, b, update.Message.Chat.ID, "📍 Введите название филиала или /cancel для отмены.")
		return
	}

	h.setLocation(ctx, b, update, location)
}

func (h *Handlers) setLocation(ctx context.Context, b *bot.Bot, update *models.Update, location string) {
	telegramID := update.Message.From.ID

	user, err := h.userService.SetLocation(ctx, telegramID, location)
	if err != nil {
		h.logger.Error("Failed to set location", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendText(ctx, b, update.Message.Chat.ID, "✅ Филиал изменён: "+user.Location+"\n\nОткройте календарь: /day или /week")
}

// HandleAttend обрабатывает команду /attend <id>
func (h *Handlers) HandleAttend(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	id, err := parseSessionID(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Укажите номер занятия: /attend 123")
		return
	}

	session, err := h.sessionService.MarkAttended(ctx, id)
	if err != nil {
		h.logger.Warn("Failed to mark attended", zap.Int64("session_id", id), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendText(ctx, b, update.Message.Chat.ID,
		"✅ Посещение отмечено\n\n"+formatting.FormatSession(h.calendarService.Statuses(), session))
}

// HandleStatus обрабатывает команду /status <id> <статус> (только администраторы)
func (h *Handlers) HandleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAdmin(ctx, b, update); !ok {
		return
	}

	args := commandArgs(update.Message.Text)
	id, err := parseSessionID(args)
	if err != nil || len(args) < 2 {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Формат: /status 123 No Show")
		return
	}
	newStatus := strings.Join(args[1:], " ")

	session, err := h.sessionService.ChangeStatus(ctx, service.ChangeStatusRequest{
		SessionID: id,
		Status:    newStatus,
		Override:  true,
	})
	if err != nil {
		h.logger.Warn("Failed to change session status",
			zap.Int64("session_id", id),
			zap.String("status", newStatus),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendText(ctx, b, update.Message.Chat.ID,
		"✅ Статус изменён\n\n"+formatting.FormatSession(h.calendarService.Statuses(), session))
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateNone:
		h.logger.Debug("No active state, ignoring message",
			zap.Int64("telegram_id", telegramID))
	case state.StateAwaitingLocation:
		h.setLocation(ctx, b, update, update.Message.Text)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
