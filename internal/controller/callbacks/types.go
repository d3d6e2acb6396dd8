package callbacks

import (
	"context"

	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/state"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	userService *service.UserService,
	calendarService *service.CalendarService,
	sessionService *service.SessionService,
	stateManager *state.Manager,
	imageHeight int,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		UserService:     userService,
		CalendarService: calendarService,
		SessionService:  sessionService,
		StateManager:    stateManager,
		Logger:          logger,
		ImageHeight:     imageHeight,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery точка входа для всех нажатий на inline кнопки
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	Route(ctx, b, update.CallbackQuery, h.Handler)
}
