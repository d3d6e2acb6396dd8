package handlers

import (
	"github.com/Freeeeeet/tutor_calendar/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_calendar/internal/controller/state"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     *service.UserService
	calendarService *service.CalendarService
	sessionService  *service.SessionService
	stateManager    *state.Manager
	deps            *callbacktypes.Handler
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{
		userService:     deps.UserService,
		calendarService: deps.CalendarService,
		sessionService:  deps.SessionService,
		stateManager:    deps.StateManager,
		deps:            deps,
		logger:          deps.Logger,
	}
}
