package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar/status"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ChangeStatusRequest запрос на смену статуса занятия
type ChangeStatusRequest struct {
	SessionID int64  `validate:"required,gt=0"`
	Status    string `validate:"required,max=64"`
	// Override разрешает администратору исправлять проведённые занятия
	Override bool
}

type SessionService struct {
	sessions SessionStore
	statuses *status.Registry
	validate *validator.Validate
	logger   *zap.Logger
}

func NewSessionService(sessions SessionStore, statuses *status.Registry, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions: sessions,
		statuses: statuses,
		validate: newValidator(),
		logger:   logger,
	}
}

// GetByID получает занятие по ID
func (s *SessionService) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// MarkAttended отмечает посещение. Отработка получает статус "Attended (Make-up)".
func (s *SessionService) MarkAttended(ctx context.Context, id int64) (*model.Session, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.apply(ctx, session, session.Status.AttendedStatus(), false)
}

// ChangeStatus меняет статус занятия с проверкой допустимости перехода
func (s *SessionService) ChangeStatus(ctx context.Context, req ChangeStatusRequest) (*model.Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate status change: %w", err)
	}

	next := model.SessionStatus(req.Status)
	if !s.statuses.Known(req.Status) || req.Status == status.ProposedStatus {
		return nil, ErrUnknownStatus
	}

	session, err := s.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	return s.apply(ctx, session, next, req.Override)
}

func (s *SessionService) apply(ctx context.Context, session *model.Session, next model.SessionStatus, override bool) (*model.Session, error) {
	if !session.Status.CanTransitionTo(next) {
		if !override || session.Status == next {
			return nil, ErrInvalidTransition
		}
		s.logger.Warn("Session status corrected by admin",
			zap.Int64("session_id", session.ID),
			zap.String("from", string(session.Status)),
			zap.String("to", string(next)),
		)
	}

	if err := s.sessions.UpdateStatus(ctx, session.ID, next); err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}

	s.logger.Info("Session status changed",
		zap.Int64("session_id", session.ID),
		zap.String("from", string(session.Status)),
		zap.String("to", string(next)),
	)

	session.Status = next
	return session, nil
}
