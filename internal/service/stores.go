package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/repository"
	"github.com/google/uuid"
)

// SessionStore хранилище занятий
type SessionStore interface {
	Create(ctx context.Context, s *model.Session) error
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*model.Session, error)
	GetByFilter(ctx context.Context, f repository.SessionFilter) ([]*model.Session, error)
	UpdateStatus(ctx context.Context, id int64, status model.SessionStatus) error
}

// ProposalStore хранилище предложений отработки
type ProposalStore interface {
	Create(ctx context.Context, p *model.MakeupProposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.MakeupProposal, error)
	GetPendingInRange(ctx context.Context, from, to time.Time, location string) ([]*model.MakeupProposal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProposalStatus) error
	Approve(ctx context.Context, id uuid.UUID, makeup *model.Session, originalID int64, booked model.SessionStatus) error
	ExpireStale(ctx context.Context, before time.Time) (int64, error)
}

// TutorStore хранилище тьюторов
type TutorStore interface {
	GetActive(ctx context.Context, location string) ([]*model.Tutor, error)
}

// UserStore хранилище пользователей бота
type UserStore interface {
	Upsert(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	UpdateLocation(ctx context.Context, userID int64, location string) error
}

var (
	_ SessionStore  = (*repository.SessionRepository)(nil)
	_ ProposalStore = (*repository.ProposalRepository)(nil)
	_ TutorStore    = (*repository.TutorRepository)(nil)
	_ UserStore     = (*repository.UserRepository)(nil)
)
