package app

import (
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/status"
	"github.com/Freeeeeet/tutor_calendar/internal/config"
	"github.com/Freeeeeet/tutor_calendar/internal/repository"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Services сервисный слой поверх PostgreSQL
type Services struct {
	Users     *service.UserService
	Sessions  *service.SessionService
	Proposals *service.ProposalService
	Calendar  *service.CalendarService
	Statuses  *status.Registry
}

// NewServices собирает репозитории и сервисы
func NewServices(pool *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	statuses, err := status.Load(cfg.StatusConfigPath)
	if err != nil {
		return nil, err
	}

	sessionRepo := repository.NewSessionRepository(pool)
	tutorRepo := repository.NewTutorRepository(pool)
	proposalRepo := repository.NewProposalRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	proposals := service.NewProposalService(proposalRepo, sessionRepo, logger.Named("proposals"))

	return &Services{
		Users:     service.NewUserService(userRepo, cfg.DefaultLocation, logger.Named("users")),
		Sessions:  service.NewSessionService(sessionRepo, statuses, logger.Named("sessions")),
		Proposals: proposals,
		Calendar: service.NewCalendarService(
			sessionRepo,
			tutorRepo,
			proposals,
			statuses,
			cfg.Location(),
			logger.Named("calendar"),
		),
		Statuses: statuses,
	}, nil
}
