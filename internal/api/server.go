// Package api отдаёт календарь по HTTP: JSON-раскладку и PNG для дневного
// и недельного видов, плюс операции над занятиями и предложениями отработок.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// CalendarService источник видов календаря
type CalendarService interface {
	Daily(ctx context.Context, q service.DayQuery) (*calendar.View, error)
	Weekly(ctx context.Context, q service.WeekQuery) (*calendar.View, error)
	RenderDaily(ctx context.Context, q service.DayQuery) ([]byte, *calendar.View, error)
	RenderWeekly(ctx context.Context, q service.WeekQuery) ([]byte, *calendar.View, error)
	Location() *time.Location
}

type SessionService interface {
	MarkAttended(ctx context.Context, id int64) (*model.Session, error)
	ChangeStatus(ctx context.Context, req service.ChangeStatusRequest) (*model.Session, error)
}

type ProposalService interface {
	Propose(ctx context.Context, req service.ProposeRequest) (*model.MakeupProposal, error)
	Approve(ctx context.Context, id uuid.UUID, slotIndex int) (*model.Session, error)
	Reject(ctx context.Context, id uuid.UUID) error
}

// Options зависимости HTTP-сервера
type Options struct {
	Addr        string
	Calendar    CalendarService
	Sessions    SessionService
	Proposals   ProposalService
	ImageHeight int
	Location    *time.Location
	Logger      *zap.Logger
}

type Server struct {
	echo   *echo.Echo
	addr   string
	logger *zap.Logger
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	v1 := e.Group("/v1")
	registerCalendarAPI(v1, opts.Calendar, opts.ImageHeight)
	registerSessionAPI(v1, opts.Sessions)
	registerProposalAPI(v1, opts.Proposals, opts.Location)

	return &Server{echo: e, addr: opts.Addr, logger: logger}
}

// Handler возвращает http.Handler сервера
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start блокируется до остановки сервера
func (s *Server) Start() error {
	s.logger.Info("HTTP server started", zap.String("addr", s.addr))
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
