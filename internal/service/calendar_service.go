package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/layout"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/render"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/status"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/repository"
	"go.uber.org/zap"
)

// DayQuery параметры дневного вида
type DayQuery struct {
	Date             time.Time
	Location         string
	TutorID          *int64
	ViewportHeight   float64
	FillHeight       bool
	Collapsed        map[int64]bool // свёрнутые колонки тьюторов
	IncludeProposals bool
	ImageHeight      int // высота PNG; 0 - по умолчанию
}

// WeekQuery параметры недельного вида; Date - любой день недели
type WeekQuery struct {
	Date             time.Time
	Location         string
	TutorID          *int64
	ViewportHeight   float64
	FillHeight       bool
	IncludeProposals bool
	ImageHeight      int
}

type CalendarService struct {
	sessions  SessionStore
	tutors    TutorStore
	proposals *ProposalService
	statuses  *status.Registry
	location  *time.Location
	logger    *zap.Logger
}

func NewCalendarService(
	sessions SessionStore,
	tutors TutorStore,
	proposals *ProposalService,
	statuses *status.Registry,
	location *time.Location,
	logger *zap.Logger,
) *CalendarService {
	if location == nil {
		location = time.Local
	}
	return &CalendarService{
		sessions:  sessions,
		tutors:    tutors,
		proposals: proposals,
		statuses:  statuses,
		location:  location,
		logger:    logger,
	}
}

// Statuses возвращает таблицу статусов
func (s *CalendarService) Statuses() *status.Registry {
	return s.statuses
}

// Location часовой пояс центра
func (s *CalendarService) Location() *time.Location {
	return s.location
}

// Daily собирает дневной вид: колонка на каждого тьютора
func (s *CalendarService) Daily(ctx context.Context, q DayQuery) (*calendar.View, error) {
	day := calendar.NormalizeToDay(q.Date.In(s.location))
	next := day.AddDate(0, 0, 1)

	sessions, err := s.sessions.GetByFilter(ctx, repository.SessionFilter{
		From:     day,
		To:       next,
		Location: q.Location,
		TutorID:  q.TutorID,
	})
	if err != nil {
		return nil, fmt.Errorf("get day sessions: %w", err)
	}

	proposed, err := s.loadProposed(ctx, q.IncludeProposals, day, next, q.Location, q.TutorID)
	if err != nil {
		return nil, err
	}

	columns, err := s.tutorColumns(ctx, q, sessions, proposed)
	if err != nil {
		return nil, err
	}

	collapsed := make(map[string]bool, len(q.Collapsed))
	for tutorID, isCollapsed := range q.Collapsed {
		if isCollapsed {
			collapsed[calendar.TutorKey(tutorID)] = true
		}
	}

	entries, bySession, byProposed := calendar.Entries(sessions, proposed)
	result := layout.Compute(entries, layout.Config{
		Scope:          calendar.TutorScope,
		Oracle:         s.statuses,
		ViewportHeight: q.ViewportHeight,
		FillHeight:     q.FillHeight,
		Collapsed:      collapsed,
	})

	s.logger.Debug("Daily layout computed",
		zap.Time("date", day),
		zap.String("location", q.Location),
		zap.Int("sessions", len(sessions)),
		zap.Int("proposed", len(proposed)),
		zap.Int("skipped", len(result.Skipped)),
	)

	return &calendar.View{
		Mode:     calendar.ModeDaily,
		From:     day,
		To:       day,
		Location: q.Location,
		Today:    calendar.NormalizeToDay(time.Now().In(s.location)),
		Columns:  columns,
		Layout:   result,
		Sessions: bySession,
		Proposed: byProposed,
	}, nil
}

// Weekly собирает недельный вид: колонка на каждый день Пн-Вс
func (s *CalendarService) Weekly(ctx context.Context, q WeekQuery) (*calendar.View, error) {
	week := calendar.NormalizeToWeekBounds(q.Date.In(s.location))
	next := week.End.AddDate(0, 0, 1)

	sessions, err := s.sessions.GetByFilter(ctx, repository.SessionFilter{
		From:     week.Start,
		To:       next,
		Location: q.Location,
		TutorID:  q.TutorID,
	})
	if err != nil {
		return nil, fmt.Errorf("get week sessions: %w", err)
	}

	proposed, err := s.loadProposed(ctx, q.IncludeProposals, week.Start, next, q.Location, q.TutorID)
	if err != nil {
		return nil, err
	}

	columns := make([]calendar.Column, 0, calendar.DaysInWeek)
	for _, day := range week.Days() {
		columns = append(columns, calendar.Column{
			Key:   calendar.DateKey(day),
			Title: day.Format("Mon 02/01"),
			Date:  day,
		})
	}

	entries, bySession, byProposed := calendar.Entries(sessions, proposed)
	result := layout.Compute(entries, layout.Config{
		Scope:          calendar.DateScope,
		ByTutor:        true,
		Oracle:         s.statuses,
		ViewportHeight: q.ViewportHeight,
		FillHeight:     q.FillHeight,
	})

	s.logger.Debug("Weekly layout computed",
		zap.Time("week_start", week.Start),
		zap.String("location", q.Location),
		zap.Int("sessions", len(sessions)),
		zap.Int("proposed", len(proposed)),
		zap.Int("skipped", len(result.Skipped)),
	)

	return &calendar.View{
		Mode:     calendar.ModeWeekly,
		From:     week.Start,
		To:       week.End,
		Location: q.Location,
		Today:    calendar.NormalizeToDay(time.Now().In(s.location)),
		Columns:  columns,
		Layout:   result,
		Sessions: bySession,
		Proposed: byProposed,
	}, nil
}

// RenderDaily рисует дневной вид в PNG
func (s *CalendarService) RenderDaily(ctx context.Context, q DayQuery) ([]byte, *calendar.View, error) {
	view, err := s.Daily(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	data, err := render.Render(view, s.statuses, render.Options{Height: q.ImageHeight, Now: time.Now().In(s.location)})
	if err != nil {
		return nil, nil, fmt.Errorf("render daily view: %w", err)
	}
	return data, view, nil
}

// RenderWeekly рисует недельный вид в PNG
func (s *CalendarService) RenderWeekly(ctx context.Context, q WeekQuery) ([]byte, *calendar.View, error) {
	view, err := s.Weekly(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	data, err := render.Render(view, s.statuses, render.Options{Height: q.ImageHeight, Now: time.Now().In(s.location)})
	if err != nil {
		return nil, nil, fmt.Errorf("render weekly view: %w", err)
	}
	return data, view, nil
}

func (s *CalendarService) loadProposed(ctx context.Context, include bool, from, to time.Time, location string, tutorID *int64) ([]*model.ProposedSession, error) {
	if !include || s.proposals == nil {
		return nil, nil
	}

	proposed, err := s.proposals.Projected(ctx, from, to, location)
	if err != nil {
		return nil, fmt.Errorf("get proposed sessions: %w", err)
	}

	if tutorID == nil {
		return proposed, nil
	}

	filtered := proposed[:0]
	for _, p := range proposed {
		if p.TutorID == *tutorID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// tutorColumns колонки дневного вида: активные тьюторы филиала плюс
// тьюторы, у которых есть занятия в этот день; порядок по имени
func (s *CalendarService) tutorColumns(ctx context.Context, q DayQuery, sessions []*model.Session, proposed []*model.ProposedSession) ([]calendar.Column, error) {
	names := make(map[int64]string)

	if q.TutorID == nil {
		tutors, err := s.tutors.GetActive(ctx, q.Location)
		if err != nil {
			return nil, fmt.Errorf("get active tutors: %w", err)
		}
		for _, t := range tutors {
			names[t.ID] = t.Name
		}
	}
	for _, sess := range sessions {
		names[sess.TutorID] = sess.TutorName
	}
	for _, p := range proposed {
		if _, ok := names[p.TutorID]; !ok {
			names[p.TutorID] = p.TutorName
		}
	}

	if q.TutorID != nil {
		if _, ok := names[*q.TutorID]; !ok {
			names[*q.TutorID] = fmt.Sprintf("Tutor #%d", *q.TutorID)
		}
	}

	ids := make([]int64, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}

	col := layout.NewTutorCollator()
	sort.Slice(ids, func(i, j int) bool {
		if cmp := col.Compare(names[ids[i]], names[ids[j]]); cmp != 0 {
			return cmp < 0
		}
		return ids[i] < ids[j]
	})

	columns := make([]calendar.Column, 0, len(ids))
	for _, id := range ids {
		columns = append(columns, calendar.Column{
			Key:       calendar.TutorKey(id),
			Title:     names[id],
			TutorID:   id,
			Collapsed: q.Collapsed[id],
		})
	}
	return columns, nil
}
