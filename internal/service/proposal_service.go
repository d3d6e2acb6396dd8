package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxProposalSlots максимум вариантов времени в одном предложении
const MaxProposalSlots = 3

// ProposalSlotRequest вариант времени отработки
type ProposalSlotRequest struct {
	Date     time.Time `validate:"required"`
	TimeSlot string    `validate:"required,timeslot"`
	TutorID  int64     `validate:"required,gt=0"`
	Location string    `validate:"max=100"`
}

// ProposeRequest запрос на создание предложения отработки
type ProposeRequest struct {
	OriginalSessionID int64                 `validate:"required,gt=0"`
	ProposedBy        int64                 `validate:"required,gt=0"`
	Notes             string                `validate:"max=500"`
	Slots             []ProposalSlotRequest `validate:"required,min=1,max=3,dive"`
}

type ProposalService struct {
	proposals ProposalStore
	sessions  SessionStore
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewProposalService(proposals ProposalStore, sessions SessionStore, logger *zap.Logger) *ProposalService {
	return &ProposalService{
		proposals: proposals,
		sessions:  sessions,
		validate:  newValidator(),
		logger:    logger,
	}
}

// Propose создаёт предложение отработки для пропущенного занятия
func (s *ProposalService) Propose(ctx context.Context, req ProposeRequest) (*model.MakeupProposal, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate proposal: %w", err)
	}

	original, err := s.sessions.GetByID(ctx, req.OriginalSessionID)
	if err != nil {
		return nil, fmt.Errorf("get original session: %w", err)
	}
	if original == nil {
		return nil, ErrSessionNotFound
	}
	if !original.Status.IsPendingMakeup() {
		return nil, ErrNotMakeupEligible
	}

	proposal := &model.MakeupProposal{
		ID:                uuid.New(),
		OriginalSessionID: original.ID,
		ProposedBy:        req.ProposedBy,
		Status:            model.ProposalStatusPending,
		Notes:             req.Notes,
	}
	for i, slotReq := range req.Slots {
		location := slotReq.Location
		if location == "" {
			location = original.Location
		}
		proposal.Slots = append(proposal.Slots, &model.ProposalSlot{
			ProposalID: proposal.ID,
			SlotIndex:  i + 1,
			Date:       calendar.NormalizeToDay(slotReq.Date),
			TimeSlot:   slotReq.TimeSlot,
			TutorID:    slotReq.TutorID,
			Location:   location,
		})
	}

	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}
	proposal.OriginalSession = original

	s.logger.Info("Make-up proposal created",
		zap.String("proposal_id", proposal.ID.String()),
		zap.Int64("original_session_id", original.ID),
		zap.Int64("proposed_by", req.ProposedBy),
		zap.Int("slots", len(proposal.Slots)),
	)

	return proposal, nil
}

// Approve принимает один из слотов: создаёт занятие-отработку и
// переводит исходное занятие в статус "Make-up Booked". Все изменения
// применяются вместе или не применяются вовсе.
func (s *ProposalService) Approve(ctx context.Context, id uuid.UUID, slotIndex int) (*model.Session, error) {
	proposal, err := s.getPending(ctx, id)
	if err != nil {
		return nil, err
	}

	var chosen *model.ProposalSlot
	for _, slot := range proposal.Slots {
		if slot.SlotIndex == slotIndex {
			chosen = slot
			break
		}
	}
	if chosen == nil {
		return nil, ErrProposalSlotMissing
	}

	original, err := s.sessions.GetByID(ctx, proposal.OriginalSessionID)
	if err != nil {
		return nil, fmt.Errorf("get original session: %w", err)
	}
	if original == nil {
		return nil, ErrSessionNotFound
	}

	booked := bookedStatus(original.Status)
	if !original.Status.CanTransitionTo(booked) {
		return nil, ErrInvalidTransition
	}

	makeup := &model.Session{
		EnrollmentID:    original.EnrollmentID,
		StudentID:       original.StudentID,
		StudentName:     original.StudentName,
		SchoolStudentID: original.SchoolStudentID,
		School:          original.School,
		Grade:           original.Grade,
		LanguageStream:  original.LanguageStream,
		TutorID:         chosen.TutorID,
		TutorName:       chosen.TutorName,
		Location:        chosen.Location,
		Date:            chosen.Date,
		TimeSlot:        chosen.TimeSlot,
		Status:          model.SessionStatusMakeupClass,
		FinancialStatus: original.FinancialStatus,
	}
	if err := s.proposals.Approve(ctx, id, makeup, original.ID, booked); err != nil {
		if errors.Is(err, ErrProposalNotPending) {
			return nil, ErrProposalNotPending
		}
		return nil, fmt.Errorf("approve proposal: %w", err)
	}

	s.logger.Info("Make-up proposal approved",
		zap.String("proposal_id", id.String()),
		zap.Int("slot_index", slotIndex),
		zap.Int64("makeup_session_id", makeup.ID),
	)

	return makeup, nil
}

// Reject отклоняет предложение
func (s *ProposalService) Reject(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getPending(ctx, id); err != nil {
		return err
	}

	if err := s.proposals.UpdateStatus(ctx, id, model.ProposalStatusRejected); err != nil {
		if errors.Is(err, ErrProposalNotPending) {
			return ErrProposalNotPending
		}
		return fmt.Errorf("update proposal status: %w", err)
	}

	s.logger.Info("Make-up proposal rejected", zap.String("proposal_id", id.String()))
	return nil
}

// ExpireStale помечает истёкшими предложения, все слоты которых раньше сегодняшнего дня
func (s *ProposalService) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	expired, err := s.proposals.ExpireStale(ctx, calendar.NormalizeToDay(now))
	if err != nil {
		return 0, fmt.Errorf("expire stale proposals: %w", err)
	}

	if expired > 0 {
		s.logger.Info("Stale make-up proposals expired", zap.Int64("count", expired))
	}
	return expired, nil
}

// Projected возвращает предложенные занятия из ожидающих предложений в диапазоне дат
func (s *ProposalService) Projected(ctx context.Context, from, to time.Time, location string) ([]*model.ProposedSession, error) {
	proposals, err := s.proposals.GetPendingInRange(ctx, from, to, location)
	if err != nil {
		return nil, fmt.Errorf("get pending proposals: %w", err)
	}
	if len(proposals) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(proposals))
	for _, p := range proposals {
		ids = append(ids, p.OriginalSessionID)
	}
	originals, err := s.sessions.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get original sessions: %w", err)
	}
	byID := make(map[int64]*model.Session, len(originals))
	for _, o := range originals {
		byID[o.ID] = o
	}

	var projected []*model.ProposedSession
	for _, p := range proposals {
		p.OriginalSession = byID[p.OriginalSessionID]
		projected = append(projected, p.Project()...)
	}
	return projected, nil
}

func (s *ProposalService) getPending(ctx context.Context, id uuid.UUID) (*model.MakeupProposal, error) {
	proposal, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}
	if !proposal.IsPending() {
		return nil, ErrProposalNotPending
	}
	return proposal, nil
}

// bookedStatus статус исходного занятия после бронирования отработки
func bookedStatus(current model.SessionStatus) model.SessionStatus {
	if current == model.SessionStatusSickLeave {
		return model.SessionStatusSickLeaveBooked
	}
	return model.SessionStatusRescheduledBook
}
