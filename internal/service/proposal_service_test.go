package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	monday  = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

func missedSession() *model.Session {
	return &model.Session{
		ID:              1,
		StudentID:       11,
		StudentName:     "Amy",
		SchoolStudentID: "S-011",
		School:          "SKH",
		Grade:           "F2",
		LanguageStream:  "E",
		TutorID:         1,
		TutorName:       "Ms Lee",
		Location:        "Central",
		Date:            monday,
		TimeSlot:        "10:00 - 11:00",
		Status:          model.SessionStatusSickLeave,
		FinancialStatus: "Paid",
	}
}

func newProposalService(sessions ...*model.Session) (*ProposalService, *fakeProposals, *fakeSessions) {
	ss := newFakeSessions(sessions...)
	ps := newFakeProposals()
	ps.sessions = ss
	return NewProposalService(ps, ss, zap.NewNop()), ps, ss
}

func TestProposalService_Propose(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newProposalService(missedSession())

	p, err := svc.Propose(ctx, ProposeRequest{
		OriginalSessionID: 1,
		ProposedBy:        5,
		Slots: []ProposalSlotRequest{
			{Date: tuesday.Add(3 * time.Hour), TimeSlot: "16:00 - 17:00", TutorID: 2},
			{Date: tuesday, TimeSlot: "18:00-19:00", TutorID: 1, Location: "North"},
		},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.True(t, p.IsPending())
	require.Len(t, p.Slots, 2)
	assert.Equal(t, 1, p.Slots[0].SlotIndex)
	assert.Equal(t, tuesday, p.Slots[0].Date)
	assert.Equal(t, "Central", p.Slots[0].Location)
	assert.Equal(t, "North", p.Slots[1].Location)

	stored, err := store.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestProposalService_Propose_Validation(t *testing.T) {
	ctx := context.Background()
	slot := ProposalSlotRequest{Date: tuesday, TimeSlot: "16:00 - 17:00", TutorID: 2}

	tests := []struct {
		name    string
		req     ProposeRequest
		status  model.SessionStatus
		wantErr error
	}{
		{
			name: "no slots",
			req:  ProposeRequest{OriginalSessionID: 1, ProposedBy: 5},
		},
		{
			name: "too many slots",
			req:  ProposeRequest{OriginalSessionID: 1, ProposedBy: 5, Slots: []ProposalSlotRequest{slot, slot, slot, slot}},
		},
		{
			name: "malformed time slot",
			req: ProposeRequest{OriginalSessionID: 1, ProposedBy: 5, Slots: []ProposalSlotRequest{
				{Date: tuesday, TimeSlot: "23:00 - 01:00", TutorID: 2},
			}},
		},
		{
			name:    "session not waiting for make-up",
			req:     ProposeRequest{OriginalSessionID: 1, ProposedBy: 5, Slots: []ProposalSlotRequest{slot}},
			status:  model.SessionStatusScheduled,
			wantErr: ErrNotMakeupEligible,
		},
		{
			name:    "unknown session",
			req:     ProposeRequest{OriginalSessionID: 9, ProposedBy: 5, Slots: []ProposalSlotRequest{slot}},
			wantErr: ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := missedSession()
			if tt.status != "" {
				original.Status = tt.status
			}
			svc, _, _ := newProposalService(original)

			_, err := svc.Propose(ctx, tt.req)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestProposalService_Approve(t *testing.T) {
	ctx := context.Background()
	svc, proposals, sessions := newProposalService(missedSession())

	p, err := svc.Propose(ctx, ProposeRequest{
		OriginalSessionID: 1,
		ProposedBy:        5,
		Slots: []ProposalSlotRequest{
			{Date: tuesday, TimeSlot: "16:00 - 17:00", TutorID: 2},
			{Date: tuesday, TimeSlot: "18:00 - 19:00", TutorID: 3},
		},
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, p.ID, 7)
	assert.ErrorIs(t, err, ErrProposalSlotMissing)

	makeup, err := svc.Approve(ctx, p.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusMakeupClass, makeup.Status)
	assert.Equal(t, int64(3), makeup.TutorID)
	assert.Equal(t, "18:00 - 19:00", makeup.TimeSlot)
	assert.Equal(t, "Amy", makeup.StudentName)
	assert.Equal(t, model.SessionStatusSickLeaveBooked, sessions.status(1))

	stored, err := proposals.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProposalStatusApproved, stored.Status)

	_, err = svc.Approve(ctx, p.ID, 1)
	assert.ErrorIs(t, err, ErrProposalNotPending)
}

func TestProposalService_Approve_FailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	svc, proposals, sessions := newProposalService(missedSession())

	p, err := svc.Propose(ctx, ProposeRequest{
		OriginalSessionID: 1,
		ProposedBy:        5,
		Slots:             []ProposalSlotRequest{{Date: tuesday, TimeSlot: "16:00 - 17:00", TutorID: 2}},
	})
	require.NoError(t, err)

	week := repository.SessionFilter{From: monday, To: monday.AddDate(0, 0, 7)}

	proposals.approveErr = errors.New("connection reset by peer")
	_, err = svc.Approve(ctx, p.ID, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProposalNotPending)

	all, err := sessions.GetByFilter(ctx, week)
	require.NoError(t, err)
	assert.Len(t, all, 1, "make-up session must not be created")
	assert.Equal(t, model.SessionStatusSickLeave, sessions.status(1))
	stored, _ := proposals.GetByID(ctx, p.ID)
	assert.True(t, stored.IsPending())

	proposals.approveErr = nil
	makeup, err := svc.Approve(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.NotZero(t, makeup.ID)
	assert.Equal(t, model.SessionStatusSickLeaveBooked, sessions.status(1))

	all, err = sessions.GetByFilter(ctx, week)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProposalService_ResolvedProposal(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		status model.ProposalStatus
	}{
		{name: "approved", status: model.ProposalStatusApproved},
		{name: "rejected", status: model.ProposalStatusRejected},
		{name: "expired", status: model.ProposalStatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, proposals, sessions := newProposalService(missedSession())
			p, err := svc.Propose(ctx, ProposeRequest{
				OriginalSessionID: 1,
				ProposedBy:        5,
				Slots:             []ProposalSlotRequest{{Date: tuesday, TimeSlot: "16:00 - 17:00", TutorID: 2}},
			})
			require.NoError(t, err)
			proposals.byID[p.ID].Status = tt.status

			_, err = svc.Approve(ctx, p.ID, 1)
			assert.ErrorIs(t, err, ErrProposalNotPending)
			assert.ErrorIs(t, svc.Reject(ctx, p.ID), ErrProposalNotPending)
			assert.ErrorIs(t, proposals.UpdateStatus(ctx, p.ID, model.ProposalStatusRejected), ErrProposalNotPending)

			assert.Equal(t, tt.status, proposals.byID[p.ID].Status)
			assert.Equal(t, model.SessionStatusSickLeave, sessions.status(1))
		})
	}
}

func TestProposalService_Approve_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions := newProposalService(missedSession())

	p, err := svc.Propose(ctx, ProposeRequest{
		OriginalSessionID: 1,
		ProposedBy:        5,
		Slots: []ProposalSlotRequest{
			{Date: tuesday, TimeSlot: "16:00 - 17:00", TutorID: 2},
			{Date: tuesday, TimeSlot: "18:00 - 19:00", TutorID: 3},
		},
	})
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Approve(ctx, p.ID, i+1)
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
		}
	}
	assert.Equal(t, 1, ok, "exactly one approval wins")

	all, err := sessions.GetByFilter(ctx, repository.SessionFilter{From: monday, To: monday.AddDate(0, 0, 7)})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProposalService_Reject(t *testing.T) {
	ctx := context.Background()
	svc, proposals, _ := newProposalService(missedSession())

	assert.ErrorIs(t, svc.Reject(ctx, uuid.New()), ErrProposalNotFound)

	p, err := svc.Propose(ctx, ProposeRequest{
		OriginalSessionID: 1,
		ProposedBy:        5,
		Slots:             []ProposalSlotRequest{{Date: tuesday, TimeSlot: "16:00 - 17:00", TutorID: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, p.ID))
	stored, _ := proposals.GetByID(ctx, p.ID)
	assert.Equal(t, model.ProposalStatusRejected, stored.Status)
}

func TestProposalService_ExpireStale(t *testing.T) {
	ctx := context.Background()
	svc, proposals, _ := newProposalService(missedSession())

	p, err := svc.Propose(ctx, ProposeRequest{
		OriginalSessionID: 1,
		ProposedBy:        5,
		Slots:             []ProposalSlotRequest{{Date: tuesday, TimeSlot: "16:00 - 17:00", TutorID: 2}},
	})
	require.NoError(t, err)

	n, err := svc.ExpireStale(ctx, tuesday.Add(20*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = svc.ExpireStale(ctx, tuesday.AddDate(0, 0, 1).Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stored, _ := proposals.GetByID(ctx, p.ID)
	assert.Equal(t, model.ProposalStatusExpired, stored.Status)
}

func TestProposalService_Projected(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newProposalService(missedSession())

	_, err := svc.Propose(ctx, ProposeRequest{
		OriginalSessionID: 1,
		ProposedBy:        5,
		Slots: []ProposalSlotRequest{
			{Date: tuesday, TimeSlot: "16:00 - 17:00", TutorID: 2},
			{Date: tuesday.AddDate(0, 0, 7), TimeSlot: "16:00 - 17:00", TutorID: 2},
		},
	})
	require.NoError(t, err)

	projected, err := svc.Projected(ctx, monday, monday.AddDate(0, 0, 7), "")
	require.NoError(t, err)

	require.Len(t, projected, 1)
	assert.Equal(t, 1, projected[0].SlotIndex)
	assert.Equal(t, "Amy", projected[0].StudentName)
	assert.Equal(t, "F2", projected[0].Grade)
	assert.Equal(t, int64(2), projected[0].TutorID)
}
