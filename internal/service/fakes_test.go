package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/repository"
	"github.com/google/uuid"
)

type fakeSessions struct {
	mu     sync.Mutex
	byID   map[int64]*model.Session
	nextID int64
}

func newFakeSessions(sessions ...*model.Session) *fakeSessions {
	f := &fakeSessions{byID: make(map[int64]*model.Session), nextID: 1000}
	for _, s := range sessions {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeSessions) Create(_ context.Context, s *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s.ID = f.nextID
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSessions) GetByID(_ context.Context, id int64) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessions) GetByIDs(ctx context.Context, ids []int64) ([]*model.Session, error) {
	var out []*model.Session
	for _, id := range ids {
		s, _ := f.GetByID(ctx, id)
		if s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessions) GetByFilter(_ context.Context, filter repository.SessionFilter) ([]*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Session
	for _, s := range f.byID {
		if s.Date.Before(filter.From) || !s.Date.Before(filter.To) {
			continue
		}
		if filter.Location != "" && s.Location != filter.Location {
			continue
		}
		if filter.TutorID != nil && s.TutorID != *filter.TutorID {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSessions) UpdateStatus(_ context.Context, id int64, status model.SessionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("session not found")
	}
	s.Status = status
	return nil
}

func (f *fakeSessions) status(id int64) model.SessionStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id].Status
}

type fakeProposals struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*model.MakeupProposal
	sessions *fakeSessions

	// approveErr возвращается последним шагом Approve; предыдущие шаги откатываются
	approveErr error
}

func newFakeProposals(proposals ...*model.MakeupProposal) *fakeProposals {
	f := &fakeProposals{byID: make(map[uuid.UUID]*model.MakeupProposal)}
	for _, p := range proposals {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProposals) Create(_ context.Context, p *model.MakeupProposal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProposals) GetByID(_ context.Context, id uuid.UUID) (*model.MakeupProposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProposals) GetPendingInRange(_ context.Context, from, to time.Time, location string) ([]*model.MakeupProposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.MakeupProposal
	for _, p := range f.byID {
		if !p.IsPending() {
			continue
		}
		cp := *p
		cp.Slots = nil
		for _, slot := range p.Slots {
			if slot.Date.Before(from) || !slot.Date.Before(to) {
				continue
			}
			if location != "" && slot.Location != location {
				continue
			}
			cp.Slots = append(cp.Slots, slot)
		}
		if len(cp.Slots) > 0 {
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakeProposals) UpdateStatus(_ context.Context, id uuid.UUID, status model.ProposalStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok || !p.IsPending() {
		return repository.ErrProposalNotPending
	}
	p.Status = status
	return nil
}

func (f *fakeProposals) Approve(_ context.Context, id uuid.UUID, makeup *model.Session, originalID int64, booked model.SessionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions.mu.Lock()
	defer f.sessions.mu.Unlock()

	p, ok := f.byID[id]
	if !ok || !p.IsPending() {
		return repository.ErrProposalNotPending
	}
	original, ok := f.sessions.byID[originalID]
	if !ok {
		return fmt.Errorf("session not found")
	}

	prevNextID, prevStatus := f.sessions.nextID, original.Status
	f.sessions.nextID++
	makeup.ID = f.sessions.nextID
	f.sessions.byID[makeup.ID] = makeup
	original.Status = booked

	if f.approveErr != nil {
		delete(f.sessions.byID, makeup.ID)
		makeup.ID = 0
		f.sessions.nextID = prevNextID
		original.Status = prevStatus
		return f.approveErr
	}

	p.Status = model.ProposalStatusApproved
	return nil
}

func (f *fakeProposals) ExpireStale(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, p := range f.byID {
		if p.IsPending() && p.LastSlotDate().Before(before) {
			p.Status = model.ProposalStatusExpired
			n++
		}
	}
	return n, nil
}

type fakeTutors struct {
	tutors []*model.Tutor
}

func (f *fakeTutors) GetActive(_ context.Context, location string) ([]*model.Tutor, error) {
	var out []*model.Tutor
	for _, t := range f.tutors {
		if t.IsActive && (location == "" || t.Location == location) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeUsers struct {
	mu     sync.Mutex
	byTgID map[int64]*model.User
	nextID int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byTgID: make(map[int64]*model.User)}
}

func (f *fakeUsers) Upsert(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.byTgID[user.TelegramID]; ok {
		existing.Username = user.Username
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		*user = *existing
		return nil
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.byTgID[user.TelegramID] = &cp
	return nil
}

func (f *fakeUsers) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byTgID[telegramID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdateLocation(_ context.Context, userID int64, location string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byTgID {
		if u.ID == userID {
			u.Location = location
			return nil
		}
	}
	return fmt.Errorf("user not found")
}
