package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/repository"
)

var errReadOnly = errors.New("sessions file is read-only")

// fileSessions занятия из JSON-файла; только чтение
type fileSessions struct {
	sessions []*model.Session
}

// loadSessionsFile читает JSON-массив занятий. Даты переносятся в loc без
// сдвига календарного дня.
func loadSessionsFile(path string, loc *time.Location) (*fileSessions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sessions file: %w", err)
	}

	var sessions []*model.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions file %s: %w", path, err)
	}

	for i, s := range sessions {
		if s.ID == 0 {
			s.ID = int64(i + 1)
		}
		y, m, d := s.Date.Date()
		s.Date = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	return &fileSessions{sessions: sessions}, nil
}

func (f *fileSessions) Create(context.Context, *model.Session) error {
	return errReadOnly
}

func (f *fileSessions) GetByID(_ context.Context, id int64) (*model.Session, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fileSessions) GetByIDs(ctx context.Context, ids []int64) ([]*model.Session, error) {
	var result []*model.Session
	for _, id := range ids {
		s, _ := f.GetByID(ctx, id)
		if s != nil {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fileSessions) GetByFilter(_ context.Context, filter repository.SessionFilter) ([]*model.Session, error) {
	var result []*model.Session
	for _, s := range f.sessions {
		if s.Date.Before(filter.From) || !s.Date.Before(filter.To) {
			continue
		}
		if filter.Location != "" && s.Location != filter.Location {
			continue
		}
		if filter.TutorID != nil && s.TutorID != *filter.TutorID {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fileSessions) UpdateStatus(context.Context, int64, model.SessionStatus) error {
	return errReadOnly
}

// GetActive тьюторы, встречающиеся в файле
func (f *fileSessions) GetActive(_ context.Context, location string) ([]*model.Tutor, error) {
	seen := make(map[int64]bool)
	var tutors []*model.Tutor
	for _, s := range f.sessions {
		if seen[s.TutorID] || (location != "" && s.Location != location) {
			continue
		}
		seen[s.TutorID] = true
		tutors = append(tutors, &model.Tutor{
			ID:       s.TutorID,
			Name:     s.TutorName,
			Location: s.Location,
			IsActive: true,
		})
	}
	return tutors, nil
}
