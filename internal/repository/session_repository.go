package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `
	s.id, s.enrollment_id, s.student_id, s.student_name, s.school_student_id, s.school,
	s.grade, s.lang_stream, s.tutor_id, t.tutor_name, s.location, s.session_date,
	s.time_slot, s.session_status, s.financial_status, s.enrollment_cancelled,
	s.created_at, s.updated_at`

// SessionFilter параметры выборки занятий для календаря
type SessionFilter struct {
	From     time.Time // включительно
	To       time.Time // не включительно
	Location string    // пустая строка - все филиалы
	TutorID  *int64
}

type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

func scanSession(row pgx.Row) (*model.Session, error) {
	var s model.Session
	err := row.Scan(
		&s.ID,
		&s.EnrollmentID,
		&s.StudentID,
		&s.StudentName,
		&s.SchoolStudentID,
		&s.School,
		&s.Grade,
		&s.LanguageStream,
		&s.TutorID,
		&s.TutorName,
		&s.Location,
		&s.Date,
		&s.TimeSlot,
		&s.Status,
		&s.FinancialStatus,
		&s.EnrollmentCancelled,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSessions(rows pgx.Rows) ([]*model.Session, error) {
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// Create создаёт новое занятие
func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	if err := insertSession(ctx, r.Pool(), s); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// rowQuerier общий интерфейс пула и транзакции
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertSession(ctx context.Context, q rowQuerier, s *model.Session) error {
	query := `
		INSERT INTO sessions (enrollment_id, student_id, student_name, school_student_id, school,
			grade, lang_stream, tutor_id, location, session_date, time_slot, session_status,
			financial_status, enrollment_cancelled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`

	return q.QueryRow(
		ctx, query,
		s.EnrollmentID,
		s.StudentID,
		s.StudentName,
		s.SchoolStudentID,
		s.School,
		s.Grade,
		s.LanguageStream,
		s.TutorID,
		s.Location,
		s.Date,
		s.TimeSlot,
		s.Status,
		s.FinancialStatus,
		s.EnrollmentCancelled,
	).Scan(&s.ID, &s.CreatedAt)
}

// GetByID получает занятие по ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions s
		JOIN tutors t ON t.id = s.tutor_id
		WHERE s.id = $1
	`

	s, err := scanSession(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by id: %w", err)
	}

	return s, nil
}

// GetByIDs получает занятия по списку ID
func (r *SessionRepository) GetByIDs(ctx context.Context, ids []int64) ([]*model.Session, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + sessionColumns + `
		FROM sessions s
		JOIN tutors t ON t.id = s.tutor_id
		WHERE s.id = ANY($1)
		ORDER BY s.id
	`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get sessions by ids: %w", err)
	}

	return collectSessions(rows)
}

// GetByFilter получает занятия для календаря.
// Порядок фиксирован, чтобы раскладка не менялась между показами.
func (r *SessionRepository) GetByFilter(ctx context.Context, f SessionFilter) ([]*model.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions s
		JOIN tutors t ON t.id = s.tutor_id
		WHERE s.session_date >= $1
		  AND s.session_date < $2
		  AND ($3 = '' OR s.location = $3)
		  AND ($4::BIGINT IS NULL OR s.tutor_id = $4)
		ORDER BY s.session_date, s.tutor_id, s.time_slot, s.id
	`

	rows, err := r.Query(ctx, query, f.From, f.To, f.Location, f.TutorID)
	if err != nil {
		return nil, fmt.Errorf("get sessions by filter: %w", err)
	}

	return collectSessions(rows)
}

// UpdateStatus обновляет статус занятия
func (r *SessionRepository) UpdateStatus(ctx context.Context, id int64, status model.SessionStatus) error {
	query := `
		UPDATE sessions
		SET session_status = $1, updated_at = NOW()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}
