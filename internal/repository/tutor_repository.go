package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TutorRepository struct {
	*base.Repository
}

func NewTutorRepository(pool *pgxpool.Pool) *TutorRepository {
	return &TutorRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт тьютора
func (r *TutorRepository) Create(ctx context.Context, tutor *model.Tutor) error {
	query := `
		INSERT INTO tutors (tutor_name, default_location, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, tutor.Name, tutor.Location, tutor.IsActive).
		Scan(&tutor.ID, &tutor.CreatedAt)
	if err != nil {
		return fmt.Errorf("create tutor: %w", err)
	}

	return nil
}

// GetByID получает тьютора по ID
func (r *TutorRepository) GetByID(ctx context.Context, id int64) (*model.Tutor, error) {
	query := `
		SELECT id, tutor_name, default_location, is_active, created_at
		FROM tutors
		WHERE id = $1
	`

	var tutor model.Tutor
	err := r.QueryRow(ctx, query, id).Scan(
		&tutor.ID,
		&tutor.Name,
		&tutor.Location,
		&tutor.IsActive,
		&tutor.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tutor by id: %w", err)
	}

	return &tutor, nil
}

// GetActive получает активных тьюторов филиала (пустая строка - всех)
func (r *TutorRepository) GetActive(ctx context.Context, location string) ([]*model.Tutor, error) {
	query := `
		SELECT id, tutor_name, default_location, is_active, created_at
		FROM tutors
		WHERE is_active
		  AND ($1 = '' OR default_location = $1)
		ORDER BY tutor_name, id
	`

	rows, err := r.Query(ctx, query, location)
	if err != nil {
		return nil, fmt.Errorf("get active tutors: %w", err)
	}
	defer rows.Close()

	var tutors []*model.Tutor
	for rows.Next() {
		var tutor model.Tutor
		err := rows.Scan(
			&tutor.ID,
			&tutor.Name,
			&tutor.Location,
			&tutor.IsActive,
			&tutor.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tutor: %w", err)
		}
		tutors = append(tutors, &tutor)
	}

	return tutors, rows.Err()
}
