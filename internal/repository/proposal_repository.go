package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProposalRepository struct {
	*base.Repository
}

func NewProposalRepository(pool *pgxpool.Pool) *ProposalRepository {
	return &ProposalRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет предложение вместе со слотами в одной транзакции
func (r *ProposalRepository) Create(ctx context.Context, p *model.MakeupProposal) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO makeup_proposals (id, original_session_id, proposed_by, status, notes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`, p.ID, p.OriginalSessionID, p.ProposedBy, p.Status, p.Notes).Scan(&p.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert proposal: %w", err)
		}

		for _, slot := range p.Slots {
			slot.ProposalID = p.ID
			err := tx.QueryRow(ctx, `
				INSERT INTO makeup_proposal_slots (proposal_id, slot_index, slot_date, time_slot, tutor_id, location)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id
			`, p.ID, slot.SlotIndex, slot.Date, slot.TimeSlot, slot.TutorID, slot.Location).Scan(&slot.ID)
			if err != nil {
				return fmt.Errorf("insert proposal slot %d: %w", slot.SlotIndex, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create proposal: %w", err)
	}

	return nil
}

// GetByID получает предложение со слотами
func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MakeupProposal, error) {
	query := `
		SELECT id, original_session_id, proposed_by, status, notes, created_at, updated_at
		FROM makeup_proposals
		WHERE id = $1
	`

	var p model.MakeupProposal
	err := r.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.OriginalSessionID,
		&p.ProposedBy,
		&p.Status,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposal by id: %w", err)
	}

	rows, err := r.Query(ctx, `
		SELECT ps.id, ps.slot_index, ps.slot_date, ps.time_slot, ps.tutor_id, t.tutor_name, ps.location
		FROM makeup_proposal_slots ps
		JOIN tutors t ON t.id = ps.tutor_id
		WHERE ps.proposal_id = $1
		ORDER BY ps.slot_index
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get proposal slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		slot := &model.ProposalSlot{ProposalID: p.ID}
		err := rows.Scan(
			&slot.ID,
			&slot.SlotIndex,
			&slot.Date,
			&slot.TimeSlot,
			&slot.TutorID,
			&slot.TutorName,
			&slot.Location,
		)
		if err != nil {
			return nil, fmt.Errorf("scan proposal slot: %w", err)
		}
		p.Slots = append(p.Slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proposal slots: %w", err)
	}

	return &p, nil
}

// GetPendingInRange получает ожидающие предложения, у которых есть слоты в диапазоне дат.
// В Slots попадают только слоты из диапазона.
func (r *ProposalRepository) GetPendingInRange(ctx context.Context, from, to time.Time, location string) ([]*model.MakeupProposal, error) {
	query := `
		SELECT p.id, p.original_session_id, p.proposed_by, p.status, p.notes, p.created_at, p.updated_at,
		       ps.id, ps.slot_index, ps.slot_date, ps.time_slot, ps.tutor_id, t.tutor_name, ps.location
		FROM makeup_proposals p
		JOIN makeup_proposal_slots ps ON ps.proposal_id = p.id
		JOIN tutors t ON t.id = ps.tutor_id
		WHERE p.status = 'pending'
		  AND ps.slot_date >= $1
		  AND ps.slot_date < $2
		  AND ($3 = '' OR ps.location = $3)
		ORDER BY p.created_at, p.id, ps.slot_index
	`

	rows, err := r.Query(ctx, query, from, to, location)
	if err != nil {
		return nil, fmt.Errorf("get pending proposals: %w", err)
	}
	defer rows.Close()

	var proposals []*model.MakeupProposal
	byID := make(map[uuid.UUID]*model.MakeupProposal)
	for rows.Next() {
		var p model.MakeupProposal
		var slot model.ProposalSlot
		err := rows.Scan(
			&p.ID,
			&p.OriginalSessionID,
			&p.ProposedBy,
			&p.Status,
			&p.Notes,
			&p.CreatedAt,
			&p.UpdatedAt,
			&slot.ID,
			&slot.SlotIndex,
			&slot.Date,
			&slot.TimeSlot,
			&slot.TutorID,
			&slot.TutorName,
			&slot.Location,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pending proposal: %w", err)
		}

		existing, ok := byID[p.ID]
		if !ok {
			existing = &p
			byID[p.ID] = existing
			proposals = append(proposals, existing)
		}
		slot.ProposalID = existing.ID
		existing.Slots = append(existing.Slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending proposals: %w", err)
	}

	return proposals, nil
}

// UpdateStatus закрывает ожидающее предложение с новым статусом.
// Для уже решённого предложения возвращает ErrProposalNotPending.
func (r *ProposalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProposalStatus) error {
	query := `
		UPDATE makeup_proposals
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update proposal status: %w", err)
	}

	if affected == 0 {
		return ErrProposalNotPending
	}

	return nil
}

// Approve в одной транзакции закрывает предложение, создаёт занятие-отработку
// и переводит исходное занятие в статус booked
func (r *ProposalRepository) Approve(ctx context.Context, id uuid.UUID, makeup *model.Session, originalID int64, booked model.SessionStatus) error {
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE makeup_proposals
			SET status = 'approved', updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
		`, id)
		if err != nil {
			return fmt.Errorf("update proposal status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrProposalNotPending
		}

		if err := insertSession(ctx, tx, makeup); err != nil {
			return fmt.Errorf("insert make-up session: %w", err)
		}

		tag, err = tx.Exec(ctx, `
			UPDATE sessions
			SET session_status = $1, updated_at = NOW()
			WHERE id = $2
		`, booked, originalID)
		if err != nil {
			return fmt.Errorf("update original session: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("original session %d not found", originalID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("approve proposal: %w", err)
	}

	return nil
}

// ExpireStale помечает истёкшими ожидающие предложения без слотов на дату before и позже
func (r *ProposalRepository) ExpireStale(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE makeup_proposals p
		SET status = 'expired', updated_at = NOW()
		WHERE p.status = 'pending'
		  AND NOT EXISTS (
			SELECT 1 FROM makeup_proposal_slots ps
			WHERE ps.proposal_id = p.id AND ps.slot_date >= $1
		  )
	`

	affected, err := r.ExecAffected(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("expire stale proposals: %w", err)
	}

	return affected, nil
}
