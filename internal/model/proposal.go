package model

import (
	"time"

	"github.com/google/uuid"
)

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"  // Ожидает решения
	ProposalStatusApproved ProposalStatus = "approved" // Один из слотов выбран
	ProposalStatusRejected ProposalStatus = "rejected" // Отклонено
	ProposalStatusExpired  ProposalStatus = "expired"  // Все слоты в прошлом
)

// MakeupProposal предложение отработки пропущенного занятия с вариантами слотов
type MakeupProposal struct {
	ID                uuid.UUID      `json:"id"`
	OriginalSessionID int64          `json:"original_session_id"`
	ProposedBy        int64          `json:"proposed_by"`
	Status            ProposalStatus `json:"status"`
	Notes             string         `json:"notes"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         *time.Time     `json:"updated_at"`

	// Дополнительные поля для удобства (не из таблицы предложений)
	Slots           []*ProposalSlot `json:"slots,omitempty"`
	OriginalSession *Session        `json:"original_session,omitempty"`
}

// IsPending ожидает ли предложение решения
func (p *MakeupProposal) IsPending() bool {
	return p.Status == ProposalStatusPending
}

// LastSlotDate дата самого позднего слота; нулевое время, если слотов нет
func (p *MakeupProposal) LastSlotDate() time.Time {
	var last time.Time
	for _, slot := range p.Slots {
		if slot.Date.After(last) {
			last = slot.Date
		}
	}
	return last
}

// ProposalSlot один вариант времени отработки
type ProposalSlot struct {
	ID         int64     `json:"id"`
	ProposalID uuid.UUID `json:"proposal_id"`
	SlotIndex  int       `json:"slot_index"`
	Date       time.Time `json:"slot_date"`
	TimeSlot   string    `json:"time_slot"`
	TutorID    int64     `json:"tutor_id"`
	TutorName  string    `json:"tutor_name"`
	Location   string    `json:"location"`
}

// ProposedSession гипотетическое занятие, полученное из слота предложения.
// В базе не хранится, строится при каждом показе календаря.
type ProposedSession struct {
	Proposal        *MakeupProposal `json:"-"`
	ProposalID      uuid.UUID       `json:"proposal_id"`
	SlotIndex       int             `json:"slot_index"`
	Date            time.Time       `json:"session_date"`
	TimeSlot        string          `json:"time_slot"`
	TutorID         int64           `json:"tutor_id"`
	TutorName       string          `json:"tutor_name"`
	Location        string          `json:"location"`
	StudentID       int64           `json:"student_id"`
	StudentName     string          `json:"student_name"`
	SchoolStudentID string          `json:"school_student_id"`
	School          string          `json:"school"`
	Grade           string          `json:"grade"`
	LanguageStream  string          `json:"lang_stream"`
}

// Project раскладывает слоты предложения в предложенные занятия.
// Данные ученика берутся из исходного занятия, если оно загружено.
func (p *MakeupProposal) Project() []*ProposedSession {
	projected := make([]*ProposedSession, 0, len(p.Slots))
	for _, slot := range p.Slots {
		ps := &ProposedSession{
			Proposal:   p,
			ProposalID: p.ID,
			SlotIndex:  slot.SlotIndex,
			Date:       slot.Date,
			TimeSlot:   slot.TimeSlot,
			TutorID:    slot.TutorID,
			TutorName:  slot.TutorName,
			Location:   slot.Location,
		}
		if orig := p.OriginalSession; orig != nil {
			ps.StudentID = orig.StudentID
			ps.StudentName = orig.StudentName
			ps.SchoolStudentID = orig.SchoolStudentID
			ps.School = orig.School
			ps.Grade = orig.Grade
			ps.LanguageStream = orig.LanguageStream
		}
		projected = append(projected, ps)
	}
	return projected
}
