package layout

import "time"

// Статусы, участвующие в приоритетах сортировки
const (
	StatusScheduled      = "Scheduled"
	StatusAttended       = "Attended"
	StatusTrialClass     = "Trial Class"
	StatusMakeupClass    = "Make-up Class"
	StatusAttendedMakeup = "Attended (Make-up)"
	StatusCancelled      = "Cancelled"
)

// Entry позиционируемая запись календаря: занятие или предложенное занятие
type Entry struct {
	ID              string
	Date            time.Time
	TimeSlot        string
	TutorID         int64
	TutorName       string
	StudentID       int64
	SchoolStudentID string
	StudentName     string
	School          string
	Grade           string
	LanguageStream  string
	Status          string
	Proposed        bool
}

// GradeKey ключ группы класс+поток
func (e Entry) GradeKey() string {
	return e.Grade + e.LanguageStream
}

// ScopeFunc возвращает ключ колонки, в которой рисуется запись
type ScopeFunc func(Entry) string
