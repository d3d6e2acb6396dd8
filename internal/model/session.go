package model

import "time"

type SessionStatus string

const (
	SessionStatusScheduled        SessionStatus = "Scheduled"
	SessionStatusAttended         SessionStatus = "Attended"
	SessionStatusCancelled        SessionStatus = "Cancelled"
	SessionStatusMakeupClass      SessionStatus = "Make-up Class"
	SessionStatusAttendedMakeup   SessionStatus = "Attended (Make-up)"
	SessionStatusTrialClass       SessionStatus = "Trial Class"
	SessionStatusNoShow           SessionStatus = "No Show"
	SessionStatusRescheduled      SessionStatus = "Rescheduled - Pending Make-up"
	SessionStatusSickLeave        SessionStatus = "Sick Leave - Pending Make-up"
	SessionStatusWeatherCancelled SessionStatus = "Weather Cancelled - Pending Make-up"
	SessionStatusRescheduledBook  SessionStatus = "Rescheduled - Make-up Booked"
	SessionStatusSickLeaveBooked  SessionStatus = "Sick Leave - Make-up Booked"
)

// IsUpcoming занятие ещё не проведено и может быть отмечено
func (s SessionStatus) IsUpcoming() bool {
	return s == SessionStatusScheduled || s == SessionStatusMakeupClass || s == SessionStatusTrialClass
}

// IsAttended занятие проведено
func (s SessionStatus) IsAttended() bool {
	return s == SessionStatusAttended || s == SessionStatusAttendedMakeup
}

// IsPendingMakeup занятие пропущено и ждёт отработки
func (s SessionStatus) IsPendingMakeup() bool {
	switch s {
	case SessionStatusRescheduled, SessionStatusSickLeave, SessionStatusWeatherCancelled:
		return true
	}
	return false
}

// AttendedStatus статус, в который переходит занятие после отметки посещения
func (s SessionStatus) AttendedStatus() SessionStatus {
	if s == SessionStatusMakeupClass {
		return SessionStatusAttendedMakeup
	}
	return SessionStatusAttended
}

// CanTransitionTo проверяет допустимость смены статуса.
// Проведённые занятия меняются только через исправление администратором.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	if s == next {
		return false
	}

	switch {
	case s.IsUpcoming():
		return next.IsAttended() || next == SessionStatusNoShow || next == SessionStatusCancelled ||
			next.IsPendingMakeup()
	case s.IsPendingMakeup():
		return next == SessionStatusRescheduledBook || next == SessionStatusSickLeaveBooked ||
			next == SessionStatusCancelled
	}
	return false
}

type Session struct {
	ID                  int64         `json:"id"`
	EnrollmentID        int64         `json:"enrollment_id"`
	StudentID           int64         `json:"student_id"`
	StudentName         string        `json:"student_name"`
	SchoolStudentID     string        `json:"school_student_id"`
	School              string        `json:"school"`
	Grade               string        `json:"grade"`
	LanguageStream      string        `json:"lang_stream"`
	TutorID             int64         `json:"tutor_id"`
	TutorName           string        `json:"tutor_name"`
	Location            string        `json:"location"`
	Date                time.Time     `json:"session_date"`
	TimeSlot            string        `json:"time_slot"` // "HH:MM - HH:MM"
	Status              SessionStatus `json:"session_status"`
	FinancialStatus     string        `json:"financial_status"`
	EnrollmentCancelled bool          `json:"enrollment_cancelled"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           *time.Time    `json:"updated_at"`
}

// IsPaid оплачено ли занятие
func (s *Session) IsPaid() bool {
	return s.FinancialStatus == "Paid"
}
