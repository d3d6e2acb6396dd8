// Package calendar описывает дневной и недельный виды календаря: колонки,
// записи и их раскладку, общие для сервисов, рендера и API.
package calendar

import (
	"strconv"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar/layout"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/status"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
)

type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeWeekly Mode = "weekly"
)

// Column колонка сетки: тьютор в дневном виде, день в недельном
type Column struct {
	Key       string
	Title     string
	Date      time.Time
	TutorID   int64
	Collapsed bool
}

// View готовый к отрисовке вид календаря
type View struct {
	Mode     Mode
	From     time.Time // первый день
	To       time.Time // последний день включительно
	Location string
	Today    time.Time
	Columns  []Column
	Layout   layout.Result

	Sessions map[string]*model.Session
	Proposed map[string]*model.ProposedSession
}

// Session возвращает занятие по ID записи раскладки
func (v *View) Session(entryID string) (*model.Session, bool) {
	s, ok := v.Sessions[entryID]
	return s, ok
}

// TutorScope ключ колонки дневного вида
func TutorScope(e layout.Entry) string {
	return TutorKey(e.TutorID)
}

// TutorKey ключ колонки тьютора
func TutorKey(tutorID int64) string {
	return "tutor:" + strconv.FormatInt(tutorID, 10)
}

// DateScope ключ колонки недельного вида
func DateScope(e layout.Entry) string {
	return DateKey(e.Date)
}

// DateKey ключ колонки дня
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SessionEntryID ID записи раскладки для занятия
func SessionEntryID(id int64) string {
	return "s:" + strconv.FormatInt(id, 10)
}

// SessionEntry переводит занятие в запись раскладки
func SessionEntry(s *model.Session) layout.Entry {
	return layout.Entry{
		ID:              SessionEntryID(s.ID),
		Date:            s.Date,
		TimeSlot:        s.TimeSlot,
		TutorID:         s.TutorID,
		TutorName:       s.TutorName,
		StudentID:       s.StudentID,
		SchoolStudentID: s.SchoolStudentID,
		StudentName:     s.StudentName,
		School:          s.School,
		Grade:           s.Grade,
		LanguageStream:  s.LanguageStream,
		Status:          string(s.Status),
	}
}

// ProposedEntry переводит предложенное занятие в запись раскладки
func ProposedEntry(p *model.ProposedSession) layout.Entry {
	return layout.Entry{
		ID:              "p:" + p.ProposalID.String() + ":" + strconv.Itoa(p.SlotIndex),
		Date:            p.Date,
		TimeSlot:        p.TimeSlot,
		TutorID:         p.TutorID,
		TutorName:       p.TutorName,
		StudentID:       p.StudentID,
		SchoolStudentID: p.SchoolStudentID,
		StudentName:     p.StudentName,
		School:          p.School,
		Grade:           p.Grade,
		LanguageStream:  p.LanguageStream,
		Status:          status.ProposedStatus,
		Proposed:        true,
	}
}

// Entries собирает записи раскладки и индексы для обратного поиска.
// Занятия идут раньше предложений, чтобы порядок был стабильным.
func Entries(sessions []*model.Session, proposed []*model.ProposedSession) ([]layout.Entry, map[string]*model.Session, map[string]*model.ProposedSession) {
	entries := make([]layout.Entry, 0, len(sessions)+len(proposed))
	bySession := make(map[string]*model.Session, len(sessions))
	byProposed := make(map[string]*model.ProposedSession, len(proposed))

	for _, s := range sessions {
		e := SessionEntry(s)
		entries = append(entries, e)
		bySession[e.ID] = s
	}
	for _, p := range proposed {
		e := ProposedEntry(p)
		entries = append(entries, e)
		byProposed[e.ID] = p
	}

	return entries, bySession, byProposed
}
