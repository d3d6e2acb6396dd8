package formatting

import (
	"fmt"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar/status"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
)

// StatusDisplay иконка и подпись статуса занятия
func StatusDisplay(statuses *status.Registry, s string) string {
	cfg := statuses.Lookup(s)
	if cfg.Icon == "" {
		return cfg.Label
	}
	return cfg.Icon + " " + cfg.Label
}

// FormatSession форматирует занятие для сообщения
func FormatSession(statuses *status.Registry, s *model.Session) string {
	slot := s.TimeSlot
	if d := FormatSlotDuration(s.TimeSlot); d != "" {
		slot += " (" + d + ")"
	}
	text := fmt.Sprintf(
		"Занятие #%d\n\n"+
			"👤 %s\n"+
			"🧑‍🏫 %s\n"+
			"📅 %s, %s\n"+
			"📊 %s",
		s.ID,
		s.StudentName,
		s.TutorName,
		FormatDate(s.Date),
		slot,
		StatusDisplay(statuses, string(s.Status)),
	)

	switch {
	case s.FinancialStatus == "":
	case s.IsPaid():
		text += "\n💳 Оплачено"
	default:
		text += "\n💳 Не оплачено (" + s.FinancialStatus + ")"
	}
	return text
}
