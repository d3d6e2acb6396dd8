package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/layout"
)

var weekdays = [7]string{
	time.Sunday:    "Воскресенье",
	time.Monday:    "Понедельник",
	time.Tuesday:   "Вторник",
	time.Wednesday: "Среда",
	time.Thursday:  "Четверг",
	time.Friday:    "Пятница",
	time.Saturday:  "Суббота",
}

func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday "Вторник, 20.10.2026"
func FormatDateWithWeekday(t time.Time) string {
	return weekdays[t.Weekday()] + ", " + FormatDate(t)
}

// FormatWeekRange "19.10 - 25.10.2026"
func FormatWeekRange(week calendar.WeekBounds) string {
	return week.Start.Format("02.01") + " - " + FormatDate(week.End)
}

// FormatSlotDuration длительность слота "HH:MM - HH:MM": "1 ч 30 мин".
// Для слота без времени возвращает пустую строку.
func FormatSlotDuration(timeSlot string) string {
	slot, ok := layout.ParseTimeSlot(timeSlot)
	if !ok {
		return ""
	}
	minutes := slot.EndMinutes() - slot.StartMinutes()
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d мин", mins)
	case mins == 0:
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}
