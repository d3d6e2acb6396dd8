package calendar

import "time"

// DaysInWeek число дней в недельном виде
const DaysInWeek = 7

// WeekBounds границы недели (Пн-Вс)
type WeekBounds struct {
	Start time.Time
	End   time.Time
}

// Contains попадает ли день в неделю
func (w WeekBounds) Contains(day time.Time) bool {
	day = NormalizeToDay(day)
	return !day.Before(w.Start) && !day.After(w.End)
}

// Days дни недели по порядку
func (w WeekBounds) Days() []time.Time {
	days := make([]time.Time, 0, DaysInWeek)
	for d := 0; d < DaysInWeek; d++ {
		days = append(days, w.Start.AddDate(0, 0, d))
	}
	return days
}

// NormalizeToWeekBounds нормализует дату к границам недели (Пн-Вс)
func NormalizeToWeekBounds(date time.Time) WeekBounds {
	normalized := NormalizeToDay(date)

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start := normalized.AddDate(0, 0, -daysSinceMonday)
	end := start.AddDate(0, 0, 6)

	return WeekBounds{Start: start, End: end}
}

// NormalizeToDay нормализует время к началу дня
func NormalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, являются ли две даты одним днем
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// ParseDate разбирает дату YYYY-MM-DD в указанной зоне
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}
