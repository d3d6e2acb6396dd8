package layout

import (
	"regexp"
	"strconv"
)

// UnscheduledSlot строка-заглушка для занятий без времени
const UnscheduledSlot = "Unscheduled"

var timeSlotPattern = regexp.MustCompile(`^\s*(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})\s*$`)

// TimeSlot начало и конец занятия в формате HH:MM
type TimeSlot struct {
	Start string
	End   string
}

// StartMinutes возвращает начало в минутах от полуночи
func (s TimeSlot) StartMinutes() int {
	return TimeToMinutes(s.Start)
}

// EndMinutes возвращает конец в минутах от полуночи
func (s TimeSlot) EndMinutes() int {
	return TimeToMinutes(s.End)
}

// ParseTimeSlot разбирает строку вида "14:30 - 16:00".
// Возвращает false для пустой строки, "Unscheduled", одиночного времени,
// некорректных часов/минут и слотов через полночь.
func ParseTimeSlot(s string) (TimeSlot, bool) {
	m := timeSlotPattern.FindStringSubmatch(s)
	if m == nil {
		return TimeSlot{}, false
	}

	start, ok := normalizeClock(m[1])
	if !ok {
		return TimeSlot{}, false
	}
	end, ok := normalizeClock(m[2])
	if !ok {
		return TimeSlot{}, false
	}

	slot := TimeSlot{Start: start, End: end}
	if slot.EndMinutes() < slot.StartMinutes() {
		return TimeSlot{}, false
	}
	return slot, true
}

// TimeToMinutes переводит "HH:MM" в минуты от полуночи.
// Для некорректной строки возвращает 0.
func TimeToMinutes(t string) int {
	h, m, ok := splitClock(t)
	if !ok {
		return 0
	}
	return h*60 + m
}

// normalizeClock приводит "9:05" к "09:05" и проверяет диапазоны
func normalizeClock(t string) (string, bool) {
	h, m, ok := splitClock(t)
	if !ok {
		return "", false
	}
	return formatTwoDigits(h) + ":" + formatTwoDigits(m), true
}

func splitClock(t string) (int, int, bool) {
	idx := -1
	for i := 0; i < len(t); i++ {
		if t[i] == ':' {
			idx = i
			break
		}
	}
	if idx < 1 || idx > 2 || len(t)-idx-1 != 2 {
		return 0, 0, false
	}

	h, err := strconv.Atoi(t[:idx])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(t[idx+1:])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func formatTwoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
