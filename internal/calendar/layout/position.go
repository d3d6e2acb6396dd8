package layout

import "math"

// Границы рабочего дня и масштабы по умолчанию
const (
	DefaultStartHour = 8
	DefaultEndHour   = 20

	// DefaultPixelsPerMinute масштаб, когда сетка не растягивается по высоте
	DefaultPixelsPerMinute = 1.0
	// FirstPaintPixelsPerMinute масштаб до того, как известна высота контейнера
	FirstPaintPixelsPerMinute = 0.5
)

// HourRange диапазон отображаемых часов [Start, End)
type HourRange struct {
	Start int
	End   int
}

// Minutes возвращает длину диапазона в минутах
func (h HourRange) Minutes() int {
	return (h.End - h.Start) * 60
}

// IsZero сообщает, что диапазон не задан
func (h HourRange) IsZero() bool {
	return h.Start == 0 && h.End == 0
}

// CalculateHourRange определяет диапазон часов для набора записей: от часа
// самого раннего начала до часа самого позднего окончания (с округлением вверх),
// в пределах 08:00-20:00. Без разобранных слотов возвращается весь рабочий день.
func CalculateHourRange(entries []Entry) HourRange {
	minStart, maxEnd := -1, -1
	for _, e := range entries {
		slot, ok := ParseTimeSlot(e.TimeSlot)
		if !ok {
			continue
		}
		if minStart < 0 || slot.StartMinutes() < minStart {
			minStart = slot.StartMinutes()
		}
		if slot.EndMinutes() > maxEnd {
			maxEnd = slot.EndMinutes()
		}
	}
	if minStart < 0 {
		return HourRange{Start: DefaultStartHour, End: DefaultEndHour}
	}

	endH := maxEnd / 60
	if maxEnd%60 > 0 {
		endH++
	}
	hours := HourRange{
		Start: clampHour(minStart / 60),
		End:   clampHour(endH),
	}
	if hours.End <= hours.Start {
		if hours.Start == DefaultEndHour {
			hours.Start = DefaultEndHour - 1
		}
		hours.End = hours.Start + 1
	}
	return hours
}

func clampHour(h int) int {
	return min(max(h, DefaultStartHour), DefaultEndHour)
}

// Scale переводит минуты в пиксели
type Scale struct {
	StartHour       int
	PixelsPerMinute float64
}

// ScaleFor подбирает масштаб под высоту области просмотра.
// viewportHeight <= 0 означает, что высота ещё не измерена.
func ScaleFor(viewportHeight float64, fill bool, hours HourRange) Scale {
	ppm := DefaultPixelsPerMinute
	switch {
	case viewportHeight <= 0:
		ppm = FirstPaintPixelsPerMinute
	case fill && hours.Minutes() > 0:
		ppm = viewportHeight / float64(hours.Minutes())
	}
	return Scale{StartHour: hours.Start, PixelsPerMinute: ppm}
}

// Offset возвращает вертикальную позицию для времени в минутах
func (s Scale) Offset(minutes int) float64 {
	return roundPixels(float64(minutes-s.StartHour*60) * s.PixelsPerMinute)
}

// Height возвращает высоту карточки для интервала
func (s Scale) Height(startMinutes, endMinutes int) float64 {
	return roundPixels(float64(endMinutes-startMinutes) * s.PixelsPerMinute)
}

// roundPixels округляет до сотых, чтобы одинаковая геометрия совпадала побитово
func roundPixels(v float64) float64 {
	return math.Round(v*100) / 100
}
