package state

import (
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Ожидаем название филиала после /location без аргумента
	StateAwaitingLocation UserState = "awaiting_location"
)

// ViewState что пользователь сейчас смотрит в календаре
type ViewState struct {
	Mode calendar.Mode
	Date time.Time
	// Fill растягивает сетку на всю высоту изображения
	Fill bool
	// Collapsed свёрнутые колонки тьюторов дневного вида
	Collapsed map[int64]bool
	// MessageID сообщение с последним отправленным календарём
	MessageID int
}

// Clone копия без общих map
func (v ViewState) Clone() ViewState {
	cp := v
	if v.Collapsed != nil {
		cp.Collapsed = make(map[int64]bool, len(v.Collapsed))
		for id, collapsed := range v.Collapsed {
			cp.Collapsed[id] = collapsed
		}
	}
	return cp
}

// Shift сдвигает дату вида на шаг: день в дневном виде, неделя в недельном
func (v ViewState) Shift(steps int) ViewState {
	cp := v.Clone()
	if v.Mode == calendar.ModeWeekly {
		cp.Date = v.Date.AddDate(0, 0, 7*steps)
	} else {
		cp.Date = v.Date.AddDate(0, 0, steps)
	}
	return cp
}

// UserData состояние диалога и вид календаря пользователя
type UserData struct {
	State UserState
	View  *ViewState
}
