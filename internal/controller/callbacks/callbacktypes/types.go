package callbacktypes

import (
	"strconv"
	"strings"

	"github.com/Freeeeeet/tutor_calendar/internal/controller/state"
	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService     *service.UserService
	CalendarService *service.CalendarService
	SessionService  *service.SessionService
	StateManager    *state.Manager
	Logger          *zap.Logger

	// ImageHeight высота изображения календаря в пикселях
	ImageHeight int
}

// CalendarPrefix префикс callback data навигации по календарю
const CalendarPrefix = "cal:"

// CalendarAction действие кнопки календаря
type CalendarAction string

const (
	ActionPrev     CalendarAction = "prev"     // cal:prev
	ActionNext     CalendarAction = "next"     // cal:next
	ActionToday    CalendarAction = "today"    // cal:today
	ActionDaily    CalendarAction = "day"      // cal:day
	ActionWeekly   CalendarAction = "week"     // cal:week
	ActionFill     CalendarAction = "fill"     // cal:fill
	ActionCollapse CalendarAction = "collapse" // cal:collapse:tutor_id
	ActionRefresh  CalendarAction = "refresh"  // cal:refresh
)

// CalendarData собирает callback data для кнопки календаря
func CalendarData(action CalendarAction, arg ...int64) string {
	data := CalendarPrefix + string(action)
	if len(arg) > 0 {
		data += ":" + strconv.FormatInt(arg[0], 10)
	}
	return data
}

// ParseCalendarData разбирает callback data календаря.
// Аргумент есть только у ActionCollapse.
func ParseCalendarData(data string) (CalendarAction, int64, bool) {
	rest, ok := strings.CutPrefix(data, CalendarPrefix)
	if !ok || rest == "" {
		return "", 0, false
	}

	action, arg, hasArg := strings.Cut(rest, ":")
	switch CalendarAction(action) {
	case ActionCollapse:
		if !hasArg {
			return "", 0, false
		}
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return "", 0, false
		}
		return ActionCollapse, id, true
	case ActionPrev, ActionNext, ActionToday, ActionDaily, ActionWeekly, ActionFill, ActionRefresh:
		if hasArg {
			return "", 0, false
		}
		return CalendarAction(action), 0, true
	}
	return "", 0, false
}
