package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
)

// maxSkippedInCaption сколько занятий без времени перечислять в подписи
const maxSkippedInCaption = 5

// CalendarCaption подпись к изображению календаря
func CalendarCaption(view *calendar.View) string {
	var b strings.Builder

	if view.Mode == calendar.ModeWeekly {
		fmt.Fprintf(&b, "🗓 Неделя %s", FormatWeekRange(calendar.WeekBounds{Start: view.From, End: view.To}))
	} else {
		fmt.Fprintf(&b, "📆 %s", FormatDateWithWeekday(view.From))
	}
	if view.Location != "" {
		fmt.Fprintf(&b, "\n📍 %s", view.Location)
	}

	sessions := len(view.Sessions)
	fmt.Fprintf(&b, "\n\n%d %s", sessions, PluralizeSessions(sessions))

	if proposed := len(view.Proposed); proposed > 0 {
		fmt.Fprintf(&b, ", %d %s отработки", proposed, PluralizeProposals(proposed))
	}

	var hidden int
	for _, n := range view.Layout.CollapsedCounts {
		hidden += n
	}
	if hidden > 0 {
		fmt.Fprintf(&b, "\nСкрыто в свёрнутых колонках: %d", hidden)
	}

	if skipped := view.Layout.Skipped; len(skipped) > 0 {
		fmt.Fprintf(&b, "\n\n⚠️ Без времени: %d", len(skipped))
		for i, e := range skipped {
			if i == maxSkippedInCaption {
				fmt.Fprintf(&b, "\n… и ещё %d", len(skipped)-maxSkippedInCaption)
				break
			}
			fmt.Fprintf(&b, "\n• %s (%s)", e.StudentName, e.TutorName)
		}
	}

	return b.String()
}
