package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/layout"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/status"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPluralizeSessions(t *testing.T) {
	tests := map[int]string{
		0:   "занятий",
		1:   "занятие",
		2:   "занятия",
		5:   "занятий",
		11:  "занятий",
		21:  "занятие",
		22:  "занятия",
		112: "занятий",
	}
	for count, want := range tests {
		assert.Equal(t, want, PluralizeSessions(count), count)
	}
}

func TestFormatDateWithWeekday(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Вторник, 20.10.2026", FormatDateWithWeekday(day))
	assert.Equal(t, "19.10 - 25.10.2026", FormatWeekRange(calendar.NormalizeToWeekBounds(day)))
}

func TestFormatSlotDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatSlotDuration("09:00 - 09:45"))
	assert.Equal(t, "2 ч", FormatSlotDuration("14:00 - 16:00"))
	assert.Equal(t, "1 ч 30 мин", FormatSlotDuration("14:30-16:00"))
	assert.Empty(t, FormatSlotDuration("Unscheduled"))
}

func TestFormatSession(t *testing.T) {
	s := &model.Session{
		ID:          9,
		StudentName: "Amy",
		TutorName:   "Ms Chan",
		Date:        time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "16:00 - 17:30",
		Status:      model.SessionStatusScheduled,
	}
	text := FormatSession(status.Default(), s)
	assert.Contains(t, text, "Занятие #9")
	assert.Contains(t, text, "20.10.2026, 16:00 - 17:30 (1 ч 30 мин)")
	assert.NotContains(t, text, "💳")
}

func TestFormatSession_Payment(t *testing.T) {
	tests := []struct {
		financial string
		want      string
		wantNot   string
	}{
		{financial: "Paid", want: "💳 Оплачено", wantNot: "Не оплачено"},
		{financial: "Unpaid", want: "💳 Не оплачено (Unpaid)"},
		{financial: "Pending Payment", want: "💳 Не оплачено (Pending Payment)"},
	}

	for _, tt := range tests {
		t.Run(tt.financial, func(t *testing.T) {
			s := &model.Session{ID: 1, TimeSlot: "10:00 - 11:00", FinancialStatus: tt.financial}
			text := FormatSession(status.Default(), s)
			assert.Contains(t, text, tt.want)
			if tt.wantNot != "" {
				assert.NotContains(t, text, tt.wantNot)
			}
		})
	}
}

func TestStatusDisplay(t *testing.T) {
	reg := status.Default()
	assert.Equal(t, "✅ Attended", StatusDisplay(reg, "Attended"))
	assert.Equal(t, "❓ Mystery", StatusDisplay(reg, "Mystery"))
}

func TestCalendarCaption(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	skipped := make([]layout.Entry, 7)
	for i := range skipped {
		skipped[i] = layout.Entry{StudentName: "S", TutorName: "T"}
	}

	view := &calendar.View{
		Mode:     calendar.ModeDaily,
		From:     day,
		To:       day,
		Location: "Central",
		Sessions: map[string]*model.Session{"s:1": {}, "s:2": {}},
		Proposed: map[string]*model.ProposedSession{"p:x:1": {}},
		Layout: layout.Result{
			Skipped:         skipped,
			CollapsedCounts: map[string]int{"tutor:1": 3},
		},
	}

	caption := CalendarCaption(view)
	assert.Contains(t, caption, "📆 Вторник, 20.10.2026")
	assert.Contains(t, caption, "📍 Central")
	assert.Contains(t, caption, "2 занятия, 1 предложение отработки")
	assert.Contains(t, caption, "Скрыто в свёрнутых колонках: 3")
	assert.Contains(t, caption, "Без времени: 7")
	assert.Contains(t, caption, "… и ещё 2")
}
