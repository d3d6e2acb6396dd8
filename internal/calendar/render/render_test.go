package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/layout"
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/status"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

func dailyView(collapsed map[string]bool) *calendar.View {
	sessions := []*model.Session{
		{ID: 1, TutorID: 1, TutorName: "Ms Lee", StudentName: "Amy", Grade: "F1", Date: testDay, TimeSlot: "10:00 - 11:00", Status: model.SessionStatusScheduled},
		{ID: 2, TutorID: 1, TutorName: "Ms Lee", StudentName: "Ben", Grade: "F1", Date: testDay, TimeSlot: "10:00 - 11:00", Status: model.SessionStatusAttended},
		{ID: 3, TutorID: 2, TutorName: "Mr Chan", StudentName: "Cat", Date: testDay, TimeSlot: "10:30 - 12:00", Status: model.SessionStatusTrialClass},
		{ID: 4, TutorID: 2, TutorName: "Mr Chan", StudentName: "Dan", Date: testDay, TimeSlot: "Unscheduled", Status: model.SessionStatusScheduled},
	}
	entries, bySession, byProposed := calendar.Entries(sessions, nil)

	result := layout.Compute(entries, layout.Config{
		Scope:          calendar.TutorScope,
		Oracle:         status.Default(),
		ViewportHeight: 600,
		FillHeight:     true,
		Collapsed:      collapsed,
	})

	return &calendar.View{
		Mode:     calendar.ModeDaily,
		From:     testDay,
		To:       testDay,
		Location: "Central",
		Today:    testDay,
		Columns: []calendar.Column{
			{Key: calendar.TutorKey(2), Title: "Mr Chan", TutorID: 2, Collapsed: collapsed[calendar.TutorKey(2)]},
			{Key: calendar.TutorKey(1), Title: "Ms Lee", TutorID: 1, Collapsed: collapsed[calendar.TutorKey(1)]},
		},
		Layout:   result,
		Sessions: bySession,
		Proposed: byProposed,
	}
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRender_Daily(t *testing.T) {
	data, err := Render(dailyView(nil), status.Default(), Options{Height: 700, Now: testDay.Add(10*time.Hour + 15*time.Minute)})
	require.NoError(t, err)

	w, h := decodeSize(t, data)
	assert.Equal(t, leftLabelsWidth+2*columnWidth+legendWidth, w)
	assert.Equal(t, 700, h)
}

func TestRender_CollapsedColumnIsNarrow(t *testing.T) {
	view := dailyView(map[string]bool{calendar.TutorKey(1): true})
	assert.Equal(t, 2, view.Layout.CollapsedCounts[calendar.TutorKey(1)])

	data, err := Render(view, nil, Options{})
	require.NoError(t, err)

	w, h := decodeSize(t, data)
	assert.Equal(t, leftLabelsWidth+columnWidth+collapsedColumnWidth+legendWidth, w)
	assert.Equal(t, DefaultHeight, h)
}

func TestRender_WeeklyWithProposals(t *testing.T) {
	week := calendar.NormalizeToWeekBounds(testDay)
	proposed := []*model.ProposedSession{
		{SlotIndex: 1, Date: testDay, TimeSlot: "18:00 - 21:30", TutorID: 1, TutorName: "Ms Lee", StudentName: "Eve"},
	}
	sessions := []*model.Session{
		{ID: 5, TutorID: 1, TutorName: "Ms Lee", StudentName: "Amy", Date: testDay, TimeSlot: "07:30 - 09:00", Status: model.SessionStatusMakeupClass},
	}
	entries, bySession, byProposed := calendar.Entries(sessions, proposed)
	result := layout.Compute(entries, layout.Config{Scope: calendar.DateScope, ByTutor: true, Oracle: status.Default()})

	var columns []calendar.Column
	for _, d := range week.Days() {
		columns = append(columns, calendar.Column{Key: calendar.DateKey(d), Title: d.Format("Mon 02/01"), Date: d})
	}
	view := &calendar.View{
		Mode:     calendar.ModeWeekly,
		From:     week.Start,
		To:       week.End,
		Today:    testDay,
		Columns:  columns,
		Layout:   result,
		Sessions: bySession,
		Proposed: byProposed,
	}

	assert.Equal(t, layout.HourRange{Start: 8, End: 20}, result.Hours)

	data, err := Render(view, status.Default(), Options{Now: testDay.Add(8 * time.Hour)})
	require.NoError(t, err)

	w, _ := decodeSize(t, data)
	assert.Equal(t, leftLabelsWidth+calendar.DaysInWeek*columnWidth+legendWidth, w)
}

func TestRender_Empty(t *testing.T) {
	view := &calendar.View{Mode: calendar.ModeDaily, From: testDay, To: testDay}
	view.Layout = layout.Compute(nil, layout.Config{})

	data, err := Render(view, status.Default(), Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRender_NilView(t *testing.T) {
	_, err := Render(nil, status.Default(), Options{})
	assert.ErrorIs(t, err, ErrNilView)
}

func TestTitle(t *testing.T) {
	daily := &calendar.View{Mode: calendar.ModeDaily, From: testDay, Location: "Central"}
	assert.Equal(t, "Tuesday, 20 Oct 2026 · Central", Title(daily))

	week := calendar.NormalizeToWeekBounds(testDay)
	weekly := &calendar.View{Mode: calendar.ModeWeekly, From: week.Start, To: week.End}
	assert.Equal(t, "19 Oct - 25 Oct 2026", Title(weekly))
}

func TestLegendStatuses(t *testing.T) {
	items := legendStatuses(dailyView(nil), status.Default())

	require.Len(t, items, 3)
	assert.Equal(t, "Trial Class", items[0].Name)
	assert.Equal(t, "Scheduled", items[1].Name)
	assert.Equal(t, "Attended", items[2].Name)
}

func TestCardLabel(t *testing.T) {
	e := layout.Entry{StudentName: "Amy", Grade: "F1", LanguageStream: "E", TutorName: "Ms Lee"}

	assert.Equal(t, "Amy · F1E", cardLabel(e, calendar.ModeDaily))
	assert.Equal(t, "Amy · F1E · Lee", cardLabel(e, calendar.ModeWeekly))
}

func TestFitText(t *testing.T) {
	dc := gg.NewContext(10, 10)
	loadFont(dc, cardFontSize)

	assert.Equal(t, "Amy", fitText(dc, "Amy", 1000))
	assert.Equal(t, "", fitText(dc, "Amy", 0))

	cut := fitText(dc, "A very long student name that will not fit", 60)
	assert.Contains(t, cut, ellipsis)
	w, _ := dc.MeasureString(cut)
	assert.LessOrEqual(t, w, 60.0)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", initials("Anna Lee"))
	assert.Equal(t, "ABC", initials("anna bella cara dee"))
	assert.Equal(t, "", initials(""))
}
