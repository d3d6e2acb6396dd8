package layout

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byTutor(e Entry) string { return strconv.FormatInt(e.TutorID, 10) }

func TestComputeOverlappingSessions(t *testing.T) {
	entries := []Entry{
		{ID: "a", TutorID: 1, TimeSlot: "09:00 - 10:00", Status: StatusScheduled},
		{ID: "b", TutorID: 1, TimeSlot: "09:30 - 10:30", Status: StatusScheduled},
	}

	res := Compute(entries, Config{Scope: byTutor, ViewportHeight: 720})

	require.Len(t, res.Placements, 2)
	require.Len(t, res.Groups, 2)
	for _, p := range res.Placements {
		assert.Equal(t, 2, p.TotalColumns)
		assert.Equal(t, 50.0, p.WidthPercent)
	}
	assert.NotEqual(t, res.Placements[0].Column, res.Placements[1].Column)
	assert.Equal(t, HourRange{Start: 9, End: 11}, res.Hours)
	assert.Equal(t, 0.0, res.Placements[0].Top)
	assert.Equal(t, 30.0, res.Placements[1].Top)
}

func TestComputeGroupsIdenticalGeometry(t *testing.T) {
	entries := []Entry{
		{ID: "f2", TutorID: 1, TimeSlot: "09:00 - 10:00", Status: StatusScheduled, Grade: "F2"},
		{ID: "f1", TutorID: 1, TimeSlot: "09:00 - 10:00", Status: StatusScheduled, Grade: "F1"},
		{ID: "f1-later", TutorID: 1, TimeSlot: "15:00 - 16:00", Status: StatusScheduled, Grade: "F1"},
		{ID: "other-tutor", TutorID: 2, TimeSlot: "09:00 - 10:00", Status: StatusScheduled, Grade: "F2"},
	}

	res := Compute(entries, Config{Scope: byTutor, ViewportHeight: 720})

	require.Len(t, res.Groups, 3)
	assert.Equal(t, []string{"1", "2"}, res.Scopes)

	tutor1 := res.ByScope("1")
	require.Len(t, tutor1, 3)
	assert.Equal(t, "f1", tutor1[0].Entry.ID)
	assert.Equal(t, 0, tutor1[0].Order)
	assert.Equal(t, "f2", tutor1[1].Entry.ID)
	assert.Equal(t, 1, tutor1[1].Order)
	assert.Equal(t, tutor1[0].GroupKey, tutor1[1].GroupKey)
	for _, p := range tutor1 {
		assert.Equal(t, 1, p.TotalColumns)
		assert.Equal(t, 100.0, p.WidthPercent)
	}
}

func TestComputeNearlyCoincidentNotGrouped(t *testing.T) {
	entries := []Entry{
		{ID: "a", TimeSlot: "09:00 - 10:00"},
		{ID: "b", TimeSlot: "09:05 - 10:05"},
	}

	res := Compute(entries, Config{ViewportHeight: 720})

	assert.Len(t, res.Groups, 2)
	for _, p := range res.Placements {
		assert.Equal(t, 2, p.TotalColumns)
	}
}

func TestComputeSkipsMalformedSlots(t *testing.T) {
	entries := []Entry{
		{ID: "empty", TimeSlot: ""},
		{ID: "unscheduled", TimeSlot: UnscheduledSlot},
		{ID: "ok", TimeSlot: "10:00 - 11:00"},
	}

	var res Result
	require.NotPanics(t, func() {
		res = Compute(entries, Config{})
	})

	require.Len(t, res.Placements, 1)
	assert.Equal(t, "ok", res.Placements[0].Entry.ID)
	assert.Equal(t, []string{"empty", "unscheduled"}, ids(res.Skipped))
	assert.Equal(t, FirstPaintPixelsPerMinute, res.Scale.PixelsPerMinute)
}

func TestComputeEmpty(t *testing.T) {
	res := Compute(nil, Config{})

	assert.Empty(t, res.Placements)
	assert.Empty(t, res.Groups)
	assert.Equal(t, HourRange{Start: 8, End: 20}, res.Hours)
}

func TestComputeCollapsedScopes(t *testing.T) {
	entries := []Entry{
		{ID: "a", TutorID: 1, TimeSlot: "09:00 - 10:00"},
		{ID: "b", TutorID: 2, TimeSlot: "09:00 - 10:00"},
		{ID: "c", TutorID: 2, TimeSlot: "11:00 - 12:00"},
	}

	res := Compute(entries, Config{Scope: byTutor, Collapsed: map[string]bool{"2": true}})

	assert.Equal(t, []string{"1", "2"}, res.Scopes)
	assert.Equal(t, 2, res.CollapsedCounts["2"])
	require.Len(t, res.Placements, 1)
	assert.Equal(t, "a", res.Placements[0].Entry.ID)
}

func TestComputeWeeklyPartitionsByTutor(t *testing.T) {
	byDate := func(e Entry) string { return e.Date.Format("2006-01-02") }
	entries := []Entry{
		{ID: "wong", TutorID: 2, TutorName: "Ms Wong", TimeSlot: "16:00 - 17:00", Status: StatusTrialClass},
		{ID: "chan", TutorID: 1, TutorName: "Mr Chan", TimeSlot: "16:00 - 17:00", Status: StatusScheduled},
	}

	res := Compute(entries, Config{Scope: byDate, ByTutor: true, FillHeight: true, ViewportHeight: 1440})

	require.Len(t, res.Placements, 2)
	assert.Equal(t, "chan", res.Placements[0].Entry.ID)
	assert.Equal(t, "wong", res.Placements[1].Entry.ID)
	assert.Equal(t, HourRange{Start: 16, End: 17}, res.Hours)
	assert.Equal(t, 24.0, res.Scale.PixelsPerMinute)
	assert.Equal(t, 1440.0, res.Height())
}

func TestComputeFixedHours(t *testing.T) {
	entries := []Entry{{ID: "a", TimeSlot: "07:00 - 08:00"}}

	res := Compute(entries, Config{Hours: HourRange{Start: 6, End: 22}, ViewportHeight: 500})

	assert.Equal(t, HourRange{Start: 6, End: 22}, res.Hours)
	require.Len(t, res.Placements, 1)
	assert.Equal(t, 60.0, res.Placements[0].Top)
}
