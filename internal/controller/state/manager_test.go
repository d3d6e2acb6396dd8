package state

import (
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_State(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateAwaitingLocation)
	assert.Equal(t, StateAwaitingLocation, sm.GetState(1))
	assert.Equal(t, StateNone, sm.GetState(2))

	sm.ClearState(1)
	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok := sm.GetView(1)
	assert.False(t, ok)
}

func TestManager_ClearStateKeepsView(t *testing.T) {
	sm := NewManager()
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	sm.SetView(1, ViewState{Mode: calendar.ModeDaily, Date: day})
	sm.SetState(1, StateAwaitingLocation)
	sm.ClearState(1)

	assert.Equal(t, StateNone, sm.GetState(1))
	view, ok := sm.GetView(1)
	require.True(t, ok)
	assert.Equal(t, day, view.Date)
}

func TestManager_ViewIsCopied(t *testing.T) {
	sm := NewManager()
	collapsed := map[int64]bool{3: true}
	sm.SetView(1, ViewState{Mode: calendar.ModeDaily, Collapsed: collapsed})

	collapsed[4] = true
	view, _ := sm.GetView(1)
	assert.Len(t, view.Collapsed, 1)

	view.Collapsed[5] = true
	again, _ := sm.GetView(1)
	assert.Len(t, again.Collapsed, 1)
}

func TestManager_UpdateView(t *testing.T) {
	sm := NewManager()
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	_, ok := sm.UpdateView(1, func(v ViewState) ViewState { return v })
	assert.False(t, ok)

	sm.SetView(1, ViewState{Mode: calendar.ModeWeekly, Date: day})
	updated, ok := sm.UpdateView(1, func(v ViewState) ViewState { return v.Shift(-1) })
	require.True(t, ok)
	assert.Equal(t, day.AddDate(0, 0, -7), updated.Date)
}

func TestManager_Concurrent(t *testing.T) {
	sm := NewManager()
	sm.SetView(1, ViewState{Mode: calendar.ModeDaily, Collapsed: map[int64]bool{}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.UpdateView(1, func(v ViewState) ViewState {
				v.Collapsed[id] = true
				return v
			})
			sm.GetView(1)
		}(int64(i))
	}
	wg.Wait()

	view, _ := sm.GetView(1)
	assert.Len(t, view.Collapsed, 50)
}

func TestViewState_Shift(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	daily := ViewState{Mode: calendar.ModeDaily, Date: day}
	assert.Equal(t, day.AddDate(0, 0, 1), daily.Shift(1).Date)

	weekly := ViewState{Mode: calendar.ModeWeekly, Date: day}
	assert.Equal(t, day.AddDate(0, 0, 14), weekly.Shift(2).Date)
}
