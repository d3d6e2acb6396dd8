package state

import (
	"sync"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// entry возвращает запись пользователя, создавая её при необходимости.
// Вызывается под блокировкой на запись.
func (sm *Manager) entry(telegramID int64) *UserData {
	userData, exists := sm.states[telegramID]
	if !exists {
		userData = &UserData{State: StateNone}
		sm.states[telegramID] = userData
	}
	return userData
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).State = state
}

// ClearState сбрасывает диалог пользователя. Вид календаря сохраняется.
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists {
		return
	}
	if userData.View == nil {
		delete(sm.states, telegramID)
		return
	}
	userData.State = StateNone
}

// GetView возвращает копию вида календаря пользователя
func (sm *Manager) GetView(telegramID int64) (ViewState, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists && userData.View != nil {
		return userData.View.Clone(), true
	}
	return ViewState{}, false
}

// SetView сохраняет вид календаря пользователя
func (sm *Manager) SetView(telegramID int64, view ViewState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cp := view.Clone()
	sm.entry(telegramID).View = &cp
}

// UpdateView атомарно изменяет вид календаря; ok=false, если вида ещё нет
func (sm *Manager) UpdateView(telegramID int64, fn func(ViewState) ViewState) (ViewState, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists || userData.View == nil {
		return ViewState{}, false
	}

	updated := fn(userData.View.Clone()).Clone()
	userData.View = &updated
	return updated.Clone(), true
}
