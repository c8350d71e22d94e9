package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_UserState(t *testing.T) {
	m := NewManager()

	assert.Equal(t, None, m.GetUserState(1))

	m.SetUserState(1, WaitingForMedicineName)
	assert.Equal(t, WaitingForMedicineName, m.GetUserState(1))
	assert.Equal(t, None, m.GetUserState(2))

	m.ClearUserState(1)
	assert.Equal(t, None, m.GetUserState(1))
}

func TestManager_TempData(t *testing.T) {
	m := NewManager()

	_, ok := m.GetTempData(1, KeyPendingStatus)
	assert.False(t, ok)

	m.SetTempData(1, KeyPendingStatus, "taken")
	value, ok := m.GetTempData(1, KeyPendingStatus)
	assert.True(t, ok)
	assert.Equal(t, "taken", value)

	// data is scoped per user
	_, ok = m.GetTempData(2, KeyPendingStatus)
	assert.False(t, ok)

	m.ClearTempData(1)
	_, ok = m.GetTempData(1, KeyPendingStatus)
	assert.False(t, ok)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.SetUserState(id, WaitingForMedicineName)
			m.SetTempData(id, KeyPendingStatus, "taken")
			m.GetUserState(id)
			m.GetTempData(id, KeyPendingStatus)
			m.ClearUserState(id)
			m.ClearTempData(id)
		}(int64(i))
	}
	wg.Wait()
}
