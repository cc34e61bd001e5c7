package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerStateLifecycle(t *testing.T) {
	m := NewManager()

	assert.Equal(t, None, m.GetUserState(1))

	m.SetUserState(1, WaitingForPainScore)
	assert.Equal(t, WaitingForPainScore, m.GetUserState(1))
	assert.Equal(t, None, m.GetUserState(2))

	m.ClearUserState(1)
	assert.Equal(t, None, m.GetUserState(1))
}

func TestManagerTempDataIsPerUser(t *testing.T) {
	m := NewManager()

	_, ok := m.GetTempData(1, "pain_score")
	assert.False(t, ok)

	m.SetTempData(1, "pain_score", 7)
	m.SetTempData(2, "pain_score", 3)

	v, ok := m.GetTempData(1, "pain_score")
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	m.ClearTempData(1)
	_, ok = m.GetTempData(1, "pain_score")
	assert.False(t, ok)

	v, ok = m.GetTempData(2, "pain_score")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}
