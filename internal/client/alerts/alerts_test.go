package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertsExpireIndependently(t *testing.T) {
	m := NewManager()

	shortID := m.Add("short lived", TypeDanger, 50*time.Millisecond)
	longID := m.Add("long lived", TypeSuccess, 10*time.Second)
	require.NotEqual(t, shortID, longID)

	visible := m.List()
	require.Len(t, visible, 2)
	assert.Equal(t, "short lived", visible[0].Msg)
	assert.Equal(t, "long lived", visible[1].Msg)

	// Only the short-lived alert expires.
	assert.Eventually(t, func() bool {
		return len(m.List()) == 1
	}, time.Second, 10*time.Millisecond)

	visible = m.List()
	require.Len(t, visible, 1)
	assert.Equal(t, longID, visible[0].ID)
	assert.Equal(t, TypeSuccess, visible[0].Type)
}

func TestListReturnsCopy(t *testing.T) {
	m := NewManager()
	m.Add("one", TypeDanger, 10*time.Second)

	snapshot := m.List()
	snapshot[0].Msg = "mutated"

	assert.Equal(t, "one", m.List()[0].Msg)
}
