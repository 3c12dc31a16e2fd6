// Package alerts manages transient user-facing notices. Each alert expires
// on its own timer; expiry of one never removes another.
package alerts

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type classifies an alert for presentation.
type Type string

const (
	TypeDanger  Type = "danger"
	TypeSuccess Type = "success"
)

// Alert is a single transient notice.
type Alert struct {
	ID   string
	Msg  string
	Type Type
}

// Manager holds the currently visible alerts.
type Manager struct {
	mu     sync.Mutex
	alerts []Alert
}

// NewManager constructs an empty alert manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add registers an alert and schedules its removal after ttl. The returned
// id identifies the alert until it expires.
func (m *Manager) Add(msg string, alertType Type, ttl time.Duration) string {
	alert := Alert{
		ID:   uuid.NewString(),
		Msg:  msg,
		Type: alertType,
	}

	m.mu.Lock()
	m.alerts = append(m.alerts, alert)
	m.mu.Unlock()

	time.AfterFunc(ttl, func() { m.remove(alert.ID) })
	return alert.ID
}

// List returns the alerts currently visible, oldest first.
func (m *Manager) List() []Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Alert{}, m.alerts...)
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.alerts[:0:0]
	for _, a := range m.alerts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	m.alerts = kept
}
