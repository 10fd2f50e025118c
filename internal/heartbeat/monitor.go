// Package heartbeat tracks browser-extension liveness.
package heartbeat

import (
	"context"
	"sync"

	"github.com/user/phishguard/internal/model"
	"github.com/user/phishguard/internal/util"
)

// StatusSource fetches the current heartbeat state from the backend.
type StatusSource interface {
	ExtensionStatus(ctx context.Context) (model.HeartbeatState, error)
}

// Monitor caches the most recent heartbeat state. Each poll overwrites
// the cache wholesale; there is no merging of old and new state.
type Monitor struct {
	source StatusSource

	mu    sync.RWMutex
	state model.HeartbeatState
}

// NewMonitor creates a monitor backed by the given source.
func NewMonitor(source StatusSource) *Monitor {
	return &Monitor{source: source}
}

// Poll refreshes the cached state and returns it. On a transport or
// service error the extension is reported offline rather than keeping
// the last known state; the last contact timestamp is retained for
// display only.
func (m *Monitor) Poll(ctx context.Context) model.HeartbeatState {
	state, err := m.source.ExtensionStatus(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		util.Debug("Heartbeat poll failed: %v", err)
		m.state = model.HeartbeatState{Online: false, LastPing: m.state.LastPing}
	} else {
		m.state = state
	}
	return m.state
}

// State returns the cached heartbeat state from the last poll.
func (m *Monitor) State() model.HeartbeatState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}
