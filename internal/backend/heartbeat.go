package backend

import (
	"sync"
	"time"

	"github.com/user/phishguard/internal/model"
)

// HeartbeatRegistry tracks the last extension contact. The state has no
// identity beyond "current"; every ping overwrites it.
type HeartbeatRegistry struct {
	mu       sync.RWMutex
	lastPing *time.Time
	window   time.Duration
}

// NewHeartbeatRegistry creates a registry with the given freshness window.
func NewHeartbeatRegistry(window time.Duration) *HeartbeatRegistry {
	if window <= 0 {
		window = 60 * time.Second
	}
	return &HeartbeatRegistry{window: window}
}

// Touch records a contact at the current time.
func (h *HeartbeatRegistry) Touch() {
	now := time.Now()
	h.mu.Lock()
	h.lastPing = &now
	h.mu.Unlock()
}

// State reports liveness: online means a ping landed within the window.
func (h *HeartbeatRegistry) State() model.HeartbeatState {
	h.mu.RLock()
	defer h.mu.RUnlock()

	state := model.HeartbeatState{LastPing: h.lastPing}
	if h.lastPing != nil && time.Since(*h.lastPing) < h.window {
		state.Online = true
	}
	return state
}
