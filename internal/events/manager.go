package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/battleship-go2/internal/model"
)

// Manager owns one hub per watched match and publishes match events to them
type Manager struct {
	hubs   map[model.MatchID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewManager creates a new Manager
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		hubs:   make(map[model.MatchID]*Hub),
		logger: logger.With(slog.String("component", "events")),
	}
}

// Publish encodes the event as JSON and broadcasts it to the match's hub.
// Events for matches nobody is watching are discarded.
func (m *Manager) Publish(event model.Event) {
	hub := m.GetHub(event.MatchID)
	if hub == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		m.logger.Error("failed to encode event",
			slog.String("match_id", string(event.MatchID)),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(data)
}

// GetOrCreateHub returns the hub for a match, creating one if it doesn't exist
func (m *Manager) GetOrCreateHub(matchID model.MatchID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[matchID]; ok {
		return hub
	}

	hub := NewHub(matchID, m.logger)
	m.hubs[matchID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a match, or nil if it doesn't exist
func (m *Manager) GetHub(matchID model.MatchID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[matchID]
}

// RemoveHub removes and closes a hub
func (m *Manager) RemoveHub(matchID model.MatchID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[matchID]; ok {
		hub.Close()
		delete(m.hubs, matchID)
		m.logger.Info("event hub removed", slog.String("match_id", string(matchID)))
	}
}

// CleanupEmptyHubs removes hubs with no clients
func (m *Manager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("empty event hubs cleaned up", slog.Int("removed", removed))
	}
}

// RunJanitor calls CleanupEmptyHubs every interval until ctx is done
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CleanupEmptyHubs()
		}
	}
}

// Close shuts down every hub
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}
