package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mcoot/battleship-go2/internal/api/middleware"
	"github.com/mcoot/battleship-go2/internal/events"
	"github.com/mcoot/battleship-go2/internal/services/match"
)

// EventsHandler upgrades match event subscriptions to websockets
type EventsHandler struct {
	controller *match.Controller
	manager    *events.Manager
	upgrader   *websocket.Upgrader
	logger     *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(controller *match.Controller, manager *events.Manager, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		controller: controller,
		manager:    manager,
		upgrader:   events.NewUpgrader(),
		logger:     logger.With(slog.String("component", "events-handler")),
	}
}

// Stream handles GET /api/v1/matches/{id}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := matchID(r)

	// ownership is checked before the upgrade so errors are plain JSON
	if _, err := h.controller.GetMatch(r.Context(), id, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	hubFor := func() *events.Hub { return h.manager.GetOrCreateHub(id) }
	err := events.ServeWS(w, r, h.upgrader, hubFor, player.ID)
	if err != nil && !errors.Is(err, events.ErrHubClosed) {
		h.logger.Warn("websocket upgrade failed",
			slog.String("match_id", string(id)),
			slog.String("error", err.Error()))
	}
}
