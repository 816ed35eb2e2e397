package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go2/internal/api/middleware"
	"github.com/mcoot/battleship-go2/internal/api/request"
	"github.com/mcoot/battleship-go2/internal/api/response"
	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/match"
)

// MatchHandler handles match endpoints
type MatchHandler struct {
	controller *match.Controller
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(controller *match.Controller) *MatchHandler {
	return &MatchHandler{controller: controller}
}

func matchID(r *http.Request) model.MatchID {
	return model.MatchID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateMatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	m, err := h.controller.CreateMatch(r.Context(), player.ID, req.Strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}

// List handles GET /api/v1/matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	matches, err := h.controller.ListMatches(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchListFromModel(matches))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	m, err := h.controller.GetMatch(r.Context(), matchID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// PlaceShip handles POST /api/v1/matches/{id}/ships
func (h *MatchHandler) PlaceShip(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.PlaceShipRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Row == nil || req.Col == nil {
		WriteError(w, NewInvalidRequestError("name, row and col are required"))
		return
	}
	orientation := model.Orientation(req.Orientation)
	if orientation == "" {
		orientation = model.OrientationHorizontal
	}

	origin := model.Position{Row: *req.Row, Col: *req.Col}
	m, err := h.controller.PlaceShip(r.Context(), matchID(r), player.ID, req.Name, origin, orientation)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// AutoPlace handles POST /api/v1/matches/{id}/ships/auto
func (h *MatchHandler) AutoPlace(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	m, err := h.controller.AutoPlace(r.Context(), matchID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// ResetPlacement handles DELETE /api/v1/matches/{id}/ships
func (h *MatchHandler) ResetPlacement(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	m, err := h.controller.ResetPlacement(r.Context(), matchID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Start handles POST /api/v1/matches/{id}/start
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	m, err := h.controller.StartMatch(r.Context(), matchID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Fire handles POST /api/v1/matches/{id}/fire
func (h *MatchHandler) Fire(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.FireRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Row == nil || req.Col == nil {
		WriteError(w, NewInvalidRequestError("row and col are required"))
		return
	}

	pos := model.Position{Row: *req.Row, Col: *req.Col}
	out, err := h.controller.Fire(r.Context(), matchID(r), player.ID, pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FireResponseFromOutcome(pos, out))
}

// Abandon handles DELETE /api/v1/matches/{id}. With ?purge=true the match
// record is deleted outright instead.
func (h *MatchHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if r.URL.Query().Get("purge") == "true" {
		if err := h.controller.DeleteMatch(r.Context(), matchID(r), player.ID); err != nil {
			WriteError(w, err)
			return
		}
		response.NoContent(w)
		return
	}

	m, err := h.controller.AbandonMatch(r.Context(), matchID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}
