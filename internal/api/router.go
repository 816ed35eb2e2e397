package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go2/internal/api/handler"
	"github.com/mcoot/battleship-go2/internal/api/middleware"
	"github.com/mcoot/battleship-go2/internal/api/response"
	"github.com/mcoot/battleship-go2/internal/events"
	httpmw "github.com/mcoot/battleship-go2/internal/middleware"
	"github.com/mcoot/battleship-go2/internal/services/auth"
	"github.com/mcoot/battleship-go2/internal/services/match"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	MatchController *match.Controller
	Events          *events.Manager
	// StorageName is reported by the health check
	StorageName string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	matchHandler := handler.NewMatchHandler(cfg.MatchController)
	eventsHandler := handler.NewEventsHandler(cfg.MatchController, cfg.Events, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.AuthService)

	// Logging must wrap recovery so a hijacked websocket is visible to it
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(httpmw.Logging(cfg.Logger))
	api.Use(middleware.Recovery(cfg.Logger))

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Match routes (all require auth)
	matches := api.PathPrefix("/matches").Subrouter()
	matches.Use(authMiddleware)
	matches.HandleFunc("", matchHandler.Create).Methods(http.MethodPost)
	matches.HandleFunc("", matchHandler.List).Methods(http.MethodGet)
	matches.HandleFunc("/{id}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{id}", matchHandler.Abandon).Methods(http.MethodDelete)
	matches.HandleFunc("/{id}/ships", matchHandler.PlaceShip).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/ships", matchHandler.ResetPlacement).Methods(http.MethodDelete)
	matches.HandleFunc("/{id}/ships/auto", matchHandler.AutoPlace).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/start", matchHandler.Start).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/fire", matchHandler.Fire).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/events", eventsHandler.Stream).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler(cfg.StorageName)).Methods(http.MethodGet)

	return r
}

func healthHandler(storageName string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Storage: storageName})
	}
}
