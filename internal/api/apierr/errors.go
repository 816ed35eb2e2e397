package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeInvalidDisplayName = "INVALID_DISPLAY_NAME"
	CodeInvalidUsername    = "INVALID_USERNAME"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeOutOfBounds        = "OUT_OF_BOUNDS"
	CodeOverlap            = "OVERLAP"
	CodeInvalidOrientation = "INVALID_ORIENTATION"
	CodeUnknownShip        = "UNKNOWN_SHIP"
	CodeShipAlreadyPlaced  = "SHIP_ALREADY_PLACED"
	CodeFleetIncomplete    = "FLEET_INCOMPLETE"
	CodePlacementClosed    = "PLACEMENT_CLOSED"
	CodePlacementExhausted = "PLACEMENT_EXHAUSTED"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeNotMatchOwner      = "NOT_MATCH_OWNER"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeMatchOver          = "MATCH_OVER"
	CodeMatchAbandoned     = "MATCH_ABANDONED"
	CodeUnknownStrategy    = "UNKNOWN_STRATEGY"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

var errorTable = []struct {
	target  error
	status  int
	code    string
	message string
}{
	// player errors
	{model.ErrPlayerNotFound, http.StatusNotFound, CodePlayerNotFound, "Player not found"},
	{model.ErrInvalidDisplayName, http.StatusBadRequest, CodeInvalidDisplayName, "Display name must be 1-32 characters"},
	{auth.ErrInvalidUsername, http.StatusBadRequest, CodeInvalidUsername, "Username must be 3-24 letters, digits, '-' or '_'"},
	{auth.ErrPasswordTooShort, http.StatusBadRequest, CodePasswordTooShort, "Password is too short"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid username or password"},
	{auth.ErrInvalidSession, http.StatusUnauthorized, CodeUnauthorized, "Invalid or expired session"},
	{auth.ErrUsernameExists, http.StatusConflict, CodeUsernameExists, "Username already exists"},

	// placement errors
	{model.ErrOutOfBounds, http.StatusBadRequest, CodeOutOfBounds, "Position is outside the 10x10 grid"},
	{model.ErrOverlap, http.StatusConflict, CodeOverlap, "Ship would overlap another ship"},
	{model.ErrInvalidOrientation, http.StatusBadRequest, CodeInvalidOrientation, "Orientation must be horizontal or vertical"},
	{model.ErrUnknownShip, http.StatusBadRequest, CodeUnknownShip, "Ship is not part of the fleet"},
	{model.ErrShipAlreadyPlaced, http.StatusConflict, CodeShipAlreadyPlaced, "Ship has already been placed"},
	{model.ErrFleetIncomplete, http.StatusConflict, CodeFleetIncomplete, "Every ship must be placed first"},
	{model.ErrPlacementClosed, http.StatusConflict, CodePlacementClosed, "Ships can no longer be moved"},
	{model.ErrPlacementExhausted, http.StatusConflict, CodePlacementExhausted, "No room left for the remaining ships"},

	// match errors
	{model.ErrMatchNotFound, http.StatusNotFound, CodeMatchNotFound, "Match not found"},
	{model.ErrNotMatchOwner, http.StatusForbidden, CodeNotMatchOwner, "Match belongs to another player"},
	{model.ErrNotPlayerTurn, http.StatusForbidden, CodeNotYourTurn, "Not your turn"},
	{model.ErrMatchOver, http.StatusConflict, CodeMatchOver, "Match is already over"},
	{model.ErrMatchAbandoned, http.StatusConflict, CodeMatchAbandoned, "Match has been abandoned"},
	{model.ErrUnknownStrategy, http.StatusBadRequest, CodeUnknownStrategy, "Unknown machine strategy"},
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}
	for _, entry := range errorTable {
		if errors.Is(err, entry.target) {
			return &httpError{entry.status, APIError{entry.code, entry.message}}
		}
	}
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
