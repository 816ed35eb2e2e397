package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies; every request here is a handful of fields
const maxBodyBytes = 1 << 16

// Decode reads a JSON request body into v. An empty body leaves v untouched.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateMatchRequest is the request body for starting a match.
// Strategy is optional and defaults to the server's configured strategy.
type CreateMatchRequest struct {
	Strategy string `json:"strategy,omitempty"`
}

// PlaceShipRequest is the request body for positioning one ship
type PlaceShipRequest struct {
	Name        string `json:"name"`
	Row         *int   `json:"row"`
	Col         *int   `json:"col"`
	Orientation string `json:"orientation"`
}

// FireRequest is the request body for firing at the machine's board
type FireRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}
