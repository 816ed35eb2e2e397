package model

import (
	"strings"
	"time"
)

// PlayerID uniquely identifies a player across the system
type PlayerID string

// MaxDisplayNameLength bounds display names in runes
const MaxDisplayNameLength = 32

// Player is a human competitor. Matches are owned by a player.
type Player struct {
	ID          PlayerID  `json:"id"`
	DisplayName string    `json:"display_name"`
	IsGuest     bool      `json:"is_guest"` // true for unregistered players
	CreatedAt   time.Time `json:"created_at"`
}

// RegisteredPlayer holds login credentials for a non-guest player.
// Stored separately from Player so the hash never travels with a session.
type RegisteredPlayer struct {
	PlayerID     PlayerID  `json:"player_id"`
	Username     string    `json:"username"`      // login username (immutable)
	PasswordHash string    `json:"password_hash"` // bcrypt hash
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeDisplayName trims a display name and checks its length
func NormalizeDisplayName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > MaxDisplayNameLength {
		return "", ErrInvalidDisplayName
	}
	return name, nil
}
