package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrInvalidDisplayName = errors.New("display name must be 1-32 characters")

	// Placement errors
	ErrOutOfBounds        = errors.New("position is out of bounds")
	ErrOverlap            = errors.New("ship overlaps another ship")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrShipAlreadyPlaced  = errors.New("ship has already been placed")
	ErrShipNotPlaced      = errors.New("ship has not been placed")
	ErrUnknownShip        = errors.New("ship is not part of the fleet")
	ErrFleetIncomplete    = errors.New("fleet has unplaced ships")
	ErrPlacementClosed    = errors.New("placement phase is over")
	ErrPlacementExhausted = errors.New("could not find room for ship")

	// Combat errors
	ErrNotOccupied = errors.New("position is not occupied by ship")
	ErrNoTargets   = errors.New("no unshot cells remain")

	// Match errors
	ErrMatchNotFound   = errors.New("match not found")
	ErrNotMatchOwner   = errors.New("player does not own this match")
	ErrNotPlayerTurn   = errors.New("not this player's turn")
	ErrMatchOver       = errors.New("match is already over")
	ErrMatchAbandoned  = errors.New("match has been abandoned")
	ErrUnknownStrategy = errors.New("unknown targeting strategy")

	// Persistence errors
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
