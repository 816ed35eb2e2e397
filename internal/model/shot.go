package model

import "fmt"

// ShotOutcome tags a ShotResult
type ShotOutcome string

const (
	ShotHit         ShotOutcome = "hit"
	ShotMiss        ShotOutcome = "miss"
	ShotSunk        ShotOutcome = "sunk"
	ShotAlreadyShot ShotOutcome = "already_shot"
)

// ShotResult is the outcome of a single shot. ShipName is set only for ShotSunk.
type ShotResult struct {
	Outcome  ShotOutcome `json:"outcome"`
	ShipName string      `json:"ship_name,omitempty"`
}

func HitResult() ShotResult         { return ShotResult{Outcome: ShotHit} }
func MissResult() ShotResult        { return ShotResult{Outcome: ShotMiss} }
func AlreadyShotResult() ShotResult { return ShotResult{Outcome: ShotAlreadyShot} }

func SunkResult(shipName string) ShotResult {
	return ShotResult{Outcome: ShotSunk, ShipName: shipName}
}

// Struck returns true if the shot landed on a ship (hit or sunk)
func (r ShotResult) Struck() bool {
	return r.Outcome == ShotHit || r.Outcome == ShotSunk
}

func (r ShotResult) String() string {
	if r.Outcome == ShotSunk {
		return fmt.Sprintf("sunk(%s)", r.ShipName)
	}
	return string(r.Outcome)
}

// Shot records one resolved shot by a competitor
type Shot struct {
	Side     Side       `json:"side"`
	Position Position   `json:"position"`
	Result   ShotResult `json:"result"`
}
