package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventMatchStarted   EventType = "match_started"
	EventShotFired      EventType = "shot_fired"
	EventShipSunk       EventType = "ship_sunk"
	EventTurnChanged    EventType = "turn_changed"
	EventMatchOver      EventType = "match_over"
	EventMatchAbandoned EventType = "match_abandoned"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	MatchID   MatchID   `json:"match_id"`
	PlayerID  PlayerID  `json:"player_id,omitempty"` // The match owner
	Payload   any       `json:"payload,omitempty"`
}

// ShotFiredPayload contains data for shot fired events
type ShotFiredPayload struct {
	Side     Side        `json:"side"`
	Position Position    `json:"position"`
	Outcome  ShotOutcome `json:"outcome"`
	ShipName string      `json:"ship_name,omitempty"`
}

// ShipSunkPayload contains data for ship sunk events
type ShipSunkPayload struct {
	Owner    Side   `json:"owner"` // whose ship went down
	ShipName string `json:"ship_name"`
	Size     int    `json:"size"`
}

// TurnChangedPayload contains data for turn changed events
type TurnChangedPayload struct {
	Phase MatchPhase `json:"phase"`
}

// MatchOverPayload contains data for match over events
type MatchOverPayload struct {
	Winner       Side `json:"winner"`
	HumanShots   int  `json:"human_shots"`
	MachineShots int  `json:"machine_shots"`
}

// MatchAbandonedPayload contains data for match abandoned events
type MatchAbandonedPayload struct {
	Reason string `json:"reason"`
}
