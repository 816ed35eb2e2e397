package model

import (
	"fmt"
	"time"
)

// MatchID uniquely identifies a match
type MatchID string

// MatchPhase is the turn state of a match
type MatchPhase string

const (
	PhasePlacement   MatchPhase = "placement"    // Human is positioning ships
	PhaseHumanTurn   MatchPhase = "human_turn"   // Waiting for the human to fire
	PhaseMachineTurn MatchPhase = "machine_turn" // Machine is firing
	PhaseOver        MatchPhase = "over"         // A fleet has been destroyed
	PhaseAbandoned   MatchPhase = "abandoned"    // Match was cancelled
)

// IsTerminal returns true for phases that accept no more shots
func (p MatchPhase) IsTerminal() bool {
	return p == PhaseOver || p == PhaseAbandoned
}

func (p MatchPhase) valid() bool {
	switch p {
	case PhasePlacement, PhaseHumanTurn, PhaseMachineTurn, PhaseOver, PhaseAbandoned:
		return true
	}
	return false
}

// Side identifies a competitor
type Side string

const (
	SideHuman   Side = "human"
	SideMachine Side = "machine"
)

// Match is the explicit state of one game between a player and the machine
type Match struct {
	ID      MatchID
	OwnerID PlayerID
	Phase   MatchPhase
	Winner  Side // set only in PhaseOver

	Human     *Fleet
	Machine   *Fleet
	Targeting TargetingState

	// Shot counters are statistics only; defeat is always derived from ship state
	HumanShots   int
	MachineShots int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMatch creates a match in the placement phase with empty fleets
func NewMatch(id MatchID, owner PlayerID, roster []ShipSpec, strategy string, now time.Time) *Match {
	return &Match{
		ID:        id,
		OwnerID:   owner,
		Phase:     PhasePlacement,
		Human:     NewFleet(roster),
		Machine:   NewFleet(roster),
		Targeting: TargetingState{Strategy: strategy, Mode: TargetingHunt},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FleetFor returns the fleet belonging to side
func (m *Match) FleetFor(side Side) *Fleet {
	if side == SideMachine {
		return m.Machine
	}
	return m.Human
}

// MatchRecord is the persisted form of a match
type MatchRecord struct {
	ID           MatchID        `json:"id"`
	OwnerID      PlayerID       `json:"owner_id"`
	Phase        MatchPhase     `json:"phase"`
	Winner       Side           `json:"winner,omitempty"`
	Human        FleetSnapshot  `json:"human"`
	Machine      FleetSnapshot  `json:"machine"`
	Targeting    TargetingState `json:"targeting"`
	HumanShots   int            `json:"human_shots"`
	MachineShots int            `json:"machine_shots"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Snapshot captures the match for persistence
func (m *Match) Snapshot() MatchRecord {
	targeting := m.Targeting
	targeting.Pending = append([]Position{}, m.Targeting.Pending...)
	if m.Targeting.LastShot != nil {
		last := *m.Targeting.LastShot
		targeting.LastShot = &last
	}
	return MatchRecord{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Phase:        m.Phase,
		Winner:       m.Winner,
		Human:        m.Human.Snapshot(),
		Machine:      m.Machine.Snapshot(),
		Targeting:    targeting,
		HumanShots:   m.HumanShots,
		MachineShots: m.MachineShots,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// RestoreMatch rebuilds a match from its persisted record
func RestoreMatch(rec MatchRecord) (*Match, error) {
	if !rec.Phase.valid() {
		return nil, fmt.Errorf("%w: unknown phase %q", ErrInvalidSnapshot, rec.Phase)
	}
	if err := rec.Targeting.validate(); err != nil {
		return nil, fmt.Errorf("targeting: %w", err)
	}
	human, err := RestoreFleet(rec.Human)
	if err != nil {
		return nil, fmt.Errorf("human fleet: %w", err)
	}
	machine, err := RestoreFleet(rec.Machine)
	if err != nil {
		return nil, fmt.Errorf("machine fleet: %w", err)
	}
	m := &Match{
		ID:           rec.ID,
		OwnerID:      rec.OwnerID,
		Phase:        rec.Phase,
		Winner:       rec.Winner,
		Human:        human,
		Machine:      machine,
		Targeting:    rec.Targeting,
		HumanShots:   rec.HumanShots,
		MachineShots: rec.MachineShots,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	if m.Targeting.Mode == "" {
		m.Targeting.Mode = TargetingHunt
	}
	return m, nil
}

// MatchSummary is a lightweight listing entry
type MatchSummary struct {
	ID          MatchID
	Phase       MatchPhase
	Winner      Side
	HumanSunk   int
	MachineSunk int
	UpdatedAt   time.Time
}

// Summary builds a listing entry, recomputing sunk counts from ship state
func (m *Match) Summary() MatchSummary {
	return MatchSummary{
		ID:          m.ID,
		Phase:       m.Phase,
		Winner:      m.Winner,
		HumanSunk:   m.Human.SunkCount(),
		MachineSunk: m.Machine.SunkCount(),
		UpdatedAt:   m.UpdatedAt,
	}
}
