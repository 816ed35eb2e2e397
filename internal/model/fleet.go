package model

import "fmt"

// Ship sizes are bounded for every roster
const (
	MinShipSize = 1
	MaxShipSize = 4
)

// ShipSpec describes a roster entry before placement
type ShipSpec struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// StandardFleet returns the ten-ship roster used for every match
func StandardFleet() []ShipSpec {
	return []ShipSpec{
		{Name: "Carrier", Size: 4},
		{Name: "Submarine 1", Size: 3},
		{Name: "Submarine 2", Size: 3},
		{Name: "Destroyer 1", Size: 2},
		{Name: "Destroyer 2", Size: 2},
		{Name: "Destroyer 3", Size: 2},
		{Name: "Patrol 1", Size: 1},
		{Name: "Patrol 2", Size: 1},
		{Name: "Patrol 3", Size: 1},
		{Name: "Patrol 4", Size: 1},
	}
}

// Fleet is one competitor's state: a board and the roster of ships it must hold.
// Human and machine fleets are the same type.
type Fleet struct {
	Board  *Board
	Roster []ShipSpec
}

// NewFleet creates a fleet with an empty board
func NewFleet(roster []ShipSpec) *Fleet {
	r := make([]ShipSpec, len(roster))
	copy(r, roster)
	return &Fleet{Board: NewBoard(), Roster: r}
}

// Spec returns the roster entry with the given name
func (f *Fleet) Spec(name string) (ShipSpec, bool) {
	for _, spec := range f.Roster {
		if spec.Name == name {
			return spec, true
		}
	}
	return ShipSpec{}, false
}

// Unplaced returns roster entries that have no ship on the board yet
func (f *Fleet) Unplaced() []ShipSpec {
	var unplaced []ShipSpec
	for _, spec := range f.Roster {
		if f.Board.Ship(spec.Name) == nil {
			unplaced = append(unplaced, spec)
		}
	}
	return unplaced
}

// IsComplete returns true when every roster ship is on the board
func (f *Fleet) IsComplete() bool {
	return len(f.Unplaced()) == 0
}

// HasLost returns true when the fleet is deployed and every ship is sunk
func (f *Fleet) HasLost() bool {
	return len(f.Board.Ships()) > 0 && f.Board.AllShipsSunk()
}

// SunkCount is recomputed from ship state each call
func (f *Fleet) SunkCount() int {
	return f.Board.SunkCount()
}

// ShipRecord is the persisted form of a placed ship
type ShipRecord struct {
	Name        string      `json:"name"`
	Size        int         `json:"size"`
	Origin      Position    `json:"origin"`
	Orientation Orientation `json:"orientation"`
	Hits        []bool      `json:"hits"`
}

// FleetSnapshot is the persisted form of a fleet. The grid itself is not stored.
type FleetSnapshot struct {
	Roster []ShipSpec   `json:"roster"`
	Ships  []ShipRecord `json:"ships"`
	Misses []Position   `json:"misses"`
}

// Snapshot captures the fleet's ships and missed cells
func (f *Fleet) Snapshot() FleetSnapshot {
	snap := FleetSnapshot{
		Roster: append([]ShipSpec(nil), f.Roster...),
		Ships:  []ShipRecord{},
		Misses: f.Board.Misses(),
	}
	if snap.Misses == nil {
		snap.Misses = []Position{}
	}
	for _, ship := range f.Board.Ships() {
		snap.Ships = append(snap.Ships, ShipRecord{
			Name:        ship.Name,
			Size:        ship.Size,
			Origin:      ship.Origin,
			Orientation: ship.Orientation,
			Hits:        append([]bool(nil), ship.Hits...),
		})
	}
	return snap
}

// RestoreFleet rebuilds a fleet, grid included, from a snapshot.
// Inconsistent snapshots are rejected with ErrInvalidSnapshot.
func RestoreFleet(snap FleetSnapshot) (*Fleet, error) {
	fleet := NewFleet(snap.Roster)
	board := fleet.Board

	for _, rec := range snap.Ships {
		if rec.Size < MinShipSize || rec.Size > MaxShipSize {
			return nil, fmt.Errorf("%w: ship %q has size %d", ErrInvalidSnapshot, rec.Name, rec.Size)
		}
		if len(rec.Hits) != rec.Size {
			return nil, fmt.Errorf("%w: ship %q has %d hit flags for size %d", ErrInvalidSnapshot, rec.Name, len(rec.Hits), rec.Size)
		}
		if board.Ship(rec.Name) != nil {
			return nil, fmt.Errorf("%w: duplicate ship %q", ErrInvalidSnapshot, rec.Name)
		}
		ship := NewShip(rec.Name, rec.Size)
		if !board.CanPlace(ship, rec.Origin, rec.Orientation) {
			return nil, fmt.Errorf("%w: ship %q cannot be placed at %s", ErrInvalidSnapshot, rec.Name, rec.Origin)
		}
		if err := ship.Place(rec.Origin, rec.Orientation); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		if err := board.PlaceShip(ship); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		copy(ship.Hits, rec.Hits)
		for i, pos := range ship.OccupiedCells() {
			if ship.Hits[i] {
				board.cells[pos.Row][pos.Col] = CellHit
			}
		}
		if ship.IsSunk() {
			board.markSunk(ship)
		}
	}

	for _, pos := range snap.Misses {
		if !pos.InBounds() {
			return nil, fmt.Errorf("%w: miss at %s", ErrInvalidSnapshot, pos)
		}
		if board.cells[pos.Row][pos.Col] != CellEmpty {
			return nil, fmt.Errorf("%w: miss at %s is not an empty cell", ErrInvalidSnapshot, pos)
		}
		board.cells[pos.Row][pos.Col] = CellMiss
	}

	return fleet, nil
}
