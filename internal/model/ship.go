package model

import "fmt"

// Orientation is the direction a ship extends from its origin
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal" // extends to the right
	OrientationVertical   Orientation = "vertical"   // extends downwards
)

// Valid returns true for a known orientation
func (o Orientation) Valid() bool {
	return o == OrientationHorizontal || o == OrientationVertical
}

// Ship is a fixed-size linear entity with per-segment hit tracking.
// Hits is indexed by segment offset from Origin.
type Ship struct {
	Name        string
	Size        int
	Origin      Position
	Orientation Orientation // empty until placed
	Hits        []bool
}

// NewShip creates an unplaced ship
func NewShip(name string, size int) *Ship {
	return &Ship{
		Name: name,
		Size: size,
		Hits: make([]bool, size),
	}
}

// IsPlaced returns true once Place has succeeded
func (s *Ship) IsPlaced() bool {
	return s.Orientation != ""
}

// Place fixes the ship's origin and orientation. It only checks the origin;
// the board checks that every segment fits.
func (s *Ship) Place(origin Position, orientation Orientation) error {
	if s.IsPlaced() {
		return ErrShipAlreadyPlaced
	}
	if !origin.InBounds() {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, origin)
	}
	if !orientation.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, orientation)
	}
	s.Origin = origin
	s.Orientation = orientation
	return nil
}

// OccupiedCells returns the ship's cells in segment order, or nil if unplaced
func (s *Ship) OccupiedCells() []Position {
	if !s.IsPlaced() {
		return nil
	}
	return cellsFrom(s.Origin, s.Orientation, s.Size)
}

// segment returns the segment index at pos, or -1
func (s *Ship) segment(pos Position) int {
	if !s.IsPlaced() {
		return -1
	}
	for i := 0; i < s.Size; i++ {
		if s.Origin.Step(s.Orientation, i) == pos {
			return i
		}
	}
	return -1
}

// Occupies returns true if one of the ship's segments is at pos
func (s *Ship) Occupies(pos Position) bool {
	return s.segment(pos) >= 0
}

// RegisterHit marks the segment at pos as hit. Hitting a segment twice is a no-op.
func (s *Ship) RegisterHit(pos Position) error {
	idx := s.segment(pos)
	if idx < 0 {
		return fmt.Errorf("%w: %s at %s", ErrNotOccupied, s.Name, pos)
	}
	s.Hits[idx] = true
	return nil
}

// IsSunk returns true iff every segment has been hit
func (s *Ship) IsSunk() bool {
	if len(s.Hits) == 0 {
		return false
	}
	for _, hit := range s.Hits {
		if !hit {
			return false
		}
	}
	return true
}

// HitCount returns how many segments have been hit
func (s *Ship) HitCount() int {
	count := 0
	for _, hit := range s.Hits {
		if hit {
			count++
		}
	}
	return count
}

func cellsFrom(origin Position, orientation Orientation, size int) []Position {
	cells := make([]Position, size)
	for i := 0; i < size; i++ {
		cells[i] = origin.Step(orientation, i)
	}
	return cells
}
