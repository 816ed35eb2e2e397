package model

import "fmt"

// BoardSize is the grid dimension for every board
const BoardSize = 10

// Position identifies a cell on the board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// InBounds returns true if the position is on the grid
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Step returns the position n cells along the given orientation
func (p Position) Step(o Orientation, n int) Position {
	if o == OrientationVertical {
		return Position{Row: p.Row + n, Col: p.Col}
	}
	return Position{Row: p.Row, Col: p.Col + n}
}

// Neighbors returns the orthogonal neighbors in up, down, left, right order,
// including off-grid ones
func (p Position) Neighbors() []Position {
	return []Position{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row + 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
	}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// CellState is the resolution state of a single cell
type CellState string

const (
	CellEmpty    CellState = "empty"
	CellOccupied CellState = "occupied"
	CellHit      CellState = "hit"
	CellSunk     CellState = "sunk"
	CellMiss     CellState = "miss"
)

// IsShot returns true once a shot has resolved the cell
func (c CellState) IsShot() bool {
	return c == CellHit || c == CellSunk || c == CellMiss
}

// Board is a competitor's grid: the cell states plus the ships placed on it.
// Its persisted form is a FleetSnapshot; the grid is always rebuilt from ships and misses.
type Board struct {
	cells [BoardSize][BoardSize]CellState
	ships []*Ship
}

// NewBoard creates an empty board
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset clears all ships and shots
func (b *Board) Reset() {
	for row := range b.cells {
		for col := range b.cells[row] {
			b.cells[row][col] = CellEmpty
		}
	}
	b.ships = nil
}

// CanPlace returns true if every cell the ship would cover is on the grid and empty
func (b *Board) CanPlace(ship *Ship, origin Position, orientation Orientation) bool {
	if ship == nil || ship.Size < 1 || !orientation.Valid() {
		return false
	}
	for _, pos := range cellsFrom(origin, orientation, ship.Size) {
		if !pos.InBounds() || b.cells[pos.Row][pos.Col] != CellEmpty {
			return false
		}
	}
	return true
}

// PlaceShip commits an already-positioned ship. Callers validate with CanPlace first;
// overlap is not re-checked here.
func (b *Board) PlaceShip(ship *Ship) error {
	if !ship.IsPlaced() {
		return fmt.Errorf("%w: %s", ErrShipNotPlaced, ship.Name)
	}
	cells := ship.OccupiedCells()
	for _, pos := range cells {
		if !pos.InBounds() {
			return fmt.Errorf("%w: %s extends to %s", ErrOutOfBounds, ship.Name, pos)
		}
	}
	for _, pos := range cells {
		b.cells[pos.Row][pos.Col] = CellOccupied
	}
	b.ships = append(b.ships, ship)
	return nil
}

// ReceiveShot resolves a shot at pos. A cell already resolved yields AlreadyShot
// and leaves the board untouched.
func (b *Board) ReceiveShot(pos Position) (ShotResult, error) {
	if !pos.InBounds() {
		return ShotResult{}, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}

	switch b.cells[pos.Row][pos.Col] {
	case CellEmpty:
		b.cells[pos.Row][pos.Col] = CellMiss
		return MissResult(), nil
	case CellOccupied:
		ship := b.ShipAt(pos)
		if ship == nil {
			return ShotResult{}, fmt.Errorf("%w: no ship registered at %s", ErrNotOccupied, pos)
		}
		if err := ship.RegisterHit(pos); err != nil {
			return ShotResult{}, err
		}
		b.cells[pos.Row][pos.Col] = CellHit
		if ship.IsSunk() {
			b.markSunk(ship)
			return SunkResult(ship.Name), nil
		}
		return HitResult(), nil
	default:
		return AlreadyShotResult(), nil
	}
}

func (b *Board) markSunk(ship *Ship) {
	for _, pos := range ship.OccupiedCells() {
		b.cells[pos.Row][pos.Col] = CellSunk
	}
}

// CellStatus returns the state of the cell at pos
func (b *Board) CellStatus(pos Position) (CellState, error) {
	if !pos.InBounds() {
		return "", fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	return b.cells[pos.Row][pos.Col], nil
}

// WasShot returns true if pos is on the grid and has already been resolved
func (b *Board) WasShot(pos Position) bool {
	return pos.InBounds() && b.cells[pos.Row][pos.Col].IsShot()
}

// UnshotCells returns every cell not yet fired at, in row-major order
func (b *Board) UnshotCells() []Position {
	var cells []Position
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if !b.cells[row][col].IsShot() {
				cells = append(cells, Position{Row: row, Col: col})
			}
		}
	}
	return cells
}

// AllShipsSunk is the defeat condition. It is derived from ship state only,
// and is vacuously true for a board with no ships.
func (b *Board) AllShipsSunk() bool {
	for _, ship := range b.ships {
		if !ship.IsSunk() {
			return false
		}
	}
	return true
}

// SunkCount returns how many ships are sunk
func (b *Board) SunkCount() int {
	count := 0
	for _, ship := range b.ships {
		if ship.IsSunk() {
			count++
		}
	}
	return count
}

// ShipAt returns the ship covering pos, or nil
func (b *Board) ShipAt(pos Position) *Ship {
	for _, ship := range b.ships {
		if ship.Occupies(pos) {
			return ship
		}
	}
	return nil
}

// Ship returns the placed ship with the given name, or nil
func (b *Board) Ship(name string) *Ship {
	for _, ship := range b.ships {
		if ship.Name == name {
			return ship
		}
	}
	return nil
}

// Ships returns the placed ships in placement order
func (b *Board) Ships() []*Ship {
	ships := make([]*Ship, len(b.ships))
	copy(ships, b.ships)
	return ships
}

// Misses returns every missed cell in row-major order
func (b *Board) Misses() []Position {
	var misses []Position
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.cells[row][col] == CellMiss {
				misses = append(misses, Position{Row: row, Col: col})
			}
		}
	}
	return misses
}
