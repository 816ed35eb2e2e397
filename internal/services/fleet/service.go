package fleet

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/model"
)

var orientations = []model.Orientation{model.OrientationHorizontal, model.OrientationVertical}

// Placement is a candidate origin and orientation for a ship
type Placement struct {
	Origin      model.Position
	Orientation model.Orientation
}

// Service positions ships on a fleet's board
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new fleet Service
func New(rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: rnd,
		logger: logger.With(slog.String("component", "fleet-service")),
	}
}

// PlaceShip positions the named roster ship. It returns ErrOutOfBounds if the
// ship would leave the grid and ErrOverlap if it would cover another ship.
func (s *Service) PlaceShip(f *model.Fleet, name string, origin model.Position, orientation model.Orientation) (*model.Ship, error) {
	spec, ok := f.Spec(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownShip, name)
	}
	if f.Board.Ship(name) != nil {
		return nil, fmt.Errorf("%w: %q", model.ErrShipAlreadyPlaced, name)
	}
	if !orientation.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidOrientation, orientation)
	}

	ship := model.NewShip(spec.Name, spec.Size)
	for i := 0; i < spec.Size; i++ {
		if pos := origin.Step(orientation, i); !pos.InBounds() {
			return nil, fmt.Errorf("%w: %s would cover %s", model.ErrOutOfBounds, name, pos)
		}
	}
	if !f.Board.CanPlace(ship, origin, orientation) {
		return nil, fmt.Errorf("%w: %s at %s", model.ErrOverlap, name, origin)
	}
	if err := ship.Place(origin, orientation); err != nil {
		return nil, err
	}
	if err := f.Board.PlaceShip(ship); err != nil {
		return nil, err
	}
	return ship, nil
}

// ValidPlacements lists every origin and orientation the ship could take,
// in row-major order with horizontal before vertical
func ValidPlacements(board *model.Board, ship *model.Ship) []Placement {
	var placements []Placement
	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			origin := model.Position{Row: row, Col: col}
			for _, o := range orientations {
				if board.CanPlace(ship, origin, o) {
					placements = append(placements, Placement{Origin: origin, Orientation: o})
				}
			}
		}
	}
	return placements
}

// AutoPlace positions every unplaced roster ship, in roster order, at a
// placement chosen uniformly among those still available
func (s *Service) AutoPlace(f *model.Fleet) error {
	for _, spec := range f.Unplaced() {
		ship := model.NewShip(spec.Name, spec.Size)
		candidates := ValidPlacements(f.Board, ship)
		if len(candidates) == 0 {
			return fmt.Errorf("%w: %s", model.ErrPlacementExhausted, spec.Name)
		}
		choice := candidates[s.random.Intn(len(candidates))]
		if _, err := s.PlaceShip(f, spec.Name, choice.Origin, choice.Orientation); err != nil {
			return err
		}
	}
	s.logger.Debug("fleet auto-placed", slog.Int("ships", len(f.Board.Ships())))
	return nil
}

// Reset removes every ship from the fleet's board
func (s *Service) Reset(f *model.Fleet) {
	f.Board.Reset()
}
