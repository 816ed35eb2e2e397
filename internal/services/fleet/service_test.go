package fleet_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go2/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/fleet"
	"github.com/mcoot/battleship-go2/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	service    *fleet.Service
	fleet      *model.Fleet
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.service = fleet.New(s.mockRandom, testutil.NopLogger())
	s.fleet = model.NewFleet(model.StandardFleet())
}

func (s *ServiceSuite) TestPlaceShipSucceeds() {
	ship, err := s.service.PlaceShip(s.fleet, "Carrier", model.Position{Row: 5, Col: 4}, model.OrientationVertical)
	s.Require().NoError(err)
	s.Equal(4, ship.Size)
	s.Same(ship, s.fleet.Board.Ship("Carrier"))

	state, _ := s.fleet.Board.CellStatus(model.Position{Row: 8, Col: 4})
	s.Equal(model.CellOccupied, state)
}

func (s *ServiceSuite) TestPlaceShipOutOfBounds() {
	_, err := s.service.PlaceShip(s.fleet, "Carrier", model.Position{Row: 7, Col: 4}, model.OrientationVertical)
	s.ErrorIs(err, model.ErrOutOfBounds)
	s.Nil(s.fleet.Board.Ship("Carrier"))
}

func (s *ServiceSuite) TestPlaceShipOverlap() {
	_, err := s.service.PlaceShip(s.fleet, "Carrier", model.Position{Row: 2, Col: 2}, model.OrientationHorizontal)
	s.Require().NoError(err)

	_, err = s.service.PlaceShip(s.fleet, "Submarine 1", model.Position{Row: 0, Col: 3}, model.OrientationVertical)
	s.ErrorIs(err, model.ErrOverlap)
}

func (s *ServiceSuite) TestPlaceShipUnknownName() {
	_, err := s.service.PlaceShip(s.fleet, "Battleship", model.Position{}, model.OrientationVertical)
	s.ErrorIs(err, model.ErrUnknownShip)
}

func (s *ServiceSuite) TestPlaceShipTwice() {
	_, err := s.service.PlaceShip(s.fleet, "Patrol 1", model.Position{Row: 0, Col: 0}, model.OrientationVertical)
	s.Require().NoError(err)
	_, err = s.service.PlaceShip(s.fleet, "Patrol 1", model.Position{Row: 5, Col: 5}, model.OrientationVertical)
	s.ErrorIs(err, model.ErrShipAlreadyPlaced)
}

func (s *ServiceSuite) TestPlaceShipInvalidOrientation() {
	_, err := s.service.PlaceShip(s.fleet, "Patrol 1", model.Position{}, "diagonal")
	s.ErrorIs(err, model.ErrInvalidOrientation)
}

func (s *ServiceSuite) TestAutoPlaceDeterministicWithMock() {
	s.Require().NoError(s.service.AutoPlace(s.fleet))
	s.True(s.fleet.IsComplete())

	// first candidate every time: carrier fills (0,0)-(0,3)
	carrier := s.fleet.Board.Ship("Carrier")
	s.Equal(model.Position{Row: 0, Col: 0}, carrier.Origin)
	s.Equal(model.OrientationHorizontal, carrier.Orientation)
	sub := s.fleet.Board.Ship("Submarine 1")
	s.Equal(model.Position{Row: 0, Col: 4}, sub.Origin)
}

func (s *ServiceSuite) TestAutoPlaceKeepsManualShips() {
	_, err := s.service.PlaceShip(s.fleet, "Carrier", model.Position{Row: 9, Col: 0}, model.OrientationHorizontal)
	s.Require().NoError(err)

	s.Require().NoError(s.service.AutoPlace(s.fleet))
	s.Equal(model.Position{Row: 9, Col: 0}, s.fleet.Board.Ship("Carrier").Origin)
	s.True(s.fleet.IsComplete())
}

func (s *ServiceSuite) TestAutoPlaceWithRealRandomNeverOverlaps() {
	svc := fleet.New(random.New(), testutil.NopLogger())
	for i := 0; i < 25; i++ {
		f := model.NewFleet(model.StandardFleet())
		s.Require().NoError(svc.AutoPlace(f))

		covered := map[model.Position]string{}
		for _, ship := range f.Board.Ships() {
			for _, pos := range ship.OccupiedCells() {
				s.True(pos.InBounds())
				s.NotContains(covered, pos, "cell %s shared", pos)
				covered[pos] = ship.Name
			}
		}
		s.Len(covered, 20)
	}
}

func (s *ServiceSuite) TestAutoPlaceExhausted() {
	f := model.NewFleet([]model.ShipSpec{{Name: "A", Size: 4}})
	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			if (row+col)%3 == 0 {
				_, err := f.Board.ReceiveShot(model.Position{Row: row, Col: col})
				s.Require().NoError(err)
			}
		}
	}
	s.ErrorIs(s.service.AutoPlace(f), model.ErrPlacementExhausted)
}

func (s *ServiceSuite) TestReset() {
	s.Require().NoError(s.service.AutoPlace(s.fleet))
	s.service.Reset(s.fleet)
	s.Len(s.fleet.Unplaced(), 10)
}

func (s *ServiceSuite) TestValidPlacementsOnEmptyBoard() {
	placements := fleet.ValidPlacements(model.NewBoard(), model.NewShip("Carrier", 4))
	// 7 origins per row horizontally and 7 per column vertically
	s.Len(placements, 2*7*model.BoardSize)
	s.Equal(fleet.Placement{Origin: model.Position{Row: 0, Col: 0}, Orientation: model.OrientationHorizontal}, placements[0])
}
