package model_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go2/internal/model"
)

type BoardSuite struct {
	suite.Suite
	board *model.Board
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) SetupTest() {
	s.board = model.NewBoard()
}

func (s *BoardSuite) place(name string, size int, row, col int, o model.Orientation) *model.Ship {
	ship := model.NewShip(name, size)
	pos := model.Position{Row: row, Col: col}
	s.Require().True(s.board.CanPlace(ship, pos, o))
	s.Require().NoError(ship.Place(pos, o))
	s.Require().NoError(s.board.PlaceShip(ship))
	return ship
}

func (s *BoardSuite) status(row, col int) model.CellState {
	state, err := s.board.CellStatus(model.Position{Row: row, Col: col})
	s.Require().NoError(err)
	return state
}

func (s *BoardSuite) shoot(row, col int) model.ShotResult {
	result, err := s.board.ReceiveShot(model.Position{Row: row, Col: col})
	s.Require().NoError(err)
	return result
}

// Placement tests

func (s *BoardSuite) TestNewBoardIsEmpty() {
	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			s.Equal(model.CellEmpty, s.status(row, col))
		}
	}
	s.Empty(s.board.Ships())
	s.Len(s.board.UnshotCells(), model.BoardSize*model.BoardSize)
}

func (s *BoardSuite) TestPlaceShipMarksOnlyItsCells() {
	s.place("Carrier", 4, 5, 4, model.OrientationVertical)

	occupied := map[model.Position]bool{
		{Row: 5, Col: 4}: true, {Row: 6, Col: 4}: true, {Row: 7, Col: 4}: true, {Row: 8, Col: 4}: true,
	}
	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			expected := model.CellEmpty
			if occupied[model.Position{Row: row, Col: col}] {
				expected = model.CellOccupied
			}
			s.Equal(expected, s.status(row, col), "cell (%d,%d)", row, col)
		}
	}
}

func (s *BoardSuite) TestCanPlaceRejectsOutOfBounds() {
	ship := model.NewShip("Carrier", 4)
	s.False(s.board.CanPlace(ship, model.Position{Row: 7, Col: 0}, model.OrientationVertical))
	s.False(s.board.CanPlace(ship, model.Position{Row: 0, Col: 7}, model.OrientationHorizontal))
	s.False(s.board.CanPlace(ship, model.Position{Row: -1, Col: 0}, model.OrientationHorizontal))
	s.True(s.board.CanPlace(ship, model.Position{Row: 6, Col: 0}, model.OrientationVertical))
	s.True(s.board.CanPlace(ship, model.Position{Row: 0, Col: 6}, model.OrientationHorizontal))
}

func (s *BoardSuite) TestCanPlaceRejectsOverlap() {
	s.place("Submarine 1", 3, 2, 2, model.OrientationHorizontal)

	ship := model.NewShip("Destroyer 1", 2)
	s.False(s.board.CanPlace(ship, model.Position{Row: 1, Col: 3}, model.OrientationVertical))
	s.True(s.board.CanPlace(ship, model.Position{Row: 3, Col: 3}, model.OrientationVertical))
}

func (s *BoardSuite) TestCanPlaceIsPure() {
	ship := model.NewShip("Carrier", 4)
	s.True(s.board.CanPlace(ship, model.Position{Row: 0, Col: 0}, model.OrientationHorizontal))
	s.Equal(model.CellEmpty, s.status(0, 0))
	s.False(ship.IsPlaced())
}

func (s *BoardSuite) TestCanPlaceRejectsInvalidOrientation() {
	ship := model.NewShip("Patrol 1", 1)
	s.False(s.board.CanPlace(ship, model.Position{Row: 0, Col: 0}, model.Orientation("diagonal")))
}

func (s *BoardSuite) TestPlaceShipRequiresPlacedShip() {
	err := s.board.PlaceShip(model.NewShip("Patrol 1", 1))
	s.ErrorIs(err, model.ErrShipNotPlaced)
}

func (s *BoardSuite) TestPlaceShipRejectsShipRunningOffGrid() {
	ship := model.NewShip("Carrier", 4)
	s.Require().NoError(ship.Place(model.Position{Row: 8, Col: 8}, model.OrientationHorizontal))
	s.ErrorIs(s.board.PlaceShip(ship), model.ErrOutOfBounds)
	s.Empty(s.board.Ships())
}

// Shot tests

func (s *BoardSuite) TestShotOnEmptyCellIsMiss() {
	s.Equal(model.MissResult(), s.shoot(0, 0))
	s.Equal(model.CellMiss, s.status(0, 0))
}

func (s *BoardSuite) TestSizeOneShipSinksOnFirstHit() {
	s.place("Patrol 1", 1, 5, 4, model.OrientationVertical)

	s.Equal(model.SunkResult("Patrol 1"), s.shoot(5, 4))
	s.Equal(model.CellSunk, s.status(5, 4))
	s.True(s.board.AllShipsSunk())
}

func (s *BoardSuite) TestCarrierSinksOnlyOnFinalHit() {
	s.place("Carrier", 4, 5, 4, model.OrientationVertical)

	s.Equal(model.HitResult(), s.shoot(5, 4))
	s.Equal(model.AlreadyShotResult(), s.shoot(5, 4))
	s.Equal(model.HitResult(), s.shoot(6, 4))
	s.Equal(model.HitResult(), s.shoot(7, 4))
	s.False(s.board.AllShipsSunk())
	s.Equal(model.SunkResult("Carrier"), s.shoot(8, 4))
	s.True(s.board.AllShipsSunk())
}

func (s *BoardSuite) TestSinkingMarksAllCellsSunk() {
	s.place("Submarine 1", 3, 0, 0, model.OrientationHorizontal)

	s.shoot(0, 0)
	s.shoot(0, 1)
	s.Equal(model.CellHit, s.status(0, 0))
	s.Equal(model.CellHit, s.status(0, 1))
	s.Equal(model.CellOccupied, s.status(0, 2))

	s.shoot(0, 2)
	for col := 0; col < 3; col++ {
		s.Equal(model.CellSunk, s.status(0, col))
	}
}

func (s *BoardSuite) TestRepeatedShotLeavesStateUnchanged() {
	s.place("Destroyer 1", 2, 3, 3, model.OrientationHorizontal)

	first := s.shoot(3, 3)
	s.Equal(model.HitResult(), first)
	before := s.board.UnshotCells()
	ship := s.board.Ship("Destroyer 1")
	hitsBefore := append([]bool(nil), ship.Hits...)

	for i := 0; i < 3; i++ {
		s.Equal(model.AlreadyShotResult(), s.shoot(3, 3))
	}
	s.Equal(before, s.board.UnshotCells())
	s.Equal(hitsBefore, ship.Hits)
	s.Equal(model.CellHit, s.status(3, 3))

	s.shoot(9, 9)
	s.Equal(model.AlreadyShotResult(), s.shoot(9, 9))
	s.Equal(model.CellMiss, s.status(9, 9))
}

func (s *BoardSuite) TestShotOnSunkCellIsAlreadyShot() {
	s.place("Patrol 1", 1, 0, 0, model.OrientationHorizontal)
	s.shoot(0, 0)
	s.Equal(model.AlreadyShotResult(), s.shoot(0, 0))
}

func (s *BoardSuite) TestOutOfBoundsShotFails() {
	for _, pos := range []model.Position{{Row: -1, Col: 0}, {Row: 0, Col: 10}, {Row: 10, Col: 10}} {
		_, err := s.board.ReceiveShot(pos)
		s.ErrorIs(err, model.ErrOutOfBounds)
		_, err = s.board.CellStatus(pos)
		s.ErrorIs(err, model.ErrOutOfBounds)
	}
}

func (s *BoardSuite) TestAllShipsSunkRequiresEveryShip() {
	s.place("Patrol 1", 1, 0, 0, model.OrientationHorizontal)
	s.place("Patrol 2", 1, 9, 9, model.OrientationHorizontal)

	s.shoot(0, 0)
	s.False(s.board.AllShipsSunk())
	s.Equal(1, s.board.SunkCount())

	s.shoot(9, 9)
	s.True(s.board.AllShipsSunk())
	s.Equal(2, s.board.SunkCount())
}

func (s *BoardSuite) TestAllShipsSunkVacuousOnEmptyBoard() {
	s.True(s.board.AllShipsSunk())
}

func (s *BoardSuite) TestUnshotCellsExcludesResolvedCells() {
	s.place("Patrol 1", 1, 0, 1, model.OrientationHorizontal)
	s.shoot(0, 0)
	s.shoot(0, 1)

	cells := s.board.UnshotCells()
	s.Len(cells, model.BoardSize*model.BoardSize-2)
	s.Equal(model.Position{Row: 0, Col: 2}, cells[0])
	s.True(s.board.WasShot(model.Position{Row: 0, Col: 0}))
	s.False(s.board.WasShot(model.Position{Row: 0, Col: 2}))
	s.False(s.board.WasShot(model.Position{Row: -1, Col: 0}))
}

func (s *BoardSuite) TestMissesAreRowMajor() {
	s.shoot(4, 4)
	s.shoot(1, 7)
	s.Equal([]model.Position{{Row: 1, Col: 7}, {Row: 4, Col: 4}}, s.board.Misses())
}

func (s *BoardSuite) TestResetClearsEverything() {
	s.place("Carrier", 4, 0, 0, model.OrientationHorizontal)
	s.shoot(5, 5)

	s.board.Reset()
	s.Empty(s.board.Ships())
	s.Equal(model.CellEmpty, s.status(0, 0))
	s.Equal(model.CellEmpty, s.status(5, 5))
}

func (s *BoardSuite) TestShipAtFindsOwner() {
	carrier := s.place("Carrier", 4, 2, 2, model.OrientationVertical)
	s.Same(carrier, s.board.ShipAt(model.Position{Row: 4, Col: 2}))
	s.Nil(s.board.ShipAt(model.Position{Row: 4, Col: 3}))
}
