package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go2/internal/model"
)

func TestShipOccupiedCells(t *testing.T) {
	ship := model.NewShip("Submarine 1", 3)
	assert.Nil(t, ship.OccupiedCells())

	require.NoError(t, ship.Place(model.Position{Row: 2, Col: 5}, model.OrientationHorizontal))
	assert.Equal(t, []model.Position{{Row: 2, Col: 5}, {Row: 2, Col: 6}, {Row: 2, Col: 7}}, ship.OccupiedCells())

	vertical := model.NewShip("Destroyer 1", 2)
	require.NoError(t, vertical.Place(model.Position{Row: 0, Col: 0}, model.OrientationVertical))
	assert.Equal(t, []model.Position{{Row: 0, Col: 0}, {Row: 1, Col: 0}}, vertical.OccupiedCells())
}

func TestShipPlaceOnlyOnce(t *testing.T) {
	ship := model.NewShip("Patrol 1", 1)
	require.NoError(t, ship.Place(model.Position{Row: 1, Col: 1}, model.OrientationVertical))

	err := ship.Place(model.Position{Row: 3, Col: 3}, model.OrientationVertical)
	assert.ErrorIs(t, err, model.ErrShipAlreadyPlaced)
	assert.Equal(t, model.Position{Row: 1, Col: 1}, ship.Origin)
}

func TestShipPlaceValidatesOrigin(t *testing.T) {
	ship := model.NewShip("Patrol 1", 1)
	assert.ErrorIs(t, ship.Place(model.Position{Row: 10, Col: 0}, model.OrientationVertical), model.ErrOutOfBounds)
	assert.ErrorIs(t, ship.Place(model.Position{Row: 0, Col: 0}, ""), model.ErrInvalidOrientation)
	assert.False(t, ship.IsPlaced())
}

func TestShipRegisterHit(t *testing.T) {
	ship := model.NewShip("Destroyer 1", 2)
	require.NoError(t, ship.Place(model.Position{Row: 4, Col: 4}, model.OrientationHorizontal))

	require.NoError(t, ship.RegisterHit(model.Position{Row: 4, Col: 5}))
	assert.Equal(t, []bool{false, true}, ship.Hits)
	assert.False(t, ship.IsSunk())

	// idempotent
	require.NoError(t, ship.RegisterHit(model.Position{Row: 4, Col: 5}))
	assert.Equal(t, 1, ship.HitCount())

	require.NoError(t, ship.RegisterHit(model.Position{Row: 4, Col: 4}))
	assert.True(t, ship.IsSunk())
}

func TestShipRegisterHitOnForeignCell(t *testing.T) {
	ship := model.NewShip("Destroyer 1", 2)
	require.NoError(t, ship.Place(model.Position{Row: 4, Col: 4}, model.OrientationHorizontal))

	err := ship.RegisterHit(model.Position{Row: 5, Col: 4})
	assert.ErrorIs(t, err, model.ErrNotOccupied)
	assert.Equal(t, 0, ship.HitCount())
}

func TestSizeOneShipSinksWithOneHit(t *testing.T) {
	ship := model.NewShip("Patrol 1", 1)
	require.NoError(t, ship.Place(model.Position{Row: 5, Col: 4}, model.OrientationVertical))
	require.NoError(t, ship.RegisterHit(model.Position{Row: 5, Col: 4}))
	assert.True(t, ship.IsSunk())
}

func TestShotResultStrings(t *testing.T) {
	assert.Equal(t, "hit", model.HitResult().String())
	assert.Equal(t, "sunk(Carrier)", model.SunkResult("Carrier").String())
	assert.True(t, model.SunkResult("Carrier").Struck())
	assert.False(t, model.AlreadyShotResult().Struck())
}

func TestPositionNeighborsOrder(t *testing.T) {
	p := model.Position{Row: 3, Col: 3}
	assert.Equal(t, []model.Position{
		{Row: 2, Col: 3}, {Row: 4, Col: 3}, {Row: 3, Col: 2}, {Row: 3, Col: 4},
	}, p.Neighbors())
}
