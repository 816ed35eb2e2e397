package match_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/match"
)

func newDuel(t *testing.T) *model.Match {
	t.Helper()
	m := model.NewMatch("m1", "p1", []model.ShipSpec{{Name: "Destroyer 1", Size: 2}}, model.BotStrategyRandom, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	for _, f := range []*model.Fleet{m.Human, m.Machine} {
		ship := model.NewShip("Destroyer 1", 2)
		require.NoError(t, ship.Place(model.Position{Row: 4, Col: 4}, model.OrientationHorizontal))
		require.NoError(t, f.Board.PlaceShip(ship))
	}
	m.Phase = model.PhaseHumanTurn
	return m
}

func TestApplyHumanShotTransitions(t *testing.T) {
	m := newDuel(t)

	result, err := match.ApplyHumanShot(m, model.Position{Row: 4, Col: 4})
	require.NoError(t, err)
	assert.Equal(t, model.HitResult(), result)
	assert.Equal(t, model.PhaseHumanTurn, m.Phase)

	result, err = match.ApplyHumanShot(m, model.Position{Row: 4, Col: 4})
	require.NoError(t, err)
	assert.Equal(t, model.AlreadyShotResult(), result)
	assert.Equal(t, model.PhaseHumanTurn, m.Phase)
	assert.Equal(t, 1, m.HumanShots)

	result, err = match.ApplyHumanShot(m, model.Position{Row: 4, Col: 5})
	require.NoError(t, err)
	assert.Equal(t, model.SunkResult("Destroyer 1"), result)
	assert.Equal(t, model.PhaseOver, m.Phase)
	assert.Equal(t, model.SideHuman, m.Winner)

	_, err = match.ApplyHumanShot(m, model.Position{Row: 0, Col: 0})
	assert.ErrorIs(t, err, model.ErrMatchOver)
}

func TestApplyHumanShotMissPassesTurn(t *testing.T) {
	m := newDuel(t)

	result, err := match.ApplyHumanShot(m, model.Position{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, model.MissResult(), result)
	assert.Equal(t, model.PhaseMachineTurn, m.Phase)

	_, err = match.ApplyHumanShot(m, model.Position{Row: 1, Col: 1})
	assert.ErrorIs(t, err, model.ErrNotPlayerTurn)
}

func TestApplyHumanShotOutOfBounds(t *testing.T) {
	m := newDuel(t)

	_, err := match.ApplyHumanShot(m, model.Position{Row: -1, Col: 3})
	assert.ErrorIs(t, err, model.ErrOutOfBounds)
	assert.Equal(t, model.PhaseHumanTurn, m.Phase)
	assert.Equal(t, 0, m.HumanShots)
}

func TestApplyHumanShotAbandoned(t *testing.T) {
	m := newDuel(t)
	m.Phase = model.PhaseAbandoned

	_, err := match.ApplyHumanShot(m, model.Position{Row: 0, Col: 0})
	assert.ErrorIs(t, err, model.ErrMatchAbandoned)
}
