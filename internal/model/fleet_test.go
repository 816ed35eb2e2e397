package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go2/internal/model"
)

func placeOn(t *testing.T, fleet *model.Fleet, name string, row, col int, o model.Orientation) *model.Ship {
	t.Helper()
	spec, ok := fleet.Spec(name)
	require.True(t, ok)
	ship := model.NewShip(spec.Name, spec.Size)
	require.True(t, fleet.Board.CanPlace(ship, model.Position{Row: row, Col: col}, o))
	require.NoError(t, ship.Place(model.Position{Row: row, Col: col}, o))
	require.NoError(t, fleet.Board.PlaceShip(ship))
	return ship
}

func TestStandardFleetRoster(t *testing.T) {
	roster := model.StandardFleet()
	require.Len(t, roster, 10)

	total := 0
	names := map[string]bool{}
	for _, spec := range roster {
		total += spec.Size
		names[spec.Name] = true
	}
	assert.Equal(t, 20, total)
	assert.Len(t, names, 10)
}

func TestFleetCompleteness(t *testing.T) {
	fleet := model.NewFleet([]model.ShipSpec{{Name: "Patrol 1", Size: 1}, {Name: "Destroyer 1", Size: 2}})
	assert.False(t, fleet.IsComplete())
	assert.False(t, fleet.HasLost())
	assert.Len(t, fleet.Unplaced(), 2)

	placeOn(t, fleet, "Patrol 1", 0, 0, model.OrientationHorizontal)
	assert.Equal(t, []model.ShipSpec{{Name: "Destroyer 1", Size: 2}}, fleet.Unplaced())

	placeOn(t, fleet, "Destroyer 1", 5, 5, model.OrientationVertical)
	assert.True(t, fleet.IsComplete())
}

func TestFleetHasLostDerivesFromShips(t *testing.T) {
	fleet := model.NewFleet([]model.ShipSpec{{Name: "Patrol 1", Size: 1}, {Name: "Patrol 2", Size: 1}})
	placeOn(t, fleet, "Patrol 1", 0, 0, model.OrientationHorizontal)
	placeOn(t, fleet, "Patrol 2", 2, 2, model.OrientationHorizontal)

	_, err := fleet.Board.ReceiveShot(model.Position{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, fleet.SunkCount())
	assert.False(t, fleet.HasLost())

	_, err = fleet.Board.ReceiveShot(model.Position{Row: 2, Col: 2})
	require.NoError(t, err)
	assert.True(t, fleet.HasLost())
}

func TestFleetSnapshotRoundTrip(t *testing.T) {
	fleet := model.NewFleet(model.StandardFleet())
	placeOn(t, fleet, "Carrier", 0, 0, model.OrientationHorizontal)
	placeOn(t, fleet, "Submarine 1", 2, 0, model.OrientationVertical)
	placeOn(t, fleet, "Patrol 1", 9, 9, model.OrientationVertical)

	for _, pos := range []model.Position{{Row: 0, Col: 1}, {Row: 9, Col: 9}, {Row: 5, Col: 5}, {Row: 2, Col: 0}} {
		_, err := fleet.Board.ReceiveShot(pos)
		require.NoError(t, err)
	}

	data, err := json.Marshal(fleet.Snapshot())
	require.NoError(t, err)
	var snap model.FleetSnapshot
	require.NoError(t, json.Unmarshal(data, &snap))

	restored, err := model.RestoreFleet(snap)
	require.NoError(t, err)

	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			pos := model.Position{Row: row, Col: col}
			want, _ := fleet.Board.CellStatus(pos)
			got, _ := restored.Board.CellStatus(pos)
			assert.Equal(t, want, got, "cell %s", pos)
		}
	}
	assert.Equal(t, fleet.SunkCount(), restored.SunkCount())
	assert.Equal(t, fleet.Unplaced(), restored.Unplaced())
	assert.Equal(t, model.CellSunk, mustStatus(t, restored.Board, 9, 9))
	assert.Equal(t, model.CellHit, mustStatus(t, restored.Board, 0, 1))
}

func TestRestoredFleetRecomputesDefeat(t *testing.T) {
	snap := model.FleetSnapshot{
		Roster: []model.ShipSpec{{Name: "Patrol 1", Size: 1}},
		Ships: []model.ShipRecord{
			{Name: "Patrol 1", Size: 1, Origin: model.Position{Row: 3, Col: 3}, Orientation: model.OrientationVertical, Hits: []bool{true}},
		},
	}
	fleet, err := model.RestoreFleet(snap)
	require.NoError(t, err)
	assert.True(t, fleet.HasLost())
	assert.Equal(t, model.CellSunk, mustStatus(t, fleet.Board, 3, 3))
}

func TestRestoreFleetRejectsInconsistentSnapshots(t *testing.T) {
	ship := func(name string, size, row, col int, hits []bool) model.ShipRecord {
		return model.ShipRecord{Name: name, Size: size, Origin: model.Position{Row: row, Col: col}, Orientation: model.OrientationHorizontal, Hits: hits}
	}
	cases := map[string]model.FleetSnapshot{
		"bad size":       {Ships: []model.ShipRecord{ship("A", 5, 0, 0, make([]bool, 5))}},
		"hit count":      {Ships: []model.ShipRecord{ship("A", 2, 0, 0, []bool{true})}},
		"overlap":        {Ships: []model.ShipRecord{ship("A", 2, 0, 0, []bool{false, false}), ship("B", 2, 0, 1, []bool{false, false})}},
		"off grid":       {Ships: []model.ShipRecord{ship("A", 3, 0, 8, []bool{false, false, false})}},
		"duplicate name": {Ships: []model.ShipRecord{ship("A", 1, 0, 0, []bool{false}), ship("A", 1, 5, 5, []bool{false})}},
		"miss on ship":   {Ships: []model.ShipRecord{ship("A", 1, 0, 0, []bool{false})}, Misses: []model.Position{{Row: 0, Col: 0}}},
		"miss off grid":  {Misses: []model.Position{{Row: 11, Col: 0}}},
	}
	for name, snap := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := model.RestoreFleet(snap)
			assert.ErrorIs(t, err, model.ErrInvalidSnapshot)
		})
	}
}

func TestMatchSnapshotRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	match := model.NewMatch("m1", "p1", []model.ShipSpec{{Name: "Patrol 1", Size: 1}}, model.BotStrategyHuntTarget, now)
	placeOn(t, match.Human, "Patrol 1", 4, 4, model.OrientationVertical)
	placeOn(t, match.Machine, "Patrol 1", 6, 6, model.OrientationVertical)
	match.Phase = model.PhaseHumanTurn
	last := model.Position{Row: 1, Col: 1}
	match.Targeting = model.TargetingState{
		Strategy: model.BotStrategyHuntTarget,
		Mode:     model.TargetingTarget,
		Pending:  []model.Position{{Row: 0, Col: 1}},
		LastShot: &last,
	}

	data, err := json.Marshal(match.Snapshot())
	require.NoError(t, err)
	var rec model.MatchRecord
	require.NoError(t, json.Unmarshal(data, &rec))

	restored, err := model.RestoreMatch(rec)
	require.NoError(t, err)
	assert.Equal(t, match.ID, restored.ID)
	assert.Equal(t, model.PhaseHumanTurn, restored.Phase)
	assert.Equal(t, match.Targeting, restored.Targeting)
	assert.True(t, restored.Human.IsComplete())
	assert.Equal(t, model.CellOccupied, mustStatus(t, restored.Machine.Board, 6, 6))
	assert.True(t, now.Equal(restored.CreatedAt))
}

func TestRestoreMatchRejectsUnknownPhase(t *testing.T) {
	_, err := model.RestoreMatch(model.MatchRecord{Phase: "sideways"})
	assert.ErrorIs(t, err, model.ErrInvalidSnapshot)
}

func TestRestoreMatchRejectsBadTargeting(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	offGrid := model.Position{Row: 3, Col: model.BoardSize}
	cases := map[string]model.TargetingState{
		"unknown strategy": {Strategy: "bogus", Mode: model.TargetingHunt},
		"unknown mode":     {Strategy: model.BotStrategyHuntTarget, Mode: "stalking"},
		"queued cell off grid": {
			Strategy: model.BotStrategyHuntTarget,
			Mode:     model.TargetingTarget,
			Pending:  []model.Position{{Row: -1, Col: 3}},
		},
		"last shot off grid": {
			Strategy: model.BotStrategyRandom,
			Mode:     model.TargetingHunt,
			LastShot: &offGrid,
		},
	}
	for name, targeting := range cases {
		t.Run(name, func(t *testing.T) {
			rec := model.NewMatch("m1", "p1", model.StandardFleet(), model.BotStrategyHuntTarget, now).Snapshot()
			rec.Targeting = targeting
			_, err := model.RestoreMatch(rec)
			assert.ErrorIs(t, err, model.ErrInvalidSnapshot)
		})
	}
}

func TestRestoreMatchDefaultsEmptyTargetingMode(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rec := model.NewMatch("m1", "p1", model.StandardFleet(), model.BotStrategyRandom, now).Snapshot()
	rec.Targeting.Mode = ""

	restored, err := model.RestoreMatch(rec)
	require.NoError(t, err)
	assert.Equal(t, model.TargetingHunt, restored.Targeting.Mode)
}

func mustStatus(t *testing.T, b *model.Board, row, col int) model.CellState {
	t.Helper()
	state, err := b.CellStatus(model.Position{Row: row, Col: col})
	require.NoError(t, err)
	return state
}
