// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/storage"
)

// Suite runs the common storage contract. Embed it and set New in SetupTest.
type Suite struct {
	suite.Suite
	Store storage.Storage
	Ctx   context.Context
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// SampleMatch returns a mid-game match with a hit, a sunk ship and misses on
// both boards
func SampleMatch(id model.MatchID, owner model.PlayerID, updated time.Time) *model.Match {
	roster := []model.ShipSpec{{Name: "Carrier", Size: 4}, {Name: "Patrol 1", Size: 1}}
	m := model.NewMatch(id, owner, roster, model.BotStrategyHuntTarget, baseTime)
	place := func(f *model.Fleet, name string, size, row, col int, o model.Orientation) {
		ship := model.NewShip(name, size)
		_ = ship.Place(model.Position{Row: row, Col: col}, o)
		_ = f.Board.PlaceShip(ship)
	}
	place(m.Human, "Carrier", 4, 0, 0, model.OrientationHorizontal)
	place(m.Human, "Patrol 1", 1, 5, 5, model.OrientationHorizontal)
	place(m.Machine, "Carrier", 4, 2, 2, model.OrientationVertical)
	place(m.Machine, "Patrol 1", 1, 9, 9, model.OrientationHorizontal)

	for _, pos := range []model.Position{{Row: 2, Col: 2}, {Row: 9, Col: 9}, {Row: 0, Col: 0}} {
		_, _ = m.Machine.Board.ReceiveShot(pos)
	}
	for _, pos := range []model.Position{{Row: 0, Col: 1}, {Row: 5, Col: 5}, {Row: 7, Col: 7}} {
		_, _ = m.Human.Board.ReceiveShot(pos)
	}
	last := model.Position{Row: 7, Col: 7}
	m.Phase = model.PhaseHumanTurn
	m.Targeting = model.TargetingState{
		Strategy: model.BotStrategyHuntTarget,
		Mode:     model.TargetingTarget,
		Pending:  []model.Position{{Row: 1, Col: 1}, {Row: 0, Col: 2}},
		LastShot: &last,
	}
	m.HumanShots = 3
	m.MachineShots = 3
	m.UpdatedAt = updated
	return m
}

// Player tests

func (s *Suite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice", CreatedAt: baseTime}
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	got, err := s.Store.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, got.ID)
	s.Equal("Alice", got.DisplayName)
	s.False(got.IsGuest)
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Store.GetPlayer(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestSavePlayerOverwrites() {
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, &model.Player{ID: "p", DisplayName: "Old", CreatedAt: baseTime}))
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, &model.Player{ID: "p", DisplayName: "New", CreatedAt: baseTime}))

	got, err := s.Store.GetPlayer(s.Ctx, "p")
	s.Require().NoError(err)
	s.Equal("New", got.DisplayName)
}

func (s *Suite) TestDeletePlayer() {
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, &model.Player{ID: "p", DisplayName: "Bob", CreatedAt: baseTime}))
	s.Require().NoError(s.Store.DeletePlayer(s.Ctx, "p"))

	_, err := s.Store.GetPlayer(s.Ctx, "p")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestRegisteredPlayerByUsername() {
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, &model.Player{ID: "p", DisplayName: "Carol", CreatedAt: baseTime}))
	rp := &model.RegisteredPlayer{PlayerID: "p", Username: "carol", PasswordHash: "hash", CreatedAt: baseTime, UpdatedAt: baseTime}
	s.Require().NoError(s.Store.SaveRegisteredPlayer(s.Ctx, rp))

	byID, err := s.Store.GetRegisteredPlayer(s.Ctx, "p")
	s.Require().NoError(err)
	s.Equal("carol", byID.Username)

	byName, err := s.Store.GetRegisteredPlayerByUsername(s.Ctx, "carol")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p"), byName.PlayerID)
	s.Equal("hash", byName.PasswordHash)

	_, err = s.Store.GetRegisteredPlayerByUsername(s.Ctx, "dave")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Match tests

func (s *Suite) TestSaveAndGetMatchRebuildsBoards() {
	match := SampleMatch("m1", "owner", baseTime)
	s.Require().NoError(s.Store.SaveMatch(s.Ctx, match))

	got, err := s.Store.GetMatch(s.Ctx, "m1")
	s.Require().NoError(err)
	s.Equal(model.PhaseHumanTurn, got.Phase)
	s.Equal(match.Targeting, got.Targeting)
	s.Equal(3, got.HumanShots)
	s.True(baseTime.Equal(got.CreatedAt))

	for _, pair := range []struct{ want, got *model.Board }{
		{match.Human.Board, got.Human.Board},
		{match.Machine.Board, got.Machine.Board},
	} {
		for row := 0; row < model.BoardSize; row++ {
			for col := 0; col < model.BoardSize; col++ {
				pos := model.Position{Row: row, Col: col}
				want, _ := pair.want.CellStatus(pos)
				have, _ := pair.got.CellStatus(pos)
				s.Equal(want, have, "cell %s", pos)
			}
		}
	}
	s.Equal(1, got.Machine.SunkCount())
	s.Equal(1, got.Human.SunkCount())
}

func (s *Suite) TestGetMatchReturnsIndependentCopies() {
	s.Require().NoError(s.Store.SaveMatch(s.Ctx, SampleMatch("m1", "owner", baseTime)))

	first, err := s.Store.GetMatch(s.Ctx, "m1")
	s.Require().NoError(err)
	_, err = first.Machine.Board.ReceiveShot(model.Position{Row: 3, Col: 2})
	s.Require().NoError(err)

	second, err := s.Store.GetMatch(s.Ctx, "m1")
	s.Require().NoError(err)
	state, _ := second.Machine.Board.CellStatus(model.Position{Row: 3, Col: 2})
	s.Equal(model.CellOccupied, state)
}

func (s *Suite) TestSaveMatchOverwrites() {
	match := SampleMatch("m1", "owner", baseTime)
	s.Require().NoError(s.Store.SaveMatch(s.Ctx, match))

	match.Phase = model.PhaseOver
	match.Winner = model.SideHuman
	s.Require().NoError(s.Store.SaveMatch(s.Ctx, match))

	got, err := s.Store.GetMatch(s.Ctx, "m1")
	s.Require().NoError(err)
	s.Equal(model.PhaseOver, got.Phase)
	s.Equal(model.SideHuman, got.Winner)
}

func (s *Suite) TestGetMatchNotFound() {
	_, err := s.Store.GetMatch(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *Suite) TestDeleteMatch() {
	s.Require().NoError(s.Store.SaveMatch(s.Ctx, SampleMatch("m1", "owner", baseTime)))
	s.Require().NoError(s.Store.DeleteMatch(s.Ctx, "m1"))

	_, err := s.Store.GetMatch(s.Ctx, "m1")
	s.ErrorIs(err, model.ErrMatchNotFound)

	matches, err := s.Store.ListMatchesByOwner(s.Ctx, "owner")
	s.Require().NoError(err)
	s.Empty(matches)
}

func (s *Suite) TestListMatchesByOwnerNewestFirst() {
	s.Require().NoError(s.Store.SaveMatch(s.Ctx, SampleMatch("old", "owner", baseTime)))
	s.Require().NoError(s.Store.SaveMatch(s.Ctx, SampleMatch("new", "owner", baseTime.Add(time.Hour))))
	s.Require().NoError(s.Store.SaveMatch(s.Ctx, SampleMatch("other", "someone-else", baseTime)))

	matches, err := s.Store.ListMatchesByOwner(s.Ctx, "owner")
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal(model.MatchID("new"), matches[0].ID)
	s.Equal(model.MatchID("old"), matches[1].ID)
}
