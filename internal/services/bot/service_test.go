package bot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go2/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/bot"
	"github.com/mcoot/battleship-go2/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	service    *bot.Service
	match      *model.Match
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.service = bot.NewService(bot.DefaultRegistry(), s.mockRandom, testutil.NopLogger())

	roster := []model.ShipSpec{{Name: "Patrol 1", Size: 1}, {Name: "Destroyer 1", Size: 2}}
	s.match = model.NewMatch("m1", "p1", roster, model.BotStrategyRandom, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	placeShip(&s.Suite, s.match.Human.Board, "Patrol 1", 1, 0, 0, model.OrientationHorizontal)
	placeShip(&s.Suite, s.match.Human.Board, "Destroyer 1", 2, 9, 8, model.OrientationHorizontal)
	s.match.Phase = model.PhaseMachineTurn
}

func (s *ServiceSuite) TestMissEndsTurn() {
	s.mockRandom.QueueIntn(cellIndex(4, 4))

	shots, err := s.service.TakeTurn(s.match)
	s.Require().NoError(err)
	s.Require().Len(shots, 1)
	s.Equal(model.Shot{Side: model.SideMachine, Position: model.Position{Row: 4, Col: 4}, Result: model.MissResult()}, shots[0])
	s.Equal(model.PhaseHumanTurn, s.match.Phase)
	s.Equal(1, s.match.MachineShots)
}

func (s *ServiceSuite) TestHitGrantsAnotherShot() {
	// sink the patrol boat, then (0,1) is index 0 among unshot cells
	s.mockRandom.QueueIntn(0, 0)

	shots, err := s.service.TakeTurn(s.match)
	s.Require().NoError(err)
	s.Require().Len(shots, 2)
	s.Equal(model.SunkResult("Patrol 1"), shots[0].Result)
	s.Equal(model.MissResult(), shots[1].Result)
	s.Equal(model.PhaseHumanTurn, s.match.Phase)
}

func (s *ServiceSuite) TestDestroyingFleetEndsMatch() {
	// (9,8) then (9,9) are both the 98th unshot cell once earlier shots are removed
	s.mockRandom.QueueIntn(0, 97, 97)

	shots, err := s.service.TakeTurn(s.match)
	s.Require().NoError(err)
	s.Len(shots, 3)
	s.Equal(model.SunkResult("Destroyer 1"), shots[2].Result)
	s.Equal(model.PhaseOver, s.match.Phase)
	s.Equal(model.SideMachine, s.match.Winner)
	s.True(s.match.Human.HasLost())
}

func (s *ServiceSuite) TestTargetingStateIsPersistedOnMatch() {
	s.match.Targeting = model.TargetingState{Strategy: model.BotStrategyHuntTarget, Mode: model.TargetingHunt}
	// hit the destroyer at (9,8), then miss upwards at (8,8)
	s.mockRandom.QueueIntn(cellIndex(9, 8))

	shots, err := s.service.TakeTurn(s.match)
	s.Require().NoError(err)
	s.Require().Len(shots, 2)
	s.Equal(model.Position{Row: 8, Col: 8}, shots[1].Position)

	s.Equal(model.TargetingTarget, s.match.Targeting.Mode)
	s.Equal([]model.Position{{Row: 9, Col: 7}, {Row: 9, Col: 9}}, s.match.Targeting.Pending)
	s.Equal(&model.Position{Row: 8, Col: 8}, s.match.Targeting.LastShot)
}

func (s *ServiceSuite) TestRejectsWrongPhase() {
	s.match.Phase = model.PhaseHumanTurn
	_, err := s.service.TakeTurn(s.match)
	s.ErrorIs(err, model.ErrNotPlayerTurn)
}

func (s *ServiceSuite) TestRejectsUnknownStrategy() {
	s.match.Targeting.Strategy = "psychic"
	_, err := s.service.TakeTurn(s.match)
	s.ErrorIs(err, model.ErrUnknownStrategy)
	s.ErrorIs(s.service.ValidateStrategy("psychic"), model.ErrUnknownStrategy)
	s.NoError(s.service.ValidateStrategy(model.BotStrategyHuntTarget))
}
