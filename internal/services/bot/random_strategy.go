package bot

import (
	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/model"
)

// RandomStrategy fires at a uniformly chosen unshot cell every turn
type RandomStrategy struct {
	random   random.Random
	lastShot *model.Position
}

var _ Strategy = (*RandomStrategy)(nil)

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// RestoreRandomStrategy creates a RandomStrategy carrying a persisted last shot
func RestoreRandomStrategy(rnd random.Random, state model.TargetingState) *RandomStrategy {
	return &RandomStrategy{random: rnd, lastShot: copyPosition(state.LastShot)}
}

func (s *RandomStrategy) Name() string {
	return model.BotStrategyRandom
}

// SelectTarget picks a random cell among those not yet shot
func (s *RandomStrategy) SelectTarget(board *model.Board) (model.Position, error) {
	return pickUnshot(s.random, board)
}

// Fire shoots a random unshot cell
func (s *RandomStrategy) Fire(board *model.Board) (model.ShotResult, error) {
	pos, err := s.SelectTarget(board)
	if err != nil {
		return model.ShotResult{}, err
	}
	result, err := board.ReceiveShot(pos)
	if err != nil {
		return model.ShotResult{}, err
	}
	s.lastShot = &pos
	return result, nil
}

func (s *RandomStrategy) LastShot() (model.Position, bool) {
	if s.lastShot == nil {
		return model.Position{}, false
	}
	return *s.lastShot, true
}

func (s *RandomStrategy) State() model.TargetingState {
	return model.TargetingState{
		Strategy: model.BotStrategyRandom,
		Mode:     model.TargetingHunt,
		Pending:  []model.Position{},
		LastShot: copyPosition(s.lastShot),
	}
}

// pickUnshot samples uniformly over the unshot cells
func pickUnshot(rnd random.Random, board *model.Board) (model.Position, error) {
	candidates := board.UnshotCells()
	if len(candidates) == 0 {
		return model.Position{}, model.ErrNoTargets
	}
	return candidates[rnd.Intn(len(candidates))], nil
}
