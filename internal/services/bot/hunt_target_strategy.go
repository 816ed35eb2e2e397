package bot

import (
	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/model"
)

// HuntTargetStrategy fires randomly until it hits, then works through the
// orthogonal neighbours of each hit until the ship sinks.
//
// Pending is a FIFO queue with no duplicates. Neighbours are enqueued in
// up, down, left, right order so behaviour is deterministic for a given RNG.
type HuntTargetStrategy struct {
	random   random.Random
	mode     model.TargetingMode
	pending  []model.Position
	lastShot *model.Position
}

var _ Strategy = (*HuntTargetStrategy)(nil)

// NewHuntTargetStrategy creates a strategy in hunt mode
func NewHuntTargetStrategy(rnd random.Random) *HuntTargetStrategy {
	return &HuntTargetStrategy{random: rnd, mode: model.TargetingHunt}
}

// RestoreHuntTargetStrategy resumes a strategy from persisted state.
// Queued cells off the grid are dropped.
func RestoreHuntTargetStrategy(rnd random.Random, state model.TargetingState) *HuntTargetStrategy {
	s := NewHuntTargetStrategy(rnd)
	for _, pos := range state.Pending {
		if pos.InBounds() {
			s.enqueue(pos)
		}
	}
	if state.Mode == model.TargetingTarget && len(s.pending) > 0 {
		s.mode = model.TargetingTarget
	}
	s.lastShot = copyPosition(state.LastShot)
	return s
}

func (s *HuntTargetStrategy) Name() string {
	return model.BotStrategyHuntTarget
}

// Mode returns the current targeting mode
func (s *HuntTargetStrategy) Mode() model.TargetingMode {
	return s.mode
}

// Pending returns a copy of the target queue
func (s *HuntTargetStrategy) Pending() []model.Position {
	return append([]model.Position{}, s.pending...)
}

// SelectTarget pops the front of the queue in target mode, skipping cells
// resolved since they were queued. With nothing usable queued it reverts to
// hunt mode and samples uniformly.
func (s *HuntTargetStrategy) SelectTarget(board *model.Board) (model.Position, error) {
	if s.mode == model.TargetingTarget {
		for len(s.pending) > 0 {
			pos := s.pending[0]
			s.pending = s.pending[1:]
			if pos.InBounds() && !board.WasShot(pos) {
				return pos, nil
			}
		}
		s.mode = model.TargetingHunt
	}
	s.pending = nil
	return pickUnshot(s.random, board)
}

// Fire shoots the selected target and applies the hunt/target transitions
func (s *HuntTargetStrategy) Fire(board *model.Board) (model.ShotResult, error) {
	pos, err := s.SelectTarget(board)
	if err != nil {
		return model.ShotResult{}, err
	}
	result, err := board.ReceiveShot(pos)
	if err != nil {
		return model.ShotResult{}, err
	}
	s.lastShot = &pos
	s.observe(board, pos, result)
	return result, nil
}

func (s *HuntTargetStrategy) observe(board *model.Board, pos model.Position, result model.ShotResult) {
	switch result.Outcome {
	case model.ShotSunk:
		// queued cells were continuations of the ship that just went down
		s.pending = nil
		s.mode = model.TargetingHunt
	case model.ShotHit:
		for _, n := range pos.Neighbors() {
			if n.InBounds() && !board.WasShot(n) {
				s.enqueue(n)
			}
		}
		if len(s.pending) > 0 {
			s.mode = model.TargetingTarget
		} else {
			s.mode = model.TargetingHunt
		}
	default:
		if len(s.pending) == 0 {
			s.mode = model.TargetingHunt
		}
	}
}

func (s *HuntTargetStrategy) enqueue(pos model.Position) {
	for _, queued := range s.pending {
		if queued == pos {
			return
		}
	}
	s.pending = append(s.pending, pos)
}

func (s *HuntTargetStrategy) LastShot() (model.Position, bool) {
	if s.lastShot == nil {
		return model.Position{}, false
	}
	return *s.lastShot, true
}

func (s *HuntTargetStrategy) State() model.TargetingState {
	return model.TargetingState{
		Strategy: model.BotStrategyHuntTarget,
		Mode:     s.mode,
		Pending:  s.Pending(),
		LastShot: copyPosition(s.lastShot),
	}
}
