package bot

import (
	"fmt"

	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/model"
)

// Strategy selects and fires the machine's shots at a board
type Strategy interface {
	// Name is the registry key of the strategy
	Name() string
	// SelectTarget picks the next unshot cell. It may consume queued state.
	SelectTarget(board *model.Board) (model.Position, error)
	// Fire selects a target, shoots it and updates internal state from the result
	Fire(board *model.Board) (model.ShotResult, error)
	// LastShot returns the most recent fired position, if any
	LastShot() (model.Position, bool)
	// State returns the persistable strategy state
	State() model.TargetingState
}

// Factory builds a strategy from its persisted state
type Factory func(rnd random.Random, state model.TargetingState) Strategy

// Registry maps strategy names to factories
type Registry map[string]Factory

// DefaultRegistry returns every built-in strategy
func DefaultRegistry() Registry {
	return Registry{
		model.BotStrategyRandom: func(rnd random.Random, state model.TargetingState) Strategy {
			return RestoreRandomStrategy(rnd, state)
		},
		model.BotStrategyHuntTarget: func(rnd random.Random, state model.TargetingState) Strategy {
			return RestoreHuntTargetStrategy(rnd, state)
		},
	}
}

// Build returns the strategy for the persisted state
func (r Registry) Build(rnd random.Random, state model.TargetingState) (Strategy, error) {
	factory, ok := r[state.Strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStrategy, state.Strategy)
	}
	return factory(rnd, state), nil
}

func copyPosition(p *model.Position) *model.Position {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
