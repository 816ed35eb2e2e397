package bot

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/model"
)

// MaxBotIterations bounds a single machine turn. No board has more cells
// than this, so a well-behaved strategy always stops sooner.
const MaxBotIterations = model.BoardSize * model.BoardSize

// Service drives the machine competitor's turns
type Service struct {
	registry Registry
	random   random.Random
	logger   *slog.Logger
}

// NewService creates a new bot Service
func NewService(registry Registry, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		registry: registry,
		random:   rnd,
		logger:   logger.With(slog.String("component", "bot-service")),
	}
}

// ValidateStrategy returns ErrUnknownStrategy if name is not registered
func (s *Service) ValidateStrategy(name string) error {
	if _, ok := s.registry[name]; !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownStrategy, name)
	}
	return nil
}

// TakeTurn fires the machine's shots at the human board until a shot misses
// or the human fleet is destroyed. The match phase and targeting state are
// updated in place; the shots taken are returned in order.
func (s *Service) TakeTurn(m *model.Match) ([]model.Shot, error) {
	if m.Phase != model.PhaseMachineTurn {
		return nil, model.ErrNotPlayerTurn
	}

	strategy, err := s.registry.Build(s.random, m.Targeting)
	if err != nil {
		return nil, err
	}

	var shots []model.Shot
	for range MaxBotIterations {
		result, err := strategy.Fire(m.Human.Board)
		if err != nil {
			m.Targeting = strategy.State()
			return shots, err
		}
		pos, _ := strategy.LastShot()
		shots = append(shots, model.Shot{Side: model.SideMachine, Position: pos, Result: result})
		m.MachineShots++

		s.logger.Debug("machine fired",
			slog.String("match_id", string(m.ID)),
			slog.Int("row", pos.Row),
			slog.Int("col", pos.Col),
			slog.String("outcome", string(result.Outcome)),
		)

		if m.Human.HasLost() {
			m.Phase = model.PhaseOver
			m.Winner = model.SideMachine
			break
		}
		if !result.Struck() {
			m.Phase = model.PhaseHumanTurn
			break
		}
	}
	m.Targeting = strategy.State()

	if m.Phase == model.PhaseMachineTurn {
		return shots, fmt.Errorf("machine turn did not finish after %d shots", MaxBotIterations)
	}
	return shots, nil
}
