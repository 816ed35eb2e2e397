package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/battleship-go2/internal/dependencies/clock"
	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/bot"
	"github.com/mcoot/battleship-go2/internal/services/fleet"
	"github.com/mcoot/battleship-go2/internal/storage"
)

// Publisher receives match events as they happen
type Publisher interface {
	Publish(event model.Event)
}

// Config holds match defaults
type Config struct {
	DefaultStrategy string
	Roster          []model.ShipSpec
}

// DefaultConfig returns the standard fleet with the hunt/target machine
func DefaultConfig() Config {
	return Config{
		DefaultStrategy: model.DefaultBotStrategy,
		Roster:          model.StandardFleet(),
	}
}

// FireOutcome is everything that happened as a result of one human shot
type FireOutcome struct {
	Result       model.ShotResult
	MachineShots []model.Shot
	Match        *model.Match
}

// Controller runs matches: placement, turn arbitration, persistence and events
type Controller struct {
	storage   storage.Storage
	fleets    *fleet.Service
	bots      *bot.Service
	publisher Publisher
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
	config    Config

	locksMu sync.Mutex
	locks   map[model.MatchID]*matchLock
}

// matchLock is dropped from the table once nobody holds or waits on it
type matchLock struct {
	mu   sync.Mutex
	refs int
}

// NewController creates a new match Controller
func NewController(
	storage storage.Storage,
	fleets *fleet.Service,
	bots *bot.Service,
	publisher Publisher,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	config Config,
) *Controller {
	if len(config.Roster) == 0 {
		config.Roster = model.StandardFleet()
	}
	if config.DefaultStrategy == "" {
		config.DefaultStrategy = model.DefaultBotStrategy
	}
	return &Controller{
		storage:   storage,
		fleets:    fleets,
		bots:      bots,
		publisher: publisher,
		clock:     clock,
		random:    random,
		logger:    logger.With(slog.String("component", "match-controller")),
		config:    config,
		locks:     make(map[model.MatchID]*matchLock),
	}
}

// lock serializes mutations of a single match and returns its unlock func
func (c *Controller) lock(id model.MatchID) func() {
	c.locksMu.Lock()
	l, ok := c.locks[id]
	if !ok {
		l = &matchLock{}
		c.locks[id] = l
	}
	l.refs++
	c.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		c.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, id)
		}
		c.locksMu.Unlock()
	}
}

// CreateMatch starts a new match in the placement phase. The machine fleet is
// placed immediately; an empty strategy uses the configured default.
func (c *Controller) CreateMatch(ctx context.Context, owner model.PlayerID, strategy string) (*model.Match, error) {
	if strategy == "" {
		strategy = c.config.DefaultStrategy
	}
	if err := c.bots.ValidateStrategy(strategy); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	m := model.NewMatch(model.MatchID(c.random.UUID()), owner, c.config.Roster, strategy, now)
	if err := c.fleets.AutoPlace(m.Machine); err != nil {
		return nil, fmt.Errorf("placing machine fleet: %w", err)
	}

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(m.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("match created",
		slog.String("match_id", string(m.ID)),
		slog.String("player_id", string(owner)),
		slog.String("strategy", strategy),
	)
	return m, nil
}

// GetMatch loads a match owned by player
func (c *Controller) GetMatch(ctx context.Context, id model.MatchID, player model.PlayerID) (*model.Match, error) {
	m, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.OwnerID != player {
		return nil, model.ErrNotMatchOwner
	}
	return m, nil
}

// ListMatches returns the player's matches, most recently updated first
func (c *Controller) ListMatches(ctx context.Context, player model.PlayerID) ([]*model.Match, error) {
	return c.storage.ListMatchesByOwner(ctx, player)
}

// PlaceShip positions one of the human's roster ships
func (c *Controller) PlaceShip(ctx context.Context, id model.MatchID, player model.PlayerID, name string, origin model.Position, orientation model.Orientation) (*model.Match, error) {
	return c.mutatePlacement(ctx, id, player, func(m *model.Match) error {
		_, err := c.fleets.PlaceShip(m.Human, name, origin, orientation)
		return err
	})
}

// AutoPlace positions every ship the human has not placed yet
func (c *Controller) AutoPlace(ctx context.Context, id model.MatchID, player model.PlayerID) (*model.Match, error) {
	return c.mutatePlacement(ctx, id, player, func(m *model.Match) error {
		return c.fleets.AutoPlace(m.Human)
	})
}

// ResetPlacement clears the human board so placement can start over
func (c *Controller) ResetPlacement(ctx context.Context, id model.MatchID, player model.PlayerID) (*model.Match, error) {
	return c.mutatePlacement(ctx, id, player, func(m *model.Match) error {
		c.fleets.Reset(m.Human)
		return nil
	})
}

func (c *Controller) mutatePlacement(ctx context.Context, id model.MatchID, player model.PlayerID, fn func(*model.Match) error) (*model.Match, error) {
	unlock := c.lock(id)
	defer unlock()

	m, err := c.GetMatch(ctx, id, player)
	if err != nil {
		return nil, err
	}
	if err := checkPlacementOpen(m); err != nil {
		return nil, err
	}
	if err := fn(m); err != nil {
		return nil, err
	}
	m.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func checkPlacementOpen(m *model.Match) error {
	switch m.Phase {
	case model.PhasePlacement:
		return nil
	case model.PhaseAbandoned:
		return model.ErrMatchAbandoned
	default:
		return model.ErrPlacementClosed
	}
}

// StartMatch ends placement and gives the human the first shot
func (c *Controller) StartMatch(ctx context.Context, id model.MatchID, player model.PlayerID) (*model.Match, error) {
	unlock := c.lock(id)
	defer unlock()

	m, err := c.GetMatch(ctx, id, player)
	if err != nil {
		return nil, err
	}
	if err := checkPlacementOpen(m); err != nil {
		return nil, err
	}
	if !m.Human.IsComplete() {
		return nil, fmt.Errorf("%w: %d ships left to place", model.ErrFleetIncomplete, len(m.Human.Unplaced()))
	}

	m.Phase = model.PhaseHumanTurn
	m.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}

	c.logger.Info("match started", slog.String("match_id", string(m.ID)))
	c.publish(m, model.EventMatchStarted, nil)
	c.publish(m, model.EventTurnChanged, model.TurnChangedPayload{Phase: m.Phase})
	return m, nil
}

// Fire applies a human shot. A miss hands the turn to the machine, which
// plays out its whole turn before Fire returns.
func (c *Controller) Fire(ctx context.Context, id model.MatchID, player model.PlayerID, pos model.Position) (*FireOutcome, error) {
	unlock := c.lock(id)
	defer unlock()

	m, err := c.GetMatch(ctx, id, player)
	if err != nil {
		return nil, err
	}

	result, err := ApplyHumanShot(m, pos)
	if err != nil {
		return nil, err
	}
	outcome := &FireOutcome{Result: result, Match: m}
	if result.Outcome == model.ShotAlreadyShot {
		return outcome, nil
	}

	var events []model.Event
	events = append(events, c.shotEvents(m, model.Shot{Side: model.SideHuman, Position: pos, Result: result})...)

	if m.Phase == model.PhaseMachineTurn {
		events = append(events, c.event(m, model.EventTurnChanged, model.TurnChangedPayload{Phase: m.Phase}))
		shots, err := c.bots.TakeTurn(m)
		if err != nil {
			c.logger.Error("machine turn failed",
				slog.String("match_id", string(m.ID)),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
		for _, shot := range shots {
			events = append(events, c.shotEvents(m, shot)...)
		}
		outcome.MachineShots = shots
		if m.Phase == model.PhaseHumanTurn {
			events = append(events, c.event(m, model.EventTurnChanged, model.TurnChangedPayload{Phase: m.Phase}))
		}
	}

	if m.Phase == model.PhaseOver {
		events = append(events, c.event(m, model.EventMatchOver, model.MatchOverPayload{
			Winner:       m.Winner,
			HumanShots:   m.HumanShots,
			MachineShots: m.MachineShots,
		}))
		c.logger.Info("match over",
			slog.String("match_id", string(m.ID)),
			slog.String("winner", string(m.Winner)),
			slog.Int("human_shots", m.HumanShots),
			slog.Int("machine_shots", m.MachineShots),
		)
	}

	m.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveMatch(ctx, m); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(m.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	for _, event := range events {
		c.emit(event)
	}
	return outcome, nil
}

// AbandonMatch cancels a match that has not finished
func (c *Controller) AbandonMatch(ctx context.Context, id model.MatchID, player model.PlayerID) (*model.Match, error) {
	unlock := c.lock(id)
	defer unlock()

	m, err := c.GetMatch(ctx, id, player)
	if err != nil {
		return nil, err
	}
	switch m.Phase {
	case model.PhaseOver:
		return nil, model.ErrMatchOver
	case model.PhaseAbandoned:
		return nil, model.ErrMatchAbandoned
	}

	m.Phase = model.PhaseAbandoned
	m.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}

	c.logger.Info("match abandoned", slog.String("match_id", string(m.ID)))
	c.publish(m, model.EventMatchAbandoned, model.MatchAbandonedPayload{Reason: "abandoned by player"})
	return m, nil
}

// DeleteMatch removes a match from storage
func (c *Controller) DeleteMatch(ctx context.Context, id model.MatchID, player model.PlayerID) error {
	unlock := c.lock(id)
	defer unlock()

	if _, err := c.GetMatch(ctx, id, player); err != nil {
		return err
	}
	if err := c.storage.DeleteMatch(ctx, id); err != nil && !errors.Is(err, model.ErrMatchNotFound) {
		return err
	}
	return nil
}

func (c *Controller) shotEvents(m *model.Match, shot model.Shot) []model.Event {
	events := []model.Event{c.event(m, model.EventShotFired, model.ShotFiredPayload{
		Side:     shot.Side,
		Position: shot.Position,
		Outcome:  shot.Result.Outcome,
		ShipName: shot.Result.ShipName,
	})}
	if shot.Result.Outcome == model.ShotSunk {
		// the sunk ship belongs to the side that was fired upon
		target := m.Machine
		owner := model.SideMachine
		if shot.Side == model.SideMachine {
			target, owner = m.Human, model.SideHuman
		}
		size := 0
		if ship := target.Board.Ship(shot.Result.ShipName); ship != nil {
			size = ship.Size
		}
		events = append(events, c.event(m, model.EventShipSunk, model.ShipSunkPayload{
			Owner:    owner,
			ShipName: shot.Result.ShipName,
			Size:     size,
		}))
	}
	return events
}

func (c *Controller) event(m *model.Match, eventType model.EventType, payload any) model.Event {
	return model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		MatchID:   m.ID,
		PlayerID:  m.OwnerID,
		Payload:   payload,
	}
}

func (c *Controller) publish(m *model.Match, eventType model.EventType, payload any) {
	c.emit(c.event(m, eventType, payload))
}

func (c *Controller) emit(event model.Event) {
	if c.publisher == nil {
		return
	}
	c.publisher.Publish(event)
}
