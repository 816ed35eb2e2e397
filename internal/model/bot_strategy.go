package model

import "fmt"

// Targeting strategy names
const (
	BotStrategyRandom     = "random"
	BotStrategyHuntTarget = "hunt_target"
)

// DefaultBotStrategy is used when a match is created without a strategy
const DefaultBotStrategy = BotStrategyHuntTarget

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyRandom:
		return "Random"
	case BotStrategyHuntTarget:
		return "Hunt/Target"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyRandom, BotStrategyHuntTarget}
}

// IsValidBotStrategy reports whether name is a known strategy
func IsValidBotStrategy(name string) bool {
	for _, s := range ValidBotStrategies() {
		if s == name {
			return true
		}
	}
	return false
}

// TargetingMode is the hunt/target state of the machine's targeting
type TargetingMode string

const (
	TargetingHunt   TargetingMode = "hunt"
	TargetingTarget TargetingMode = "target"
)

// TargetingState is the persisted state of the machine's strategy.
// Pending is a FIFO queue with no duplicates.
type TargetingState struct {
	Strategy string        `json:"strategy"`
	Mode     TargetingMode `json:"mode"`
	Pending  []Position    `json:"pending"`
	LastShot *Position     `json:"last_shot,omitempty"`
}

// validate checks a persisted targeting state. An empty mode reads as hunt.
func (t TargetingState) validate() error {
	if !IsValidBotStrategy(t.Strategy) {
		return fmt.Errorf("%w: unknown targeting strategy %q", ErrInvalidSnapshot, t.Strategy)
	}
	switch t.Mode {
	case "", TargetingHunt, TargetingTarget:
	default:
		return fmt.Errorf("%w: unknown targeting mode %q", ErrInvalidSnapshot, t.Mode)
	}
	for _, pos := range t.Pending {
		if !pos.InBounds() {
			return fmt.Errorf("%w: queued target %s is off the grid", ErrInvalidSnapshot, pos)
		}
	}
	if t.LastShot != nil && !t.LastShot.InBounds() {
		return fmt.Errorf("%w: last shot %s is off the grid", ErrInvalidSnapshot, *t.LastShot)
	}
	return nil
}
