package match

import (
	"github.com/mcoot/battleship-go2/internal/model"
)

// checkCanFire maps the match phase to the error a human shot would get
func checkCanFire(m *model.Match) error {
	switch m.Phase {
	case model.PhaseHumanTurn:
		return nil
	case model.PhaseOver:
		return model.ErrMatchOver
	case model.PhaseAbandoned:
		return model.ErrMatchAbandoned
	default:
		return model.ErrNotPlayerTurn
	}
}

// ApplyHumanShot resolves one human shot against the machine fleet and
// advances the phase. A miss hands the turn to the machine, a strike keeps
// it, and sinking the last machine ship ends the match. Repeat shots change
// nothing.
func ApplyHumanShot(m *model.Match, pos model.Position) (model.ShotResult, error) {
	if err := checkCanFire(m); err != nil {
		return model.ShotResult{}, err
	}
	result, err := m.Machine.Board.ReceiveShot(pos)
	if err != nil {
		return model.ShotResult{}, err
	}
	if result.Outcome == model.ShotAlreadyShot {
		return result, nil
	}

	m.HumanShots++
	switch {
	case m.Machine.HasLost():
		m.Phase = model.PhaseOver
		m.Winner = model.SideHuman
	case !result.Struck():
		m.Phase = model.PhaseMachineTurn
	}
	return result, nil
}
