package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/battleship-go2/internal/api/response"
	"github.com/mcoot/battleship-go2/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Player:
		o.printPlayer(v)
	case response.AuthResponse:
		o.printPlayer(v.Player)
		fmt.Fprintf(o.w, "Token: %s\n", v.SessionToken)
	case response.Match:
		o.printMatch(v)
	case []response.MatchSummary:
		o.printMatchList(v)
	case response.FireResponse:
		o.printFire(v)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
		if v.Storage != "" {
			fmt.Fprintf(o.w, "Storage: %s\n", v.Storage)
		}
	default:
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p response.Player) {
	guest := "no"
	if p.IsGuest {
		guest = "yes"
	}
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Fprintf(o.w, "Guest: %s\n", guest)
}

func (o *Output) printMatch(m response.Match) {
	fmt.Fprintf(o.w, "Match: %s\n", m.ID)
	fmt.Fprintf(o.w, "Phase: %s\n", m.Phase)
	fmt.Fprintf(o.w, "Opponent: %s\n", model.BotStrategyDisplayName(m.Strategy))
	if m.Winner != "" {
		fmt.Fprintf(o.w, "Winner: %s\n", m.Winner)
	}
	fmt.Fprintf(o.w, "Shots: you %d, machine %d\n", m.HumanShots, m.MachineShots)
	if m.LastMachineShot != nil {
		fmt.Fprintf(o.w, "Last machine shot: (%d,%d)\n", m.LastMachineShot.Row, m.LastMachineShot.Col)
	}

	fmt.Fprintf(o.w, "\nYour fleet (%d/%d sunk):\n", m.Human.SunkCount, m.Human.ShipCount)
	o.printBoard(m.Human.Board)
	if len(m.Human.Unplaced) > 0 {
		names := make([]string, 0, len(m.Human.Unplaced))
		for _, s := range m.Human.Unplaced {
			names = append(names, fmt.Sprintf("%s(%d)", s.Name, s.Size))
		}
		fmt.Fprintf(o.w, "Unplaced: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(o.w, "\nMachine fleet (%d/%d sunk):\n", m.Machine.SunkCount, m.Machine.ShipCount)
	o.printBoard(m.Machine.Board)
}

func (o *Output) printMatchList(list []response.MatchSummary) {
	if len(list) == 0 {
		fmt.Fprintln(o.w, "No matches")
		return
	}
	for _, m := range list {
		line := fmt.Sprintf("%s  %-12s  you sunk %d, lost %d", m.ID, m.Phase, m.MachineSunk, m.HumanSunk)
		if m.Winner != "" {
			line += "  winner: " + m.Winner
		}
		fmt.Fprintln(o.w, line)
	}
}

func (o *Output) printFire(f response.FireResponse) {
	fmt.Fprintf(o.w, "You fired at (%d,%d): %s\n", f.Shot.Position.Row, f.Shot.Position.Col, describeShot(f.Shot))
	for _, s := range f.MachineShots {
		fmt.Fprintf(o.w, "Machine fired at (%d,%d): %s\n", s.Position.Row, s.Position.Col, describeShot(s))
	}
	switch {
	case f.Winner == string(model.SideHuman):
		fmt.Fprintln(o.w, "You win!")
	case f.Winner == string(model.SideMachine):
		fmt.Fprintln(o.w, "The machine wins.")
	default:
		fmt.Fprintf(o.w, "Phase: %s\n", f.Phase)
	}
}

func describeShot(s response.Shot) string {
	switch s.Outcome {
	case string(model.ShotSunk):
		return "sunk " + s.ShipName
	case string(model.ShotAlreadyShot):
		return "already shot there"
	default:
		return s.Outcome
	}
}

var cellGlyphs = map[string]string{
	string(model.CellEmpty):    ".",
	string(model.CellOccupied): "#",
	string(model.CellHit):      "X",
	string(model.CellSunk):     "*",
	string(model.CellMiss):     "o",
}

func (o *Output) printBoard(b response.Board) {
	if len(b.Cells) == 0 {
		return
	}
	size := len(b.Cells)

	fmt.Fprint(o.w, "    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(o.w, " %d", col)
	}
	fmt.Fprintln(o.w)

	fmt.Fprintln(o.w, "   +"+strings.Repeat("--", size)+"-+")
	for row := 0; row < size; row++ {
		fmt.Fprintf(o.w, " %d |", row)
		for col := 0; col < size; col++ {
			glyph, ok := cellGlyphs[b.Cells[row][col]]
			if !ok {
				glyph = "?"
			}
			fmt.Fprintf(o.w, " %s", glyph)
		}
		fmt.Fprintln(o.w, " |")
	}
	fmt.Fprintln(o.w, "   +"+strings.Repeat("--", size)+"-+")
}
