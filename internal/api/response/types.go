package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/auth"
	"github.com/mcoot/battleship-go2/internal/services/match"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player    `json:"player"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Position is a board coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func positionFromModel(p model.Position) Position {
	return Position{Row: p.Row, Col: p.Col}
}

// Board is a 10x10 grid of cell states, indexed [row][col]
type Board struct {
	Cells [][]string `json:"cells"`
}

// BoardFromModel renders every cell. With fog set, cells holding ships that
// have not been shot read as empty.
func BoardFromModel(b *model.Board, fog bool) Board {
	cells := make([][]string, model.BoardSize)
	for row := 0; row < model.BoardSize; row++ {
		cells[row] = make([]string, model.BoardSize)
		for col := 0; col < model.BoardSize; col++ {
			state, _ := b.CellStatus(model.Position{Row: row, Col: col})
			if fog && state == model.CellOccupied {
				state = model.CellEmpty
			}
			cells[row][col] = string(state)
		}
	}
	return Board{Cells: cells}
}

// Ship is a placed ship
type Ship struct {
	Name        string `json:"name"`
	Size        int    `json:"size"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Orientation string `json:"orientation"`
	Hits        []bool `json:"hits"`
	Sunk        bool   `json:"sunk"`
}

func shipFromModel(s *model.Ship) Ship {
	return Ship{
		Name:        s.Name,
		Size:        s.Size,
		Row:         s.Origin.Row,
		Col:         s.Origin.Col,
		Orientation: string(s.Orientation),
		Hits:        append([]bool{}, s.Hits...),
		Sunk:        s.IsSunk(),
	}
}

// ShipSpec is a roster entry still waiting to be placed
type ShipSpec struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Fleet is one side's board and ships
type Fleet struct {
	Board     Board      `json:"board"`
	Ships     []Ship     `json:"ships"`
	Unplaced  []ShipSpec `json:"unplaced,omitempty"`
	SunkCount int        `json:"sunk_count"`
	ShipCount int        `json:"ship_count"`
}

// fleetFromModel renders a fleet. Hidden fleets only list sunk ships.
func fleetFromModel(f *model.Fleet, hidden bool) Fleet {
	ships := []Ship{}
	for _, s := range f.Board.Ships() {
		if hidden && !s.IsSunk() {
			continue
		}
		ships = append(ships, shipFromModel(s))
	}
	var unplaced []ShipSpec
	for _, spec := range f.Unplaced() {
		unplaced = append(unplaced, ShipSpec{Name: spec.Name, Size: spec.Size})
	}
	return Fleet{
		Board:     BoardFromModel(f.Board, hidden),
		Ships:     ships,
		Unplaced:  unplaced,
		SunkCount: f.SunkCount(),
		ShipCount: len(f.Roster),
	}
}

// Match is the owner's view of a match. The machine fleet stays hidden until
// the match ends.
type Match struct {
	ID              string    `json:"id"`
	Phase           string    `json:"phase"`
	Winner          string    `json:"winner,omitempty"`
	Strategy        string    `json:"strategy"`
	HumanShots      int       `json:"human_shots"`
	MachineShots    int       `json:"machine_shots"`
	Human           Fleet     `json:"human"`
	Machine         Fleet     `json:"machine"`
	LastMachineShot *Position `json:"last_machine_shot,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MatchFromModel converts a model.Match to a response Match
func MatchFromModel(m *model.Match) Match {
	var last *Position
	if m.Targeting.LastShot != nil {
		p := positionFromModel(*m.Targeting.LastShot)
		last = &p
	}
	return Match{
		ID:              string(m.ID),
		Phase:           string(m.Phase),
		Winner:          string(m.Winner),
		Strategy:        m.Targeting.Strategy,
		HumanShots:      m.HumanShots,
		MachineShots:    m.MachineShots,
		Human:           fleetFromModel(m.Human, false),
		Machine:         fleetFromModel(m.Machine, !m.Phase.IsTerminal()),
		LastMachineShot: last,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// MatchSummary is a match listing entry
type MatchSummary struct {
	ID          string    `json:"id"`
	Phase       string    `json:"phase"`
	Winner      string    `json:"winner,omitempty"`
	HumanSunk   int       `json:"human_sunk"`
	MachineSunk int       `json:"machine_sunk"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MatchListFromModel converts matches to listing entries
func MatchListFromModel(matches []*model.Match) []MatchSummary {
	list := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		s := m.Summary()
		list = append(list, MatchSummary{
			ID:          string(s.ID),
			Phase:       string(s.Phase),
			Winner:      string(s.Winner),
			HumanSunk:   s.HumanSunk,
			MachineSunk: s.MachineSunk,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return list
}

// Shot is one resolved shot
type Shot struct {
	Side     string   `json:"side"`
	Position Position `json:"position"`
	Outcome  string   `json:"outcome"`
	ShipName string   `json:"ship_name,omitempty"`
}

func shotFromModel(s model.Shot) Shot {
	return Shot{
		Side:     string(s.Side),
		Position: positionFromModel(s.Position),
		Outcome:  string(s.Result.Outcome),
		ShipName: s.Result.ShipName,
	}
}

// FireResponse reports a human shot and the machine turn it may have triggered
type FireResponse struct {
	Shot         Shot   `json:"shot"`
	MachineShots []Shot `json:"machine_shots"`
	Phase        string `json:"phase"`
	Winner       string `json:"winner,omitempty"`
	Match        Match  `json:"match"`
}

// FireResponseFromOutcome converts a match.FireOutcome
func FireResponseFromOutcome(pos model.Position, out *match.FireOutcome) FireResponse {
	machineShots := make([]Shot, 0, len(out.MachineShots))
	for _, s := range out.MachineShots {
		machineShots = append(machineShots, shotFromModel(s))
	}
	return FireResponse{
		Shot:         shotFromModel(model.Shot{Side: model.SideHuman, Position: pos, Result: out.Result}),
		MachineShots: machineShots,
		Phase:        string(out.Match.Phase),
		Winner:       string(out.Match.Winner),
		Match:        MatchFromModel(out.Match),
	}
}

// Health is the health check response
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}
