package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/storage"
)

const (
	upsertPlayer = `INSERT INTO players (id, display_name, is_guest, created_at) VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET display_name = excluded.display_name, is_guest = excluded.is_guest`
	selectPlayer = `SELECT id, display_name, is_guest, created_at FROM players WHERE id = ?`
	deletePlayer = `DELETE FROM players WHERE id = ?`

	upsertRegisteredPlayer = `INSERT INTO registered_players (player_id, username, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT (player_id) DO UPDATE SET username = excluded.username, password_hash = excluded.password_hash, updated_at = excluded.updated_at`
	selectRegisteredPlayer           = `SELECT player_id, username, password_hash, created_at, updated_at FROM registered_players WHERE player_id = ?`
	selectRegisteredPlayerByUsername = `SELECT player_id, username, password_hash, created_at, updated_at FROM registered_players WHERE username = ?`

	upsertMatch = `INSERT INTO matches (id, owner_id, phase, snapshot, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET phase = excluded.phase, snapshot = excluded.snapshot, updated_at = excluded.updated_at`
	selectMatch        = `SELECT snapshot FROM matches WHERE id = ?`
	deleteMatch        = `DELETE FROM matches WHERE id = ?`
	selectOwnerMatches = `SELECT snapshot FROM matches WHERE owner_id = ? ORDER BY updated_at DESC`
)

// Storage is a SQL implementation of the storage interface for sqlite and postgres.
// Matches are stored as their JSON snapshot alongside indexed columns.
type Storage struct {
	db      *sql.DB
	dialect Dialect
}

// Open optionally migrates, then connects and configures the pool
func Open(cfg Config) (*Storage, error) {
	if cfg.Migrate {
		if err := Migrate(cfg.Dialect, cfg.ConnString()); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(string(cfg.Dialect), cfg.ConnString())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return New(db, cfg.Dialect), nil
}

// New wraps an existing connection (for testing)
func New(db *sql.DB, dialect Dialect) *Storage {
	return &Storage{db: db, dialect: dialect}
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// rebind rewrites ? placeholders as $n for postgres
func (s *Storage) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.db.ExecContext(ctx, s.rebind(upsertPlayer), player.ID, player.DisplayName, player.IsGuest, player.CreatedAt)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var p model.Player
	err := s.db.QueryRowContext(ctx, s.rebind(selectPlayer), id).Scan(&p.ID, &p.DisplayName, &p.IsGuest, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	_, err := s.db.ExecContext(ctx, s.rebind(deletePlayer), id)
	return err
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	_, err := s.db.ExecContext(ctx, s.rebind(upsertRegisteredPlayer),
		rp.PlayerID, rp.Username, rp.PasswordHash, rp.CreatedAt, rp.UpdatedAt)
	return err
}

func (s *Storage) scanRegisteredPlayer(row *sql.Row) (*model.RegisteredPlayer, error) {
	var rp model.RegisteredPlayer
	err := row.Scan(&rp.PlayerID, &rp.Username, &rp.PasswordHash, &rp.CreatedAt, &rp.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	return s.scanRegisteredPlayer(s.db.QueryRowContext(ctx, s.rebind(selectRegisteredPlayer), playerID))
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	return s.scanRegisteredPlayer(s.db.QueryRowContext(ctx, s.rebind(selectRegisteredPlayerByUsername), username))
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match.Snapshot())
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.rebind(upsertMatch),
		match.ID, match.OwnerID, match.Phase, string(data), match.CreatedAt, match.UpdatedAt)
	return err
}

func decodeMatch(data string) (*model.Match, error) {
	var rec model.MatchRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidSnapshot, err)
	}
	return model.RestoreMatch(rec)
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	var data string
	err := s.db.QueryRowContext(ctx, s.rebind(selectMatch), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeMatch(data)
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	_, err := s.db.ExecContext(ctx, s.rebind(deleteMatch), id)
	return err
}

// ListMatchesByOwner returns the owner's matches, most recently updated first
func (s *Storage) ListMatchesByOwner(ctx context.Context, owner model.PlayerID) ([]*model.Match, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(selectOwnerMatches), owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []*model.Match{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		match, err := decodeMatch(data)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}
