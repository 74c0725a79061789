// Package store provides the Postgres-backed GameStore. Game state lives
// in a jsonb column; a separate version column carries the optimistic lock
// so concurrent writers cannot clobber each other.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/skansin/sjaus"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id      text PRIMARY KEY,
	state   jsonb NOT NULL,
	version bigint NOT NULL DEFAULT 0,
	waiting boolean NOT NULL DEFAULT true
);
CREATE TABLE IF NOT EXISTS messages (
	id          text PRIMARY KEY,
	game_id     text NOT NULL REFERENCES games (id),
	player_id   text NOT NULL,
	player_name text NOT NULL,
	body        text NOT NULL,
	sent_at     timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS messages_game_id_idx ON messages (game_id, sent_at);
`

// PostgresStore implements sjaus.GameStore over database/sql with the pgx
// stdlib driver
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool for the given DATABASE_URL and
// verifies it with a ping
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// EnsureSchema creates the tables if they do not exist
func (s *PostgresStore) EnsureSchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateGame(g *sjaus.Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshalling game %s: %w", g.ID, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO games (id, state, version, waiting) VALUES ($1, $2, $3, $4)`,
		g.ID, raw, g.Version, g.State == sjaus.Waiting,
	)
	if err != nil {
		return fmt.Errorf("inserting game %s: %w", g.ID, err)
	}
	return nil
}

func (s *PostgresStore) FindGame(id string) (*sjaus.Game, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT state FROM games WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sjaus.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching game %s: %w", id, err)
	}

	var g sjaus.Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("unmarshalling game %s: %w", id, err)
	}
	return &g, nil
}

// SaveGame writes the game back, guarded by the version it was loaded at.
// A mismatch means someone else saved first; the caller reloads and retries.
func (s *PostgresStore) SaveGame(g *sjaus.Game) error {
	loadedVersion := g.Version
	g.Version++
	raw, err := json.Marshal(g)
	if err != nil {
		g.Version = loadedVersion
		return fmt.Errorf("marshalling game %s: %w", g.ID, err)
	}

	res, err := s.db.Exec(
		`UPDATE games SET state = $1, version = $2, waiting = $3 WHERE id = $4 AND version = $5`,
		raw, g.Version, g.State == sjaus.Waiting, g.ID, loadedVersion,
	)
	if err != nil {
		g.Version = loadedVersion
		return fmt.Errorf("updating game %s: %w", g.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		g.Version = loadedVersion
		return fmt.Errorf("updating game %s: %w", g.ID, err)
	}
	if affected == 0 {
		g.Version = loadedVersion
		var exists bool
		if err := s.db.QueryRow(`SELECT true FROM games WHERE id = $1`, g.ID).Scan(&exists); errors.Is(err, sql.ErrNoRows) {
			return sjaus.ErrGameNotFound
		}
		return sjaus.ErrConflict
	}
	return nil
}

func (s *PostgresStore) WaitingGames() ([]*sjaus.Game, error) {
	rows, err := s.db.Query(`SELECT state FROM games WHERE waiting`)
	if err != nil {
		return nil, fmt.Errorf("listing waiting games: %w", err)
	}
	defer rows.Close()

	out := []*sjaus.Game{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning waiting game: %w", err)
		}
		var g sjaus.Game
		if err := json.Unmarshal(raw, &g); err != nil {
			return nil, fmt.Errorf("unmarshalling waiting game: %w", err)
		}
		out = append(out, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating waiting games: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AppendMessage(m sjaus.Message) error {
	_, err := s.db.Exec(
		`INSERT INTO messages (id, game_id, player_id, player_name, body, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.GameID, m.PlayerID, m.PlayerName, m.Body, m.SentAt,
	)
	if err != nil {
		return fmt.Errorf("inserting message for game %s: %w", m.GameID, err)
	}
	return nil
}

func (s *PostgresStore) Messages(gameID string) ([]sjaus.Message, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, player_id, player_name, body, sent_at
		 FROM messages WHERE game_id = $1 ORDER BY sent_at`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching messages for game %s: %w", gameID, err)
	}
	defer rows.Close()

	out := []sjaus.Message{}
	for rows.Next() {
		var m sjaus.Message
		if err := rows.Scan(&m.ID, &m.GameID, &m.PlayerID, &m.PlayerName, &m.Body, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scanning message for game %s: %w", gameID, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages for game %s: %w", gameID, err)
	}
	return out, nil
}
