package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/economy"
)

// Store wraps a SQLite connection holding economy saves.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a database at path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		saved_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS economies (
		run_id TEXT NOT NULL,
		serial INTEGER NOT NULL,
		owner INTEGER NOT NULL,
		kind INTEGER NOT NULL,
		timer_serial INTEGER NOT NULL,
		PRIMARY KEY (run_id, serial)
	);

	CREATE TABLE IF NOT EXISTS targets (
		run_id TEXT NOT NULL,
		economy INTEGER NOT NULL,
		type INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		last_modified INTEGER NOT NULL,
		PRIMARY KEY (run_id, economy, type)
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveSession writes the snapshots of run id taken at game time at,
// replacing an earlier save of the same run.
func (s *Store) SaveSession(id uuid.UUID, at economy.Time, snaps []economy.Snapshot) error {
	run := id.String()
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"economies", "targets"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE run_id = ?", run); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err := tx.Exec("INSERT OR REPLACE INTO runs (id, saved_at) VALUES (?, ?)", run, int64(at)); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	econStmt, err := tx.Preparex(`INSERT INTO economies
		(run_id, serial, owner, kind, timer_serial) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer econStmt.Close()
	targetStmt, err := tx.Preparex(`INSERT INTO targets
		(run_id, economy, type, quantity, last_modified) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer targetStmt.Close()

	for _, sn := range snaps {
		if _, err := econStmt.Exec(run, uint32(sn.Serial), uint8(sn.Owner), uint8(sn.Kind), sn.TimerSerial); err != nil {
			return fmt.Errorf("insert economy %d: %w", sn.Serial, err)
		}
		for t, q := range sn.Targets {
			if _, err := targetStmt.Exec(run, uint32(sn.Serial), t, q.Quantity, int64(q.LastModified)); err != nil {
				return fmt.Errorf("insert target %d/%d: %w", sn.Serial, t, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("session saved", "run", run, "economies", len(snaps), "at", at)

	return nil
}

// LoadSession reads the snapshots of run id in economy serial order and the
// game time they were taken at.
func (s *Store) LoadSession(id uuid.UUID) ([]economy.Snapshot, economy.Time, error) {
	run := id.String()
	var savedAt int64
	err := s.conn.Get(&savedAt, "SELECT saved_at FROM runs WHERE id = ?", run)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("%w: %s", ErrRunNotFound, run)
	}
	if err != nil {
		return nil, 0, err
	}

	var econs []economyRow
	if err := s.conn.Select(&econs,
		"SELECT run_id, serial, owner, kind, timer_serial FROM economies WHERE run_id = ? ORDER BY serial",
		run,
	); err != nil {
		return nil, 0, fmt.Errorf("select economies: %w", err)
	}
	var targets []targetRow
	if err := s.conn.Select(&targets,
		"SELECT economy, type, quantity, last_modified FROM targets WHERE run_id = ? ORDER BY economy, type",
		run,
	); err != nil {
		return nil, 0, fmt.Errorf("select targets: %w", err)
	}

	byEconomy := make(map[uint32][]economy.TargetQuantity, len(econs))
	for _, t := range targets {
		list := byEconomy[t.Economy]
		for len(list) < t.Type {
			list = append(list, economy.TargetQuantity{})
		}
		byEconomy[t.Economy] = append(list, economy.TargetQuantity{
			Quantity:     t.Quantity,
			LastModified: economy.Time(t.LastModified),
		})
	}

	out := make([]economy.Snapshot, 0, len(econs))
	for _, e := range econs {
		out = append(out, economy.Snapshot{
			Serial:      core.Serial(e.Serial),
			Owner:       core.Player(e.Owner),
			Kind:        core.Kind(e.Kind),
			TimerSerial: e.TimerSerial,
			Targets:     byEconomy[e.Serial],
		})
	}

	return out, economy.Time(savedAt), nil
}

// Runs lists every saved run, most recent game time first.
func (s *Store) Runs() ([]Run, error) {
	var rows []runRow
	err := s.conn.Select(&rows, `SELECT r.id AS id, r.saved_at AS saved_at,
		(SELECT COUNT(*) FROM economies e WHERE e.run_id = r.id) AS economies
		FROM runs r ORDER BY r.saved_at DESC, r.id`)
	if err != nil {
		return nil, err
	}

	out := make([]Run, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("run %q: %w", r.ID, err)
		}
		out = append(out, Run{ID: id, SavedAt: economy.Time(r.SavedAt), Economies: r.Economies})
	}

	return out, nil
}

// SaveMeta stores a key-value pair.
func (s *Store) SaveMeta(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (s *Store) GetMeta(key string) (string, error) {
	var value string
	err := s.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
