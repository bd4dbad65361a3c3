// Package persistence stores world state in SQLite, or PostgreSQL when
// configured.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/talgya/terra-sim/internal/engine"
	"github.com/talgya/terra-sim/internal/planet"
	"github.com/talgya/terra-sim/internal/terrasim"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MetaLastDay is the world_meta key holding the last saved day.
const MetaLastDay = "last_day"

// DB wraps a database connection for world state persistence.
type DB struct {
	conn   *sqlx.DB
	driver string
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	return OpenDriver(DriverSQLite, path)
}

// OpenDriver opens dsn with driver and creates any missing tables. For
// SQLite dsn is a file path.
func OpenDriver(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("open db: unsupported driver %q", driver)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, driver: driver}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	eventID := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.driver == DriverPostgres {
		eventID = "BIGSERIAL PRIMARY KEY"
	}
	schema := []string{
		`CREATE TABLE IF NOT EXISTS bodies (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			body_json TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id ` + eventID + `,
			tick INTEGER NOT NULL,
			body TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			meta_json TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS world_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick)`,
		`CREATE INDEX IF NOT EXISTS idx_events_body ON events(body)`,
	}
	for _, stmt := range schema {
		if _, err := db.conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveBodies writes all bodies to the database (full replace). Slice order
// is kept so loading restores the tick order.
func (db *DB) SaveBodies(bodies []*planet.CelestialBody) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bodies"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(tx.Rebind(`INSERT INTO bodies
		(id, position, name, type, body_json) VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, b := range bodies {
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("body %s: %w", b.Name, err)
		}
		if _, err := stmt.Exec(b.ID, i, b.Name, b.Type, string(data)); err != nil {
			return fmt.Errorf("body %s: %w", b.Name, err)
		}
	}

	return tx.Commit()
}

type bodyRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	BodyJSON string `db:"body_json"`
}

// LoadBodies reads every stored body in saved order.
func (db *DB) LoadBodies() ([]*planet.CelestialBody, error) {
	var rows []bodyRow
	if err := db.conn.Select(&rows, "SELECT id, name, body_json FROM bodies ORDER BY position"); err != nil {
		return nil, err
	}

	bodies := make([]*planet.CelestialBody, 0, len(rows))
	for _, r := range rows {
		b := &planet.CelestialBody{}
		if err := json.Unmarshal([]byte(r.BodyJSON), b); err != nil {
			return nil, fmt.Errorf("decode body %s: %w", r.Name, err)
		}
		b.ID = r.ID
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// HasWorldState reports whether any bodies have been saved.
func (db *DB) HasWorldState() (bool, error) {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM bodies"); err != nil {
		return false, err
	}
	return n > 0, nil
}

// SaveEvents appends events to the event log.
func (db *DB) SaveEvents(events []terrasim.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := tx.Rebind("INSERT INTO events (tick, body, description, category, meta_json) VALUES (?, ?, ?, ?, ?)")
	for _, e := range events {
		meta := ""
		if len(e.Meta) > 0 {
			data, err := json.Marshal(e.Meta)
			if err != nil {
				return fmt.Errorf("event meta: %w", err)
			}
			meta = string(data)
		}
		if _, err := tx.Exec(query, e.Tick, e.Body, e.Description, e.Category, meta); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(db.conn.Rebind(
		`INSERT INTO world_meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`),
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value. A missing key returns sql.ErrNoRows.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, db.conn.Rebind("SELECT value FROM world_meta WHERE key = ?"), key)
	return value, err
}

// LastDay returns the last saved day, or 0 when none was saved.
func (db *DB) LastDay() (uint64, error) {
	v, err := db.GetMeta(MetaLastDay)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	day, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", MetaLastDay, v, err)
	}
	return day, nil
}

// SaveWorldState performs a full save of the bodies and the current day.
// Events are appended separately as they happen.
func (db *DB) SaveWorldState(w *engine.World) error {
	slog.Info("saving world state", "bodies", len(w.Bodies), "day", w.CurrentDay())

	if err := db.SaveBodies(w.Bodies); err != nil {
		return fmt.Errorf("save bodies: %w", err)
	}
	if err := db.SaveMeta(MetaLastDay, strconv.FormatUint(w.CurrentDay(), 10)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("world state saved")
	return nil
}

// LoadWorldState rebuilds a World from the stored bodies, day and most
// recent events.
func (db *DB) LoadWorldState() (*engine.World, error) {
	bodies, err := db.LoadBodies()
	if err != nil {
		return nil, fmt.Errorf("load bodies: %w", err)
	}
	day, err := db.LastDay()
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	events, err := db.RecentEvents(engine.MaxRecentEvents)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	// RecentEvents is newest first; the world log is oldest first.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	w := engine.NewWorld(bodies)
	w.LastDay = day
	w.Events = events
	slog.Info("world state loaded", "bodies", len(bodies), "day", day, "events", len(events))
	return w, nil
}

type eventRow struct {
	Tick        uint64 `db:"tick"`
	Body        string `db:"body"`
	Description string `db:"description"`
	Category    string `db:"category"`
	MetaJSON    string `db:"meta_json"`
}

// RecentEvents returns the most recent events, newest first.
func (db *DB) RecentEvents(limit int) ([]terrasim.Event, error) {
	var rows []eventRow
	err := db.conn.Select(&rows, db.conn.Rebind(
		"SELECT tick, body, description, category, meta_json FROM events ORDER BY id DESC LIMIT ?"),
		limit,
	)
	if err != nil {
		return nil, err
	}

	events := make([]terrasim.Event, 0, len(rows))
	for _, r := range rows {
		e := terrasim.Event{Tick: r.Tick, Body: r.Body, Description: r.Description, Category: r.Category}
		if r.MetaJSON != "" {
			if err := json.Unmarshal([]byte(r.MetaJSON), &e.Meta); err != nil {
				return nil, fmt.Errorf("decode event meta: %w", err)
			}
		}
		events = append(events, e)
	}
	return events, nil
}

// BodyEvents returns the most recent events of one body, newest first.
func (db *DB) BodyEvents(body string, limit int) ([]terrasim.Event, error) {
	var rows []eventRow
	err := db.conn.Select(&rows, db.conn.Rebind(
		"SELECT tick, body, description, category, meta_json FROM events WHERE body = ? ORDER BY id DESC LIMIT ?"),
		body, limit,
	)
	if err != nil {
		return nil, err
	}
	events := make([]terrasim.Event, len(rows))
	for i, r := range rows {
		events[i] = terrasim.Event{Tick: r.Tick, Body: r.Body, Description: r.Description, Category: r.Category}
	}
	return events, nil
}
