// Package catalog records generated maps in a SQLite database so they can be
// listed and reloaded by id.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/OCharnyshevich/terracegen/internal/config"
	"github.com/OCharnyshevich/terracegen/internal/grid"
	"github.com/OCharnyshevich/terracegen/internal/mapfile"
)

// ErrNotFound is returned when no map has the requested id.
var ErrNotFound = errors.New("catalog: map not found")

const schema = `
CREATE TABLE IF NOT EXISTS maps(
id TEXT NOT NULL PRIMARY KEY,
name TEXT NOT NULL,
seed INTEGER NOT NULL,
width INTEGER NOT NULL,
height INTEGER NOT NULL,
config BLOB NOT NULL,
cells BLOB NOT NULL,
created_at DATETIME NOT NULL);`

// Entry is one catalogued map. List leaves Config and Cells empty.
type Entry struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Seed      int64     `db:"seed"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	Config    []byte    `db:"config"`
	Cells     []byte    `db:"cells"`
	CreatedAt time.Time `db:"created_at"`
}

// Settings decodes the configuration the map was generated with.
func (e *Entry) Settings() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if err := json.Unmarshal(e.Config, cfg); err != nil {
		return nil, fmt.Errorf("catalog: parse config of %s: %w", e.ID, err)
	}
	return cfg, nil
}

// Grid rebuilds the stored grid.
func (e *Entry) Grid() (*grid.Grid, error) {
	cfg, err := e.Settings()
	if err != nil {
		return nil, err
	}
	g, err := grid.New(e.Width, e.Height, cfg.ChunkSizeX, cfg.ChunkSizeZ)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", e.ID, err)
	}
	r := mapfile.Range{Min: cfg.ElevationMinimum, Max: cfg.ElevationMaximum}
	if err := mapfile.Decode(g, e.Cells, r); err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", e.ID, err)
	}
	return g, nil
}

// Catalog is a handle on the map database.
type Catalog struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open opens or creates the database at path.
func Open(path string) (*Catalog, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	// A single connection serialises writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: create schema: %w", err)
	}
	return &Catalog{db: db, now: time.Now}, nil
}

// Close releases the database.
func (c *Catalog) Close() error { return c.db.Close() }

// Put records g under a fresh id.
func (c *Catalog) Put(ctx context.Context, name string, seed int64, g *grid.Grid, cfg *config.Config) (*Entry, error) {
	cells, err := mapfile.Encode(g)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode %s: %w", name, err)
	}
	settings, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode config: %w", err)
	}
	e := &Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Seed:      seed,
		Width:     g.Width(),
		Height:    g.Height(),
		Config:    settings,
		Cells:     cells,
		CreatedAt: c.now().UTC(),
	}
	_, err = c.db.NamedExecContext(ctx, `INSERT INTO maps(id, name, seed, width, height, config, cells, created_at)
		VALUES(:id, :name, :seed, :width, :height, :config, :cells, :created_at)`, e)
	if err != nil {
		return nil, fmt.Errorf("catalog: insert %s: %w", name, err)
	}
	return e, nil
}

// Get loads the map with the given id.
func (c *Catalog) Get(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	err := c.db.GetContext(ctx, &e, "SELECT * FROM maps WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: get %s: %w", id, err)
	}
	return &e, nil
}

// List returns every map, oldest first, without configs and cells.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := c.db.SelectContext(ctx, &entries,
		"SELECT id, name, seed, width, height, created_at FROM maps ORDER BY created_at, name")
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	return entries, nil
}

// Delete removes the map with the given id.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, "DELETE FROM maps WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("catalog: delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("catalog: delete %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
