// Package sculpt grows a landmass on a grid by raising and sinking random
// flood-filled patches until a land budget is spent, then carves the
// fixed structures every map shares.
package sculpt

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/OCharnyshevich/terracegen/internal/config"
	"github.com/OCharnyshevich/terracegen/internal/frontier"
	"github.com/OCharnyshevich/terracegen/internal/grid"
	"github.com/OCharnyshevich/terracegen/internal/rng"
)

// Result is a finished map plus what it took to make it.
type Result struct {
	Grid *grid.Grid
	Seed int64

	// Spawn is the player start inside the chamber; Auxiliary holds
	// distinct random cells for other spawns.
	Spawn     *grid.Cell
	Auxiliary []*grid.Cell

	LandBudget int
	// LandCells is the number of dry cells once the budget is spent,
	// before structures are carved.
	LandCells int
	Patches   int
	Raised    int
	Sunk      int
	// CorridorEnd is the last row carved by the chamber corridor.
	CorridorEnd int
}

// Generator runs the sculptor. The random source is borrowed: its state is
// saved before a run and restored afterwards.
type Generator struct {
	cfg *config.Config
	rng *rng.RNG
	log *slog.Logger

	frontier *frontier.Queue[*grid.Cell]
	phase    int

	now     func() time.Time
	started time.Time
}

// New creates a Generator. A nil logger discards output.
func New(cfg *config.Config, r *rng.RNG, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Generator{
		cfg:     cfg,
		rng:     r,
		log:     log,
		now:     time.Now,
		started: time.Now(),
	}
}

// Generate builds a width x height map. A nil seed falls back to the
// configured fixed seed, or to a freshly derived one when none is fixed.
// Configuration errors are reported before any grid is allocated.
func (g *Generator) Generate(width, height int, seed *int64) (res *Result, err error) {
	cfg := *g.cfg
	cfg.Width, cfg.Height = width, height
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	state, err := g.rng.State()
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := g.rng.Restore(state); rerr != nil && err == nil {
			res, err = nil, rerr
		}
	}()

	var used int64
	switch {
	case seed != nil:
		used = *seed
	case cfg.UseFixedSeed:
		used = cfg.Seed
	default:
		now := g.now()
		used = rng.DeriveSeed(g.rng, now, now.Sub(g.started))
	}
	g.rng.Seed(used)
	g.log.Info("generate map", "seed", used, "width", width, "height", height)

	gr, err := grid.New(width, height, cfg.ChunkSizeX, cfg.ChunkSizeZ)
	if err != nil {
		return nil, fmt.Errorf("sculpt: %w", err)
	}
	for _, c := range gr.Cells() {
		c.SetWaterLevel(cfg.WaterLevel)
	}

	if g.frontier == nil {
		g.frontier = frontier.New[*grid.Cell](gr.CellCount())
	}

	r := &run{Generator: g, cfg: &cfg, grid: gr}
	res = &Result{Grid: gr, Seed: used}
	res.LandBudget = landBudget(gr.CellCount(), cfg.LandPercentage)
	r.createLand(res)
	for _, c := range gr.Cells() {
		if !c.IsUnderwater() {
			res.LandCells++
		}
	}
	r.carve(res)
	r.pickSpawns(res)

	gr.ResetSearch()
	g.log.Info("map generated", "seed", used, "patches", res.Patches,
		"raised", res.Raised, "sunk", res.Sunk)
	return res, nil
}

// Generate builds a map with a private random source and no logging.
func Generate(width, height int, seed *int64, cfg *config.Config) (*grid.Grid, int64, error) {
	res, err := New(cfg, rng.New(time.Now().UnixNano()), nil).Generate(width, height, seed)
	if err != nil {
		return nil, 0, err
	}
	return res.Grid, res.Seed, nil
}

// landBudget is the number of cells that should end up dry. Halves round
// to even.
func landBudget(cells, percentage int) int {
	return int(math.RoundToEven(float64(cells*percentage) / 100))
}

// run is the state of one Generate call.
type run struct {
	*Generator
	cfg  *config.Config
	grid *grid.Grid
}

func (r *run) randomCell() *grid.Cell {
	return r.grid.CellAt(r.rng.IntN(r.grid.CellCount()))
}
