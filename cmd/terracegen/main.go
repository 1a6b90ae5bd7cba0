package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OCharnyshevich/terracegen/internal/catalog"
	"github.com/OCharnyshevich/terracegen/internal/config"
	"github.com/OCharnyshevich/terracegen/internal/export"
	"github.com/OCharnyshevich/terracegen/internal/geometry"
	"github.com/OCharnyshevich/terracegen/internal/grid"
	"github.com/OCharnyshevich/terracegen/internal/mapfile"
	"github.com/OCharnyshevich/terracegen/internal/mesh"
	"github.com/OCharnyshevich/terracegen/internal/noise"
	"github.com/OCharnyshevich/terracegen/internal/rng"
	"github.com/OCharnyshevich/terracegen/internal/sculpt"
	"github.com/OCharnyshevich/terracegen/internal/storage"
	"github.com/OCharnyshevich/terracegen/internal/world"
)

type options struct {
	dir        string
	preset     string
	name       string
	obj        string
	catalog    string
	saveConfig bool
	debug      bool

	load        string
	fromCatalog string
	list        bool
	remove      string
	edits       editList
	inspect     string
	at          string
}

var errNeedCatalog = errors.New("-catalog is required")

func main() {
	cfg := config.DefaultConfig()
	var opts options

	flag.IntVar(&cfg.Width, "width", cfg.Width, "map width in cells")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "map height in cells")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "fixed seed (random when unset)")
	flag.IntVar(&cfg.LandPercentage, "land", cfg.LandPercentage, "percentage of dry cells")
	flag.IntVar(&cfg.WaterLevel, "water", cfg.WaterLevel, "water level")
	flag.StringVar(&cfg.Noise, "noise", cfg.Noise, "perturbation noise: simplex or perlin")
	flag.BoolVar(&cfg.Perturb, "perturb", cfg.Perturb, "perturb mesh vertices")
	flag.IntVar(&cfg.SpawnCount, "spawns", cfg.SpawnCount, "number of auxiliary spawn cells")
	flag.StringVar(&opts.dir, "dir", "./data", "storage directory")
	flag.StringVar(&opts.preset, "preset", "", "preset config name in <dir>/presets")
	flag.StringVar(&opts.name, "name", "map", "name of the saved map")
	flag.StringVar(&opts.obj, "obj", "", "write the meshes as Wavefront OBJ to this path")
	flag.StringVar(&opts.catalog, "catalog", "", "SQLite catalog of generated maps")
	flag.BoolVar(&opts.saveConfig, "save-config", false, "write the effective config to <dir>/config.json")
	flag.BoolVar(&opts.debug, "debug", false, "log per-patch activity")
	flag.StringVar(&opts.load, "load", "", "load the saved map with this name instead of generating")
	flag.StringVar(&opts.fromCatalog, "from-catalog", "", "load the catalogued map with this id instead of generating")
	flag.BoolVar(&opts.list, "list", false, "list catalogued maps and exit")
	flag.StringVar(&opts.remove, "delete", "", "delete the catalogued map with this id and exit")
	flag.Var(&opts.edits, "edit", "paint a cell: x,z,elevation=N,terrain=N,water=N,feature=N (repeatable)")
	flag.StringVar(&opts.inspect, "inspect", "", "report the cell at x,z")
	flag.StringVar(&opts.at, "at", "", "report the cell under world position x,y,z")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, explicit, opts, log); err != nil {
		log.Error("terracegen failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, explicit map[string]bool, opts options, log *slog.Logger) error {
	st, err := storage.New(opts.dir, log)
	if err != nil {
		return err
	}

	fromFile := config.DefaultConfig()
	if err := st.LoadConfig(fromFile); err != nil {
		return err
	}
	if opts.preset != "" {
		if err := st.LoadPreset(opts.preset, fromFile); err != nil {
			return err
		}
	}
	config.Merge(cfg, fromFile, explicit)
	if explicit["seed"] {
		cfg.UseFixedSeed = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.saveConfig {
		if err := st.SaveConfig(cfg); err != nil {
			return err
		}
	}

	var cat *catalog.Catalog
	if opts.catalog != "" {
		cat, err = catalog.Open(opts.catalog)
		if err != nil {
			return err
		}
		defer cat.Close()
	}

	switch {
	case opts.list:
		return listCatalog(ctx, cat, log)
	case opts.remove != "":
		if cat == nil {
			return errNeedCatalog
		}
		if err := cat.Delete(ctx, opts.remove); err != nil {
			return err
		}
		log.Info("deleted map", "id", opts.remove)
		return nil
	}

	g, seed, err := acquire(ctx, cfg, st, cat, opts, log)
	if err != nil {
		return err
	}

	var perturb geometry.Perturber
	if cfg.Perturb {
		src, err := noise.New(cfg.Noise, cfg.NoiseSeed)
		if err != nil {
			return err
		}
		perturb.Source = src
	}
	limits := mapfile.Range{Min: cfg.ElevationMinimum, Max: cfg.ElevationMaximum}
	w := world.NewWorld(g, mesh.NewTriangulator(perturb), limits, log)

	if len(opts.edits) > 0 {
		if err := paint(w, st, opts, seed, log); err != nil {
			return err
		}
	}
	if opts.inspect != "" || opts.at != "" {
		if err := inspect(w, opts, log); err != nil {
			return err
		}
	}
	return triangulate(ctx, w, opts.obj, log)
}

// acquire loads the requested map, or generates, saves and catalogues a
// new one.
func acquire(ctx context.Context, cfg *config.Config, st *storage.Storage, cat *catalog.Catalog,
	opts options, log *slog.Logger) (*grid.Grid, int64, error) {
	switch {
	case opts.load != "":
		g, h, err := st.LoadMap(opts.load, mapfile.Range{Min: cfg.ElevationMinimum, Max: cfg.ElevationMaximum})
		if err != nil {
			return nil, 0, err
		}
		return g, h.Seed, nil

	case opts.fromCatalog != "":
		if cat == nil {
			return nil, 0, errNeedCatalog
		}
		e, err := cat.Get(ctx, opts.fromCatalog)
		if err != nil {
			return nil, 0, err
		}
		g, err := e.Grid()
		if err != nil {
			return nil, 0, err
		}
		log.Info("loaded catalogued map", "id", e.ID, "name", e.Name, "seed", e.Seed)
		return g, e.Seed, nil
	}

	gen := sculpt.New(cfg, rng.New(time.Now().UnixNano()), log)
	res, err := gen.Generate(cfg.Width, cfg.Height, nil)
	if err != nil {
		return nil, 0, err
	}
	log.Info("spawn", "cell", res.Spawn.Coordinates(), "auxiliary", len(res.Auxiliary),
		"land_budget", res.LandBudget, "land_cells", res.LandCells)

	if _, err := st.SaveMap(opts.name, res.Grid, res.Seed); err != nil {
		return nil, 0, err
	}
	if cat != nil {
		e, err := cat.Put(ctx, opts.name, res.Seed, res.Grid, cfg)
		if err != nil {
			return nil, 0, err
		}
		log.Info("catalogued map", "id", e.ID, "name", e.Name)
	}
	return res.Grid, res.Seed, nil
}

func listCatalog(ctx context.Context, cat *catalog.Catalog, log *slog.Logger) error {
	if cat == nil {
		return errNeedCatalog
	}
	entries, err := cat.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		log.Info("map", "id", e.ID, "name", e.Name, "seed", e.Seed,
			"width", e.Width, "height", e.Height, "created", e.CreatedAt.Format(time.RFC3339))
	}
	log.Info("catalog listed", "maps", len(entries))
	return nil
}

// paint applies every -edit and writes the result back under -name.
func paint(w *world.World, st *storage.Storage, opts options, seed int64, log *slog.Logger) error {
	for _, e := range opts.edits {
		if err := w.Edit(e.cell, e.brush); err != nil {
			return err
		}
	}
	path, err := st.WriteMap(opts.name, func(out io.Writer) error {
		return w.Save(out, seed)
	})
	if err != nil {
		return err
	}
	log.Info("saved edited map", "path", path, "edits", len(opts.edits))
	return nil
}

// inspect reports one cell, its walking distance from the spawn and the
// size of its chunk mesh.
func inspect(w *world.World, opts options, log *slog.Logger) error {
	var at grid.Coordinates
	if opts.at != "" {
		p, err := parsePosition(opts.at)
		if err != nil {
			return err
		}
		at = geometry.CoordinatesFromPosition(p)
	} else {
		c, err := parseCell(opts.inspect)
		if err != nil {
			return err
		}
		at = c
	}

	width, _ := w.Size()
	if err := w.DistancesFrom(sculpt.SpawnCoordinates(width)); err != nil {
		return err
	}
	var attrs []any
	err := w.Inspect(at, func(c *grid.Cell) {
		attrs = []any{"cell", c.Coordinates(), "elevation", c.Elevation(),
			"water", c.WaterLevel(), "terrain", c.TerrainType(), "feature", c.FeatureType(),
			"underwater", c.IsUnderwater(), "spawn_distance", c.Distance}
	})
	if err != nil {
		return err
	}
	m, err := w.Mesh(w.ChunkPosOf(at))
	if err != nil {
		return err
	}
	attrs = append(attrs, "chunk", m.Pos, "chunk_vertices", m.Terrain.VertexCount())
	log.Info("inspect", attrs...)
	return nil
}

// triangulate builds every chunk mesh and, with a path, writes them as OBJ.
func triangulate(ctx context.Context, w *world.World, path string, log *slog.Logger) error {
	var vertices, triangles int
	count := mesh.SinkFunc(func(m *mesh.ChunkMesh) error {
		for _, b := range []*mesh.Buffers{m.Terrain, m.Water, m.Shore} {
			vertices += b.VertexCount()
			triangles += b.TriangleCount()
		}
		return nil
	})

	if path == "" {
		if err := w.Rebuild(ctx, count); err != nil {
			return err
		}
		log.Info("meshes built", "vertices", vertices, "triangles", triangles)
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create obj: %w", err)
	}
	defer f.Close()

	obj := export.NewOBJ(f, export.LayerAll)
	both := mesh.SinkFunc(func(m *mesh.ChunkMesh) error {
		if err := count.Apply(m); err != nil {
			return err
		}
		return obj.Apply(m)
	})
	if err := w.Rebuild(ctx, both); err != nil {
		return err
	}
	if err := obj.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close obj: %w", err)
	}
	log.Info("meshes exported", "path", path, "objects", obj.Objects(),
		"vertices", vertices, "triangles", triangles)
	return nil
}
