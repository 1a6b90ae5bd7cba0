package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/OCharnyshevich/terracegen/internal/config"
	"github.com/OCharnyshevich/terracegen/internal/grid"
	"github.com/OCharnyshevich/terracegen/internal/mapfile"
)

// MapExt is the file extension of saved maps.
const MapExt = ".map"

// Storage handles file-based persistence for config and map files.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	dirs := []string{
		dir,
		filepath.Join(dir, "maps"),
		filepath.Join(dir, "presets"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, log: log}, nil
}

// Dir returns the storage root.
func (s *Storage) Dir() string { return s.dir }

// PresetDir is where downloaded preset configs are kept.
func (s *Storage) PresetDir() string { return filepath.Join(s.dir, "presets") }

// LoadConfig reads config.json into cfg. If the file does not exist, cfg is unchanged.
func (s *Storage) LoadConfig(cfg *config.Config) error {
	return s.loadConfigFile(filepath.Join(s.dir, "config.json"), cfg)
}

// LoadPreset reads presets/<name>.json into cfg.
func (s *Storage) LoadPreset(name string, cfg *config.Config) error {
	path := filepath.Join(s.PresetDir(), name+".json")
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("preset %s: %w", name, err)
	}
	return s.loadConfigFile(path, cfg)
}

func (s *Storage) loadConfigFile(path string, cfg *config.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	s.log.Info("loaded config from file", "path", path)
	return nil
}

// SaveConfig writes cfg to config.json atomically.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.json")
	return s.atomicWriteJSON(path, cfg)
}

// SaveMap writes g to maps/<name>.map atomically and returns the path.
func (s *Storage) SaveMap(name string, g *grid.Grid, seed int64) (string, error) {
	path, err := s.WriteMap(name, func(w io.Writer) error {
		return mapfile.Write(w, g, seed)
	})
	if err != nil {
		return "", err
	}
	s.log.Info("saved map", "path", path, "seed", seed)
	return path, nil
}

// WriteMap atomically replaces maps/<name>.map with whatever write emits,
// which must be a map file.
func (s *Storage) WriteMap(name string, write func(w io.Writer) error) (string, error) {
	path, err := s.mapPath(name)
	if err != nil {
		return "", err
	}
	err = s.atomicWrite(path, func(f *os.File) error {
		return write(f)
	})
	if err != nil {
		return "", fmt.Errorf("save map %s: %w", name, err)
	}
	return path, nil
}

// LoadMap reads maps/<name>.map. Elevations are checked against r.
func (s *Storage) LoadMap(name string, r mapfile.Range) (*grid.Grid, mapfile.Header, error) {
	path, err := s.mapPath(name)
	if err != nil {
		return nil, mapfile.Header{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, mapfile.Header{}, fmt.Errorf("open map %s: %w", name, err)
	}
	defer f.Close()

	g, h, err := mapfile.Read(f, r)
	if err != nil {
		return nil, mapfile.Header{}, fmt.Errorf("load map %s: %w", name, err)
	}
	s.log.Info("loaded map", "path", path, "width", h.Width, "height", h.Height)
	return g, h, nil
}

// Maps lists the names of saved maps, sorted.
func (s *Storage) Maps() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "maps"))
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != MapExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), MapExt))
	}
	return names, nil
}

func (s *Storage) mapPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid map name %q", name)
	}
	return filepath.Join(s.dir, "maps", name+MapExt), nil
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	return s.atomicWrite(path, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
}

func (s *Storage) atomicWrite(path string, write func(f *os.File) error) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
