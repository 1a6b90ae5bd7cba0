package mapfile

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/OCharnyshevich/terracegen/internal/grid"
)

// Magic opens every map file.
var Magic = [4]byte{'T', 'G', 'M', 'P'}

// Version is the current container version.
const Version = 1

// Header describes the grid stored in a map file.
type Header struct {
	Magic      [4]byte
	Version    uint16
	Width      uint16
	Height     uint16
	ChunkSizeX uint16
	ChunkSizeZ uint16
	Seed       int64
}

// Write stores g and the seed that produced it: a big-endian header
// followed by the gzip-compressed cell records.
func Write(w io.Writer, g *grid.Grid, seed int64) error {
	if g.Width() > 0xFFFF || g.Height() > 0xFFFF {
		return fmt.Errorf("%w: map size %dx%d", ErrOutOfRange, g.Width(), g.Height())
	}
	cells, err := Encode(g)
	if err != nil {
		return err
	}
	cx, cz := g.ChunkSize()
	h := Header{
		Magic:      Magic,
		Version:    Version,
		Width:      uint16(g.Width()),
		Height:     uint16(g.Height()),
		ChunkSizeX: uint16(cx),
		ChunkSizeZ: uint16(cz),
		Seed:       seed,
	}
	if err := binary.Write(w, binary.BigEndian, h); err != nil {
		return fmt.Errorf("mapfile: write header: %w", err)
	}

	zw := gzip.NewWriter(w)
	if _, err := zw.Write(cells); err != nil {
		zw.Close()
		return fmt.Errorf("mapfile: write cells: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("mapfile: write cells: %w", err)
	}
	return nil
}

// Read loads a map written by Write, checking elevations against r.
func Read(rd io.Reader, r Range) (*grid.Grid, Header, error) {
	var h Header
	if err := binary.Read(rd, binary.BigEndian, &h); err != nil {
		return nil, h, fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}
	if h.Magic != Magic {
		return nil, h, fmt.Errorf("%w: bad magic %q", ErrMalformed, h.Magic[:])
	}
	if h.Version != Version {
		return nil, h, fmt.Errorf("%w: unsupported version %d", ErrMalformed, h.Version)
	}

	g, err := grid.New(int(h.Width), int(h.Height), int(h.ChunkSizeX), int(h.ChunkSizeZ))
	if err != nil {
		return nil, h, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	zr, err := gzip.NewReader(rd)
	if err != nil {
		return nil, h, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer zr.Close()

	want := g.CellCount() * RecordSize
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, zr, int64(want)); err != nil && err != io.EOF {
		return nil, h, fmt.Errorf("%w: cells: %v", ErrMalformed, err)
	}
	if err := Decode(g, buf.Bytes(), r); err != nil {
		return nil, h, err
	}
	return g, h, nil
}
