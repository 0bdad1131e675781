// Package worldfile stores dense voxel grids as zstd-compressed binary files.
//
// Layout inside the zstd stream, little endian:
//
//	magic   [4]byte "VXWL"
//	version uint16
//	sizeX, sizeY, sizeZ uint32
//	blocks  [sizeX*sizeY*sizeZ]uint16 in voxel.Dense order
package worldfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"voxelwalk/internal/voxel"

	"github.com/klauspost/compress/zstd"
)

const (
	Version = 1

	// MaxCells bounds the grid a file may declare.
	MaxCells = 1 << 26
)

var magic = [4]byte{'V', 'X', 'W', 'L'}

var (
	ErrBadMagic   = errors.New("worldfile: not a voxel world file")
	ErrBadVersion = errors.New("worldfile: unsupported version")
	ErrTooLarge   = errors.New("worldfile: grid too large")
)

type header struct {
	Magic   [4]byte
	Version uint16
	SizeX   uint32
	SizeY   uint32
	SizeZ   uint32
}

// Save writes g to w.
func Save(w io.Writer, g *voxel.Dense) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create encoder: %w", err)
	}

	sx, sy, sz := g.Size()
	h := header{Magic: magic, Version: Version, SizeX: uint32(sx), SizeY: uint32(sy), SizeZ: uint32(sz)}

	bw := bufio.NewWriter(enc)
	if err := binary.Write(bw, binary.LittleEndian, h); err != nil {
		enc.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, g.Blocks()); err != nil {
		enc.Close()
		return fmt.Errorf("write blocks: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("flush: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close encoder: %w", err)
	}
	return nil
}

// Load reads a grid written by Save.
func Load(r io.Reader) (*voxel.Dense, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	var h header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if h.Magic != magic {
		return nil, ErrBadMagic
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}

	cells := uint64(h.SizeX) * uint64(h.SizeY) * uint64(h.SizeZ)
	if cells > MaxCells {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrTooLarge, h.SizeX, h.SizeY, h.SizeZ)
	}

	blocks := make([]voxel.BlockID, cells)
	if err := binary.Read(br, binary.LittleEndian, blocks); err != nil {
		return nil, fmt.Errorf("read blocks: %w", err)
	}
	return voxel.NewDenseFrom(int(h.SizeX), int(h.SizeY), int(h.SizeZ), blocks)
}

func SaveFile(path string, g *voxel.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create world file: %w", err)
	}
	if err := Save(f, g); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close world file: %w", err)
	}
	return nil
}

func LoadFile(path string) (*voxel.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open world file: %w", err)
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return g, nil
}
