package voxel

import "fmt"

// Cell is an integer voxel coordinate. A cell is the unit cube centered on
// its coordinate: [X-0.5, X+0.5] x [Y-0.5, Y+0.5] x [Z-0.5, Z+0.5].
type Cell struct {
	X, Y, Z int
}

func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Grid is the occupancy lookup consumed by the physics core. Occupant
// reports the block at a cell and whether it is a collision candidate.
// Out-of-range coordinates must report (Air, false), never panic.
type Grid interface {
	Occupant(x, y, z int) (BlockID, bool)
}

// Dense is a bounded grid spanning cells [0, size) on each axis.
type Dense struct {
	sizeX, sizeY, sizeZ int
	blocks              []BlockID
}

func NewDense(sizeX, sizeY, sizeZ int) *Dense {
	if sizeX < 0 || sizeY < 0 || sizeZ < 0 {
		sizeX, sizeY, sizeZ = 0, 0, 0
	}
	return &Dense{
		sizeX:  sizeX,
		sizeY:  sizeY,
		sizeZ:  sizeZ,
		blocks: make([]BlockID, sizeX*sizeY*sizeZ),
	}
}

// NewDenseFrom wraps an existing block slice laid out x-major, then z, then y
// (index = (y*sizeZ+z)*sizeX + x).
func NewDenseFrom(sizeX, sizeY, sizeZ int, blocks []BlockID) (*Dense, error) {
	if sizeX < 0 || sizeY < 0 || sizeZ < 0 {
		return nil, fmt.Errorf("invalid grid size %dx%dx%d", sizeX, sizeY, sizeZ)
	}
	if len(blocks) != sizeX*sizeY*sizeZ {
		return nil, fmt.Errorf("grid %dx%dx%d needs %d blocks, got %d", sizeX, sizeY, sizeZ, sizeX*sizeY*sizeZ, len(blocks))
	}
	return &Dense{sizeX: sizeX, sizeY: sizeY, sizeZ: sizeZ, blocks: blocks}, nil
}

func (d *Dense) Size() (x, y, z int) {
	return d.sizeX, d.sizeY, d.sizeZ
}

func (d *Dense) InBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < d.sizeX && y < d.sizeY && z < d.sizeZ
}

func (d *Dense) index(x, y, z int) int {
	return (y*d.sizeZ+z)*d.sizeX + x
}

// Block returns the block at a cell, Air when out of range.
func (d *Dense) Block(x, y, z int) BlockID {
	if !d.InBounds(x, y, z) {
		return Air
	}
	return d.blocks[d.index(x, y, z)]
}

// Occupant implements Grid.
func (d *Dense) Occupant(x, y, z int) (BlockID, bool) {
	id := d.Block(x, y, z)
	return id, id != Air
}

// Set stores a block and reports whether the cell was in range.
func (d *Dense) Set(x, y, z int, id BlockID) bool {
	if !d.InBounds(x, y, z) {
		return false
	}
	d.blocks[d.index(x, y, z)] = id
	return true
}

// Clear resets every cell to Air.
func (d *Dense) Clear() {
	clear(d.blocks)
}

// Blocks exposes the backing slice in the NewDenseFrom layout.
func (d *Dense) Blocks() []BlockID {
	return d.blocks
}

// HeightAt returns the y of the highest occupied cell in a column, or -1 for
// an empty or out-of-range column.
func (d *Dense) HeightAt(x, z int) int {
	if !d.InBounds(x, 0, z) {
		return -1
	}
	for y := d.sizeY - 1; y >= 0; y-- {
		if d.blocks[d.index(x, y, z)] != Air {
			return y
		}
	}
	return -1
}

// Each calls fn for every occupied cell.
func (d *Dense) Each(fn func(c Cell, id BlockID)) {
	for y := 0; y < d.sizeY; y++ {
		for z := 0; z < d.sizeZ; z++ {
			row := d.index(0, y, z)
			for x := 0; x < d.sizeX; x++ {
				if id := d.blocks[row+x]; id != Air {
					fn(Cell{X: x, Y: y, Z: z}, id)
				}
			}
		}
	}
}

// Exposed reports whether any face of the cell borders a non-occupied cell.
// Fully enclosed cells are skipped by the renderer.
func (d *Dense) Exposed(c Cell) bool {
	for _, n := range faceNeighbors {
		p := c.Add(n)
		if d.Block(p.X, p.Y, p.Z) == Air {
			return true
		}
	}
	return false
}

var faceNeighbors = [6]Cell{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}
