package voxel

import (
	"fmt"
	"image/color"

	"github.com/elliotchance/orderedmap/v2"
)

// BlockID identifies a block type. Air is the reserved empty sentinel and is
// never a collision candidate.
type BlockID uint16

const Air BlockID = 0

// Block ids registered by DefaultRegistry, in registration order.
const (
	Stone BlockID = iota + 1
	Dirt
	Grass
	Sand
	Planks
)

type BlockType struct {
	ID    BlockID
	Name  string
	Color color.RGBA
}

// Registry maps block ids to their types. Id lookups index a table built at
// startup; name lookups go through an ordered map so listings keep
// registration order.
type Registry struct {
	types  []BlockType
	byName *orderedmap.OrderedMap[string, BlockID]
}

// NewRegistry returns a registry holding only Air.
func NewRegistry() *Registry {
	r := &Registry{byName: orderedmap.NewOrderedMap[string, BlockID]()}
	r.types = append(r.types, BlockType{ID: Air, Name: "air"})
	r.byName.Set("air", Air)
	return r
}

// DefaultRegistry returns the block set used by the world generators.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.mustRegister("stone", color.RGBA{R: 125, G: 125, B: 130, A: 255})
	r.mustRegister("dirt", color.RGBA{R: 134, G: 96, B: 67, A: 255})
	r.mustRegister("grass", color.RGBA{R: 96, G: 160, B: 72, A: 255})
	r.mustRegister("sand", color.RGBA{R: 219, G: 207, B: 163, A: 255})
	r.mustRegister("planks", color.RGBA{R: 162, G: 130, B: 78, A: 255})
	return r
}

// Register adds a block type and returns its id. Ids are assigned densely in
// registration order.
func (r *Registry) Register(name string, c color.RGBA) (BlockID, error) {
	if _, ok := r.byName.Get(name); ok {
		return Air, fmt.Errorf("block %q already registered", name)
	}
	if len(r.types) > int(^BlockID(0)) {
		return Air, fmt.Errorf("block registry full, cannot register %q", name)
	}
	id := BlockID(len(r.types))
	r.types = append(r.types, BlockType{ID: id, Name: name, Color: c})
	r.byName.Set(name, id)
	return id, nil
}

func (r *Registry) mustRegister(name string, c color.RGBA) BlockID {
	id, err := r.Register(name, c)
	if err != nil {
		panic(err)
	}
	return id
}

// Type returns the block type for id.
func (r *Registry) Type(id BlockID) (BlockType, bool) {
	if int(id) >= len(r.types) {
		return BlockType{}, false
	}
	return r.types[id], true
}

// Lookup returns the id registered under name.
func (r *Registry) Lookup(name string) (BlockID, bool) {
	return r.byName.Get(name)
}

// Names lists registered block names in registration order, air included.
func (r *Registry) Names() []string {
	return r.byName.Keys()
}

func (r *Registry) Len() int {
	return len(r.types)
}
