package voxel

import (
	"sync"
	"testing"
)

func TestDenseOutOfBoundsIsEmpty(t *testing.T) {
	g := NewDense(4, 4, 4)
	g.Set(0, 0, 0, Stone)

	cases := []Cell{
		{X: -1, Y: 0, Z: 0},
		{X: 0, Y: -1, Z: 0},
		{X: 0, Y: 0, Z: 4},
		{X: 1 << 20, Y: 1 << 20, Z: 1 << 20},
	}
	for _, c := range cases {
		id, ok := g.Occupant(c.X, c.Y, c.Z)
		if ok || id != Air {
			t.Errorf("Expected %v to be empty, got (%d, %v)", c, id, ok)
		}
	}

	if g.Set(4, 0, 0, Stone) {
		t.Error("Set should refuse out-of-range cells")
	}
}

func TestDenseSetAndOccupant(t *testing.T) {
	g := NewDense(3, 5, 2)
	if !g.Set(2, 4, 1, Dirt) {
		t.Fatal("Set failed for in-range cell")
	}

	id, ok := g.Occupant(2, 4, 1)
	if !ok || id != Dirt {
		t.Errorf("Expected (Dirt, true), got (%d, %v)", id, ok)
	}

	g.Set(2, 4, 1, Air)
	if _, ok := g.Occupant(2, 4, 1); ok {
		t.Error("Air must not be reported as occupied")
	}
}

func TestDenseFromLayout(t *testing.T) {
	blocks := make([]BlockID, 2*3*4)
	// index = (y*sizeZ+z)*sizeX + x
	blocks[(2*4+3)*2+1] = Sand

	g, err := NewDenseFrom(2, 3, 4, blocks)
	if err != nil {
		t.Fatalf("NewDenseFrom: %v", err)
	}
	if g.Block(1, 2, 3) != Sand {
		t.Errorf("Expected Sand at (1,2,3), got %d", g.Block(1, 2, 3))
	}

	if _, err := NewDenseFrom(2, 3, 4, blocks[:5]); err == nil {
		t.Error("Expected error for mismatched block count")
	}
}

func TestDenseHeightAt(t *testing.T) {
	g := NewDense(4, 8, 4)
	g.Set(1, 0, 1, Stone)
	g.Set(1, 5, 1, Grass)

	if h := g.HeightAt(1, 1); h != 5 {
		t.Errorf("Expected height 5, got %d", h)
	}
	if h := g.HeightAt(0, 0); h != -1 {
		t.Errorf("Expected -1 for empty column, got %d", h)
	}
	if h := g.HeightAt(9, 9); h != -1 {
		t.Errorf("Expected -1 for out-of-range column, got %d", h)
	}
}

func TestDenseEachAndExposed(t *testing.T) {
	g := NewDense(3, 3, 3)
	for y := range 3 {
		for z := range 3 {
			for x := range 3 {
				g.Set(x, y, z, Stone)
			}
		}
	}

	count := 0
	g.Each(func(c Cell, id BlockID) { count++ })
	if count != 27 {
		t.Errorf("Expected 27 occupied cells, got %d", count)
	}

	// The middle cell is enclosed; the grid edge counts as open air.
	if g.Exposed(Cell{X: 1, Y: 1, Z: 1}) {
		t.Error("Enclosed cell reported as exposed")
	}
	if !g.Exposed(Cell{X: 0, Y: 1, Z: 1}) {
		t.Error("Edge cell should be exposed")
	}
}

func TestSharedExcludesWriters(t *testing.T) {
	s := NewShared(NewDense(8, 8, 8))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Update(func(g *Dense) {
				g.Set(i, 0, 0, Stone)
			})
		}()
		go func() {
			defer wg.Done()
			s.View(func(g *Dense) {
				g.Occupant(i, 0, 0)
			})
		}()
	}
	wg.Wait()

	s.View(func(g *Dense) {
		for i := range 8 {
			if g.Block(i, 0, 0) != Stone {
				t.Errorf("Expected Stone at x=%d", i)
			}
		}
	})

	old := s.Swap(NewDense(1, 1, 1))
	if old.Block(0, 0, 0) != Stone {
		t.Error("Swap should return the previous grid")
	}
}
