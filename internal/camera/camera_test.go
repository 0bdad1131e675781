package camera

import (
	"math"
	"testing"
)

func TestIntentFollowsYaw(t *testing.T) {
	c := New()
	c.Yaw = 0

	in := c.Intent(Input{Forward: true})
	if math.Abs(in.Move.X()-1) > 1e-6 || math.Abs(in.Move.Y()) > 1e-6 {
		t.Errorf("Expected forward along +X, got %v", in.Move)
	}

	in = c.Intent(Input{Right: true})
	if math.Abs(in.Move.X()) > 1e-6 || math.Abs(in.Move.Y()-1) > 1e-6 {
		t.Errorf("Expected right along +Z, got %v", in.Move)
	}
}

func TestIntentNormalizesDiagonal(t *testing.T) {
	c := New()
	in := c.Intent(Input{Forward: true, Left: true, Jump: true})

	if l := in.Move.Len(); math.Abs(l-1) > 1e-6 {
		t.Errorf("Expected unit move, got length %v", l)
	}
	if !in.Jump {
		t.Error("Expected jump to pass through")
	}

	if in := c.Intent(Input{Forward: true, Back: true}); in.Move.Len() != 0 {
		t.Errorf("Opposing keys should cancel, got %v", in.Move)
	}
}

func TestLookClampsPitch(t *testing.T) {
	c := New()
	c.Look(Input{MouseDY: -10000})
	if c.Pitch != 89 {
		t.Errorf("Expected pitch 89, got %v", c.Pitch)
	}
	c.Look(Input{MouseDY: 10000})
	if c.Pitch != -89 {
		t.Errorf("Expected pitch -89, got %v", c.Pitch)
	}

	if l := c.LookDirection().Len(); math.Abs(l-1) > 1e-5 {
		t.Errorf("Expected unit look direction, got %v", l)
	}
}
