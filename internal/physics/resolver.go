package physics

import (
	"cmp"
	"slices"
)

// Resolve pushes the actor out of each collision, shallowest first, and
// returns how many collisions were applied. Ties keep discovery order.
//
// Corrections are sequential: each record is re-tested against the actor as
// already moved by earlier ones, and skipped if the earlier corrections
// cleared it. Records are refreshed in place.
func Resolve(cols []Collision, a *Actor) int {
	SortByOverlap(cols)
	return resolveOrdered(cols, a)
}

// SortByOverlap orders collisions ascending by overlap, stable.
func SortByOverlap(cols []Collision) {
	slices.SortStableFunc(cols, func(x, y Collision) int {
		return cmp.Compare(x.Overlap, y.Overlap)
	})
}

func resolveOrdered(cols []Collision, a *Actor) int {
	applied := 0
	for i := range cols {
		col, ok := testCell(cols[i].Cell, a)
		if !ok {
			continue
		}
		cols[i] = col
		apply(col, a)
		applied++
	}
	return applied
}

// apply translates the actor along the normal and removes the velocity
// component along it. Tangential velocity is kept.
func apply(col Collision, a *Actor) {
	a.Position = a.Position.Add(col.Normal.Mul(col.Overlap))
	a.Velocity = a.Velocity.Sub(col.Normal.Mul(a.Velocity.Dot(col.Normal)))
	if col.Normal.Y() > 0 {
		a.Grounded = true
	}
}
