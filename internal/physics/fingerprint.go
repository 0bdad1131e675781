package physics

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Fingerprint hashes the exact bit patterns of position, velocity and the
// grounded flag. Equal fingerprints mean bit-identical state.
func (a *Actor) Fingerprint() uint64 {
	var buf [6*8 + 1]byte
	vals := [6]float64{
		a.Position[0], a.Position[1], a.Position[2],
		a.Velocity[0], a.Velocity[1], a.Velocity[2],
	}
	for j, v := range vals {
		binary.LittleEndian.PutUint64(buf[j*8:], math.Float64bits(v))
	}
	if a.Grounded {
		buf[48] = 1
	}
	return xxh3.Hash(buf[:])
}
