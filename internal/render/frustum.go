package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum holds the six clip planes (left, right, bottom, top, near, far).
type Frustum struct {
	planes [6]plane
}

// plane is ax + by + cz + d = 0 with a unit normal.
type plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum derives clip planes from the camera's view-projection
// matrix (Gribb/Hartmann).
func ExtractFrustum(camera rl.Camera3D, near, far float32) Frustum {
	view := rl.GetCameraMatrix(camera)
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	proj := rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, near, far)
	vp := rl.MatrixMultiply(view, proj)

	// Columns of the combined matrix as seen by a row-vector transform.
	row := [4][4]float32{
		{vp.M0, vp.M4, vp.M8, vp.M12},
		{vp.M1, vp.M5, vp.M9, vp.M13},
		{vp.M2, vp.M6, vp.M10, vp.M14},
		{vp.M3, vp.M7, vp.M11, vp.M15},
	}

	var f Frustum
	for i := range 3 {
		f.planes[2*i] = newPlane(row[3], row[i], 1)
		f.planes[2*i+1] = newPlane(row[3], row[i], -1)
	}
	return f
}

func newPlane(w, r [4]float32, s float32) plane {
	p := plane{
		normal:   rl.Vector3{X: w[0] + s*r[0], Y: w[1] + s*r[1], Z: w[2] + s*r[2]},
		distance: w[3] + s*r[3],
	}
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	p.normal = rl.Vector3Scale(p.normal, 1.0/length)
	p.distance /= length
	return p
}

// ContainsSphere reports whether a sphere is inside or intersects the frustum.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.planes {
		if rl.Vector3DotProduct(f.planes[i].normal, center)+f.planes[i].distance < -radius {
			return false
		}
	}
	return true
}

// cellRadius bounds a unit cube.
const cellRadius = 0.8660254

func (f *Frustum) ContainsCell(x, y, z int) bool {
	return f.ContainsSphere(rl.Vector3{X: float32(x), Y: float32(y), Z: float32(z)}, cellRadius)
}
