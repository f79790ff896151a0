package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/chunkscape/pkg/math"
)

// Volume is the region a directional light has to cover: a box centred on
// Focus extending Radius horizontally and between MinY and MaxY vertically.
type Volume struct {
	Focus  math.Vec3
	Radius float32
	MinY   float32
	MaxY   float32
}

// FollowVolume returns the volume around the camera that covers the
// streamed working set: viewDistance chunks on each side of the camera's
// chunk plus the chunk itself.
func FollowVolume(cameraPos math.Vec3, chunkSize, viewDistance int, maxHeight float32) Volume {
	half := float32(chunkSize) * (float32(viewDistance) + 0.5)
	return Volume{
		Focus:  math.Vec3{X: cameraPos.X, Y: 0, Z: cameraPos.Z},
		Radius: half * math32.Sqrt(2),
		MinY:   -maxHeight,
		MaxY:   maxHeight,
	}
}

// DirectionalLightMatrix computes the orthographic view-projection used to
// render a depth target from a directional light. lightDir points towards
// the light.
func DirectionalLightMatrix(lightDir math.Vec3, vol Volume) math.Mat4 {
	dir := lightDir.Normalize()
	if dir.LengthSq() == 0 {
		dir = math.Up
	}

	height := vol.MaxY - vol.MinY
	center := math.Vec3{X: vol.Focus.X, Y: (vol.MinY + vol.MaxY) / 2, Z: vol.Focus.Z}

	// Far enough that the whole volume sits in front of the light.
	lightDistance := vol.Radius + height
	eye := center.Add(dir.Scale(lightDistance))

	up := math.Up
	if math32.Abs(dir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(eye, center, up)

	padding := vol.Radius * 0.1
	halfSize := vol.Radius + padding
	far := lightDistance + vol.Radius + height + padding

	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, far)
	return proj.Mul(view)
}
