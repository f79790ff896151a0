// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/chunkscape/pkg/math"
)

// FreeCamera is a first-person fly camera. Yaw 0 looks down -Z; positive
// pitch looks up.
type FreeCamera struct {
	Position math.Vec3
	Yaw      float32 // Radians
	Pitch    float32 // Radians

	// Projection
	FOV  float32 // Vertical field of view in degrees
	Near float32
	Far  float32

	// Movement
	MoveSpeed        float32 // World units per second
	BoostMultiplier  float32
	MouseSensitivity float32 // Radians per pixel

	MaxPitch float32
}

// NewFreeCamera creates a camera at pos with default settings.
func NewFreeCamera(pos math.Vec3) *FreeCamera {
	return &FreeCamera{
		Position:         pos,
		FOV:              45,
		Near:             0.1,
		Far:              3000,
		MoveSpeed:        60,
		BoostMultiplier:  5,
		MouseSensitivity: 0.003,
		MaxPitch:         1.55,
	}
}

// Forward returns the unit view direction.
func (c *FreeCamera) Forward() math.Vec3 {
	sinYaw, cosYaw := math32.Sincos(c.Yaw)
	sinPitch, cosPitch := math32.Sincos(c.Pitch)
	return math.Vec3{
		X: sinYaw * cosPitch,
		Y: sinPitch,
		Z: -cosYaw * cosPitch,
	}
}

// Right returns the unit right direction on the XZ plane.
func (c *FreeCamera) Right() math.Vec3 {
	sinYaw, cosYaw := math32.Sincos(c.Yaw)
	return math.Vec3{X: cosYaw, Z: sinYaw}
}

// HandleMouse turns the camera by a relative mouse motion in pixels.
func (c *FreeCamera) HandleMouse(dx, dy float32) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch -= dy * c.MouseSensitivity

	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}
}

// Move translates the camera. forward, right and up are axis inputs in
// [-1, 1]; forward follows the view direction including pitch.
func (c *FreeCamera) Move(forward, right, up, dt float32, boost bool) {
	speed := c.MoveSpeed * dt
	if boost {
		speed *= c.BoostMultiplier
	}

	delta := c.Forward().Scale(forward).
		Add(c.Right().Scale(right)).
		Add(math.Up.Scale(up))
	if delta.LengthSq() == 0 {
		return
	}

	c.Position = c.Position.Add(delta.Normalize().Scale(speed))
}

// ViewMatrix returns the view matrix.
func (c *FreeCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), math.Up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *FreeCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

// ViewProj returns projection * view.
func (c *FreeCamera) ViewProj(aspect float32) math.Mat4 {
	proj := c.ProjectionMatrix(aspect)
	return proj.Mul(c.ViewMatrix())
}
