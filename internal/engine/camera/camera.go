// Package camera provides the free-fly camera driven by input snapshots.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heliscene/internal/engine/input"
)

// maxPitch keeps the camera just short of looking straight up or down.
const maxPitch = gomath.Pi/2 - 0.01

// FreeFly moves freely through the scene.
// Movement and rotation integrate elapsed time, so the result does not
// depend on the frame rate.
type FreeFly struct {
	Position mgl32.Vec3
	Yaw      float32 // radians around world Y, 0 looks down -Z
	Pitch    float32 // radians around camera X, positive looks up

	MoveSpeed        float32 // units per second
	TurnSpeed        float32 // radians per second
	MouseSensitivity float32 // radians per pixel

	FovY float32 // radians
	Near float32
	Far  float32
}

// NewFreeFly creates a camera with default settings at the origin.
func NewFreeFly() *FreeFly {
	return &FreeFly{
		MoveSpeed:        100.0,
		TurnSpeed:        1.0,
		MouseSensitivity: 0.005,
		FovY:             0.5,
		Near:             1.0,
		Far:              1000.0,
	}
}

// Forward returns the horizontal direction the camera faces.
func (c *FreeFly) Forward() mgl32.Vec3 {
	s, co := sincos(c.Yaw)
	return mgl32.Vec3{-s, 0, -co}
}

// Right returns the horizontal direction to the camera's right.
func (c *FreeFly) Right() mgl32.Vec3 {
	s, co := sincos(c.Yaw)
	return mgl32.Vec3{co, 0, -s}
}

// Update integrates one frame of input over dt seconds.
func (c *FreeFly) Update(s input.Snapshot, dt float32) {
	step := dt * c.MoveSpeed
	turn := dt * c.TurnSpeed

	var move mgl32.Vec3
	if s.Pressed(input.KeyW) {
		move = move.Add(c.Forward().Mul(step))
	}
	if s.Pressed(input.KeyS) {
		move = move.Sub(c.Forward().Mul(step))
	}
	if s.Pressed(input.KeyD) {
		move = move.Add(c.Right().Mul(step))
	}
	if s.Pressed(input.KeyA) {
		move = move.Sub(c.Right().Mul(step))
	}
	if s.Pressed(input.KeyE) {
		move[1] += step
	}
	if s.Pressed(input.KeyQ) {
		move[1] -= step
	}
	c.Position = c.Position.Add(move)

	if s.Pressed(input.KeyLeft) {
		c.Yaw += turn
	}
	if s.Pressed(input.KeyRight) {
		c.Yaw -= turn
	}
	if s.Pressed(input.KeyUp) {
		c.Pitch += turn
	}
	if s.Pressed(input.KeyDown) {
		c.Pitch -= turn
	}

	c.Yaw -= s.MouseDX * c.MouseSensitivity
	c.Pitch -= s.MouseDY * c.MouseSensitivity

	// Clamp pitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// ViewMatrix returns the world-to-camera transform.
func (c *FreeFly) ViewMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(-c.Pitch).
		Mul4(mgl32.HomogRotate3DY(-c.Yaw)).
		Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
}

// ProjectionMatrix returns the perspective projection for the given
// width/height aspect ratio.
func (c *FreeFly) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *FreeFly) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}

func sincos(a float32) (float32, float32) {
	s, c := gomath.Sincos(float64(a))
	return float32(s), float32(c)
}
