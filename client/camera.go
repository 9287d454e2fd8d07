package client

import "math"

// Camera owns the local player's position and orientation. All mutation
// goes through Move and Look; the frame loop reads it once per frame when
// building the outgoing snapshot.
type Camera struct {
	X, Y, Z    float64
	Yaw, Pitch float64 // degrees, unbounded unless PitchLimit is set

	MoveSpeed   float64 // world units per second
	Sensitivity float64 // degrees per pixel of drag
	DeadZone    float64 // minimum drag magnitude in pixels
	PitchLimit  float64 // clamp for |Pitch| in degrees; 0 disables
}

func NewCamera(cfg Config) *Camera {
	return &Camera{
		MoveSpeed:   cfg.MoveSpeed,
		Sensitivity: cfg.LookSensitivity,
		DeadZone:    cfg.DeadZone,
		PitchLimit:  cfg.PitchLimit,
	}
}

// Move applies a movement drag for one frame. Drags inside the dead zone
// are ignored; anything at or past it is normalized, so the displacement
// magnitude is MoveSpeed*delta no matter how far the finger travelled.
// Screen-right drag maps to world +X, screen-up to world -Z; Y is never
// touched by movement.
func (c *Camera) Move(dragX, dragY, delta float64) {
	mag := math.Hypot(dragX, dragY)
	if mag < c.DeadZone || mag == 0 {
		return
	}
	c.X += dragX / mag * c.MoveSpeed * delta
	c.Z += dragY / mag * c.MoveSpeed * delta
}

// Look accumulates a look drag into yaw and pitch.
func (c *Camera) Look(dx, dy float64) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	if c.PitchLimit > 0 {
		if c.Pitch > c.PitchLimit {
			c.Pitch = c.PitchLimit
		} else if c.Pitch < -c.PitchLimit {
			c.Pitch = -c.PitchLimit
		}
	}
}

// Direction recomputes the view direction from the accumulated yaw and
// pitch. This is deliberately the simplified spherical mapping the server
// and the other clients expect, not a general orthonormal FPS formula.
func (c *Camera) Direction() (x, y, z float64) {
	yaw := c.Yaw * math.Pi / 180
	pitch := c.Pitch * math.Pi / 180
	return math.Sin(yaw), -math.Sin(pitch), -math.Cos(yaw)
}

// Up is the world up axis.
func (c *Camera) Up() (x, y, z float64) {
	return 0, 1, 0
}
