package render

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/stationview/stationview/internal/game"
)

// Default perspective parameters.
const (
	DefaultFovY = 75 // degrees, vertical
	DefaultNear = 0.1
	DefaultFar  = 1000
)

var worldUp = r3.Vector{Y: 1}

// Camera is a perspective camera over a viewport of Width×Height pixels.
type Camera struct {
	Pose   game.CameraPose
	FovY   float64 // degrees
	Near   float64
	Far    float64
	Width  float64
	Height float64

	// view basis, rebuilt by update
	right, up, forward r3.Vector
}

// NewCamera creates a camera for a viewport with the default lens.
func NewCamera(pose game.CameraPose, width, height float64) *Camera {
	c := &Camera{FovY: DefaultFovY, Near: DefaultNear, Far: DefaultFar, Width: width, Height: height}
	c.SetPose(pose)
	return c
}

// SetPose moves the camera and rebuilds its view basis.
func (c *Camera) SetPose(pose game.CameraPose) {
	c.Pose = pose
	c.forward = pose.Target.Sub(pose.Position).Normalize()
	if c.forward.Norm() == 0 {
		c.forward = r3.Vector{Z: -1}
	}
	c.right = c.forward.Cross(worldUp)
	if c.right.Norm() < 1e-9 {
		// looking straight up or down
		c.right = r3.Vector{X: 1}
	}
	c.right = c.right.Normalize()
	c.up = c.right.Cross(c.forward)
}

// Depth returns the distance of p along the view direction.
func (c *Camera) Depth(p r3.Vector) float64 {
	return p.Sub(c.Pose.Position).Dot(c.forward)
}

// Project maps a world point to viewport pixels. ok is false for points
// outside the near/far range.
func (c *Camera) Project(p r3.Vector) (x, y float64, ok bool) {
	d := p.Sub(c.Pose.Position)
	z := d.Dot(c.forward)
	if z < c.Near || z > c.Far {
		return 0, 0, false
	}
	aspect := c.Width / c.Height
	tanHalf := math.Tan(c.FovY * math.Pi / 360)
	ndcX := d.Dot(c.right) / (z * tanHalf * aspect)
	ndcY := d.Dot(c.up) / (z * tanHalf)
	return (ndcX + 1) / 2 * c.Width, (1 - ndcY) / 2 * c.Height, true
}

// Facing reports whether a surface at p with outward normal n faces the
// camera.
func (c *Camera) Facing(p, n r3.Vector) bool {
	return c.Pose.Position.Sub(p).Dot(n) > 0
}
