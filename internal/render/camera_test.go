package render

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stationview/stationview/internal/game"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestProjectTargetIsCentered(t *testing.T) {
	for _, pose := range []game.CameraPose{
		game.DefaultCameraPose,
		{Position: r3.Vector{X: -20, Y: 5, Z: 30}, Target: r3.Vector{X: -20}},
		{Position: r3.Vector{X: -18, Y: 5, Z: 15}, Target: r3.Vector{X: -18, Y: 1, Z: 5}},
	} {
		c := NewCamera(pose, 896, 720)
		x, y, ok := c.Project(pose.Target)
		if !ok || !near(x, 448) || !near(y, 360) {
			t.Errorf("%+v: target projects to (%v, %v, %v)", pose, x, y, ok)
		}
	}
}

func TestProjectOrientation(t *testing.T) {
	c := NewCamera(game.DefaultCameraPose, 800, 600)

	x, _, ok := c.Project(r3.Vector{X: 5})
	if !ok || x <= 400 {
		t.Errorf("+X point at x=%v, expected right of center", x)
	}
	_, y, ok := c.Project(r3.Vector{Y: 5})
	if !ok || y >= 300 {
		t.Errorf("+Y point at y=%v, expected above center", y)
	}

	// Farther points sit closer to the center.
	xNear, _, _ := c.Project(r3.Vector{X: 5, Z: 10})
	xFar, _, _ := c.Project(r3.Vector{X: 5, Z: -50})
	if !(xNear-400 > xFar-400) {
		t.Errorf("perspective: near x=%v, far x=%v", xNear, xFar)
	}
}

func TestProjectRejectsBehind(t *testing.T) {
	c := NewCamera(game.DefaultCameraPose, 800, 600)
	if _, _, ok := c.Project(r3.Vector{Z: 40}); ok {
		t.Errorf("point behind the camera projected")
	}
	if _, _, ok := c.Project(r3.Vector{Y: 5, Z: 29.95}); ok {
		t.Errorf("point inside the near plane projected")
	}
	if _, _, ok := c.Project(r3.Vector{Z: -2000}); ok {
		t.Errorf("point past the far plane projected")
	}
}

func TestFacing(t *testing.T) {
	c := NewCamera(game.DefaultCameraPose, 800, 600)
	if !c.Facing(r3.Vector{}, r3.Vector{Z: 1}) {
		t.Errorf("front face culled")
	}
	if c.Facing(r3.Vector{}, r3.Vector{Z: -1}) {
		t.Errorf("back face kept")
	}
	if !c.Facing(r3.Vector{}, r3.Vector{Y: 1}) {
		t.Errorf("top face culled from above")
	}
}

func TestDegeneratePose(t *testing.T) {
	c := NewCamera(game.CameraPose{Position: r3.Vector{Y: 10}, Target: r3.Vector{}}, 100, 100)
	x, y, ok := c.Project(r3.Vector{})
	if !ok || !near(x, 50) || !near(y, 50) {
		t.Errorf("straight-down camera: (%v, %v, %v)", x, y, ok)
	}
}
