package game

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stationview/stationview/internal/world"
)

// recorder captures everything the controller emits.
type recorder struct {
	renders    []RenderInstruction
	buttons    []ButtonState
	directions []string
}

func (r *recorder) ApplyRender(ri RenderInstruction) { r.renders = append(r.renders, ri) }
func (r *recorder) ApplyButtons(b ButtonState)       { r.buttons = append(r.buttons, b) }
func (r *recorder) ApplyDirections(s string)         { r.directions = append(r.directions, s) }

func newTestController(t *testing.T) (*Controller, *Registry, *recorder) {
	t.Helper()
	reg := NewRegistry(loadStation(t))
	c := NewController(reg, nil)
	rec := &recorder{}
	c.AddRenderSink(rec)
	c.AddUISink(rec)
	return c, reg, rec
}

func checkVisibility(t *testing.T, reg *Registry, c *Controller, platform int) {
	t.Helper()
	st := c.State()
	for _, f := range reg.Facilities() {
		want := f.Platform == platform
		if f.Visible != want {
			t.Errorf("platform %d: facility %d (%s, platform %d) visible = %v", platform, f.ID, f.Name(), f.Platform, f.Visible)
		}
		if st.Visible[f.ID] != want {
			t.Errorf("platform %d: state visibility for facility %d = %v", platform, f.ID, st.Visible[f.ID])
		}
	}
}

func TestInitialState(t *testing.T) {
	c, _, rec := newTestController(t)

	st := c.State()
	if st.Selected != NoPlatform || st.Camera != DefaultCameraPose || st.Directions != DefaultDirections {
		t.Errorf("initial state %+v", st)
	}
	if st.Buttons != (ButtonState{}) {
		t.Errorf("initial buttons %v", st.Buttons)
	}
	if len(rec.renders) != 0 {
		t.Errorf("controller emitted before any call")
	}

	c.Refresh()
	if len(rec.renders) != 1 || len(rec.buttons) != 1 || len(rec.directions) != 1 {
		t.Fatalf("Refresh emitted %d/%d/%d", len(rec.renders), len(rec.buttons), len(rec.directions))
	}
	if rec.directions[0] != DefaultDirections {
		t.Errorf("Refresh directions %q", rec.directions[0])
	}
}

func TestSelectPlatformVisibility(t *testing.T) {
	for p := 1; p <= 5; p++ {
		c, reg, rec := newTestController(t)
		c.SelectPlatform(p)
		checkVisibility(t, reg, c, p)

		if c.Selected() != p {
			t.Errorf("Selected() = %d, expected %d", c.Selected(), p)
		}
		if len(rec.renders) != 1 {
			t.Fatalf("platform %d: %d render instructions", p, len(rec.renders))
		}
		x := float64(-20 + 10*(p-1))
		want := CameraPose{Position: r3.Vector{X: x, Y: 5, Z: 30}, Target: r3.Vector{X: x}}
		if rec.renders[0].Camera != want {
			t.Errorf("platform %d: camera %+v, expected %+v", p, rec.renders[0].Camera, want)
		}
		for id, v := range rec.renders[0].Visible {
			if f := reg.Facilities()[id]; v != (f.Platform == p) {
				t.Errorf("platform %d: render visibility for %d = %v", p, id, v)
			}
		}
		if len(rec.renders[0].Visible) != reg.FacilityCount() {
			t.Errorf("render visibility covers %d facilities", len(rec.renders[0].Visible))
		}
	}
}

func TestSelectPlatformReselection(t *testing.T) {
	for i := 1; i <= 5; i++ {
		for j := 1; j <= 5; j++ {
			single, _, _ := newTestController(t)
			single.SelectPlatform(i)

			c, _, _ := newTestController(t)
			c.SelectPlatform(i)
			c.SelectPlatform(j)
			c.SelectPlatform(i)

			a, b := single.State(), c.State()
			if a.Camera != b.Camera || a.Buttons != b.Buttons || a.Selected != b.Selected {
				t.Errorf("%d,%d,%d: state %+v, expected %+v", i, j, i, b, a)
			}
			for id := range a.Visible {
				if a.Visible[id] != b.Visible[id] {
					t.Errorf("%d,%d,%d: facility %d visible %v, expected %v", i, j, i, id, b.Visible[id], a.Visible[id])
				}
			}
		}
	}
}

func TestSelectPlatformUnknown(t *testing.T) {
	for _, p := range []int{6, 0, -3, 100} {
		c, reg, rec := newTestController(t)
		c.SelectPlatform(1)
		c.SelectPlatform(p)

		for _, f := range reg.Facilities() {
			if f.Visible {
				t.Errorf("SelectPlatform(%d): facility %d still visible", p, f.ID)
			}
		}
		last := rec.renders[len(rec.renders)-1]
		if last.Camera != DefaultCameraPose {
			t.Errorf("SelectPlatform(%d): camera %+v", p, last.Camera)
		}
		if last.Camera.Position != (r3.Vector{X: 0, Y: 5, Z: 30}) || last.Camera.Target != (r3.Vector{}) {
			t.Errorf("default pose is %+v", last.Camera)
		}
		if c.Selected() != NoPlatform {
			t.Errorf("SelectPlatform(%d): Selected() = %d", p, c.Selected())
		}
		if b := rec.buttons[len(rec.buttons)-1]; b != (ButtonState{}) {
			t.Errorf("SelectPlatform(%d): buttons %v", p, b)
		}
		if len(rec.renders) != 2 {
			t.Errorf("SelectPlatform(%d) did not render", p)
		}
	}
}

func TestButtonsFor(t *testing.T) {
	kinds := world.AllFacilityKinds()
	for _, tc := range []struct {
		platform int
		hidden   []world.FacilityKind
	}{
		{1, []world.FacilityKind{world.FacilityExit}},
		{5, []world.FacilityKind{world.FacilityEntrance}},
		{4, []world.FacilityKind{world.FacilityCloakroom, world.FacilityWaitingHall, world.FacilityFoodCourt,
			world.FacilityEntrance, world.FacilityExit}},
		{2, []world.FacilityKind{world.FacilityCloakroom, world.FacilityWaitingHall, world.FacilityFoodCourt,
			world.FacilityEntrance, world.FacilityExit}},
		{NoPlatform, kinds},
		{6, kinds},
	} {
		b := ButtonsFor(tc.platform)
		hidden := make(map[world.FacilityKind]bool)
		for _, k := range tc.hidden {
			hidden[k] = true
		}
		for _, k := range kinds {
			if b.Shown(k) == hidden[k] {
				t.Errorf("platform %d: %s shown = %v", tc.platform, k, b.Shown(k))
			}
		}
	}

	if ButtonsFor(1).Shown(world.FacilityKindCount) {
		t.Errorf("sentinel kind shown")
	}
}

func TestSelectPlatformEmitsButtons(t *testing.T) {
	c, _, rec := newTestController(t)
	c.SelectPlatform(4)
	if len(rec.buttons) != 1 {
		t.Fatalf("%d button instructions", len(rec.buttons))
	}
	for _, k := range world.AllFacilityKinds() {
		if rec.buttons[0].Shown(k) != (k == world.FacilityWashroom) {
			t.Errorf("platform 4: %s shown = %v", k, rec.buttons[0].Shown(k))
		}
	}
	if len(rec.directions) != 0 {
		t.Errorf("SelectPlatform emitted directions")
	}
}

func TestNavigateToFirstMatch(t *testing.T) {
	c, _, rec := newTestController(t)
	c.SelectPlatform(3)
	c.NavigateTo("washroom")

	// Platform 3 has its own washroom, but the lookup goes by creation
	// order and lands on platform 1's.
	want := CameraPose{
		Position: r3.Vector{X: -18, Y: 5, Z: 15},
		Target:   r3.Vector{X: -18, Y: 1, Z: 5},
	}
	if got := c.State().Camera; got != want {
		t.Errorf("camera %+v, expected %+v", got, want)
	}
	if len(rec.directions) != 1 || rec.directions[0] != "Directions to Washroom: Available on all platforms." {
		t.Errorf("directions %q", rec.directions)
	}
}

func TestNavigateToKeepsSelection(t *testing.T) {
	c, reg, rec := newTestController(t)
	c.SelectPlatform(5)
	c.NavigateTo("entrance")

	if c.Selected() != 5 {
		t.Errorf("Selected() = %d after NavigateTo", c.Selected())
	}
	checkVisibility(t, reg, c, 5)

	last := rec.renders[len(rec.renders)-1]
	if last.Camera.Target != (r3.Vector{X: -20, Y: 1, Z: 0}) {
		t.Errorf("camera target %+v", last.Camera.Target)
	}
	for id, v := range last.Visible {
		if v != (reg.Facilities()[id].Platform == 5) {
			t.Errorf("NavigateTo changed render visibility of %d", id)
		}
	}
	if len(rec.buttons) != 1 {
		t.Errorf("NavigateTo emitted buttons")
	}
}

func TestNavigateToUnknown(t *testing.T) {
	c, _, rec := newTestController(t)
	c.SelectPlatform(1)
	c.NavigateTo("cloakroom")
	before := c.State()
	nr, nd := len(rec.renders), len(rec.directions)

	c.NavigateTo("nonexistent")

	after := c.State()
	if after.Camera != before.Camera || after.Directions != before.Directions || after.Selected != before.Selected {
		t.Errorf("state changed: %+v -> %+v", before, after)
	}
	for id := range before.Visible {
		if before.Visible[id] != after.Visible[id] {
			t.Errorf("facility %d visibility changed", id)
		}
	}
	if len(rec.renders) != nr || len(rec.directions) != nd {
		t.Errorf("unknown name emitted instructions")
	}
}

func TestDirectionsTable(t *testing.T) {
	c, _, rec := newTestController(t)
	want := map[world.FacilityKind]string{
		world.FacilityCloakroom:   "Directions to Cloakroom: Follow the signs to Platform 1.",
		world.FacilityWaitingHall: "Directions to Waiting Hall: Proceed to Platform 1 and look for the hall.",
		world.FacilityFoodCourt:   "Directions to Food Court: Located near the entrance of Platform 1.",
		world.FacilityWashroom:    "Directions to Washroom: Available on all platforms.",
		world.FacilityEntrance:    "Directions to Entrance: Main entrance is located at the start of Platform 1.",
		world.FacilityExit:        "Directions to Exit: Proceed to the far end of Platform 5.",
	}
	for _, k := range world.AllFacilityKinds() {
		c.NavigateToKind(k)
		if got := rec.directions[len(rec.directions)-1]; got != want[k] {
			t.Errorf("%s: %q", k, got)
		}
	}
	if Directions(world.FacilityKindCount) != DefaultDirections {
		t.Errorf("sentinel directions %q", Directions(world.FacilityKindCount))
	}
}

func TestStateIsACopy(t *testing.T) {
	c, _, rec := newTestController(t)
	c.SelectPlatform(2)

	st := c.State()
	st.Visible[5] = false
	rec.renders[0].Visible[5] = false
	if !c.State().Visible[5] {
		t.Errorf("mutating a snapshot changed controller state")
	}
}
