package game

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stationview/stationview/assets"
	"github.com/stationview/stationview/internal/world"
)

func loadStation(t *testing.T) *world.StationLayout {
	t.Helper()
	schema, err := assets.Layouts.ReadFile(assets.StationSchema)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	data, err := assets.Layouts.ReadFile(assets.StationLayout)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	ll, err := world.NewLayoutLoader(schema)
	if err != nil {
		t.Fatalf("NewLayoutLoader: %v", err)
	}
	layout, err := ll.Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return layout
}

func TestRegistryPlatforms(t *testing.T) {
	r := NewRegistry(loadStation(t))

	ps := r.Platforms()
	if len(ps) != 5 {
		t.Fatalf("got %d platforms, expected 5", len(ps))
	}
	for i, p := range ps {
		want := float64(-20 + 10*i)
		if p.Index != i+1 || p.Position != (r3.Vector{X: want}) {
			t.Errorf("platform %d: got %+v", i+1, p)
		}
		if off, ok := r.PlatformOffset(i + 1); !ok || off != want {
			t.Errorf("PlatformOffset(%d) = %v %v, expected %v", i+1, off, ok, want)
		}
	}
	for _, idx := range []int{0, 6, -1} {
		if _, ok := r.PlatformOffset(idx); ok {
			t.Errorf("PlatformOffset(%d) found a platform", idx)
		}
	}
}

func TestRegistryFacilitiesByPlatform(t *testing.T) {
	r := NewRegistry(loadStation(t))

	fs := r.Facilities()
	if len(fs) != 12 || r.FacilityCount() != 12 {
		t.Fatalf("got %d facilities, expected 12", len(fs))
	}

	byPlatform := make(map[int][]string)
	for i, f := range fs {
		if f.ID != i {
			t.Errorf("facility %d has ID %d", i, f.ID)
		}
		if f.Visible {
			t.Errorf("facility %d starts visible", i)
		}
		byPlatform[f.Platform] = append(byPlatform[f.Platform], f.Name())
	}

	want := map[int][]string{
		1: {"cloakroom", "waiting-hall", "food-court", "washroom", "entrance"},
		2: {"washroom"},
		3: {"washroom"},
		5: {"cloakroom", "waiting-hall", "food-court", "washroom", "exit"},
	}
	for p := 1; p <= 5; p++ {
		got, exp := byPlatform[p], want[p]
		if len(got) != len(exp) {
			t.Errorf("platform %d: got %v, expected %v", p, got, exp)
			continue
		}
		for i := range got {
			if got[i] != exp[i] {
				t.Errorf("platform %d: got %v, expected %v", p, got, exp)
				break
			}
		}
	}
}

func TestRegistryFacilityByNameFirstMatch(t *testing.T) {
	r := NewRegistry(loadStation(t))

	f, ok := r.FacilityByName("washroom")
	if !ok {
		t.Fatalf("washroom not found")
	}
	// Four platforms have a washroom; the lookup is by creation order.
	if f.ID != 3 || f.Platform != 1 || f.Position != (r3.Vector{X: -18, Y: 1, Z: 5}) {
		t.Errorf("got %+v, expected platform 1's washroom", f)
	}

	f, ok = r.FacilityByName("exit")
	if !ok || f.Platform != 5 || f.Position != (r3.Vector{X: 20, Y: 1, Z: 0}) {
		t.Errorf("exit: got %+v %v", f, ok)
	}

	if _, ok := r.FacilityByName("nonexistent"); ok {
		t.Errorf("nonexistent facility found")
	}
}

func TestRegistrySetVisible(t *testing.T) {
	r := NewRegistry(loadStation(t))

	r.SetVisible(7, true)
	r.SetVisible(-1, true)
	r.SetVisible(99, true)
	for _, f := range r.Facilities() {
		if f.Visible != (f.ID == 7) {
			t.Errorf("facility %d visible = %v", f.ID, f.Visible)
		}
	}
}
