package game

import (
	"github.com/golang/geo/r3"
	"github.com/mlange-42/ark/ecs"
	"github.com/stationview/stationview/internal/world"
)

// ECS components.
type (
	Position    struct{ r3.Vector }
	PlatformTag struct{ Index int }
	Visibility  struct{ Visible bool }

	FacilityInfo struct {
		ID       int
		Kind     world.FacilityKind
		Color    world.RGB
		Platform int
	}
)

// Platform is a read-only view of a platform entity.
type Platform struct {
	Index    int
	Position r3.Vector
}

// Facility is a read-only view of a facility entity.
type Facility struct {
	ID       int
	Kind     world.FacilityKind
	Position r3.Vector
	Color    world.RGB
	Platform int
	Visible  bool
}

// Name returns the category name the facility is looked up by.
func (f Facility) Name() string { return f.Kind.String() }

// Registry holds the station's platforms and facilities. It is populated
// once and never grows or shrinks; only facility visibility changes, and
// only the Controller changes it.
type Registry struct {
	ECS  *ecs.World
	Name string

	PlatformSize r3.Vector
	FacilitySize r3.Vector

	platforms  []ecs.Entity // document order
	facilities []ecs.Entity // creation order; index == FacilityInfo.ID

	posMap      *ecs.Map[Position]
	platformMap *ecs.Map[PlatformTag]
	infoMap     *ecs.Map[FacilityInfo]
	visMap      *ecs.Map[Visibility]
}

// NewRegistry creates a registry from a loaded layout. Every facility
// starts hidden.
func NewRegistry(layout *world.StationLayout) *Registry {
	w := ecs.NewWorld(64)

	r := &Registry{
		ECS:          w,
		Name:         layout.Name,
		PlatformSize: vec3(layout.PlatformSize),
		FacilitySize: vec3(layout.FacilitySize),
		posMap:       ecs.NewMap[Position](w),
		platformMap:  ecs.NewMap[PlatformTag](w),
		infoMap:      ecs.NewMap[FacilityInfo](w),
		visMap:       ecs.NewMap[Visibility](w),
	}

	platformMapper := ecs.NewMap2[Position, PlatformTag](w)
	for _, p := range layout.PlatformDefs() {
		e := platformMapper.NewEntity(&Position{p.Position()}, &PlatformTag{Index: p.Index})
		r.platforms = append(r.platforms, e)
	}

	facilityMapper := ecs.NewMap3[Position, FacilityInfo, Visibility](w)
	for i, f := range layout.FacilityDefs() {
		e := facilityMapper.NewEntity(
			&Position{f.Position},
			&FacilityInfo{ID: i, Kind: f.Kind, Color: f.Color, Platform: f.Platform},
			&Visibility{},
		)
		r.facilities = append(r.facilities, e)
	}

	return r
}

func vec3(v [3]float64) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Platforms returns every platform in layout order.
func (r *Registry) Platforms() []Platform {
	ps := make([]Platform, 0, len(r.platforms))
	for _, e := range r.platforms {
		ps = append(ps, Platform{
			Index:    r.platformMap.Get(e).Index,
			Position: r.posMap.Get(e).Vector,
		})
	}
	return ps
}

// PlatformOffset returns the track-axis offset of the given platform.
func (r *Registry) PlatformOffset(index int) (float64, bool) {
	for _, e := range r.platforms {
		if r.platformMap.Get(e).Index == index {
			return r.posMap.Get(e).X, true
		}
	}
	return 0, false
}

// Facilities returns every facility in creation order, with its current
// visibility.
func (r *Registry) Facilities() []Facility {
	fs := make([]Facility, 0, len(r.facilities))
	for _, e := range r.facilities {
		fs = append(fs, r.facility(e))
	}
	return fs
}

// FacilityCount is the number of facilities; IDs run from 0 to
// FacilityCount()-1.
func (r *Registry) FacilityCount() int { return len(r.facilities) }

// FacilityByName returns the first facility, in creation order, whose
// category name matches. Names repeat across platforms, so this is not
// necessarily the facility on the selected platform.
func (r *Registry) FacilityByName(name string) (Facility, bool) {
	for _, e := range r.facilities {
		if r.infoMap.Get(e).Kind.String() == name {
			return r.facility(e), true
		}
	}
	return Facility{}, false
}

// SetVisible sets the visibility flag of facility id. Unknown ids are
// ignored.
func (r *Registry) SetVisible(id int, visible bool) {
	if id < 0 || id >= len(r.facilities) {
		return
	}
	r.visMap.Get(r.facilities[id]).Visible = visible
}

func (r *Registry) facility(e ecs.Entity) Facility {
	info := r.infoMap.Get(e)
	return Facility{
		ID:       info.ID,
		Kind:     info.Kind,
		Position: r.posMap.Get(e).Vector,
		Color:    info.Color,
		Platform: info.Platform,
		Visible:  r.visMap.Get(e).Visible,
	}
}
