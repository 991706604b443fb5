package world

import "github.com/golang/geo/r3"

// FacilityKind identifies a station amenity category.
type FacilityKind uint8

const (
	FacilityCloakroom   FacilityKind = iota // luggage storage
	FacilityWaitingHall                     // seated waiting area
	FacilityFoodCourt                       // food vendors
	FacilityWashroom                        // toilets
	FacilityEntrance                        // way in from the street
	FacilityExit                            // way out to the street
	FacilityKindCount                       // sentinel, not a real category
)

// facilityNames are the wire/UI names, indexed by kind.
var facilityNames = [FacilityKindCount]string{
	FacilityCloakroom:   "cloakroom",
	FacilityWaitingHall: "waiting-hall",
	FacilityFoodCourt:   "food-court",
	FacilityWashroom:    "washroom",
	FacilityEntrance:    "entrance",
	FacilityExit:        "exit",
}

// facilityLabels are human-readable button captions.
var facilityLabels = [FacilityKindCount]string{
	FacilityCloakroom:   "Cloakroom",
	FacilityWaitingHall: "Waiting Hall",
	FacilityFoodCourt:   "Food Court",
	FacilityWashroom:    "Washroom",
	FacilityEntrance:    "Entrance",
	FacilityExit:        "Exit",
}

// String returns the wire name of the kind.
func (k FacilityKind) String() string {
	if k < FacilityKindCount {
		return facilityNames[k]
	}
	return "unknown"
}

// Label returns the display caption of the kind.
func (k FacilityKind) Label() string {
	if k < FacilityKindCount {
		return facilityLabels[k]
	}
	return "Unknown"
}

// ParseFacilityKind maps a wire name back to its kind.
func ParseFacilityKind(name string) (FacilityKind, bool) {
	for k, n := range facilityNames {
		if n == name {
			return FacilityKind(k), true
		}
	}
	return FacilityKindCount, false
}

// AllFacilityKinds lists every category in button order.
func AllFacilityKinds() []FacilityKind {
	kinds := make([]FacilityKind, 0, FacilityKindCount)
	for k := FacilityKind(0); k < FacilityKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// RGB is a 24-bit display color.
type RGB uint32

// Components splits the color into 8-bit channels.
func (c RGB) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// PlatformDef is one platform as declared by a layout.
type PlatformDef struct {
	Index int
	X     float64 // offset along the track axis; Y and Z are always 0
}

// Position returns the platform center.
func (p PlatformDef) Position() r3.Vector {
	return r3.Vector{X: p.X}
}

// FacilityDef is one facility as declared by a layout.
type FacilityDef struct {
	Kind     FacilityKind
	Position r3.Vector
	Color    RGB
	Platform int
}
