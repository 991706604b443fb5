package game

import "github.com/stationview/stationview/internal/world"

// DefaultDirections is shown before any facility has been navigated to.
const DefaultDirections = "Click on a location to get directions."

var directionsTable = [world.FacilityKindCount]string{
	world.FacilityCloakroom:   "Directions to Cloakroom: Follow the signs to Platform 1.",
	world.FacilityWaitingHall: "Directions to Waiting Hall: Proceed to Platform 1 and look for the hall.",
	world.FacilityFoodCourt:   "Directions to Food Court: Located near the entrance of Platform 1.",
	world.FacilityWashroom:    "Directions to Washroom: Available on all platforms.",
	world.FacilityEntrance:    "Directions to Entrance: Main entrance is located at the start of Platform 1.",
	world.FacilityExit:        "Directions to Exit: Proceed to the far end of Platform 5.",
}

// Directions returns the canned directions for a facility category.
func Directions(k world.FacilityKind) string {
	if k < world.FacilityKindCount {
		return directionsTable[k]
	}
	return DefaultDirections
}

// buttonPlatforms lists, per category, the platforms on which its button
// is shown. This is a fixed table and does not follow the layout: the
// washroom button shows on platform 4 even though platform 4 has none.
var buttonPlatforms = [world.FacilityKindCount][]int{
	world.FacilityCloakroom:   {1, 5},
	world.FacilityWaitingHall: {1, 5},
	world.FacilityFoodCourt:   {1, 5},
	world.FacilityWashroom:    {1, 2, 3, 4, 5},
	world.FacilityEntrance:    {1},
	world.FacilityExit:        {5},
}

// ButtonState records which facility-category buttons the UI shows.
type ButtonState [world.FacilityKindCount]bool

// Shown reports whether the button for k is displayed.
func (b ButtonState) Shown(k world.FacilityKind) bool {
	return k < world.FacilityKindCount && b[k]
}

// ButtonsFor derives the button state for a selected platform. Platform 0
// (none) and unknown platforms show nothing.
func ButtonsFor(platform int) ButtonState {
	var b ButtonState
	for k, platforms := range buttonPlatforms {
		for _, p := range platforms {
			if p == platform {
				b[k] = true
				break
			}
		}
	}
	return b
}
