package game

import (
	"log/slog"

	"github.com/brunoga/deep"
	"github.com/golang/geo/r3"
	"github.com/stationview/stationview/internal/log"
	"github.com/stationview/stationview/internal/world"
)

// NoPlatform is the selection before any platform has been picked.
const NoPlatform = 0

// Camera height and distance used for every computed pose.
const (
	cameraHeight       = 5
	platformViewDepth  = 30
	facilityViewOffset = 10
)

// CameraPose is where the camera sits and what it looks at.
type CameraPose struct {
	Position r3.Vector
	Target   r3.Vector
}

// DefaultCameraPose frames the whole station.
var DefaultCameraPose = CameraPose{
	Position: r3.Vector{X: 0, Y: cameraHeight, Z: platformViewDepth},
	Target:   r3.Vector{},
}

// RenderInstruction is everything a render backend needs for a frame.
// Visible is keyed by facility ID.
type RenderInstruction struct {
	Camera  CameraPose
	Visible map[int]bool
}

// RenderSink receives render instructions.
type RenderSink interface {
	ApplyRender(RenderInstruction)
}

// UISink receives UI-state instructions.
type UISink interface {
	ApplyButtons(ButtonState)
	ApplyDirections(text string)
}

// ControllerState is the controller's complete output state.
type ControllerState struct {
	Selected   int
	Camera     CameraPose
	Visible    map[int]bool
	Buttons    ButtonState
	Directions string
}

// Controller turns platform and facility selections into render and UI
// instructions. Camera pose and facility visibility are independent
// outputs: NavigateTo moves the camera without touching visibility.
type Controller struct {
	registry *Registry
	state    ControllerState
	lg       *log.Logger

	renderSinks []RenderSink
	uiSinks     []UISink
}

// NewController creates a controller with nothing selected. lg may be nil.
func NewController(registry *Registry, lg *log.Logger) *Controller {
	c := &Controller{
		registry: registry,
		lg:       lg,
		state: ControllerState{
			Selected:   NoPlatform,
			Camera:     DefaultCameraPose,
			Visible:    make(map[int]bool, registry.FacilityCount()),
			Directions: DefaultDirections,
		},
	}
	for _, f := range registry.Facilities() {
		c.state.Visible[f.ID] = f.Visible
	}
	return c
}

// AddRenderSink registers a sink for render instructions.
func (c *Controller) AddRenderSink(s RenderSink) {
	c.renderSinks = append(c.renderSinks, s)
}

// AddUISink registers a sink for UI-state instructions.
func (c *Controller) AddUISink(s UISink) {
	c.uiSinks = append(c.uiSinks, s)
}

// Selected returns the selected platform, or NoPlatform.
func (c *Controller) Selected() int { return c.state.Selected }

// State returns a copy of the controller's current output state.
func (c *Controller) State() ControllerState {
	return deep.MustCopy(c.state)
}

// Refresh sends the current state to every sink.
func (c *Controller) Refresh() {
	c.emitRender()
	for _, s := range c.uiSinks {
		s.ApplyButtons(c.state.Buttons)
		s.ApplyDirections(c.state.Directions)
	}
}

// SelectPlatform shows exactly the facilities of platform index and
// centers the camera on it. NoPlatform and unknown indices hide every
// facility and restore the default pose. It always emits.
func (c *Controller) SelectPlatform(index int) {
	offset, ok := c.registry.PlatformOffset(index)
	if !ok {
		if index != NoPlatform {
			c.lg.Debug("unknown platform, clearing selection", slog.Int("platform", index))
		}
		index = NoPlatform
	}

	for _, f := range c.registry.Facilities() {
		visible := f.Platform == index
		c.registry.SetVisible(f.ID, visible)
		c.state.Visible[f.ID] = visible
	}

	c.state.Selected = index
	if ok {
		c.state.Camera = CameraPose{
			Position: r3.Vector{X: offset, Y: cameraHeight, Z: platformViewDepth},
			Target:   r3.Vector{X: offset},
		}
	} else {
		c.state.Camera = DefaultCameraPose
	}
	c.state.Buttons = ButtonsFor(index)

	c.lg.Debug("platform selected", slog.Int("platform", index))

	c.emitRender()
	for _, s := range c.uiSinks {
		s.ApplyButtons(c.state.Buttons)
	}
}

// NavigateTo points the camera at the first facility named name and
// updates the directions text. An unknown name is a no-op. The selected
// platform and facility visibility are left alone.
func (c *Controller) NavigateTo(name string) {
	f, ok := c.registry.FacilityByName(name)
	if !ok {
		c.lg.Debug("no facility with that name", slog.String("name", name))
		return
	}

	c.state.Camera = CameraPose{
		Position: r3.Vector{X: f.Position.X, Y: cameraHeight, Z: f.Position.Z + facilityViewOffset},
		Target:   f.Position,
	}
	c.state.Directions = Directions(f.Kind)

	c.lg.Debug("navigating", slog.String("name", name), slog.Int("facility", f.ID),
		slog.Int("platform", f.Platform))

	c.emitRender()
	for _, s := range c.uiSinks {
		s.ApplyDirections(c.state.Directions)
	}
}

// NavigateToKind is NavigateTo for a known category.
func (c *Controller) NavigateToKind(k world.FacilityKind) {
	c.NavigateTo(k.String())
}

func (c *Controller) emitRender() {
	if len(c.renderSinks) == 0 {
		return
	}
	ri := RenderInstruction{Camera: c.state.Camera}
	for _, s := range c.renderSinks {
		// each sink owns its map
		ri.Visible = deep.MustCopy(c.state.Visible)
		s.ApplyRender(ri)
	}
}
