package world

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidLayout wraps every semantic problem found in a layout document.
var ErrInvalidLayout = errors.New("invalid station layout")

const schemaURL = "mem://schemas/station.json"

// Sizes used when a layout omits them.
var (
	defaultPlatformSize = [3]float64{10, 0.5, 2}
	defaultFacilitySize = [3]float64{3, 2, 3}
)

const defaultFacilityColor RGB = 0x808080

// StationLayout is the JSON-serializable definition of a station.
type StationLayout struct {
	Name         string         `json:"name"`
	PlatformSize [3]float64     `json:"platformSize"`
	FacilitySize [3]float64     `json:"facilitySize"`
	Platforms    []PlatformJSON `json:"platforms"`
	Facilities   []FacilityJSON `json:"facilities"`
}

// PlatformJSON is a platform entry in a layout document.
type PlatformJSON struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
}

// FacilityJSON is a facility entry in a layout document.
type FacilityJSON struct {
	Name     string     `json:"name"`
	Pos      [3]float64 `json:"pos"`
	Color    string     `json:"color,omitempty"`
	Platform int        `json:"platform"`
}

// LayoutLoader validates layout documents against a compiled JSON Schema.
type LayoutLoader struct {
	schema *jsonschema.Schema
}

// NewLayoutLoader compiles the given schema document.
func NewLayoutLoader(schema []byte) (*LayoutLoader, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("add layout schema: %w", err)
	}
	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile layout schema: %w", err)
	}
	return &LayoutLoader{schema: compiled}, nil
}

// Load validates data against the schema, decodes it, and checks the
// cross-references the schema cannot express.
func (ll *LayoutLoader) Load(data []byte) (*StationLayout, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse station layout: %w", err)
	}
	if err := ll.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	var layout StationLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse station layout: %w", err)
	}
	if layout.PlatformSize == ([3]float64{}) {
		layout.PlatformSize = defaultPlatformSize
	}
	if layout.FacilitySize == ([3]float64{}) {
		layout.FacilitySize = defaultFacilitySize
	}
	if err := layout.check(); err != nil {
		return nil, err
	}
	return &layout, nil
}

func (l *StationLayout) check() error {
	seen := make(map[int]bool, len(l.Platforms))
	for _, p := range l.Platforms {
		if seen[p.Index] {
			return fmt.Errorf("%w: duplicate platform %d", ErrInvalidLayout, p.Index)
		}
		seen[p.Index] = true
	}
	for i, f := range l.Facilities {
		if _, ok := ParseFacilityKind(f.Name); !ok {
			return fmt.Errorf("%w: facility %d: unknown category %q", ErrInvalidLayout, i, f.Name)
		}
		if !seen[f.Platform] {
			return fmt.Errorf("%w: facility %d (%s): no platform %d", ErrInvalidLayout, i, f.Name, f.Platform)
		}
		if f.Color != "" {
			if _, err := parseColor(f.Color); err != nil {
				return fmt.Errorf("%w: facility %d (%s): %v", ErrInvalidLayout, i, f.Name, err)
			}
		}
	}
	return nil
}

// PlatformDefs returns the platforms in document order.
func (l *StationLayout) PlatformDefs() []PlatformDef {
	defs := make([]PlatformDef, 0, len(l.Platforms))
	for _, p := range l.Platforms {
		defs = append(defs, PlatformDef{Index: p.Index, X: p.X})
	}
	return defs
}

// FacilityDefs returns the facilities in document order. The layout must
// have come from Load, which has already rejected bad names and colors.
func (l *StationLayout) FacilityDefs() []FacilityDef {
	defs := make([]FacilityDef, 0, len(l.Facilities))
	for _, f := range l.Facilities {
		kind, _ := ParseFacilityKind(f.Name)
		clr := defaultFacilityColor
		if f.Color != "" {
			clr, _ = parseColor(f.Color)
		}
		defs = append(defs, FacilityDef{
			Kind:     kind,
			Position: r3.Vector{X: f.Pos[0], Y: f.Pos[1], Z: f.Pos[2]},
			Color:    clr,
			Platform: f.Platform,
		})
	}
	return defs
}

// parseColor accepts "#rrggbb".
func parseColor(s string) (RGB, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return 0, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB(v), nil
}
