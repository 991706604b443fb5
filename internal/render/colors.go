package render

import (
	"image/color"

	"github.com/stationview/stationview/internal/world"
)

// Panel palette indices.
const (
	ColorBlack = iota
	ColorText
	ColorDim
	ColorAccent
	ColorWarning
	ColorEmergency
	ColorButton
	ColorButtonHover
	ColorButtonActive
	ColorPanel
	ColorSky
	ColorPlatform
	paletteSize
)

// Palette maps panel color indices to RGBA.
var Palette = [paletteSize]color.RGBA{
	ColorBlack:        {0, 0, 0, 255},
	ColorText:         {230, 230, 230, 255},
	ColorDim:          {120, 120, 130, 255},
	ColorAccent:       {110, 200, 255, 255},
	ColorWarning:      {255, 220, 90, 255},
	ColorEmergency:    {255, 90, 90, 255},
	ColorButton:       {50, 60, 80, 255},
	ColorButtonHover:  {70, 90, 120, 255},
	ColorButtonActive: {40, 110, 70, 255},
	ColorPanel:        {24, 26, 34, 255},
	ColorSky:          {12, 14, 22, 255},
	ColorPlatform:     {128, 128, 128, 255}, // 0x808080
}

// RGBA converts a layout color to an opaque RGBA.
func RGBA(c world.RGB) color.RGBA {
	r, g, b := c.Components()
	return color.RGBA{r, g, b, 255}
}

// shade scales the RGB channels of c by f (0..1).
func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
