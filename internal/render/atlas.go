package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 8
	GlyphHeight = 16
	AtlasCols   = 16
	AtlasRows   = 8 // 128 ASCII codes
)

// FontAtlas holds the ASCII glyph atlas and cached sub-images.
type FontAtlas struct {
	image  *ebiten.Image
	glyphs [AtlasCols * AtlasRows]*ebiten.Image
}

// NewFontAtlas renders printable ASCII with basicfont.Face7x13 into a
// single white-on-transparent image. Glyphs are tinted at draw time.
func NewFontAtlas() *FontAtlas {
	img := image.NewNRGBA(image.Rect(0, 0, AtlasCols*GlyphWidth, AtlasRows*GlyphHeight))
	face := basicfont.Face7x13

	for code := 32; code < 127; code++ {
		x, y := glyphOrigin(code)
		drawFontGlyph(img, face, x, y, rune(code))
	}

	eimg := ebiten.NewImageFromImage(img)
	a := &FontAtlas{image: eimg}
	for code := range a.glyphs {
		x, y := glyphOrigin(code)
		a.glyphs[code] = eimg.SubImage(image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)).(*ebiten.Image)
	}
	return a
}

func glyphOrigin(code int) (int, int) {
	return (code % AtlasCols) * GlyphWidth, (code / AtlasCols) * GlyphHeight
}

// Glyph returns the cached sub-image for an ASCII code; anything outside
// 7-bit ASCII maps to '?'.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	if int(code) >= len(a.glyphs) {
		code = '?'
	}
	return a.glyphs[code]
}

// drawFontGlyph draws one 7x13 glyph with its baseline 3px above the
// cell bottom.
func drawFontGlyph(img *image.NRGBA, face font.Face, cellX, cellY int, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(cellX, cellY+GlyphHeight-3),
	}
	d.DrawString(string(r))
}
