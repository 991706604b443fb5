package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Cell is one character cell of the panel.
type Cell struct {
	Glyph byte  // ASCII code
	FG    uint8 // Palette index
	BG    uint8 // Palette index; ColorBlack is transparent
}

var blankCell = Cell{Glyph: ' ', FG: ColorText, BG: ColorBlack}

// CellBuffer is a 2D grid of character cells laid over the window.
type CellBuffer struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewCellBuffer creates a buffer of blank, transparent cells.
func NewCellBuffer(cols, rows int) *CellBuffer {
	b := &CellBuffer{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	b.Clear()
	return b
}

// Set writes the cell at (x, y). Out-of-bounds writes are ignored.
func (b *CellBuffer) Set(x, y int, glyph byte, fg, bg uint8) {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		b.Cells[y*b.Cols+x] = Cell{Glyph: glyph, FG: fg, BG: bg}
	}
}

// Get reads the cell at (x, y). Out-of-bounds reads return the zero cell.
func (b *CellBuffer) Get(x, y int) Cell {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		return b.Cells[y*b.Cols+x]
	}
	return Cell{}
}

// Clear resets every cell to blank.
func (b *CellBuffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = blankCell
	}
}

// Fill paints a w×h rectangle of blank cells with background bg.
func (b *CellBuffer) Fill(x, y, w, h int, bg uint8) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			b.Set(xx, yy, ' ', ColorText, bg)
		}
	}
}

// WriteString writes s from (x, y), one byte per cell, and returns the
// number of cells written. Non-ASCII runes become '?'.
func (b *CellBuffer) WriteString(x, y int, s string, fg, bg uint8) int {
	n := 0
	for _, ch := range s {
		if ch > 126 {
			ch = '?'
		}
		b.Set(x+n, y, byte(ch), fg, bg)
		n++
	}
	return n
}

// Text returns row y as a string with trailing blanks removed.
func (b *CellBuffer) Text(y int) string {
	if y < 0 || y >= b.Rows {
		return ""
	}
	row := make([]byte, b.Cols)
	end := 0
	for x := 0; x < b.Cols; x++ {
		row[x] = b.Cells[y*b.Cols+x].Glyph
		if row[x] != ' ' && row[x] != 0 {
			end = x + 1
		}
	}
	return string(row[:end])
}

// GridRenderer draws a CellBuffer to an Ebitengine screen.
type GridRenderer struct {
	Atlas   *FontAtlas
	CellW   int
	CellH   int
	bgPixel *ebiten.Image // 1x1 white pixel for drawing backgrounds
}

// NewGridRenderer creates a renderer with the given atlas and cell size.
func NewGridRenderer(atlas *FontAtlas, cellW, cellH int) *GridRenderer {
	bgPixel := ebiten.NewImage(1, 1)
	bgPixel.Fill(color.White)
	return &GridRenderer{
		Atlas:   atlas,
		CellW:   cellW,
		CellH:   cellH,
		bgPixel: bgPixel,
	}
}

// Draw renders every non-transparent cell of buf.
func (r *GridRenderer) Draw(screen *ebiten.Image, buf *CellBuffer) {
	scaleX := float64(r.CellW) / float64(GlyphWidth)
	scaleY := float64(r.CellH) / float64(GlyphHeight)

	var op ebiten.DrawImageOptions
	for y := 0; y < buf.Rows; y++ {
		for x := 0; x < buf.Cols; x++ {
			cell := buf.Cells[y*buf.Cols+x]
			px := float64(x * r.CellW)
			py := float64(y * r.CellH)

			if cell.BG != ColorBlack {
				op = ebiten.DrawImageOptions{}
				op.GeoM.Scale(float64(r.CellW), float64(r.CellH))
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(Palette[cell.BG])
				screen.DrawImage(r.bgPixel, &op)
			}

			if cell.Glyph != ' ' && cell.Glyph != 0 {
				op = ebiten.DrawImageOptions{}
				op.GeoM.Scale(scaleX, scaleY)
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(Palette[cell.FG])
				screen.DrawImage(r.Atlas.Glyph(cell.Glyph), &op)
			}
		}
	}
}
