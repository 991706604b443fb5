package render

import (
	"image/color"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/stationview/stationview/internal/game"
)

// Box is an axis-aligned box in world space.
type Box struct {
	Center r3.Vector
	Size   r3.Vector
	Color  color.RGBA

	// FacilityID is the facility the box draws, or -1 for a platform.
	FacilityID int
}

// corners returns the eight box corners; bit 0 of the index selects +X,
// bit 1 +Y, bit 2 +Z.
func (b Box) corners() [8]r3.Vector {
	h := b.Size.Mul(0.5)
	var cs [8]r3.Vector
	for i := range cs {
		d := r3.Vector{X: -h.X, Y: -h.Y, Z: -h.Z}
		if i&1 != 0 {
			d.X = h.X
		}
		if i&2 != 0 {
			d.Y = h.Y
		}
		if i&4 != 0 {
			d.Z = h.Z
		}
		cs[i] = b.Center.Add(d)
	}
	return cs
}

// boxFaces lists each face as four corner indices (counter-clockwise seen
// from outside) plus its outward normal and brightness.
var boxFaces = [6]struct {
	idx    [4]int
	normal r3.Vector
	light  float64
}{
	{[4]int{2, 6, 7, 3}, r3.Vector{Y: 1}, 1.0},   // top
	{[4]int{0, 1, 5, 4}, r3.Vector{Y: -1}, 0.35}, // bottom
	{[4]int{4, 5, 7, 6}, r3.Vector{Z: 1}, 0.8},   // front
	{[4]int{0, 2, 3, 1}, r3.Vector{Z: -1}, 0.6},  // back
	{[4]int{1, 3, 7, 5}, r3.Vector{X: 1}, 0.7},   // right
	{[4]int{0, 4, 6, 2}, r3.Vector{X: -1}, 0.55}, // left
}

// Face is a projected, lit quad ready to be drawn.
type Face struct {
	Points [4][2]float32
	Color  color.RGBA
	Depth  float64
	BoxID  int
}

// Scene is the render backend: it keeps the last camera pose and
// visibility it was given and redraws them every frame.
type Scene struct {
	Platforms  []Box
	Facilities []Box

	pose    game.CameraPose
	visible map[int]bool
	frames  uint64

	white *ebiten.Image
}

// NewScene builds boxes for every platform and facility in the registry.
func NewScene(reg *game.Registry) *Scene {
	s := &Scene{
		pose:    game.DefaultCameraPose,
		visible: make(map[int]bool),
	}
	for _, p := range reg.Platforms() {
		s.Platforms = append(s.Platforms, Box{
			Center:     p.Position,
			Size:       reg.PlatformSize,
			Color:      Palette[ColorPlatform],
			FacilityID: -1,
		})
	}
	for _, f := range reg.Facilities() {
		s.Facilities = append(s.Facilities, Box{
			Center:     f.Position,
			Size:       reg.FacilitySize,
			Color:      RGBA(f.Color),
			FacilityID: f.ID,
		})
		s.visible[f.ID] = f.Visible
	}
	return s
}

// ApplyRender implements game.RenderSink.
func (s *Scene) ApplyRender(ri game.RenderInstruction) {
	s.pose = ri.Camera
	s.visible = ri.Visible
}

// Pose returns the camera pose of the last applied instruction.
func (s *Scene) Pose() game.CameraPose { return s.pose }

// Visible reports whether facility id is drawn.
func (s *Scene) Visible(id int) bool { return s.visible[id] }

// Frames is the number of frames drawn so far.
func (s *Scene) Frames() uint64 { return s.frames }

// Faces projects every drawable box through cam, culls back faces and
// faces crossing the near plane, and returns them sorted far to near.
func (s *Scene) Faces(cam *Camera) []Face {
	var faces []Face
	for _, b := range s.Platforms {
		faces = appendBoxFaces(faces, cam, b)
	}
	for _, b := range s.Facilities {
		if s.visible[b.FacilityID] {
			faces = appendBoxFaces(faces, cam, b)
		}
	}
	sort.SliceStable(faces, func(i, j int) bool { return faces[i].Depth > faces[j].Depth })
	return faces
}

func appendBoxFaces(faces []Face, cam *Camera, b Box) []Face {
	cs := b.corners()
	for _, bf := range boxFaces {
		center := b.Center.Add(r3.Vector{
			X: bf.normal.X * b.Size.X / 2,
			Y: bf.normal.Y * b.Size.Y / 2,
			Z: bf.normal.Z * b.Size.Z / 2,
		})
		if !cam.Facing(center, bf.normal) {
			continue
		}
		f := Face{Color: shade(b.Color, bf.light), Depth: cam.Depth(center), BoxID: b.FacilityID}
		ok := true
		for i, ci := range bf.idx {
			x, y, vis := cam.Project(cs[ci])
			if !vis {
				ok = false
				break
			}
			f.Points[i] = [2]float32{float32(x), float32(y)}
		}
		if ok {
			faces = append(faces, f)
		}
	}
	return faces
}

// Draw renders the scene into dst, which is treated as the viewport.
func (s *Scene) Draw(dst *ebiten.Image) {
	if s.white == nil {
		s.white = ebiten.NewImage(3, 3)
		s.white.Fill(color.White)
	}
	s.frames++

	bounds := dst.Bounds()
	dst.Fill(Palette[ColorSky])
	cam := NewCamera(s.pose, float64(bounds.Dx()), float64(bounds.Dy()))

	indices := []uint16{0, 1, 2, 0, 2, 3}
	vertices := make([]ebiten.Vertex, 4)
	for _, f := range s.Faces(cam) {
		r, g, b, a := float32(f.Color.R)/255, float32(f.Color.G)/255, float32(f.Color.B)/255, float32(f.Color.A)/255
		for i, p := range f.Points {
			vertices[i] = ebiten.Vertex{
				DstX: p[0] + float32(bounds.Min.X), DstY: p[1] + float32(bounds.Min.Y),
				SrcX: 1.5, SrcY: 1.5,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			}
		}
		dst.DrawTriangles(vertices, indices, s.white, nil)

		edge := shade(f.Color, 0.4)
		for i := range f.Points {
			p0, p1 := f.Points[i], f.Points[(i+1)%4]
			vector.StrokeLine(dst,
				p0[0]+float32(bounds.Min.X), p0[1]+float32(bounds.Min.Y),
				p1[0]+float32(bounds.Min.X), p1[1]+float32(bounds.Min.Y),
				1, edge, true)
		}
	}
}
