package main

import (
	"flag"
	"fmt"
	"image"
	stdlog "log"
	"log/slog"
	"os"

	"github.com/goforj/godump"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/stationview/stationview/assets"
	"github.com/stationview/stationview/internal/game"
	"github.com/stationview/stationview/internal/log"
	"github.com/stationview/stationview/internal/render"
	"github.com/stationview/stationview/internal/ui"
	"github.com/stationview/stationview/internal/world"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	title        = "Station Viewer"

	cellWidth  = render.GlyphWidth
	cellHeight = render.GlyphHeight
	gridCols   = screenWidth / cellWidth   // 160
	gridRows   = screenHeight / cellHeight // 45

	// The scene gets 70% of the width; the panel the rest.
	sceneWidth = screenWidth * 7 / 10
	panelCol   = sceneWidth / cellWidth // 112
)

var (
	logLevel    = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir      = flag.String("logdir", "", "log file directory")
	layoutFile  = flag.String("layout", "", "station layout JSON file (default: built-in layout)")
	stationName = flag.String("station", "", "station name; skips the name prompt")
	dumpLayout  = flag.Bool("dump", false, "print the loaded layout and registry, then exit")
)

// platformKeys maps number keys to platform indices; 0 clears.
var platformKeys = []struct {
	key      ebiten.Key
	platform int
}{
	{ebiten.Key0, game.NoPlatform},
	{ebiten.Key1, 1},
	{ebiten.Key2, 2},
	{ebiten.Key3, 3},
	{ebiten.Key4, 4},
	{ebiten.Key5, 5},
}

// Game is the Ebitengine game struct. It owns input and drawing; all
// station state lives in the controller.
type Game struct {
	lg         *log.Logger
	controller *game.Controller
	scene      *render.Scene
	shell      *ui.Shell

	renderer *render.GridRenderer
	buffer   *render.CellBuffer
}

func NewGame(reg *game.Registry, lg *log.Logger) *Game {
	controller := game.NewController(reg, lg)
	scene := render.NewScene(reg)

	var platforms []int
	for _, p := range reg.Platforms() {
		platforms = append(platforms, p.Index)
	}
	shell := ui.NewShell(controller, platforms, gridCols, gridRows, panelCol, lg)

	controller.AddRenderSink(scene)
	controller.AddUISink(shell)
	controller.Refresh()

	return &Game{
		lg:         lg,
		controller: controller,
		scene:      scene,
		shell:      shell,
		renderer:   render.NewGridRenderer(render.NewFontAtlas(), cellWidth, cellHeight),
		buffer:     render.NewCellBuffer(gridCols, gridRows),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	mx, my := ebiten.CursorPosition()
	col, row := mx/cellWidth, my/cellHeight

	switch g.shell.Mode() {
	case ui.ModePrompt:
		g.shell.TypeChars(ebiten.AppendInputChars(nil))
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			g.shell.Backspace()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
			g.shell.Submit()
		}

	case ui.ModeViewer:
		for _, pk := range platformKeys {
			if inpututil.IsKeyJustPressed(pk.key) {
				g.shell.SelectPlatform(pk.platform)
			}
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.shell.Click(col, row)
		}
	}

	g.shell.Hover(col, row)
	g.shell.Draw(g.buffer)

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.shell.Mode() == ui.ModeViewer {
		viewport := screen.SubImage(image.Rect(0, 0, sceneWidth, screenHeight)).(*ebiten.Image)
		g.scene.Draw(viewport)
	}
	g.renderer.Draw(screen, g.buffer)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func loadLayout(path string) (*world.StationLayout, error) {
	schema, err := assets.Layouts.ReadFile(assets.StationSchema)
	if err != nil {
		return nil, fmt.Errorf("read layout schema: %w", err)
	}
	loader, err := world.NewLayoutLoader(schema)
	if err != nil {
		return nil, err
	}

	var data []byte
	if path == "" {
		data, err = assets.Layouts.ReadFile(assets.StationLayout)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read station layout: %w", err)
	}
	return loader.Load(data)
}

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	layout, err := loadLayout(*layoutFile)
	if err != nil {
		lg.Errorf("%v", err)
		stdlog.Fatalf("load layout: %v", err)
	}
	lg.Info("layout loaded", slog.String("name", layout.Name),
		slog.Int("platforms", len(layout.Platforms)), slog.Int("facilities", len(layout.Facilities)))

	reg := game.NewRegistry(layout)
	if *dumpLayout {
		godump.Dump(layout)
		godump.Dump(reg.Facilities())
		return
	}

	g := NewGame(reg, lg)
	if *stationName != "" {
		if err := g.shell.SetStationName(*stationName); err != nil {
			stdlog.Fatal(err)
		}
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		lg.Errorf("%v", err)
		stdlog.Fatal(err)
	}
	lg.Info("exiting", slog.Uint64("frames", g.scene.Frames()))
}
