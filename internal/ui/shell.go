// Package ui is the viewer's UI shell. It lays out the side panel in
// character cells, hit-tests clicks against it, forwards them to the
// controller and shows whatever the controller last told it.
package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/stationview/stationview/internal/game"
	"github.com/stationview/stationview/internal/log"
	"github.com/stationview/stationview/internal/render"
	"github.com/stationview/stationview/internal/world"
)

// Texts shown by the shell.
const (
	InvalidNameText   = "Please enter a valid station name."
	EmergencyCallText = "Emergency call feature for women is activated."
)

// EmergencyContacts is the fixed list behind the contacts toggle.
var EmergencyContacts = []string{
	"Police ............... 100",
	"Fire ................. 101",
	"Ambulance ............ 102",
	"Women Helpline ....... 1091",
	"Railway Helpline ..... 139",
}

// Selector is the part of the controller the shell drives.
type Selector interface {
	SelectPlatform(index int)
	NavigateTo(name string)
	Selected() int
}

// Mode is which screen the shell shows.
type Mode uint8

const (
	ModePrompt Mode = iota // asking for the station name
	ModeViewer             // scene and panel
)

const (
	maxNameLen   = 32
	messageLines = 12
)

// Button is a clickable panel element in cell coordinates.
type Button struct {
	X, Y, W int
	Label   string
	Active  bool
	Action  func()
}

func (b Button) contains(col, row int) bool {
	return row == b.Y && col >= b.X && col < b.X+b.W
}

// Shell implements game.UISink.
type Shell struct {
	ctl       Selector
	lg        *log.Logger
	platforms []int

	cols, rows int
	panelX     int // first panel column; everything left of it is the scene

	mode        Mode
	stationName string
	input       []rune
	promptError string

	facilityButtons game.ButtonState
	directions      string
	contactsOpen    bool
	hoverCol        int
	hoverRow        int

	Log *game.MessageLog
}

// NewShell creates a shell over a cols×rows grid whose panel starts at
// column panelX. platforms are the indices offered as platform buttons.
func NewShell(ctl Selector, platforms []int, cols, rows, panelX int, lg *log.Logger) *Shell {
	return &Shell{
		ctl:        ctl,
		lg:         lg,
		platforms:  platforms,
		cols:       cols,
		rows:       rows,
		panelX:     panelX,
		directions: game.DefaultDirections,
		hoverCol:   -1,
		hoverRow:   -1,
		Log:        NewPanelLog(cols - panelX - 2),
	}
}

// NewPanelLog creates the message log shown at the bottom of the panel.
func NewPanelLog(width int) *game.MessageLog {
	return game.NewMessageLog(50, width)
}

// ApplyButtons implements game.UISink.
func (s *Shell) ApplyButtons(b game.ButtonState) { s.facilityButtons = b }

// ApplyDirections implements game.UISink.
func (s *Shell) ApplyDirections(text string) { s.directions = text }

// Mode returns the current screen.
func (s *Shell) Mode() Mode { return s.mode }

// StationName is the name given at the prompt.
func (s *Shell) StationName() string { return s.stationName }

// Directions is the directions text currently shown.
func (s *Shell) Directions() string { return s.directions }

// ContactsOpen reports whether the emergency contacts list is shown.
func (s *Shell) ContactsOpen() bool { return s.contactsOpen }

///////////////////////////////////////////////////////////////////////////
// Station-name prompt

// TypeChars appends typed characters to the name being entered.
func (s *Shell) TypeChars(rs []rune) {
	if s.mode != ModePrompt {
		return
	}
	for _, r := range rs {
		if r < 32 || r > 126 || len(s.input) >= maxNameLen {
			continue
		}
		s.input = append(s.input, r)
	}
}

// Backspace deletes the last typed character.
func (s *Shell) Backspace() {
	if s.mode == ModePrompt && len(s.input) > 0 {
		s.input = s.input[:len(s.input)-1]
	}
}

// Submit accepts the typed station name. An empty name keeps the prompt
// up with an error.
func (s *Shell) Submit() bool {
	if s.mode != ModePrompt {
		return false
	}
	name := strings.TrimSpace(string(s.input))
	if name == "" {
		s.promptError = InvalidNameText
		return false
	}
	s.start(name)
	return true
}

// SetStationName skips the prompt.
func (s *Shell) SetStationName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("station name: %s", InvalidNameText)
	}
	s.start(name)
	return nil
}

func (s *Shell) start(name string) {
	s.stationName = name
	s.mode = ModeViewer
	s.promptError = ""
	s.input = nil
	s.Log.Add("Welcome to "+name+". Pick a platform to see its facilities.", game.MsgInfo)
	s.lg.Info("station opened", slog.String("name", name))
}

///////////////////////////////////////////////////////////////////////////
// Panel layout and input

// Buttons lays out the panel for the current state. Hidden facility
// buttons are left out, and the rest move up to fill the gap.
func (s *Shell) Buttons() []Button {
	if s.mode != ModeViewer {
		return nil
	}
	x := s.panelX + 1
	var bs []Button

	col := x
	for _, p := range s.platforms {
		label := " " + strconv.Itoa(p) + " "
		bs = append(bs, Button{X: col, Y: 3, W: len(label), Label: label, Active: s.ctl.Selected() == p,
			Action: s.platformAction(p)})
		col += len(label) + 1
	}
	bs = append(bs, Button{X: col, Y: 3, W: 6, Label: " None ", Active: s.ctl.Selected() == game.NoPlatform,
		Action: s.platformAction(game.NoPlatform)})

	row := 6
	for _, k := range world.AllFacilityKinds() {
		if !s.facilityButtons.Shown(k) {
			continue
		}
		bs = append(bs, Button{X: x, Y: row, W: 18, Label: " " + k.Label(), Action: s.facilityAction(k)})
		row++
	}

	bs = append(bs,
		Button{X: x, Y: 20, W: 22, Label: " Emergency Contacts", Active: s.contactsOpen, Action: s.ToggleContacts},
		Button{X: x + 23, Y: 20, W: 16, Label: " Emergency Call", Action: s.EmergencyCall},
	)
	return bs
}

func (s *Shell) platformAction(p int) func() {
	return func() { s.SelectPlatform(p) }
}

func (s *Shell) facilityAction(k world.FacilityKind) func() {
	return func() {
		s.ctl.NavigateTo(k.String())
		s.Log.Add("Showing the "+strings.ToLower(k.Label())+".", game.MsgInfo)
	}
}

// SelectPlatform forwards a platform choice to the controller.
func (s *Shell) SelectPlatform(p int) {
	if s.mode != ModeViewer {
		return
	}
	s.ctl.SelectPlatform(p)
	if p == game.NoPlatform {
		s.Log.Add("Platform selection cleared.", game.MsgNotice)
	} else {
		s.Log.Add(fmt.Sprintf("Platform %d selected.", p), game.MsgNotice)
	}
}

// ToggleContacts shows or hides the emergency contact list.
func (s *Shell) ToggleContacts() {
	s.contactsOpen = !s.contactsOpen
}

// EmergencyCall posts the emergency call notice.
func (s *Shell) EmergencyCall() {
	s.Log.Add(EmergencyCallText, game.MsgEmergency)
	s.lg.Warn("emergency call requested", slog.String("station", s.stationName))
}

// Click dispatches a click at a cell. It reports whether a button was hit.
func (s *Shell) Click(col, row int) bool {
	for _, b := range s.Buttons() {
		if b.contains(col, row) {
			b.Action()
			return true
		}
	}
	return false
}

// Hover records the cell under the mouse for highlighting.
func (s *Shell) Hover(col, row int) {
	s.hoverCol, s.hoverRow = col, row
}

///////////////////////////////////////////////////////////////////////////
// Drawing

// Draw writes the shell into buf.
func (s *Shell) Draw(buf *render.CellBuffer) {
	buf.Clear()
	if s.mode == ModePrompt {
		s.drawPrompt(buf)
		return
	}

	x := s.panelX + 1
	buf.Fill(s.panelX, 0, s.cols-s.panelX, s.rows, render.ColorPanel)

	title := fmt.Sprintf("[ %s ]", s.stationName)
	buf.WriteString(x, 0, title, render.ColorAccent, render.ColorPanel)

	buf.WriteString(x, 2, "--- Platforms ---", render.ColorAccent, render.ColorPanel)
	buf.WriteString(x, 5, "--- Facilities ---", render.ColorAccent, render.ColorPanel)
	if s.facilityButtonCount() == 0 {
		buf.WriteString(x, 6, "Select a platform.", render.ColorDim, render.ColorPanel)
	}

	for _, b := range s.Buttons() {
		bg := uint8(render.ColorButton)
		switch {
		case b.Active:
			bg = render.ColorButtonActive
		case b.contains(s.hoverCol, s.hoverRow):
			bg = render.ColorButtonHover
		}
		buf.Fill(b.X, b.Y, b.W, 1, bg)
		buf.WriteString(b.X, b.Y, b.Label, render.ColorText, bg)
	}

	buf.WriteString(x, 13, "--- Directions ---", render.ColorAccent, render.ColorPanel)
	for i, line := range game.WrapText(s.directions, s.cols-x-1) {
		if i >= 5 {
			break
		}
		buf.WriteString(x, 14+i, line, render.ColorText, render.ColorPanel)
	}

	row := 22
	if s.contactsOpen {
		for _, c := range EmergencyContacts {
			buf.WriteString(x+1, row, c, render.ColorWarning, render.ColorPanel)
			row++
		}
	}

	logRow := s.rows - messageLines - 2
	buf.WriteString(x, logRow, "--- Messages ---", render.ColorAccent, render.ColorPanel)
	for i, msg := range s.Log.Recent(messageLines) {
		buf.WriteString(x, logRow+1+i, msg.Text, msgColor(msg.Priority), render.ColorPanel)
	}

	buf.WriteString(x, s.rows-1, "1-5: Platform  0: None  ESC: Quit", render.ColorDim, render.ColorPanel)
}

func (s *Shell) facilityButtonCount() int {
	n := 0
	for _, k := range world.AllFacilityKinds() {
		if s.facilityButtons.Shown(k) {
			n++
		}
	}
	return n
}

func (s *Shell) drawPrompt(buf *render.CellBuffer) {
	x := s.cols/2 - maxNameLen/2 - 1
	y := s.rows/2 - 3

	buf.WriteString(x, y, "Station Viewer", render.ColorAccent, render.ColorBlack)
	buf.WriteString(x, y+2, "Enter the station name:", render.ColorText, render.ColorBlack)
	buf.Fill(x, y+3, maxNameLen+2, 1, render.ColorButton)
	buf.WriteString(x+1, y+3, string(s.input)+"_", render.ColorText, render.ColorButton)
	if s.promptError != "" {
		buf.WriteString(x, y+5, s.promptError, render.ColorEmergency, render.ColorBlack)
	}
	buf.WriteString(x, y+7, "Enter: Submit  ESC: Quit", render.ColorDim, render.ColorBlack)
}

func msgColor(p game.MsgPriority) uint8 {
	switch p {
	case game.MsgEmergency:
		return render.ColorEmergency
	case game.MsgWarning:
		return render.ColorWarning
	case game.MsgNotice:
		return render.ColorText
	default:
		return render.ColorAccent
	}
}
