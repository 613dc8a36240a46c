package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-runner/obstacle"
	"github.com/lixenwraith/vi-runner/parameter"
	"github.com/lixenwraith/vi-runner/physics"
)

// agentPalette colors runners by slot
var agentPalette = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorAqua,
	tcell.ColorYellow,
	tcell.ColorFuchsia,
	tcell.ColorOrange,
	tcell.ColorLime,
	tcell.ColorTeal,
	tcell.ColorSilver,
	tcell.ColorPink,
	tcell.ColorSkyblue,
}

var (
	groundStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	obstacleStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	flyerStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	hudStyle      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	crashedStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
)

// TerminalSink draws the canvas into a tcell screen, one cell per pixel block
type TerminalSink struct {
	screen     tcell.Screen
	cellWidth  int
	cellHeight int
	cols       int
	rows       int
	groundY    int
}

// NewTerminalSink scales a canvasWidth x canvasHeight plane onto screen
func NewTerminalSink(screen tcell.Screen, canvasWidth, canvasHeight int) *TerminalSink {
	return &TerminalSink{
		screen:     screen,
		cellWidth:  parameter.RenderCellWidth,
		cellHeight: parameter.RenderCellHeight,
		cols:       (canvasWidth + parameter.RenderCellWidth - 1) / parameter.RenderCellWidth,
		rows:       (canvasHeight + parameter.RenderCellHeight - 1) / parameter.RenderCellHeight,
		groundY:    parameter.GroundY + parameter.RunnerHeight,
	}
}

// Size returns the playfield size in cells, excluding the status rows
func (t *TerminalSink) Size() (cols, rows int) {
	return t.cols, t.rows
}

// BeginFrame clears the screen
func (t *TerminalSink) BeginFrame() {
	t.screen.Clear()
}

// fill paints every cell touched by a pixel rectangle
func (t *TerminalSink) fill(x, y, w, h int, r rune, style tcell.Style) {
	if w <= 0 || h <= 0 || x+w <= 0 || y+h <= 0 {
		return
	}
	c0, c1 := x/t.cellWidth, (x+w-1)/t.cellWidth
	r0, r1 := y/t.cellHeight, (y+h-1)/t.cellHeight
	if x < 0 {
		c0 = 0
	}
	for row := max(r0, 0); row <= min(r1, t.rows-1); row++ {
		for col := c0; col <= min(c1, t.cols-1); col++ {
			if col < 0 {
				continue
			}
			t.screen.SetContent(col, row, r, nil, style)
		}
	}
}

// DrawObstacleLine draws the ground row under the runners
func (t *TerminalSink) DrawObstacleLine() {
	row := t.groundY / t.cellHeight
	if row >= t.rows {
		row = t.rows - 1
	}
	for col := 0; col < t.cols; col++ {
		t.screen.SetContent(col, row, '_', nil, groundStyle)
	}
}

// DrawObstacle fills the obstacle footprint; flyers alternate glyphs per frame
func (t *TerminalSink) DrawObstacle(o *obstacle.Obstacle) {
	if o == nil {
		return
	}
	r, style := '#', obstacleStyle
	if o.Type != nil && o.Type.Animated() {
		style = flyerStyle
		r = 'v'
		if o.Frame%2 == 1 {
			r = '^'
		}
	}
	b := o.Bounds()
	t.fill(b.X, b.Y, b.Width, b.Height, r, style)
}

// DrawAgent fills a runner footprint in its slot color with a state glyph
func (t *TerminalSink) DrawAgent(id int, pose physics.Pose, frame int) {
	style := tcell.StyleDefault.Foreground(agentPalette[id%len(agentPalette)])
	w, h := parameter.RunnerWidth, parameter.RunnerHeight

	var r rune
	switch pose.State {
	case physics.StateWaiting:
		r = 'o'
	case physics.StateRunning:
		r = 'd'
		if frame%2 == 1 {
			r = 'b'
		}
	case physics.StateJumping:
		r = '^'
	case physics.StateDucking:
		w, h = parameter.RunnerWidthDuck, parameter.RunnerHeightDuck
		r = '='
	case physics.StateCrashed:
		r, style = 'x', crashedStyle
	}

	// Ducking sprite hugs the ground
	y := pose.Y + parameter.RunnerHeight - h
	t.fill(pose.X, y, w, h, r, style)
}

// EndFrame writes the status rows and shows the frame
func (t *TerminalSink) EndFrame(hud HUD) {
	t.drawText(0, t.rows, StatusLine(hud), hudStyle)
	t.drawText(0, t.rows+1, fmt.Sprintf("SCORE %05d  HI %05d  SPEED %.2f", hud.Score, hud.HighScore, hud.Speed), hudStyle)
	t.screen.Show()
}

func (t *TerminalSink) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

// StatusLine formats the generation banner
func StatusLine(hud HUD) string {
	switch {
	case hud.Paused:
		return "PAUSED"
	case hud.Waiting:
		return "PRESS SPACE TO START"
	case hud.GameOver:
		return "GAME OVER"
	case hud.Manual:
		return fmt.Sprintf("GENERATION #%d", hud.Generation)
	default:
		return fmt.Sprintf("GENERATION #%d | LIVES x %d", hud.Generation, hud.Lives)
	}
}
