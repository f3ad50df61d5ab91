// Package termview hosts a ScrollView in a terminal: tcell mouse drags
// become presses, moves and releases, a fixed-rate ticker drives the
// scheduler, and the visible tiles are redrawn every frame.
package termview

import (
	"fmt"
	"strings"
	"time"

	"github.com/agiangrant/scrollview/internal/scene"
	"github.com/agiangrant/scrollview/loader"
	"github.com/agiangrant/scrollview/retained"
	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	scrollSeconds = 0.5
	wheelStep     = 2.0
	progressWidth = 20
)

var palette = []tcell.Color{
	tcell.ColorTeal,
	tcell.ColorNavy,
	tcell.ColorOlive,
	tcell.ColorMaroon,
	tcell.ColorPurple,
	tcell.ColorGreen,
}

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)

// Open creates and initialises a terminal screen with mouse reporting.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	return screen, nil
}

// App draws a tile grid ScrollView on a screen. The bottom row is a status
// line; the rest is the viewport.
type App struct {
	screen  tcell.Screen
	sv      *retained.ScrollView
	sched   *retained.Scheduler
	loader  *loader.Loader // optional
	columns int

	pressed bool
	last    retained.ScrollEvent
	events  int
}

// New attaches the app to screen and schedules sv on sched. ld may be nil.
func New(screen tcell.Screen, sv *retained.ScrollView, sched *retained.Scheduler, columns int, ld *loader.Loader) *App {
	a := &App{
		screen:  screen,
		sv:      sv,
		sched:   sched,
		loader:  ld,
		columns: columns,
	}
	sv.SetEventListener(func(_ *retained.ScrollView, ev retained.ScrollEvent) {
		a.last = ev
		a.events++
	})
	sched.Schedule(sv)
	a.resize()
	return a
}

// Run processes input and redraws until the user quits.
func (a *App) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	a.draw()
	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			a.sched.Tick(now)
			a.draw()
		}
	}
}

// viewRows is the number of rows the viewport occupies.
func (a *App) viewRows() int {
	_, h := a.screen.Size()
	return max(h-1, 0)
}

func (a *App) resize() {
	w, _ := a.screen.Size()
	a.sv.SetViewportSize(retained.Sz(float64(w), float64(a.viewRows())))
}

// handleEvent applies one terminal event. It returns false when the app
// should exit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	}
	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := cellCenter(x, y, a.viewRows())
	btn := ev.Buttons()

	switch {
	case btn&tcell.WheelUp != 0:
		a.wheel(-wheelStep)
	case btn&tcell.WheelDown != 0:
		a.wheel(wheelStep)
	case btn&tcell.Button1 != 0:
		if !a.pressed {
			a.pressed = true
			a.sv.HandlePress(p)
		} else {
			a.sv.HandleMove(p)
		}
	case a.pressed:
		a.pressed = false
		a.sv.HandleRelease(p)
	}
}

// wheel scrolls by step along the main axis; positive reveals content
// further down (or right).
func (a *App) wheel(step float64) {
	if a.sv.Direction() == retained.DirectionHorizontal {
		a.sv.ScrollChildren(-step, 0)
		return
	}
	a.sv.ScrollChildren(0, step)
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	var err error
	switch r := ev.Rune(); r {
	case 'q':
		return false
	case 'g':
		err = a.sv.ScrollToTop(scrollSeconds, true)
	case 'G':
		err = a.sv.ScrollToBottom(scrollSeconds, true)
	case 'H':
		err = a.sv.ScrollToLeft(scrollSeconds, true)
	case 'L':
		err = a.sv.ScrollToRight(scrollSeconds, true)
	case 'j':
		a.sv.ScrollChildren(0, 1)
	case 'k':
		a.sv.ScrollChildren(0, -1)
	case 'h':
		a.sv.ScrollChildren(1, 0)
	case 'l':
		a.sv.ScrollChildren(-1, 0)
	case ' ':
		a.sv.StopAutoScroll()
	case 'i':
		a.sv.SetInertiaScrollEnabled(!a.sv.IsInertiaScrollEnabled())
	case 'd':
		a.sv.SetDirection((a.sv.Direction() + 1) % (retained.DirectionBoth + 1))
	default:
		if r >= '0' && r <= '9' {
			err = a.sv.ScrollToPercentVertical(float64(r-'0')*100/9, scrollSeconds, false)
		}
	}
	if err != nil {
		retained.Logger().Warn("termview: scroll rejected", "key", string(ev.Rune()), "error", err)
	}
	return true
}

func (a *App) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	rows := a.viewRows()

	for _, t := range scene.Tiles(a.sv, a.columns) {
		style := tcell.StyleDefault.
			Foreground(tcell.ColorWhite).
			Background(palette[t.Hue(len(palette))])
		c0, c1, r0, r1 := cellSpan(t.X, t.Y, t.W, t.H, rows)
		for row := max(r0, 0); row < min(r1, rows); row++ {
			for col := max(c0, 0); col < min(c1, w); col++ {
				a.screen.SetContent(col, row, ' ', nil, style)
			}
		}
		if r0 >= 0 && r0 < rows {
			col := c0
			for _, ch := range t.Label() {
				if col >= c1 || col >= w {
					break
				}
				if col >= 0 {
					a.screen.SetContent(col, r0, ch, nil, style)
				}
				col++
			}
		}
	}

	if h > 0 {
		a.drawText(0, h-1, w, a.status(), statusStyle)
	}
	a.screen.Show()
}

func (a *App) status() string {
	x, y := scene.ScrollPercent(a.sv)
	inertia := "off"
	if a.sv.IsInertiaScrollEnabled() {
		inertia = "on"
	}
	s := fmt.Sprintf(" %s  x %3.0f%%  y %3.0f%%  inertia %s", a.sv.Direction(), x, y, inertia)
	if a.sv.IsAutoScrolling() {
		s += "  scrolling"
	}
	if a.events > 0 {
		s += "  " + a.last.String()
	}
	if a.loader != nil && a.loader.IsLoading() {
		s += "  " + progressBar(a.loader.Percentage(), progressWidth)
	}
	return s
}

// progressBar renders percent as a fixed-width bar.
func progressBar(percent, width int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat(".", width-filled), percent)
}

func (a *App) drawText(x, y, width int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		if col >= width {
			return
		}
		a.screen.SetContent(col, y, ch, nil, style)
		col++
	}
	for ; col < width; col++ {
		a.screen.SetContent(col, y, ' ', nil, style)
	}
}
