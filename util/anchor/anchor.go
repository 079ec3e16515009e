package anchor

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"atomicgo.dev/cursor"
	"github.com/fatih/color"
)

const (
	Red = iota
	Green
	Yellow
	Blue
	Magenta
	Cyan
)

var palette = map[int]color.Attribute{
	Red:     color.FgRed,
	Green:   color.FgGreen,
	Yellow:  color.FgYellow,
	Blue:    color.FgBlue,
	Magenta: color.FgMagenta,
	Cyan:    color.FgCyan,
}

// Window is a terminal area made of a scrolling log
// and a block of anchored status lines ("lots") kept
// at its bottom, one per pipeline stage
type Window struct {
	sync.Mutex
	color   *color.Color
	output  io.Writer
	redraw  bool
	lots    []*Lot
	drawn   int
	history []string
}

// Lot is a named status line anchored to the window
type Lot struct {
	window *Window
	name   string
	text   string
	closed bool
}

func New(anchorColor int) *Window {
	attribute, ok := palette[anchorColor]
	if !ok {
		attribute = color.FgRed
	}
	return &Window{
		color:  color.New(attribute, color.Bold),
		output: color.Output,
		redraw: !color.NoColor,
	}
}

// Quiet returns a window which writes to the given writer
// without any cursor movement
func Quiet(output io.Writer) *Window {
	window := New(Red)
	window.output = output
	window.redraw = false
	return window
}

// History returns the lines printed so far
func (window *Window) History() []string {
	window.Lock()
	defer window.Unlock()
	return append([]string{}, window.history...)
}

func (window *Window) Lot(name string) *Lot {
	window.Lock()
	defer window.Unlock()
	for _, lot := range window.lots {
		if lot.name == name {
			return lot
		}
	}
	lot := &Lot{window: window, name: name}
	window.lots = append(window.lots, lot)
	return lot
}

func (window *Window) Printf(format string, args ...interface{}) {
	window.print(fmt.Sprintf(format, args...), false)
}

// AnchorPrintf prints an highlighted line, usually for failures
func (window *Window) AnchorPrintf(format string, args ...interface{}) {
	window.print(fmt.Sprintf(format, args...), true)
}

// Write prints every line of p, so that the window
// can back a log.Logger
func (window *Window) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		window.print(line, false)
	}
	return len(p), nil
}

func (window *Window) print(line string, highlight bool) {
	window.Lock()
	defer window.Unlock()
	window.history = append(window.history, line)
	window.wipe()
	if highlight {
		line = window.color.Sprint(line)
	}
	fmt.Fprintln(window.output, line)
	window.draw()
}

// wipe clears the lots block; must be called with the lock held
func (window *Window) wipe() {
	if !window.redraw {
		return
	}
	for ; window.drawn > 0; window.drawn-- {
		cursor.Up(1)
		cursor.ClearLine()
		cursor.StartOfLine()
	}
}

// draw renders the open lots; must be called with the lock held
func (window *Window) draw() {
	if !window.redraw {
		return
	}
	for _, lot := range window.lots {
		if lot.closed || len(lot.text) == 0 {
			continue
		}
		fmt.Fprintf(window.output, "%s %s\n", window.color.Sprintf("%-10s", lot.name), lot.text)
		window.drawn++
	}
}

func (lot *Lot) Printf(format string, args ...interface{}) {
	lot.Print(fmt.Sprintf(format, args...))
}

func (lot *Lot) Print(text string) {
	lot.window.Lock()
	defer lot.window.Unlock()
	lot.window.wipe()
	lot.text = text
	lot.closed = false
	lot.window.draw()
}

// Wipe clears the lot text, keeping it open
func (lot *Lot) Wipe() {
	lot.Print("")
}

// Close marks the lot as done, printing its final summary
func (lot *Lot) Close(summary ...string) {
	lot.window.Lock()
	lot.window.wipe()
	lot.closed = true
	lot.text = ""
	lot.window.draw()
	lot.window.Unlock()

	line := lot.name + " done"
	if len(summary) > 0 {
		line += " (" + strings.Join(summary, ", ") + ")"
	}
	lot.window.Printf("%s", line)
}
