// Package picker implements the calendar / date-range picker as a plain
// state machine. It owns no domain data: interactions commit a formatted
// dd-mm-yyyy anchor string and nothing else, so any rendering surface can
// drive it.
package picker

import (
	"fmt"
	"strconv"
	"time"

	"github.com/minhphat/retail-crm-go/internal/dateutil"
)

// Mode selects which grid the picker renders and which granularity a
// selection commits.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// ParseMode validates a picker mode from the outside world.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDay, ModeMonth, ModeYear:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid picker mode %q", s)
}

// Key is a keyboard interaction forwarded to the picker.
type Key int

const (
	KeyEnter Key = iota
	KeyEscape
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
)

// Cell is one slot of the day grid. Dates outside the view month pad the
// grid to whole weeks and are flagged InMonth=false.
type Cell struct {
	Date    time.Time
	InMonth bool
}

// Picker holds the widget state: the committed value, the open/closed state
// and, while open, a view anchor independent of the committed value.
type Picker struct {
	mode  Mode
	value string // committed anchor, "" when cleared
	open  bool
	view  time.Time
	now   func() time.Time
}

// New creates a picker for the given mode, seeded with a committed value
// (may be empty). The now function is injectable for tests; pass nil for
// time.Now.
func New(mode Mode, value string, now func() time.Time) *Picker {
	if now == nil {
		now = time.Now
	}
	p := &Picker{mode: mode, value: value, now: now}
	p.view = p.anchorView()
	return p
}

// anchorView derives the rendered view from the committed value, truncated
// to the mode's granularity. An empty or unparseable value views "now".
func (p *Picker) anchorView() time.Time {
	t, err := dateutil.ParseDMY(p.value)
	if err != nil {
		t = p.now()
	}
	switch p.mode {
	case ModeMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	case ModeYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.Local)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	}
}

// Value returns the committed anchor string.
func (p *Picker) Value() string { return p.value }

// IsOpen reports whether the popover is open.
func (p *Picker) IsOpen() bool { return p.open }

// View returns the current view anchor (exposed for rendering and tests).
func (p *Picker) View() time.Time { return p.view }

// Open opens the popover and resets the view to the committed value.
func (p *Picker) Open() {
	p.view = p.anchorView()
	p.open = true
}

// Close closes the popover without committing. The view anchor is discarded:
// the next Open re-derives it from the committed value.
func (p *Picker) Close() { p.open = false }

// Toggle flips the popover, as the trigger button does.
func (p *Picker) Toggle() {
	if p.open {
		p.Close()
	} else {
		p.Open()
	}
}

// OutsideClick closes the popover; pointer interaction outside the widget
// never commits.
func (p *Picker) OutsideClick() { p.open = false }

// HandleKey feeds a keyboard event through the state machine: navigation
// keys open a closed picker, Escape closes an open one, arrows move the view
// while open.
func (p *Picker) HandleKey(k Key) {
	if !p.open {
		switch k {
		case KeyEnter, KeyArrowUp, KeyArrowDown:
			p.Open()
		}
		return
	}
	switch k {
	case KeyEscape:
		p.Close()
	case KeyArrowLeft:
		p.Prev()
	case KeyArrowRight:
		p.Next()
	}
}

// Prev moves the view back one step: a month, a year, or a 12-year window.
// It never commits a selection.
func (p *Picker) Prev() { p.step(-1) }

// Next moves the view forward one step.
func (p *Picker) Next() { p.step(1) }

func (p *Picker) step(dir int) {
	y, m := p.view.Year(), p.view.Month()
	switch p.mode {
	case ModeDay:
		p.view = time.Date(y, m+time.Month(dir), 1, 0, 0, 0, 0, time.Local)
	case ModeMonth:
		p.view = time.Date(y+dir, m, 1, 0, 0, 0, 0, time.Local)
	case ModeYear:
		p.view = time.Date(y+12*dir, m, 1, 0, 0, 0, 0, time.Local)
	}
}

// Label is the popover header: month+year, year, or the 12-year window.
func (p *Picker) Label() string {
	y := p.view.Year()
	switch p.mode {
	case ModeDay:
		return p.view.Format("January 2006")
	case ModeMonth:
		return strconv.Itoa(y)
	default:
		start := yearWindowStart(y)
		return fmt.Sprintf("%d–%d", start, start+11)
	}
}

// TriggerLabel is the text shown on the trigger button for the committed
// value.
func (p *Picker) TriggerLabel() string {
	if p.value == "" {
		return "Select..."
	}
	t, err := dateutil.ParseDMY(p.value)
	if err != nil {
		return p.value
	}
	switch p.mode {
	case ModeMonth:
		return t.Format("January 2006")
	case ModeYear:
		return strconv.Itoa(t.Year())
	default:
		return p.value
	}
}

// ============================================================
// Grids
// ============================================================

// DayGrid generates the calendar for the view month: Monday-first weeks,
// padded with leading/trailing days of adjacent months so the cell count is
// always a multiple of 7.
func (p *Picker) DayGrid() []Cell {
	y, m := p.view.Year(), p.view.Month()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.Local)
	startWeekday := (int(first.Weekday()) + 6) % 7 // Monday = 0
	daysInMonth := time.Date(y, m+1, 0, 0, 0, 0, 0, time.Local).Day()
	totalCells := (startWeekday + daysInMonth + 6) / 7 * 7

	cells := make([]Cell, 0, totalCells)
	for i := 0; i < totalCells; i++ {
		d := time.Date(y, m, i-startWeekday+1, 0, 0, 0, 0, time.Local)
		cells = append(cells, Cell{Date: d, InMonth: d.Month() == m})
	}
	return cells
}

// MonthGrid returns the twelve months of the view year.
func (p *Picker) MonthGrid() []time.Month {
	months := make([]time.Month, 12)
	for i := range months {
		months[i] = time.Month(i + 1)
	}
	return months
}

// YearGrid returns the 12 consecutive years of the window containing the
// view year. Windows align to 12-year boundaries so prev/next keep the grid
// stable.
func (p *Picker) YearGrid() []int {
	start := yearWindowStart(p.view.Year())
	years := make([]int, 12)
	for i := range years {
		years[i] = start + i
	}
	return years
}

func yearWindowStart(y int) int {
	start := y / 12 * 12
	if y < 0 && y%12 != 0 {
		start -= 12
	}
	return start
}

// ============================================================
// Selection & presets: each commits a value and closes
// ============================================================

// SelectDay commits the given day and closes.
func (p *Picker) SelectDay(d time.Time) string {
	return p.commit(dateutil.AnchorDay(d), d)
}

// SelectMonth commits the given month of the view year and closes.
func (p *Picker) SelectMonth(m time.Month) string {
	d := time.Date(p.view.Year(), m, 1, 0, 0, 0, 0, time.Local)
	return p.commit(dateutil.AnchorMonth(d), d)
}

// SelectYear commits the given year and closes.
func (p *Picker) SelectYear(y int) string {
	d := time.Date(y, time.January, 1, 0, 0, 0, 0, time.Local)
	return p.commit(dateutil.AnchorYear(d), d)
}

// PresetToday commits today at the mode's granularity and closes.
func (p *Picker) PresetToday() string {
	t := p.now()
	switch p.mode {
	case ModeMonth:
		return p.commit(dateutil.AnchorMonth(t), t)
	case ModeYear:
		return p.commit(dateutil.AnchorYear(t), t)
	default:
		return p.commit(dateutil.AnchorDay(t), t)
	}
}

// PresetThisMonth commits the current month and closes.
func (p *Picker) PresetThisMonth() string {
	t := p.now()
	return p.commit(dateutil.AnchorMonth(t), t)
}

// PresetThisYear commits the current year and closes.
func (p *Picker) PresetThisYear() string {
	t := p.now()
	return p.commit(dateutil.AnchorYear(t), t)
}

// Clear commits the empty value and closes.
func (p *Picker) Clear() string {
	p.value = ""
	p.open = false
	return p.value
}

func (p *Picker) commit(value string, view time.Time) string {
	p.value = value
	p.view = time.Date(view.Year(), view.Month(), view.Day(), 0, 0, 0, 0, time.Local)
	p.open = false
	return p.value
}
