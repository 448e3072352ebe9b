package picker_test

import (
	"testing"
	"time"

	"github.com/minhphat/retail-crm-go/internal/picker"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)
}

func TestDayGrid_March2024(t *testing.T) {
	p := picker.New(picker.ModeDay, "15-03-2024", fixedNow)

	cells := p.DayGrid()
	// March 2024 starts on a Friday: 4 leading cells from February plus 31
	// days fills exactly 5 weeks.
	if len(cells) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(cells))
	}

	first := cells[0]
	if first.Date.Day() != 26 || first.Date.Month() != time.February {
		t.Errorf("expected first cell Feb 26, got %v", first.Date)
	}
	if first.Date.Weekday() != time.Monday {
		t.Errorf("expected grid to start on Monday, got %v", first.Date.Weekday())
	}
	if first.InMonth {
		t.Error("expected leading padding cell flagged out of month")
	}

	last := cells[len(cells)-1]
	if last.Date.Day() != 31 || last.Date.Month() != time.March {
		t.Errorf("expected last cell Mar 31, got %v", last.Date)
	}
	if !last.InMonth {
		t.Error("expected Mar 31 flagged in month")
	}
}

func TestDayGrid_AlwaysWholeWeeks(t *testing.T) {
	anchors := []string{"01-01-2024", "01-02-2024", "01-06-2024", "01-09-2024", "01-12-2024"}
	for _, a := range anchors {
		p := picker.New(picker.ModeDay, a, fixedNow)
		if n := len(p.DayGrid()); n%7 != 0 {
			t.Errorf("anchor %s: grid size %d not a multiple of 7", a, n)
		}
	}
}

func TestMonthGrid(t *testing.T) {
	p := picker.New(picker.ModeMonth, "01-06-2024", fixedNow)

	months := p.MonthGrid()
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}
	if months[0] != time.January || months[11] != time.December {
		t.Errorf("unexpected month order: %v", months)
	}
}

func TestYearGrid_WindowAlignment(t *testing.T) {
	p := picker.New(picker.ModeYear, "01-01-2024", fixedNow)

	years := p.YearGrid()
	if len(years) != 12 {
		t.Fatalf("expected 12 years, got %d", len(years))
	}
	// 2024 falls in the window starting at floor(2024/12)*12 = 2016.
	if years[0] != 2016 || years[11] != 2027 {
		t.Errorf("expected 2016..2027 window, got %d..%d", years[0], years[11])
	}
}

func TestStep_DayMode(t *testing.T) {
	p := picker.New(picker.ModeDay, "15-03-2024", fixedNow)
	p.Open()

	p.Next()
	if v := p.View(); v.Month() != time.April {
		t.Errorf("expected view in April, got %v", v.Month())
	}
	p.Prev()
	p.Prev()
	if v := p.View(); v.Month() != time.February {
		t.Errorf("expected view in February, got %v", v.Month())
	}
}

func TestStep_YearMode_MovesWindow(t *testing.T) {
	p := picker.New(picker.ModeYear, "01-01-2024", fixedNow)
	p.Open()

	p.Next()
	years := p.YearGrid()
	if years[0] != 2028 {
		t.Errorf("expected next window to start at 2028, got %d", years[0])
	}
}

func TestLabels(t *testing.T) {
	day := picker.New(picker.ModeDay, "15-03-2024", fixedNow)
	if got := day.Label(); got != "March 2024" {
		t.Errorf("day label: got %q", got)
	}

	month := picker.New(picker.ModeMonth, "01-06-2024", fixedNow)
	if got := month.Label(); got != "2024" {
		t.Errorf("month label: got %q", got)
	}

	year := picker.New(picker.ModeYear, "01-01-2024", fixedNow)
	if got := year.Label(); got != "2016–2027" {
		t.Errorf("year label: got %q", got)
	}
}

func TestTriggerLabel(t *testing.T) {
	empty := picker.New(picker.ModeDay, "", fixedNow)
	if got := empty.TriggerLabel(); got != "Select..." {
		t.Errorf("empty trigger label: got %q", got)
	}

	day := picker.New(picker.ModeDay, "15-03-2024", fixedNow)
	if got := day.TriggerLabel(); got != "15-03-2024" {
		t.Errorf("day trigger label: got %q", got)
	}

	month := picker.New(picker.ModeMonth, "01-06-2024", fixedNow)
	if got := month.TriggerLabel(); got != "June 2024" {
		t.Errorf("month trigger label: got %q", got)
	}
}

func TestSelections_CommitAndClose(t *testing.T) {
	p := picker.New(picker.ModeDay, "", fixedNow)
	p.Open()

	got := p.SelectDay(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local))
	if got != "05-03-2024" {
		t.Errorf("expected 05-03-2024, got %q", got)
	}
	if p.IsOpen() {
		t.Error("expected picker closed after selection")
	}

	pm := picker.New(picker.ModeMonth, "", fixedNow)
	pm.Open()
	if got := pm.SelectMonth(time.June); got != "01-06-2024" {
		t.Errorf("expected 01-06-2024, got %q", got)
	}

	py := picker.New(picker.ModeYear, "", fixedNow)
	py.Open()
	if got := py.SelectYear(2022); got != "01-01-2022" {
		t.Errorf("expected 01-01-2022, got %q", got)
	}
}

func TestPresets(t *testing.T) {
	p := picker.New(picker.ModeDay, "", fixedNow)
	if got := p.PresetToday(); got != "10-03-2024" {
		t.Errorf("PresetToday: got %q", got)
	}
	if got := p.PresetThisMonth(); got != "01-03-2024" {
		t.Errorf("PresetThisMonth: got %q", got)
	}
	if got := p.PresetThisYear(); got != "01-01-2024" {
		t.Errorf("PresetThisYear: got %q", got)
	}
}

func TestClear(t *testing.T) {
	p := picker.New(picker.ModeDay, "15-03-2024", fixedNow)
	p.Open()

	if got := p.Clear(); got != "" {
		t.Errorf("expected empty value, got %q", got)
	}
	if p.IsOpen() {
		t.Error("expected picker closed after clear")
	}
}

func TestKeyboard(t *testing.T) {
	p := picker.New(picker.ModeDay, "15-03-2024", fixedNow)

	// Enter opens a closed picker.
	p.HandleKey(picker.KeyEnter)
	if !p.IsOpen() {
		t.Fatal("expected Enter to open")
	}

	// Arrows page the view while open.
	p.HandleKey(picker.KeyArrowRight)
	if p.View().Month() != time.April {
		t.Errorf("expected ArrowRight to advance view, got %v", p.View().Month())
	}
	p.HandleKey(picker.KeyArrowLeft)
	if p.View().Month() != time.March {
		t.Errorf("expected ArrowLeft to rewind view, got %v", p.View().Month())
	}

	// Escape closes without committing.
	p.HandleKey(picker.KeyEscape)
	if p.IsOpen() {
		t.Error("expected Escape to close")
	}
	if p.Value() != "15-03-2024" {
		t.Errorf("expected committed value untouched, got %q", p.Value())
	}
}

func TestOutsideClick(t *testing.T) {
	p := picker.New(picker.ModeDay, "15-03-2024", fixedNow)
	p.Open()
	p.Next()

	p.OutsideClick()
	if p.IsOpen() {
		t.Fatal("expected outside click to close")
	}

	// Reopening resets the view to the committed value.
	p.Open()
	if p.View().Month() != time.March {
		t.Errorf("expected view reset to committed month, got %v", p.View().Month())
	}
}

func TestInvalidValueViewsNow(t *testing.T) {
	p := picker.New(picker.ModeDay, "99-99-9999", fixedNow)
	if v := p.View(); v.Month() != time.March || v.Year() != 2024 {
		t.Errorf("expected view anchored to now, got %v", v)
	}
}
