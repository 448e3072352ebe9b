package handler

import (
	"net/http"
	"strconv"

	"github.com/minhphat/retail-crm-go/internal/dateutil"
	"github.com/minhphat/retail-crm-go/internal/picker"

	"go.uber.org/zap"
)

// ============================================================
// Calendar Handler
// ============================================================

type calendarCell struct {
	Date    string `json:"date"`
	InMonth bool   `json:"in_month"`
}

type calendarResponse struct {
	Mode         string           `json:"mode"`
	Value        string           `json:"value"`
	Label        string           `json:"label"`
	TriggerLabel string           `json:"trigger_label"`
	Cells        []calendarCell   `json:"cells,omitempty"`
	Months       []int            `json:"months,omitempty"`
	Years        []int            `json:"years,omitempty"`
	Panel        *picker.Position `json:"panel,omitempty"`
}

// calendarHandler renders the picker grid for a mode and committed value:
// the day grid for the value's month, the twelve months of its year, or its
// 12-year window. When the trigger box and viewport are supplied the panel
// position is computed as well.
func calendarHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/calendar")
		defer span.End()

		q := r.URL.Query()
		modeRaw := q.Get("mode")
		if modeRaw == "" {
			modeRaw = string(picker.ModeDay)
		}
		mode, err := picker.ParseMode(modeRaw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		p := picker.New(mode, q.Get("value"), nil)
		p.Open()

		// ?steps=N pages the view forward (or back when negative) from the
		// committed value, e.g. the prev/next arrows.
		steps := intParam(q.Get("steps"))
		for ; steps > 0; steps-- {
			p.Next()
		}
		for ; steps < 0; steps++ {
			p.Prev()
		}

		resp := calendarResponse{
			Mode:         string(mode),
			Value:        p.Value(),
			Label:        p.Label(),
			TriggerLabel: p.TriggerLabel(),
		}

		switch mode {
		case picker.ModeDay:
			for _, c := range p.DayGrid() {
				resp.Cells = append(resp.Cells, calendarCell{
					Date:    dateutil.FormatDMY(c.Date),
					InMonth: c.InMonth,
				})
			}
		case picker.ModeMonth:
			for _, m := range p.MonthGrid() {
				resp.Months = append(resp.Months, int(m))
			}
		case picker.ModeYear:
			resp.Years = p.YearGrid()
		}

		if q.Get("viewport_width") != "" {
			trigger := picker.Rect{
				Left:   intParam(q.Get("trigger_left")),
				Top:    intParam(q.Get("trigger_top")),
				Right:  intParam(q.Get("trigger_right")),
				Bottom: intParam(q.Get("trigger_bottom")),
			}
			vp := picker.Viewport{
				Width:  intParam(q.Get("viewport_width")),
				Height: intParam(q.Get("viewport_height")),
			}
			pos := picker.Place(trigger, vp)
			resp.Panel = &pos
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func intParam(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
