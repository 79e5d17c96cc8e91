package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/holidaymoo/tripsheet/internal/itinerary"
	"github.com/holidaymoo/tripsheet/internal/schedule"
)

// renderPlacements mirrors a committed grid onto a sheet. originRow and
// originCol are the 1-based spreadsheet coordinates of the grid's top-left
// cell (slot 0 on the first trip day). Cells covered by a merged span are
// cleared before merging so no stale text survives underneath the merge.
func renderPlacements(f *excelize.File, sheet string, g *schedule.Grid, originRow, originCol int, styleFor func(category string) int) error {
	for _, p := range g.Placements() {
		col := originCol + p.Col
		top := originRow + p.StartRow
		bottom := originRow + p.EndRow - 1
		topLeft := cellRef(col, top)
		if p.Merged {
			for row := top; row <= bottom; row++ {
				if err := f.SetCellValue(sheet, cellRef(col, row), ""); err != nil {
					return err
				}
			}
			if err := f.MergeCell(sheet, topLeft, cellRef(col, bottom)); err != nil {
				return fmt.Errorf("merge %s %s:%s: %w", sheet, topLeft, cellRef(col, bottom), err)
			}
		}
		if err := f.SetCellValue(sheet, topLeft, p.Block.Text); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, topLeft, cellRef(col, bottom), styleFor(p.Block.Category)); err != nil {
			return err
		}
	}
	return nil
}

// placeDashboardEvents rounds each event to the half-hour grid and commits
// it. Events without an end time occupy a single slot.
func placeDashboardEvents(g *schedule.Grid, events []itinerary.Event, norm schedule.Normalizer) {
	slots := g.Slots()
	for _, ev := range events {
		start := norm.Normalize(ev.StartTime).Rounded()
		endRaw := ev.EndTime
		if endRaw == "" {
			endRaw = ev.StartTime
		}
		end := norm.Normalize(endRaw).Rounded()
		g.PlaceSpan(schedule.EventSpan{
			Date:     start.Date,
			StartRow: slots.SlotIndex(start.Hour, start.Minute),
			EndRow:   slots.SlotIndex(end.Hour, end.Minute),
			Block: schedule.CellBlock{
				Text:     dashboardBlockText(ev),
				Category: ev.Category(),
			},
		})
	}
}

func dashboardBlockText(ev itinerary.Event) string {
	text := ev.Title
	if name := ev.Location.DisplayName(); name != "" {
		text += "\n📍 " + name
	}
	return text
}

// placeCalendarEvents floors each event onto its slot and spans it for its
// real duration, one slot per 30 minutes with a one-slot minimum.
func placeCalendarEvents(g *schedule.Grid, events []itinerary.Event, norm schedule.Normalizer) {
	slots := g.Slots()
	for _, ev := range events {
		start := norm.Normalize(ev.StartTime)
		endRaw := ev.EndTime
		if endRaw == "" {
			endRaw = ev.StartTime
		}
		end := norm.Normalize(endRaw)
		startRow := slots.FloorIndex(start.Hour, start.Minute)
		g.PlaceSpan(schedule.EventSpan{
			Date:     start.Date,
			StartRow: startRow,
			EndRow:   startRow + durationSlots(start, end),
			Block: schedule.CellBlock{
				Text:     ev.Title + "\n" + start.Clock() + "-" + end.Clock(),
				Category: ev.Category(),
			},
		})
	}
}

// durationSlots counts the half-hour slots between two normalized times,
// never fewer than one.
func durationSlots(start, end schedule.NormalizedTime) int {
	s := time.Date(start.Date.Year, start.Date.Month, start.Date.Day, start.Hour, start.Minute, 0, 0, time.UTC)
	e := time.Date(end.Date.Year, end.Date.Month, end.Date.Day, end.Hour, end.Minute, 0, 0, time.UTC)
	mins := int(e.Sub(s).Minutes())
	if mins < 30 {
		return 1
	}
	return mins / 30
}

// sortedByStart returns the events ordered by their normalized start time,
// with the original order preserved for equal keys.
func sortedByStart(events []itinerary.Event, norm schedule.Normalizer) []itinerary.Event {
	keys := make([]string, len(events))
	order := make([]int, len(events))
	for i, ev := range events {
		keys[i] = norm.Normalize(ev.StartTime).SortKey()
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return keys[order[i]] < keys[order[j]] })
	out := make([]itinerary.Event, len(events))
	for i, idx := range order {
		out[i] = events[idx]
	}
	return out
}

// twelveHour converts a 24-hour "HH:MM" label into "h:MM AM/PM" form.
func twelveHour(label string) string {
	t, err := time.Parse("15:04", label)
	if err != nil {
		return label
	}
	return strings.ToUpper(t.Format("3:04 PM"))
}

// durationText renders a span such as "2h 30m" from two normalized times.
func durationText(start, end schedule.NormalizedTime) string {
	s := time.Date(start.Date.Year, start.Date.Month, start.Date.Day, start.Hour, start.Minute, 0, 0, time.UTC)
	e := time.Date(end.Date.Year, end.Date.Month, end.Date.Day, end.Hour, end.Minute, 0, 0, time.UTC)
	mins := int(e.Sub(s).Minutes())
	if mins <= 0 {
		return "30m"
	}
	h, m := mins/60, mins%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
