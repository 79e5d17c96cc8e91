package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/holidaymoo/tripsheet/internal/itinerary"
	"github.com/holidaymoo/tripsheet/internal/schedule"
)

const (
	sheetCalGrid    = "Calendar"
	sheetCalEvents  = "Event List"
	sheetCalSummary = "Trip Summary"
)

// headerKeyLayouts are the accepted shapes of custom day header keys,
// e.g. "Sat Sep 13 2025".
var headerKeyLayouts = []string{"Mon Jan 02 2006", "Mon Jan 2 2006"}

// buildCalendarWorkbook assembles the three calendar sheets. Timestamps go
// through the shifted policy: strict layout parsing followed by the fixed
// eight hour display shift.
func buildCalendarWorkbook(f *excelize.File, cal itinerary.Calendar, trip itinerary.Trip, now time.Time) error {
	norm := schedule.ShiftedNormalizer{Now: func() time.Time { return now }}
	dates := schedule.NewDateRange(schedule.ExtractDate(trip.StartDate), schedule.ExtractDate(trip.EndDate))
	events := cal.TripEvents(trip)

	grid := schedule.NewGrid(schedule.FullDaySlots(), dates)
	placeCalendarEvents(grid, events, norm)

	if err := buildCalendarGridSheet(f, cal, trip, grid); err != nil {
		return err
	}
	if err := buildCalendarEventsSheet(f, events, norm); err != nil {
		return err
	}
	return buildCalendarSummarySheet(f, trip, events, dates, norm, now)
}

// customHeaders resolves the caller-supplied day header map onto calendar
// days. Keys that fit neither layout are dropped.
func customHeaders(raw map[string]itinerary.DayHeader) map[schedule.Date]itinerary.DayHeader {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[schedule.Date]itinerary.DayHeader, len(raw))
	for key, h := range raw {
		for _, layout := range headerKeyLayouts {
			if t, err := time.Parse(layout, key); err == nil {
				out[schedule.DateOf(t)] = h
				break
			}
		}
	}
	return out
}

// dayHeaderText builds one column header, folding in the custom title and
// description when the caller supplied them for that day.
func dayHeaderText(d schedule.Date, custom map[schedule.Date]itinerary.DayHeader) string {
	text := d.Time().Format("Monday") + "\n" + d.Time().Format("January 2, 2006")
	h, ok := custom[d]
	if !ok {
		return text
	}
	if h.Title != "" {
		text += "\n🎯 " + h.Title
	}
	if h.Description != "" {
		text += "\n📝 " + truncate(h.Description, 30)
	}
	return text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func buildCalendarGridSheet(f *excelize.File, cal itinerary.Calendar, trip itinerary.Trip, grid *schedule.Grid) error {
	w, err := newSheet(f, sheetCalGrid)
	if err != nil {
		return err
	}
	lastCol := 1 + grid.Cols()

	titleStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: calColorTitle},
		Alignment: centered(false),
	})
	subtitleStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Size: 11, Color: calColorSubtitle},
		Alignment: centered(false),
	})
	headerStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: colorWhite},
		Fill:      solidFill(calColorHeader),
		Alignment: centered(true),
		Border:    thinBorder(calColorBorder),
	})
	timeStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Size: 9, Color: calColorSubtitle},
		Fill:      solidFill(calColorTimeFill),
		Alignment: centered(false),
		Border:    thinBorder(calColorBorder),
	})
	emptyStyle := newStyle(f, &excelize.Style{
		Border: thinBorder(calColorBorder),
	})

	title := cal.Title
	if title == "" {
		title = trip.Name + " Calendar"
	}
	w.set(1, 1, title)
	w.merge(1, 1, lastCol, 1)
	w.style(1, 1, lastCol, 1, titleStyle)
	w.rowHeight(1, 30)

	w.set(1, 2, grid.Dates().Start().String()+" - "+grid.Dates().End().String())
	w.merge(1, 2, lastCol, 2)
	w.style(1, 2, lastCol, 2, subtitleStyle)

	custom := customHeaders(cal.CustomDayHeaders)
	const headerRow = 4
	w.setStyled(1, headerRow, "Time", headerStyle)
	for i, d := range grid.Dates().Dates() {
		w.setStyled(2+i, headerRow, dayHeaderText(d, custom), headerStyle)
	}
	w.rowHeight(headerRow, 52)

	originRow := headerRow + 1
	for i, label := range grid.Slots().Labels() {
		w.setStyled(1, originRow+i, twelveHour(label), timeStyle)
		w.rowHeight(originRow+i, 24)
	}
	w.style(2, originRow, lastCol, originRow+grid.Rows()-1, emptyStyle)

	eventStyles := make(map[string]int, len(calendarEventColors))
	for _, color := range calendarEventColors {
		eventStyles[color] = newStyle(f, &excelize.Style{
			Font:      &excelize.Font{Size: 9, Color: calColorTitle},
			Fill:      solidFill(color),
			Alignment: centered(true),
			Border:    thinBorder(calColorBorder),
		})
	}
	if err := renderPlacements(f, sheetCalGrid, grid, originRow, 2, func(cat string) int {
		return eventStyles[eventColor(calendarEventColors, cat)]
	}); err != nil {
		return err
	}

	w.colWidth(1, 1, 12)
	w.colWidth(2, lastCol, 24)
	return w.Err()
}

// eventListColumns is the header row of the calendar variant's flat list.
var eventListColumns = []string{
	"#", "Date", "Day", "Start", "End", "Duration", "Event", "Type",
	"Location", "Address", "Map", "Cost", "Payment", "Description", "Notes",
	"Contact", "Tags", "Website", "Rating", "Prepaid",
}

func buildCalendarEventsSheet(f *excelize.File, events []itinerary.Event, norm schedule.Normalizer) error {
	w, err := newSheet(f, sheetCalEvents)
	if err != nil {
		return err
	}
	headerStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: colorWhite},
		Fill:      solidFill(calColorHeader),
		Alignment: centered(true),
		Border:    thinBorder(calColorBorder),
	})
	rowStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: calColorTitle},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorder(calColorBorder),
	})
	linkStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: calColorLink, Underline: "single"},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorder(calColorBorder),
	})

	for i, h := range eventListColumns {
		w.setStyled(1+i, 1, h, headerStyle)
	}

	for i, ev := range sortedByStart(events, norm) {
		row := 2 + i
		start := norm.Normalize(ev.StartTime)
		endRaw := ev.EndTime
		if endRaw == "" {
			endRaw = ev.StartTime
		}
		end := norm.Normalize(endRaw)

		w.setStyled(1, row, i+1, rowStyle)
		w.setStyled(2, row, start.Date.String(), rowStyle)
		w.setStyled(3, row, start.Date.Time().Format("Monday"), rowStyle)
		w.setStyled(4, row, twelveHour(start.Clock()), rowStyle)
		w.setStyled(5, row, twelveHour(end.Clock()), rowStyle)
		w.setStyled(6, row, durationText(start, end), rowStyle)
		w.setStyled(7, row, ev.Title, rowStyle)
		w.setStyled(8, row, ev.TypeLabel(), rowStyle)
		w.setStyled(9, row, ev.Location.DisplayName(), rowStyle)
		w.setStyled(10, row, ev.Location.FullAddress(), rowStyle)
		if url := ev.Location.MapURL(); url != "" {
			w.setStyled(11, row, "View Map", linkStyle)
			w.hyperlink(11, row, url)
		} else {
			w.setStyled(11, row, "", rowStyle)
		}
		w.setStyled(12, row, ev.Cost.Display(), rowStyle)
		w.setStyled(13, row, string(ev.Paid), rowStyle)
		w.setStyled(14, row, ev.Description, rowStyle)
		w.setStyled(15, row, ev.Notes, rowStyle)
		w.setStyled(16, row, ev.Contact, rowStyle)
		w.setStyled(17, row, ev.Tags, rowStyle)
		if ev.Link != "" {
			w.setStyled(18, row, ev.Link, linkStyle)
			w.hyperlink(18, row, ev.Link)
		} else {
			w.setStyled(18, row, "", rowStyle)
		}
		w.setStyled(19, row, ratingText(ev.Location.Rating), rowStyle)
		w.setStyled(20, row, prepaidText(ev.Prepaid), rowStyle)
	}

	for i, width := range []float64{5, 12, 11, 10, 10, 9, 26, 12, 20, 28, 10, 10, 10, 32, 22, 15, 20, 25, 10, 10} {
		w.colWidth(1+i, 1+i, width)
	}
	return w.Err()
}

func ratingText(rating float64) string {
	if rating <= 0 {
		return ""
	}
	return fmt.Sprintf("⭐ %g", rating)
}

func prepaidText(prepaid bool) string {
	if prepaid {
		return "✅ Yes"
	}
	return "❌ No"
}

func buildCalendarSummarySheet(f *excelize.File, trip itinerary.Trip, events []itinerary.Event, dates schedule.DateRange, norm schedule.Normalizer, now time.Time) error {
	w, err := newSheet(f, sheetCalSummary)
	if err != nil {
		return err
	}
	stats := computeStats(events, trip, dates.Days())

	titleStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: calColorTitle},
	})
	sectionStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: colorWhite},
		Fill: solidFill(calColorHeader),
	})
	labelStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10, Color: calColorTitle},
	})
	valueStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: calColorTitle},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	footerStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 9, Color: calColorSubtitle},
	})

	w.set(1, 1, trip.Name+" - Trip Summary")
	w.merge(1, 1, 3, 1)
	w.style(1, 1, 3, 1, titleStyle)
	w.rowHeight(1, 26)

	row := 3
	w.setStyled(1, row, "Trip", sectionStyle)
	w.merge(1, row, 3, row)
	row++
	info := []struct{ label, value string }{
		{"Destination", trip.Destination},
		{"Dates", dates.Start().String() + " - " + dates.End().String()},
		{"Duration", fmt.Sprintf("%d days", dates.Days())},
		{"Total Events", fmt.Sprintf("%d", stats.TotalEvents)},
		{"Total Cost", fmt.Sprintf("$%.2f", stats.TotalCost)},
		{"Budget", fmt.Sprintf("$%.2f", stats.Budget)},
	}
	for _, item := range info {
		w.setStyled(1, row, item.label, labelStyle)
		w.setStyled(2, row, item.value, valueStyle)
		row++
	}

	row++
	w.setStyled(1, row, "Events by Type", sectionStyle)
	w.merge(1, row, 3, row)
	row++
	for _, label := range stats.typeLabels() {
		w.setStyled(1, row, label, labelStyle)
		w.setStyled(2, row, stats.CountByType[label], valueStyle)
		w.setStyled(3, row, fmt.Sprintf("$%.2f", stats.CostByType[label]), valueStyle)
		row++
	}

	row++
	w.setStyled(1, row, "Daily Overview", sectionStyle)
	w.merge(1, row, 3, row)
	row++
	for _, day := range dailyActivity(events, dates, norm) {
		w.setStyled(1, row, day.Date.Time().Format("Mon, Jan 2"), labelStyle)
		w.setStyled(2, row, dayOverviewText(day.Events), valueStyle)
		w.merge(2, row, 3, row)
		row++
	}

	row++
	w.setStyled(1, row, "Exported "+now.Format("Jan 2, 2006 15:04"), footerStyle)
	w.merge(1, row, 3, row)

	w.colWidth(1, 1, 18)
	w.colWidth(2, 2, 44)
	w.colWidth(3, 3, 14)
	return w.Err()
}

// dayOverviewText lists up to three event names for a day, then counts the
// rest.
func dayOverviewText(events []itinerary.Event) string {
	if len(events) == 0 {
		return "No events"
	}
	names := make([]string, 0, 3)
	for i, ev := range events {
		if i == 3 {
			names = append(names, fmt.Sprintf("... and %d more", len(events)-3))
			break
		}
		names = append(names, ev.Title)
	}
	return strings.Join(names, ", ")
}
