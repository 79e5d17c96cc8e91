package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/holidaymoo/tripsheet/internal/itinerary"
	"github.com/holidaymoo/tripsheet/internal/schedule"
)

const (
	sheetDashCalendar  = "📅 Trip Calendar"
	sheetDashAnalytics = "📊 Trip Analytics"
	sheetDashEvents    = "📋 Events Details"
	sheetDashSummary   = "📝 Trip Summary & Notes"
)

// legendOrder fixes the category order of the calendar sheet legend.
var legendOrder = []string{"dining", "sightseeing", "transport", "accommodation", "activity", "shopping"}

// buildDashboardWorkbook assembles the four dashboard sheets. Timestamps
// go through the textual policy: dates and clocks are lifted out of the
// raw strings and rounded to the half-hour grid, with no timezone math.
func buildDashboardWorkbook(f *excelize.File, cal itinerary.Calendar, trip itinerary.Trip, now time.Time) error {
	norm := schedule.TextualNormalizer{}
	dates := schedule.NewDateRange(schedule.ExtractDate(trip.StartDate), schedule.ExtractDate(trip.EndDate))
	events := cal.TripEvents(trip)

	grid := schedule.NewGrid(schedule.DashboardSlots(), dates)
	placeDashboardEvents(grid, events, norm)

	if err := buildDashboardCalendarSheet(f, trip, grid); err != nil {
		return err
	}
	if err := buildDashboardAnalyticsSheet(f, trip, events, dates, norm); err != nil {
		return err
	}
	if err := buildDashboardEventsSheet(f, events, norm); err != nil {
		return err
	}
	return buildDashboardSummarySheet(f, trip, now)
}

func buildDashboardCalendarSheet(f *excelize.File, trip itinerary.Trip, grid *schedule.Grid) error {
	w, err := newSheet(f, sheetDashCalendar)
	if err != nil {
		return err
	}
	lastCol := 1 + grid.Cols()

	titleStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: colorWhite},
		Fill:      solidFill(colorHeader),
		Alignment: centered(false),
	})
	subtitleStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Italic: true, Size: 11, Color: colorText},
		Fill:      solidFill(colorLight),
		Alignment: centered(false),
	})
	headerStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: colorWhite},
		Fill:      solidFill(colorPrimary),
		Alignment: centered(true),
		Border:    thinBorder(colorHeader),
	})
	timeStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 9, Color: colorText},
		Fill:      solidFill(colorLight),
		Alignment: centered(false),
		Border:    thinBorder("BDC3C7"),
	})
	emptyStyle := newStyle(f, &excelize.Style{
		Border: thinBorder("D5DBDB"),
	})

	w.set(1, 1, "📅 "+trip.Name+" - Trip Calendar")
	w.merge(1, 1, lastCol, 1)
	w.style(1, 1, lastCol, 1, titleStyle)
	w.rowHeight(1, 32)

	subtitle := trip.Destination
	if subtitle != "" {
		subtitle += " • "
	}
	subtitle += grid.Dates().Start().String() + " - " + grid.Dates().End().String()
	w.set(1, 2, subtitle)
	w.merge(1, 2, lastCol, 2)
	w.style(1, 2, lastCol, 2, subtitleStyle)

	const headerRow = 4
	w.setStyled(1, headerRow, "Time", headerStyle)
	for i, d := range grid.Dates().Dates() {
		w.setStyled(2+i, headerRow, d.Time().Format("Mon\nJan 2"), headerStyle)
	}
	w.rowHeight(headerRow, 34)

	originRow := headerRow + 1
	for i, label := range grid.Slots().Labels() {
		w.setStyled(1, originRow+i, label, timeStyle)
		w.rowHeight(originRow+i, 26)
	}
	w.style(2, originRow, lastCol, originRow+grid.Rows()-1, emptyStyle)

	eventStyles := make(map[string]int, len(dashboardEventColors))
	for _, color := range dashboardEventColors {
		eventStyles[color] = newStyle(f, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 9, Color: colorWhite},
			Fill:      solidFill(color),
			Alignment: centered(true),
			Border:    thinBorder(colorHeader),
		})
	}
	if err := renderPlacements(f, sheetDashCalendar, grid, originRow, 2, func(cat string) int {
		return eventStyles[eventColor(dashboardEventColors, cat)]
	}); err != nil {
		return err
	}

	legendRow := originRow + grid.Rows() + 1
	w.setStyled(1, legendRow, "Legend:", newStyle(f, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}}))
	for i, cat := range legendOrder {
		w.setStyled(2+i, legendRow, cat, eventStyles[eventColor(dashboardEventColors, cat)])
	}

	w.colWidth(1, 1, 10)
	w.colWidth(2, lastCol, 22)
	return w.Err()
}

func buildDashboardAnalyticsSheet(f *excelize.File, trip itinerary.Trip, events []itinerary.Event, dates schedule.DateRange, norm schedule.Normalizer) error {
	w, err := newSheet(f, sheetDashAnalytics)
	if err != nil {
		return err
	}
	stats := computeStats(events, trip, dates.Days())

	titleStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: colorWhite},
		Fill:      solidFill(colorHeader),
		Alignment: centered(false),
	})
	sectionStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: colorWhite},
		Fill: solidFill(colorSecondary),
	})
	labelStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10, Color: colorText},
	})
	tableHeadStyle := newStyle(f, &excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10, Color: colorWhite},
		Fill:   solidFill(colorPrimary),
		Border: thinBorder(colorHeader),
	})
	cellStyle := newStyle(f, &excelize.Style{
		Font:   &excelize.Font{Size: 10, Color: colorText},
		Border: thinBorder("D5DBDB"),
	})
	overBudgetStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10, Color: colorUnpaidText},
		Fill: solidFill(colorUnpaidFill),
	})

	w.set(1, 1, "📊 "+trip.Name+" - Trip Analytics")
	w.merge(1, 1, 4, 1)
	w.style(1, 1, 4, 1, titleStyle)
	w.rowHeight(1, 28)

	row := 3
	w.setStyled(1, row, "Overview", sectionStyle)
	w.merge(1, row, 4, row)
	row++
	remaining := stats.Budget - stats.TotalCost
	overview := []struct {
		label string
		value any
	}{
		{"Total Events", stats.TotalEvents},
		{"Trip Length (days)", dates.Days()},
		{"Total Cost", fmt.Sprintf("$%.2f", stats.TotalCost)},
		{"Budget", fmt.Sprintf("$%.2f", stats.Budget)},
		{"Remaining Budget", fmt.Sprintf("$%.2f", remaining)},
		{"Events with Location", stats.WithLocation},
		{"Prepaid Events", stats.PrepaidCount},
	}
	for _, item := range overview {
		w.setStyled(1, row, item.label, labelStyle)
		valueStyle := cellStyle
		if item.label == "Remaining Budget" && remaining < 0 {
			valueStyle = overBudgetStyle
		}
		w.setStyled(2, row, item.value, valueStyle)
		row++
	}

	row++
	w.setStyled(1, row, "Cost by Type", sectionStyle)
	w.merge(1, row, 4, row)
	row++
	for i, h := range []string{"Type", "Count", "Cost", "% of Total"} {
		w.setStyled(1+i, row, h, tableHeadStyle)
	}
	row++
	for _, label := range stats.typeLabels() {
		share := 0.0
		if stats.TotalCost > 0 {
			share = stats.CostByType[label] / stats.TotalCost * 100
		}
		w.setStyled(1, row, label, cellStyle)
		w.setStyled(2, row, stats.CountByType[label], cellStyle)
		w.setStyled(3, row, fmt.Sprintf("$%.2f", stats.CostByType[label]), cellStyle)
		w.setStyled(4, row, fmt.Sprintf("%.1f%%", share), cellStyle)
		row++
	}
	w.setStyled(1, row, "Total", labelStyle)
	w.setStyled(2, row, stats.TotalEvents, labelStyle)
	w.setStyled(3, row, fmt.Sprintf("$%.2f", stats.TotalCost), labelStyle)
	w.setStyled(4, row, "100.0%", labelStyle)
	row++

	row++
	w.setStyled(1, row, "Daily Activity", sectionStyle)
	w.merge(1, row, 4, row)
	row++
	for i, h := range []string{"Date", "Events", "Cost", ""} {
		w.setStyled(1+i, row, h, tableHeadStyle)
	}
	row++
	for _, day := range dailyActivity(events, dates, norm) {
		w.setStyled(1, row, day.Date.Time().Format("Mon, Jan 2"), cellStyle)
		w.setStyled(2, row, len(day.Events), cellStyle)
		w.setStyled(3, row, fmt.Sprintf("$%.2f", day.Cost), cellStyle)
		row++
	}

	w.colWidth(1, 1, 24)
	w.colWidth(2, 4, 14)
	return w.Err()
}

// eventsDetailColumns is the header row of the flat events sheet.
var eventsDetailColumns = []string{
	"#", "Date", "Start", "End", "Event", "Location", "Address",
	"Type", "Cost", "Payment", "Description", "Notes",
}

func buildDashboardEventsSheet(f *excelize.File, events []itinerary.Event, norm schedule.Normalizer) error {
	w, err := newSheet(f, sheetDashEvents)
	if err != nil {
		return err
	}
	lastCol := len(eventsDetailColumns)

	titleStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: colorWhite},
		Fill:      solidFill(colorHeader),
		Alignment: centered(false),
	})
	headerStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: colorWhite},
		Fill:      solidFill(colorPrimary),
		Alignment: centered(true),
		Border:    thinBorder(colorHeader),
	})
	rowStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: colorText},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorder("D5DBDB"),
	})
	altRowStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: colorText},
		Fill:      solidFill(colorLight),
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorder("D5DBDB"),
	})
	linkStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: "0563C1", Underline: "single"},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorder("D5DBDB"),
	})
	paymentStyles := map[itinerary.PaidStatus]int{
		itinerary.PaidStatusPaid: newStyle(f, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 10, Color: colorPaidText},
			Fill: solidFill(colorPaidFill), Alignment: centered(false), Border: thinBorder("D5DBDB"),
		}),
		itinerary.PaidStatusPending: newStyle(f, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 10, Color: colorPendingText},
			Fill: solidFill(colorPendingFill), Alignment: centered(false), Border: thinBorder("D5DBDB"),
		}),
		itinerary.PaidStatusUnpaid: newStyle(f, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 10, Color: colorUnpaidText},
			Fill: solidFill(colorUnpaidFill), Alignment: centered(false), Border: thinBorder("D5DBDB"),
		}),
		itinerary.PaidStatusFree: newStyle(f, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 10, Color: colorPaidText},
			Fill: solidFill(colorPaidFill), Alignment: centered(false), Border: thinBorder("D5DBDB"),
		}),
	}
	tbdStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Size: 10, Color: colorText},
		Alignment: centered(false), Border: thinBorder("D5DBDB"),
	})

	w.set(1, 1, "📋 Events Details")
	w.merge(1, 1, lastCol, 1)
	w.style(1, 1, lastCol, 1, titleStyle)
	w.rowHeight(1, 26)

	const headerRow = 2
	for i, h := range eventsDetailColumns {
		w.setStyled(1+i, headerRow, h, headerStyle)
	}

	for i, ev := range sortedByStart(events, norm) {
		row := headerRow + 1 + i
		base := rowStyle
		if i%2 == 1 {
			base = altRowStyle
		}
		start := norm.Normalize(ev.StartTime)
		end := ""
		if ev.EndTime != "" {
			end = norm.Normalize(ev.EndTime).Clock()
		}

		w.setStyled(1, row, i+1, base)
		w.setStyled(2, row, start.Date.Time().Format("01/02/2006"), base)
		w.setStyled(3, row, start.Clock(), base)
		w.setStyled(4, row, end, base)
		w.setStyled(5, row, ev.Title, base)
		if url := ev.Location.MapURL(); url != "" {
			w.setStyled(6, row, ev.Location.DisplayName(), linkStyle)
			w.hyperlink(6, row, url)
		} else {
			w.setStyled(6, row, ev.Location.DisplayName(), base)
		}
		w.setStyled(7, row, ev.Location.FullAddress(), base)
		w.setStyled(8, row, ev.TypeLabel(), base)
		w.setStyled(9, row, ev.Cost.Display(), base)
		payStyle, ok := paymentStyles[ev.Paid]
		if !ok {
			payStyle = tbdStyle
		}
		w.setStyled(10, row, string(ev.Paid), payStyle)
		w.setStyled(11, row, ev.Description, base)
		w.setStyled(12, row, ev.Notes, base)
	}

	for i, width := range []float64{5, 12, 8, 8, 28, 22, 30, 14, 10, 10, 36, 24} {
		w.colWidth(1+i, 1+i, width)
	}
	return w.Err()
}

// preTripChecklist is the boilerplate checklist printed on the summary
// sheet for travelers to tick off before departure.
var preTripChecklist = []string{
	"Passport / ID valid for the whole trip",
	"Flights and transport confirmed",
	"Accommodation bookings confirmed",
	"Travel insurance arranged",
	"Currency exchanged or cards enabled abroad",
	"Phone plan / SIM sorted",
	"Chargers and adapters packed",
	"Medication and first-aid basics packed",
	"Copies of important documents saved",
	"Home secured (mail, plants, pets)",
}

func buildDashboardSummarySheet(f *excelize.File, trip itinerary.Trip, now time.Time) error {
	w, err := newSheet(f, sheetDashSummary)
	if err != nil {
		return err
	}

	titleStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: colorWhite},
		Fill:      solidFill(colorHeader),
		Alignment: centered(false),
	})
	sectionStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: colorWhite},
		Fill: solidFill(colorAccent),
	})
	labelStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10, Color: colorText},
	})
	valueStyle := newStyle(f, &excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: colorText},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	checkStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Size: 10, Color: colorText},
	})
	footerStyle := newStyle(f, &excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 9, Color: "7F8C8D"},
	})

	w.set(1, 1, "📝 "+trip.Name+" - Trip Summary & Notes")
	w.merge(1, 1, 2, 1)
	w.style(1, 1, 2, 1, titleStyle)
	w.rowHeight(1, 28)

	start := schedule.ExtractDate(trip.StartDate)
	end := schedule.ExtractDate(trip.EndDate)
	dates := schedule.NewDateRange(start, end)

	row := 3
	w.setStyled(1, row, "Trip Information", sectionStyle)
	w.merge(1, row, 2, row)
	row++
	info := []struct{ label, value string }{
		{"Trip Name", trip.Name},
		{"Destination", trip.Destination},
		{"Dates", start.String() + " - " + end.String()},
		{"Duration", fmt.Sprintf("%d days", dates.Days())},
		{"Description", trip.Description},
	}
	for _, item := range info {
		w.setStyled(1, row, item.label, labelStyle)
		w.setStyled(2, row, item.value, valueStyle)
		row++
	}

	row++
	w.setStyled(1, row, "Pre-Trip Checklist", sectionStyle)
	w.merge(1, row, 2, row)
	row++
	for _, item := range preTripChecklist {
		w.setStyled(1, row, "☐ "+item, checkStyle)
		w.merge(1, row, 2, row)
		row++
	}

	row++
	w.setStyled(1, row, "Notes", sectionStyle)
	w.merge(1, row, 2, row)
	row++
	if trip.Notes != "" {
		w.setStyled(1, row, trip.Notes, valueStyle)
		w.merge(1, row, 2, row)
		row++
	} else {
		// Leave room to write on a printed copy.
		row += 4
	}

	row++
	w.setStyled(1, row, "Generated by Holiday Moo on "+now.Format("Jan 2, 2006 15:04"), footerStyle)
	w.merge(1, row, 2, row)

	w.colWidth(1, 1, 30)
	w.colWidth(2, 2, 60)
	return w.Err()
}
