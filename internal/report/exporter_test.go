package report

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/holidaymoo/tripsheet/internal/itinerary"
)

func testExporter() *Exporter {
	return NewExporter(ExporterConfig{
		Logger: zerolog.New(io.Discard),
		Now: func() time.Time {
			return time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
		},
	})
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func hasMerge(t *testing.T, f *excelize.File, sheet, start, end string) bool {
	t.Helper()
	merges, err := f.GetMergeCells(sheet)
	require.NoError(t, err)
	for _, m := range merges {
		if m.GetStartAxis() == start && m.GetEndAxis() == end {
			return true
		}
	}
	return false
}

func TestExport_Dashboard(t *testing.T) {
	trip := itinerary.Trip{
		Name:        "Tokyo Adventure",
		Destination: "Tokyo, Japan",
		StartDate:   "2025-09-13",
		EndDate:     "2025-09-14",
	}
	cal := itinerary.Calendar{
		Events: []itinerary.Event{
			{Title: "Breakfast", Type: "dining", StartTime: "2025-09-13T07:00:00", EndTime: "2025-09-13T08:00:00", Cost: itinerary.CostOf(15)},
			{Title: "Museum", Type: "sightseeing", StartTime: "2025-09-14T10:00:00", EndTime: "2025-09-14T12:00:00", Cost: itinerary.CostOf(24)},
			{Title: "Undated idea"},
		},
	}

	res, err := testExporter().Export(context.Background(), cal, trip, VariantDashboard)
	require.NoError(t, err)
	assert.Equal(t, "HolidayMoo_Tokyo_Adventure_20250920_100000.xlsx", res.Filename)
	require.NotEmpty(t, res.Data)

	f := openWorkbook(t, res.Data)
	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{sheetDashCalendar, sheetDashAnalytics, sheetDashEvents, sheetDashSummary}, sheets)

	// Grid starts at row 5 with 06:00; a 07:00 event on the first trip
	// day lands two slots down in column B and spans two rows.
	v, err := f.GetCellValue(sheetDashCalendar, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Time", v)
	v, err = f.GetCellValue(sheetDashCalendar, "B7")
	require.NoError(t, err)
	assert.Contains(t, v, "Breakfast")
	assert.True(t, hasMerge(t, f, sheetDashCalendar, "B7", "B8"))

	// Second trip day goes to column C: 10:00 is eight slots down.
	v, err = f.GetCellValue(sheetDashCalendar, "C13")
	require.NoError(t, err)
	assert.Contains(t, v, "Museum")

	// Events sheet lists every event sorted by start; the undated one
	// falls back to the default date and sorts first.
	v, err = f.GetCellValue(sheetDashEvents, "E3")
	require.NoError(t, err)
	assert.Equal(t, "Undated idea", v)
	v, err = f.GetCellValue(sheetDashEvents, "E4")
	require.NoError(t, err)
	assert.Equal(t, "Breakfast", v)
	v, err = f.GetCellValue(sheetDashEvents, "B4")
	require.NoError(t, err)
	assert.Equal(t, "09/13/2025", v)
}

func TestExport_Calendar(t *testing.T) {
	trip := itinerary.Trip{
		ID:        "trip-1",
		Name:      "Tokyo",
		StartDate: "2025-09-13",
		EndDate:   "2025-09-14",
	}
	cal := itinerary.Calendar{
		Title: "My Moo Calendar",
		Events: []itinerary.Event{
			// Parsed strictly with the zone designator dropped, then
			// shifted eight hours for display.
			{
				TripID: "trip-1", Title: "Dinner", Type: "meeting",
				StartTime: "2025-09-13T14:00:00+08:00", EndTime: "2025-09-13T15:00:00+08:00",
				Contact: "Chef Sato", Tags: "food, omakase", Link: "https://example.com/sushi",
			},
			{TripID: "other-trip", Title: "Foreign event", StartTime: "2025-09-13T10:00:00Z"},
		},
		CustomDayHeaders: map[string]itinerary.DayHeader{
			"Sat Sep 13 2025": {Title: "Arrival"},
		},
	}

	res, err := testExporter().Export(context.Background(), cal, trip, VariantCalendar)
	require.NoError(t, err)
	assert.Equal(t, "My_Moo_Calendar_Tokyo_20250913-20250914.xlsx", res.Filename)

	f := openWorkbook(t, res.Data)
	assert.ElementsMatch(t, []string{sheetCalGrid, sheetCalEvents, sheetCalSummary}, f.GetSheetList())

	// Full day grid: row 5 is midnight, in 12-hour form.
	v, err := f.GetCellValue(sheetCalGrid, "A5")
	require.NoError(t, err)
	assert.Equal(t, "12:00 AM", v)

	// 14:00Z shifts to 22:00, slot 44, so row 49; one hour spans two
	// slots.
	v, err = f.GetCellValue(sheetCalGrid, "B49")
	require.NoError(t, err)
	assert.Contains(t, v, "Dinner")
	assert.Contains(t, v, "22:00-23:00")
	assert.True(t, hasMerge(t, f, sheetCalGrid, "B49", "B50"))

	// The custom day header decorates the first column.
	v, err = f.GetCellValue(sheetCalGrid, "B4")
	require.NoError(t, err)
	assert.Contains(t, v, "🎯 Arrival")

	// Events from other trips are filtered out everywhere.
	rows, err := f.GetRows(sheetCalEvents)
	require.NoError(t, err)
	for _, row := range rows {
		for _, cell := range row {
			assert.NotContains(t, cell, "Foreign event")
		}
	}
	v, err = f.GetCellValue(sheetCalEvents, "G2")
	require.NoError(t, err)
	assert.Equal(t, "Dinner", v)

	// Contact, tags, website and prepaid round the list out.
	v, err = f.GetCellValue(sheetCalEvents, "P2")
	require.NoError(t, err)
	assert.Equal(t, "Chef Sato", v)
	v, err = f.GetCellValue(sheetCalEvents, "Q2")
	require.NoError(t, err)
	assert.Equal(t, "food, omakase", v)
	v, err = f.GetCellValue(sheetCalEvents, "R2")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/sushi", v)
	v, err = f.GetCellValue(sheetCalEvents, "T2")
	require.NoError(t, err)
	assert.Equal(t, "❌ No", v)
}

func TestExport_UnknownVariant(t *testing.T) {
	_, err := testExporter().Export(context.Background(), itinerary.Calendar{}, itinerary.Trip{}, Variant("pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export variant")
}

func TestExport_ConflictKeepsFirstEvent(t *testing.T) {
	trip := itinerary.Trip{Name: "Tokyo", StartDate: "2025-09-13", EndDate: "2025-09-13"}
	cal := itinerary.Calendar{
		Events: []itinerary.Event{
			{Title: "Long lunch", StartTime: "2025-09-13T12:00:00", EndTime: "2025-09-13T14:00:00"},
			{Title: "Walk", StartTime: "2025-09-13T11:00:00", EndTime: "2025-09-13T13:00:00"},
		},
	}

	res, err := testExporter().Export(context.Background(), cal, trip, VariantDashboard)
	require.NoError(t, err)

	f := openWorkbook(t, res.Data)
	// 12:00 is slot 12, row 17; the lunch block keeps its merged span.
	// The walk starts on a free row but would run into it, so it
	// degrades to its single start cell at 11:00 (row 15).
	v, err := f.GetCellValue(sheetDashCalendar, "B17")
	require.NoError(t, err)
	assert.Contains(t, v, "Long lunch")
	assert.True(t, hasMerge(t, f, sheetDashCalendar, "B17", "B20"))
	v, err = f.GetCellValue(sheetDashCalendar, "B15")
	require.NoError(t, err)
	assert.Contains(t, v, "Walk")
	assert.False(t, hasMerge(t, f, sheetDashCalendar, "B15", "B16"))
}

func TestNewExporter_RegistersMetrics(t *testing.T) {
	e := NewExporter(ExporterConfig{Logger: zerolog.New(io.Discard)})
	require.NotNil(t, e.metrics)
	assert.NotNil(t, e.metrics.exportTotal)
	assert.NotNil(t, e.metrics.exportDuration)
	assert.NotNil(t, e.metrics.workbookSize)
}
