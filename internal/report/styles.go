// Package report renders an itinerary into a multi-sheet XLSX workbook.
// Two report variants exist, each pairing a sheet layout with one of the
// two timestamp policies from the schedule package.
package report

import "github.com/xuri/excelize/v2"

// Dashboard variant palette.
const (
	colorHeader    = "2E4057"
	colorPrimary   = "3498DB"
	colorSecondary = "2ECC71"
	colorAccent    = "E67E22"
	colorLight     = "ECF0F1"
	colorWhite     = "FFFFFF"
	colorText      = "2C3E50"

	colorPaidFill    = "C6EFCE"
	colorPaidText    = "006100"
	colorPendingFill = "FFEB9C"
	colorPendingText = "9C5700"
	colorUnpaidFill = "FFC7CE"
	colorUnpaidText = "9C0006"
)

// Calendar variant palette.
const (
	calColorTitle    = "1F2937"
	calColorSubtitle = "6B7280"
	calColorHeader   = "3B82F6"
	calColorTimeFill = "F9FAFB"
	calColorBorder   = "E5E7EB"
	calColorLink     = "2563EB"
)

// dashboardEventColors maps event categories to their solid block color on
// the dashboard calendar sheet.
var dashboardEventColors = map[string]string{
	"dining":        "E67E22",
	"sightseeing":   "3498DB",
	"transport":     "9B59B6",
	"accommodation": "2ECC71",
	"activity":      "F39C12",
	"shopping":      "E91E63",
	"default":       "95A5A6",
}

// calendarEventColors maps event categories to their pastel block color on
// the calendar variant sheet.
var calendarEventColors = map[string]string{
	"meeting":     "E6F2FF",
	"appointment": "E6F7E6",
	"task":        "FFF2E6",
	"personal":    "F2E6FF",
	"travel":      "FFE6E6",
	"break":       "F5F5F5",
	"event":       "FFE6F2",
	"deadline":    "FFE6E6",
	"default":     "F0F8FF",
}

func eventColor(colors map[string]string, category string) string {
	if c, ok := colors[category]; ok {
		return c
	}
	return colors["default"]
}

// newStyle registers a style and returns its ID. The styles built here are
// static literals, so registration cannot fail at runtime.
func newStyle(f *excelize.File, st *excelize.Style) int {
	id, _ := f.NewStyle(st)
	return id
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func centered(wrap bool) *excelize.Alignment {
	return &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: wrap}
}

func thinBorder(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}

// cellRef converts 1-based coordinates to an A1 reference. Builders only
// pass validated positive coordinates.
func cellRef(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// colName returns the spreadsheet column letter for a 1-based column.
func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
