package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/holidaymoo/tripsheet/internal/schedule"
)

var filenameUnsafe = regexp.MustCompile(`[^A-Za-z0-9 _-]+`)

// sanitizeFilename strips characters that are unsafe in a filename and
// replaces the remaining spaces with underscores.
func sanitizeFilename(s string) string {
	s = filenameUnsafe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, " ", "_")
}

// dashboardFilename names a dashboard workbook after the trip and the
// moment of export: HolidayMoo_<trip>_<YYYYMMDD_HHMMSS>.xlsx.
func dashboardFilename(tripName string, now time.Time) string {
	name := sanitizeFilename(tripName)
	if name == "" {
		name = "Trip"
	}
	return fmt.Sprintf("HolidayMoo_%s_%s.xlsx", name, now.Format("20060102_150405"))
}

// calendarFilename names a calendar workbook after the calendar title, the
// trip and its date range: <title>_<trip>_<YYYYMMDD>-<YYYYMMDD>.xlsx.
func calendarFilename(calTitle, tripName string, start, end schedule.Date) string {
	title := sanitizeFilename(calTitle)
	if title == "" {
		title = "Calendar"
	}
	trip := sanitizeFilename(tripName)
	if trip == "" {
		trip = "Trip"
	}
	return fmt.Sprintf("%s_%s_%s-%s.xlsx", title, trip, start.Compact(), end.Compact())
}
