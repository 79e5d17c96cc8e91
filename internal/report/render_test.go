package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/holidaymoo/tripsheet/internal/itinerary"
	"github.com/holidaymoo/tripsheet/internal/schedule"
)

func TestTwelveHour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"09:00", "9:00 AM"},
		{"12:00", "12:00 PM"},
		{"13:30", "1:30 PM"},
		{"23:30", "11:30 PM"},
		{"bogus", "bogus"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, twelveHour(tt.in), "label %q", tt.in)
	}
}

func TestDurationText(t *testing.T) {
	at := func(h, m int) schedule.NormalizedTime {
		return schedule.NormalizedTime{
			Date:   schedule.Date{Year: 2025, Month: time.September, Day: 13},
			Hour:   h,
			Minute: m,
		}
	}

	assert.Equal(t, "2h 30m", durationText(at(9, 0), at(11, 30)))
	assert.Equal(t, "45m", durationText(at(9, 0), at(9, 45)))
	assert.Equal(t, "3h", durationText(at(9, 0), at(12, 0)))
	assert.Equal(t, "30m", durationText(at(9, 0), at(9, 0)))
	assert.Equal(t, "30m", durationText(at(11, 0), at(9, 0)))
}

func TestDurationSlots(t *testing.T) {
	at := func(h, m int) schedule.NormalizedTime {
		return schedule.NormalizedTime{
			Date:   schedule.Date{Year: 2025, Month: time.September, Day: 13},
			Hour:   h,
			Minute: m,
		}
	}

	assert.Equal(t, 1, durationSlots(at(9, 0), at(9, 0)))
	assert.Equal(t, 1, durationSlots(at(9, 0), at(9, 20)))
	assert.Equal(t, 4, durationSlots(at(9, 0), at(11, 0)))
	// Overnight spans pick up the extra day.
	overnight := schedule.NormalizedTime{
		Date: schedule.Date{Year: 2025, Month: time.September, Day: 14},
		Hour: 1, Minute: 0,
	}
	assert.Equal(t, 4, durationSlots(at(23, 0), overnight))
}

func TestSortedByStart(t *testing.T) {
	events := []itinerary.Event{
		{Title: "late", StartTime: "2025-09-13T18:00:00"},
		{Title: "early", StartTime: "2025-09-13T08:00:00"},
		{Title: "previous day", StartTime: "2025-09-12T23:00:00"},
		{Title: "also early", StartTime: "2025-09-13T08:00:00"},
	}

	got := sortedByStart(events, schedule.TextualNormalizer{})

	assert.Equal(t, "previous day", got[0].Title)
	assert.Equal(t, "early", got[1].Title)
	assert.Equal(t, "also early", got[2].Title, "stable for equal keys")
	assert.Equal(t, "late", got[3].Title)
}

func TestCustomHeaders(t *testing.T) {
	raw := map[string]itinerary.DayHeader{
		"Sat Sep 13 2025": {Title: "Arrival"},
		"Wed Sep 3 2025":  {Title: "Single digit day"},
		"not a date":      {Title: "dropped"},
	}

	got := customHeaders(raw)

	assert.Len(t, got, 2)
	assert.Equal(t, "Arrival", got[schedule.Date{Year: 2025, Month: time.September, Day: 13}].Title)
	assert.Equal(t, "Single digit day", got[schedule.Date{Year: 2025, Month: time.September, Day: 3}].Title)
}

func TestDayHeaderText(t *testing.T) {
	day := schedule.Date{Year: 2025, Month: time.September, Day: 13}

	plain := dayHeaderText(day, nil)
	assert.Equal(t, "Saturday\nSeptember 13, 2025", plain)

	custom := map[schedule.Date]itinerary.DayHeader{
		day: {Title: "Arrival", Description: "Land at Haneda, check in, then an evening walk around Shinjuku"},
	}
	decorated := dayHeaderText(day, custom)
	assert.Contains(t, decorated, "🎯 Arrival")
	assert.Contains(t, decorated, "📝 Land at Haneda, check in, then")
	assert.Contains(t, decorated, "…")
}

func TestDayOverviewText(t *testing.T) {
	assert.Equal(t, "No events", dayOverviewText(nil))
	assert.Equal(t, "a, b", dayOverviewText([]itinerary.Event{{Title: "a"}, {Title: "b"}}))
	assert.Equal(t, "a, b, c, ... and 2 more", dayOverviewText([]itinerary.Event{
		{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}, {Title: "e"},
	}))
}

func TestEventColor(t *testing.T) {
	assert.Equal(t, "E67E22", eventColor(dashboardEventColors, "dining"))
	assert.Equal(t, "95A5A6", eventColor(dashboardEventColors, "spelunking"))
	assert.Equal(t, "F0F8FF", eventColor(calendarEventColors, ""))
}
