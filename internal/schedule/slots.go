package schedule

import "fmt"

// SlotTable is the fixed, ordered sequence of 30-minute time labels that
// forms the rows of a report grid. Labels are HH:MM in ascending order.
type SlotTable struct {
	labels []string
}

// NewSlotTable builds a table covering [startHour:00, 23:30] in 30-minute
// steps.
func NewSlotTable(startHour int) SlotTable {
	labels := make([]string, 0, (24-startHour)*2)
	for hour := startHour; hour < 24; hour++ {
		labels = append(labels, fmt.Sprintf("%02d:00", hour))
		labels = append(labels, fmt.Sprintf("%02d:30", hour))
	}
	return SlotTable{labels: labels}
}

// DashboardSlots is the reduced business-display window, 06:00-23:30.
func DashboardSlots() SlotTable { return NewSlotTable(6) }

// FullDaySlots covers the whole day, 00:00-23:30.
func FullDaySlots() SlotTable { return NewSlotTable(0) }

// Len returns the number of slots in the table.
func (t SlotTable) Len() int { return len(t.labels) }

// Label returns the HH:MM label for slot i.
func (t SlotTable) Label(i int) string { return t.labels[i] }

// Labels returns the full ordered label list.
func (t SlotTable) Labels() []string { return t.labels }

// SlotIndex maps a rounded clock time to its row. An exact label match is
// expected for any in-window time; outside the window it falls back to the
// first slot at or after the target, then to the last slot.
func (t SlotTable) SlotIndex(hour, minute int) int {
	target := fmt.Sprintf("%02d:%02d", hour, minute)
	for i, label := range t.labels {
		if label == target {
			return i
		}
	}
	for i, label := range t.labels {
		if label >= target {
			return i
		}
	}
	return len(t.labels) - 1
}

// FloorIndex maps a clock time to the last slot that starts at or before
// it. Times before the first slot map to slot 0.
func (t SlotTable) FloorIndex(hour, minute int) int {
	target := fmt.Sprintf("%02d:%02d", hour, minute)
	idx := 0
	for i, label := range t.labels {
		if label <= target {
			idx = i
		}
	}
	return idx
}

// DateRange is the inclusive run of calendar days covered by a trip. It
// defines the grid's columns, one per day.
type DateRange struct {
	start Date
	end   Date
}

// NewDateRange builds the inclusive range [start, end]. An end before
// start collapses to the single start day rather than erroring; inverted
// trip dates are rejected upstream at the request boundary.
func NewDateRange(start, end Date) DateRange {
	if end.Before(start) {
		end = start
	}
	return DateRange{start: start, end: end}
}

// Start returns the first day of the range.
func (r DateRange) Start() Date { return r.start }

// End returns the last day of the range.
func (r DateRange) End() Date { return r.end }

// Days returns the inclusive day count.
func (r DateRange) Days() int {
	return int(r.end.Time().Sub(r.start.Time()).Hours()/24) + 1
}

// Dates enumerates every day in the range in order.
func (r DateRange) Dates() []Date {
	dates := make([]Date, 0, r.Days())
	for d := r.start; !r.end.Before(d); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// ColumnIndex returns the 0-based column for a date, or -1 when the date
// falls outside the range. Events on out-of-range dates have no column and
// are skipped by placement, not errored.
func (r DateRange) ColumnIndex(d Date) int {
	if d.Before(r.start) || r.end.Before(d) {
		return -1
	}
	return int(d.Time().Sub(r.start.Time()).Hours() / 24)
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d Date) bool { return r.ColumnIndex(d) >= 0 }
