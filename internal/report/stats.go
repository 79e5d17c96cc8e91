package report

import (
	"sort"

	"github.com/holidaymoo/tripsheet/internal/itinerary"
	"github.com/holidaymoo/tripsheet/internal/schedule"
)

// defaultDailyBudget is assumed per trip day when the trip carries no
// budget of its own.
const defaultDailyBudget = 150

// tripStats aggregates the numbers shown on the analytics and summary
// sheets. Totals cover every event handed to the exporter, not only the
// ones that land inside the trip's date range.
type tripStats struct {
	TotalEvents  int
	TotalCost    float64
	Budget       float64
	CostByType   map[string]float64
	CountByType  map[string]int
	PrepaidCount int
	WithLocation int
}

func computeStats(events []itinerary.Event, trip itinerary.Trip, days int) tripStats {
	st := tripStats{
		CostByType:  make(map[string]float64),
		CountByType: make(map[string]int),
	}
	st.TotalEvents = len(events)
	for _, ev := range events {
		cost := ev.Cost.Value()
		label := ev.TypeLabel()
		st.TotalCost += cost
		st.CostByType[label] += cost
		st.CountByType[label]++
		if ev.Prepaid {
			st.PrepaidCount++
		}
		if !ev.Location.IsZero() {
			st.WithLocation++
		}
	}
	st.Budget = trip.Budget.Value()
	if st.Budget == 0 {
		st.Budget = defaultDailyBudget * float64(days)
	}
	return st
}

// typeLabels returns the event type labels in descending cost order, ties
// broken alphabetically so the sheet output is stable.
func (s tripStats) typeLabels() []string {
	labels := make([]string, 0, len(s.CostByType))
	for l := range s.CostByType {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		ci, cj := s.CostByType[labels[i]], s.CostByType[labels[j]]
		if ci != cj {
			return ci > cj
		}
		return labels[i] < labels[j]
	})
	return labels
}

// dayActivity is one row of the per-day breakdown. Only events whose
// normalized date falls inside the trip range contribute here.
type dayActivity struct {
	Date   schedule.Date
	Events []itinerary.Event
	Cost   float64
}

func dailyActivity(events []itinerary.Event, dates schedule.DateRange, norm schedule.Normalizer) []dayActivity {
	days := make([]dayActivity, 0, dates.Days())
	byDate := make(map[schedule.Date][]itinerary.Event)
	for _, ev := range events {
		nt := norm.Normalize(ev.StartTime)
		if dates.Contains(nt.Date) {
			byDate[nt.Date] = append(byDate[nt.Date], ev)
		}
	}
	for _, d := range dates.Dates() {
		day := dayActivity{Date: d, Events: byDate[d]}
		for _, ev := range day.Events {
			day.Cost += ev.Cost.Value()
		}
		days = append(days, day)
	}
	return days
}
