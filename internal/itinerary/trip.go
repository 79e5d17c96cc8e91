package itinerary

// Trip is the trip record supplied with an export request. StartDate and
// EndDate stay textual here; the schedule package extracts the calendar
// days and defines the grid's column range from them, inclusive of both
// endpoints.
type Trip struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	Budget      Cost   `json:"budget"`
}

// DayHeader is an optional caller-supplied header for one calendar day.
type DayHeader struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Calendar is the event collection side of an export request.
type Calendar struct {
	Title            string               `json:"title"`
	Events           []Event              `json:"events"`
	CustomDayHeaders map[string]DayHeader `json:"customDayHeaders"`
}

// TripEvents returns the events belonging to the trip. When the trip has
// no ID every event is assumed to belong to it.
func (c Calendar) TripEvents(trip Trip) []Event {
	if trip.ID == "" {
		return c.Events
	}
	events := make([]Event, 0, len(c.Events))
	for _, e := range c.Events {
		if e.TripID == "" || e.TripID == trip.ID {
			events = append(events, e)
		}
	}
	return events
}
