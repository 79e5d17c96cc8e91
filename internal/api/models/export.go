package models

import "github.com/holidaymoo/tripsheet/internal/itinerary"

// ExportTripRequest is the payload for POST /v1/exports/trip.
type ExportTripRequest struct {
	// Calendar holds the events and optional per-day headers. An empty
	// calendar is allowed and produces a workbook without placements.
	Calendar itinerary.Calendar `json:"calendarData"`

	// Trip identifies the trip and its date range.
	Trip itinerary.Trip `json:"tripData"`

	// Variant selects the workbook layout, defaulting to "dashboard".
	Variant string `json:"variant" validate:"omitempty,oneof=dashboard calendar"`
}

// ExportTripResponse is the success envelope of an export. Data carries
// the workbook bytes base64 encoded.
type ExportTripResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Data     string `json:"data"`
	Size     int    `json:"size"`
}

// ExportError is the failure envelope of the export endpoint. Unlike the
// rest of the API surface it is plain JSON rather than problem+json, so
// spreadsheet clients can branch on a single success flag.
type ExportError struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Errors  []FieldError `json:"errors,omitempty"`
}
