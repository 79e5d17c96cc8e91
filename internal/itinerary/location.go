package itinerary

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Coordinates is a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is an event location: callers send either a plain string or a
// structured place object. Both forms decode into this one type.
type Location struct {
	Text    string
	Name    string
	Address string
	Coords  *Coordinates
	PlaceID string
	Rating  float64

	structured bool
}

type rawLocation struct {
	Name             string       `json:"name"`
	Address          string       `json:"address"`
	FormattedAddress string       `json:"formatted_address"`
	Coordinates      *Coordinates `json:"coordinates"`
	PlaceID          string       `json:"placeId"`
	Rating           float64      `json:"rating"`
}

// UnmarshalJSON accepts both location forms.
func (l *Location) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Location{Text: s}
		return nil
	}
	var raw rawLocation
	if err := json.Unmarshal(data, &raw); err != nil {
		// Unexpected shapes are dropped rather than failing the event.
		return nil
	}
	address := raw.Address
	if address == "" {
		address = raw.FormattedAddress
	}
	*l = Location{
		Name:       raw.Name,
		Address:    address,
		Coords:     raw.Coordinates,
		PlaceID:    raw.PlaceID,
		Rating:     raw.Rating,
		structured: true,
	}
	return nil
}

// IsZero reports whether no location was supplied at all.
func (l Location) IsZero() bool {
	return !l.structured && l.Text == ""
}

// DisplayName is the short label for calendar blocks and name columns:
// the structured name, the plain string, or a coordinate pair.
func (l Location) DisplayName() string {
	switch {
	case l.Name != "":
		return l.Name
	case l.Text != "":
		return l.Text
	case l.Address != "":
		return l.Address
	case l.Coords != nil:
		return fmt.Sprintf("Lat: %g, Lng: %g", l.Coords.Lat, l.Coords.Lng)
	}
	return ""
}

// FullAddress is the long form for address columns, preferring the
// structured address over the display name.
func (l Location) FullAddress() string {
	if l.Address != "" {
		return l.Address
	}
	return l.DisplayName()
}

// MapURL builds a maps link for the location, preferring exact coordinates,
// then the place ID, then a text search. Empty when nothing is linkable.
func (l Location) MapURL() string {
	switch {
	case l.Coords != nil:
		return fmt.Sprintf("https://www.google.com/maps?q=%g,%g", l.Coords.Lat, l.Coords.Lng)
	case l.PlaceID != "":
		return "https://www.google.com/maps/place/?q=place_id:" + l.PlaceID
	}
	if name := l.DisplayName(); name != "" {
		return "https://www.google.com/maps/search/" + url.QueryEscape(name)
	}
	return ""
}
