// Package itinerary defines the canonical trip and event model decoded
// from caller-supplied JSON. Raw payloads are loosely shaped: the same
// concept arrives under several field names, costs are numbers or free
// text, locations are strings or structured objects. Decoding resolves
// each field exactly once so every downstream consumer sees one shape.
package itinerary

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Event is the canonical, fully resolved event record.
type Event struct {
	ID          string
	TripID      string
	Title       string
	Type        string
	StartTime   string
	EndTime     string
	Location    Location
	Cost        Cost
	Description string
	Notes       string
	Tags        string
	Link        string
	Contact     string
	Prepaid     bool
	Paid        PaidStatus
}

// rawEvent mirrors the wire shape, including every alternate field name.
type rawEvent struct {
	ID            string     `json:"id"`
	TripID        string     `json:"tripId"`
	Title         string     `json:"title"`
	Name          string     `json:"name"`
	EventName     string     `json:"eventName"`
	Type          string     `json:"type"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	Location      Location   `json:"location"`
	Cost          Cost       `json:"cost"`
	EstimatedCost Cost       `json:"estimatedCost"`
	Remark        string     `json:"remark"`
	Description   string     `json:"description"`
	Desc          string     `json:"desc"`
	Details       string     `json:"details"`
	Note          string     `json:"note"`
	Notes         string     `json:"notes"`
	Summary       string     `json:"summary"`
	Tags          FlexString `json:"tags"`
	Link          string     `json:"link"`
	Contact       string     `json:"contact"`
	IsPrepaid     *FlexBool  `json:"isPrepaid"`
	PaidFlag      *FlexBool  `json:"paid"`
	PaymentStatus string     `json:"paymentStatus"`
	Status        string     `json:"status"`
}

// UnmarshalJSON decodes a raw event and resolves every duck-typed field by
// its precedence order.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	cost := raw.Cost
	if !cost.Present() {
		cost = raw.EstimatedCost
	}

	*e = Event{
		ID:          raw.ID,
		TripID:      raw.TripID,
		Title:       firstNonEmpty(raw.Title, raw.Name, raw.EventName, "Untitled Event"),
		Type:        raw.Type,
		StartTime:   raw.StartTime,
		EndTime:     raw.EndTime,
		Location:    raw.Location,
		Cost:        cost,
		Description: firstNonEmpty(raw.Remark, raw.Description, raw.Desc, raw.Details, raw.Note, raw.Notes, raw.Summary),
		Notes:       raw.Notes,
		Tags:        string(raw.Tags),
		Link:        raw.Link,
		Contact:     raw.Contact,
		Prepaid:     raw.IsPrepaid != nil && raw.IsPrepaid.True(),
		Paid:        resolvePaidStatus(raw, cost),
	}
	return nil
}

// Category returns the event type tag used for coloring, defaulting when
// the caller sent none.
func (e Event) Category() string {
	if e.Type == "" {
		return "default"
	}
	return strings.ToLower(e.Type)
}

// TypeLabel is the display form of the type tag, "Other" when absent.
func (e Event) TypeLabel() string {
	if e.Type == "" {
		return "Other"
	}
	words := strings.Fields(strings.ToLower(e.Type))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// PaidStatus is the resolved payment state of an event.
type PaidStatus string

// Payment states, resolved once at decode time.
const (
	PaidStatusPaid    PaidStatus = "Paid"
	PaidStatusPending PaidStatus = "Pending"
	PaidStatusUnpaid  PaidStatus = "Unpaid"
	PaidStatusFree    PaidStatus = "Free"
	PaidStatusTBD     PaidStatus = "TBD"
)

// resolvePaidStatus checks the payment fields in precedence order, then
// falls back to a free/TBD guess from the cost.
func resolvePaidStatus(raw rawEvent, cost Cost) PaidStatus {
	if raw.PaidFlag != nil {
		if s := raw.PaidFlag.Status(); s != "" {
			return s
		}
	}
	if raw.IsPrepaid != nil {
		if s := raw.IsPrepaid.Status(); s != "" {
			return s
		}
	}
	for _, v := range []string{raw.PaymentStatus, raw.Status} {
		switch strings.ToLower(v) {
		case "paid", "completed", "confirmed":
			return PaidStatusPaid
		case "pending", "processing":
			return PaidStatusPending
		case "unpaid", "not paid", "cancelled":
			return PaidStatusUnpaid
		}
	}
	if cost.Present() && cost.Value() == 0 {
		return PaidStatusFree
	}
	return PaidStatusTBD
}

// FlexBool accepts a JSON bool or a free-form status string.
type FlexBool struct {
	val bool
	str string
	ok  bool
}

// UnmarshalJSON implements json.Unmarshaler for FlexBool.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := string(data)
	switch s {
	case "null":
		return nil
	case "true", "false":
		b.val = s == "true"
		b.ok = true
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		b.str = str
		return nil
	}
	// Anything else (numbers, objects) is treated as unset.
	return nil
}

// True reports whether the value is an affirmative boolean.
func (b FlexBool) True() bool { return b.ok && b.val }

// Status maps the value to a PaidStatus, or "" when it carries no signal.
func (b FlexBool) Status() PaidStatus {
	if b.ok {
		if b.val {
			return PaidStatusPaid
		}
		return PaidStatusUnpaid
	}
	switch strings.ToLower(b.str) {
	case "paid", "completed", "confirmed", "yes", "true":
		return PaidStatusPaid
	case "pending", "processing":
		return PaidStatusPending
	case "unpaid", "not paid", "cancelled", "no", "false":
		return PaidStatusUnpaid
	}
	return ""
}

// FlexString accepts a JSON string, number, or array of either, flattening
// to a single comma-joined string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler for FlexString.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			switch v := item.(type) {
			case string:
				parts = append(parts, v)
			case float64:
				parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		*f = FlexString(strings.Join(parts, ", "))
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
	}
	return nil
}

var costNumberPattern = regexp.MustCompile(`\d+\.?\d*`)

// Cost is an event or budget amount as supplied by the caller: a JSON
// number, free text ("$12.50", "Free", "N/A"), or absent.
type Cost struct {
	raw     string
	num     float64
	isNum   bool
	present bool
}

// CostOf builds a numeric Cost, mainly for tests and defaults.
func CostOf(v float64) Cost {
	return Cost{num: v, isNum: true, present: true}
}

// UnmarshalJSON implements json.Unmarshaler for Cost.
func (c *Cost) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Cost{num: n, isNum: true, present: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Cost{raw: s, present: true}
		return nil
	}
	return nil
}

// Present reports whether the caller supplied any cost at all.
func (c Cost) Present() bool { return c.present }

// Value extracts the numeric amount: the number itself, or the first
// numeric token inside free text. "Free", "N/A", and unparseable text all
// contribute 0 so a bad cost never breaks an aggregation.
func (c Cost) Value() float64 {
	if c.isNum {
		return c.num
	}
	trimmed := strings.TrimSpace(c.raw)
	switch strings.ToLower(trimmed) {
	case "", "free", "n/a", "nan":
		return 0
	}
	token := costNumberPattern.FindString(strings.ReplaceAll(trimmed, ",", ""))
	if token == "" {
		return 0
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return v
}

// Display renders the cost for a sheet cell: "$x.xx" when a numeric value
// is present, "Free" for zero or absent amounts, otherwise the raw text.
func (c Cost) Display() string {
	if !c.present {
		return "Free"
	}
	if c.isNum {
		if c.num > 0 {
			return fmt.Sprintf("$%.2f", c.num)
		}
		return "Free"
	}
	switch strings.ToLower(strings.TrimSpace(c.raw)) {
	case "", "free", "n/a", "nan", "0":
		return "Free"
	}
	if v := c.Value(); v > 0 {
		return fmt.Sprintf("$%.2f", v)
	}
	return c.raw
}
