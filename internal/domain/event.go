package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ID is a record identifier. Seed documents may carry numeric ids, so
// decoding accepts both JSON strings and numbers.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(canonicalNumber(n))
	return nil
}

func (id ID) String() string {
	return string(id)
}

type Event struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Capacity    int      `json:"capacity"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Day returns the event date as midnight in loc.
func (e Event) Day(loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(e.Date), loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

type EventFilter struct {
	Query    string
	Category string
	When     DateWindow
}

type DateWindow string

const (
	WindowAll      DateWindow = ""
	WindowUpcoming DateWindow = "upcoming"
	WindowPast     DateWindow = "past"
)

// ParseDateWindow maps unknown values to WindowAll.
func ParseDateWindow(s string) DateWindow {
	switch w := DateWindow(strings.ToLower(strings.TrimSpace(s))); w {
	case WindowUpcoming, WindowPast:
		return w
	default:
		return WindowAll
	}
}

// ParseTags splits a comma separated list, dropping blanks.
func ParseTags(s string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

type BootstrapOutcome string

const (
	BootstrapExisting BootstrapOutcome = "existing"
	BootstrapSeeded   BootstrapOutcome = "seeded"
	BootstrapFailed   BootstrapOutcome = "failed"
)

type BootstrapResult struct {
	Events  []Event
	Outcome BootstrapOutcome
}
