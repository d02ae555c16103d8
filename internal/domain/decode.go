package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Stored records may have been written by older or hand-edited clients, so
// decoding never fails on a single mistyped field: it falls back to the
// zero value for that field and keeps the rest of the record.

func (e *Event) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil || fields == nil {
		return err
	}

	*e = Event{
		ID:          ID(looseString(fields["id"])),
		Title:       looseString(fields["title"]),
		Category:    looseString(fields["category"]),
		Location:    looseString(fields["location"]),
		Date:        looseString(fields["date"]),
		Time:        looseString(fields["time"]),
		Capacity:    looseInt(fields["capacity"]),
		Description: looseString(fields["description"]),
		Tags:        looseStrings(fields["tags"]),
	}
	return nil
}

func (r *Registration) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil || fields == nil {
		return err
	}

	*r = Registration{
		ID:        ID(looseString(fields["id"])),
		EventID:   ID(looseString(fields["eventId"])),
		Name:      looseString(fields["name"]),
		Email:     looseString(fields["email"]),
		Notes:     looseString(fields["notes"]),
		CreatedAt: looseTime(fields["createdAt"]),
	}
	return nil
}

// decodeObject returns nil fields for a JSON null.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	if isNull(data) {
		return nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// looseString accepts strings, numbers and booleans; anything else is "".
func looseString(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return canonicalNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func looseInt(raw json.RawMessage) int {
	s := strings.TrimSpace(looseString(raw))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// looseStrings accepts an array of scalars or a comma separated string.
func looseStrings(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := looseString(raw); s != "" {
			return ParseTags(s)
		}
		return nil
	}
	res := make([]string, 0, len(items))
	for _, item := range items {
		if s := looseString(item); s != "" {
			res = append(res, s)
		}
	}
	return res
}

// looseTime accepts RFC 3339 strings and Unix milliseconds.
func looseTime(raw json.RawMessage) time.Time {
	s := strings.TrimSpace(looseString(raw))
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

// canonicalNumber renders n the way it reads as plain text: 1.0 and 1e0
// both become "1".
func canonicalNumber(n json.Number) string {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if abs := math.Abs(f); f == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}
