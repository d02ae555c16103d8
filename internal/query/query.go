// Package query filters and orders an in-memory event collection. It never
// touches storage and never fails: absent fields count as empty.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/Anas-en/College-event-management/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Apply returns the events passing every active filter, sorted ascending by
// date. Ties keep collection order; events without a parsable date go last.
func Apply(events []domain.Event, f domain.EventFilter, now time.Time) []domain.Event {
	m := newMatcher(f.Query)
	today := startOfDay(now)

	res := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if m.matches(e) && ByCategory(e, f.Category) && ByDate(e, f.When, today) {
			res = append(res, e)
		}
	}

	SortByDate(res, now.Location())
	return res
}

// ByQuery reports whether q occurs, ignoring case, in the title,
// description, location, category or any tag of e.
func ByQuery(e domain.Event, q string) bool {
	return newMatcher(q).matches(e)
}

func ByCategory(e domain.Event, category string) bool {
	if category == "" {
		return true
	}
	return e.Category == category
}

// ByDate compares the event date against today, which must be midnight in
// the calendar's location.
func ByDate(e domain.Event, when domain.DateWindow, today time.Time) bool {
	switch when {
	case domain.WindowUpcoming:
		d, ok := e.Day(today.Location())
		return ok && !d.Before(today)
	case domain.WindowPast:
		d, ok := e.Day(today.Location())
		return ok && d.Before(today)
	default:
		return true
	}
}

func SortByDate(events []domain.Event, loc *time.Location) {
	const undated = int64(1<<63 - 1)

	type keyed struct {
		event domain.Event
		key   int64
	}
	tmp := make([]keyed, len(events))
	for i, e := range events {
		tmp[i] = keyed{event: e, key: undated}
		if d, ok := e.Day(loc); ok {
			tmp[i].key = d.Unix()
		}
	}

	sort.SliceStable(tmp, func(i, j int) bool {
		return tmp[i].key < tmp[j].key
	})

	for i := range tmp {
		events[i] = tmp[i].event
	}
}

// Categories lists the distinct non-empty categories in ascending order.
func Categories(events []domain.Event) []string {
	seen := make(map[string]struct{})
	res := make([]string, 0)
	for _, e := range events {
		if e.Category == "" {
			continue
		}
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		res = append(res, e.Category)
	}
	sort.Strings(res)
	return res
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type matcher struct {
	needle string
	fold   cases.Caser
}

func newMatcher(q string) matcher {
	m := matcher{fold: cases.Fold()}
	if q = strings.TrimSpace(q); q != "" {
		m.needle = m.normalize(q)
	}
	return m
}

func (m matcher) normalize(s string) string {
	return m.fold.String(norm.NFC.String(s))
}

func (m matcher) matches(e domain.Event) bool {
	if m.needle == "" {
		return true
	}
	for _, field := range []string{e.Title, e.Description, e.Location, e.Category} {
		if strings.Contains(m.normalize(field), m.needle) {
			return true
		}
	}
	for _, tag := range e.Tags {
		if strings.Contains(m.normalize(tag), m.needle) {
			return true
		}
	}
	return false
}
