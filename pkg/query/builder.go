package query

import (
	"fmt"
	"time"
)

// ContractVersion identifies the request defaults this package implements:
// an optional list of collections (empty means every collection) and a
// default limit of 25. It is sent in the default User-Agent.
//
// An unset start date is always today minus DefaultWindowDays, even when an
// end date is set. The command line differs on purpose: given only --end it
// sets the start to end minus DefaultWindowDays.
const ContractVersion = "2"

const (
	// DefaultLimit is used when no limit is set.
	DefaultLimit uint16 = 25
	// DefaultCloudCover disables cloud filtering.
	DefaultCloudCover uint8 = 100
	// DefaultWindowDays is the lookback applied when no start date is set.
	DefaultWindowDays = 7

	// DateLayout is the calendar-date format accepted for start and end dates.
	DateLayout = "2006-01-02"

	startOfDay = "T00:00:00"
	endOfDay   = "T23:59:00"
)

// Builder accumulates optional search parameters around a required bbox.
// Setters may be called in any order; Build fills in the defaults.
type Builder struct {
	// Clock returns the current time. Defaults to time.Now; tests pin it.
	Clock func() time.Time

	bbox        [4]float64
	collections []string
	start       *time.Time
	end         *time.Time
	cloudCover  *uint8
	limit       *uint16
	path        *int
	row         *int
}

// New returns a Builder for the given [minx, miny, maxx, maxy] box.
func New(bbox [4]float64) *Builder {
	return &Builder{bbox: bbox, Clock: time.Now}
}

// WithCollections restricts the search to the named collections.
func (b *Builder) WithCollections(names []string) *Builder {
	b.collections = append([]string(nil), names...)
	return b
}

// WithStartDate sets the first calendar day of the search window.
func (b *Builder) WithStartDate(t time.Time) *Builder {
	b.start = &t
	return b
}

// WithEndDate sets the last calendar day of the search window.
func (b *Builder) WithEndDate(t time.Time) *Builder {
	b.end = &t
	return b
}

// WithCloudCover sets the maximum cloud cover in percent.
func (b *Builder) WithCloudCover(pct uint8) *Builder {
	b.cloudCover = &pct
	return b
}

// WithLimit sets the maximum number of returned scenes.
func (b *Builder) WithLimit(n uint16) *Builder {
	b.limit = &n
	return b
}

// WithPathRow restricts the search to one orbit path and row.
func (b *Builder) WithPathRow(path, row int) *Builder {
	b.path = &path
	b.row = &row
	return b
}

// Build produces the request for the accumulated state. It performs no I/O
// and never fails; the returned value shares no memory with the Builder.
func (b *Builder) Build() SearchRequest {
	clock := b.Clock
	if clock == nil {
		clock = time.Now
	}
	now := clock().Local()

	end := now
	if b.end != nil {
		end = *b.end
	}
	start := now.AddDate(0, 0, -DefaultWindowDays)
	if b.start != nil {
		start = *b.start
	}

	cloud := DefaultCloudCover
	if b.cloudCover != nil {
		cloud = *b.cloudCover
	}
	limit := DefaultLimit
	if b.limit != nil {
		limit = *b.limit
	}

	collections := make([]string, len(b.collections))
	copy(collections, b.collections)

	q := Query{CloudCover: Lte{Lte: cloud}}
	if b.path != nil && b.row != nil {
		q.Path = &Eq{Eq: *b.path}
		q.Row = &Eq{Eq: *b.row}
	}

	return SearchRequest{
		BBox:        b.bbox,
		Datetime:    FormatRange(start, end),
		Limit:       limit,
		Query:       q,
		Collections: collections,
	}
}

// FormatRange renders the whole-day interval used by the catalog.
func FormatRange(start, end time.Time) string {
	return start.Format(DateLayout) + startOfDay + "/" + end.Format(DateLayout) + endOfDay
}

// ParseDate parses a YYYY-MM-DD date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// ValidateRange rejects windows whose start falls after their end.
func ValidateRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("start date %s is after end date %s", start.Format(DateLayout), end.Format(DateLayout))
	}
	return nil
}
