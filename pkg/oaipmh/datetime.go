package oaipmh

import (
	"fmt"
	"time"
)

// Granularity is the datestamp resolution a value or repository uses.
type Granularity int

const (
	// GranularityDay is the YYYY-MM-DD form.
	GranularityDay Granularity = iota

	// GranularitySeconds is the YYYY-MM-DDThh:mm:ssZ form.
	GranularitySeconds
)

const (
	dayLayout     = "2006-01-02"
	secondsLayout = "2006-01-02T15:04:05Z"
)

// String returns the protocol notation for the granularity, as advertised
// in an Identify response.
func (g Granularity) String() string {
	if g == GranularitySeconds {
		return "YYYY-MM-DDThh:mm:ssZ"
	}
	return "YYYY-MM-DD"
}

// Layout returns the time layout for the granularity.
func (g Granularity) Layout() string {
	if g == GranularitySeconds {
		return secondsLayout
	}
	return dayLayout
}

// ParseGranularity maps a protocol notation string to its granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "YYYY-MM-DD":
		return GranularityDay, nil
	case "YYYY-MM-DDThh:mm:ssZ":
		return GranularitySeconds, nil
	default:
		return GranularityDay, newFormatError("granularity", s, `must be "YYYY-MM-DD" or "YYYY-MM-DDThh:mm:ssZ"`)
	}
}

// UTCDatetime is a protocol datestamp in one of the two legal forms:
// YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ. The trailing Z is mandatory in the
// seconds form; offsets are rejected. The accepted string is stored
// verbatim and never reformatted.
type UTCDatetime struct {
	value       string
	t           time.Time
	granularity Granularity
}

// NewUTCDatetime validates s as a UTC datestamp. The form is chosen by
// length, then parsed strictly, so impossible dates such as February 30
// are rejected.
func NewUTCDatetime(s string) (UTCDatetime, error) {
	var layout string
	var g Granularity
	switch len(s) {
	case len(dayLayout):
		layout, g = dayLayout, GranularityDay
	case len(secondsLayout):
		layout, g = secondsLayout, GranularitySeconds
	default:
		return UTCDatetime{}, newFormatError("UTCdatetime", s, "must use the YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ form")
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return UTCDatetime{}, newFormatError("UTCdatetime", s, "must be a real UTC instant in the "+g.String()+" form")
	}
	if t.Format(layout) != s {
		return UTCDatetime{}, newFormatError("UTCdatetime", s, "not in canonical form")
	}
	return UTCDatetime{value: s, t: t.UTC(), granularity: g}, nil
}

// FormatUTC renders t at the given granularity as a UTCDatetime.
func FormatUTC(t time.Time, g Granularity) UTCDatetime {
	s := t.UTC().Format(g.Layout())
	return UTCDatetime{value: s, t: mustReparse(s, g.Layout()), granularity: g}
}

func mustReparse(s, layout string) time.Time {
	t, err := time.Parse(layout, s)
	if err != nil {
		panic(fmt.Sprintf("formatted datestamp %q does not reparse: %v", s, err))
	}
	return t.UTC()
}

// String returns the datestamp exactly as accepted.
func (d UTCDatetime) String() string {
	return d.value
}

// Time returns the instant the datestamp denotes, in UTC. Day-granularity
// values denote midnight at the start of the day.
func (d UTCDatetime) Time() time.Time {
	return d.t
}

// Granularity returns the resolution of the datestamp.
func (d UTCDatetime) Granularity() Granularity {
	return d.granularity
}

// IsZero reports whether the datestamp is the unconstructed zero value.
func (d UTCDatetime) IsZero() bool {
	return d.value == ""
}

// RangeEnd returns the last instant an inclusive until-bound at this
// datestamp covers: the datestamp itself at seconds granularity, the end
// of the day (23:59:59) at day granularity.
func (d UTCDatetime) RangeEnd() time.Time {
	if d.granularity == GranularitySeconds {
		return d.t
	}
	return d.t.Add(24*time.Hour - time.Second)
}

// Equal reports lexical equality. Two datestamps naming the same instant
// at different granularities are not equal.
func (d UTCDatetime) Equal(other UTCDatetime) bool {
	return d.value == other.value
}

// Before reports whether d's instant precedes other's.
func (d UTCDatetime) Before(other UTCDatetime) bool {
	return d.t.Before(other.t)
}

// After reports whether d's instant follows other's.
func (d UTCDatetime) After(other UTCDatetime) bool {
	return d.t.After(other.t)
}
