package model

import (
	"encoding/json"
	"fmt"
	"time"

	// embedded zone database, hosts running the service are not guaranteed to ship one
	_ "time/tzdata"
)

const (
	WallClockLayout = "2006-01-02T15:04:05"
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04:05"
	ClockLayout     = "15:04"
)

// WallClock is a local date-time read off a wall clock in Zone.
// It is not an instant: Clock carries only the calendar fields (stored in UTC),
// Zone says which clock they were read from.
type WallClock struct {
	Clock time.Time
	Zone  string
}

func NewWallClock(year int, month time.Month, day, hour, min int, zone string) WallClock {
	return WallClock{
		Clock: time.Date(year, month, day, hour, min, 0, 0, time.UTC),
		Zone:  zone,
	}
}

// WallClockOf keeps the calendar fields of t as they read in t's location and tags them with zone.
func WallClockOf(t time.Time, zone string) WallClock {
	return WallClock{
		Clock: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
		Zone:  zone,
	}
}

// ParseWallClock reads the first 19 characters of s as a local date-time, ignoring any offset suffix.
func ParseWallClock(s, zone string) (WallClock, error) {
	if len(s) > len(WallClockLayout) {
		s = s[:len(WallClockLayout)]
	}

	t, err := time.Parse(WallClockLayout, s)
	if err != nil {
		return WallClock{}, fmt.Errorf("parse wall clock %q: %w", s, err)
	}

	return WallClock{Clock: t, Zone: zone}, nil
}

func MustParseWallClock(s, zone string) WallClock {
	w, err := ParseWallClock(s, zone)
	if err != nil {
		panic(err)
	}
	return w
}

// Instant resolves the wall clock to a real point in time in its zone.
func (w WallClock) Instant() (time.Time, error) {
	loc, err := time.LoadLocation(w.Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load location %q: %w", w.Zone, err)
	}

	c := w.Clock
	return time.Date(c.Year(), c.Month(), c.Day(), c.Hour(), c.Minute(), c.Second(), 0, loc), nil
}

// In returns what a wall clock in zone shows at the same instant.
func (w WallClock) In(zone string) (WallClock, error) {
	if zone == w.Zone {
		return w, nil
	}

	instant, err := w.Instant()
	if err != nil {
		return WallClock{}, err
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return WallClock{}, fmt.Errorf("load location %q: %w", zone, err)
	}

	return WallClockOf(instant.In(loc), zone), nil
}

// Retag keeps the calendar fields and swaps the zone label.
func (w WallClock) Retag(zone string) WallClock {
	return WallClock{Clock: w.Clock, Zone: zone}
}

func (w WallClock) IsZero() bool {
	return w.Clock.IsZero()
}

func (w WallClock) Add(d time.Duration) WallClock {
	return WallClock{Clock: w.Clock.Add(d), Zone: w.Zone}
}

func (w WallClock) AddDays(n int) WallClock {
	return WallClock{Clock: w.Clock.AddDate(0, 0, n), Zone: w.Zone}
}

// At moves the wall clock to hour:min on the same calendar day.
func (w WallClock) At(hour, min int) WallClock {
	c := w.Clock
	return WallClock{Clock: time.Date(c.Year(), c.Month(), c.Day(), hour, min, 0, 0, time.UTC), Zone: w.Zone}
}

// Sub is the wall-clock distance between two readings of the same zone.
func (w WallClock) Sub(o WallClock) time.Duration {
	return w.Clock.Sub(o.Clock)
}

func (w WallClock) Before(o WallClock) bool {
	return w.Clock.Before(o.Clock)
}

func (w WallClock) After(o WallClock) bool {
	return w.Clock.After(o.Clock)
}

func (w WallClock) Equal(o WallClock) bool {
	return w.Clock.Equal(o.Clock)
}

func (w WallClock) SameDay(o WallClock) bool {
	return w.Clock.Year() == o.Clock.Year() && w.Clock.YearDay() == o.Clock.YearDay()
}

func (w WallClock) Hour() int {
	return w.Clock.Hour()
}

func (w WallClock) Minute() int {
	return w.Clock.Minute()
}

// ISOWeekday is 1 for Monday through 7 for Sunday.
func (w WallClock) ISOWeekday() int {
	d := int(w.Clock.Weekday())
	if d == 0 {
		return 7
	}
	return d
}

// MonthDay formats the day as "--MM-DD".
func (w WallClock) MonthDay() string {
	return w.Clock.Format("--01-02")
}

func (w WallClock) Date() string {
	return w.Clock.Format(DateLayout)
}

func (w WallClock) String() string {
	return w.Clock.Format(WallClockLayout)
}

// Days lists one wall clock per calendar day touched by [start, end]. The first keeps the time of
// start, the rest sit at midnight.
func Days(start, end WallClock) []WallClock {
	if end.Before(start) {
		return nil
	}

	n := int(end.At(0, 0).Sub(start.At(0, 0)).Hours() / 24)
	res := make([]WallClock, 0, n+1)
	for i := 0; i <= n; i++ {
		day := start.AddDays(i)
		if i > 0 {
			day = day.At(0, 0)
		}
		res = append(res, day)
	}

	return res
}

func (w WallClock) MarshalJSON() ([]byte, error) {
	if w.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(w.String())
}

// UnmarshalJSON keeps the zone already set on w, callers retag after decoding.
func (w *WallClock) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		w.Clock = time.Time{}
		return nil
	}

	parsed, err := ParseWallClock(*s, w.Zone)
	if err != nil {
		return err
	}
	w.Clock = parsed.Clock

	return nil
}
