package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWallClockIgnoresOffset(t *testing.T) {
	w, err := ParseWallClock("2024-01-01T09:30:00+05:00", "Asia/Tokyo")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01T09:30:00", w.String())
	assert.Equal(t, "Asia/Tokyo", w.Zone)
	assert.Equal(t, 9, w.Hour())
	assert.Equal(t, 30, w.Minute())

	_, err = ParseWallClock("not a date", "UTC")
	assert.Error(t, err)
}

func TestWallClockIn(t *testing.T) {
	tests := []struct {
		name string
		from string
		zone string
		to   string
		want string
	}{
		{
			name: "winter offset",
			from: "2024-01-15T09:00:00",
			zone: "America/New_York",
			to:   "Europe/London",
			want: "2024-01-15T14:00:00",
		},
		{
			name: "summer offset",
			from: "2024-07-15T09:00:00",
			zone: "America/New_York",
			to:   "Europe/London",
			want: "2024-07-15T14:00:00",
		},
		{
			name: "crosses midnight",
			from: "2024-01-15T22:00:00",
			zone: "Europe/London",
			to:   "Asia/Tokyo",
			want: "2024-01-16T07:00:00",
		},
		{
			name: "same zone",
			from: "2024-01-15T22:00:00",
			zone: "UTC",
			to:   "UTC",
			want: "2024-01-15T22:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustParseWallClock(tt.from, tt.zone).In(tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.to, got.Zone)
		})
	}
}

func TestWallClockInUnknownZone(t *testing.T) {
	_, err := MustParseWallClock("2024-01-15T22:00:00", "UTC").In("Nowhere/Special")
	assert.Error(t, err)
}

func TestWallClockRetagKeepsFields(t *testing.T) {
	w := MustParseWallClock("2024-01-15T22:00:00", "UTC").Retag("Asia/Tokyo")

	assert.Equal(t, "2024-01-15T22:00:00", w.String())
	assert.Equal(t, "Asia/Tokyo", w.Zone)
}

func TestWallClockCalendarFields(t *testing.T) {
	// 2024-01-07 is a Sunday
	w := MustParseWallClock("2024-01-07T10:45:00", "UTC")

	assert.Equal(t, 7, w.ISOWeekday())
	assert.Equal(t, 1, w.AddDays(1).ISOWeekday())
	assert.Equal(t, "--01-07", w.MonthDay())
	assert.Equal(t, "2024-01-07", w.Date())
	assert.Equal(t, "2024-01-07T08:15:00", w.At(8, 15).String())
	assert.True(t, w.SameDay(w.At(0, 0)))
	assert.False(t, w.SameDay(w.AddDays(1)))
}

func TestDays(t *testing.T) {
	start := MustParseWallClock("2024-01-01T10:30:00", "UTC")

	tests := []struct {
		name string
		end  string
		want []string
	}{
		{
			name: "same day",
			end:  "2024-01-01T18:00:00",
			want: []string{"2024-01-01T10:30:00"},
		},
		{
			name: "less than two full days but three calendar days",
			end:  "2024-01-03T09:00:00",
			want: []string{"2024-01-01T10:30:00", "2024-01-02T00:00:00", "2024-01-03T00:00:00"},
		},
		{
			name: "end before start",
			end:  "2023-12-31T09:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, d := range Days(start, MustParseWallClock(tt.end, "UTC")) {
				got = append(got, d.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWallClockJSON(t *testing.T) {
	type payload struct {
		At WallClock `json:"at"`
	}

	data, err := json.Marshal(payload{At: MustParseWallClock("2024-01-01T09:00:00", "UTC")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2024-01-01T09:00:00"}`, string(data))

	data, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":null}`, string(data))

	got := payload{At: WallClock{Zone: "Europe/Paris"}}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"2024-01-01T09:00:00+01:00"}`), &got))
	assert.Equal(t, "2024-01-01T09:00:00", got.At.String())
	assert.Equal(t, "Europe/Paris", got.At.Zone)
}

func TestEventKey(t *testing.T) {
	k := ParseEventKey("abc#primary@example.com")
	assert.Equal(t, EventKey{ID: "abc", CalendarID: "primary@example.com"}, k)
	assert.Equal(t, "abc#primary@example.com", k.String())

	assert.Equal(t, EventKey{ID: "abc"}, ParseEventKey("abc"))
	assert.True(t, ParseEventKey("").IsZero())
	assert.Equal(t, "", EventKey{}.String())

	data, err := json.Marshal(map[string]EventKey{"id": k})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc#primary@example.com"}`, string(data))

	var decoded struct {
		ID EventKey `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x#y"}`), &decoded))
	assert.Equal(t, EventKey{ID: "x", CalendarID: "y"}, decoded.ID)
}

func TestEventClone(t *testing.T) {
	e := &Event{
		ID:                  EventKey{ID: "a", CalendarID: "c"},
		TimeBlocking:        &BufferTimes{BeforeEvent: 10},
		PreferredTimeRanges: []PreferredTimeRange{{ID: "r1"}},
	}

	c := e.Clone()
	c.TimeBlocking.BeforeEvent = 20
	c.PreferredTimeRanges[0].ID = "r2"

	assert.Equal(t, 10, e.TimeBlocking.BeforeEvent)
	assert.Equal(t, "r1", e.PreferredTimeRanges[0].ID)
	assert.Nil(t, (*Event)(nil).Clone())
}
