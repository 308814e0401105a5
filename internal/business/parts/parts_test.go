package parts

import (
	"testing"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(id string) model.EventKey {
	return model.EventKey{ID: id, CalendarID: "cal"}
}

func newEvent(id, start, end string) *model.Event {
	return &model.Event{
		ID:        key(id),
		StartDate: model.MustParseWallClock(start, "UTC"),
		EndDate:   model.MustParseWallClock(end, "UTC"),
		Timezone:  "UTC",
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		end       string
		grid      model.Grid
		wantParts int
	}{
		{name: "remainder part on full grid", end: "2024-01-01T09:50:00", grid: model.GridFull, wantParts: 4},
		{name: "exact multiple", end: "2024-01-01T10:00:00", grid: model.GridFull, wantParts: 4},
		{name: "remainder part on lite grid", end: "2024-01-01T09:50:00", grid: model.GridLite, wantParts: 2},
		{name: "empty event", end: "2024-01-01T09:00:00", grid: model.GridFull, wantParts: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEvent("e1", "2024-01-01T09:00:00", tt.end)

			got := Generate(e, "host-1", tt.grid)
			require.Len(t, got, tt.wantParts)
			for i, p := range got {
				assert.Equal(t, i+1, p.Part)
				assert.Equal(t, tt.wantParts, p.LastPart)
				assert.Equal(t, i+1, p.MeetingPart)
				assert.Equal(t, tt.wantParts, p.MeetingLastPart)
				assert.Equal(t, "e1#cal", p.GroupID)
				assert.Equal(t, "host-1", p.HostID)
				assert.Same(t, e, p.Event)
			}
		})
	}
}

// assertContiguous checks every group is numbered 1..lastPart exactly once.
func assertContiguous(t *testing.T, parts []model.EventPart) {
	t.Helper()

	groups := make(map[string][]model.EventPart)
	for _, p := range parts {
		groups[p.GroupID] = append(groups[p.GroupID], p)
	}

	for id, group := range groups {
		seen := make(map[int]bool)
		for _, p := range group {
			assert.Equal(t, len(group), p.LastPart, "group %s", id)
			assert.False(t, seen[p.Part], "group %s duplicates part %d", id, p.Part)
			seen[p.Part] = true
		}
		for i := 1; i <= len(group); i++ {
			assert.True(t, seen[i], "group %s misses part %d", id, i)
		}
	}
}

func bufferedEvents() (target, pre, post, other *model.Event) {
	target = newEvent("target", "2024-01-01T10:00:00", "2024-01-01T10:45:00")
	pre = newEvent("pre", "2024-01-01T09:30:00", "2024-01-01T10:00:00")
	post = newEvent("post", "2024-01-01T10:45:00", "2024-01-01T11:00:00")
	other = newEvent("other", "2024-01-01T13:00:00", "2024-01-01T13:30:00")

	pre.IsPreEvent, pre.ForEventID = true, target.ID
	post.IsPostEvent, post.ForEventID = true, target.ID
	target.PreEventID, target.PostEventID = pre.ID, post.ID

	return target, pre, post, other
}

func TestStitchPreAndPost(t *testing.T) {
	target, pre, post, other := bufferedEvents()

	parts := GenerateAll([]*model.Event{target, pre, post, other}, "host-1", model.GridFull)
	require.Len(t, parts, 3+2+1+2)

	got := StitchAllPost(StitchAllPre(parts))
	require.Len(t, got, len(parts))
	assertContiguous(t, got)

	var chain []model.EventPart
	for _, p := range got {
		if p.EventID != other.ID {
			chain = append(chain, p)
		}
	}
	require.Len(t, chain, 6)

	order := make(map[int]model.EventKey)
	for _, p := range chain {
		assert.Equal(t, chain[0].GroupID, p.GroupID)
		order[p.Part] = p.EventID
	}
	assert.Equal(t, pre.ID, order[1])
	assert.Equal(t, pre.ID, order[2])
	assert.Equal(t, target.ID, order[3])
	assert.Equal(t, target.ID, order[5])
	assert.Equal(t, post.ID, order[6])
}

func TestStitchPostOnly(t *testing.T) {
	target, _, post, _ := bufferedEvents()
	target.PreEventID = model.EventKey{}

	parts := GenerateAll([]*model.Event{post, target}, "host-1", model.GridFull)

	got := StitchAllPost(StitchAllPre(parts))
	require.Len(t, got, 4)
	assertContiguous(t, got)

	assert.Equal(t, target.ID, got[0].EventID)
	assert.Equal(t, 1, got[0].Part)
	assert.Equal(t, post.ID, got[3].EventID)
	assert.Equal(t, 4, got[3].Part)
}

func TestStitchPreLinkedOnlyByBuffer(t *testing.T) {
	target, pre, post, _ := bufferedEvents()
	target.PreEventID = model.EventKey{}

	parts := GenerateAll([]*model.Event{pre, target, post}, "host-1", model.GridFull)

	got := StitchAllPost(StitchAllPre(parts))
	require.Len(t, got, 6)
	assertContiguous(t, got)

	for _, p := range got {
		assert.Equal(t, got[0].GroupID, p.GroupID)
	}
	assert.Equal(t, pre.ID, got[0].EventID)
	assert.Equal(t, 1, got[0].Part)
	assert.Equal(t, post.ID, got[5].EventID)
	assert.Equal(t, 6, got[5].Part)
}

func TestStitchWithoutBuffers(t *testing.T) {
	_, _, _, other := bufferedEvents()
	parts := Generate(other, "host-1", model.GridFull)

	assert.Equal(t, parts, StitchAllPost(StitchAllPre(parts)))
}

func TestValidateEventDates(t *testing.T) {
	pref := &model.UserPreference{
		StartTimes: []model.DayTime{{Day: 1, Hour: 9}},
		EndTimes:   []model.DayTime{{Day: 1, Hour: 17}},
	}

	tests := []struct {
		name         string
		event        *model.Event
		want         bool
		wantExternal bool
	}{
		{
			name:         "inside work hours",
			event:        newEvent("e", "2024-01-01T10:00:00", "2024-01-01T11:00:00"),
			want:         true,
			wantExternal: true,
		},
		{
			name:         "starts before work",
			event:        newEvent("e", "2024-01-01T08:00:00", "2024-01-01T09:30:00"),
			wantExternal: true,
		},
		{
			name:         "starts after work",
			event:        newEvent("e", "2024-01-01T18:00:00", "2024-01-01T19:00:00"),
			wantExternal: true,
		},
		{
			name:         "no work hours that day",
			event:        newEvent("e", "2024-01-02T10:00:00", "2024-01-02T11:00:00"),
			wantExternal: true,
		},
		{
			name:  "ends before it starts",
			event: newEvent("e", "2024-01-01T11:00:00", "2024-01-01T10:00:00"),
		},
		{
			name:  "zero length",
			event: newEvent("e", "2024-01-01T11:00:00", "2024-01-01T11:00:00"),
		},
		{
			name:  "a whole day",
			event: newEvent("e", "2024-01-01T10:00:00", "2024-01-02T10:00:00"),
		},
		{
			name: "no zone",
			event: &model.Event{
				StartDate: model.MustParseWallClock("2024-01-01T10:00:00", ""),
				EndDate:   model.MustParseWallClock("2024-01-01T11:00:00", ""),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEventDates(tt.event, pref))
			assert.Equal(t, tt.wantExternal, ValidateExternalEventDates(tt.event))
		})
	}
}
