package cascade

import (
	"testing"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryReminders(t *testing.T) {
	copying := func() *model.Category {
		c := category()
		c.CopyReminders = true
		return c
	}

	tests := []struct {
		name     string
		event    func() *model.Event
		category func() *model.Category
		previous func() *model.Event
		want     []int
	}{
		{
			name:     "category copies reminders",
			event:    baseEvent,
			category: copying,
			previous: func() *model.Event { return nil },
			want:     []int{10, 30},
		},
		{
			name:     "category without copy flag",
			event:    baseEvent,
			category: category,
			previous: func() *model.Event { return nil },
		},
		{
			name: "reminders set by the user",
			event: func() *model.Event {
				e := baseEvent()
				e.UserModifiedReminders = true
				return e
			},
			category: copying,
			previous: func() *model.Event { return nil },
		},
		{
			name:     "previous event reminders take over",
			event:    baseEvent,
			category: copying,
			previous: func() *model.Event {
				p := previousEvent()
				p.CopyReminders = true
				return p
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryReminders(tt.event(), tt.category(), tt.previous())

			minutes := make([]int, 0, len(got))
			for _, r := range got {
				minutes = append(minutes, r.Minutes)
				assert.Equal(t, model.EventKey{ID: "e1", CalendarID: "work"}, r.EventID)
				assert.NotEmpty(t, r.ID)
			}
			if tt.want == nil {
				assert.Empty(t, minutes)
				return
			}
			assert.Equal(t, tt.want, minutes)
		})
	}
}

func TestPreviousAndPreferenceReminders(t *testing.T) {
	old := []model.Reminder{{ID: "r1", EventID: model.EventKey{ID: "prev"}, Minutes: 15, Deleted: true}}
	e := baseEvent()
	prev := previousEvent()

	assert.Empty(t, PreviousReminders(e, prev, old))

	pref := &model.UserPreference{CopyFlags: model.CopyFlags{CopyReminders: true}}
	got := PreferenceReminders(e, prev, pref, old)
	require.Len(t, got, 1)
	assert.NotEqual(t, "r1", got[0].ID)
	assert.Equal(t, e.ID, got[0].EventID)
	assert.False(t, got[0].Deleted)

	assert.Empty(t, PreferenceReminders(e, nil, pref, old), "needs a previous event")

	prev.CopyReminders = true
	assert.Len(t, PreviousReminders(e, prev, old), 1)
}

func TestCategoryBuffers(t *testing.T) {
	cat := category()
	cat.CopyTimeBlocking = true

	got, bufs := CategoryBuffers(baseEvent(), cat, nil)
	require.NotNil(t, bufs.BeforeEvent)
	require.NotNil(t, bufs.AfterEvent)
	assert.NotEqual(t, bufs.BeforeEvent.ID, bufs.AfterEvent.ID)
	assert.Equal(t, "2024-01-01T09:45:00", bufs.BeforeEvent.StartDate.String())
	assert.Equal(t, "2024-01-01T10:35:00", bufs.AfterEvent.EndDate.String())
	assert.Equal(t, bufs.BeforeEvent.ID, got.PreEventID)
	assert.Equal(t, &model.BufferTimes{BeforeEvent: 15, AfterEvent: 5}, got.TimeBlocking)

	prev := previousEvent()
	prev.CopyTimeBlocking = true
	_, bufs = CategoryBuffers(baseEvent(), cat, prev)
	assert.True(t, bufs.IsZero(), "previous event buffers take precedence")

	locked := baseEvent()
	locked.UserModifiedTimeBlocking = true
	_, bufs = CategoryBuffers(locked, cat, nil)
	assert.True(t, bufs.IsZero())
}

func TestPreviousBuffers(t *testing.T) {
	prev := previousEvent()

	_, bufs := PreviousBuffers(baseEvent(), prev)
	assert.True(t, bufs.IsZero())

	_, bufs = PreferenceBuffers(baseEvent(), prev, &model.UserPreference{CopyFlags: model.CopyFlags{CopyTimeBlocking: true}})
	require.NotNil(t, bufs.BeforeEvent)
	assert.Nil(t, bufs.AfterEvent)

	prev.CopyTimeBlocking = true
	got, bufs := PreviousBuffers(baseEvent(), prev)
	require.NotNil(t, bufs.BeforeEvent)
	assert.Equal(t, "2024-01-01T09:50:00", bufs.BeforeEvent.StartDate.String())
	assert.Equal(t, bufs.BeforeEvent.ID, got.PreEventID)
}

func TestUniqueByMinutes(t *testing.T) {
	got := uniqueByMinutes([]model.Reminder{{ID: "a", Minutes: 10}, {ID: "b", Minutes: 30}, {ID: "c", Minutes: 10}})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}
