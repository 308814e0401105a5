package buffers

import (
	"testing"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meeting() *model.Event {
	return &model.Event{
		ID:         model.EventKey{ID: "m1", CalendarID: "cal"},
		UserID:     "user-1",
		CalendarID: "cal",
		StartDate:  model.MustParseWallClock("2024-01-01T10:00:00", "Europe/Paris"),
		EndDate:    model.MustParseWallClock("2024-01-01T11:00:00", "Europe/Paris"),
		Timezone:   "Europe/Paris",
	}
}

func TestMint(t *testing.T) {
	e := meeting()

	got, out := Mint(e, &model.BufferTimes{BeforeEvent: 15, AfterEvent: 10})
	require.NotNil(t, out.BeforeEvent)
	require.NotNil(t, out.AfterEvent)

	before, after := out.BeforeEvent, out.AfterEvent
	assert.Equal(t, "2024-01-01T09:45:00", before.StartDate.String())
	assert.Equal(t, "2024-01-01T10:00:00", before.EndDate.String())
	assert.True(t, before.IsPreEvent)
	assert.Equal(t, e.ID, before.ForEventID)
	assert.Equal(t, model.BufferTitle, before.Title)
	assert.Equal(t, model.MethodCreate, before.Method)
	assert.Equal(t, "cal", before.ID.CalendarID)

	assert.Equal(t, "2024-01-01T11:00:00", after.StartDate.String())
	assert.Equal(t, "2024-01-01T11:10:00", after.EndDate.String())
	assert.True(t, after.IsPostEvent)
	assert.NotEqual(t, before.ID, after.ID)

	assert.Equal(t, before.ID, got.PreEventID)
	assert.Equal(t, after.ID, got.PostEventID)
	assert.Equal(t, &model.BufferTimes{BeforeEvent: 15, AfterEvent: 10}, got.TimeBlocking)

	assert.True(t, e.PreEventID.IsZero(), "input event is left untouched")
	assert.Nil(t, e.TimeBlocking)
}

func TestMintReusesLinks(t *testing.T) {
	e := meeting()
	e.PostEventID = model.EventKey{ID: "post", CalendarID: "cal"}
	e.TimeBlocking = &model.BufferTimes{BeforeEvent: 5}

	got, out := Mint(e, &model.BufferTimes{AfterEvent: 30})
	assert.Nil(t, out.BeforeEvent)
	require.NotNil(t, out.AfterEvent)

	assert.Equal(t, e.PostEventID, out.AfterEvent.ID)
	assert.Equal(t, model.MethodUpdate, out.AfterEvent.Method)
	assert.Equal(t, &model.BufferTimes{BeforeEvent: 5, AfterEvent: 30}, got.TimeBlocking)
}

func TestMintNothing(t *testing.T) {
	got, out := Mint(meeting(), nil)
	assert.True(t, out.IsZero())
	assert.Equal(t, meeting(), got)
}
