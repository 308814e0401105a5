package buffers

import (
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/google/uuid"
)

// Mint creates the buffer events reserving times.BeforeEvent minutes before and times.AfterEvent
// minutes after e. The returned copy of e links to them and records the buffer lengths.
// Existing pre/post links are reused, so minting again updates the same buffers.
func Mint(e *model.Event, times *model.BufferTimes) (*model.Event, model.BufferEvents) {
	res := e.Clone()
	var out model.BufferEvents

	if times.IsZero() {
		return res, out
	}

	if times.BeforeEvent > 0 {
		key, method := bufferKey(e.PreEventID, e.CalendarID)
		before := newBuffer(e, key, method)
		before.IsPreEvent = true
		before.StartDate = e.StartDate.Add(-time.Duration(times.BeforeEvent) * time.Minute)
		before.EndDate = e.StartDate

		out.BeforeEvent = before
		res.PreEventID = key
		res.TimeBlocking = withBefore(res.TimeBlocking, times.BeforeEvent)
	}

	if times.AfterEvent > 0 {
		key, method := bufferKey(e.PostEventID, e.CalendarID)
		after := newBuffer(e, key, method)
		after.IsPostEvent = true
		after.StartDate = e.EndDate
		after.EndDate = e.EndDate.Add(time.Duration(times.AfterEvent) * time.Minute)

		out.AfterEvent = after
		res.PostEventID = key
		res.TimeBlocking = withAfter(res.TimeBlocking, times.AfterEvent)
	}

	return res, out
}

func bufferKey(existing model.EventKey, calendarID string) (model.EventKey, model.Method) {
	if !existing.IsZero() {
		return existing, model.MethodUpdate
	}
	return model.EventKey{ID: uuid.NewString(), CalendarID: calendarID}, model.MethodCreate
}

func newBuffer(e *model.Event, key model.EventKey, method model.Method) *model.Event {
	return &model.Event{
		ID:         key,
		UserID:     e.UserID,
		CalendarID: e.CalendarID,
		Title:      model.BufferTitle,
		Notes:      model.BufferTitle,
		Timezone:   e.Timezone,
		ForEventID: e.ID,
		Priority:   1,
		Modifiable: true,
		Method:     method,
	}
}

func withBefore(tb *model.BufferTimes, minutes int) *model.BufferTimes {
	res := model.BufferTimes{}
	if tb != nil {
		res = *tb
	}
	res.BeforeEvent = minutes
	return &res
}

func withAfter(tb *model.BufferTimes, minutes int) *model.BufferTimes {
	res := model.BufferTimes{}
	if tb != nil {
		res = *tb
	}
	res.AfterEvent = minutes
	return &res
}
