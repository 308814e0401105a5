package parts

import (
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

const maxEventLength = 24 * time.Hour

// ValidateEventDates reports whether an event of an attendee with stored work hours can be
// partitioned: it needs a zone, a positive length under a day and a start inside the work
// window of its weekday, read in the event's own zone.
func ValidateEventDates(e *model.Event, pref *model.UserPreference) bool {
	if !ValidateExternalEventDates(e) || pref == nil {
		return false
	}

	window, ok := pref.Window(e.StartDate.ISOWeekday())
	if !ok {
		return false
	}

	start, end := window.Bounds(e.StartDate)
	if e.StartDate.After(end) || e.StartDate.Before(start) {
		return false
	}

	return true
}

// ValidateExternalEventDates is ValidateEventDates without the work window check.
func ValidateExternalEventDates(e *model.Event) bool {
	if e == nil || e.Timezone == "" {
		return false
	}

	length := e.Length()
	return length > 0 && length < maxEventLength
}

// FilterValid keeps the events valid for the attendee, pref nil meaning an external attendee.
func FilterValid(events []*model.Event, pref *model.UserPreference) []*model.Event {
	res := make([]*model.Event, 0, len(events))
	for _, e := range events {
		valid := ValidateExternalEventDates(e)
		if pref != nil {
			valid = ValidateEventDates(e, pref)
		}
		if valid {
			res = append(res, e)
		}
	}
	return res
}
