package events

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/teambition/rrule-go"
)

const instanceSeparator = "_"

// instanceKey names one occurrence of a recurring event by the wall clock it starts at.
func instanceKey(master model.EventKey, start model.WallClock) model.EventKey {
	return model.EventKey{
		ID:         fmt.Sprintf("%v%v%v", master.ID, instanceSeparator, start.Clock.Unix()),
		CalendarID: master.CalendarID,
	}
}

func parseInstanceKey(key model.EventKey) (model.EventKey, time.Time, bool) {
	i := strings.LastIndex(key.ID, instanceSeparator)
	if i < 0 {
		return key, time.Time{}, false
	}

	ts, err := strconv.ParseInt(key.ID[i+1:], 10, 64)
	if err != nil {
		return key, time.Time{}, false
	}

	return model.EventKey{ID: key.ID[:i], CalendarID: key.CalendarID}, time.Unix(ts, 0).UTC(), true
}

// rule builds the recurrence of e anchored at its own start wall clock, so occurrences keep their
// local time across offset changes.
func rule(e *model.Event) (*rrule.RRule, error) {
	rOption, err := rrule.StrToROption(e.RecurrenceRule)
	if err != nil {
		return nil, fmt.Errorf("parse recurrence rule %q: %w", e.RecurrenceRule, err)
	}
	rOption.Dtstart = e.StartDate.Clock

	r, err := rrule.NewRRule(*rOption)
	if err != nil {
		return nil, fmt.Errorf("make rule: %w", err)
	}

	return r, nil
}

func occurrence(master *model.Event, start time.Time) *model.Event {
	length := master.Length()

	e := master.Clone()
	e.ID = instanceKey(master.ID, model.WallClockOf(start, master.Timezone))
	e.RecurringEventID = master.ID
	e.RecurrenceRule = ""
	e.StartDate = model.WallClockOf(start, master.Timezone)
	e.EndDate = e.StartDate.Add(length)

	return e
}

// expand lists the occurrences of e overlapping [from, to). Events without a recurrence rule
// expand to themselves when they overlap.
func expand(e *model.Event, from, to model.WallClock) ([]*model.Event, error) {
	if e.RecurrenceRule == "" {
		ok, err := overlaps(e, from, to)
		if err != nil || !ok {
			return nil, err
		}
		return []*model.Event{e}, nil
	}

	r, err := rule(e)
	if err != nil {
		return nil, err
	}

	localFrom, err := from.In(e.Timezone)
	if err != nil {
		return nil, err
	}
	localTo, err := to.In(e.Timezone)
	if err != nil {
		return nil, err
	}

	var res []*model.Event
	for _, start := range r.Between(localFrom.Clock.Add(-e.Length()), localTo.Clock, true) {
		o := occurrence(e, start)

		ok, err := overlaps(o, from, to)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, o)
		}
	}

	return res, nil
}

func overlaps(e *model.Event, from, to model.WallClock) (bool, error) {
	start, end, err := e.HostRange(from.Zone)
	if err != nil {
		return false, err
	}

	return start.Before(to) && from.Before(end), nil
}
