package planner

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

const (
	externalMaxWorkLoadPercent  = 100
	externalMaxNumberOfMeetings = 99
)

// attendeeBody is what formatting needs to know about the owner of a part.
type attendeeBody struct {
	user         model.PlannerUser
	workingHours func(isoDay int) float64
}

func internalUser(pref *model.UserPreference, userID, hostID string, workTimes []model.WorkTime) model.PlannerUser {
	return model.PlannerUser{
		ID:                  userID,
		MaxWorkLoadPercent:  pref.MaxWorkLoadPercent,
		BackToBackMeetings:  pref.BackToBackMeetings,
		MaxNumberOfMeetings: pref.MaxNumberOfMeetings,
		MinNumberOfBreaks:   pref.MinNumberOfBreaks,
		WorkTimes:           workTimes,
		HostID:              hostID,
	}
}

func externalUser(userID, hostID string, workTimes []model.WorkTime) model.PlannerUser {
	return model.PlannerUser{
		ID:                  userID,
		MaxWorkLoadPercent:  externalMaxWorkLoadPercent,
		BackToBackMeetings:  false,
		MaxNumberOfMeetings: externalMaxNumberOfMeetings,
		MinNumberOfBreaks:   0,
		WorkTimes:           workTimes,
		HostID:              hostID,
	}
}

// formatPart turns a part into its solver form with every time read on the host clock.
// All-day events are not planned and report false.
func formatPart(p model.EventPart, body attendeeBody, hostZone string) (model.PlannerEventPart, bool, error) {
	e := p.Event
	if e == nil || e.AllDay {
		return model.PlannerEventPart{}, false, nil
	}

	start, end, err := e.HostRange(hostZone)
	if err != nil {
		return model.PlannerEventPart{}, false, err
	}

	preferredTime, err := hostTime(e, e.PreferredTime, hostZone)
	if err != nil {
		return model.PlannerEventPart{}, false, err
	}
	startRange, err := hostTime(e, e.PreferredStartTimeRange, hostZone)
	if err != nil {
		return model.PlannerEventPart{}, false, err
	}
	endRange, err := hostTime(e, e.PreferredEndTimeRange, hostZone)
	if err != nil {
		return model.PlannerEventPart{}, false, err
	}

	var ranges []model.PlannerTimeRange
	for _, r := range e.PreferredTimeRanges {
		from, err := hostTime(e, r.StartTime, hostZone)
		if err != nil {
			return model.PlannerEventPart{}, false, err
		}
		to, err := hostTime(e, r.EndTime, hostZone)
		if err != nil {
			return model.PlannerEventPart{}, false, err
		}

		ranges = append(ranges, model.PlannerTimeRange{
			DayOfWeek: model.DayOfWeekName(r.DayOfWeek),
			StartTime: from,
			EndTime:   to,
			EventID:   p.EventID,
			UserID:    e.UserID,
			HostID:    p.HostID,
		})
	}

	res := model.PlannerEventPart{
		GroupID:                 p.GroupID,
		EventID:                 p.EventID,
		Part:                    p.Part,
		LastPart:                p.LastPart,
		MeetingPart:             p.MeetingPart,
		MeetingLastPart:         p.MeetingLastPart,
		MeetingID:               e.MeetingID,
		HostID:                  p.HostID,
		UserID:                  e.UserID,
		User:                    body.user,
		StartDate:               start.String(),
		EndDate:                 end.String(),
		Priority:                e.Priority,
		IsPreEvent:              e.IsPreEvent,
		IsPostEvent:             e.IsPostEvent,
		ForEventID:              e.ForEventID,
		Modifiable:              e.Modifiable,
		IsMeeting:               e.IsMeeting,
		IsExternalMeeting:       e.IsExternalMeeting,
		Gap:                     e.IsBreak,
		PreferredDayOfWeek:      model.DayOfWeekName(e.PreferredDayOfWeek),
		PreferredTime:           preferredTime,
		PreferredStartTimeRange: startRange,
		PreferredEndTimeRange:   endRange,
		TotalWorkingHours:       body.workingHours(start.ISOWeekday()),
		RecurringEventID:        e.RecurringEventID,
		Event: model.PlannerEvent{
			ID:                  p.EventID,
			UserID:              e.UserID,
			HostID:              p.HostID,
			PreferredTimeRanges: ranges,
			EventType:           e.EventType,
		},
	}
	pin(&res, start)

	return res, true, nil
}

// pin fixes an unmodifiable part without a preferred day or time to where it already is.
func pin(p *model.PlannerEventPart, start model.WallClock) {
	if p.Modifiable || p.PreferredDayOfWeek != "" || p.PreferredTime != "" {
		return
	}

	p.PreferredDayOfWeek = model.DayOfWeekName(start.ISOWeekday())
	p.PreferredTime = start.Clock.Format(model.TimeLayout)
}

// hostTime reads t ("HH:mm" or "HH:mm:ss") on the event's day and zone and returns it on the host clock.
func hostTime(e *model.Event, t, hostZone string) (string, error) {
	if t == "" {
		return "", nil
	}

	if len(t) > len(model.ClockLayout) {
		t = t[:len(model.ClockLayout)]
	}
	clock, err := time.Parse(model.ClockLayout, t)
	if err != nil {
		return "", fmt.Errorf("parse time of %v: %w", e.ID, err)
	}

	local := e.StartDate.Retag(e.Timezone).At(clock.Hour(), clock.Minute())
	host, err := local.In(hostZone)
	if err != nil {
		return "", fmt.Errorf("convert time of %v: %w", e.ID, err)
	}

	return host.Clock.Format(model.TimeLayout), nil
}
