package slots

import (
	"fmt"

	"github.com/SergeyKozhin/schedule-assist/internal/business/worktime"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

// Day describes one calendar day to cut into slots.
type Day struct {
	// Ref is a host wall clock on the day. On the first day of a window it is also the earliest usable instant.
	Ref      model.WallClock
	Window   model.DayWindow
	HostID   string
	FirstDay bool
}

// Generate cuts the work window of one day into grid-wide slots labelled on the host clock.
func Generate(d Day, grid model.Grid) []model.TimeSlot {
	start, end := d.Window.Bounds(d.Ref)

	if d.FirstDay {
		if d.Ref.After(end) {
			return nil
		}

		if !d.Ref.Before(start) {
			snapped := d.Ref.At(d.Ref.Hour(), grid.Snap(d.Ref.Minute()))
			if snapped.After(start) {
				start = snapped
			}
		}
	}

	total := int(end.Sub(start).Minutes())
	if total <= 0 {
		return nil
	}

	step := int(grid)
	res := make([]model.TimeSlot, 0, (total+step-1)/step)
	for i := 0; i < total; i += step {
		from := start.Add(model.Grid(i).Duration())
		to := from.Add(grid.Duration())

		res = append(res, model.TimeSlot{
			DayOfWeek: model.DayOfWeekName(from.ISOWeekday()),
			StartTime: from.Clock.Format(model.ClockLayout),
			EndTime:   to.Clock.Format(model.ClockLayout),
			HostID:    d.HostID,
			MonthDay:  from.MonthDay(),
			Date:      from.Date(),
		})
	}

	return res
}

// ForPreference generates the slots of an attendee with stored work hours.
func ForPreference(ref model.WallClock, pref *model.UserPreference, hostID, userZone string, firstDay bool, grid model.Grid) ([]model.TimeSlot, error) {
	window, ok, err := worktime.HostWindow(pref, ref, userZone)
	if err != nil {
		return nil, fmt.Errorf("host window: %w", err)
	}
	if !ok {
		return nil, nil
	}

	return Generate(Day{Ref: ref, Window: window, HostID: hostID, FirstDay: firstDay}, grid), nil
}

// ForEvents generates the slots of an attendee whose work hours are inferred from their events.
func ForEvents(ref model.WallClock, events []*model.Event, hostID string, firstDay bool, grid model.Grid) ([]model.TimeSlot, error) {
	window, ok, err := worktime.EventsWindow(events, ref.ISOWeekday(), ref.Zone)
	if err != nil {
		return nil, fmt.Errorf("events window: %w", err)
	}
	if !ok {
		return nil, nil
	}

	return Generate(Day{Ref: ref, Window: window, HostID: hostID, FirstDay: firstDay}, grid), nil
}
