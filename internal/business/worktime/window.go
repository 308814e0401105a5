package worktime

import (
	"fmt"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

const lastMinuteOfDay = 23*60 + 59

// HostWindow reads the stored work hours of the attendee for the weekday of ref
// and re-reads them on the host clock. ref is a host wall clock, userZone the attendee's zone.
func HostWindow(pref *model.UserPreference, ref model.WallClock, userZone string) (model.DayWindow, bool, error) {
	if pref == nil {
		return model.DayWindow{}, false, model.NewValidationError("user preference is required")
	}

	window, ok := pref.Window(ref.ISOWeekday())
	if !ok {
		return model.DayWindow{}, false, nil
	}

	if userZone == "" || userZone == ref.Zone {
		return window, true, nil
	}

	userRef, err := ref.In(userZone)
	if err != nil {
		return model.DayWindow{}, false, fmt.Errorf("convert reference: %w", err)
	}

	userStart, userEnd := window.Bounds(userRef)
	start, err := userStart.In(ref.Zone)
	if err != nil {
		return model.DayWindow{}, false, fmt.Errorf("convert work start: %w", err)
	}
	end, err := userEnd.In(ref.Zone)
	if err != nil {
		return model.DayWindow{}, false, fmt.Errorf("convert work end: %w", err)
	}

	res := model.DayWindow{
		StartHour:   start.Hour(),
		StartMinute: start.Minute(),
		EndHour:     end.Hour(),
		EndMinute:   end.Minute(),
	}
	if !end.SameDay(start) {
		res.EndHour, res.EndMinute = 23, 59
	}

	return res, true, nil
}

// EventsWindow infers a work window for isoDay from the attendee's own events read on the host clock.
// The earliest start is snapped down to the quarter hour and the latest end rounded up to the next one.
func EventsWindow(events []*model.Event, isoDay int, hostZone string) (model.DayWindow, bool, error) {
	earliest, latest := -1, -1

	for _, e := range events {
		if e == nil || e.AllDay {
			continue
		}

		start, end, err := e.HostRange(hostZone)
		if err != nil {
			return model.DayWindow{}, false, err
		}
		if start.ISOWeekday() != isoDay {
			continue
		}

		s := start.Hour()*60 + start.Minute()
		en := end.Hour()*60 + end.Minute()
		if !end.SameDay(start) {
			en = lastMinuteOfDay
		}

		if earliest < 0 || s < earliest {
			earliest = s
		}
		if latest < 0 || en > latest {
			latest = en
		}
	}

	if earliest < 0 {
		return model.DayWindow{}, false, nil
	}

	endHour, endMinute := roundUpEnd(latest/60, latest%60)

	return model.DayWindow{
		StartHour:   earliest / 60,
		StartMinute: model.GridFull.Snap(earliest % 60),
		EndHour:     endHour,
		EndMinute:   endMinute,
	}, true, nil
}

// roundUpEnd moves an end time to the next quarter hour: 0-14 -> 15, 15-29 -> 30, 30-44 -> 45, 45-59 -> next hour.
func roundUpEnd(hour, minute int) (int, int) {
	switch {
	case minute < 15:
		return hour, 15
	case minute < 30:
		return hour, 30
	case minute < 45:
		return hour, 45
	case hour < 23:
		return hour + 1, 0
	default:
		return 23, 59
	}
}

// WorkingHours is the length in hours of the stored window for isoDay, 0 when none is stored.
func WorkingHours(pref *model.UserPreference, isoDay int) float64 {
	if pref == nil {
		return 0
	}

	window, ok := pref.Window(isoDay)
	if !ok {
		return 0
	}

	return window.Hours()
}
