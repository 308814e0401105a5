package worktime

import (
	"fmt"
	"sort"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

// FromPreference builds the weekly work-time envelope of an attendee with stored preferences.
// ref is a host wall clock fixing the week the zone offsets are taken from.
func FromPreference(pref *model.UserPreference, userID, hostID string, ref model.WallClock, userZone string) ([]model.WorkTime, error) {
	if pref == nil {
		return nil, model.NewValidationError(fmt.Sprintf("no preference for user %s", userID))
	}

	res := make([]model.WorkTime, 0, 7)
	for i := 0; i < 7; i++ {
		day := ref.AddDays(i)

		window, ok, err := HostWindow(pref, day, userZone)
		if err != nil {
			return nil, fmt.Errorf("host window for day %d: %w", day.ISOWeekday(), err)
		}
		if !ok {
			continue
		}

		res = append(res, newWorkTime(day.ISOWeekday(), window, userID, hostID))
	}

	sortByDay(res)
	return res, nil
}

// FromEvents builds the envelope of an attendee known only through their events.
// Weekdays without any event get no work time.
func FromEvents(events []*model.Event, userID, hostID, hostZone string) ([]model.WorkTime, error) {
	var res []model.WorkTime

	for day := 1; day <= 7; day++ {
		window, ok, err := EventsWindow(events, day, hostZone)
		if err != nil {
			return nil, fmt.Errorf("events window for day %d: %w", day, err)
		}
		if !ok {
			continue
		}

		res = append(res, newWorkTime(day, window, userID, hostID))
	}

	return res, nil
}

func newWorkTime(isoDay int, w model.DayWindow, userID, hostID string) model.WorkTime {
	return model.WorkTime{
		DayOfWeek: model.DayOfWeekName(isoDay),
		StartTime: fmt.Sprintf("%02d:%02d:00", w.StartHour, w.StartMinute),
		EndTime:   fmt.Sprintf("%02d:%02d:00", w.EndHour, w.EndMinute),
		HostID:    hostID,
		UserID:    userID,
	}
}

func sortByDay(ws []model.WorkTime) {
	order := make(map[string]int, 7)
	for i := 1; i <= 7; i++ {
		order[model.DayOfWeekName(i)] = i
	}

	sort.SliceStable(ws, func(i, j int) bool {
		return order[ws[i].DayOfWeek] < order[ws[j].DayOfWeek]
	})
}
