package breaks

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"go.uber.org/zap"
)

type Service struct {
	logger *zap.SugaredLogger
	events eventsService
}

type eventsService interface {
	ListEventsForDate(ctx context.Context, userID string, from, to model.WallClock) ([]*model.Event, error)
}

func NewService(logger *zap.SugaredLogger, events eventsService) *Service {
	return &Service{
		logger: logger,
		events: events,
	}
}

// GenerateForWindow places the breaks owed on every day of [start, end] for one user. start and end
// are host wall clocks. On the first day breaks are owed and placed only after start, but they
// still keep clear of the events earlier that day.
func (s *Service) GenerateForWindow(ctx context.Context, pref *model.UserPreference, start, end model.WallClock, calendarID string) ([]*model.Event, error) {
	if pref == nil {
		return nil, model.NewValidationError("user preference is required")
	}
	if pref.BreakLength <= 0 {
		return nil, nil
	}

	var res []*model.Event
	for i, day := range model.Days(start, end) {
		window, ok := pref.Window(day.ISOWeekday())
		if !ok {
			continue
		}

		from, to := window.Bounds(day)
		if i == 0 && day.After(to) {
			continue
		}

		events, err := s.events.ListEventsForDate(ctx, pref.UserID, from, to)
		if err != nil {
			return nil, model.NewCollaboratorError(fmt.Sprintf("list events of %s for %s", pref.UserID, day.Date()), err)
		}

		// the budget only counts what is left of the first day, placement has to avoid all of it
		remaining := events
		if i == 0 && day.After(from) {
			remaining, err = runningAt(events, day)
			if err != nil {
				return nil, fmt.Errorf("events of %s for %s: %w", pref.UserID, day.Date(), err)
			}
		}

		if !ShouldGenerate(window.Hours(), pref, remaining) {
			continue
		}

		out, err := Adjust(events, Generate(window.Hours(), pref, remaining, day, calendarID), pref, day)
		if err != nil {
			return nil, fmt.Errorf("adjust breaks for %s: %w", day.Date(), err)
		}

		if len(out.Dropped) > 0 {
			s.logger.Warnw("no gap for breaks",
				"userId", pref.UserID,
				"day", day.Date(),
				"dropped", len(out.Dropped),
			)
		}

		res = append(res, out.Placed...)
	}

	return res, nil
}

// runningAt keeps the events that have not ended at t.
func runningAt(events []*model.Event, t model.WallClock) ([]*model.Event, error) {
	res := make([]*model.Event, 0, len(events))
	for _, e := range events {
		_, end, err := e.HostRange(t.Zone)
		if err != nil {
			return nil, err
		}
		if end.After(t) {
			res = append(res, e)
		}
	}
	return res, nil
}
