package events

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

// ListEventsForDate returns the user's events, all-day ones included, overlapping [from, to).
// The window is read on the clock of from.Zone, the events keep their own zones.
func (s *Service) ListEventsForDate(ctx context.Context, userID string, from, to model.WallClock) ([]*model.Event, error) {
	return s.list(ctx, model.EventsFilter{
		UserID:   userID,
		From:     from,
		To:       to,
		Timezone: from.Zone,
		AllDay:   true,
	})
}

// ListEventsForUserGivenDates is ListEventsForDate without all-day events.
func (s *Service) ListEventsForUserGivenDates(ctx context.Context, userID string, from, to model.WallClock) ([]*model.Event, error) {
	return s.list(ctx, model.EventsFilter{
		UserID:   userID,
		From:     from,
		To:       to,
		Timezone: from.Zone,
	})
}

func (s *Service) list(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error) {
	stored, err := s.eventsRepository.GetEvents(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEvents: %w", err)
	}

	var res []*model.Event
	for _, e := range stored {
		if e.AllDay && !filter.AllDay {
			continue
		}

		occurrences, err := expand(e, filter.From, filter.To)
		if err != nil {
			return nil, fmt.Errorf("expand %v: %w", e.ID, err)
		}
		res = append(res, occurrences...)
	}

	if err := s.attachRanges(ctx, res); err != nil {
		return nil, err
	}

	starts := make(map[*model.Event]model.WallClock, len(res))
	for _, e := range res {
		start, _, err := e.HostRange(filter.Timezone)
		if err != nil {
			return nil, err
		}
		starts[e] = start
	}

	sort.SliceStable(res, func(i, j int) bool {
		return starts[res[i]].Before(starts[res[j]])
	})

	return res, nil
}

// attachRanges loads preferred time ranges, occurrences share the ranges of their master.
func (s *Service) attachRanges(ctx context.Context, events []*model.Event) error {
	if len(events) == 0 {
		return nil
	}

	owner := func(e *model.Event) model.EventKey {
		if !e.RecurringEventID.IsZero() {
			return e.RecurringEventID
		}
		return e.ID
	}

	seen := make(map[model.EventKey]struct{}, len(events))
	ids := make([]model.EventKey, 0, len(events))
	for _, e := range events {
		id := owner(e)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	ranges, err := s.eventsRepository.GetPreferredTimeRanges(ctx, s.db, ids)
	if err != nil {
		return fmt.Errorf("eventsRepository.GetPreferredTimeRanges: %w", err)
	}

	byEvent := make(map[model.EventKey][]model.PreferredTimeRange, len(ranges))
	for _, r := range ranges {
		byEvent[r.EventID] = append(byEvent[r.EventID], r)
	}

	for _, e := range events {
		if rs, ok := byEvent[owner(e)]; ok {
			e.PreferredTimeRanges = append([]model.PreferredTimeRange(nil), rs...)
		}
	}

	return nil
}

// GetEventByID resolves stored events and occurrences of recurring ones.
func (s *Service) GetEventByID(ctx context.Context, id model.EventKey) (*model.Event, error) {
	event, err := s.eventsRepository.GetEventByID(ctx, s.db, id)
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, model.ErrNoRecord) {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	masterID, ts, ok := parseInstanceKey(id)
	if !ok {
		return nil, model.ErrNoRecord
	}

	master, err := s.eventsRepository.GetEventByID(ctx, s.db, masterID)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}
	if master.RecurrenceRule == "" {
		return nil, model.ErrNoRecord
	}

	r, err := rule(master)
	if err != nil {
		return nil, err
	}

	if !r.After(ts, true).Equal(ts) {
		return nil, model.ErrNoRecord
	}

	return occurrence(master, ts), nil
}
