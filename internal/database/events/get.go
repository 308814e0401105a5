package events

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/jackc/pgx/v4"
)

func (*Repository) GetEventByID(ctx context.Context, q database.Queryable, id model.EventKey) (*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id.String(), "deleted": false})

	dto := &eventDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToEvent(dto), nil
}

// GetEvents returns the user's events and recurring masters that may overlap the filter window.
// Stored dates are wall clocks of differing zones, so the window is widened by a day on each
// side and callers narrow the result.
func (*Repository) GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error) {
	from := filter.From.AddDays(-1).Clock
	to := filter.To.AddDays(1).Clock

	qb := baseQuery.
		Where(sq.Eq{"user_id": filter.UserID, "deleted": false}).
		Where(sq.Lt{"start_date": to}).
		Where(sq.Or{sq.Gt{"end_date": from}, sq.NotEq{"recurrence_rule": nil}}).
		OrderBy("start_date", "id")

	if !filter.AllDay {
		qb = qb.Where(sq.Eq{"all_day": false})
	}

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}

func (*Repository) GetPreferredTimeRanges(ctx context.Context, q database.Queryable, eventIDs []model.EventKey) ([]model.PreferredTimeRange, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(eventIDs))
	for i, id := range eventIDs {
		ids[i] = id.String()
	}

	qb := rangesQuery.
		Where(sq.Eq{"event_id": ids}).
		OrderBy("event_id", "day_of_week", "start_time")

	var dtos []*rangeDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]model.PreferredTimeRange, len(dtos))
	for i, d := range dtos {
		res[i] = mapToRange(d)
	}

	return res, nil
}
