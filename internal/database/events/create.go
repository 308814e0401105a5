package events

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

// UpsertEvents inserts events or overwrites the stored rows with the same id. The preferred time
// ranges of every written event are replaced by the ones it carries.
func (r *Repository) UpsertEvents(ctx context.Context, q database.Queryable, events []*model.Event) error {
	if len(events) == 0 {
		return nil
	}

	updates := make([]string, 0, len(eventColumns)-1)
	for _, c := range eventColumns[1:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", c, c))
	}

	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(eventColumns...).
		Suffix("on conflict (id) do update set " + strings.Join(updates, ", "))

	ids := make([]string, len(events))
	for i, e := range events {
		qb = qb.Values(eventValues(e)...)
		ids[i] = e.ID.String()
	}

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return r.replacePreferredTimeRanges(ctx, q, ids, events)
}

func (*Repository) replacePreferredTimeRanges(ctx context.Context, q database.Queryable, ids []string, events []*model.Event) error {
	del := database.PSQL.
		Delete(database.PreferredTimeRangesTable).
		Where(sq.Eq{"event_id": ids})

	if _, err := q.Exec(ctx, del); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	qb := database.PSQL.
		Insert(database.PreferredTimeRangesTable).
		Columns("id", "event_id", "user_id", "day_of_week", "start_time", "end_time")

	var n int
	for _, e := range events {
		for _, tr := range e.PreferredTimeRanges {
			var day *int
			if tr.DayOfWeek != 0 {
				d := tr.DayOfWeek
				day = &d
			}
			qb = qb.Values(tr.ID, e.ID.String(), e.UserID, day, tr.StartTime, tr.EndTime)
			n++
		}
	}
	if n == 0 {
		return nil
	}

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
