package categories

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/google/uuid"
)

// LinkCategories attaches categories to an event, links that already exist are kept.
func (*Repository) LinkCategories(ctx context.Context, q database.Queryable, userID string, eventID model.EventKey, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	qb := database.PSQL.
		Insert(database.CategoryEventsTable).
		Columns("id", "user_id", "category_id", "event_id").
		Suffix("on conflict (category_id, event_id) do update set deleted = false")

	for _, id := range categoryIDs {
		qb = qb.Values(uuid.NewString(), userID, id, eventID.String())
	}

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
