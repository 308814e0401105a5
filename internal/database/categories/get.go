package categories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

func (*Repository) GetCategories(ctx context.Context, q database.Queryable, userID string) ([]*model.Category, error) {
	return getCategories(ctx, q, baseQuery.
		Where(sq.Eq{"c.user_id": userID, "c.deleted": false}).
		OrderBy("c.name"))
}

func (*Repository) GetCategoriesForEvent(ctx context.Context, q database.Queryable, eventID model.EventKey) ([]*model.Category, error) {
	return getCategories(ctx, q, baseQuery.
		Join(database.CategoryEventsTable+" ce on c.id = ce.category_id").
		Where(sq.Eq{"ce.event_id": eventID.String(), "ce.deleted": false, "c.deleted": false}).
		OrderBy("ce.created_at"))
}

func getCategories(ctx context.Context, q database.Queryable, qb sq.SelectBuilder) ([]*model.Category, error) {
	var dtos []*categoryDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Category, len(dtos))
	for i, d := range dtos {
		res[i] = mapToCategory(d)
	}

	return res, nil
}
