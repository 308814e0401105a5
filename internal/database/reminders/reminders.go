package reminders

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

type reminderDTO struct {
	ID         string
	EventID    string
	UserID     string
	Minutes    int
	Timezone   string
	UseDefault bool
	Deleted    bool
}

func (*Repository) GetReminders(ctx context.Context, q database.Queryable, eventID model.EventKey) ([]model.Reminder, error) {
	qb := database.PSQL.
		Select("id", "event_id", "user_id", "minutes", "timezone", "use_default", "deleted").
		From(database.RemindersTable).
		Where(sq.Eq{"event_id": eventID.String(), "deleted": false}).
		OrderBy("minutes")

	var dtos []*reminderDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]model.Reminder, len(dtos))
	for i, d := range dtos {
		res[i] = model.Reminder{
			ID:         d.ID,
			EventID:    model.ParseEventKey(d.EventID),
			UserID:     d.UserID,
			Minutes:    d.Minutes,
			Timezone:   d.Timezone,
			UseDefault: d.UseDefault,
			Deleted:    d.Deleted,
		}
	}

	return res, nil
}

func (*Repository) CreateReminders(ctx context.Context, q database.Queryable, reminders []model.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	qb := database.PSQL.
		Insert(database.RemindersTable).
		Columns("id", "event_id", "user_id", "minutes", "timezone", "use_default", "deleted")

	for _, r := range reminders {
		qb = qb.Values(r.ID, r.EventID.String(), r.UserID, r.Minutes, r.Timezone, r.UseDefault, r.Deleted)
	}

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
