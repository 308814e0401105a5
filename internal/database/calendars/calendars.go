package calendars

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/jackc/pgx/v4"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

type calendarDTO struct {
	ID            string
	UserID        string
	Title         string
	GlobalPrimary bool
}

// GetGlobalCalendar returns the calendar generated events are written to.
func (*Repository) GetGlobalCalendar(ctx context.Context, q database.Queryable, userID string) (*model.Calendar, error) {
	qb := database.PSQL.
		Select("id", "user_id", "title", "global_primary").
		From(database.CalendarsTable).
		Where(sq.Eq{"user_id": userID, "global_primary": true, "deleted": false}).
		Limit(1)

	dto := &calendarDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return &model.Calendar{
		ID:            dto.ID,
		UserID:        dto.UserID,
		Title:         dto.Title,
		GlobalPrimary: dto.GlobalPrimary,
	}, nil
}
