package preferences

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

type preferenceDTO struct {
	ID                  string
	UserID              string
	StartTimes          []model.DayTime
	EndTimes            []model.DayTime
	BreakLength         *int
	MinNumberOfBreaks   *int
	MaxWorkLoadPercent  *int
	MaxNumberOfMeetings *int
	BackToBackMeetings  bool
	BreakColor          *string
	CopyFlags           model.CopyFlags
}

var baseQuery = database.PSQL.
	Select(
		"id",
		"user_id",
		"start_times",
		"end_times",
		"break_length",
		"min_number_of_breaks",
		"max_work_load_percent",
		"max_number_of_meetings",
		"back_to_back_meetings",
		"break_color",
		"copy_flags",
	).
	From(database.PreferencesTable)

func (*Repository) GetPreference(ctx context.Context, q database.Queryable, userID string) (*model.UserPreference, error) {
	qb := baseQuery.
		Where(sq.Eq{"user_id": userID})

	dto := &preferenceDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToPreference(dto), nil
}

func mapToPreference(dto *preferenceDTO) *model.UserPreference {
	p := &model.UserPreference{
		ID:                 dto.ID,
		UserID:             dto.UserID,
		StartTimes:         dto.StartTimes,
		EndTimes:           dto.EndTimes,
		BackToBackMeetings: dto.BackToBackMeetings,
		CopyFlags:          dto.CopyFlags,
	}
	if dto.BreakLength != nil {
		p.BreakLength = *dto.BreakLength
	}
	if dto.MinNumberOfBreaks != nil {
		p.MinNumberOfBreaks = *dto.MinNumberOfBreaks
	}
	if dto.MaxWorkLoadPercent != nil {
		p.MaxWorkLoadPercent = *dto.MaxWorkLoadPercent
	}
	if dto.MaxNumberOfMeetings != nil {
		p.MaxNumberOfMeetings = *dto.MaxNumberOfMeetings
	}
	if dto.BreakColor != nil {
		p.BreakColor = *dto.BreakColor
	}

	return p
}
