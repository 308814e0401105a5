package events

import (
	"context"

	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

type Service struct {
	db               database.PGX
	eventsRepository eventsRepository
}

type eventsRepository interface {
	GetEventByID(ctx context.Context, q database.Queryable, id model.EventKey) (*model.Event, error)
	GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error)
	GetPreferredTimeRanges(ctx context.Context, q database.Queryable, eventIDs []model.EventKey) ([]model.PreferredTimeRange, error)
	UpsertEvents(ctx context.Context, q database.Queryable, events []*model.Event) error
}

func NewService(db database.PGX, repo eventsRepository) *Service {
	return &Service{
		db:               db,
		eventsRepository: repo,
	}
}
