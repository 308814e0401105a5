package planner

import (
	"context"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"go.uber.org/zap"
)

type Service struct {
	db                  database.PGX
	logger              *zap.SugaredLogger
	events              eventsService
	preferences         preferencesService
	breaks              breaksService
	calendarsRepository calendarsRepository
	attendeesRepository attendeesRepository
	archive             archiveStore
	solver              solverClient
	settings            Settings
}

type eventsService interface {
	ListEventsForUserGivenDates(ctx context.Context, userID string, from, to model.WallClock) ([]*model.Event, error)
	SaveEvents(ctx context.Context, events []*model.Event) error
}

type preferencesService interface {
	GetPreference(ctx context.Context, userID string) (*model.UserPreference, error)
}

type breaksService interface {
	GenerateForWindow(ctx context.Context, pref *model.UserPreference, start, end model.WallClock, calendarID string) ([]*model.Event, error)
}

type calendarsRepository interface {
	GetGlobalCalendar(ctx context.Context, q database.Queryable, userID string) (*model.Calendar, error)
}

type attendeesRepository interface {
	GetAttendeeEvents(ctx context.Context, q database.Queryable, attendeeID string, from, to model.WallClock) ([]*model.Event, error)
}

type archiveStore interface {
	Put(ctx context.Context, key string, payload interface{}) error
	Get(ctx context.Context, key string) ([]byte, error)
}

type solverClient interface {
	Submit(ctx context.Context, req *model.SolverRequest) error
}

// Settings tune a run independently of its request.
type Settings struct {
	// Concurrency bounds how many attendees are read at once.
	Concurrency int
	CallbackURL string
	Delays      map[model.PlanTier]time.Duration
}

func NewService(
	db database.PGX,
	logger *zap.SugaredLogger,
	events eventsService,
	preferences preferencesService,
	breaks breaksService,
	calendarsRepo calendarsRepository,
	attendeesRepo attendeesRepository,
	archive archiveStore,
	solver solverClient,
	settings Settings,
) *Service {
	if settings.Concurrency <= 0 {
		settings.Concurrency = 1
	}

	return &Service{
		db:                  db,
		logger:              logger,
		events:              events,
		preferences:         preferences,
		breaks:              breaks,
		calendarsRepository: calendarsRepo,
		attendeesRepository: attendeesRepo,
		archive:             archive,
		solver:              solver,
		settings:            settings,
	}
}
