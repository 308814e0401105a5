package cascade

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"go.uber.org/zap"
)

type Service struct {
	db                   database.PGX
	logger               *zap.SugaredLogger
	events               eventsService
	eventsRepository     eventsRepository
	remindersRepository  remindersRepository
	categoriesRepository categoriesRepository
	preferences          preferencesService
	classifier           classifier
	threshold            float64
}

type eventsService interface {
	GetEventByID(ctx context.Context, id model.EventKey) (*model.Event, error)
}

type eventsRepository interface {
	UpsertEvents(ctx context.Context, q database.Queryable, events []*model.Event) error
}

type remindersRepository interface {
	GetReminders(ctx context.Context, q database.Queryable, eventID model.EventKey) ([]model.Reminder, error)
	CreateReminders(ctx context.Context, q database.Queryable, reminders []model.Reminder) error
}

type categoriesRepository interface {
	GetCategories(ctx context.Context, q database.Queryable, userID string) ([]*model.Category, error)
	GetCategoriesForEvent(ctx context.Context, q database.Queryable, eventID model.EventKey) ([]*model.Category, error)
	LinkCategories(ctx context.Context, q database.Queryable, userID string, eventID model.EventKey, categoryIDs []string) error
}

type preferencesService interface {
	GetPreference(ctx context.Context, userID string) (*model.UserPreference, error)
}

type classifier interface {
	Classify(ctx context.Context, sentence string, labels []string) (model.Classification, error)
}

func NewService(
	db database.PGX,
	logger *zap.SugaredLogger,
	events eventsService,
	eventsRepo eventsRepository,
	remindersRepo remindersRepository,
	categoriesRepo categoriesRepository,
	preferences preferencesService,
	classifier classifier,
	threshold float64,
) *Service {
	return &Service{
		db:                   db,
		logger:               logger,
		events:               events,
		eventsRepository:     eventsRepo,
		remindersRepository:  remindersRepo,
		categoriesRepository: categoriesRepo,
		preferences:          preferences,
		classifier:           classifier,
		threshold:            threshold,
	}
}

// Result is an event with its defaults applied and everything derived along the way.
type Result struct {
	Event      *model.Event       `json:"event"`
	Reminders  []model.Reminder   `json:"reminders"`
	Buffers    model.BufferEvents `json:"bufferEvents"`
	Categories []*model.Category  `json:"categories"`
}

// matched is the outcome of classifying an event against the user's categories.
type matched struct {
	best    *model.Category
	meeting []*model.Category
	// link is false when the categories were already attached to the event by the user.
	link bool
}

// ApplyDefaults resolves the defaults of a stored event from its categories, the user's
// preference and, when previousID is set, the event it follows. The result is persisted.
// Events not owned by userID are reported as not found; an empty userID skips the check.
func (s *Service) ApplyDefaults(ctx context.Context, userID string, eventID, previousID model.EventKey) (*Result, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if userID != "" && event.UserID != userID {
		return nil, model.NewNotFoundError(fmt.Sprintf("event %s", eventID), model.ErrNoRecord)
	}

	var previous *model.Event
	if !previousID.IsZero() {
		previous, err = s.getEvent(ctx, previousID)
		if err != nil {
			return nil, err
		}
	}

	pref, err := s.preferences.GetPreference(ctx, event.UserID)
	if err != nil && !errors.Is(err, model.ErrNoRecord) {
		return nil, model.NewCollaboratorError("get preference", err)
	}

	m, err := s.match(ctx, event)
	if err != nil {
		return nil, err
	}

	res, err := s.derive(ctx, event, previous, pref, m)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, res, m.link); err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) getEvent(ctx context.Context, id model.EventKey) (*model.Event, error) {
	event, err := s.events.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return nil, model.NewNotFoundError(fmt.Sprintf("event %v", id), err)
		}
		return nil, fmt.Errorf("events.GetEventByID: %w", err)
	}
	return event, nil
}

func (s *Service) match(ctx context.Context, event *model.Event) (matched, error) {
	if event.UserModifiedCategories {
		assigned, err := s.categoriesRepository.GetCategoriesForEvent(ctx, s.db, event.ID)
		if err != nil {
			return matched{}, fmt.Errorf("categoriesRepository.GetCategoriesForEvent: %w", err)
		}
		if len(assigned) == 0 {
			return matched{}, nil
		}

		c, err := s.classify(ctx, event, assigned)
		if err != nil {
			return matched{}, err
		}

		label, _ := BestMatchAny(c)
		return matched{
			best:    findByName(assigned, label),
			meeting: MeetingCategories(event, c, assigned, s.threshold),
		}, nil
	}

	categories, err := s.categoriesRepository.GetCategories(ctx, s.db, event.UserID)
	if err != nil {
		return matched{}, fmt.Errorf("categoriesRepository.GetCategories: %w", err)
	}
	if len(categories) == 0 {
		return matched{}, nil
	}

	c, err := s.classify(ctx, event, categories)
	if err != nil {
		return matched{}, err
	}

	label, ok := BestMatch(c, s.threshold)
	if !ok {
		return matched{}, nil
	}

	best := findByName(categories, label)
	if best == nil {
		return matched{}, nil
	}

	return matched{
		best:    best,
		meeting: MeetingCategories(event, c, categories, s.threshold),
		link:    true,
	}, nil
}

func (s *Service) classify(ctx context.Context, event *model.Event, categories []*model.Category) (model.Classification, error) {
	c, err := s.classifier.Classify(ctx, Sentence(event), names(categories))
	if err != nil {
		return model.Classification{}, model.NewCollaboratorError(fmt.Sprintf("classify event %v", event.ID), err)
	}
	return c, nil
}

// derive runs the cascade: best match first, meeting categories after it, then what the
// previous event hands down.
func (s *Service) derive(ctx context.Context, event, previous *model.Event, pref *model.UserPreference, m matched) (*Result, error) {
	cur := event
	var reminders []model.Reminder
	var bufs, b model.BufferEvents

	applied := Unique(append([]*model.Category{m.best}, m.meeting...))
	for _, c := range applied {
		cur = Apply(Inputs{Event: cur, Previous: previous, Category: c, Preference: pref})
		reminders = uniqueByMinutes(append(reminders, CategoryReminders(cur, c, previous)...))

		cur, b = CategoryBuffers(cur, c, previous)
		bufs = mergeBuffers(bufs, b)
	}

	if previous != nil {
		if len(applied) == 0 {
			cur = Apply(Inputs{Event: cur, Previous: previous, Preference: pref})
		}

		old, err := s.remindersRepository.GetReminders(ctx, s.db, previous.ID)
		if err != nil {
			return nil, fmt.Errorf("remindersRepository.GetReminders: %w", err)
		}

		copied := PreviousReminders(cur, previous, old)
		if len(copied) == 0 {
			copied = PreferenceReminders(cur, previous, pref, old)
		}
		reminders = uniqueByMinutes(append(reminders, copied...))

		cur, b = PreviousBuffers(cur, previous)
		if b.IsZero() {
			cur, b = PreferenceBuffers(cur, previous, pref)
		}
		bufs = mergeBuffers(bufs, b)
	}

	return &Result{
		Event:      cur,
		Reminders:  reminders,
		Buffers:    bufs,
		Categories: applied,
	}, nil
}

func (s *Service) save(ctx context.Context, res *Result, link bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	events := []*model.Event{res.Event}
	if res.Buffers.BeforeEvent != nil {
		events = append(events, res.Buffers.BeforeEvent)
	}
	if res.Buffers.AfterEvent != nil {
		events = append(events, res.Buffers.AfterEvent)
	}

	if err := s.eventsRepository.UpsertEvents(ctx, tx, events); err != nil {
		return fmt.Errorf("eventsRepository.UpsertEvents: %w", err)
	}

	if len(res.Reminders) > 0 {
		if err := s.remindersRepository.CreateReminders(ctx, tx, res.Reminders); err != nil {
			return fmt.Errorf("remindersRepository.CreateReminders: %w", err)
		}
	}

	if link && len(res.Categories) > 0 {
		ids := make([]string, len(res.Categories))
		for i, c := range res.Categories {
			ids[i] = c.ID
		}
		if err := s.categoriesRepository.LinkCategories(ctx, tx, res.Event.UserID, res.Event.ID, ids); err != nil {
			return fmt.Errorf("categoriesRepository.LinkCategories: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Infow("defaults applied",
		"eventId", res.Event.ID.String(),
		"categories", len(res.Categories),
		"reminders", len(res.Reminders),
	)

	return nil
}
