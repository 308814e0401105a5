package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"go.uber.org/zap"
)

type Service struct {
	db                    database.PGX
	logger                *zap.SugaredLogger
	preferencesRepository preferencesRepository
	cache                 preferencesCache
}

type preferencesRepository interface {
	GetPreference(ctx context.Context, q database.Queryable, userID string) (*model.UserPreference, error)
}

type preferencesCache interface {
	Get(ctx context.Context, userID string) (*model.UserPreference, error)
	Set(ctx context.Context, pref *model.UserPreference) error
}

func NewService(db database.PGX, logger *zap.SugaredLogger, repo preferencesRepository, cache preferencesCache) *Service {
	return &Service{
		db:                    db,
		logger:                logger,
		preferencesRepository: repo,
		cache:                 cache,
	}
}

// GetPreference reads through the cache. A broken cache only costs a database read.
func (s *Service) GetPreference(ctx context.Context, userID string) (*model.UserPreference, error) {
	pref, err := s.cache.Get(ctx, userID)
	switch {
	case err == nil:
		return pref, nil
	case !errors.Is(err, model.ErrNoRecord):
		s.logger.Warnw("preferences cache read failed", "userId", userID, "err", err)
	}

	pref, err = s.preferencesRepository.GetPreference(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("preferencesRepository.GetPreference: %w", err)
	}

	if err := s.cache.Set(ctx, pref); err != nil {
		s.logger.Warnw("preferences cache write failed", "userId", userID, "err", err)
	}

	return pref, nil
}
