package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

// SaveEvents writes generated events in one transaction.
func (s *Service) SaveEvents(ctx context.Context, events []*model.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.eventsRepository.UpsertEvents(ctx, tx, events); err != nil {
		return fmt.Errorf("eventsRepository.UpsertEvents: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
