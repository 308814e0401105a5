package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

// objectStore is the part of jetstream.ObjectStore the archive uses.
type objectStore interface {
	Put(ctx context.Context, obj jetstream.ObjectMeta, reader io.Reader) (*jetstream.ObjectInfo, error)
	GetBytes(ctx context.Context, name string, opts ...jetstream.GetObjectOpt) ([]byte, error)
}

// Store keeps assembled planner payloads in a JetStream object store bucket.
type Store struct {
	objects objectStore
	logger  *zap.SugaredLogger
}

func NewStore(objects objectStore, logger *zap.SugaredLogger) *Store {
	return &Store{
		objects: objects,
		logger:  logger,
	}
}

// Connect opens the configured bucket, creating it when missing.
func Connect(ctx context.Context, url, bucket string, logger *zap.SugaredLogger) (*Store, error) {
	nc, err := nats.Connect(url, nats.Name("schedule-assist"))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	closer.Bind(func() {
		if err := nc.Drain(); err != nil {
			logger.Errorw("Failed draining nats connection", "err", err)
		}
	})

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("init jetstream: %w", err)
	}

	objects, err := js.CreateOrUpdateObjectStore(ctx, jetstream.ObjectStoreConfig{
		Bucket:      bucket,
		Description: "assembled planner requests",
	})
	if err != nil {
		return nil, fmt.Errorf("open object store %q: %w", bucket, err)
	}

	return NewStore(objects, logger), nil
}

func (s *Store) Put(ctx context.Context, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	if _, err := s.objects.Put(ctx, jetstream.ObjectMeta{
		Name:        key,
		Description: "planner request",
		Headers:     nats.Header{"Content-Type": []string{"application/json"}},
	}, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}

	s.logger.Debugw("payload archived", "key", key, "size", len(data))

	return nil
}

// Get returns model.ErrNoRecord when nothing is stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.objects.GetBytes(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrObjectNotFound) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}

	return data, nil
}
