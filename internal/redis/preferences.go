package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

const preferencesPrefix = "preferences:"

type connGetter interface {
	GetContext(ctx context.Context) (redis.Conn, error)
}

// PreferencesCache keeps user preferences as JSON under "preferences:<userId>".
type PreferencesCache struct {
	pool   connGetter
	logger *zap.SugaredLogger
	ttl    time.Duration
}

func NewPreferencesCache(pool connGetter, logger *zap.SugaredLogger, ttl time.Duration) *PreferencesCache {
	return &PreferencesCache{
		pool:   pool,
		logger: logger,
		ttl:    ttl,
	}
}

// Get returns model.ErrNoRecord on a miss.
func (c *PreferencesCache) Get(ctx context.Context, userID string) (*model.UserPreference, error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	defer c.close(conn)

	data, err := redis.Bytes(conn.Do("GET", preferencesPrefix+userID))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("GET: %w", err)
	}

	pref := &model.UserPreference{}
	if err := json.Unmarshal(data, pref); err != nil {
		return nil, fmt.Errorf("unmarshal preference: %w", err)
	}

	return pref, nil
}

func (c *PreferencesCache) Set(ctx context.Context, pref *model.UserPreference) error {
	data, err := json.Marshal(pref)
	if err != nil {
		return fmt.Errorf("marshal preference: %w", err)
	}

	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer c.close(conn)

	if _, err := conn.Do("SET", preferencesPrefix+pref.UserID, data, "PX", c.ttl.Milliseconds()); err != nil {
		return fmt.Errorf("SET: %w", err)
	}

	return nil
}

func (c *PreferencesCache) Delete(ctx context.Context, userID string) error {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer c.close(conn)

	if _, err := conn.Do("DEL", preferencesPrefix+userID); err != nil {
		return fmt.Errorf("DEL: %w", err)
	}

	return nil
}

func (c *PreferencesCache) close(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		c.logger.Errorw("Failed closing redis connection", "err", err)
	}
}
