package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryConn struct {
	store  map[string][]byte
	args   [][]interface{}
	closed int
}

func (c *memoryConn) Close() error {
	c.closed++
	return nil
}

func (c *memoryConn) Err() error { return nil }

func (c *memoryConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	c.args = append(c.args, append([]interface{}{cmd}, args...))

	key := args[0].(string)
	switch cmd {
	case "GET":
		v, ok := c.store[key]
		if !ok {
			return nil, nil
		}
		return v, nil
	case "SET":
		c.store[key] = args[1].([]byte)
		return "OK", nil
	case "DEL":
		delete(c.store, key)
		return int64(1), nil
	}
	return nil, errors.New("unknown command")
}

func (c *memoryConn) Send(string, ...interface{}) error { return nil }
func (c *memoryConn) Flush() error                       { return nil }
func (c *memoryConn) Receive() (interface{}, error)      { return nil, nil }

type memoryPool struct {
	conn *memoryConn
}

func (p *memoryPool) GetContext(context.Context) (redis.Conn, error) {
	return p.conn, nil
}

func TestPreferencesCache(t *testing.T) {
	conn := &memoryConn{store: map[string][]byte{}}
	cache := NewPreferencesCache(&memoryPool{conn: conn}, zap.NewNop().Sugar(), time.Minute)
	ctx := context.Background()

	_, err := cache.Get(ctx, "user-1")
	assert.ErrorIs(t, err, model.ErrNoRecord)

	pref := &model.UserPreference{
		UserID:      "user-1",
		StartTimes:  []model.DayTime{{Day: 1, Hour: 9}},
		EndTimes:    []model.DayTime{{Day: 1, Hour: 17}},
		BreakLength: 30,
		CopyFlags:   model.CopyFlags{CopyColor: true},
	}
	require.NoError(t, cache.Set(ctx, pref))
	assert.Equal(t, []interface{}{"SET", "preferences:user-1", conn.store["preferences:user-1"], "PX", int64(60000)}, conn.args[1])

	got, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, pref, got)

	require.NoError(t, cache.Delete(ctx, "user-1"))
	_, err = cache.Get(ctx, "user-1")
	assert.ErrorIs(t, err, model.ErrNoRecord)

	assert.Equal(t, len(conn.args), conn.closed)
}
