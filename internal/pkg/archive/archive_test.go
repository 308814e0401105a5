package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryObjects struct {
	objects map[string][]byte
	putErr  error
}

func (m *memoryObjects) Put(_ context.Context, obj jetstream.ObjectMeta, reader io.Reader) (*jetstream.ObjectInfo, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	m.objects[obj.Name] = data
	return &jetstream.ObjectInfo{ObjectMeta: obj, Size: uint64(len(data))}, nil
}

func (m *memoryObjects) GetBytes(_ context.Context, name string, _ ...jetstream.GetObjectOpt) ([]byte, error) {
	data, ok := m.objects[name]
	if !ok {
		return nil, jetstream.ErrObjectNotFound
	}
	return data, nil
}

func TestStore(t *testing.T) {
	objects := &memoryObjects{objects: map[string][]byte{}}
	s := NewStore(objects, zap.NewNop().Sugar())
	ctx := context.Background()

	payload := &model.PlannerArchive{SingletonID: "run-1", HostID: "host-1", HostTimezone: "UTC"}
	require.NoError(t, s.Put(ctx, "host-1/run-1.json", payload))

	data, err := s.Get(ctx, "host-1/run-1.json")
	require.NoError(t, err)

	got := &model.PlannerArchive{}
	require.NoError(t, json.Unmarshal(data, got))
	assert.Equal(t, payload, got)

	_, err = s.Get(ctx, "host-1/missing.json")
	assert.ErrorIs(t, err, model.ErrNoRecord)
}

func TestStorePutError(t *testing.T) {
	s := NewStore(&memoryObjects{putErr: errors.New("no responders")}, zap.NewNop().Sugar())

	err := s.Put(context.Background(), "k", struct{}{})
	assert.Error(t, err)
}
