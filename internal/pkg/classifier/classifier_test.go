package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Standup: daily sync", req.Sentence)
		assert.Equal(t, []string{"work", "personal"}, req.Labels)

		_ = json.NewEncoder(w).Encode(model.Classification{
			Sequence: req.Sentence,
			Labels:   req.Labels,
			Scores:   []float64{0.9, 0.1},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	got, err := c.Classify(context.Background(), "Standup: daily sync", []string{"work", "personal"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.9, 0.1}, got.Scores)
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		labels   []string
		handler  http.HandlerFunc
		wantType model.ErrorType
	}{
		{
			name:     "no labels",
			sentence: "Standup",
			wantType: model.ErrorTypeValidation,
		},
		{
			name:     "bad status",
			sentence: "Standup",
			labels:   []string{"work"},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantType: model.ErrorTypeInternal,
		},
		{
			name:     "misaligned scores",
			sentence: "Standup",
			labels:   []string{"work"},
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"labels":["work"],"scores":[]}`))
			},
			wantType: model.ErrorTypeInternal,
		},
		{
			name:     "garbage body",
			sentence: "Standup",
			labels:   []string{"work"},
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			wantType: model.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := "http://127.0.0.1:0"
			if tt.handler != nil {
				srv := httptest.NewServer(tt.handler)
				defer srv.Close()
				url = srv.URL
			}

			c := NewClient(url, time.Second)
			_, err := c.Classify(context.Background(), tt.sentence, tt.labels)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, model.GetErrorType(err))
		})
	}
}
