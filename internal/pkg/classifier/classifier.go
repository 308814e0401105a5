package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

const maxErrorBody = 1 << 10

// Client scores a sentence against candidate labels with a zero-shot text classifier.
type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type request struct {
	Sentence string   `json:"sentence"`
	Labels   []string `json:"labels"`
}

func (c *Client) Classify(ctx context.Context, sentence string, labels []string) (model.Classification, error) {
	if sentence == "" || len(labels) == 0 {
		return model.Classification{}, model.NewValidationError("sentence and labels are required")
	}

	body, err := json.Marshal(&request{Sentence: sentence, Labels: labels})
	if err != nil {
		return model.Classification{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return model.Classification{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return model.Classification{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return model.Classification{}, fmt.Errorf("classifier responded %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var res model.Classification
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return model.Classification{}, fmt.Errorf("decode response: %w", err)
	}

	if len(res.Scores) != len(res.Labels) {
		return model.Classification{}, fmt.Errorf("classifier returned %d scores for %d labels", len(res.Scores), len(res.Labels))
	}

	return res, nil
}
