package solver

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

// Client submits assembled planner requests to the scheduling solver.
type Client struct {
	url      string
	username string
	password string
	client   *http.Client
}

func NewClient(url, username, password string, timeout time.Duration) *Client {
	return &Client{
		url:      url,
		username: username,
		password: password,
		client:   &http.Client{Timeout: timeout},
	}
}

// Submit queues a run. The solver answers right away and calls back when it is done.
func (c *Client) Submit(ctx context.Context, req *model.SolverRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.username != "" {
		httpReq.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("solver responded %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	return nil
}
