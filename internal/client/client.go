// Package client calls a FitTracker server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/fittracker/internal/workout"
)

// ErrRejected is returned when the server rejects a package as invalid.
// Rejections are not retried.
var ErrRejected = errors.New("package rejected")

const maxAttempts = 3

// Client sends sensor packages to a FitTracker server.
type Client struct {
	serverURL  string
	httpClient *http.Client
	backoff    time.Duration
}

// New creates a client for the server at serverURL.
func New(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		backoff: time.Second,
	}
}

type calculateRequest struct {
	Code     string    `json:"code"`
	Readings []float64 `json:"readings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Calculate asks the server to summarize one package.
// Retries up to 3 times with exponential backoff on transport errors and 5xx responses.
func (c *Client) Calculate(ctx context.Context, code string, readings []float64) (workout.InfoMessage, error) {
	data, err := json.Marshal(calculateRequest{Code: code, Readings: readings})
	if err != nil {
		return workout.InfoMessage{}, fmt.Errorf("marshaling package: %w", err)
	}

	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return workout.InfoMessage{}, ctx.Err()
			case <-time.After(c.backoff * time.Duration(1<<uint(attempt-1))):
			}
		}

		info, retry, err := c.post(ctx, data)
		if err == nil {
			return info, nil
		}
		if !retry {
			return workout.InfoMessage{}, err
		}
		lastErr = err
	}

	return workout.InfoMessage{}, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) post(ctx context.Context, data []byte) (info workout.InfoMessage, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/v1/calculate", bytes.NewReader(data))
	if err != nil {
		return info, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return info, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return info, true, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.Unmarshal(body, &info); err != nil {
			return info, false, fmt.Errorf("decoding summary: %w", err)
		}
		return info, false, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var e errorResponse
		_ = json.Unmarshal(body, &e)
		return info, false, fmt.Errorf("%w (status %d): %s", ErrRejected, resp.StatusCode, e.Error)
	default:
		return info, true, fmt.Errorf("calculate failed (status %d): %s", resp.StatusCode, body)
	}
}
