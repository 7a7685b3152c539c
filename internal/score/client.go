// Package score talks to the external scoring service: it submits final
// scores, caches the leaderboard and reports sessions once they end.
package score

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Entry is one leaderboard row, owned by the external API.
type Entry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Submission is the POST /scores body.
type Submission struct {
	UserID int64 `json:"user_id"`
	GameID int   `json:"game_id"`
	Score  int   `json:"score"`
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

// API is the scoring service surface the reporter and leaderboard use.
type API interface {
	SubmitScore(ctx context.Context, s Submission) error
	Leaderboard(ctx context.Context, gameID int) ([]Entry, error)
}

// Client is the HTTP implementation of API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// SubmitScore sends POST {base}/scores. The response body is not used.
func (c *Client) SubmitScore(ctx context.Context, s Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/scores", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Leaderboard fetches GET {base}/scores/leaderboard/{gameID}, sorted by
// score descending.
func (c *Client) Leaderboard(ctx context.Context, gameID int) ([]Entry, error) {
	u := c.baseURL + "/scores/leaderboard/" + url.PathEscape(strconv.Itoa(gameID))
	resp, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries, nil
}

// do sends the request and turns non-2xx responses into *StatusError. On
// success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, method, u string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, u, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Method: method,
			URL:    u,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}
	return resp, nil
}
