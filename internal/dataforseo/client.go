// Package dataforseo fetches live Google organic results from the
// DataForSEO SERP API.
package dataforseo

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

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const organicLivePath = "/v3/serp/google/organic/live/advanced"

// ErrMissingCredentials is returned before any request when login or
// password is empty
var ErrMissingCredentials = errors.New("dataforseo credentials are not configured")

type Options struct {
	BaseURL  string
	Login    string
	Password string
	Language string
	Depth    int
	Timeout  time.Duration
	// RPM caps outbound requests per minute. Zero disables the limiter.
	RPM int
}

type Client struct {
	baseURL    string
	login      string
	password   string
	language   string
	depth      int
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

func NewClient(opts Options, logger *logrus.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Language == "" {
		opts.Language = "English"
	}
	if opts.Depth <= 0 {
		opts.Depth = 10
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RPM > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RPM)/60.0), 1)
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		login:    opts.Login,
		password: opts.Password,
		language: opts.Language,
		depth:    opts.Depth,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// GetRankings runs one live organic search and returns the raw response body
func (c *Client) GetRankings(ctx context.Context, query, location string) ([]byte, error) {
	if c.login == "" || c.password == "" {
		return nil, ErrMissingCredentials
	}

	tasks := []OrganicTask{{
		Keyword:      query,
		LocationName: location,
		LanguageName: c.language,
		Depth:        c.depth,
	}}

	body, err := c.makeRequest(ctx, http.MethodPost, organicLivePath, tasks)
	if err != nil {
		return nil, err
	}

	var status envelopeStatus
	if err := json.Unmarshal(body, &status); err == nil && status.StatusCode != 0 {
		if status.StatusCode < statusOKMin || status.StatusCode > statusOKMax {
			return nil, fmt.Errorf("API task failed with status %d: %s", status.StatusCode, status.StatusMessage)
		}
	}

	return body, nil
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, payload interface{}) ([]byte, error) {
	url := c.baseURL + endpoint

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(jsonData)

		c.logger.WithFields(logrus.Fields{
			"method":       method,
			"url":          url,
			"payload_json": string(jsonData),
		}).Debug("Request payload")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.login, c.password)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"method":        method,
		"url":           url,
		"response_size": len(responseBody),
		"duration":      time.Since(start).String(),
	}).Debug("DataForSEO API response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, truncate(string(responseBody), 500))
	}

	return responseBody, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
