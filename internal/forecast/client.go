package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"steel-procurement/internal/logger"
	"steel-procurement/internal/model"
)

// Client talks to the remote forecasting service that hosts the ARIMA model.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client

	cache *Cache
	log   zerolog.Logger
}

// NewClient creates a forecast service client. cache may be nil.
func NewClient(baseURL, apiKey string, timeout time.Duration, cache *Cache) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
		cache:   cache,
		log:     logger.Log.With().Str("component", "forecast_client").Logger(),
	}
}

// ServiceError is a failed call to the forecasting service.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *ServiceError) Error() string {
	return "forecast service: " + e.Message
}

type forecastRequest struct {
	Scenario string `json:"scenario"`
	Months   int    `json:"months"`
}

type forecastResponse struct {
	Scenario string                `json:"scenario"`
	Months   int                   `json:"months"`
	Data     []model.ForecastPoint `json:"data"`
}

func (c *Client) Scenarios() []model.Scenario { return model.Scenarios() }

// Forecast requests POST {base}/api/steel-forecast. Responses are cached per (scenario, months).
func (c *Client) Forecast(ctx context.Context, scenario model.Scenario, months int) ([]model.ForecastPoint, error) {
	if err := validateRequest(scenario, months); err != nil {
		return nil, err
	}

	key := cacheKey(scenario, months)
	if cached, ok := c.cache.Get(key); ok {
		c.log.Debug().Str("scenario", string(scenario)).Int("months", months).Msg("cache hit")
		return cached, nil
	}

	body, err := json.Marshal(forecastRequest{Scenario: string(scenario), Months: months})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/steel-forecast", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	duration := time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Warn().Err(err).Dur("duration", duration).Msg("request failed")
		return nil, &ServiceError{Code: "UNREACHABLE", Message: err.Error()}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Str("scenario", string(scenario)).
		Msg("forecast response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("service returned status %d", resp.StatusCode),
		}
	}

	var out forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Code: "BAD_RESPONSE", Message: fmt.Sprintf("failed to decode response: %v", err)}
	}
	if len(out.Data) != months {
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Code:       "BAD_RESPONSE",
			Message:    fmt.Sprintf("expected %d months, got %d", months, len(out.Data)),
		}
	}

	c.cache.Set(key, out.Data)
	return out.Data, nil
}
