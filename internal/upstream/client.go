package upstream

import (
	"log/slog"
	"time"

	"resty.dev/v3"
)

const (
	retryCount       = 2
	retryWaitTime    = 500 * time.Millisecond
	retryMaxWaitTime = 5 * time.Second
)

// NewHTTPClient builds the resty client shared by one upstream service.
// Transient failures (network errors, 5xx, 429) are retried with backoff at
// this level; everything above it sees a single call that either completed
// or did not.
func NewHTTPClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryConditions(retryCondition).
		AddRetryHooks(retryHook)
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	switch {
	case r.StatusCode() >= 500:
		return true
	case r.StatusCode() == 429 || r.StatusCode() == 408:
		return true
	default:
		return false
	}
}

// retryHook logs retry attempts for observability
func retryHook(r *resty.Response, err error) {
	if err != nil {
		slog.Debug("retrying upstream request",
			"url", r.Request.URL,
			"attempt", r.Request.Attempt,
			"error", err.Error())
		return
	}
	slog.Debug("retrying upstream request",
		"url", r.Request.URL,
		"attempt", r.Request.Attempt,
		"status_code", r.StatusCode())
}
