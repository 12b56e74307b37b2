package upstream

import (
	"context"
	"log/slog"

	"resty.dev/v3"
)

// Caller binds one upstream service's HTTP client to its rate-limit bucket.
type Caller struct {
	api     API
	client  *resty.Client
	limiter *Limiter
}

// NewCaller creates a Caller for the given service.
func NewCaller(api API, baseURL string, limiter *Limiter) *Caller {
	return &Caller{
		api:     api,
		client:  NewHTTPClient(baseURL),
		limiter: limiter,
	}
}

// Get performs one GET against the caller's service and decodes the JSON
// body into T. Any failure - transport error, non-2xx status, or a body that
// does not decode - yields (nil, false); absence is a value here, never an
// error. Fallbacks live in the layers above as sequences of distinct calls,
// not as repetition of this one.
func Get[T any](ctx context.Context, c *Caller, path string, query map[string]string) (*T, bool) {
	if err := c.limiter.Wait(ctx, c.api); err != nil {
		slog.Warn("upstream call aborted waiting for rate limit",
			"api", c.api, "path", path, "error", err)
		return nil, false
	}

	var out T
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(&out).
		Get(path)

	if err != nil {
		slog.Warn("upstream call failed", "api", c.api, "path", path, "error", err)
		return nil, false
	}
	if !resp.IsSuccess() {
		slog.Warn("upstream returned non-success status",
			"api", c.api, "path", path, "status_code", resp.StatusCode())
		return nil, false
	}
	return &out, true
}
