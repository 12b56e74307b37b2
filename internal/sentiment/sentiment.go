package sentiment

import (
	"context"
	"strconv"
	"strings"

	"tokenintel/internal/token"
	"tokenintel/internal/upstream"
)

// Provider retrieves the social-sentiment signal for a canonical token
// address. It is one more optional upstream: implementations report absence
// through the bool, never through a panic or error.
type Provider interface {
	Snapshot(ctx context.Context, address string) (token.SentimentSignal, bool)
}

// signalResponse represents the sentiment service's wire format.
type signalResponse struct {
	Sentiment  string  `json:"sentiment"`
	AvgScore   string  `json:"avgScore"`
	TweetCount int     `json:"tweetCount"`
	Celeb      *string `json:"celeb"`
}

// HTTPProvider calls a sentiment service over HTTP. The service may itself
// be backed by a further external provider; this client treats it as opaque.
type HTTPProvider struct {
	caller *upstream.Caller
}

// NewHTTPProvider creates an HTTP sentiment provider.
func NewHTTPProvider(baseURL string, limiter *upstream.Limiter) *HTTPProvider {
	return &HTTPProvider{
		caller: upstream.NewCaller(upstream.APISentiment, baseURL, limiter),
	}
}

// Snapshot implements Provider.
func (p *HTTPProvider) Snapshot(ctx context.Context, address string) (token.SentimentSignal, bool) {
	resp, ok := upstream.Get[signalResponse](ctx, p.caller, "/api/twitter/sentiment", map[string]string{
		"coin": address,
	})
	if !ok {
		return token.SentimentSignal{}, false
	}

	sig := token.SentimentSignal{
		Sentiment:    parseSentiment(resp.Sentiment),
		MentionCount: resp.TweetCount,
	}
	if score, err := strconv.ParseFloat(resp.AvgScore, 64); err == nil {
		sig.AverageScore = score
	}
	if resp.Celeb != nil {
		sig.CelebrityMention = *resp.Celeb
	}
	return sig, true
}

func parseSentiment(s string) token.Sentiment {
	switch strings.ToUpper(s) {
	case "BULLISH":
		return token.SentimentBullish
	case "BEARISH":
		return token.SentimentBearish
	case "NEUTRAL":
		return token.SentimentNeutral
	default:
		return token.SentimentUnknown
	}
}
