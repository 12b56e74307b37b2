package token

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status communicates the outcome of a fusion sequence. The caller always
// receives a well-formed Record; degraded outcomes are expressed here, never
// as errors.
type Status string

const (
	StatusOK       Status = "OK"
	StatusUnlisted Status = "UNLISTED"
	StatusError    Status = "ERROR"
)

// RugRisk is the security signal derived from the token-security scorer.
type RugRisk string

const (
	RugRiskLow     RugRisk = "LOW"
	RugRiskHigh    RugRisk = "HIGH"
	RugRiskUnknown RugRisk = "UNKNOWN"
)

// Sentiment is the social-sentiment classification.
type Sentiment string

const (
	SentimentBullish Sentiment = "BULLISH"
	SentimentBearish Sentiment = "BEARISH"
	SentimentNeutral Sentiment = "NEUTRAL"
	SentimentUnknown Sentiment = "UNKNOWN"
)

// NotApplicable is the sentinel for numeric fields that have no value, e.g.
// every numeric field of an unlisted token.
const NotApplicable Amount = -1

// Amount is a USD-denominated value. It marshals as a plain number, or as
// the string "N/A" when set to the NotApplicable sentinel, matching the
// shape consumers already parse.
type Amount float64

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a == NotApplicable {
		return json.Marshal("N/A")
	}
	return json.Marshal(float64(a))
}

// UnmarshalJSON implements json.Unmarshaler. Only the literal "N/A" maps to
// the sentinel; any other string is an error.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "N/A" {
			return fmt.Errorf("invalid amount %q", s)
		}
		*a = NotApplicable
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// Identity is the canonical on-chain identity of a token: the network it
// lives on and its contract address. It is the join key for every fetch
// that follows resolution.
type Identity struct {
	Network string
	Address string
}

// Pool is one liquidity venue for a token as reported by the DEX pool
// service. Zero-valued fields were absent upstream.
type Pool struct {
	Network      string
	DexID        string
	Address      string // base token contract address
	Name         string // base token name
	Symbol       string // base token symbol
	PriceUSD     float64
	LiquidityUSD float64
	FDVUSD       float64
	Volume24hUSD float64
}

// MarketSnapshot is the decentralized market view of a token, taken from its
// top-ranked pool. Every field is individually optional; zero means absent.
type MarketSnapshot struct {
	Name         string
	Symbol       string
	PriceUSD     float64
	LiquidityUSD float64
	FDVUSD       float64
	Volume24hUSD float64
	DexID        string
}

// Enrichment is the centralized-catalog view of a token. Zero means absent.
type Enrichment struct {
	Name            string
	Symbol          string
	CurrentPriceUSD float64
	MarketCapUSD    float64
	Volume24hUSD    float64
}

// Risk is the output of the token-security scorer.
type Risk struct {
	RugRisk RugRisk
}

// SentimentSignal is the output of the social-sentiment service.
type SentimentSignal struct {
	Sentiment        Sentiment
	AverageScore     float64
	MentionCount     int
	CelebrityMention string
}

// NeutralSentiment is the documented default substituted when the sentiment
// service is unavailable.
func NeutralSentiment() SentimentSignal {
	return SentimentSignal{Sentiment: SentimentNeutral}
}

// Record is the fused, externally visible result of one resolution. It is
// immutable once constructed; a later fetch supersedes it rather than
// mutating it.
type Record struct {
	Name             string    `json:"name"`
	Symbol           string    `json:"symbol"`
	Sentiment        Sentiment `json:"sentiment"`
	AverageScore     float64   `json:"avgScore"`
	PriceUSD         Amount    `json:"price"`
	LiquidityUSD     Amount    `json:"liquidity"`
	MarketCapUSD     Amount    `json:"marketCap"`
	Volume24hUSD     Amount    `json:"volume24h"`
	DexID            string    `json:"dex"`
	RugRisk          RugRisk   `json:"rugRisk"`
	MentionCount     int       `json:"tweetCount"`
	CelebrityMention string    `json:"celebMention,omitempty"`
	UpdatedAt        time.Time `json:"updated"`
	Status           Status    `json:"status"`
}

// UnlistedRecord is the terminal result for an identifier with no pool match
// on any network. It is cached like any success so repeated lookups of a
// dead identifier do not trigger resolution storms.
func UnlistedRecord(now time.Time) Record {
	return Record{
		Name:         "Unlisted",
		Symbol:       "N/A",
		Sentiment:    SentimentNeutral,
		PriceUSD:     NotApplicable,
		LiquidityUSD: NotApplicable,
		MarketCapUSD: NotApplicable,
		Volume24hUSD: NotApplicable,
		DexID:        "Not traded",
		RugRisk:      RugRiskUnknown,
		UpdatedAt:    now,
		Status:       StatusUnlisted,
	}
}

// ErrorRecord is the terminal result for an unexpected internal fault. It is
// returned to the caller in place of an error.
func ErrorRecord(now time.Time) Record {
	return Record{
		Name:         "Error",
		Symbol:       "N/A",
		Sentiment:    SentimentUnknown,
		PriceUSD:     NotApplicable,
		LiquidityUSD: NotApplicable,
		MarketCapUSD: NotApplicable,
		Volume24hUSD: NotApplicable,
		DexID:        "Error",
		RugRisk:      RugRiskUnknown,
		UpdatedAt:    now,
		Status:       StatusError,
	}
}
