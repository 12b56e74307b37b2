// Package assistant turns fused records into conversational answers by
// injecting them as context into an LLM prompt.
package assistant

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"tokenintel/internal/token"
)

const systemPrompt = `You are a crypto market analyst. Answer questions using only the token data provided. Be concise and factual; flag high rug risk and unlisted tokens prominently.`

// Assistant asks an OpenAI chat model about a token, with the fused record
// as grounding context.
type Assistant struct {
	client *openai.Client
	model  string
}

// New creates an Assistant. An empty model falls back to gpt-4o-mini.
func New(apiKey, model string) *Assistant {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Assistant{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Ask answers a question about the token described by rec.
func (a *Assistant) Ask(ctx context.Context, rec token.Record, question string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: ContextText(rec) + "\n\n" + question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ContextText renders a fused record as the contextual block injected into
// the prompt.
func ContextText(rec token.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Token: %s (%s)\n", rec.Name, rec.Symbol)
	fmt.Fprintf(&b, "Status: %s\n", rec.Status)
	fmt.Fprintf(&b, "Price: %s\n", amountText(rec.PriceUSD))
	fmt.Fprintf(&b, "Liquidity: %s\n", amountText(rec.LiquidityUSD))
	fmt.Fprintf(&b, "Market cap: %s\n", amountText(rec.MarketCapUSD))
	fmt.Fprintf(&b, "24h volume: %s\n", amountText(rec.Volume24hUSD))
	fmt.Fprintf(&b, "DEX: %s\n", rec.DexID)
	fmt.Fprintf(&b, "Rug risk: %s\n", rec.RugRisk)
	fmt.Fprintf(&b, "Sentiment: %s (score %.2f, %d mentions)\n",
		rec.Sentiment, rec.AverageScore, rec.MentionCount)
	if rec.CelebrityMention != "" {
		fmt.Fprintf(&b, "Celebrity mention: %s\n", rec.CelebrityMention)
	}
	fmt.Fprintf(&b, "Updated: %s", rec.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}

func amountText(a token.Amount) string {
	if a == token.NotApplicable {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", float64(a))
}
