package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tokenintel/internal/assistant"
	"tokenintel/internal/coingecko"
	"tokenintel/internal/config"
	"tokenintel/internal/dexscreener"
	"tokenintel/internal/engine"
	"tokenintel/internal/goplus"
	"tokenintel/internal/notify"
	"tokenintel/internal/resolve"
	"tokenintel/internal/sentiment"
	"tokenintel/internal/upstream"
	"tokenintel/internal/watch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	limiter := upstream.NewLimiter()
	pools := dexscreener.NewClient(cfg.DexScreenerBaseURL, limiter)
	catalog := coingecko.NewClient(cfg.CoinGeckoBaseURL, limiter)
	security := goplus.NewClient(cfg.GoPlusBaseURL, limiter)
	social := sentiment.NewHTTPProvider(cfg.SentimentBaseURL, limiter)
	resolver := resolve.New(pools, cfg.Networks)

	eng := engine.New(resolver, pools, catalog, security, social)
	service := engine.NewService(eng, cfg.CacheTTL)

	// Resolve any identifiers given on the command line and print the fused
	// records as JSON. With an OpenAI key configured, also print the
	// assistant's read on each token.
	var helper *assistant.Assistant
	if cfg.OpenAIAPIKey != "" {
		helper = assistant.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	for _, identifier := range os.Args[1:] {
		rec := service.ResolveToken(ctx, identifier, false)
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal record for %s: %v", identifier, err)
		}
		fmt.Println(string(out))

		if helper != nil {
			answer, err := helper.Ask(ctx, rec, "Give a short assessment of this token.")
			if err != nil {
				log.Printf("Assistant failed for %s: %v", identifier, err)
				continue
			}
			fmt.Println(answer)
		}
	}

	// With a configured watch-list, keep sweeping until interrupted.
	if len(cfg.Watchlist) == 0 {
		return
	}

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.TelegramBotToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to create telegram notifier: %v", err)
		}
		notifier = tg
	}

	monitor := watch.New(service, notifier, cfg.MonitorInterval)
	for _, identifier := range cfg.Watchlist {
		monitor.Watch("default", identifier)
	}

	fmt.Printf("Watching %d identifier(s), sweeping every %s\n", len(cfg.Watchlist), cfg.MonitorInterval)
	monitor.Run(ctx)
}
