package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"sentibot/db"
	"sentibot/internal/bot"
	"sentibot/internal/model"
	"sentibot/internal/repository"
	"sentibot/internal/sentiment"
	"sentibot/internal/watchlist"
	"sentibot/pkg/llm"
	"sentibot/pkg/news"
)

// One-shot run: analyze the tracked list once, print the summary and exit.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var fetcher news.SymbolNewsClient
	if key := os.Getenv("EODHD_API_KEY"); key != "" {
		fetcher = news.NewEODHDClient(key)
	} else if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		fetcher = news.NewFinnhubClient(key)
	} else {
		log.Fatal("no news source API key configured")
	}

	var classifier llm.Classifier
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		classifier = llm.NewOpenAIClient(key)
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		classifier = llm.NewAnthropicClient(key)
	} else {
		log.Fatal("no classifier API key configured")
	}

	if os.Getenv("REDIS_URL") != "" {
		if err := db.ConnectRedis(); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		classifier = llm.NewCachedClassifier(classifier, db.ClassifierCache{})
	}

	tickerFile := os.Getenv("TICKER_FILE")
	if tickerFile == "" {
		tickerFile = "tickers.json"
	}
	store := watchlist.NewStore(tickerFile)

	companies, err := store.Snapshot()
	if err != nil {
		log.Fatalf("error loading watchlist: %v", err)
	}

	if len(companies) == 0 {
		slog.Info("watchlist empty, nothing to analyze")
		return
	}

	pipeline := sentiment.NewPipeline(fetcher, classifier)
	results, window := pipeline.Run(context.Background(), companies)

	if os.Getenv("DATABASE_URL") != "" {
		if err := db.Connect(); err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer db.Close()

		run := model.SentimentRun{
			Trigger:      model.TriggerScheduled,
			CompanyCount: len(companies),
			WindowStart:  window.Start,
			WindowEnd:    window.End,
		}
		if err := repository.NewReportRepository(db.DB).SaveRun(&run, results); err != nil {
			slog.Error("error saving run", "error", err)
		}
	}

	fmt.Print(bot.FormatSummary(results))
}
