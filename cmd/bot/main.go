package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"sentibot/db"
	"sentibot/internal/bot"
	"sentibot/internal/model"
	"sentibot/internal/repository"
	"sentibot/internal/sentiment"
	"sentibot/internal/watchlist"
	"sentibot/pkg/llm"
	"sentibot/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}

	chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
	if err != nil {
		log.Fatalf("invalid TELEGRAM_CHAT_ID: %v", err)
	}

	fetcher := newsClientFromEnv()
	if fetcher == nil {
		log.Fatal("no news source API key configured (EODHD_API_KEY or FINNHUB_API_KEY)")
	}

	classifier := classifierFromEnv()
	if classifier == nil {
		log.Fatal("no classifier API key configured (OPENAI_API_KEY or ANTHROPIC_API_KEY)")
	}

	if os.Getenv("REDIS_URL") != "" {
		if err := db.ConnectRedis(); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		classifier = llm.NewCachedClassifier(classifier, db.ClassifierCache{})
	}

	var reports bot.ReportSaver
	if os.Getenv("DATABASE_URL") != "" {
		if err := db.Connect(); err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer db.Close()
		reports = repository.NewReportRepository(db.DB)
	}

	tickerFile := os.Getenv("TICKER_FILE")
	if tickerFile == "" {
		tickerFile = "tickers.json"
	}
	store := watchlist.NewStore(tickerFile)

	pipeline := sentiment.NewPipeline(fetcher, classifier)

	b, err := bot.New(token, chatID, store, fetcher, pipeline, reports)
	if err != nil {
		log.Fatalf("error creating bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Fatalf("error loading timezone: %v", err)
	}

	scheduler := cron.New(cron.WithLocation(eastern))
	_, err = scheduler.AddFunc("0 9 * * 1-5", func() {
		slog.Info("scheduled batch starting")
		b.RunTracked(ctx, model.TriggerScheduled)
	})
	if err != nil {
		log.Fatalf("error scheduling batch: %v", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	b.Run(ctx)

	slog.Info("bot stopped")
}

func newsClientFromEnv() news.SymbolNewsClient {
	if key := os.Getenv("EODHD_API_KEY"); key != "" {
		return news.NewEODHDClient(key)
	}
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		return news.NewFinnhubClient(key)
	}
	return nil
}

func classifierFromEnv() llm.Classifier {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return llm.NewOpenAIClient(key)
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return llm.NewAnthropicClient(key)
	}
	return nil
}
