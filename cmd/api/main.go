package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sentibot/db"
	"sentibot/internal/handler"
	"sentibot/internal/repository"
	"sentibot/internal/watchlist"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	tickerFile := os.Getenv("TICKER_FILE")
	if tickerFile == "" {
		tickerFile = "tickers.json"
	}

	reportRepo := repository.NewReportRepository(db.DB)
	store := watchlist.NewStore(tickerFile)
	reportHandler := handler.NewReportHandler(reportRepo, store)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/runs/latest", reportHandler.GetLatestRun)
	r.GET("/runs", reportHandler.GetRuns)
	r.GET("/watchlist", reportHandler.GetWatchlist)
	r.GET("/health", reportHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
