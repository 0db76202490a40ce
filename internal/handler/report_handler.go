package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sentibot/internal/model"
)

type ReportStore interface {
	GetLatestRun() (*model.SentimentRun, error)
	GetRuns(limit, offset int) ([]model.SentimentRun, error)
	GetRunTotal() (int, error)
	GetReportsByRunID(runID int64) ([]model.StoredReport, error)
}

type WatchlistReader interface {
	Snapshot() ([]model.Company, error)
}

type ReportHandler struct {
	repository ReportStore
	watchlist  WatchlistReader
}

func NewReportHandler(repository ReportStore, watchlist WatchlistReader) *ReportHandler {
	return &ReportHandler{repository: repository, watchlist: watchlist}
}

func toRunResponse(run model.SentimentRun) RunResponse {
	return RunResponse{
		ID:           run.ID,
		Trigger:      run.Trigger,
		CompanyCount: run.CompanyCount,
		WindowStart:  run.WindowStart.Format(time.RFC3339),
		WindowEnd:    run.WindowEnd.Format(time.RFC3339),
		RanAt:        run.RanAt.Format(time.RFC3339),
	}
}

func toReportResponse(rep model.StoredReport) ReportResponse {
	res := ReportResponse{
		Symbol:    rep.Symbol,
		Kind:      rep.Kind,
		Headlines: rep.Headlines,
	}

	// the no-data sentinel has no score at all, not a score of zero
	if rep.Kind == string(model.ReportScore) {
		score := rep.Score
		res.Score = &score
	}

	return res
}

func (h *ReportHandler) GetLatestRun(c *gin.Context) {
	run, err := h.repository.GetLatestRun()
	if err != nil {
		slog.Error("error fetching latest run", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No runs recorded"})
		return
	}

	reports, err := h.repository.GetReportsByRunID(run.ID)
	if err != nil {
		slog.Error("error fetching run reports", "error", err, "run_id", run.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := RunWithReportsResponse{
		RunResponse: toRunResponse(*run),
		Reports:     make([]ReportResponse, 0, len(reports)),
	}
	for _, rep := range reports {
		res.Reports = append(res.Reports, toReportResponse(rep))
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReportHandler) GetRuns(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	runs, err := h.repository.GetRuns(limit, offset)
	if err != nil {
		slog.Error("error fetching runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetRunTotal()
	if err != nil {
		slog.Error("error fetching run total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := RunsResponse{
		Runs:   make([]RunResponse, 0, len(runs)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, run := range runs {
		res.Runs = append(res.Runs, toRunResponse(run))
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReportHandler) GetWatchlist(c *gin.Context) {
	companies, err := h.watchlist.Snapshot()
	if err != nil {
		slog.Error("error reading watchlist", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Watchlist error"})
		return
	}

	res := WatchlistResponse{
		Companies: make([]CompanyResponse, 0, len(companies)),
		Total:     len(companies),
	}
	for _, company := range companies {
		res.Companies = append(res.Companies, CompanyResponse{
			Symbol: company.Symbol,
			Name:   company.Name,
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReportHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetRunTotal()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		slog.Warn("invalid query parameter, using default", "param", "offset", "value", offset, "default", 0)
		return 0
	}
	return offset
}
