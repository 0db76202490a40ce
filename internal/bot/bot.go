package bot

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"sentibot/internal/model"
	"sentibot/internal/sentiment"
	"sentibot/internal/watchlist"
	"sentibot/pkg/news"
)

// A nil ReportSaver disables persistence.
type ReportSaver interface {
	SaveRun(run *model.SentimentRun, results []model.CompanyResult) error
}

type Bot struct {
	api      *tgbotapi.BotAPI
	chatID   int64
	store    *watchlist.Store
	verifier news.SymbolNewsClient
	pipeline *sentiment.Pipeline
	reports  ReportSaver
}

func New(token string, chatID int64, store *watchlist.Store, verifier news.SymbolNewsClient, pipeline *sentiment.Pipeline, reports ReportSaver) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:      api,
		chatID:   chatID,
		store:    store,
		verifier: verifier,
		pipeline: pipeline,
		reports:  reports,
	}, nil
}

func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	slog.Info("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	args := msg.CommandArguments()
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "add_company":
		b.reply(chatID, b.addCompanies(ctx, args))
	case "remove_company":
		b.reply(chatID, b.removeCompany(args))
	case "list_companies":
		b.reply(chatID, b.listCompanies())
	case "get_list_sentiments":
		b.analyzeTracked(ctx, chatID)
	case "get_sentiment":
		b.analyzeSymbols(ctx, chatID, args)
	case "help":
		b.reply(chatID, helpText)
	}
}

func (b *Bot) RunTracked(ctx context.Context, trigger string) {
	companies, err := b.store.Snapshot()
	if err != nil {
		slog.Error("error loading watchlist", "error", err)
		return
	}

	if len(companies) == 0 {
		slog.Info("watchlist empty, skipping batch", "trigger", trigger)
		return
	}

	summary := b.runBatch(ctx, companies, trigger)
	b.Deliver(b.chatID, summary)
}

func (b *Bot) runBatch(ctx context.Context, companies []model.Company, trigger string) string {
	results, window := b.pipeline.Run(ctx, companies)

	if b.reports != nil {
		run := model.SentimentRun{
			Trigger:      trigger,
			CompanyCount: len(companies),
			WindowStart:  window.Start,
			WindowEnd:    window.End,
		}
		if err := b.reports.SaveRun(&run, results); err != nil {
			slog.Error("error saving run", "trigger", trigger, "error", err)
		}
	}

	return FormatSummary(results)
}

// Deliver is best-effort: a failed send is logged, never retried.
func (b *Bot) Deliver(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Error("error delivering message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.Deliver(chatID, text)
}

func (b *Bot) analyzeTracked(ctx context.Context, chatID int64) {
	companies, err := b.store.Snapshot()
	if err != nil {
		slog.Error("error loading watchlist", "error", err)
		b.reply(chatID, "Could not read the company list.")
		return
	}

	if len(companies) == 0 {
		b.reply(chatID, "The list of companies is empty.")
		return
	}

	// a batch can take a while; don't block the update loop
	go func() {
		b.reply(chatID, b.runBatch(ctx, companies, model.TriggerOnDemand))
	}()
}

func (b *Bot) analyzeSymbols(ctx context.Context, chatID int64, args string) {
	symbols := splitSymbols(args)
	if len(symbols) == 0 {
		b.reply(chatID, "Please provide at least one company symbol separated by commas.")
		return
	}

	companies := make([]model.Company, 0, len(symbols))
	for _, symbol := range symbols {
		companies = append(companies, model.Company{Symbol: symbol, Name: symbol})
	}

	go func() {
		b.reply(chatID, b.runBatch(ctx, companies, model.TriggerOnDemand))
	}()
}

func (b *Bot) addCompanies(ctx context.Context, args string) string {
	symbols := splitSymbols(args)
	if len(symbols) == 0 {
		return "Please provide at least one company symbol."
	}

	var added, existing, invalid []string

	for _, symbol := range symbols {
		tracked, err := b.store.Contains(symbol)
		if err != nil {
			slog.Error("error reading watchlist", "error", err)
			return "Could not read the company list."
		}

		if tracked {
			existing = append(existing, symbol)
			continue
		}

		valid, err := b.verifier.VerifySymbol(ctx, symbol)
		if err != nil {
			slog.Warn("symbol verification failed", "symbol", symbol, "error", err)
		}

		if !valid {
			invalid = append(invalid, symbol)
			continue
		}

		if _, err := b.store.Add(symbol, ""); err != nil {
			slog.Error("error saving watchlist", "symbol", symbol, "error", err)
			return "Could not update the company list."
		}
		added = append(added, symbol)
	}

	var parts []string
	if len(added) > 0 {
		parts = append(parts, "Added "+strings.Join(added, ", ")+" to the list.")
	}
	if len(existing) > 0 {
		parts = append(parts, strings.Join(existing, ", ")+" already exist in the list.")
	}
	if len(invalid) > 0 {
		parts = append(parts, strings.Join(invalid, ", ")+" are not valid symbols.")
	}

	return strings.Join(parts, "\n")
}

func (b *Bot) removeCompany(args string) string {
	symbols := splitSymbols(args)
	if len(symbols) == 0 {
		return "Please provide a company symbol."
	}
	symbol := symbols[0]

	removed, err := b.store.Remove(symbol)
	if err != nil {
		slog.Error("error saving watchlist", "symbol", symbol, "error", err)
		return "Could not update the company list."
	}

	if !removed {
		return symbol + " is not in the list."
	}
	return "Removed " + symbol + " from the list."
}

func (b *Bot) listCompanies() string {
	companies, err := b.store.Snapshot()
	if err != nil {
		slog.Error("error reading watchlist", "error", err)
		return "Could not read the company list."
	}

	if len(companies) == 0 {
		return "No companies in the list."
	}

	lines := make([]string, 0, len(companies))
	for _, company := range companies {
		lines = append(lines, company.Symbol)
	}

	return "List of companies:\n" + strings.Join(lines, "\n")
}

func splitSymbols(args string) []string {
	fields := strings.Fields(strings.ReplaceAll(args, ",", " "))

	symbols := make([]string, 0, len(fields))
	for _, f := range fields {
		symbols = append(symbols, strings.ToUpper(f))
	}
	return symbols
}

const helpText = `Here are the available commands:

/get_list_sentiments - Run sentiment analysis on stocks being tracked.

/list_companies - List all the companies currently being tracked.

/add_company <company_ticker or comma-separated list of tickers> - Add a company or multiple to the tracking list.
Example: /add_company MSFT, TSLA, SBUX

/remove_company <company_ticker> - Remove a company from the tracking list.

/get_sentiment <comma-separated list of tickers> - Get sentiments for a list of companies that may or may not be in your list.
Example: /get_sentiment AAPL, MSFT, TSLA`
