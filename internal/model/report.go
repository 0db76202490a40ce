package model

import "time"

const (
	TriggerScheduled = "scheduled"
	TriggerOnDemand  = "on_demand"
)

type Company struct {
	Symbol string
	Name   string
}

type ReportKind string

const (
	ReportScore  ReportKind = "score"
	ReportNoData ReportKind = "no_data"
)

// Score is only meaningful when Kind is ReportScore.
type CompanyReport struct {
	Kind      ReportKind
	Score     float64
	Headlines int
}

type CompanyResult struct {
	Symbol string
	Report CompanyReport
}

type SentimentRun struct {
	ID           int64
	Trigger      string
	CompanyCount int
	WindowStart  time.Time
	WindowEnd    time.Time
	RanAt        time.Time
}

type StoredReport struct {
	ID        int64
	RunID     int64
	Symbol    string
	Kind      string
	Score     float64
	Headlines int
}
