package handler

type ReportResponse struct {
	Symbol    string   `json:"symbol"`
	Kind      string   `json:"kind"`
	Score     *float64 `json:"score,omitempty"`
	Headlines int      `json:"headlines"`
}

type RunResponse struct {
	ID           int64  `json:"id"`
	Trigger      string `json:"trigger"`
	CompanyCount int    `json:"company_count"`
	WindowStart  string `json:"window_start"`
	WindowEnd    string `json:"window_end"`
	RanAt        string `json:"ran_at"`
}

type RunWithReportsResponse struct {
	RunResponse
	Reports []ReportResponse `json:"reports"`
}

type RunsResponse struct {
	Runs   []RunResponse `json:"runs"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type CompanyResponse struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name,omitempty"`
}

type WatchlistResponse struct {
	Companies []CompanyResponse `json:"companies"`
	Total     int               `json:"total"`
}
