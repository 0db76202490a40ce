package repository

import (
	"database/sql"

	"sentibot/internal/model"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// SaveRun persists a run and its per-company reports in one transaction.
func (r *ReportRepository) SaveRun(run *model.SentimentRun, results []model.CompanyResult) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO sentiment_run(triggered_by, company_count, window_start, window_end)
		VALUES($1, $2, $3, $4)
		RETURNING id, ran_at
	`, run.Trigger, run.CompanyCount, run.WindowStart, run.WindowEnd).Scan(&run.ID, &run.RanAt)
	if err != nil {
		return err
	}

	for _, res := range results {
		_, err = tx.Exec(`
			INSERT INTO company_report(run_id, symbol, kind, score, headlines)
			VALUES($1, $2, $3, $4, $5)
		`, run.ID, res.Symbol, string(res.Report.Kind), res.Report.Score, res.Report.Headlines)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ReportRepository) GetLatestRun() (*model.SentimentRun, error) {
	var run model.SentimentRun
	err := r.db.QueryRow(`
		SELECT id, triggered_by, company_count, window_start, window_end, ran_at
		FROM sentiment_run
		ORDER BY ran_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.Trigger, &run.CompanyCount, &run.WindowStart, &run.WindowEnd, &run.RanAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &run, nil
}

func (r *ReportRepository) GetRuns(limit, offset int) ([]model.SentimentRun, error) {
	rows, err := r.db.Query(`
		SELECT id, triggered_by, company_count, window_start, window_end, ran_at
		FROM sentiment_run
		ORDER BY ran_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.SentimentRun
	for rows.Next() {
		var run model.SentimentRun
		err := rows.Scan(&run.ID, &run.Trigger, &run.CompanyCount, &run.WindowStart, &run.WindowEnd, &run.RanAt)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

func (r *ReportRepository) GetRunTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM sentiment_run`).Scan(&total)
	return total, err
}

func (r *ReportRepository) GetReportsByRunID(runID int64) ([]model.StoredReport, error) {
	rows, err := r.db.Query(`
		SELECT id, run_id, symbol, kind, score, headlines
		FROM company_report
		WHERE run_id = $1
		ORDER BY symbol ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.StoredReport
	for rows.Next() {
		var rep model.StoredReport
		err := rows.Scan(&rep.ID, &rep.RunID, &rep.Symbol, &rep.Kind, &rep.Score, &rep.Headlines)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}
