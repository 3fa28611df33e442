package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/models"
)

// reportSelectFields aliases report_id to id for struct mapping.
const reportSelectFields = `report_id as id, timestamp, ticker, strategy, grade, bias, data, validation`

// ReportStore implements interfaces.ReportStore using SurrealDB.
type ReportStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewReportStore creates a SurrealDB-backed report store.
func NewReportStore(db *surrealdb.DB, logger *common.Logger) *ReportStore {
	return &ReportStore{db: db, logger: logger}
}

// Save upserts the report by id.
func (s *ReportStore) Save(ctx context.Context, report *models.Report) (*models.Report, error) {
	sql := `UPSERT $rid SET
		report_id = $report_id, timestamp = $timestamp, ticker = $ticker,
		strategy = $strategy, grade = $grade, bias = $bias,
		data = $data, validation = $validation`
	vars := map[string]any{
		"rid":        surrealmodels.NewRecordID("report", report.ID),
		"report_id":  report.ID,
		"timestamp":  report.Timestamp,
		"ticker":     report.Ticker,
		"strategy":   report.Strategy,
		"grade":      report.Grade,
		"bias":       report.Bias,
		"data":       report.Data,
		"validation": report.Validation,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return report, nil
}

// Get returns the report with the given id, or nil if absent.
func (s *ReportStore) Get(ctx context.Context, id string) (*models.Report, error) {
	sql := "SELECT " + reportSelectFields + " FROM $rid"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("report", id),
	}

	results, err := surrealdb.Query[[]models.Report](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

// List returns all reports sorted by timestamp descending.
func (s *ReportStore) List(ctx context.Context) ([]*models.Report, error) {
	sql := "SELECT " + reportSelectFields + " FROM report ORDER BY timestamp DESC"

	results, err := surrealdb.Query[[]models.Report](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return []*models.Report{}, nil
	}

	reports := make([]*models.Report, 0, len((*results)[0].Result))
	for i := range (*results)[0].Result {
		reports = append(reports, &(*results)[0].Result[i])
	}
	return reports, nil
}

// Delete removes the report, reporting whether it existed.
func (s *ReportStore) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if _, err := surrealdb.Delete[models.Report](ctx, s.db, surrealmodels.NewRecordID("report", id)); err != nil && !isNotFoundError(err) {
		return false, fmt.Errorf("failed to delete report: %w", err)
	}
	return true, nil
}

// Ensure ReportStore implements interfaces.ReportStore
var _ interfaces.ReportStore = (*ReportStore)(nil)
