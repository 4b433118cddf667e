package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"english-placement/internal/domain"
	"english-placement/internal/ingest"

	"go.uber.org/zap"
)

// ImportOptions controls a workbook import
type ImportOptions struct {
	Sheet  string // empty reads every sheet with a question header
	DryRun bool
}

// ImportReport summarises a workbook import
type ImportReport struct {
	Sheets     []string          `json:"sheets"`
	TotalRows  int               `json:"total_rows"`
	Created    int               `json:"created"`
	Updated    int               `json:"updated"`
	FailedRows int               `json:"failed_rows"`
	DryRun     bool              `json:"dry_run"`
	Errors     []ingest.RowIssue `json:"errors"`
	Warnings   []ingest.RowIssue `json:"warnings"`
}

// ImportService loads spreadsheet question banks into the repository
type ImportService interface {
	ImportWorkbook(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportReport, error)
}

// importService implements ImportService
type importService struct {
	repo   domain.QuestionRepository
	cache  domain.Cache
	logger *zap.Logger
}

// NewImportService creates a new instance of importService. cache may be nil.
func NewImportService(repo domain.QuestionRepository, cache domain.Cache, logger *zap.Logger) ImportService {
	return &importService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ImportWorkbook parses the workbook and upserts every valid row. A row that
// fails to save is reported and the import carries on.
func (s *importService) ImportWorkbook(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportReport, error) {
	start := time.Now()
	s.logger.Info("Starting question import", zap.String("sheet", opts.Sheet), zap.Bool("dry_run", opts.DryRun))

	wb, err := ingest.Parse(r, opts.Sheet)
	if err != nil {
		s.logger.Error("Failed to parse workbook", zap.Error(err))
		return nil, fmt.Errorf("failed to parse workbook: %w", err)
	}

	report := &ImportReport{
		Sheets:    wb.Sheets,
		TotalRows: wb.TotalRows,
		DryRun:    opts.DryRun,
		Errors:    append([]ingest.RowIssue{}, wb.Errors...),
		Warnings:  append([]ingest.RowIssue{}, wb.Warnings...),
	}
	for _, w := range wb.Warnings {
		s.logger.Warn("Question row warning", zap.String("sheet", w.Sheet), zap.Int("row", w.Row), zap.String("warning", w.Message))
	}

	if opts.DryRun {
		report.FailedRows = len(report.Errors)
		s.logger.Info("Dry run: nothing written",
			zap.Int("valid_rows", len(wb.Questions)),
			zap.Int("failed_rows", report.FailedRows),
		)
		return report, nil
	}

	var updatedIDs []string
	for _, pq := range wb.Questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		created, err := s.repo.UpsertQuestion(ctx, pq.Question)
		if err != nil {
			s.logger.Error("Failed to save question",
				zap.String("sheet", pq.Sheet),
				zap.Int("row", pq.Row),
				zap.Error(err),
			)
			report.Errors = append(report.Errors, ingest.RowIssue{Sheet: pq.Sheet, Row: pq.Row, Message: err.Error()})
			continue
		}
		if created {
			report.Created++
		} else {
			report.Updated++
			updatedIDs = append(updatedIDs, pq.Question.ID)
		}
		s.logger.Debug("Saved question",
			zap.String("question_id", pq.Question.ID),
			zap.Bool("created", created),
		)
	}
	report.FailedRows = len(report.Errors)

	if err := InvalidateQuestions(ctx, s.cache, updatedIDs...); err != nil {
		s.logger.Warn("Failed to invalidate cached questions", zap.Int("count", len(updatedIDs)), zap.Error(err))
	}

	s.logger.Info("Question import completed",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("failed_rows", report.FailedRows),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}
