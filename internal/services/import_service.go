package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/codyseavey/tcg-tracker/collection/internal/catalog"
	"github.com/codyseavey/tcg-tracker/collection/internal/importer"
	"github.com/codyseavey/tcg-tracker/collection/internal/ledger"
	"github.com/codyseavey/tcg-tracker/collection/internal/logging"
	"github.com/codyseavey/tcg-tracker/collection/internal/metrics"
	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

// ErrImportRunNotFound is returned when no import run has the requested ID.
var ErrImportRunNotFound = errors.New("import run not found")

// ImportRequest describes one batch import.
type ImportRequest struct {
	// Source is the uploaded or local file name, kept for the run history.
	Source string
	CSV    io.Reader

	Clear bool
	Since time.Time
	Until time.Time
}

// ImportService runs legacy CSV imports against the collection database.
// Runs are serialized: the pipeline is sequential and a clear-mode run must
// not interleave with another run's appends.
type ImportService struct {
	db        *gorm.DB
	rules     *importer.Rules
	storage   *RejectStorageService
	cacheSize int
	log       *zap.Logger
	now       func() time.Time

	mu sync.Mutex
}

// NewImportService creates an import service. storage may be nil when every
// caller supplies its own reject writer through ImportWithRejects.
func NewImportService(db *gorm.DB, rules *importer.Rules, storage *RejectStorageService, cacheSize int, log *zap.Logger) *ImportService {
	if rules == nil {
		rules = importer.DefaultRules()
	}
	return &ImportService{
		db:        db,
		rules:     rules,
		storage:   storage,
		cacheSize: cacheSize,
		log:       logging.OrNop(log),
		now:       time.Now,
	}
}

// Import runs req and stores its rejects in the reject storage directory.
func (s *ImportService) Import(ctx context.Context, req ImportRequest) (*models.ImportRun, error) {
	if s.storage == nil {
		return nil, errors.New("reject storage is not configured")
	}

	runID := uuid.NewString()
	f, filename, err := s.storage.Create(runID)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return s.run(ctx, runID, filename, req, f)
}

// ImportWithRejects runs req and writes rejects to w.
func (s *ImportService) ImportWithRejects(ctx context.Context, req ImportRequest, w io.Writer) (*models.ImportRun, error) {
	return s.run(ctx, uuid.NewString(), "", req, w)
}

func (s *ImportService) run(ctx context.Context, runID, rejectFile string, req ImportRequest, w io.Writer) (*models.ImportRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := s.now()
	log := s.log.With(zap.String("run_id", runID), zap.String("source", req.Source))

	run := &models.ImportRun{
		ID:         runID,
		Source:     req.Source,
		Cleared:    req.Clear,
		RejectFile: rejectFile,
		StartedAt:  started,
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("record import run: %w", err)
	}

	summary, runErr := s.execute(ctx, run, req, w, log)

	finished := s.now()
	run.FinishedAt = &finished
	if runErr != nil {
		// The transaction rolled back, so nothing from this run is in the
		// ledger. The partial counts only go to the log.
		run.Error = runErr.Error()
		log.Warn("import rolled back",
			zap.Int("attempted_imported", summary.Imported),
			zap.Int("attempted_skipped_by_date", summary.SkippedByDate),
			zap.Int("attempted_rejected", summary.Rejected))
	} else {
		run.Imported = summary.Imported
		run.SkippedByDate = summary.SkippedByDate
		run.Rejected = summary.Rejected
	}
	if err := s.db.WithContext(context.WithoutCancel(ctx)).Save(run).Error; err != nil {
		log.Error("failed to save import run", zap.Error(err))
	}

	metrics.ImportDuration.Observe(finished.Sub(started).Seconds())
	if runErr != nil {
		metrics.ImportRunsTotal.WithLabelValues("failed").Inc()
		log.Error("import failed", zap.Error(runErr))
		return run, runErr
	}
	metrics.ImportRunsTotal.WithLabelValues("completed").Inc()
	metrics.ImportRowsTotal.WithLabelValues(metrics.OutcomeImported).Add(float64(summary.Imported))
	metrics.ImportRowsTotal.WithLabelValues(metrics.OutcomeSkippedByDate).Add(float64(summary.SkippedByDate))
	metrics.ImportRowsTotal.WithLabelValues(metrics.OutcomeRejected).Add(float64(summary.Rejected))
	s.refreshCollectionGauge(ctx)

	return run, nil
}

// execute runs the pipeline inside one transaction. The catalog is read
// through the same transaction handle as the ledger writes.
func (s *ImportService) execute(ctx context.Context, run *models.ImportRun, req ImportRequest, w io.Writer, log *zap.Logger) (importer.Summary, error) {
	var summary importer.Summary

	src, err := importer.NewCSVSource(req.CSV)
	if err != nil {
		return summary, err
	}
	rejects, err := importer.NewCSVRejectWriter(w, src.Header())
	if err != nil {
		return summary, err
	}

	opts := importer.Options{
		ClearBeforeImport: req.Clear,
		Since:             req.Since,
		Until:             req.Until,
		Now:               s.now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store, err := catalog.NewStore(tx, s.cacheSize)
		if err != nil {
			return err
		}
		pipeline := importer.NewPipeline(s.rules, store, opts, log)
		summary, err = pipeline.Run(ctx, src, ledger.New(tx, run.ID), rejects)
		return err
	})

	if flushErr := rejects.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("write rejects: %w", flushErr)
	}
	return summary, err
}

func (s *ImportService) refreshCollectionGauge(ctx context.Context) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.CollectionItem{}).
		Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error; err != nil {
		s.log.Warn("failed to count collection", zap.Error(err))
		return
	}
	metrics.CollectionCardsTotal.Set(float64(total))
}

// ListRuns returns the most recent import runs first.
func (s *ImportService) ListRuns(ctx context.Context, limit int) (*models.ImportRunListResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.ImportRun{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var runs []models.ImportRun
	if err := s.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return &models.ImportRunListResult{Runs: runs, TotalCount: int(total)}, nil
}

// GetRun returns one import run.
func (s *ImportService) GetRun(ctx context.Context, id string) (*models.ImportRun, error) {
	var run models.ImportRun
	err := s.db.WithContext(ctx).First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrImportRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Storage returns the reject storage, or nil.
func (s *ImportService) Storage() *RejectStorageService {
	return s.storage
}
