package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codyseavey/tcg-tracker/collection/internal/logging"
)

// ErrRejectFileNotFound is returned when a stored reject file does not exist.
var ErrRejectFileNotFound = errors.New("reject file not found")

// RejectStorageService stores the reject CSVs produced by API imports
type RejectStorageService struct {
	storageDir string
}

// NewRejectStorageService creates the storage directory if needed
func NewRejectStorageService(storageDir string, log *zap.Logger) *RejectStorageService {
	if storageDir == "" {
		storageDir = "./data/rejects"
	}

	// Log but don't fail - will fail on actual writes
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		logging.OrNop(log).Warn("could not create rejects directory",
			zap.String("dir", storageDir), zap.Error(err))
	}

	return &RejectStorageService{
		storageDir: storageDir,
	}
}

// Create opens a new reject file for a run and returns it with its file name
func (s *RejectStorageService) Create(runID string) (*os.File, string, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	filename := runID + "-rejects.csv"

	f, err := os.OpenFile(filepath.Join(s.storageDir, filename), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create reject file: %w", err)
	}
	return f, filename, nil
}

// Path returns the full path of a stored reject file. Names that try to
// leave the storage directory are refused.
func (s *RejectStorageService) Path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", ErrRejectFileNotFound
	}
	path := filepath.Join(s.storageDir, filename)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrRejectFileNotFound
		}
		return "", err
	}
	return path, nil
}

// GetStorageDir returns the storage directory path
func (s *RejectStorageService) GetStorageDir() string {
	return s.storageDir
}
