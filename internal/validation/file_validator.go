package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"adrecon/internal/dataprocessing"
	"adrecon/pkg/contracts/domain"
)

// FileValidator checks command line input and output paths
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks that path exists, is a regular file and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateExportFile checks an input export: readable, non-empty and with
// the extension the pipeline accepts.
func (v *FileValidator) ValidateExportFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if !dataprocessing.IsSupportedFile(path) {
		v.logger.Error("Export is not a CSV file",
			slog.String("file", path),
			slog.String("extension", filepath.Ext(path)))
		return &dataprocessing.UnsupportedFormatError{Filename: filepath.Base(path)}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.Size() == 0 {
		v.logger.Error("Export is empty",
			slog.String("file", path))
		return fmt.Errorf("file %s is empty", path)
	}

	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateReportPath checks that the report can be written to path and that
// its extension matches format.
func (v *FileValidator) ValidateReportPath(path string, format domain.ReportFormat) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext != string(format) {
		v.logger.Error("Report extension does not match format",
			slog.String("file", path),
			slog.String("format", string(format)))
		return fmt.Errorf("report %s must have a .%s extension", path, format)
	}

	return v.ValidateOutputDirectory(filepath.Dir(path))
}
