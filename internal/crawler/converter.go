package crawler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"rankings/internal/crawler/parsers"
	"rankings/internal/logger"
	"rankings/internal/models"
	"rankings/internal/normalizer"
	"rankings/pkg/metadata"
	"rankings/pkg/utils"
)

// ErrNoWorkbooks indicates the input directory holds no .xlsx exports.
var ErrNoWorkbooks = errors.New("No .xlsx files found")

// Converter turns spreadsheet ranking exports into payload files.
type Converter struct {
	processor *normalizer.Processor
	helper    *utils.StringHelper
	log       *logger.Logger
}

// FileError records a failed conversion in a batch.
type FileError struct {
	Err  error
	Path string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(e.Path), e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// BatchResult lists what a batch produced, in input order.
type BatchResult struct {
	Written []string
	Failed  []*FileError
}

// NewConverter creates a converter that logs through log.
func NewConverter(log *logger.Logger) *Converter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Converter{
		processor: normalizer.NewProcessor(log),
		helper:    utils.NewStringHelper(),
		log:       log,
	}
}

// DiscoverFiles returns the regular *.xlsx files of dir in sorted order.
func DiscoverFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	files := make([]string, 0, len(matches))

	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		files = append(files, path)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoWorkbooks, dir)
	}

	sort.Strings(files)

	return files, nil
}

// OutputName returns the payload file name for a category and year.
func (c *Converter) OutputName(category string, year int) string {
	return c.helper.Slugify(fmt.Sprintf("ft-%s-%d", category, year)) + ".json"
}

// ConvertFile converts one workbook and returns the written path.
func (c *Converter) ConvertFile(path, outputDir string) (string, error) {
	meta, err := metadata.InferFromFilename(path)
	if err != nil {
		return "", err
	}

	wb, err := parsers.OpenWorkbook(path)
	if err != nil {
		return "", err
	}
	defer wb.Close()

	c.log.Debug("reading workbook", "file", filepath.Base(path), "sheet", wb.Sheet(), "rows", wb.NumRows())

	payload, err := c.processor.Process(models.SourceInfo{
		MasterType: meta.MasterType,
		Source:     metadata.Source,
		Category:   meta.Category,
		Year:       meta.Year,
		SourceURL:  meta.SourceURL,
	}, wb)
	if err != nil {
		return "", err
	}

	outputPath := filepath.Join(outputDir, c.OutputName(meta.Category, meta.Year))
	if err := SavePayloadJSON(payload, outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}

// ConvertAll converts every workbook in inputDir into outputDir.
// The first failure stops the batch unless continueOnError is set, in which
// case every file is attempted and the failures are joined into the error.
func (c *Converter) ConvertAll(inputDir, outputDir string, continueOnError bool) (*BatchResult, error) {
	files, err := DiscoverFiles(inputDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BatchResult{}

	for _, path := range files {
		log := c.log.With("file", filepath.Base(path))

		outputPath, err := c.ConvertFile(path, outputDir)
		if err != nil {
			fileErr := &FileError{Path: path, Err: err}
			log.Error("conversion failed", "error", err)

			if !continueOnError {
				return result, fileErr
			}

			result.Failed = append(result.Failed, fileErr)

			continue
		}

		log.Info("wrote payload", "output", outputPath)
		result.Written = append(result.Written, outputPath)
	}

	if len(result.Failed) > 0 {
		errs := make([]error, len(result.Failed))
		for i, fileErr := range result.Failed {
			errs[i] = fileErr
		}

		return result, errors.Join(errs...)
	}

	return result, nil
}
