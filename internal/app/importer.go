package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/logging"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

// DefaultImportWorkers bounds import concurrency when the caller does
// not choose a worker count.
const DefaultImportWorkers = 4

// maxRecordLine is the scanner buffer ceiling for one line of an
// import file.
const maxRecordLine = 1024 * 1024

// recordPattern matches numbered archive lines like "12. content".
var recordPattern = regexp.MustCompile(`^(\d+)\.\s*(.+)$`)

// ImportRecord is one parsed entry of a numbered quote file.
type ImportRecord struct {
	Number  int
	Content string
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Imported int
	Skipped  int
	Failed   int
}

// ParseRecords reads a numbered quote file: one quote per line in the
// form "N. text". Blank lines and lines without a number prefix are
// skipped rather than treated as errors, since archive files tend to
// carry headers and separators.
func ParseRecords(r io.Reader) ([]ImportRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLine)

	var records []ImportRecord

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		match := recordPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		content := strings.TrimSpace(match[2])
		if content == "" {
			continue
		}

		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		records = append(records, ImportRecord{Number: number, Content: content})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	return records, nil
}

// ImportService bulk-loads historical quotes. Imported quotes are
// created already approved: the operator running the import vouches
// for the file's contents.
type ImportService struct {
	store  ports.QuoteStore
	logger *slog.Logger
}

// ImportServiceConfig contains dependencies for the import service.
type ImportServiceConfig struct {
	Store  ports.QuoteStore
	Logger *slog.Logger
}

// NewImportService creates a new import service with the provided
// dependencies.
func NewImportService(cfg ImportServiceConfig) *ImportService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ImportService{
		store:  cfg.Store,
		logger: logger.With(slog.String("component", "app.ImportService")),
	}
}

func (s *ImportService) log(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}

	return s.logger
}

// Import creates one approved quote per record with bounded
// concurrency. Records whose content already exists count as skipped;
// other failures count as failed and are logged, but neither aborts
// the run.
func (s *ImportService) Import(ctx context.Context, records []ImportRecord, source string, workers int) (*ImportReport, error) {
	logger := s.log(ctx).With(
		slog.String("method", "Import"),
		slog.String("source", source),
	)

	if source == "" {
		return nil, fmt.Errorf("validating input: %w", domain.NewValidationError("source", "cannot be empty"))
	}

	if workers <= 0 {
		workers = DefaultImportWorkers
	}

	fns := make([]func(context.Context) (*domain.Quote, error), 0, len(records))
	for _, record := range records {
		fns = append(fns, func(ctx context.Context) (*domain.Quote, error) {
			return s.store.Create(ctx, ports.NewQuote{
				Content:     record.Content,
				ContentHash: domain.ContentHash(record.Content),
				Status:      domain.StatusApproved,
				Source:      source,
			})
		})
	}

	report := &ImportReport{}

	for _, result := range ParallelPartialLimit(ctx, workers, fns...) {
		switch {
		case result.Err == nil:
			report.Imported++
		case domain.IsDuplicateContent(result.Err):
			report.Skipped++
		default:
			report.Failed++
			logger.WarnContext(ctx, "import record failed",
				slog.Any("error", result.Err),
			)
		}
	}

	logger.InfoContext(ctx, "import finished",
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)

	return report, nil
}
