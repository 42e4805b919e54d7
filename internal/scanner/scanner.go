package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/invtrack/receipt-scan/constants"
	"github.com/invtrack/receipt-scan/internal/columns"
	"github.com/invtrack/receipt-scan/internal/extract"
	"github.com/invtrack/receipt-scan/internal/llm"
	"github.com/invtrack/receipt-scan/internal/ocr"
	"github.com/invtrack/receipt-scan/internal/table"
)

// Config holds the scanner's policy knobs. Zero values are replaced with
// the package defaults in New.
type Config struct {
	MaxProducts         int
	ReviewThreshold     float64
	UnknownFormatCap    float64
	SoftFieldConfidence float64
	FallbackConfidence  float64
	RawLineConfidence   float64
	EnableFallback      bool
}

// Scanner drives one receipt image through the structured extraction path
// and, when structure is absent or unmappable, through the generative-model
// fallback. It holds no mutable state; one instance is safe to reuse across
// concurrent scans.
type Scanner struct {
	log       *slog.Logger
	analyzer  ocr.DocumentAnalyzer
	completer llm.Completer // nil disables the fallback tier
	extractor *extract.Extractor
	cfg       Config
}

func New(analyzer ocr.DocumentAnalyzer, completer llm.Completer, cfg Config, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxProducts <= 0 {
		cfg.MaxProducts = constants.DefaultMaxProducts
	}
	if cfg.ReviewThreshold <= 0 {
		cfg.ReviewThreshold = constants.ReviewThreshold
	}
	if cfg.UnknownFormatCap <= 0 {
		cfg.UnknownFormatCap = constants.UnknownFormatCap
	}
	if cfg.SoftFieldConfidence <= 0 {
		cfg.SoftFieldConfidence = constants.SoftFieldConfidence
	}
	if cfg.FallbackConfidence <= 0 {
		cfg.FallbackConfidence = constants.FallbackConfidence
	}
	if cfg.RawLineConfidence <= 0 {
		cfg.RawLineConfidence = constants.RawLineConfidence
	}
	return &Scanner{
		log:       logger,
		analyzer:  analyzer,
		completer: completer,
		extractor: extract.NewExtractor(extract.Config{
			SoftFieldConfidence: cfg.SoftFieldConfidence,
			ReviewThreshold:     cfg.ReviewThreshold,
		}, logger),
		cfg: cfg,
	}
}

// continueReason signals that a tier could not finish and the next one
// should take over. Keeps the multi-tier control flow explicit instead of
// exception-driven.
type continueReason string

const (
	continueNone        continueReason = ""
	continueNoStructure continueReason = "no_structure"
	continueUnmappable  continueReason = "unmappable_columns"
	continuePanic       continueReason = "processing_panic"
)

// Scan processes one image to completion. It never returns an error: every
// failure mode terminates in a ScanResult with Success=false and a
// human-readable Error. The fallback tier operates on OCR text lines, so
// an unreachable engine or a no-text result is terminal even when the
// fallback is enabled.
func (s *Scanner) Scan(ctx context.Context, image []byte) ScanResult {
	scanID := uuid.New().String()
	start := time.Now()
	s.log.Info("scanner.scan.start", "scan_id", scanID, "image_bytes", len(image))

	analysis, err := s.analyzer.Analyze(ctx, image)
	if err != nil {
		// The fallback tier needs OCR text; an unreachable engine is
		// terminal regardless of fallback configuration.
		s.log.Error("scanner.scan.ocr_failed", "scan_id", scanID, "error", err)
		return s.fail(fmt.Sprintf("Document analysis failed: %v", err))
	}
	if !analysis.HasText() {
		s.log.Warn("scanner.scan.no_text", "scan_id", scanID)
		return s.fail("No text detected. Please ensure the image is clear and contains readable text.")
	}

	result, mappingLog, reason := s.scanStructured(ctx, scanID, analysis)
	if reason == continueNone {
		result.MappingLog = mappingLog
		s.log.Info("scanner.scan.ok",
			"scan_id", scanID,
			"path", "structured",
			"products", len(result.Products),
			"confidence", result.Confidence,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return result
	}

	if s.cfg.EnableFallback && s.completer != nil {
		s.log.Warn("scanner.scan.falling_back", "scan_id", scanID, "reason", string(reason))
		fb := s.scanFallback(ctx, scanID, analysis)
		fb.MappingLog = mappingLog
		s.log.Info("scanner.scan.ok",
			"scan_id", scanID,
			"path", "fallback",
			"products", len(fb.Products),
			"confidence", fb.Confidence,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return fb
	}

	res := s.fail(terminalMessage(reason))
	res.MappingLog = mappingLog
	return res
}

// scanStructured runs table build, column mapping, row extraction and
// post-processing. A panic anywhere in this tier is converted into a
// continue signal rather than escaping the scan.
func (s *Scanner) scanStructured(ctx context.Context, scanID string, analysis ocr.AnalysisResult) (result ScanResult, mappingLog []columns.Decision, reason continueReason) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("scanner.structured.panic", "scan_id", scanID, "panic", r)
			result = ScanResult{}
			reason = continuePanic
		}
	}()

	parsed := table.BuildReceipt(analysis, s.log)
	if len(parsed.Headers) == 0 && len(parsed.Rows) == 0 {
		return ScanResult{}, nil, continueNoStructure
	}

	mr := columns.MapColumns(parsed.Headers)
	if !mr.Success {
		s.log.Warn("scanner.structured.unmappable",
			"scan_id", scanID, "headers", len(parsed.Headers))
		return ScanResult{}, mr.Decisions, continueUnmappable
	}

	products := s.extractor.ExtractAll(parsed.Rows, *mr.Mapping)
	// Zero extracted rows from a structurally valid table is legitimate,
	// if unusual; it just yields an empty, low-confidence result.

	products, aggregate := s.postProcess(products, parsed.FormatType)

	return ScanResult{
		Success:    true,
		Products:   products,
		Metadata:   parseMetadata(analysis.Lines),
		Confidence: aggregate,
		FormatType: parsed.FormatType,
	}, mr.Decisions, continueNone
}

func (s *Scanner) fail(message string) ScanResult {
	return ScanResult{
		Success:    false,
		Products:   []*extract.Product{},
		FormatType: constants.FormatUnknown,
		Error:      message,
	}
}

func terminalMessage(reason continueReason) string {
	switch reason {
	case continueNoStructure:
		return "Could not identify table structure. Please ensure the image is clear and contains readable text."
	case continueUnmappable:
		return "Could not identify product columns in the detected table."
	case continuePanic:
		return "Processing error: the receipt could not be parsed."
	default:
		return "Processing error."
	}
}
