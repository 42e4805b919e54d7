// scanreceipt runs one receipt image (or a pre-captured document-analysis
// block dump) through the extraction pipeline and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/invtrack/receipt-scan/internal/catalog"
	"github.com/invtrack/receipt-scan/internal/common"
	"github.com/invtrack/receipt-scan/internal/export"
	"github.com/invtrack/receipt-scan/internal/llm"
	"github.com/invtrack/receipt-scan/internal/llm/gemini"
	"github.com/invtrack/receipt-scan/internal/llm/openai"
	"github.com/invtrack/receipt-scan/internal/ocr"
	"github.com/invtrack/receipt-scan/internal/ocr/azure"
	"github.com/invtrack/receipt-scan/internal/repository"
	"github.com/invtrack/receipt-scan/internal/scanner"
)

func main() {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("scanreceipt")
	var (
		imagePath  = fs.StringLong("image", "", "Receipt image to scan")
		blocksPath = fs.StringLong("blocks", "", "Pre-captured document-analysis block JSON (skips the OCR call)")
		xlsxPath   = fs.StringLong("xlsx", "", "Also write the products as an XLSX workbook to this path")
		enrich     = fs.BoolLong("enrich", "Enrich products from the catalog database (needs CATALOG_DSN)")
		timeout    = fs.DurationLong("timeout", 2*time.Minute, "Overall scan timeout")
	)
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_SCAN"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *imagePath == "" && *blocksPath == "" {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: one of --image or --blocks is required")
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	if *blocksPath == "" {
		// Live OCR needs credentials before any work starts.
		if err := cfg.Validate(); err != nil {
			logger.Error("scanreceipt.config_invalid", "error", err)
			os.Exit(1)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	analyzer, image, err := buildAnalyzer(cfg, *imagePath, *blocksPath, logger)
	if err != nil {
		logger.Error("scanreceipt.setup_failed", "error", err)
		os.Exit(1)
	}

	completer, closeCompleter, err := buildCompleter(ctx, cfg, logger)
	if err != nil {
		logger.Error("scanreceipt.setup_failed", "error", err)
		os.Exit(1)
	}
	defer closeCompleter()

	s := scanner.New(analyzer, completer, scanner.Config{
		MaxProducts:         cfg.Scanner.MaxProducts,
		ReviewThreshold:     cfg.Scanner.ReviewThreshold,
		UnknownFormatCap:    cfg.Scanner.UnknownFormatCap,
		SoftFieldConfidence: cfg.Scanner.SoftFieldConfidence,
		FallbackConfidence:  cfg.Scanner.FallbackConfidence,
		RawLineConfidence:   cfg.Scanner.RawLineConfidence,
		EnableFallback:      cfg.Scanner.EnableFallback,
	}, logger)

	result := s.Scan(ctx, image)

	if *enrich && result.Success && cfg.Catalog.DSN != "" {
		if err := enrichFromCatalog(ctx, cfg, &result, logger); err != nil {
			logger.Warn("scanreceipt.enrich_failed", "error", err)
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("scanreceipt.marshal_failed", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if *xlsxPath != "" && result.Success {
		data, err := export.NewService(logger).ProductsXLSX(result.Products)
		if err != nil {
			logger.Error("scanreceipt.xlsx_failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxPath, data, 0o644); err != nil {
			logger.Error("scanreceipt.xlsx_write_failed", "error", err)
			os.Exit(1)
		}
		logger.Info("scanreceipt.xlsx_written", "path", *xlsxPath, "bytes", len(data))
	}

	if !result.Success {
		os.Exit(1)
	}
}

// buildAnalyzer picks the document-analysis source: a pre-captured block
// dump when given, otherwise the Azure OCR client against the real image.
func buildAnalyzer(cfg *common.Config, imagePath, blocksPath string, logger *slog.Logger) (ocr.DocumentAnalyzer, []byte, error) {
	if blocksPath != "" {
		data, err := os.ReadFile(blocksPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read blocks file: %w", err)
		}
		res, err := ocr.DecodeBlocks(data)
		if err != nil {
			return nil, nil, fmt.Errorf("decode blocks file: %w", err)
		}
		return ocr.Static{Result: res}, nil, nil
	}

	image, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read image: %w", err)
	}
	client, err := azure.NewClient(cfg.OCR.Endpoint, cfg.OCR.APIKey, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, image, nil
}

// buildCompleter wires the configured generative-model provider, or none
// when the fallback tier is disabled.
func buildCompleter(ctx context.Context, cfg *common.Config, logger *slog.Logger) (llm.Completer, func(), error) {
	noop := func() {}
	if !cfg.Scanner.EnableFallback {
		return nil, noop, nil
	}
	switch cfg.LLM.Provider {
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model, logger)
		if err != nil {
			return nil, noop, err
		}
		return client, func() {
			if err := client.Close(); err != nil {
				logger.Warn("scanreceipt.gemini_close_failed", "error", err)
			}
		}, nil
	case "openai":
		client := openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		return client, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

func enrichFromCatalog(ctx context.Context, cfg *common.Config, result *scanner.ScanResult, logger *slog.Logger) error {
	db, err := repository.Open(ctx, repository.Config{DSN: cfg.Catalog.DSN}, logger)
	if err != nil {
		return err
	}
	defer db.Close(logger)

	repo := repository.NewCatalogRepository(db, logger)
	if err := repo.Init(ctx); err != nil {
		return err
	}
	items, err := repo.ListActiveProducts(ctx)
	if err != nil {
		return err
	}
	catalog.Enrich(result.Products, items, cfg.Catalog.MatchThreshold, logger)
	return nil
}
