package azure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"

	"github.com/invtrack/receipt-scan/internal/common"
	"github.com/invtrack/receipt-scan/internal/ocr"
)

// Printed-text OCR reports no per-line confidence; lines get this value.
const defaultLineConfidence = 0.9

// Client adapts Azure Cognitive Services printed-text OCR to the
// DocumentAnalyzer contract. This provider emits flat lines only (no table
// block graph), so scans through it exercise the line-based fallback path.
type Client struct {
	cv  *computervision.BaseClient
	log *slog.Logger
}

func NewClient(endpoint, apiKey string, logger *slog.Logger) (*Client, error) {
	if endpoint == "" || apiKey == "" {
		return nil, common.ConfigError("azure ocr endpoint and api key are required", common.ErrInvalidInput)
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)
	return &Client{cv: &client, log: logger}, nil
}

// Analyze runs printed-text OCR on the image and converts the region/line/
// word result into an AnalysisResult.
func (c *Client) Analyze(ctx context.Context, image []byte) (ocr.AnalysisResult, error) {
	imageReader := io.NopCloser(bytes.NewReader(image))

	result, err := c.cv.RecognizePrintedTextInStream(
		ctx,
		true,
		imageReader,
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		c.log.Error("ocr.azure.request_failed", "error", err)
		return ocr.AnalysisResult{}, fmt.Errorf("azure ocr: %w", err)
	}

	res := extractLines(result)
	c.log.Info("ocr.azure.ok", "lines", len(res.Lines))
	return res, nil
}

func extractLines(result computervision.OcrResult) ocr.AnalysisResult {
	var res ocr.AnalysisResult
	if result.Regions == nil {
		return res
	}
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			var lineText strings.Builder
			if line.Words != nil {
				for _, word := range *line.Words {
					if word.Text != nil {
						lineText.WriteString(*word.Text)
						lineText.WriteString(" ")
					}
				}
			}
			text := strings.TrimSpace(lineText.String())
			if text == "" {
				continue
			}
			res.Lines = append(res.Lines, ocr.TextLine{
				Text:       text,
				Confidence: defaultLineConfidence,
				Top:        boundingBoxTop(line.BoundingBox),
			})
		}
	}
	sort.SliceStable(res.Lines, func(i, j int) bool {
		return res.Lines[i].Top < res.Lines[j].Top
	})
	return res
}

// boundingBoxTop parses the "x,y,w,h" bounding box string and returns y.
// Pixel units; only the relative order of lines matters downstream.
func boundingBoxTop(box *string) float64 {
	if box == nil {
		return 0
	}
	parts := strings.Split(*box, ",")
	if len(parts) < 2 {
		return 0
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return float64(y)
}
