package ocr

import (
	"context"
	"strings"

	"github.com/invtrack/receipt-scan/internal/receipt"
)

// BlockType tags a node in the engine's block graph.
type BlockType string

const (
	BlockTypeTable BlockType = "TABLE"
	BlockTypeCell  BlockType = "CELL"
	BlockTypeWord  BlockType = "WORD"
	BlockTypeLine  BlockType = "LINE"
)

// Block is one node of the document-analysis block graph, resolved into a
// closed struct at the boundary. Loosely-typed engine payloads never travel
// past this package. Row/column indices are 0 when the engine did not set
// them (engines that do set them start at 1).
type Block struct {
	ID          string
	Type        BlockType
	Text        string
	Confidence  float64 // normalized to [0,1]
	RowIndex    int
	ColumnIndex int
	Geometry    *receipt.BoundingBox
	ChildIDs    []string
}

// TextLine is one flat line of recognized text. Top orders lines vertically;
// its unit is engine-specific and only relative order matters.
type TextLine struct {
	Text       string
	Confidence float64
	Top        float64
}

// KeyValue is a key-value pair the engine associated on the page.
type KeyValue struct {
	Key        string
	Value      string
	Confidence float64
}

// AnalysisResult is everything the pipeline consumes from the engine.
type AnalysisResult struct {
	Lines     []TextLine
	Blocks    []Block
	KeyValues []KeyValue
}

// HasText reports whether the engine recognized any non-blank text at all.
func (r AnalysisResult) HasText() bool {
	for _, l := range r.Lines {
		if strings.TrimSpace(l.Text) != "" {
			return true
		}
	}
	for _, b := range r.Blocks {
		if strings.TrimSpace(b.Text) != "" {
			return true
		}
	}
	return false
}

// DocumentAnalyzer is the external OCR/document-analysis collaborator.
// Implementations wrap a concrete provider; the pipeline is agnostic to
// which one supplied the result.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, image []byte) (AnalysisResult, error)
}

// Static is a DocumentAnalyzer that returns a fixed result. Used when the
// engine's output was captured upstream, and in tests.
type Static struct {
	Result AnalysisResult
	Err    error
}

func (s Static) Analyze(_ context.Context, _ []byte) (AnalysisResult, error) {
	return s.Result, s.Err
}
