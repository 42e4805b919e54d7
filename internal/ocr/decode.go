package ocr

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invtrack/receipt-scan/internal/receipt"
)

// Wire shapes for engines that emit a Textract-style block graph.
type wireDocument struct {
	Blocks []wireBlock `json:"Blocks"`
}

type wireBlock struct {
	ID            string              `json:"Id"`
	BlockType     string              `json:"BlockType"`
	Text          string              `json:"Text"`
	Confidence    float64             `json:"Confidence"`
	RowIndex      int                 `json:"RowIndex"`
	ColumnIndex   int                 `json:"ColumnIndex"`
	Geometry      *wireGeometry       `json:"Geometry"`
	Relationships []wireRelationships `json:"Relationships"`
}

type wireGeometry struct {
	BoundingBox *wireBoundingBox `json:"BoundingBox"`
}

type wireBoundingBox struct {
	Left   float64 `json:"Left"`
	Top    float64 `json:"Top"`
	Width  float64 `json:"Width"`
	Height float64 `json:"Height"`
}

type wireRelationships struct {
	Type string   `json:"Type"`
	IDs  []string `json:"Ids"`
}

// DecodeBlocks resolves a raw block-graph JSON document into an
// AnalysisResult. Confidence values above 1 are treated as percentages and
// normalized to [0,1]. Lines are sorted by vertical position.
func DecodeBlocks(data []byte) (AnalysisResult, error) {
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return AnalysisResult{}, fmt.Errorf("decode block graph: %w", err)
	}

	res := AnalysisResult{}
	for _, wb := range doc.Blocks {
		b := Block{
			ID:          wb.ID,
			Type:        BlockType(wb.BlockType),
			Text:        wb.Text,
			Confidence:  normalizeConfidence(wb.Confidence),
			RowIndex:    wb.RowIndex,
			ColumnIndex: wb.ColumnIndex,
		}
		if wb.Geometry != nil && wb.Geometry.BoundingBox != nil {
			b.Geometry = &receipt.BoundingBox{
				Left:   wb.Geometry.BoundingBox.Left,
				Top:    wb.Geometry.BoundingBox.Top,
				Width:  wb.Geometry.BoundingBox.Width,
				Height: wb.Geometry.BoundingBox.Height,
			}
		}
		for _, rel := range wb.Relationships {
			if rel.Type == "CHILD" {
				b.ChildIDs = append(b.ChildIDs, rel.IDs...)
			}
		}
		res.Blocks = append(res.Blocks, b)

		if b.Type == BlockTypeLine && strings.TrimSpace(b.Text) != "" {
			top := 0.0
			if b.Geometry != nil {
				top = b.Geometry.Top
			}
			res.Lines = append(res.Lines, TextLine{
				Text:       b.Text,
				Confidence: b.Confidence,
				Top:        top,
			})
		}
	}

	sort.SliceStable(res.Lines, func(i, j int) bool {
		return res.Lines[i].Top < res.Lines[j].Top
	})
	return res, nil
}

func normalizeConfidence(c float64) float64 {
	if c > 1 {
		return c / 100
	}
	if c < 0 {
		return 0
	}
	return c
}
