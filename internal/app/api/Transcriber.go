package api

import (
	"context"
	"strings"

	"github.com/samber/lo"
)

// Segment is a contiguous span of recognised speech as produced by a model.
type Segment struct {
	ID    int     `json:"id"`
	Text  string  `json:"text"`
	Start float64 `json:"start"` // seconds
	End   float64 `json:"end"`   // seconds
}

// Transcriber defines a transcription interface for converting an audio file to segments.
type Transcriber interface {
	Transcribe(ctx context.Context, inputFilePath string, language string) ([]Segment, error)
}

// JoinSegments joins segment texts with single spaces, in production order,
// and strips surrounding whitespace from the result.
func JoinSegments(segments []Segment) string {
	texts := lo.Map(segments, func(s Segment, _ int) string {
		return s.Text
	})
	return strings.TrimSpace(strings.Join(texts, " "))
}
