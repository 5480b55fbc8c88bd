package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinSegments(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		want     string
	}{
		{
			name:     "hello world",
			segments: []Segment{{Text: "hello"}, {Text: "world"}},
			want:     "hello world",
		},
		{
			name:     "whisper style leading spaces",
			segments: []Segment{{Text: " And so my fellow Americans,"}, {Text: " ask not"}},
			want:     "And so my fellow Americans,  ask not",
		},
		{
			name:     "no segments",
			segments: nil,
			want:     "",
		},
		{
			name:     "whitespace only",
			segments: []Segment{{Text: "  "}, {Text: "\n"}},
			want:     "",
		},
		{
			name:     "order is preserved",
			segments: []Segment{{ID: 2, Text: "c"}, {ID: 0, Text: "a"}, {ID: 1, Text: "b"}},
			want:     "c a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinSegments(tt.segments))
		})
	}
}
