package summary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimToSentence(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"  Watch it now.  ", "Watch it now."},
		{"Watch it now. It is about Go and", "Watch it now."},
		{"One. Two. Thr", "One. Two."},
		{"No period at all", "No period at all"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, trimToSentence(tt.raw))
		})
	}
}

func TestOpenAISummarizer_Disabled(t *testing.T) {
	s := NewOpenAISummarizer("", "")

	got, err := s.Summarize(context.Background(), "Amazing Video by CodeMaster")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, defaultPromt, s.promt)
}
