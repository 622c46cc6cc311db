package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCitations(n int) []Citation {
	citations := make([]Citation, n)
	for i := range citations {
		citations[i] = Citation{
			ID:     i + 1,
			Title:  "Doc",
			URL:    "https://docs.example.com",
			Source: SourceDocs,
		}
	}
	return citations
}

// TestLinkCitations_ResolvedAndUnresolvedMarkers tests the reference
// round-trip: in-range markers link, out-of-range markers pass through
func TestLinkCitations_ResolvedAndUnresolvedMarkers(t *testing.T) {
	segments := LinkCitations("See [1] and [3].", testCitations(2))

	require.Len(t, segments, 5)

	assert.Equal(t, SegmentText, segments[0].Kind)
	assert.Equal(t, "See ", segments[0].Text)

	assert.Equal(t, SegmentCitation, segments[1].Kind)
	assert.Equal(t, 1, segments[1].Citation.ID)
	assert.Equal(t, "[1]", segments[1].Marker)

	assert.Equal(t, SegmentText, segments[2].Kind)
	assert.Equal(t, " and ", segments[2].Text)

	assert.Equal(t, SegmentText, segments[3].Kind)
	assert.Equal(t, "[3]", segments[3].Text)

	assert.Equal(t, SegmentText, segments[4].Kind)
	assert.Equal(t, ".", segments[4].Text)
}

// TestLinkCitations_NoMarkers tests plain text answers
func TestLinkCitations_NoMarkers(t *testing.T) {
	segments := LinkCitations("Just an answer.", testCitations(2))

	require.Len(t, segments, 1)
	assert.Equal(t, SegmentText, segments[0].Kind)
	assert.Equal(t, "Just an answer.", segments[0].Text)
}

// TestLinkCitations_EmptyAnswer tests the empty input
func TestLinkCitations_EmptyAnswer(t *testing.T) {
	assert.Nil(t, LinkCitations("", testCitations(3)))
}

// TestLinkCitations_NoCitations tests that markers without a citation list
// all pass through as literal text
func TestLinkCitations_NoCitations(t *testing.T) {
	segments := LinkCitations("See [1] and [2].", nil)

	var rebuilt strings.Builder
	for _, seg := range segments {
		assert.Equal(t, SegmentText, seg.Kind)
		rebuilt.WriteString(seg.Text)
	}
	assert.Equal(t, "See [1] and [2].", rebuilt.String())
}

// TestLinkCitations_PreservesAllText tests that no source text is ever lost
func TestLinkCitations_PreservesAllText(t *testing.T) {
	tests := []struct {
		name   string
		answer string
	}{
		{name: "marker at start", answer: "[1] leads here"},
		{name: "marker at end", answer: "it ends with [2]"},
		{name: "adjacent markers", answer: "[1][2][3]"},
		{name: "zero marker", answer: "bad [0] marker"},
		{name: "unclosed bracket", answer: "array[4"},
		{name: "non-numeric bracket", answer: "see [note] here"},
		{name: "empty bracket", answer: "odd [] pair"},
		{name: "nested brackets", answer: "a [[1]] b"},
	}

	citations := testCitations(2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rebuilt strings.Builder
			for _, seg := range LinkCitations(tt.answer, citations) {
				switch seg.Kind {
				case SegmentText:
					rebuilt.WriteString(seg.Text)
				case SegmentCitation:
					rebuilt.WriteString(seg.Marker)
				}
			}
			assert.Equal(t, tt.answer, rebuilt.String())
		})
	}
}

// TestLinkCitations_ZeroMarkerIsLiteral tests that [0] never resolves
// because markers are 1-based
func TestLinkCitations_ZeroMarkerIsLiteral(t *testing.T) {
	segments := LinkCitations("[0]", testCitations(3))

	require.Len(t, segments, 1)
	assert.Equal(t, SegmentText, segments[0].Kind)
	assert.Equal(t, "[0]", segments[0].Text)
}

// TestLinkCitations_MultiDigitMarker tests markers above 9
func TestLinkCitations_MultiDigitMarker(t *testing.T) {
	segments := LinkCitations("see [12]", testCitations(15))

	require.Len(t, segments, 2)
	assert.Equal(t, SegmentCitation, segments[1].Kind)
	assert.Equal(t, 12, segments[1].Citation.ID)
}
