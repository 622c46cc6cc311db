package domain

import (
	"strconv"
	"strings"
)

// SegmentKind distinguishes answer segment variants.
type SegmentKind int

const (
	// SegmentText is literal answer text.
	SegmentText SegmentKind = iota

	// SegmentCitation is a resolved [n] marker.
	SegmentCitation
)

// AnswerSegment is one piece of a linked answer: either literal text or
// a reference to a citation. The union is closed; renderers switch on Kind.
type AnswerSegment struct {
	// Kind selects the variant.
	Kind SegmentKind

	// Text is the literal text for SegmentText segments.
	Text string

	// Citation is the resolved citation for SegmentCitation segments.
	Citation Citation

	// Marker is the original bracketed text, e.g. "[1]".
	// Set for SegmentCitation segments so renderers can echo it.
	Marker string
}

// LinkCitations reconciles an answer string against its citation list.
//
// The text is scanned left to right for [n] markers (open bracket, one or
// more digits, close bracket). Each marker's number is a 1-based index into
// the citation list: in range, it becomes a citation segment; out of range,
// the bracketed text passes through unchanged as literal text. All
// non-marker text is preserved exactly, in original order. The function
// never fails and never drops text.
func LinkCitations(answer string, citations []Citation) []AnswerSegment {
	if answer == "" {
		return nil
	}

	var segments []AnswerSegment
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, AnswerSegment{
				Kind: SegmentText,
				Text: literal.String(),
			})
			literal.Reset()
		}
	}

	for i := 0; i < len(answer); {
		if answer[i] != '[' {
			literal.WriteByte(answer[i])
			i++
			continue
		}

		// Candidate marker: consume digits up to a closing bracket.
		j := i + 1
		for j < len(answer) && answer[j] >= '0' && answer[j] <= '9' {
			j++
		}
		if j == i+1 || j >= len(answer) || answer[j] != ']' {
			// Not a [digits] marker, keep the bracket literally.
			literal.WriteByte(answer[i])
			i++
			continue
		}

		marker := answer[i : j+1]
		n, err := strconv.Atoi(answer[i+1 : j])
		if err != nil || n < 1 || n > len(citations) {
			// Unresolvable marker: pass the bracketed text through as
			// its own literal segment.
			flush()
			segments = append(segments, AnswerSegment{
				Kind: SegmentText,
				Text: marker,
			})
			i = j + 1
			continue
		}

		flush()
		segments = append(segments, AnswerSegment{
			Kind:     SegmentCitation,
			Citation: citations[n-1],
			Marker:   marker,
		})
		i = j + 1
	}

	flush()
	return segments
}
