package suggestdiff

import (
	"strings"

	"github.com/dacharyc/diffx"
)

// Operation represents a word-diff operation type.
type Operation int

const (
	// Equal indicates the text is unchanged.
	Equal Operation = iota
	// Insert indicates the text was added.
	Insert
	// Delete indicates the text was removed.
	Delete
)

// String returns a human-readable representation of the operation.
func (o Operation) String() string {
	switch o {
	case Equal:
		return "Equal"
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Segment is one run of a word-level diff. Adjacent words with the same
// operation are coalesced into a single segment.
type Segment struct {
	Type  Operation
	Value string
}

// DiffWords computes the word-level diff between two texts.
//
// Tokenization attaches each word's trailing whitespace to the word, so
// segment values carry the literal text of both inputs: concatenating the
// Equal and Delete segment values reproduces originalText, and
// concatenating the Equal and Insert values reproduces currentText.
// It uses the Myers diff algorithm via diffx, histogram-style, which
// avoids spurious matches on common words.
func DiffWords(originalText, currentText string) []Segment {
	if originalText == "" && currentText == "" {
		return nil
	}
	if originalText == "" {
		return []Segment{{Type: Insert, Value: currentText}}
	}
	if currentText == "" {
		return []Segment{{Type: Delete, Value: originalText}}
	}

	tokens1 := tokenizeWords(originalText)
	tokens2 := tokenizeWords(currentText)
	ops := diffx.DiffHistogram(tokens1, tokens2)

	var segments []Segment
	appendRun := func(op Operation, tokens []string, from, to int) {
		if from >= to {
			return
		}
		value := strings.Join(tokens[from:to], "")
		if len(segments) > 0 && segments[len(segments)-1].Type == op {
			segments[len(segments)-1].Value += value
			return
		}
		segments = append(segments, Segment{Type: op, Value: value})
	}

	for _, op := range ops {
		switch op.Type {
		case diffx.Equal:
			appendRun(Equal, tokens1, op.AStart, op.AEnd)
		case diffx.Delete:
			appendRun(Delete, tokens1, op.AStart, op.AEnd)
		case diffx.Insert:
			appendRun(Insert, tokens2, op.BStart, op.BEnd)
		}
	}

	return segments
}

// tokenizeWords splits text into word tokens. Each token is a maximal run
// of non-whitespace runes together with the whitespace run that follows
// it; a leading whitespace run forms its own token. Concatenating the
// tokens reproduces the input exactly.
func tokenizeWords(text string) []string {
	var tokens []string
	var current strings.Builder
	trailing := false

	for _, r := range text {
		if isWhitespace(r) {
			current.WriteRune(r)
			trailing = true
			continue
		}
		if trailing {
			tokens = append(tokens, current.String())
			current.Reset()
			trailing = false
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// isWhitespace returns true if r is a whitespace character.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// HasChanges returns true if the segment slice contains any non-Equal
// operations.
func HasChanges(segments []Segment) bool {
	for _, s := range segments {
		if s.Type != Equal {
			return true
		}
	}
	return false
}
