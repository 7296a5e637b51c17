package suggestdiff

import "strings"

// InlineKind identifies the shape of a piece of inline content.
type InlineKind int

const (
	// InlineText is plain text.
	InlineText InlineKind = iota
	// InlineStyled is formatted text (bold, italic, link, etc.) carrying
	// its literal text.
	InlineStyled
	// InlineUnknown is any inline shape with no extractable text
	// (equations, embeds, mentions). It extracts as the empty string.
	InlineUnknown
)

// String returns a human-readable representation of the inline kind.
func (k InlineKind) String() string {
	switch k {
	case InlineText:
		return "Text"
	case InlineStyled:
		return "Styled"
	case InlineUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Inline is one item of a block's inline content sequence.
type Inline struct {
	Kind InlineKind `json:"kind"`
	Text string     `json:"text,omitempty"`
}

// Block is one structural unit of a block-based document: a paragraph,
// heading, list item, and so on. ID is the editor-assigned identifier;
// it may churn across document reloads, which is why matching falls back
// to content signatures.
//
// Content, when non-nil, is the ordered inline content. Text is the
// direct text of leaf blocks that carry no inline sequence.
type Block struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Content []Inline `json:"content,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ExtractText derives a block's plain text. Blocks with inline content
// concatenate the text of each item; text is taken only from the closed
// set of inline kinds, so unexpected shapes degrade to the empty string
// rather than failing. Blocks without inline content fall back to the
// direct Text field.
func ExtractText(b Block) string {
	if b.Content == nil {
		return b.Text
	}
	var sb strings.Builder
	for _, in := range b.Content {
		switch in.Kind {
		case InlineText, InlineStyled:
			sb.WriteString(in.Text)
		}
	}
	return sb.String()
}

// Signature returns the content-matching key for a block: its type plus
// its extracted text. Two blocks with equal signatures are considered
// the same content even when their identifiers differ.
func Signature(b Block) string {
	return b.Type + ":" + ExtractText(b)
}
