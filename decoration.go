package suggestdiff

import "fmt"

// DecorationKind identifies the type of a decoration instruction.
type DecorationKind int

const (
	// RangeHighlight highlights a whole block span.
	RangeHighlight DecorationKind = iota
	// InlineHighlight highlights a sub-range of text within a block.
	InlineHighlight
	// Widget places rendered content at a point without occupying any
	// document characters.
	Widget
)

// String returns the renderer-facing name of the decoration kind.
func (k DecorationKind) String() string {
	switch k {
	case RangeHighlight:
		return "rangeHighlight"
	case InlineHighlight:
		return "inlineHighlight"
	case Widget:
		return "widget"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind as its renderer-facing name.
func (k DecorationKind) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", k.String())), nil
}

// Side tells the renderer which side of a widget's anchor to draw on.
type Side string

const (
	// SideBefore draws the widget before its anchor offset.
	SideBefore Side = "before"
	// SideAfter draws the widget after its anchor offset.
	SideAfter Side = "after"
)

// Decoration tags emitted by BuildDecorations. Renderers map tags to
// styling; deleted blocks carry a tag distinct from inline deletions so
// the two render differently.
const (
	TagAddedBlock    = "suggestion-added"
	TagModifiedBlock = "suggestion-modified"
	TagInsertedText  = "suggestion-insert"
	TagDeletedText   = "suggestion-delete"
	TagDeletedBlock  = "suggestion-deleted-block"
)

// Decoration is one renderer-agnostic instruction for overlaying a
// suggestion diff on the live document. RangeHighlight and
// InlineHighlight use From/To; Widget uses Anchor, Side and Text.
type Decoration struct {
	Kind   DecorationKind `json:"kind"`
	From   int            `json:"from"`
	To     int            `json:"to"`
	Anchor int            `json:"anchor"`
	Side   Side           `json:"side,omitempty"`
	Text   string         `json:"text,omitempty"`
	Tag    string         `json:"tag"`
}

// LiveBlock is a block's placement in the live document: its identifier,
// its full document span, and the text runs holding its plain text.
type LiveBlock struct {
	ID    string
	Start int
	End   int
	Runs  []TextRun
}

// BuildDecorations turns a block diff into the decoration instruction
// set for the live document. The result is rebuilt wholesale on every
// call and is deterministic for identical inputs; when enabled is false
// the result is empty.
//
// Diffs naming blocks that no longer exist in the live document are
// skipped rather than failing.
func BuildDecorations(live []LiveBlock, diffs []BlockDiff, enabled bool) []Decoration {
	if !enabled {
		return nil
	}

	index := make(map[string]LiveBlock, len(live))
	for _, lb := range live {
		if lb.ID != "" {
			index[lb.ID] = lb
		}
	}
	// Id-less blocks resolve by position instead, so id-stripped
	// documents don't collide on the empty id.
	locate := func(d BlockDiff) (LiveBlock, bool) {
		if d.BlockID != "" {
			lb, ok := index[d.BlockID]
			return lb, ok
		}
		if d.Position >= 0 && d.Position < len(live) {
			return live[d.Position], true
		}
		return LiveBlock{}, false
	}

	var decorations []Decoration
	for _, d := range diffs {
		switch d.Type {
		case Added:
			lb, ok := locate(d)
			if !ok {
				continue
			}
			decorations = append(decorations, Decoration{
				Kind: RangeHighlight,
				From: lb.Start,
				To:   lb.End,
				Tag:  TagAddedBlock,
			})

		case Modified:
			lb, ok := locate(d)
			if !ok {
				continue
			}
			decorations = append(decorations, Decoration{
				Kind: RangeHighlight,
				From: lb.Start,
				To:   lb.End,
				Tag:  TagModifiedBlock,
			})

			// A type-only change carries no text edits to place.
			segments := DiffWords(d.OriginalText, d.CurrentText)
			if !HasChanges(segments) {
				continue
			}
			mapper := NewRunMapper(lb.Runs, lb.Start)
			spans, anchors := mapper.PlaceSegments(segments)
			for _, s := range spans {
				decorations = append(decorations, Decoration{
					Kind: InlineHighlight,
					From: s.From,
					To:   s.To,
					Tag:  TagInsertedText,
				})
			}
			for _, a := range anchors {
				decorations = append(decorations, Decoration{
					Kind:   Widget,
					Anchor: a.Offset,
					Side:   SideBefore,
					Text:   a.Text,
					Tag:    TagDeletedText,
				})
			}

		case Deleted:
			// Deleted blocks render after the end of the surviving block
			// they were anchored to, or at the document start.
			anchor := 0
			if d.AfterBlockID != "" {
				lb, ok := index[d.AfterBlockID]
				if !ok {
					continue
				}
				anchor = lb.End
			}
			decorations = append(decorations, Decoration{
				Kind:   Widget,
				Anchor: anchor,
				Side:   SideAfter,
				Text:   d.OriginalText,
				Tag:    TagDeletedBlock,
			})
		}
	}

	return decorations
}
