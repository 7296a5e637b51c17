// Package suggestdiff implements the diff and decoration engine behind a
// "suggest mode" for block-based document editors: edits land in the live
// document while a pristine snapshot is retained, and the two are diffed
// so suggested changes can be overlaid, reviewed, and accepted or
// rejected in bulk.
//
// The engine has four parts. ComputeBlockDiff aligns the snapshot's block
// sequence against the live one, surviving the identifier churn editors
// introduce across reloads by falling back to content signatures.
// DiffWords computes word-level diffs for blocks whose text changed.
// RunMapper places word-diff segments at absolute offsets even when a
// block's text is fragmented across differently formatted runs. Finally
// BuildDecorations combines all three into a renderer-agnostic
// instruction set of highlights and widgets.
//
// Every computation is a pure function of its inputs: nothing here holds
// state across calls, mutates its inputs, or performs I/O. Decoration
// sets are rebuilt wholesale on each call rather than patched, which is
// deliberate for the document sizes this targets (up to a few hundred
// blocks).
//
// Word diffing uses github.com/dacharyc/diffx for its histogram-style
// Myers diff.
package suggestdiff

// Summary counts the blocks in each diff classification.
type Summary struct {
	Unchanged int
	Modified  int
	Added     int
	Deleted   int
}

// HasChanges returns true if any block was modified, added or deleted.
func (s Summary) HasChanges() bool {
	return s.Modified+s.Added+s.Deleted > 0
}

// Summarize tallies a block diff by classification.
func Summarize(diffs []BlockDiff) Summary {
	var s Summary
	for _, d := range diffs {
		switch d.Type {
		case Unchanged:
			s.Unchanged++
		case Modified:
			s.Modified++
		case Added:
			s.Added++
		case Deleted:
			s.Deleted++
		}
	}
	return s
}

// BuildDocumentDecorations runs the whole pipeline: block matching over
// the snapshot and current sequences, then decoration building against
// the live document layout. This is the one call a host needs on each
// document-change or recompute signal.
func BuildDocumentDecorations(original, current []Block, live []LiveBlock, enabled bool) ([]BlockDiff, []Decoration) {
	diffs := ComputeBlockDiff(original, current)
	return diffs, BuildDecorations(live, diffs, enabled)
}
