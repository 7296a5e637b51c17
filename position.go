package suggestdiff

// TextRun is a contiguous span of the live document holding the literal
// characters for part of a block's plain text. A block's text may be
// split across several runs when parts of it carry different formatting,
// and runs are not necessarily adjacent in the document's offset space.
type TextRun struct {
	Text string
	From int
	To   int
}

// Span is an absolute offset range within the live document.
type Span struct {
	From int
	To   int
}

// DeleteAnchor marks the absolute offset where deleted text would be
// re-inserted, along with the deleted text itself. Deleted text has no
// live content to span, so it maps to a point rather than a range.
type DeleteAnchor struct {
	Offset int
	Text   string
}

// RunMapper translates indices into a block's joined plain text into
// absolute document offsets across the block's text runs.
type RunMapper struct {
	runs       []TextRun
	blockStart int
}

// NewRunMapper returns a mapper over the given runs. blockStart is the
// block's start offset, used when the block has no runs at all.
func NewRunMapper(runs []TextRun, blockStart int) *RunMapper {
	return &RunMapper{runs: runs, blockStart: blockStart}
}

// OffsetAt maps an index into the joined plain text to an absolute
// document offset. An index on a run boundary belongs to the run that
// starts there; an index beyond the total text length maps to the end
// offset of the last run. A block with no runs maps everything to the
// block start.
func (m *RunMapper) OffsetAt(index int) int {
	if len(m.runs) == 0 {
		return m.blockStart
	}
	before := 0
	for _, r := range m.runs {
		if index < before+len(r.Text) {
			return r.From + (index - before)
		}
		before += len(r.Text)
	}
	return m.runs[len(m.runs)-1].To
}

// PlaceSegments walks a word diff and places each segment in the live
// document. Insert segments exist in the live text and become one Span
// per run they overlap; delete segments are absent from the live text
// and become a single DeleteAnchor at the insertion point.
//
// Only Equal and Insert segments advance the running text index; deleted
// text occupies no live characters, so Delete segments must not shift
// the placement of anything after them.
func (m *RunMapper) PlaceSegments(segments []Segment) ([]Span, []DeleteAnchor) {
	var spans []Span
	var anchors []DeleteAnchor
	index := 0
	for _, s := range segments {
		switch s.Type {
		case Equal:
			index += len(s.Value)
		case Insert:
			spans = append(spans, m.spansBetween(index, index+len(s.Value))...)
			index += len(s.Value)
		case Delete:
			anchors = append(anchors, DeleteAnchor{Offset: m.OffsetAt(index), Text: s.Value})
		}
	}
	return spans, anchors
}

// spansBetween returns one absolute sub-range per run overlapped by the
// [from, to) text index range, each clipped to the overlap. A range
// straddling a run boundary never produces a span bridging the gap
// between the two runs' document offsets.
func (m *RunMapper) spansBetween(from, to int) []Span {
	if from >= to {
		return nil
	}
	var spans []Span
	before := 0
	for _, r := range m.runs {
		runFrom, runTo := before, before+len(r.Text)
		if runTo > from && runFrom < to {
			start := from
			if runFrom > start {
				start = runFrom
			}
			end := to
			if runTo < end {
				end = runTo
			}
			spans = append(spans, Span{
				From: r.From + (start - before),
				To:   r.From + (end - before),
			})
		}
		before = runTo
		if before >= to {
			break
		}
	}
	return spans
}
