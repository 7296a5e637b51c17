package suggestdiff

import "fmt"

// DiffType classifies a block in a document diff.
type DiffType int

const (
	// Unchanged means the block appears in both documents with equal
	// type and text.
	Unchanged DiffType = iota
	// Modified means the block appears in both documents but its type
	// or text changed.
	Modified
	// Added means the block appears only in the current document.
	Added
	// Deleted means the block appears only in the original document.
	Deleted
)

// String returns a human-readable representation of the diff type.
func (t DiffType) String() string {
	switch t {
	case Unchanged:
		return "Unchanged"
	case Modified:
		return "Modified"
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	default:
		return "Invalid"
	}
}

// MarshalJSON encodes the diff type as its wire name: "unchanged",
// "modified", "added" or "deleted".
func (t DiffType) MarshalJSON() ([]byte, error) {
	switch t {
	case Unchanged:
		return []byte(`"unchanged"`), nil
	case Modified:
		return []byte(`"modified"`), nil
	case Added:
		return []byte(`"added"`), nil
	case Deleted:
		return []byte(`"deleted"`), nil
	default:
		return nil, fmt.Errorf("invalid diff type %d", int(t))
	}
}

// BlockDiff is the classification of one block after matching an original
// (snapshot) sequence against a current (live) sequence.
//
// Position is the index in the current sequence for Unchanged, Modified
// and Added entries. For Deleted entries it is the informational index in
// the original sequence; AfterBlockID names the current-document block the
// deletion renders after, with "" meaning the document start.
type BlockDiff struct {
	Type         DiffType `json:"type"`
	BlockID      string   `json:"blockId"`
	OriginalText string   `json:"originalText,omitempty"`
	CurrentText  string   `json:"currentText,omitempty"`
	Position     int      `json:"position"`
	AfterBlockID string   `json:"afterBlockId,omitempty"`
}

// ComputeBlockDiff aligns an original block sequence against the current
// one and classifies every block on both sides. It is total for any two
// sequences, including empty ones, and never fails.
//
// Matching runs in two passes. Pass 1 pairs blocks whose identifiers
// survive on both sides. Pass 2 pairs the remaining blocks by content
// signature using a longest-common-subsequence alignment, which absorbs
// the identifier churn editors introduce across reloads: a block whose id
// changed but whose content did not still classifies as Unchanged.
func ComputeBlockDiff(original, current []Block) []BlockDiff {
	origMatched := make([]bool, len(original))
	curMatched := make([]bool, len(current))
	// counterpart[i] is the current-sequence index paired with original
	// index i, for both identity and signature matches.
	counterpart := make(map[int]int, len(original))

	// byPosition collects diffs for current-sequence entries so the
	// output comes out in current order regardless of match order.
	byPosition := make([]BlockDiff, len(current))

	// Pass 1: identity matching. Blocks without an id skip this pass and
	// stay eligible for content matching below.
	curByID := make(map[string]int, len(current))
	for j, b := range current {
		if b.ID != "" {
			curByID[b.ID] = j
		}
	}
	for i, ob := range original {
		if ob.ID == "" {
			continue
		}
		j, ok := curByID[ob.ID]
		if !ok {
			continue
		}
		origMatched[i] = true
		curMatched[j] = true
		counterpart[i] = j

		origText := ExtractText(ob)
		curText := ExtractText(current[j])
		if origText == curText && ob.Type == current[j].Type {
			byPosition[j] = BlockDiff{Type: Unchanged, BlockID: current[j].ID, Position: j}
		} else {
			byPosition[j] = BlockDiff{
				Type:         Modified,
				BlockID:      current[j].ID,
				OriginalText: origText,
				CurrentText:  curText,
				Position:     j,
			}
		}
	}

	// Pass 2: content matching over the leftovers.
	var origLeft, curLeft []int
	for i := range original {
		if !origMatched[i] {
			origLeft = append(origLeft, i)
		}
	}
	for j := range current {
		if !curMatched[j] {
			curLeft = append(curLeft, j)
		}
	}

	for _, pair := range lcsPairs(original, current, origLeft, curLeft) {
		i, j := pair[0], pair[1]
		origMatched[i] = true
		curMatched[j] = true
		counterpart[i] = j
		// Signatures are equal by construction, so the pair is Unchanged
		// even though the two blocks may be distinct duplicates.
		byPosition[j] = BlockDiff{Type: Unchanged, BlockID: current[j].ID, Position: j}
	}

	// Remainder: unmatched current blocks were added.
	for j := range current {
		if !curMatched[j] {
			byPosition[j] = BlockDiff{
				Type:        Added,
				BlockID:     current[j].ID,
				CurrentText: ExtractText(current[j]),
				Position:    j,
			}
		}
	}

	diffs := make([]BlockDiff, 0, len(current))
	diffs = append(diffs, byPosition...)

	// Remainder: unmatched original blocks were deleted. Each deletion is
	// anchored to the nearest preceding original block that survived,
	// translated to its current-side counterpart.
	for i := range original {
		if origMatched[i] {
			continue
		}
		diffs = append(diffs, BlockDiff{
			Type:         Deleted,
			BlockID:      original[i].ID,
			OriginalText: ExtractText(original[i]),
			Position:     i,
			AfterBlockID: resolveAfterBlock(original, current, origMatched, counterpart, i),
		})
	}

	return diffs
}

// lcsPairs aligns the two leftover index slices by signature equality and
// returns the matched (original index, current index) pairs in order.
//
// The alignment is a standard O(m*n) dynamic-programming longest common
// subsequence. Backtracking breaks ties deterministically: the original
// side is skipped only when its sub-problem value is strictly greater,
// otherwise the current side is skipped.
func lcsPairs(original, current []Block, origLeft, curLeft []int) [][2]int {
	m, n := len(origLeft), len(curLeft)
	if m == 0 || n == 0 {
		return nil
	}

	origSigs := make([]string, m)
	for i, oi := range origLeft {
		origSigs[i] = Signature(original[oi])
	}
	curSigs := make([]string, n)
	for j, cj := range curLeft {
		curSigs[j] = Signature(current[cj])
	}

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if origSigs[i-1] == curSigs[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	var pairs [][2]int
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case origSigs[i-1] == curSigs[j-1]:
			pairs = append(pairs, [2]int{origLeft[i-1], curLeft[j-1]})
			i--
			j--
		case dp[i-1][j] > dp[i][j-1]:
			i--
		default:
			j--
		}
	}

	// Backtracking collected pairs in reverse.
	for a, b := 0, len(pairs)-1; a < b; a, b = a+1, b-1 {
		pairs[a], pairs[b] = pairs[b], pairs[a]
	}
	return pairs
}

// resolveAfterBlock finds the current-document block a deletion at
// original index del should render after. It scans backward through the
// original sequence for the nearest matched block and returns its
// counterpart's id in the current sequence; "" means the deletion
// belongs at the document start.
func resolveAfterBlock(original, current []Block, origMatched []bool, counterpart map[int]int, del int) string {
	for i := del - 1; i >= 0; i-- {
		if !origMatched[i] {
			continue
		}
		if j, ok := counterpart[i]; ok {
			return current[j].ID
		}
	}
	return ""
}
