package suggestdiff

import (
	"fmt"
	"reflect"
	"testing"
)

func para(id, text string) Block {
	return Block{ID: id, Type: "paragraph", Text: text}
}

func countByType(diffs []BlockDiff) map[DiffType]int {
	counts := make(map[DiffType]int)
	for _, d := range diffs {
		counts[d.Type]++
	}
	return counts
}

func TestComputeBlockDiffIdenticalSequences(t *testing.T) {
	blocks := []Block{
		para("a", "one"),
		para("b", "two"),
		{ID: "c", Type: "heading1", Content: []Inline{{Kind: InlineText, Text: "three"}}},
	}

	diffs := ComputeBlockDiff(blocks, blocks)

	if len(diffs) != len(blocks) {
		t.Fatalf("got %d diffs, want %d", len(diffs), len(blocks))
	}
	for i, d := range diffs {
		if d.Type != Unchanged {
			t.Errorf("diff %d = %v, want Unchanged", i, d.Type)
		}
		if d.Position != i {
			t.Errorf("diff %d position = %d, want %d", i, d.Position, i)
		}
	}
}

func TestComputeBlockDiffEmptySides(t *testing.T) {
	blocks := []Block{para("a", "one"), para("b", "two")}

	t.Run("empty original means all added", func(t *testing.T) {
		diffs := ComputeBlockDiff(nil, blocks)
		if len(diffs) != 2 {
			t.Fatalf("got %d diffs, want 2", len(diffs))
		}
		for i, d := range diffs {
			if d.Type != Added {
				t.Errorf("diff %d = %v, want Added", i, d.Type)
			}
			if d.Position != i {
				t.Errorf("diff %d position = %d, want %d", i, d.Position, i)
			}
		}
	})

	t.Run("empty current means all deleted", func(t *testing.T) {
		diffs := ComputeBlockDiff(blocks, nil)
		if len(diffs) != 2 {
			t.Fatalf("got %d diffs, want 2", len(diffs))
		}
		for i, d := range diffs {
			if d.Type != Deleted {
				t.Errorf("diff %d = %v, want Deleted", i, d.Type)
			}
		}
		// First deletion has no surviving predecessor; the second anchors
		// to nothing either since "a" was also deleted.
		if diffs[0].AfterBlockID != "" || diffs[1].AfterBlockID != "" {
			t.Errorf("afterBlockIds = %q, %q, want both empty", diffs[0].AfterBlockID, diffs[1].AfterBlockID)
		}
	})

	t.Run("both empty", func(t *testing.T) {
		if diffs := ComputeBlockDiff(nil, nil); len(diffs) != 0 {
			t.Errorf("got %d diffs, want 0", len(diffs))
		}
	})
}

func TestComputeBlockDiffModifiedText(t *testing.T) {
	original := []Block{para("a", "Hello world")}
	current := []Block{para("a", "Hello there world")}

	diffs := ComputeBlockDiff(original, current)

	want := []BlockDiff{{
		Type:         Modified,
		BlockID:      "a",
		OriginalText: "Hello world",
		CurrentText:  "Hello there world",
		Position:     0,
	}}
	if !reflect.DeepEqual(diffs, want) {
		t.Errorf("diffs = %+v, want %+v", diffs, want)
	}
}

func TestComputeBlockDiffTypeChangeIsModified(t *testing.T) {
	original := []Block{{ID: "a", Type: "paragraph", Text: "same"}}
	current := []Block{{ID: "a", Type: "heading1", Text: "same"}}

	diffs := ComputeBlockDiff(original, current)

	if len(diffs) != 1 || diffs[0].Type != Modified {
		t.Fatalf("diffs = %+v, want one Modified", diffs)
	}
}

func TestComputeBlockDiffIDChurnMatchesByContent(t *testing.T) {
	// First block's id changed across a reload but its content did not.
	original := []Block{para("x", "A"), para("y", "B")}
	current := []Block{para("z", "A"), para("y", "B")}

	diffs := ComputeBlockDiff(original, current)

	want := []BlockDiff{
		{Type: Unchanged, BlockID: "z", Position: 0},
		{Type: Unchanged, BlockID: "y", Position: 1},
	}
	if !reflect.DeepEqual(diffs, want) {
		t.Errorf("diffs = %+v, want %+v", diffs, want)
	}
}

func TestComputeBlockDiffDeletionAnchors(t *testing.T) {
	t.Run("middle deletion anchors to preceding block", func(t *testing.T) {
		original := []Block{para("p1", "one"), para("p2", "two"), para("p3", "three")}
		current := []Block{para("p1", "one"), para("p3", "three")}

		diffs := ComputeBlockDiff(original, current)

		want := []BlockDiff{
			{Type: Unchanged, BlockID: "p1", Position: 0},
			{Type: Unchanged, BlockID: "p3", Position: 1},
			{Type: Deleted, BlockID: "p2", OriginalText: "two", Position: 1, AfterBlockID: "p1"},
		}
		if !reflect.DeepEqual(diffs, want) {
			t.Errorf("diffs = %+v, want %+v", diffs, want)
		}
	})

	t.Run("leading deletion anchors to document start", func(t *testing.T) {
		original := []Block{para("p1", "one"), para("p2", "two")}
		current := []Block{para("p2", "two")}

		diffs := ComputeBlockDiff(original, current)

		want := []BlockDiff{
			{Type: Unchanged, BlockID: "p2", Position: 0},
			{Type: Deleted, BlockID: "p1", OriginalText: "one", Position: 0, AfterBlockID: ""},
		}
		if !reflect.DeepEqual(diffs, want) {
			t.Errorf("diffs = %+v, want %+v", diffs, want)
		}
	})

	t.Run("anchor resolved through content-matched counterpart", func(t *testing.T) {
		// "keep" survives only via signature matching because its id
		// churned; the deletion still anchors to its current-side id.
		original := []Block{para("old-id", "keep"), para("gone", "remove me")}
		current := []Block{para("new-id", "keep")}

		diffs := ComputeBlockDiff(original, current)

		var deleted *BlockDiff
		for i := range diffs {
			if diffs[i].Type == Deleted {
				deleted = &diffs[i]
			}
		}
		if deleted == nil {
			t.Fatalf("no Deleted diff in %+v", diffs)
		}
		if deleted.AfterBlockID != "new-id" {
			t.Errorf("afterBlockId = %q, want %q", deleted.AfterBlockID, "new-id")
		}
	})
}

func TestComputeBlockDiffAdded(t *testing.T) {
	original := []Block{para("a", "one")}
	current := []Block{para("a", "one"), para("b", "two")}

	diffs := ComputeBlockDiff(original, current)

	want := []BlockDiff{
		{Type: Unchanged, BlockID: "a", Position: 0},
		{Type: Added, BlockID: "b", CurrentText: "two", Position: 1},
	}
	if !reflect.DeepEqual(diffs, want) {
		t.Errorf("diffs = %+v, want %+v", diffs, want)
	}
}

func TestComputeBlockDiffMissingIDFallsThrough(t *testing.T) {
	// Blocks without ids cannot identity-match but still content-match.
	original := []Block{para("", "same text"), para("", "gone")}
	current := []Block{para("", "same text"), para("n", "new")}

	diffs := ComputeBlockDiff(original, current)

	counts := countByType(diffs)
	if counts[Unchanged] != 1 || counts[Added] != 1 || counts[Deleted] != 1 {
		t.Errorf("counts = %v, want 1 unchanged, 1 added, 1 deleted", counts)
	}
}

func TestComputeBlockDiffLCSPreservesOrder(t *testing.T) {
	// All ids churned; content-matched pairs must keep their relative
	// order on both sides (monotonic index mapping).
	original := []Block{
		para("o1", "alpha"), para("o2", "beta"), para("o3", "gamma"), para("o4", "delta"),
	}
	current := []Block{
		para("c1", "alpha"), para("c2", "inserted"), para("c3", "gamma"), para("c4", "delta"),
	}

	diffs := ComputeBlockDiff(original, current)

	counts := countByType(diffs)
	if counts[Unchanged] != 3 || counts[Added] != 1 || counts[Deleted] != 1 {
		t.Fatalf("counts = %v, want 3 unchanged, 1 added, 1 deleted", counts)
	}

	lastPos := -1
	for _, d := range diffs {
		if d.Type != Unchanged {
			continue
		}
		if d.Position <= lastPos {
			t.Errorf("unchanged positions not monotonic: %+v", diffs)
		}
		lastPos = d.Position
	}
}

func TestComputeBlockDiffDuplicateSignaturesPairInOrder(t *testing.T) {
	// Duplicate content pairs order-based, not by user intent: the
	// backtrack runs from the tail, so the later original duplicate
	// pairs with the surviving current block and the earlier one is
	// reported deleted. Accepted behavior, pinned here.
	original := []Block{para("o1", "dup"), para("o2", "dup")}
	current := []Block{para("c1", "dup")}

	diffs := ComputeBlockDiff(original, current)

	want := []BlockDiff{
		{Type: Unchanged, BlockID: "c1", Position: 0},
		{Type: Deleted, BlockID: "o1", OriginalText: "dup", Position: 0, AfterBlockID: ""},
	}
	if !reflect.DeepEqual(diffs, want) {
		t.Errorf("diffs = %+v, want %+v", diffs, want)
	}
}

func TestComputeBlockDiffEmptyTextBlocksMatchBySameType(t *testing.T) {
	original := []Block{{ID: "o1", Type: "divider"}}
	current := []Block{{ID: "c1", Type: "divider"}}

	diffs := ComputeBlockDiff(original, current)

	want := []BlockDiff{{Type: Unchanged, BlockID: "c1", Position: 0}}
	if !reflect.DeepEqual(diffs, want) {
		t.Errorf("diffs = %+v, want %+v", diffs, want)
	}
}

func TestComputeBlockDiffDeterministic(t *testing.T) {
	original := []Block{
		para("a", "one"), para("b", "two"), para("x", "dup"), para("y", "dup"),
	}
	current := []Block{
		para("b", "two changed"), para("n1", "dup"), para("n2", "fresh"), para("a", "one"),
	}

	first := ComputeBlockDiff(original, current)
	for i := 0; i < 10; i++ {
		if again := ComputeBlockDiff(original, current); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestComputeBlockDiffDoesNotMutateInputs(t *testing.T) {
	original := []Block{para("a", "one"), para("b", "two")}
	current := []Block{para("a", "one edited"), para("c", "three")}
	origCopy := make([]Block, len(original))
	copy(origCopy, original)
	curCopy := make([]Block, len(current))
	copy(curCopy, current)

	ComputeBlockDiff(original, current)

	if !reflect.DeepEqual(original, origCopy) || !reflect.DeepEqual(current, curCopy) {
		t.Error("inputs were mutated")
	}
}

func TestComputeBlockDiffPositionsAreDense(t *testing.T) {
	// Every current index appears exactly once among the non-deleted
	// entries, whatever mix of passes produced them.
	original := []Block{para("a", "one"), para("x", "churn"), para("d", "gone")}
	current := []Block{para("a", "one edited"), para("y", "churn"), para("n", "new")}

	diffs := ComputeBlockDiff(original, current)

	seen := make(map[int]bool)
	for _, d := range diffs {
		if d.Type == Deleted {
			continue
		}
		if seen[d.Position] {
			t.Fatalf("position %d appears twice: %+v", d.Position, diffs)
		}
		seen[d.Position] = true
	}
	for i := range current {
		if !seen[i] {
			t.Errorf("position %d missing: %+v", i, diffs)
		}
	}
}

func BenchmarkComputeBlockDiff(b *testing.B) {
	const n = 200
	original := make([]Block, n)
	current := make([]Block, n)
	for i := 0; i < n; i++ {
		original[i] = para(fmt.Sprintf("o%d", i), fmt.Sprintf("paragraph number %d with some text", i))
		current[i] = para(fmt.Sprintf("c%d", i), fmt.Sprintf("paragraph number %d with some text", i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeBlockDiff(original, current)
	}
}
