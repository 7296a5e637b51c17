package suggestdiff

import "github.com/sergi/go-diff/diffmatchpatch"

// TextSpan is one run of a plain-text preview diff.
type TextSpan struct {
	Op   Operation
	Text string
}

// DiffTextPreview computes a character-level diff between two plain
// texts, cleaned up for human readability. It serves the session states
// that carry only serialized text (snapshot text and pending text) and
// no block snapshot to diff structurally.
//
// Like the word differ, the spans reconstruct both inputs: Equal+Delete
// spans concatenate to oldText, Equal+Insert spans to newText.
func DiffTextPreview(oldText, newText string) []TextSpan {
	if oldText == "" && newText == "" {
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var spans []TextSpan
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var op Operation
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = Equal
		case diffmatchpatch.DiffDelete:
			op = Delete
		case diffmatchpatch.DiffInsert:
			op = Insert
		}
		if len(spans) > 0 && spans[len(spans)-1].Op == op {
			spans[len(spans)-1].Text += d.Text
			continue
		}
		spans = append(spans, TextSpan{Op: op, Text: d.Text})
	}
	return spans
}
