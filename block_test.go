package suggestdiff

import "testing"

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{
			name:  "direct text field",
			block: Block{ID: "a", Type: "code", Text: "fmt.Println()"},
			want:  "fmt.Println()",
		},
		{
			name: "inline sequence concatenates",
			block: Block{ID: "a", Type: "paragraph", Content: []Inline{
				{Kind: InlineText, Text: "plain "},
				{Kind: InlineStyled, Text: "bold"},
				{Kind: InlineText, Text: " tail"},
			}},
			want: "plain bold tail",
		},
		{
			name: "unknown inline shapes degrade to empty",
			block: Block{ID: "a", Type: "paragraph", Content: []Inline{
				{Kind: InlineText, Text: "see "},
				{Kind: InlineUnknown, Text: "ignored payload"},
				{Kind: InlineText, Text: "figure"},
			}},
			want: "see figure",
		},
		{
			name:  "empty inline sequence does not fall back to text",
			block: Block{ID: "a", Type: "paragraph", Content: []Inline{}, Text: "leftover"},
			want:  "",
		},
		{
			name:  "nothing at all",
			block: Block{ID: "a", Type: "divider"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText(tt.block); got != tt.want {
				t.Errorf("ExtractText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSignature(t *testing.T) {
	a := Block{ID: "x", Type: "paragraph", Text: "same words"}
	b := Block{ID: "y", Type: "paragraph", Content: []Inline{{Kind: InlineText, Text: "same words"}}}
	if Signature(a) != Signature(b) {
		t.Errorf("signatures differ: %q vs %q", Signature(a), Signature(b))
	}

	c := Block{ID: "x", Type: "heading1", Text: "same words"}
	if Signature(a) == Signature(c) {
		t.Error("different types must not share a signature")
	}
}
