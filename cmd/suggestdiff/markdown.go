package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dacharyc/suggestdiff"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// BlocksFromMarkdown converts a markdown document into an ordered block
// sequence by walking the goldmark AST's top-level nodes. List items are
// flattened into individual blocks, the way block editors store them.
//
// Block ids are positional within the given namespace (idPrefix "b"
// yields b1, b2, ...). Two files parsed with different prefixes never
// share an id, so matching them runs on content alone, the situation an
// editor reload with full id churn produces; the same prefix across
// parses mimics an editor whose ids stay stable while content is edited
// in place. An empty prefix strips ids entirely.
func BlocksFromMarkdown(source []byte, idPrefix string) ([]suggestdiff.Block, error) {
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	var blocks []suggestdiff.Block
	appendBlock := func(typ string, content []suggestdiff.Inline, plain string) {
		var id string
		if idPrefix != "" {
			id = fmt.Sprintf("%s%d", idPrefix, len(blocks)+1)
		}
		blocks = append(blocks, suggestdiff.Block{ID: id, Type: typ, Content: content, Text: plain})
	}

	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			appendBlock(fmt.Sprintf("heading%d", n.Level), inlinesOf(n, source), "")
		case *ast.Paragraph:
			appendBlock("paragraph", inlinesOf(n, source), "")
		case *ast.List:
			typ := "bulleted_list_item"
			if n.IsOrdered() {
				typ = "numbered_list_item"
			}
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				appendBlock(typ, nil, itemText(item, source))
			}
		case *ast.FencedCodeBlock:
			appendBlock("code", nil, codeText(n, source))
		case *ast.CodeBlock:
			appendBlock("code", nil, codeText(n, source))
		case *ast.Blockquote:
			appendBlock("quote", nil, itemText(n, source))
		case *ast.ThematicBreak:
			appendBlock("divider", nil, "")
		default:
			// Unknown top-level shapes degrade to empty text rather
			// than failing.
			appendBlock("unsupported", nil, "")
		}
	}
	return blocks, nil
}

// inlinesOf converts a block node's inline children into the closed
// inline-content shapes the engine extracts text from.
func inlinesOf(node ast.Node, source []byte) []suggestdiff.Inline {
	inlines := []suggestdiff.Inline{}
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Text:
			value := string(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				value += "\n"
			}
			inlines = append(inlines, suggestdiff.Inline{Kind: suggestdiff.InlineText, Text: value})
		case *ast.Emphasis, *ast.CodeSpan, *ast.Link:
			inlines = append(inlines, suggestdiff.Inline{Kind: suggestdiff.InlineStyled, Text: string(c.Text(source))})
		case *ast.Image:
			inlines = append(inlines, suggestdiff.Inline{Kind: suggestdiff.InlineUnknown})
		default:
			inlines = append(inlines, suggestdiff.Inline{Kind: suggestdiff.InlineStyled, Text: string(c.Text(source))})
		}
	}
	return inlines
}

// itemText extracts the plain text beneath a container node (list item,
// blockquote), joining nested paragraphs with newlines.
func itemText(node ast.Node, source []byte) string {
	var parts []string
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		parts = append(parts, string(c.Text(source)))
	}
	return strings.Join(parts, "\n")
}

// codeText extracts the raw lines of a code block.
func codeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// LayoutBlocks assigns each block a span in the document's plain text,
// blocks separated by a blank line. Each line of a block's text becomes
// its own run, so multi-line blocks exercise the same fragmented-run
// placement a formatted editor document would.
func LayoutBlocks(blocks []suggestdiff.Block) []suggestdiff.LiveBlock {
	live := make([]suggestdiff.LiveBlock, 0, len(blocks))
	offset := 0
	for i, b := range blocks {
		if i > 0 {
			offset += 2 // "\n\n" separator
		}
		text := suggestdiff.ExtractText(b)
		lb := suggestdiff.LiveBlock{ID: b.ID, Start: offset}
		for _, lineText := range splitAfterNewlines(text) {
			lb.Runs = append(lb.Runs, suggestdiff.TextRun{
				Text: lineText,
				From: offset,
				To:   offset + len(lineText),
			})
			offset += len(lineText)
		}
		lb.End = offset
		live = append(live, lb)
	}
	return live
}

// splitAfterNewlines splits text into pieces that each keep their
// trailing newline, so the pieces concatenate back to the input.
func splitAfterNewlines(text string) []string {
	if text == "" {
		return nil
	}
	var pieces []string
	for {
		idx := strings.IndexByte(text, '\n')
		if idx == -1 {
			pieces = append(pieces, text)
			return pieces
		}
		pieces = append(pieces, text[:idx+1])
		text = text[idx+1:]
		if text == "" {
			return pieces
		}
	}
}

// PlainText renders the blocks the same way LayoutBlocks lays them out.
func PlainText(blocks []suggestdiff.Block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = suggestdiff.ExtractText(b)
	}
	return strings.Join(parts, "\n\n")
}
