package scraper

import (
	"strings"

	"github.com/pfrederiksen/ufcstats/internal/document"
)

// extractText returns the text of node, or def when node is nil.
func extractText(node document.Node, def string) string {
	if node == nil {
		return def
	}
	return node.Text()
}

// extractNth returns the text of nodes[i], or def when i is out of range.
func extractNth(nodes []document.Node, i int, def string) string {
	if i < 0 || i >= len(nodes) {
		return def
	}
	return extractText(nodes[i], def)
}

// extractPair returns the text of the first two text elements in cell.
// Missing values, or a nil cell, yield def.
func extractPair(cell document.Node, def string) (string, string) {
	if cell == nil {
		return def, def
	}
	texts := cell.FindAll(textSelector)
	return extractNth(texts, 0, def), extractNth(texts, 1, def)
}

// firstLine returns the first line of s, trimmed.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

// collapseSpaces joins the whitespace-separated fields of s with single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
