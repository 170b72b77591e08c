// Package render turns trees, indexes and tasks into presentable text.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/yuin/goldmark"

	"github.com/mwidmer/mdp/internal/doctree"
	"github.com/mwidmer/mdp/internal/tagindex"
	"github.com/mwidmer/mdp/internal/token"
)

// Section serializes a section node and its subtree back to markdown-ish
// diary text. Inline tokens that came from the same source line are rejoined
// with spaces.
func Section(n *doctree.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return strings.TrimRight(b.String(), "\n")
}

func writeNode(b *strings.Builder, n *doctree.Node) {
	b.WriteString(n.Token.Markdown())
	b.WriteString("\n")

	lastLine := 0
	for _, c := range n.Children {
		if c.Token.Kind == token.Heading {
			if lastLine != 0 {
				b.WriteString("\n") // terminate the open content line
			}
			b.WriteString("\n")
			writeNode(b, c)
			lastLine = 0
			continue
		}
		if lastLine != 0 && c.Token.Line == lastLine {
			// Same source line: continue it.
			b.WriteString(" " + c.Token.Markdown())
			continue
		}
		b.WriteString("\n")
		b.WriteString(c.Token.Markdown())
		lastLine = c.Token.Line
	}
	if lastLine != 0 {
		b.WriteString("\n")
	}
}

// Sections renders a list of section subtrees separated by horizontal
// rules, the way search results are printed.
func Sections(nodes []*doctree.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, Section(n))
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// TreeView renders the whole token tree with branch glyphs. With debug set,
// node labels use the explicit token representation instead of the
// markdown form.
func TreeView(t *doctree.Tree, debug bool) string {
	root := tree.Root("")
	for _, n := range t.Roots() {
		root.Child(branch(n, debug))
	}
	return root.String()
}

func branch(n *doctree.Node, debug bool) any {
	label := n.Token.Markdown()
	if debug {
		label = n.Token.Debug()
	}
	if len(n.Children) == 0 {
		return label
	}
	br := tree.Root(label)
	for _, c := range n.Children {
		br.Child(branch(c, debug))
	}
	return br
}

// TagTable renders the Tag/Count table. With byCount set, rows are ordered
// by occurrence count instead of alphabetically.
func TagTable(ix *tagindex.Index, byCount bool) string {
	names := ix.Names()
	if byCount {
		names = ix.ByCount()
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Tag\tCount")
	for _, name := range names {
		e, _ := ix.Entry(name)
		fmt.Fprintf(w, "%s\t%d\n", name, e.Count)
	}
	w.Flush()
	return buf.String()
}

// HTML converts diary markdown to HTML, used by the serve mode's section
// endpoint.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
