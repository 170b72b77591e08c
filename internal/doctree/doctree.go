// Package doctree assembles lexed tokens into the diary's token tree.
//
// Nesting follows markdown heading levels: a heading of level L closes all
// open headings of level >= L and attaches to the nearest still-open heading
// of a smaller level (or the synthetic root). Non-heading tokens attach as
// leaves of the innermost open heading. Horizontal rules are visual
// separators only and produce no node.
package doctree

import (
	"time"

	"github.com/mwidmer/mdp/internal/token"
)

// Node wraps one token plus its ordered children (insertion order is
// document order). The parent reference is non-owning and exists only for
// enclosing-section lookups; it is nil for top-level nodes.
type Node struct {
	Token    token.Token
	Children []*Node

	parent *Node
}

// Parent returns the enclosing node, or nil for top-level nodes.
func (n *Node) Parent() *Node { return n.parent }

// Date reports the calendar date denoted by a heading node, detected as a
// YYYY-MM-DD prefix of the heading text. Headings that fail the date pattern
// are still valid headings; they simply have no date.
func (n *Node) Date() (time.Time, bool) {
	if n.Token.Kind != token.Heading || len(n.Token.Text) < len(token.DateLayout) {
		return time.Time{}, false
	}
	d, err := time.Parse(token.DateLayout, n.Token.Text[:len(token.DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Section climbs to the top-level level-1 heading enclosing n (possibly n
// itself), or nil if there is none.
func (n *Node) Section() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	if cur.Token.Kind == token.Heading && cur.Token.Level == 1 {
		return cur
	}
	return nil
}

// Tree is the document tree built from one lexed diary. It is immutable
// after Build returns.
type Tree struct {
	root *Node
}

// Build assembles tokens into a tree. It is deterministic and has no failure
// modes: heading level jumps are accepted and nest deeper than a strict
// outline would.
func Build(tokens []token.Token) *Tree {
	root := &Node{}
	var stack []*Node // open headings, outermost first

	for _, tok := range tokens {
		switch tok.Kind {
		case token.HorizontalRule:
			// Separator only.
		case token.Heading:
			for len(stack) > 0 && stack[len(stack)-1].Token.Level >= tok.Level {
				stack = stack[:len(stack)-1]
			}
			n := &Node{Token: tok}
			attach(root, stack, n)
			stack = append(stack, n)
		default:
			attach(root, stack, &Node{Token: tok})
		}
	}
	return &Tree{root: root}
}

func attach(root *Node, stack []*Node, n *Node) {
	if len(stack) == 0 {
		root.Children = append(root.Children, n)
		return
	}
	parent := stack[len(stack)-1]
	n.parent = parent
	parent.Children = append(parent.Children, n)
}

// Roots returns the top-level nodes in document order.
func (t *Tree) Roots() []*Node {
	return t.root.Children
}

// Sections returns the top-level date-section candidates: every level-1
// heading directly under the root, in document order.
func (t *Tree) Sections() []*Node {
	var sections []*Node
	for _, n := range t.root.Children {
		if n.Token.Kind == token.Heading && n.Token.Level == 1 {
			sections = append(sections, n)
		}
	}
	return sections
}

// Walk visits every node depth-first in document order.
func (t *Tree) Walk(fn func(n *Node)) {
	for _, n := range t.root.Children {
		walk(n, fn)
	}
}

func walk(n *Node, fn func(n *Node)) {
	fn(n)
	for _, c := range n.Children {
		walk(c, fn)
	}
}

// WalkSections visits every node depth-first together with the index of its
// enclosing top-level section in Sections(), or -1 for nodes outside any
// level-1 section.
func (t *Tree) WalkSections(fn func(section int, n *Node)) {
	next := 0
	for _, n := range t.root.Children {
		section := -1
		if n.Token.Kind == token.Heading && n.Token.Level == 1 {
			section = next
			next++
		}
		walkSection(n, section, fn)
	}
}

func walkSection(n *Node, section int, fn func(section int, n *Node)) {
	fn(section, n)
	for _, c := range n.Children {
		walkSection(c, section, fn)
	}
}
