// Package tagindex maps tag names to the places they occur in a token tree.
package tagindex

import (
	"sort"

	"github.com/mwidmer/mdp/internal/doctree"
	"github.com/mwidmer/mdp/internal/token"
)

// Occurrence is one appearance of a tag: the index of its enclosing
// top-level date section (into Tree.Sections, -1 outside any section) and
// the tag node itself.
type Occurrence struct {
	Section int
	Node    *doctree.Node
}

// Entry aggregates all occurrences of one tag name.
type Entry struct {
	Count       int
	Occurrences []Occurrence // document order
}

// Index is a read-only view over one tree, built with a single depth-first
// traversal.
type Index struct {
	entries  map[string]*Entry
	sections []*doctree.Node
}

// New indexes every tag token in the tree. Tag names are case-sensitive and
// stored without the leading '@'; each occurrence counts independently.
func New(tree *doctree.Tree) *Index {
	ix := &Index{
		entries:  make(map[string]*Entry),
		sections: tree.Sections(),
	}
	tree.WalkSections(func(section int, n *doctree.Node) {
		if n.Token.Kind != token.Tag {
			return
		}
		e := ix.entries[n.Token.Name]
		if e == nil {
			e = &Entry{}
			ix.entries[n.Token.Name] = e
		}
		e.Count++
		e.Occurrences = append(e.Occurrences, Occurrence{Section: section, Node: n})
	})
	return ix
}

// Entry returns the aggregate for a tag name, or false if the tag never
// occurs.
func (ix *Index) Entry(name string) (*Entry, bool) {
	e, ok := ix.entries[name]
	return e, ok
}

// Len returns the number of distinct tag names.
func (ix *Index) Len() int { return len(ix.entries) }

// Names returns all tag names sorted ascending.
func (ix *Index) Names() []string {
	names := make([]string, 0, len(ix.entries))
	for name := range ix.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByCount returns all tag names ordered by occurrence count ascending, names
// ascending within equal counts.
func (ix *Index) ByCount() []string {
	names := ix.Names()
	sort.SliceStable(names, func(i, j int) bool {
		ci, cj := ix.entries[names[i]].Count, ix.entries[names[j]].Count
		if ci != cj {
			return ci < cj
		}
		return names[i] < names[j]
	})
	return names
}

// Sections returns the deduplicated indexes of the date sections mentioning
// the tag, in document order. Occurrences outside any section are skipped.
func (ix *Index) Sections(name string) []int {
	e, ok := ix.entries[name]
	if !ok {
		return nil
	}
	seen := make(map[int]bool)
	var out []int
	for _, occ := range e.Occurrences {
		if occ.Section < 0 || seen[occ.Section] {
			continue
		}
		seen[occ.Section] = true
		out = append(out, occ.Section)
	}
	return out
}

// SectionNodes resolves section indexes back to their heading nodes.
func (ix *Index) SectionNodes() []*doctree.Node { return ix.sections }
