// Package query evaluates boolean tag expressions against a tag index.
package query

import (
	"errors"
	"sort"

	"github.com/mwidmer/mdp/internal/tagindex"
)

// ErrInvalidQuery is returned when the term and operator counts of a query
// are inconsistent: a query needs at least one term and exactly one operator
// between each pair of adjacent terms.
var ErrInvalidQuery = errors.New("invalid query: need n terms and n-1 operators")

// Op is a boolean connective between two search terms.
type Op int

const (
	OpAnd Op = iota
	OpOr
)

// Expr is a boolean expression over tag-name predicates.
type Expr interface {
	eval(ix *tagindex.Index) map[int]bool
}

// Term matches every section where the tag occurs at least once. Matching is
// exact and case-sensitive.
type Term struct {
	Tag string
}

// And matches the intersection of its operands' sections.
type And struct {
	Left, Right Expr
}

// Or matches the union of its operands' sections.
type Or struct {
	Left, Right Expr
}

func (t Term) eval(ix *tagindex.Index) map[int]bool {
	set := make(map[int]bool)
	for _, s := range ix.Sections(t.Tag) {
		set[s] = true
	}
	return set
}

func (a And) eval(ix *tagindex.Index) map[int]bool {
	left, right := a.Left.eval(ix), a.Right.eval(ix)
	set := make(map[int]bool)
	for s := range left {
		if right[s] {
			set[s] = true
		}
	}
	return set
}

func (o Or) eval(ix *tagindex.Index) map[int]bool {
	set := o.Left.eval(ix)
	for s := range o.Right.eval(ix) {
		set[s] = true
	}
	return set
}

// Parse builds an expression from a flat term list interleaved with
// operators, exactly as the CLI supplies them. Grouping is strictly left to
// right; there is no precedence climbing, so "a OR b AND c" parses as
// "(a OR b) AND c".
func Parse(terms []string, ops []Op) (Expr, error) {
	if len(terms) == 0 || len(ops) != len(terms)-1 {
		return nil, ErrInvalidQuery
	}
	var e Expr = Term{Tag: terms[0]}
	for i, op := range ops {
		right := Term{Tag: terms[i+1]}
		if op == OpAnd {
			e = And{Left: e, Right: right}
		} else {
			e = Or{Left: e, Right: right}
		}
	}
	return e, nil
}

// Evaluate returns the indexes of the sections matching the expression,
// deduplicated and in document order. An empty result is not an error.
func Evaluate(e Expr, ix *tagindex.Index) []int {
	set := e.eval(ix)
	out := make([]int, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}
