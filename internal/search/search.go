// Package search runs tag queries over a parsed diary and decorates the
// matches for presentation: matched terms, section dates, date-range
// filtering and result ordering.
package search

import (
	"sort"
	"time"

	"github.com/mwidmer/mdp/internal/doctree"
	"github.com/mwidmer/mdp/internal/query"
	"github.com/mwidmer/mdp/internal/tagindex"
)

// Mode says how multiple search terms combine.
type Mode int

const (
	ModeOr Mode = iota
	ModeAnd
)

// Order is the result ordering criterion.
type Order int

const (
	// OrderDate sorts by section date ascending; undated sections keep
	// their document position at the end.
	OrderDate Order = iota
	// OrderRelevance sorts by number of matched terms descending, date
	// ascending within equal relevance.
	OrderRelevance
)

// Options parameterizes one search run.
type Options struct {
	Terms []string
	Mode  Mode
	Order Order
	From  time.Time // zero means unbounded
	Until time.Time // zero means unbounded
}

// Result is one matching date section.
type Result struct {
	Section int // index into the tree's section list
	Node    *doctree.Node
	Date    time.Time
	HasDate bool
	Matched []string // the search terms this section contains
}

// Run evaluates the terms (combined left to right with the mode's operator)
// against the index and returns decorated, filtered, ordered results.
func Run(ix *tagindex.Index, opts Options) ([]Result, error) {
	op := query.OpOr
	if opts.Mode == ModeAnd {
		op = query.OpAnd
	}
	ops := make([]query.Op, 0)
	for i := 1; i < len(opts.Terms); i++ {
		ops = append(ops, op)
	}
	expr, err := query.Parse(opts.Terms, ops)
	if err != nil {
		return nil, err
	}

	sections := ix.SectionNodes()
	var results []Result
	for _, idx := range query.Evaluate(expr, ix) {
		node := sections[idx]
		date, hasDate := node.Date()
		if !inRange(date, hasDate, opts.From, opts.Until) {
			continue
		}
		results = append(results, Result{
			Section: idx,
			Node:    node,
			Date:    date,
			HasDate: hasDate,
			Matched: matchedTerms(ix, idx, opts.Terms),
		})
	}

	orderResults(results, opts.Order)
	return results, nil
}

func matchedTerms(ix *tagindex.Index, section int, terms []string) []string {
	var matched []string
	for _, t := range terms {
		for _, s := range ix.Sections(t) {
			if s == section {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched
}

// inRange applies the date-range filter. Sections without a detectable date
// pass only when no bound is set.
func inRange(date time.Time, hasDate bool, from, until time.Time) bool {
	if from.IsZero() && until.IsZero() {
		return true
	}
	if !hasDate {
		return false
	}
	if !from.IsZero() && date.Before(from) {
		return false
	}
	if !until.IsZero() && date.After(until) {
		return false
	}
	return true
}

// orderResults sorts in place; stability keeps document order among
// otherwise equal results.
func orderResults(results []Result, order Order) {
	byDate := func(a, b Result) bool {
		if a.HasDate != b.HasDate {
			return a.HasDate
		}
		return a.Date.Before(b.Date)
	}
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if order == OrderRelevance && len(a.Matched) != len(b.Matched) {
			return len(a.Matched) > len(b.Matched)
		}
		return byDate(a, b)
	})
}
