// Package tasks extracts task markers from a token tree.
package tasks

import (
	"sort"
	"time"

	"github.com/mwidmer/mdp/internal/doctree"
	"github.com/mwidmer/mdp/internal/token"
)

// Task is the payload of one task-marker node.
type Task struct {
	Status token.TaskStatus
	Due    time.Time // zero unless Status is StatusTodoUntil
	Text   string
	Line   int
}

// StatusLabel returns the marker keyword including the due date for
// TODO UNTIL tasks.
func (t Task) StatusLabel() string {
	return token.Token{Kind: token.TaskMarker, Status: t.Status, Due: t.Due}.StatusLabel()
}

// String renders the task the way it appears in diary text.
func (t Task) String() string {
	return t.StatusLabel() + ": " + t.Text
}

// Finished reports whether the task needs no further action.
func (t Task) Finished() bool { return t.Status == token.StatusDone }

// Urgency scores the task for ordering: DONE 0, REVIEW 10, DOING 20,
// TODO 30, and dated TODOs 30 plus 10 per day until due, or 100 per day
// overdue.
func (t Task) Urgency(now time.Time) int {
	switch t.Status {
	case token.StatusDone:
		return 0
	case token.StatusReview:
		return 10
	case token.StatusDoing:
		return 20
	case token.StatusTodoUntil:
		days := int(t.Due.Sub(now.Truncate(24 * time.Hour)).Hours() / 24)
		if days > 0 {
			return 30 + days*10
		}
		return 30 - days*100
	default:
		return 30
	}
}

// Extract collects every task marker in the tree, depth-first in document
// order, flattened across all sections. It neither deduplicates nor filters;
// calling it twice yields identical sequences.
func Extract(tree *doctree.Tree) []Task {
	var out []Task
	tree.Walk(func(n *doctree.Node) {
		if n.Token.Kind != token.TaskMarker {
			return
		}
		out = append(out, Task{
			Status: n.Token.Status,
			Due:    n.Token.Due,
			Text:   n.Token.Text,
			Line:   n.Token.Line,
		})
	})
	return out
}

// FilterMode selects which tasks a view shows.
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterFinished
	FilterUnfinished
)

// Filter returns the tasks passing the mode, preserving order.
func Filter(in []Task, mode FilterMode) []Task {
	if mode == FilterAll {
		return in
	}
	var out []Task
	for _, t := range in {
		if t.Finished() == (mode == FilterFinished) {
			out = append(out, t)
		}
	}
	return out
}

// SortByUrgency stable-sorts tasks ascending by urgency score.
func SortByUrgency(in []Task, now time.Time) []Task {
	out := make([]Task, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Urgency(now) < out[j].Urgency(now)
	})
	return out
}
