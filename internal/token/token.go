// Package token defines the classified units a diary document is lexed into.
package token

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the date form recognized in section headings and task due
// dates (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

// Kind classifies a token.
type Kind int

const (
	PlainText Kind = iota
	Heading
	HorizontalRule
	Tag
	EmailLike
	TaskMarker
)

func (k Kind) String() string {
	switch k {
	case PlainText:
		return "text"
	case Heading:
		return "heading"
	case HorizontalRule:
		return "hrule"
	case Tag:
		return "tag"
	case EmailLike:
		return "email"
	case TaskMarker:
		return "task"
	}
	return "unknown"
}

// TaskStatus is the state of a task marker.
type TaskStatus int

const (
	StatusTodo TaskStatus = iota
	StatusTodoUntil
	StatusDoing
	StatusReview
	StatusDone
)

func (s TaskStatus) String() string {
	switch s {
	case StatusTodo:
		return "TODO"
	case StatusTodoUntil:
		return "TODO UNTIL"
	case StatusDoing:
		return "DOING"
	case StatusReview:
		return "REVIEW"
	case StatusDone:
		return "DONE"
	}
	return "UNKNOWN"
}

// Token is one classified unit of diary content. Tokens are immutable once
// produced by the lexer; which fields are meaningful depends on Kind.
type Token struct {
	Kind Kind
	Line int // 1-based source line

	Level int    // Heading: 1..6
	Text  string // Heading title, plain text, email address, task description
	Name  string // Tag: name without the leading '@'

	Status TaskStatus // TaskMarker only
	Due    time.Time  // TaskMarker with StatusTodoUntil, zero otherwise
}

// StatusLabel returns the task keyword as it appears in diary text,
// including the due date for TODO UNTIL markers.
func (t Token) StatusLabel() string {
	if t.Status == StatusTodoUntil {
		return "TODO UNTIL " + t.Due.Format(DateLayout)
	}
	return t.Status.String()
}

// Markdown serializes the token back to its diary text form.
func (t Token) Markdown() string {
	switch t.Kind {
	case Heading:
		return strings.Repeat("#", t.Level) + " " + t.Text
	case HorizontalRule:
		return "---"
	case Tag:
		return "@" + t.Name
	case EmailLike:
		return t.Text
	case TaskMarker:
		return t.StatusLabel() + ": " + t.Text
	default:
		return t.Text
	}
}

// Debug returns an explicit representation used by the tree view's debug
// mode, e.g. <Tag: 'school'>.
func (t Token) Debug() string {
	switch t.Kind {
	case Heading:
		return fmt.Sprintf("<HeadingH%d: '%s'>", t.Level, t.Text)
	case HorizontalRule:
		return "<HRule>"
	case Tag:
		return fmt.Sprintf("<Tag: '%s'>", t.Name)
	case EmailLike:
		return fmt.Sprintf("<Email: '%s'>", t.Text)
	case TaskMarker:
		return fmt.Sprintf("<Task(%s): '%s'>", t.StatusLabel(), t.Text)
	default:
		return fmt.Sprintf("<Text: '%s'>", t.Text)
	}
}
