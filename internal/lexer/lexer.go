// Package lexer splits raw diary text into a flat token sequence.
//
// Lexing is total: malformed constructs degrade to plain text and no input
// ever produces an error.
package lexer

import (
	"regexp"
	"strings"
	"time"

	"github.com/mwidmer/mdp/internal/token"
)

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	emailRe   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)
)

// taskKeywords in match order. No keyword is a prefix of another, so the
// order only mirrors the marker grammar.
var taskKeywords = []struct {
	kw     string
	status token.TaskStatus
}{
	{"TODO", token.StatusTodo},
	{"DOING", token.StatusDoing},
	{"REVIEW", token.StatusReview},
	{"DONE", token.StatusDone},
}

// Lex turns raw text into tokens, line by line. Block-level tokens (headings,
// horizontal rules, task markers) consume the whole line; everything else is
// scanned for inline tokens.
func Lex(text string) []token.Token {
	var toks []token.Token
	for i, line := range strings.Split(text, "\n") {
		toks = append(toks, lexLine(line, i+1)...)
	}
	return toks
}

func lexLine(line string, n int) []token.Token {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if trimmed == "---" {
		return []token.Token{{Kind: token.HorizontalRule, Line: n}}
	}
	if m := headingRe.FindStringSubmatch(line); m != nil {
		return []token.Token{{
			Kind:  token.Heading,
			Line:  n,
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		}}
	}
	if tok, ok := lexTask(trimmed, n); ok {
		return []token.Token{tok}
	}
	return lexInline(trimmed, n)
}

// lexTask matches a task marker anchored at the start of the line:
// one of the keywords, optionally UNTIL <date> after TODO, then a colon.
// A keyword without the colon (or with an unparsable date) is not a task
// marker and falls through to inline lexing.
func lexTask(line string, n int) (token.Token, bool) {
	for _, k := range taskKeywords {
		if !strings.HasPrefix(line, k.kw) {
			continue
		}
		rest := line[len(k.kw):]
		status := k.status
		var due time.Time

		if k.status == token.StatusTodo && strings.HasPrefix(rest, " UNTIL ") {
			dateRest := strings.TrimPrefix(rest, " UNTIL ")
			if len(dateRest) < len(token.DateLayout) {
				return token.Token{}, false
			}
			d, err := time.Parse(token.DateLayout, dateRest[:len(token.DateLayout)])
			if err != nil {
				return token.Token{}, false
			}
			status = token.StatusTodoUntil
			due = d
			rest = dateRest[len(token.DateLayout):]
		}

		if !strings.HasPrefix(rest, ":") {
			return token.Token{}, false
		}
		return token.Token{
			Kind:   token.TaskMarker,
			Line:   n,
			Status: status,
			Due:    due,
			Text:   strings.TrimSpace(rest[1:]),
		}, true
	}
	return token.Token{}, false
}

// lexInline scans a line left to right for tags and email-like runs; the
// stretches in between become plain text. Email classification is attempted
// before tag classification at each '@' so that the domain part of an
// address is never mistaken for a tag.
func lexInline(line string, n int) []token.Token {
	var toks []token.Token
	start := 0 // beginning of the current plain-text run

	flush := func(end int) {
		if s := strings.TrimSpace(line[start:end]); s != "" {
			toks = append(toks, token.Token{Kind: token.PlainText, Line: n, Text: s})
		}
	}

	for i := 0; i < len(line); i++ {
		if line[i] != '@' {
			continue
		}

		// Email first: expand to the whitespace-delimited run around the '@',
		// minus any trailing sentence punctuation.
		l, r := runBounds(line, i)
		for r > i+1 && isFinishChar(line[r-1]) {
			r--
		}
		if candidate := line[l:r]; l < i && emailRe.MatchString(candidate) {
			flush(l)
			toks = append(toks, token.Token{Kind: token.EmailLike, Line: n, Text: candidate})
			start = r
			i = r - 1
			continue
		}

		// Tag: '@' immediately followed by identifier characters.
		end := i + 1
		for end < len(line) && isIdentChar(line[end]) {
			end++
		}
		if end > i+1 {
			flush(i)
			toks = append(toks, token.Token{Kind: token.Tag, Line: n, Name: line[i+1 : end]})
			start = end
			i = end - 1
		}
	}
	flush(len(line))
	return toks
}

// runBounds returns the bounds of the contiguous non-whitespace run
// containing position i.
func runBounds(line string, i int) (int, int) {
	l := i
	for l > 0 && !isSpace(line[l-1]) {
		l--
	}
	r := i + 1
	for r < len(line) && !isSpace(line[r]) {
		r++
	}
	return l, r
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isFinishChar(c byte) bool {
	switch c {
	case ',', '.', ':', ';', '!', '?', ')', ']':
		return true
	}
	return false
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}
