package search

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mwidmer/mdp/internal/doctree"
	"github.com/mwidmer/mdp/internal/lexer"
	"github.com/mwidmer/mdp/internal/query"
	"github.com/mwidmer/mdp/internal/tagindex"
)

const diary = `# 2022-11-03
@work @gym
# 2022-11-01
@work
# 2022-11-05
@gym
# scratchpad
@work
`

func index(t *testing.T) *tagindex.Index {
	t.Helper()
	return tagindex.New(doctree.Build(lexer.Lex(diary)))
}

func headings(results []Result) []string {
	var out []string
	for _, r := range results {
		out = append(out, r.Node.Token.Text)
	}
	return out
}

func TestRun_OrMode(t *testing.T) {
	results, err := Run(index(t), Options{Terms: []string{"work", "gym"}})
	if err != nil {
		t.Fatal(err)
	}
	// Date order, undated section last.
	want := []string{"2022-11-01", "2022-11-03", "2022-11-05", "scratchpad"}
	if got := headings(results); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRun_AndMode(t *testing.T) {
	results, err := Run(index(t), Options{Terms: []string{"work", "gym"}, Mode: ModeAnd})
	if err != nil {
		t.Fatal(err)
	}
	if got := headings(results); !reflect.DeepEqual(got, []string{"2022-11-03"}) {
		t.Errorf("expected only the section with both tags, got %v", got)
	}
}

func TestRun_MatchedTerms(t *testing.T) {
	results, err := Run(index(t), Options{Terms: []string{"work", "gym"}})
	if err != nil {
		t.Fatal(err)
	}
	byHeading := map[string][]string{}
	for _, r := range results {
		byHeading[r.Node.Token.Text] = r.Matched
	}
	if !reflect.DeepEqual(byHeading["2022-11-03"], []string{"work", "gym"}) {
		t.Errorf("unexpected matches for 2022-11-03: %v", byHeading["2022-11-03"])
	}
	if !reflect.DeepEqual(byHeading["2022-11-01"], []string{"work"}) {
		t.Errorf("unexpected matches for 2022-11-01: %v", byHeading["2022-11-01"])
	}
}

func TestRun_RelevanceOrder(t *testing.T) {
	results, err := Run(index(t), Options{
		Terms: []string{"work", "gym"},
		Order: OrderRelevance,
	})
	if err != nil {
		t.Fatal(err)
	}
	got := headings(results)
	if got[0] != "2022-11-03" {
		t.Errorf("expected the two-term section first, got %v", got)
	}
	// Ties fall back to date order.
	want := []string{"2022-11-03", "2022-11-01", "2022-11-05", "scratchpad"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRun_DateRange(t *testing.T) {
	from := time.Date(2022, 11, 2, 0, 0, 0, 0, time.UTC)
	until := time.Date(2022, 11, 4, 0, 0, 0, 0, time.UTC)

	results, err := Run(index(t), Options{
		Terms: []string{"work", "gym"},
		From:  from,
		Until: until,
	})
	if err != nil {
		t.Fatal(err)
	}
	// Bounds are inclusive; undated sections drop out once a bound is set.
	if got := headings(results); !reflect.DeepEqual(got, []string{"2022-11-03"}) {
		t.Errorf("expected [2022-11-03], got %v", got)
	}
}

func TestRun_FromOnly(t *testing.T) {
	results, err := Run(index(t), Options{
		Terms: []string{"work", "gym"},
		From:  time.Date(2022, 11, 3, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2022-11-03", "2022-11-05"}
	if got := headings(results); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRun_NoTerms(t *testing.T) {
	_, err := Run(index(t), Options{})
	if !errors.Is(err, query.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestRun_NoMatches(t *testing.T) {
	results, err := Run(index(t), Options{Terms: []string{"nothing"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}
