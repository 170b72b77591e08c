package tagindex

import (
	"reflect"
	"testing"

	"github.com/mwidmer/mdp/internal/doctree"
	"github.com/mwidmer/mdp/internal/lexer"
)

const diary = `# 2022-11-02

@school @sports
went to @school again

# 2022-11-03

## later

@roger
`

func TestNew_CountsAndOccurrences(t *testing.T) {
	ix := New(doctree.Build(lexer.Lex(diary)))

	e, ok := ix.Entry("school")
	if !ok {
		t.Fatal("expected an entry for school")
	}
	if e.Count != 2 {
		t.Errorf("expected count 2, got %d", e.Count)
	}
	if len(e.Occurrences) != e.Count {
		t.Errorf("occurrences (%d) must equal count (%d)", len(e.Occurrences), e.Count)
	}
	for _, occ := range e.Occurrences {
		if occ.Section != 0 {
			t.Errorf("expected school occurrences in section 0, got %d", occ.Section)
		}
		if occ.Node == nil || occ.Node.Token.Name != "school" {
			t.Errorf("occurrence node mismatch: %+v", occ.Node)
		}
	}

	if e, _ := ix.Entry("roger"); e == nil || e.Count != 1 {
		t.Errorf("expected roger count 1, got %+v", e)
	}
	if _, ok := ix.Entry("missing"); ok {
		t.Error("expected no entry for missing tag")
	}
}

func TestNames_SortedAscending(t *testing.T) {
	ix := New(doctree.Build(lexer.Lex(diary)))

	want := []string{"roger", "school", "sports"}
	if got := ix.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestByCount_CountThenName(t *testing.T) {
	ix := New(doctree.Build(lexer.Lex(diary)))

	want := []string{"roger", "sports", "school"}
	if got := ix.ByCount(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSections_DedupedInDocumentOrder(t *testing.T) {
	text := "# 2022-11-02\n@x\n@x\n# 2022-11-03\n@x\n"
	ix := New(doctree.Build(lexer.Lex(text)))

	if got := ix.Sections("x"); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("expected [0 1], got %v", got)
	}
	if got := ix.Sections("missing"); got != nil {
		t.Errorf("expected nil for missing tag, got %v", got)
	}
}

func TestSections_SkipsOrphanOccurrences(t *testing.T) {
	ix := New(doctree.Build(lexer.Lex("@orphan\n# 2022-11-02\n@orphan\n")))

	if got := ix.Sections("orphan"); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("expected [0], got %v", got)
	}
	if e, _ := ix.Entry("orphan"); e == nil || e.Count != 2 {
		t.Errorf("orphan occurrences still count: %+v", e)
	}
}

func TestCaseSensitivity(t *testing.T) {
	ix := New(doctree.Build(lexer.Lex("# 2022-11-02\n@School @school\n")))

	if ix.Len() != 2 {
		t.Errorf("expected School and school as distinct tags, got %v", ix.Names())
	}
}
