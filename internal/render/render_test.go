package render

import (
	"strings"
	"testing"

	"github.com/mwidmer/mdp/internal/doctree"
	"github.com/mwidmer/mdp/internal/lexer"
	"github.com/mwidmer/mdp/internal/tagindex"
)

func section(t *testing.T, text string) *doctree.Node {
	t.Helper()
	sections := doctree.Build(lexer.Lex(text)).Sections()
	if len(sections) == 0 {
		t.Fatal("no sections in fixture")
	}
	return sections[0]
}

func TestSection_RoundTrip(t *testing.T) {
	src := `# 2022-11-02

went to @school today

## Morning

TODO: Clean Room`

	got := Section(section(t, src))
	want := "# 2022-11-02\n\nwent to @school today\n\n## Morning\n\nTODO: Clean Room"
	if got != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, got)
	}
}

func TestSection_HeadingOnly(t *testing.T) {
	got := Section(section(t, "# 2022-11-02\n"))
	if got != "# 2022-11-02" {
		t.Errorf("expected bare heading, got %q", got)
	}
}

func TestSections_SeparatedByRules(t *testing.T) {
	tree := doctree.Build(lexer.Lex("# 2022-11-01\na\n# 2022-11-02\nb\n"))
	got := Sections(tree.Sections())

	want := "# 2022-11-01\n\na\n\n---\n\n# 2022-11-02\n\nb"
	if got != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, got)
	}
}

func TestTreeView(t *testing.T) {
	tree := doctree.Build(lexer.Lex("# 2022-11-02\n@school\n## sub\nnotes\n"))

	out := TreeView(tree, false)
	for _, want := range []string{"# 2022-11-02", "@school", "## sub", "notes"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in tree view:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "─") {
		t.Errorf("expected branch glyphs in tree view:\n%s", out)
	}
}

func TestTreeView_Debug(t *testing.T) {
	tree := doctree.Build(lexer.Lex("# 2022-11-02\n@school\n"))

	out := TreeView(tree, true)
	if !strings.Contains(out, "<Tag: 'school'>") {
		t.Errorf("expected debug tag label, got:\n%s", out)
	}
	if strings.Contains(out, "@school") {
		t.Errorf("debug view must not use markdown labels:\n%s", out)
	}
}

func TestTagTable(t *testing.T) {
	ix := tagindex.New(doctree.Build(lexer.Lex("# 2022-11-02\n@b @a @b\n")))

	out := TagTable(ix, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "Tag") || !strings.Contains(lines[0], "Count") {
		t.Errorf("unexpected header %q", lines[0])
	}
	// Alphabetic: a before b.
	if !strings.HasPrefix(lines[1], "a") || !strings.HasPrefix(lines[2], "b") {
		t.Errorf("unexpected row order: %v", lines[1:])
	}

	byCount := strings.Split(strings.TrimRight(TagTable(ix, true), "\n"), "\n")
	if !strings.HasPrefix(byCount[1], "a") || !strings.HasPrefix(byCount[2], "b") {
		t.Errorf("expected count ascending, got %v", byCount[1:])
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML("# 2022-11-02\n\nsome text\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<h1>2022-11-02</h1>") {
		t.Errorf("expected an h1, got %q", out)
	}
	if !strings.Contains(out, "<p>some text</p>") {
		t.Errorf("expected a paragraph, got %q", out)
	}
}
