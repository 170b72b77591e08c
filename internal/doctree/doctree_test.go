package doctree

import (
	"testing"

	"github.com/mwidmer/mdp/internal/lexer"
	"github.com/mwidmer/mdp/internal/token"
)

func buildFrom(t *testing.T, text string) *Tree {
	t.Helper()
	return Build(lexer.Lex(text))
}

func TestBuild_HeadingHierarchy(t *testing.T) {
	tree := buildFrom(t, `# 2022-11-02

Intro text.

## Morning

@school notes

### Details

more

## Evening

@sports
`)

	roots := tree.Roots()
	if len(roots) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(roots))
	}
	h1 := roots[0]
	if h1.Token.Level != 1 || h1.Token.Text != "2022-11-02" {
		t.Fatalf("unexpected root heading: %+v", h1.Token)
	}

	// Intro leaf plus two h2 children.
	if len(h1.Children) != 3 {
		t.Fatalf("expected 3 children under h1, got %d", len(h1.Children))
	}
	if h1.Children[0].Token.Kind != token.PlainText {
		t.Errorf("expected intro leaf first, got %+v", h1.Children[0].Token)
	}

	morning := h1.Children[1]
	if morning.Token.Level != 2 || morning.Token.Text != "Morning" {
		t.Fatalf("unexpected second child: %+v", morning.Token)
	}
	// Tag leaf, text leaf, then the h3.
	if len(morning.Children) != 3 {
		t.Fatalf("expected 3 children under Morning, got %d", len(morning.Children))
	}
	details := morning.Children[2]
	if details.Token.Level != 3 || details.Token.Text != "Details" {
		t.Errorf("unexpected h3: %+v", details.Token)
	}

	evening := h1.Children[2]
	if evening.Token.Level != 2 || evening.Token.Text != "Evening" {
		t.Errorf("unexpected third child: %+v", evening.Token)
	}
}

func TestBuild_TopLevelSectionsInOrder(t *testing.T) {
	tree := buildFrom(t, "# 2022-11-02\n\nx\n\n# 2022-11-03\n\ny\n\n# not a date\n")

	sections := tree.Sections()
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	want := []string{"2022-11-02", "2022-11-03", "not a date"}
	for i, sec := range sections {
		if sec.Token.Text != want[i] {
			t.Errorf("section %d: expected %q, got %q", i, want[i], sec.Token.Text)
		}
	}

	if _, ok := sections[0].Date(); !ok {
		t.Errorf("expected a date on section 0")
	}
	if _, ok := sections[2].Date(); ok {
		t.Errorf("expected no date on the non-date section")
	}
}

func TestBuild_NestingInvariant(t *testing.T) {
	tree := buildFrom(t, "# a\n## b\n### c\n## d\n# e\n")

	tree.Walk(func(n *Node) {
		for p := n.Parent(); p != nil; p = p.Parent() {
			if p.Token.Level >= n.Token.Level {
				t.Errorf("ancestor %q (level %d) not smaller than %q (level %d)",
					p.Token.Text, p.Token.Level, n.Token.Text, n.Token.Level)
			}
		}
	})
}

func TestBuild_LevelJumpAccepted(t *testing.T) {
	tree := buildFrom(t, "# top\n### jumped\ncontent\n")

	roots := tree.Roots()
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if len(roots[0].Children) != 1 {
		t.Fatalf("expected the h3 nested under h1, got %d children", len(roots[0].Children))
	}
	jumped := roots[0].Children[0]
	if jumped.Token.Level != 3 {
		t.Errorf("expected level 3, got %d", jumped.Token.Level)
	}
	if len(jumped.Children) != 1 || jumped.Children[0].Token.Kind != token.PlainText {
		t.Errorf("expected content leaf under the jumped heading")
	}
}

func TestBuild_ContentBeforeAnyHeading(t *testing.T) {
	tree := buildFrom(t, "orphan text\n\n# 2022-11-02\n")

	roots := tree.Roots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(roots))
	}
	if roots[0].Token.Kind != token.PlainText {
		t.Errorf("expected orphan leaf first, got %+v", roots[0].Token)
	}
	if len(tree.Sections()) != 1 {
		t.Errorf("expected 1 section")
	}
}

func TestBuild_HorizontalRuleDropped(t *testing.T) {
	tree := buildFrom(t, "# 2022-11-02\n\nbefore\n\n---\n\nafter\n")

	var kinds []token.Kind
	tree.Walk(func(n *Node) { kinds = append(kinds, n.Token.Kind) })
	for _, k := range kinds {
		if k == token.HorizontalRule {
			t.Fatalf("horizontal rule must not produce a node")
		}
	}
	if len(tree.Roots()[0].Children) != 2 {
		t.Errorf("expected 2 leaves, got %d", len(tree.Roots()[0].Children))
	}
}

func TestWalkSections(t *testing.T) {
	tree := buildFrom(t, "outside\n# 2022-11-02\n@a\n# 2022-11-03\n## sub\n@b\n")

	got := map[string]int{}
	tree.WalkSections(func(section int, n *Node) {
		if n.Token.Kind == token.Tag {
			got[n.Token.Name] = section
		}
		if n.Token.Kind == token.PlainText {
			got[n.Token.Text] = section
		}
	})

	if got["outside"] != -1 {
		t.Errorf("expected orphan content in section -1, got %d", got["outside"])
	}
	if got["a"] != 0 {
		t.Errorf("expected tag a in section 0, got %d", got["a"])
	}
	if got["b"] != 1 {
		t.Errorf("expected tag b in section 1, got %d", got["b"])
	}
}

func TestSectionLookup(t *testing.T) {
	tree := buildFrom(t, "# 2022-11-02\n## sub\n@deep\n")

	var tag *Node
	tree.Walk(func(n *Node) {
		if n.Token.Kind == token.Tag {
			tag = n
		}
	})
	if tag == nil {
		t.Fatal("tag node not found")
	}
	sec := tag.Section()
	if sec == nil || sec.Token.Text != "2022-11-02" {
		t.Errorf("expected enclosing section 2022-11-02, got %+v", sec)
	}
}
