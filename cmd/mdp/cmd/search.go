package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwidmer/mdp/internal/doctree"
	"github.com/mwidmer/mdp/internal/render"
	"github.com/mwidmer/mdp/internal/search"
	"github.com/mwidmer/mdp/internal/tagindex"
	"github.com/mwidmer/mdp/internal/token"
)

var (
	searchMode   string
	searchOrder  string
	searchFrom   string
	searchUntil  string
	searchOutput string
)

var searchCmd = &cobra.Command{
	Use:   "search [file] <terms>",
	Short: "Find date sections by tag",
	Long: `Searches the diary's date sections for tags. Terms are
comma-separated and combined with the --mode operator; matching
sections are reprinted as markdown, separated by horizontal rules.

Examples:
  mdp search diary.md school
  mdp search diary.md school,sports --mode and
  mdp search diary.md school --from 2022-01-01 --until 2022-12-31`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchMode, "mode", "", "term combination: or|and (default or)")
	searchCmd.Flags().StringVar(&searchOrder, "order", "date", "result ordering: date|relevance")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "only sections on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchUntil, "until", "", "only sections on or before this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "also write matches to a file")
}

func runSearch(cmd *cobra.Command, args []string) error {
	var path, termArg string
	if len(args) == 2 {
		path, termArg = args[0], args[1]
	} else {
		termArg = args[0]
		var err error
		if path, err = resolveInput(nil); err != nil {
			return err
		}
	}

	var terms []string
	for _, t := range strings.Split(termArg, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}

	opts := search.Options{Terms: terms}

	mode := searchMode
	if mode == "" {
		mode = defaults().SearchMode
	}
	switch mode {
	case "", "or":
	case "and":
		opts.Mode = search.ModeAnd
	default:
		return fmt.Errorf("unknown --mode value %q (want or|and)", mode)
	}

	switch searchOrder {
	case "date":
	case "relevance":
		opts.Order = search.OrderRelevance
	default:
		return fmt.Errorf("unknown --order value %q (want date|relevance)", searchOrder)
	}

	var err error
	if opts.From, err = parseDateFlag("from", searchFrom); err != nil {
		return err
	}
	if opts.Until, err = parseDateFlag("until", searchUntil); err != nil {
		return err
	}

	tree, err := loadTree(path)
	if err != nil {
		return err
	}
	results, err := search.Run(tagindex.New(tree), opts)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No matching sections.")
		return nil
	}

	nodes := make([]*doctree.Node, 0, len(results))
	for _, r := range results {
		nodes = append(nodes, r.Node)
	}
	out := render.Sections(nodes)
	fmt.Println(out)
	return writeOutput(searchOutput, out)
}

func parseDateFlag(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(token.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q (want YYYY-MM-DD)", name, v)
	}
	return d, nil
}
