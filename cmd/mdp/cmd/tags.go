package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwidmer/mdp/internal/render"
	"github.com/mwidmer/mdp/internal/tagindex"
)

var (
	tagsOrder  string
	tagsOutput string
)

var tagsCmd = &cobra.Command{
	Use:   "tags [file]",
	Short: "List all tags with their occurrence counts",
	Long: `Lists every @tag in the diary as a Tag/Count table.

Examples:
  mdp tags diary.md
  mdp tags diary.md --order count
  mdp tags diary.md -o tags.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().StringVar(&tagsOrder, "order", "alphabetic", "row ordering: alphabetic|count")
	tagsCmd.Flags().StringVarP(&tagsOutput, "output", "o", "", "also write the table to a file")
}

func runTags(cmd *cobra.Command, args []string) error {
	path, err := resolveInput(args)
	if err != nil {
		return err
	}
	tree, err := loadTree(path)
	if err != nil {
		return err
	}

	ix := tagindex.New(tree)
	if ix.Len() == 0 {
		fmt.Println("No tags found.")
		return nil
	}

	table := render.TagTable(ix, tagsOrder == "count")
	fmt.Print(table)
	return writeOutput(tagsOutput, table)
}
