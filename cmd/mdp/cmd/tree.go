package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwidmer/mdp/internal/render"
)

var treeDebug bool

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "Visualize the diary's token tree",
	Long: `Prints the token tree with branch glyphs, nesting following the
heading levels.

Examples:
  mdp tree diary.md
  mdp tree diary.md --debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().BoolVar(&treeDebug, "debug", false, "label nodes with their debug representation")
}

func runTree(cmd *cobra.Command, args []string) error {
	path, err := resolveInput(args)
	if err != nil {
		return err
	}
	tree, err := loadTree(path)
	if err != nil {
		return err
	}
	fmt.Println(render.TreeView(tree, treeDebug))
	return nil
}
