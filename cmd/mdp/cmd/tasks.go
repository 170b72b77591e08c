package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwidmer/mdp/internal/tasks"
)

var (
	tasksShow  string
	tasksOrder string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks [file]",
	Short: "List task markers (TODO, TODO UNTIL <date>, DOING, REVIEW, DONE)",
	Long: `Collects every task marker in the diary, in document order.

Examples:
  mdp tasks diary.md
  mdp tasks diary.md --show all
  mdp tasks diary.md --order urgency`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTasks,
}

func init() {
	rootCmd.AddCommand(tasksCmd)

	tasksCmd.Flags().StringVar(&tasksShow, "show", "", "which tasks to show: all|finished|unfinished (default unfinished)")
	tasksCmd.Flags().StringVar(&tasksOrder, "order", "occurrence", "ordering: occurrence|urgency")
}

func runTasks(cmd *cobra.Command, args []string) error {
	path, err := resolveInput(args)
	if err != nil {
		return err
	}
	tree, err := loadTree(path)
	if err != nil {
		return err
	}

	show := tasksShow
	if show == "" {
		if show = defaults().TaskFilter; show == "" {
			show = "unfinished"
		}
	}

	list := tasks.Extract(tree)
	switch show {
	case "all":
	case "finished":
		list = tasks.Filter(list, tasks.FilterFinished)
	case "unfinished":
		list = tasks.Filter(list, tasks.FilterUnfinished)
	default:
		return fmt.Errorf("unknown --show value %q (want all, finished or unfinished)", show)
	}

	if tasksOrder == "urgency" {
		list = tasks.SortByUrgency(list, time.Now())
	}

	for _, t := range list {
		fmt.Println(t.String())
	}
	return nil
}
