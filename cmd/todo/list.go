package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List all tasks, most important first.

Tasks with the same importance are shown in the order they were added.
Descriptions are cut to their first line; use "todo show" for the full text.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	sess, err := openSession(commandContext(cmd), sessionOptions{})
	if err != nil {
		return err
	}
	defer sess.Close()

	tasks := sess.manager.Tasks()
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	table := cli.NewTable()
	table.SetMaxWidth(2, cli.DefaultMaxNameWidth)
	table.SetMaxWidth(3, cli.DefaultMaxDescriptionWidth)
	for _, t := range tasks {
		table.AddRow(
			model.ShortID(t.ID),
			cli.ImportanceLabel(t.Importance),
			t.Name,
			cli.Gray(cli.FirstLine(t.DescriptionText())),
		)
	}
	table.Render(os.Stdout)
	return nil
}
