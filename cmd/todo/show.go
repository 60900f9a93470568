package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task details",
	Long: `Show every field of a task.

The ID can be a unique prefix. IDs are case-insensitive.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeTaskIDs,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	sess, err := openSession(commandContext(cmd), sessionOptions{})
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := sess.manager.Resolve(args[0])
	if err != nil {
		return err
	}
	task, _ := sess.manager.Get(id)

	fmt.Println(cli.Bold(task.Name))
	fmt.Printf("ID:          %s\n", task.ID)
	fmt.Printf("Importance:  %s\n", cli.ImportanceLabel(task.Importance))

	if task.Description == nil {
		fmt.Printf("Description: -\n")
		return nil
	}
	fmt.Println()
	fmt.Println("Description:")
	for _, line := range strings.Split(*task.Description, "\n") {
		fmt.Printf("  %s\n", line)
	}
	return nil
}
