package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"remove"},
	Short:   "Remove tasks",
	Long: `Remove one or more tasks by ID.

An ID can be shortened to any unique prefix, as printed by "todo list".
IDs are case-insensitive. Removing a task that does not exist is not an
error; an ambiguous prefix is.`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runRm,
	ValidArgsFunction: completeTaskIDs,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	sess, err := openSession(commandContext(cmd), sessionOptions{})
	if err != nil {
		return err
	}
	defer sess.Close()

	for _, ref := range args {
		id, err := sess.manager.Resolve(ref)
		if err != nil {
			var nf *ops.NotFoundError
			if errors.As(err, &nf) {
				fmt.Printf("No task %s; nothing removed.\n", ref)
				continue
			}
			return err
		}

		task, _ := sess.manager.Get(id)
		if sess.manager.Remove(id) {
			fmt.Printf("Removed %s %s\n", model.ShortID(task.ID), task.Name)
		}
	}
	return nil
}
