package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new task",
	Long: `Add a new task to the list.

If --importance is not specified, uses default_importance from
.todoconfig.yaml (low unless configured). Importance accepts high, medium,
low or the shorthands h, m, l.

Examples:
  todo add "Buy milk"
  todo add "Pay rent" -i high
  todo add "Call the plumber" -d "Kitchen sink leaks" --importance=medium
  todo add "Write report" --edit`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addImportance  string
	addEdit        bool
)

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVarP(&addImportance, "importance", "i", "", "importance: high, medium or low")
	addCmd.Flags().BoolVar(&addEdit, "edit", false, "write the description in $EDITOR")

	addCmd.RegisterFlagCompletionFunc("importance", completeImportance)

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	var importance model.Importance
	if addImportance != "" {
		imp, err := model.ParseImportance(addImportance)
		if err != nil {
			return err
		}
		importance = imp
	}

	text := addDescription
	if addEdit {
		edited, err := cli.EditDescription(addDescription)
		if err != nil {
			return err
		}
		text = edited
	}
	var description *string
	if text != "" {
		description = &text
	}

	sess, err := openSession(commandContext(cmd), sessionOptions{})
	if err != nil {
		return err
	}
	defer sess.Close()

	task, err := sess.manager.Add(name, description, importance)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", model.ShortID(task.ID), task.Name)
	return nil
}
