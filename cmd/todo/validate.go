package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/ops"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the stored task list",
	Long: `Check the stored task list for problems.

Checks for:
- Data that does not decode (the list would load as empty)
- Tasks with missing, duplicate or non-UUID IDs
- Tasks with no name
- Stored order that is not sorted by importance

Only undecodable data is fatal; it makes validate exit non-zero.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

// errCorruptList is returned when the stored list cannot be loaded.
var errCorruptList = errors.New("stored task list is corrupt and would load as empty")

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	sess, err := openSession(commandContext(cmd), sessionOptions{})
	if err != nil {
		return err
	}
	defer sess.Close()

	report, err := ops.Validate(commandContext(cmd), sess.store)
	if err != nil {
		return err
	}

	if !report.Present {
		fmt.Println("No task list stored.")
		return nil
	}
	if len(report.Issues) == 0 {
		fmt.Printf("No issues found (%d tasks).\n", report.Tasks)
		return nil
	}

	fmt.Printf("Found %d issue(s):\n\n", len(report.Issues))
	for _, issue := range report.Issues {
		fmt.Printf("%s %s\n", formatIssueType(issue), issueText(issue))
	}

	if !report.OK() {
		return errCorruptList
	}
	return nil
}

func issueText(i ops.Issue) string {
	if i.TaskID != "" {
		return i.TaskID + ": " + i.Message
	}
	return i.Message
}

func formatIssueType(i ops.Issue) string {
	label := "[" + string(i.Type) + "]"
	if i.Fatal() {
		return cli.Bold(label)
	}
	return cli.Gray(label)
}
