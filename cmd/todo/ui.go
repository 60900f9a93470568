package main

import (
	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/tui"
)

// uiLogFile receives log output while the screen is up.
const uiLogFile = "ui.log"

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive task screen",
	Long: `Open a full-screen task list.

Keys:
  ↑/↓ or j/k   move
  + or a       add a task
  d or x       delete the selected task
  q            quit

In the form, tab moves between fields, ←/→ pick the importance and enter
adds the task. esc closes the form without adding.

Log output goes to .todo/ui.log while the screen is open.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	sess, err := openSession(ctx, sessionOptions{logFile: uiLogFile})
	if err != nil {
		return err
	}
	defer sess.Close()

	return tui.Run(ctx, sess.manager)
}
