package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/ops"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the stored task list",
	Long: `Print the task list exactly as it is stored, without loading it.

Useful for inspecting a list that fails to load. Use --pretty to indent
the JSON; invalid JSON is printed as is.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

var dumpPretty bool

func init() {
	dumpCmd.Flags().BoolVar(&dumpPretty, "pretty", false, "indent the JSON")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	sess, err := openSession(commandContext(cmd), sessionOptions{})
	if err != nil {
		return err
	}
	defer sess.Close()

	raw, ok, err := sess.store.Get(commandContext(cmd), ops.TasksKey)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No task list stored.")
		return nil
	}

	if dumpPretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(raw), "", "  "); err == nil {
			raw = buf.String()
		}
	}
	fmt.Println(raw)
	return nil
}
