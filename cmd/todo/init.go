package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new todo directory",
	Long: `Create a .todo/ directory in the current directory.

The task list is stored in .todo/data/ by default. Create a .todoconfig.yaml
next to .todo/ to choose another backend or change the default importance.

Fails if .todo/ already exists in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := storage.Init("."); err != nil {
		return err
	}
	fmt.Println("Initialized todo in .todo/")
	return nil
}
