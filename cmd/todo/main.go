// Package main is the entry point for the todo CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "todo - a to-do list sorted by importance",
	Long: `todo keeps a single list of tasks, each with a name, an optional
description and an importance (high, medium or low). The list is always
sorted by importance and saved after every change.

Run "todo ui" for the interactive screen.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	flagLogLevel string
	flagBackend  string
)

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("todo version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: file, memory, mysql or postgres (overrides config)")
	rootCmd.RegisterFlagCompletionFunc("log-level", completeLogLevels)
	rootCmd.RegisterFlagCompletionFunc("backend", completeBackends)
}
