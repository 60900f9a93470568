package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/jacksmith/todo/internal/storage"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for todo.

To load completions:

Bash:
  $ source <(todo completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ todo completion bash > /etc/bash_completion.d/todo
  # macOS:
  $ todo completion bash > $(brew --prefix)/etc/bash_completion.d/todo

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ todo completion zsh > "${fpath[1]}/_todo"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ todo completion fish | source
  # To load completions for each session, execute once:
  $ todo completion fish > ~/.config/fish/completions/todo.fish
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Long:  "Generate the autocompletion script for bash.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Long:  "Generate the autocompletion script for zsh.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Long:  "Generate the autocompletion script for fish.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeTaskIDs completes short task IDs, described by name.
// It reads the store directly so completion never starts a writer or logs.
func completeTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	tasks, err := readTasks(commandContext(cmd))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	toCompleteLower := strings.ToLower(toComplete)
	for _, t := range tasks {
		short := model.ShortID(t.ID)
		if strings.HasPrefix(strings.ToLower(short), toCompleteLower) {
			completions = append(completions, short+"\t"+string(t.Importance)+": "+cli.Truncate(t.Name, 40))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeImportance completes the three importance levels.
func completeImportance(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, imp := range model.Importances() {
		if strings.HasPrefix(string(imp), strings.ToLower(toComplete)) {
			completions = append(completions, string(imp))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func completeLogLevels(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
}

func completeBackends(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{
		storage.BackendFile,
		storage.BackendMemory,
		storage.BackendMySQL,
		storage.BackendPostgres,
	}, cobra.ShellCompDirectiveNoFileComp
}

// readTasks loads the list without a writer or logger.
func readTasks(ctx context.Context) (model.TaskList, error) {
	s, err := storage.Open(".")
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(s)
	if err != nil {
		return nil, err
	}
	store, err := storage.OpenStore(ctx, s, cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	m := ops.NewManager(store)
	if err := m.Load(ctx); err != nil {
		return nil, err
	}
	return m.Tasks(), nil
}
