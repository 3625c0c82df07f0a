package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abatilo/todovoice/internal/config"
	"github.com/abatilo/todovoice/internal/output"
	"github.com/abatilo/todovoice/internal/store"
	"github.com/abatilo/todovoice/internal/task"
)

//nolint:gochecknoglobals // CLI flags, config, and formatter are package-level by design
var (
	configPath string
	jsonOutput bool
	cfg        *config.Config
	formatter  output.Formatter
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "todovoice",
		Short: "A voice-first to-do list assistant",
		Long: "todovoice - The task-tracking core of a voice assistant.\n" +
			"Manage tasks directly from the command line, or run 'todovoice serve'\n" +
			"to expose the operations to a conversational runtime.",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "Config file location")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		addCmd(),
		listCmd(),
		doneCmd(),
		rmCmd(),
		priorityCmd(),
		summaryCmd(),
		nextCmd(),
		clearCmd(),
		serveCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	return filepath.Join(config.Default().DataDir, "config.yaml")
}

func getStore() *store.Store {
	// Best effort: if the directory cannot be created, Open falls back to
	// an empty in-memory store and the save path logs its own warnings.
	_ = os.MkdirAll(cfg.DataDir, 0o755) //nolint:gosec // G301: user-owned data directory
	return store.Open(cfg.TasksPath())
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

// parseID converts a task id argument. Ids that are not numbers get the
// same spoken-style nudge the store gives for unknown ids.
func parseID(arg string) (int, bool) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		printOutput(formatter.FormatResponse(
			fmt.Sprintf("Task IDs are numbers, not '%s'. Try 'todovoice list' to see them.", arg)))
		return 0, false
	}
	return id, true
}

// addCmd implements 'todovoice add'.
func addCmd() *cobra.Command {
	var priority string
	var dueDate string
	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			st := getStore()
			printOutput(formatter.FormatResponse(st.Add(args[0], task.Priority(priority), dueDate)))
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (low, medium, high, urgent)")
	cmd.Flags().StringVarP(&dueDate, "due", "d", "", "Due date (free-form, e.g. 'today' or 'Oct 20')")
	return cmd
}

// listCmd implements 'todovoice list'.
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [all|pending|completed|today|high-priority]",
		Short: "List tasks",
		Args:  cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			st := getStore()
			if jsonOutput {
				printOutput(formatter.FormatTasks(st.Snapshot()))
				return
			}
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			printOutput(formatter.FormatResponse(st.List(filter)))
		},
	}
}

// doneCmd implements 'todovoice done'.
func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			id, ok := parseID(args[0])
			if !ok {
				return
			}
			st := getStore()
			printOutput(formatter.FormatResponse(st.Complete(id)))
		},
	}
}

// rmCmd implements 'todovoice rm'.
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			id, ok := parseID(args[0])
			if !ok {
				return
			}
			st := getStore()
			printOutput(formatter.FormatResponse(st.Delete(id)))
		},
	}
}

// priorityCmd implements 'todovoice priority'.
func priorityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "priority <id> <level>",
		Short: "Update a task's priority",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			id, ok := parseID(args[0])
			if !ok {
				return
			}
			st := getStore()
			printOutput(formatter.FormatResponse(st.UpdatePriority(id, task.Priority(args[1]))))
		},
	}
}

// summaryCmd implements 'todovoice summary'.
func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show today's progress",
		Run: func(_ *cobra.Command, _ []string) {
			st := getStore()
			printOutput(formatter.FormatResponse(st.DailySummary()))
		},
	}
}

// nextCmd implements 'todovoice next'.
func nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Suggest the next task to work on",
		Run: func(_ *cobra.Command, _ []string) {
			st := getStore()
			printOutput(formatter.FormatResponse(st.SuggestNext()))
		},
	}
}

// clearCmd implements 'todovoice clear'.
func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed tasks",
		Run: func(_ *cobra.Command, _ []string) {
			st := getStore()
			printOutput(formatter.FormatResponse(st.ClearCompleted()))
		},
	}
}
