package output

import "github.com/abatilo/todovoice/internal/task"

// Formatter defines the interface for CLI output formatting.
type Formatter interface {
	FormatResponse(msg string) string
	FormatTasks(tasks []task.Task) string
}
