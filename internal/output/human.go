package output

import (
	"fmt"
	"strings"

	"github.com/abatilo/todovoice/internal/task"
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatResponse passes a spoken response through with a trailing newline.
func (f *HumanFormatter) FormatResponse(msg string) string {
	return msg + "\n"
}

// FormatTasks formats tasks as compact one-liners.
func (f *HumanFormatter) FormatTasks(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&sb, "%s %s %s", task.Icon(t.Status), task.Mark(t.Priority), t.Description)
		if t.DueDate != "" {
			fmt.Fprintf(&sb, " (due %s)", t.DueDate)
		}
		fmt.Fprintf(&sb, " [ID: %d]\n", t.ID)
	}
	return sb.String()
}
