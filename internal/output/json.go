package output

import (
	"encoding/json"

	"github.com/abatilo/todovoice/internal/task"
)

// JSONFormatter formats output as JSON for scripting.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// FormatResponse wraps a spoken response in a JSON object.
func (f *JSONFormatter) FormatResponse(msg string) string {
	return marshalJSON(map[string]string{"response": msg})
}

// taskJSON is the JSON representation of a task.
type taskJSON struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	DueDate     *string `json:"due_date"`
	CompletedAt *string `json:"completed_at"`
}

// FormatTasks formats tasks as a JSON array.
func (f *JSONFormatter) FormatTasks(tasks []task.Task) string {
	out := make([]taskJSON, len(tasks))
	for i, t := range tasks {
		tj := taskJSON{
			ID:          t.ID,
			Description: t.Description,
			Priority:    string(t.Priority),
			Status:      string(t.Status),
			CreatedAt:   t.CreatedAt.Format(task.TimeFormat),
		}
		if t.DueDate != "" {
			due := t.DueDate
			tj.DueDate = &due
		}
		if t.CompletedAt != nil {
			completed := t.CompletedAt.Format(task.TimeFormat)
			tj.CompletedAt = &completed
		}
		out[i] = tj
	}
	return marshalJSON(out)
}
