package agent

import (
	"fmt"

	"github.com/abatilo/todovoice/internal/store"
	"github.com/abatilo/todovoice/internal/task"
)

// Tool describes one callable operation: its name, a natural-language
// description the runtime's language layer matches utterances against,
// and a JSON schema for its typed arguments.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Definitions returns the task operations exposed to the runtime.
func Definitions() []Tool {
	return []Tool{
		{
			Name:        "add_task",
			Description: "Add a new task to the to-do list.",
			InputSchema: schema(map[string]any{
				"task_description": prop("string", "What needs to be done"),
				"priority":         prop("string", "Task priority (low, medium, high, urgent)"),
				"due_date":         prop("string", "Optional due date (e.g., 'today', 'tomorrow', 'Oct 20')"),
			}, "task_description"),
		},
		{
			Name:        "list_tasks",
			Description: "List all tasks or filter by status.",
			InputSchema: schema(map[string]any{
				"filter_by": prop("string", "Filter tasks (all, pending, completed, today, high-priority)"),
			}),
		},
		{
			Name:        "complete_task",
			Description: "Mark a task as completed.",
			InputSchema: schema(map[string]any{
				"task_id": prop("integer", "The ID of the task to complete"),
			}, "task_id"),
		},
		{
			Name:        "delete_task",
			Description: "Delete a task from the list.",
			InputSchema: schema(map[string]any{
				"task_id": prop("integer", "The ID of the task to delete"),
			}, "task_id"),
		},
		{
			Name:        "update_task_priority",
			Description: "Update the priority of a task.",
			InputSchema: schema(map[string]any{
				"task_id":      prop("integer", "The ID of the task"),
				"new_priority": prop("string", "New priority level (low, medium, high, urgent)"),
			}, "task_id", "new_priority"),
		},
		{
			Name:        "get_daily_summary",
			Description: "Get a summary of today's tasks and progress.",
			InputSchema: schema(nil),
		},
		{
			Name:        "suggest_next_task",
			Description: "Suggest the next task to work on based on priority and due dates.",
			InputSchema: schema(nil),
		},
		{
			Name:        "clear_completed_tasks",
			Description: "Remove all completed tasks from the list.",
			InputSchema: schema(nil),
		},
	}
}

func schema(properties map[string]any, required ...string) map[string]any {
	s := map[string]any{"type": "object"}
	if properties != nil {
		s["properties"] = properties
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

// Handler dispatches tool calls to the store. Store responses are spoken
// text and never errors; the only error here is an unknown tool name,
// which is a protocol bug rather than a user contingency.
type Handler struct {
	store *store.Store
}

// NewHandler creates a Handler backed by st.
func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

// Call invokes the named tool with the runtime-extracted arguments.
func (h *Handler) Call(name string, args map[string]any) (string, error) {
	switch name {
	case "add_task":
		description, _ := args["task_description"].(string)
		priority, _ := args["priority"].(string)
		dueDate, _ := args["due_date"].(string)
		return h.store.Add(description, task.Priority(priority), dueDate), nil
	case "list_tasks":
		filter, _ := args["filter_by"].(string)
		return h.store.List(filter), nil
	case "complete_task":
		id, ok := intArg(args, "task_id")
		if !ok {
			return missingID(), nil
		}
		return h.store.Complete(id), nil
	case "delete_task":
		id, ok := intArg(args, "task_id")
		if !ok {
			return missingID(), nil
		}
		return h.store.Delete(id), nil
	case "update_task_priority":
		id, ok := intArg(args, "task_id")
		if !ok {
			return missingID(), nil
		}
		priority, _ := args["new_priority"].(string)
		return h.store.UpdatePriority(id, task.Priority(priority)), nil
	case "get_daily_summary":
		return h.store.DailySummary(), nil
	case "suggest_next_task":
		return h.store.SuggestNext(), nil
	case "clear_completed_tasks":
		return h.store.ClearCompleted(), nil
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// intArg extracts an integer argument. JSON numbers arrive as float64.
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func missingID() string {
	return "I couldn't tell which task you meant. Try listing your tasks to see the IDs."
}
