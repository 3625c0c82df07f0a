//nolint:testpackage // Tests require internal access for thorough testing
package output

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/abatilo/todovoice/internal/task"
)

func sampleTasks() []task.Task {
	created := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	completed := created.Add(2 * time.Hour)
	return []task.Task{
		{
			ID:          1,
			Description: "buy milk",
			Priority:    task.PriorityHigh,
			Status:      task.StatusCompleted,
			CreatedAt:   created,
			DueDate:     "today",
			CompletedAt: &completed,
		},
		{
			ID:          2,
			Description: "write report",
			Priority:    task.PriorityMedium,
			Status:      task.StatusPending,
			CreatedAt:   created,
		},
	}
}

func TestHumanFormatResponse(t *testing.T) {
	f := NewHumanFormatter()
	if got := f.FormatResponse("All done!"); got != "All done!\n" {
		t.Errorf("FormatResponse = %q", got)
	}
}

func TestHumanFormatTasks(t *testing.T) {
	f := NewHumanFormatter()

	got := f.FormatTasks(sampleTasks())
	if !strings.Contains(got, "✅ 🟠 buy milk (due today) [ID: 1]") {
		t.Errorf("missing completed line: %q", got)
	}
	if !strings.Contains(got, "⬜ 🟡 write report [ID: 2]") {
		t.Errorf("missing pending line: %q", got)
	}

	if got := f.FormatTasks(nil); got != "No tasks found.\n" {
		t.Errorf("empty list = %q", got)
	}
}

func TestJSONFormatResponse(t *testing.T) {
	f := NewJSONFormatter()

	var parsed map[string]string
	if err := json.Unmarshal([]byte(f.FormatResponse("hi")), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed["response"] != "hi" {
		t.Errorf("response = %q", parsed["response"])
	}
}

func TestJSONFormatTasks(t *testing.T) {
	f := NewJSONFormatter()

	var parsed []map[string]any
	if err := json.Unmarshal([]byte(f.FormatTasks(sampleTasks())), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("got %d tasks, want 2", len(parsed))
	}

	first := parsed[0]
	if first["id"] != float64(1) || first["created_at"] != "2026-08-28 09:30" {
		t.Errorf("first task = %v", first)
	}
	if first["completed_at"] != "2026-08-28 11:30" {
		t.Errorf("completed_at = %v", first["completed_at"])
	}

	second := parsed[1]
	if v, present := second["due_date"]; !present || v != nil {
		t.Errorf("unset due_date = %v, want null", v)
	}
}
