//nolint:testpackage // Tests require internal access for thorough testing
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/abatilo/todovoice/internal/task"
)

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	s := Open(path)
	s.Add("buy milk", "high", "today")
	s.Add("write report", "", "")
	s.Add("call mom", "URGENT", "Oct 20")
	s.Complete(2)

	reloaded := Open(path)

	want := s.Snapshot()
	got := reloaded.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("reloaded %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.ID != w.ID || g.Description != w.Description || g.Priority != w.Priority ||
			g.Status != w.Status || g.DueDate != w.DueDate {
			t.Errorf("task %d: got %+v, want %+v", i, g, w)
		}
		if !g.CreatedAt.Equal(w.CreatedAt) {
			t.Errorf("task %d: created_at %v, want %v", i, g.CreatedAt, w.CreatedAt)
		}
		switch {
		case (g.CompletedAt == nil) != (w.CompletedAt == nil):
			t.Errorf("task %d: completed_at presence mismatch", i)
		case g.CompletedAt != nil && !g.CompletedAt.Equal(*w.CompletedAt):
			t.Errorf("task %d: completed_at %v, want %v", i, g.CompletedAt, w.CompletedAt)
		}
	}

	// The counter survives the round trip too.
	reloaded.Add("next", "", "")
	if got := reloaded.Snapshot(); got[len(got)-1].ID != 4 {
		t.Errorf("id after reload = %d, want 4", got[len(got)-1].ID)
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "tasks.json"))

	if len(s.Snapshot()) != 0 {
		t.Error("missing file should yield an empty store")
	}
	s.Add("first", "", "")
	if got := s.Snapshot()[0].ID; got != 1 {
		t.Errorf("first id = %d, want 1", got)
	}
}

func TestOpenCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "not json at all {{{"},
		{"truncated", `{"tasks": [{"id": 1, "desc`},
		{"bad timestamp", `{"tasks": [{"id": 1, "description": "x", "priority": "low", "status": "pending", "created_at": "whenever", "due_date": null, "completed_at": null}], "next_id": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			s := Open(path)
			if len(s.Snapshot()) != 0 {
				t.Error("corrupt file should yield an empty store")
			}

			s.Add("fresh", "", "")
			if got := s.Snapshot()[0].ID; got != 1 {
				t.Errorf("first id after corrupt load = %d, want 1", got)
			}
		})
	}
}

func TestSaveWritesCompatibleLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	s := Open(path)
	s.Add("buy milk", "high", "today")
	s.Complete(1)
	s.Add("undated", "", "")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var st struct {
		Tasks  []map[string]any `json:"tasks"`
		NextID int              `json:"next_id"`
	}
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}

	if st.NextID != 3 {
		t.Errorf("next_id = %d, want 3", st.NextID)
	}
	if len(st.Tasks) != 2 {
		t.Fatalf("saved %d tasks, want 2", len(st.Tasks))
	}

	first := st.Tasks[0]
	if first["id"] != float64(1) || first["description"] != "buy milk" ||
		first["priority"] != "high" || first["status"] != "completed" {
		t.Errorf("first task fields wrong: %v", first)
	}
	if first["due_date"] != "today" {
		t.Errorf("due_date = %v, want today", first["due_date"])
	}
	if _, ok := first["completed_at"].(string); !ok {
		t.Errorf("completed_at should be a timestamp string, got %v", first["completed_at"])
	}

	// Unset optionals are explicit nulls, matching the original layout.
	second := st.Tasks[1]
	if v, present := second["due_date"]; !present || v != nil {
		t.Errorf("unset due_date = %v, want null", v)
	}
	if v, present := second["completed_at"]; !present || v != nil {
		t.Errorf("unset completed_at = %v, want null", v)
	}
}

func TestLoadRespectsStoredCounter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := `{"tasks": [], "next_id": 7}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path)
	s.Add("first", "", "")
	if got := s.Snapshot()[0].ID; got != 7 {
		t.Errorf("id = %d, want 7", got)
	}
}

func TestLoadRepairsStaleCounter(t *testing.T) {
	// A hand-edited file whose counter lags its ids must not cause reuse.
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := `{"tasks": [{"id": 5, "description": "x", "priority": "low", "status": "pending", "created_at": "2026-08-28 09:00", "due_date": null, "completed_at": null}], "next_id": 2}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path)
	s.Add("new", "", "")
	got := s.Snapshot()
	if got[1].ID != 6 {
		t.Errorf("id = %d, want 6", got[1].ID)
	}
}

func TestLoadReadsOriginalFormat(t *testing.T) {
	// A tasks.json written by the Python assistant loads unchanged.
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := `{
  "tasks": [
    {
      "id": 1,
      "description": "buy milk",
      "priority": "high",
      "status": "completed",
      "created_at": "2025-10-01 09:30",
      "due_date": "today",
      "completed_at": "2025-10-01 11:45"
    },
    {
      "id": 2,
      "description": "write report",
      "priority": "medium",
      "status": "pending",
      "created_at": "2025-10-01 09:31",
      "due_date": null,
      "completed_at": null
    }
  ],
  "next_id": 3
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path)
	tasks := s.Snapshot()
	if len(tasks) != 2 {
		t.Fatalf("loaded %d tasks, want 2", len(tasks))
	}
	if tasks[0].Status != task.StatusCompleted || tasks[0].CompletedAt == nil {
		t.Errorf("first task not completed: %+v", tasks[0])
	}
	if tasks[0].DueDate != "today" {
		t.Errorf("due_date = %q, want today", tasks[0].DueDate)
	}
	if tasks[1].CompletedAt != nil || tasks[1].DueDate != "" {
		t.Errorf("second task optionals wrong: %+v", tasks[1])
	}
	if got := tasks[0].CreatedAt.Format(task.TimeFormat); got != "2025-10-01 09:30" {
		t.Errorf("created_at = %q", got)
	}
}
