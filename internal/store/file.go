package store

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/abatilo/todovoice/internal/task"
)

// fileState is the durable layout: the full ordered task list plus the
// next id to assign. The shape stays compatible with the tasks.json
// written by earlier versions of the assistant, so an existing file loads
// unchanged.
type fileState struct {
	Tasks  []taskJSON `json:"tasks"`
	NextID int        `json:"next_id"`
}

// taskJSON is the wire representation of a task. Timestamps are
// minute-precision text; due_date and completed_at are null when unset.
type taskJSON struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	DueDate     *string `json:"due_date"`
	CompletedAt *string `json:"completed_at"`
}

func toWire(t task.Task) taskJSON {
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
	return tj
}

func fromWire(tj taskJSON) (task.Task, error) {
	createdAt, err := time.Parse(task.TimeFormat, tj.CreatedAt)
	if err != nil {
		return task.Task{}, err
	}

	t := task.Task{
		ID:          tj.ID,
		Description: tj.Description,
		Priority:    task.Priority(tj.Priority),
		Status:      task.Status(tj.Status),
		CreatedAt:   createdAt,
	}
	if tj.DueDate != nil {
		t.DueDate = *tj.DueDate
	}
	if tj.CompletedAt != nil {
		completedAt, err := time.Parse(task.TimeFormat, *tj.CompletedAt)
		if err != nil {
			return task.Task{}, err
		}
		t.CompletedAt = &completedAt
	}
	return t, nil
}

// load reads the durable copy. A missing, unreadable, or malformed file
// leaves the store empty with the counter at 1; construction never fails
// over bad task data.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("could not load tasks from %s: %v", s.path, err)
		}
		return
	}

	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		log.Printf("could not load tasks from %s: %v", s.path, err)
		return
	}

	tasks := make([]task.Task, 0, len(st.Tasks))
	for _, tj := range st.Tasks {
		t, err := fromWire(tj)
		if err != nil {
			log.Printf("could not load tasks from %s: %v", s.path, err)
			return
		}
		tasks = append(tasks, t)
	}

	s.tasks = tasks
	if st.NextID > 0 {
		s.nextID = st.NextID
	}
	// Ids must never repeat, even if the file was edited by hand.
	for _, t := range s.tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
}

// save writes the durable copy via a temp file and rename, so an
// interrupted write never clobbers the previous state. Failures are
// logged and swallowed: for a personal task list, losing the last
// mutation on a disk error beats an unresponsive assistant.
func (s *Store) save() {
	st := fileState{Tasks: make([]taskJSON, len(s.tasks)), NextID: s.nextID}
	for i, t := range s.tasks {
		st.Tasks[i] = toWire(t)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		log.Printf("could not save tasks to %s: %v", s.path, err)
		return
	}

	tmp := s.path + ".tmp"
	//nolint:gosec // G306: 0644 is appropriate for user-readable task files
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Printf("could not save tasks to %s: %v", s.path, err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		log.Printf("could not save tasks to %s: %v", s.path, err)
	}
}
