// Package store owns the task list and its durable copy. Every operation
// returns a spoken response rather than an error: a voice runtime has no
// useful rendering for a failure value, so not-found lookups, persistence
// trouble, and odd argument values all resolve to a sentence.
package store

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/abatilo/todovoice/internal/task"
)

// Store holds the ordered task list and the next id to assign. A single
// mutex serializes every operation, so two mutations can never interleave
// even if a deployment drives the store from more than one goroutine.
type Store struct {
	path   string
	mu     sync.Mutex
	tasks  []task.Task
	nextID int
}

// Open loads the store from path, starting empty if the file is missing
// or unreadable.
func Open(path string) *Store {
	s := &Store{path: path, nextID: 1}
	s.load()
	return s
}

// Add appends a new pending task and persists. The priority defaults to
// medium, is lowercased, and is never validated; whatever the runtime
// heard is what gets stored.
func (s *Store) Add(description string, priority task.Priority, dueDate string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(description) == "" {
		return "I didn't catch what the task is. What would you like to add?"
	}
	if priority == "" {
		priority = task.PriorityMedium
	}
	priority = task.Normalize(priority)

	t := task.Task{
		ID:          s.nextID,
		Description: description,
		Priority:    priority,
		Status:      task.StatusPending,
		CreatedAt:   time.Now().UTC().Truncate(time.Minute),
		DueDate:     dueDate,
	}
	s.tasks = append(s.tasks, t)
	s.nextID++
	s.save()

	resp := fmt.Sprintf("Got it! I've added '%s' to your list %s", description, task.Mark(priority))
	if dueDate != "" {
		resp += fmt.Sprintf(" (due %s)", dueDate)
	}
	return resp
}

// List returns an itemized listing of the tasks matching filter, in
// insertion order, with a footer counting the whole list.
func (s *Store) List(filter string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return "Your to-do list is empty! What would you like to accomplish today?"
	}

	if filter == "" {
		filter = string(task.FilterAll)
	}
	f := task.Filter(strings.ToLower(filter))
	today := time.Now().Format("2006-01-02")

	var matched []task.Task
	for _, t := range s.tasks {
		if f.Matches(t, today) {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return fmt.Sprintf("No %s tasks found.", filter)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here are your %s tasks:\n\n", filter)
	for _, t := range matched {
		fmt.Fprintf(&sb, "%s %s %s", task.Icon(t.Status), task.Mark(t.Priority), t.Description)
		if t.DueDate != "" {
			fmt.Fprintf(&sb, " (due %s)", t.DueDate)
		}
		fmt.Fprintf(&sb, " [ID: %d]\n", t.ID)
	}

	pending, completed := s.statusCounts()
	fmt.Fprintf(&sb, "\n📊 Total: %d tasks (%d pending, %d completed)", len(s.tasks), pending, completed)
	return sb.String()
}

// Complete marks a task completed and persists. Completing an already
// completed task changes nothing and says so.
func (s *Store) Complete(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		t := &s.tasks[i]
		if t.ID != id {
			continue
		}
		if t.Status == task.StatusCompleted {
			return fmt.Sprintf("Task '%s' is already completed! 🎉", t.Description)
		}

		now := time.Now().UTC().Truncate(time.Minute)
		t.Status = task.StatusCompleted
		t.CompletedAt = &now
		s.save()

		remaining, _ := s.statusCounts()
		resp := fmt.Sprintf("Awesome! ✅ You completed '%s'", t.Description)
		switch {
		case remaining == 0:
			resp += "\n\n🎉 Amazing! You've completed all your tasks! You're crushing it today!"
		case remaining == 1:
			resp += "\n\nJust 1 more task to go! You're almost done!"
		default:
			resp += fmt.Sprintf("\n\n%d tasks remaining. Keep up the great work!", remaining)
		}
		return resp
	}

	return fmt.Sprintf("I couldn't find a task with ID %d. Try listing your tasks to see the IDs.", id)
}

// Delete removes a task and persists. The order of the remaining tasks is
// untouched.
func (s *Store) Delete(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = slices.Delete(s.tasks, i, i+1)
			s.save()
			return fmt.Sprintf("Removed '%s' from your list.", t.Description)
		}
	}
	return fmt.Sprintf("I couldn't find a task with ID %d.", id)
}

// UpdatePriority overwrites a task's priority and persists. Like Add, the
// new value is lowercased but never checked against the known levels.
func (s *Store) UpdatePriority(id int, newPriority task.Priority) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := task.Normalize(newPriority)
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.ID != id {
			continue
		}
		old := t.Priority
		t.Priority = normalized
		s.save()
		return fmt.Sprintf("Updated '%s' from %s to %s priority %s",
			t.Description, old, newPriority, task.Mark(normalized))
	}
	return fmt.Sprintf("I couldn't find a task with ID %d.", id)
}

// DailySummary reports totals, the completion rate, and a tiered
// encouragement line selected by that rate.
func (s *Store) DailySummary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return "You don't have any tasks yet. What would you like to accomplish today?"
	}

	total := len(s.tasks)
	pending, completed := s.statusCounts()
	highPriority := 0
	for _, t := range s.tasks {
		if t.Status == task.StatusPending && task.IsHighPriority(t) {
			highPriority++
		}
	}
	rate := int(math.Round(float64(completed) / float64(total) * 100))

	var sb strings.Builder
	sb.WriteString("📊 Daily Summary\n\n")
	fmt.Fprintf(&sb, "Total tasks: %d\n", total)
	fmt.Fprintf(&sb, "✅ Completed: %d\n", completed)
	fmt.Fprintf(&sb, "⬜ Pending: %d\n", pending)
	fmt.Fprintf(&sb, "🔴 High priority: %d\n", highPriority)
	fmt.Fprintf(&sb, "Progress: %d%%\n\n", rate)

	switch {
	case rate == 100:
		sb.WriteString("🎉 Perfect! You've completed everything!")
	case rate >= 75:
		sb.WriteString("🌟 Great progress! You're almost there!")
	case rate >= 50:
		sb.WriteString("👍 Good work! Keep it up!")
	case rate >= 25:
		sb.WriteString("💪 You're making progress! Stay focused!")
	default:
		sb.WriteString("🚀 Let's get started! You've got this!")
	}
	return sb.String()
}

// SuggestNext picks the pending task that sorts first by priority rank,
// then by due-date text, ties broken by insertion order.
func (s *Store) SuggestNext() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []task.Task
	for _, t := range s.tasks {
		if t.Status == task.StatusPending {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return "You've completed all your tasks! 🎉 Want to add something new?"
	}

	sort.SliceStable(pending, func(i, j int) bool {
		ri, rj := task.Rank(pending[i].Priority), task.Rank(pending[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return task.DueSortKey(pending[i]) < task.DueSortKey(pending[j])
	})
	next := pending[0]

	resp := fmt.Sprintf("I suggest working on: %s '%s'", task.Mark(next.Priority), next.Description)
	if next.DueDate != "" {
		resp += fmt.Sprintf(" (due %s)", next.DueDate)
	}
	resp += fmt.Sprintf("\n\nThis is your %s priority task.", next.Priority)
	if len(pending) > 1 {
		resp += fmt.Sprintf(" You have %d other tasks waiting.", len(pending)-1)
	}
	return resp
}

// ClearCompleted removes every completed task and persists, preserving
// the order of the rest.
func (s *Store) ClearCompleted() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]task.Task, 0, len(s.tasks))
	count := 0
	for _, t := range s.tasks {
		if t.Status == task.StatusCompleted {
			count++
			continue
		}
		kept = append(kept, t)
	}
	if count == 0 {
		return "No completed tasks to clear."
	}

	s.tasks = kept
	s.save()

	plural := "s"
	if count == 1 {
		plural = ""
	}
	return fmt.Sprintf("Cleared %d completed task%s. Fresh start! 🧹", count, plural)
}

// Snapshot returns a copy of the current task list in insertion order.
func (s *Store) Snapshot() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// statusCounts tallies pending and completed tasks. Callers hold mu.
func (s *Store) statusCounts() (pending, completed int) {
	for _, t := range s.tasks {
		switch t.Status {
		case task.StatusPending:
			pending++
		case task.StatusCompleted:
			completed++
		}
	}
	return pending, completed
}
