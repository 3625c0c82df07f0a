package task

import (
	"strings"
	"time"
)

// TimeFormat is the minute-precision layout used for every stored or
// displayed timestamp.
const TimeFormat = "2006-01-02 15:04"

// Status represents the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Priority represents the importance level of a task. It is deliberately
// an open string type rather than a closed enum: the store keeps whatever
// the runtime extracted from speech, lowercased but never validated.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Normalize lowercases a spoken priority for storage.
func Normalize(p Priority) Priority {
	return Priority(strings.ToLower(string(p)))
}

// Rank returns the sort order for a priority (lower = more urgent).
// Unrecognized priorities sort last.
func Rank(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Mark returns the colored indicator for a priority. Unrecognized
// priorities get a neutral mark rather than an error.
func Mark(p Priority) string {
	switch p {
	case PriorityLow:
		return "🔵"
	case PriorityMedium:
		return "🟡"
	case PriorityHigh:
		return "🟠"
	case PriorityUrgent:
		return "🔴"
	default:
		return "⚪"
	}
}

// Icon returns the checkbox indicator for a status.
func Icon(s Status) string {
	if s == StatusCompleted {
		return "✅"
	}
	return "⬜"
}

// Task represents one user-visible to-do item.
type Task struct {
	ID          int
	Description string
	Priority    Priority
	Status      Status
	CreatedAt   time.Time
	DueDate     string // free-form text ("today", "Oct 20", "2025-10-01"); empty when unset
	CompletedAt *time.Time
}

// IsHighPriority reports whether the task is high or urgent priority.
func IsHighPriority(t Task) bool {
	return t.Priority == PriorityHigh || t.Priority == PriorityUrgent
}

// DueSortKey returns the text used to order tasks by due date.
// Tasks without a due date sort after everything else.
func DueSortKey(t Task) string {
	if t.DueDate == "" {
		return "9999"
	}
	return t.DueDate
}

// Filter selects a subset of tasks for listing.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterPending      Filter = "pending"
	FilterCompleted    Filter = "completed"
	FilterToday        Filter = "today"
	FilterHighPriority Filter = "high-priority"
)

// Matches reports whether a task passes the filter on the given day
// (today formatted as YYYY-MM-DD). The "today" filter compares due dates
// as literal text: it matches "today" or today's date string and nothing
// else, so "tomorrow" never matches, even on the literal next day. Unknown
// filters match nothing, so a misheard keyword degrades to an empty
// listing instead of an error.
func (f Filter) Matches(t Task, today string) bool {
	switch f {
	case FilterAll:
		return true
	case FilterPending:
		return t.Status == StatusPending
	case FilterCompleted:
		return t.Status == StatusCompleted
	case FilterToday:
		return t.DueDate == "today" || t.DueDate == today
	case FilterHighPriority:
		return IsHighPriority(t)
	default:
		return false
	}
}
