// Package session records one serve run of the assistant so a restarted
// process keeps its identity with the conversational runtime.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const sessionFile = "session.json"

// Session represents an active run of the agent server.
type Session struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	Greeted   bool      `json:"greeted"`
}

func sessionPath(dir string) string {
	return filepath.Join(dir, sessionFile)
}

// Begin loads the session for dir, creating a fresh one if none exists or
// the file is unreadable.
func Begin(dir string) *Session {
	data, err := os.ReadFile(sessionPath(dir))
	if err == nil {
		var s Session
		if json.Unmarshal(data, &s) == nil && s.SessionID != "" {
			return &s
		}
	}
	return &Session{
		SessionID: uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

// Save writes the session to disk.
func (s *Session) Save(dir string) error {
	//nolint:gosec // G301: 0755 is appropriate for the user-owned data directory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	//nolint:gosec // G306: 0644 is appropriate for user-readable session files
	return os.WriteFile(sessionPath(dir), data, 0o644)
}

// Clear removes the session file.
func Clear(dir string) error {
	err := os.Remove(sessionPath(dir))
	if os.IsNotExist(err) {
		return nil // Already cleared, not an error
	}
	return err
}
