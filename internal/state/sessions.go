package state

import (
	"fmt"
	"strings"

	"github.com/CodexForgeBR/flash-ui/internal/model"
)

// LoadSessions reads the session history from dir, oldest first. A missing
// sessions file yields an empty history.
func LoadSessions(dir string) ([]model.Session, error) {
	var sessions []model.Session
	if err := loadJSON(dir, sessionsFileName, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// SaveSessions writes the session history to dir.
func SaveSessions(dir string, sessions []model.Session) error {
	if sessions == nil {
		sessions = []model.Session{}
	}
	return saveJSON(dir, sessionsFileName, sessions)
}

// UpsertSession replaces the stored session with the same ID, or appends
// sess if it is new, and persists the history.
func UpsertSession(dir string, sess model.Session) error {
	sessions, err := LoadSessions(dir)
	if err != nil {
		return err
	}

	replaced := false
	for i := range sessions {
		if sessions[i].ID == sess.ID {
			sessions[i] = sess
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, sess)
	}

	return SaveSessions(dir, sessions)
}

// FindSession looks up a session by reference. The reference may be a
// full session ID, a unique ID prefix, "last" for the newest session, or
// a 1-based position in the history. A number outside the history range
// is retried as an ID prefix.
func FindSession(sessions []model.Session, ref string) (*model.Session, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty session reference")
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("no sessions recorded")
	}

	if ref == "last" {
		return &sessions[len(sessions)-1], nil
	}

	for i := range sessions {
		if sessions[i].ID == ref {
			return &sessions[i], nil
		}
	}

	n, numeric := parsePosition(ref)
	if numeric && n >= 1 && n <= len(sessions) {
		return &sessions[n-1], nil
	}

	// Out-of-range numbers fall through, since IDs may start with digits.
	var match *model.Session
	for i := range sessions {
		if strings.HasPrefix(sessions[i].ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("session reference %q is ambiguous", ref)
			}
			match = &sessions[i]
		}
	}
	if match != nil {
		return match, nil
	}
	if numeric {
		return nil, fmt.Errorf("session #%d out of range (1-%d)", n, len(sessions))
	}
	return nil, fmt.Errorf("session %q not found", ref)
}

func parsePosition(ref string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(ref, "%d", &n); err != nil || fmt.Sprint(n) != ref {
		return 0, false
	}
	return n, true
}
