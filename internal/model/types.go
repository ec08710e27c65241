package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CodexForgeBR/flash-ui/internal/parser"
)

// Artifact status values.
const (
	StatusStreaming = "streaming"
	StatusComplete  = "complete"
	StatusError     = "error"
)

// Artifact is one generated UI component.
type Artifact struct {
	ID        string `json:"id"`
	StyleName string `json:"styleName"`
	HTML      string `json:"html"`
	Status    string `json:"status"`
}

// Session groups the artifacts generated for one prompt.
type Session struct {
	ID        string     `json:"id"`
	Prompt    string     `json:"prompt"`
	Timestamp int64      `json:"timestamp"`
	Artifacts []Artifact `json:"artifacts"`
}

// Variation is one alternative rendering of an artifact, parsed from the
// model's streamed JSON objects.
type Variation struct {
	Name string `json:"name"`
	HTML string `json:"html"`
}

// SavedComponent is an artifact stored in the local library.
type SavedComponent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	HTML      string `json:"html"`
	Timestamp int64  `json:"timestamp"`
}

// NewID returns a compact unique identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewSession creates a session for prompt with ArtifactsPerSession
// placeholder artifacts in the streaming state.
func NewSession(prompt string, now time.Time) *Session {
	id := NewID()
	s := &Session{
		ID:        id,
		Prompt:    prompt,
		Timestamp: now.UnixMilli(),
		Artifacts: make([]Artifact, ArtifactsPerSession),
	}
	for i := range s.Artifacts {
		s.Artifacts[i] = Artifact{
			ID:        fmt.Sprintf("%s_%d", id, i),
			StyleName: DesigningLabel,
			Status:    StatusStreaming,
		}
	}
	return s
}

// Artifact returns a pointer to the artifact at index i.
func (s *Session) Artifact(i int) (*Artifact, error) {
	if i < 0 || i >= len(s.Artifacts) {
		return nil, fmt.Errorf("artifact index %d out of range (session has %d)", i, len(s.Artifacts))
	}
	return &s.Artifacts[i], nil
}

// VariationFromObject converts a streamed object into a Variation. Objects
// without a non-empty string name and html are rejected.
func VariationFromObject(obj parser.Object) (Variation, bool) {
	name, _ := obj["name"].(string)
	html, _ := obj["html"].(string)
	if name == "" || html == "" {
		return Variation{}, false
	}
	return Variation{Name: name, HTML: html}, true
}

// NewSavedComponent builds a library entry from an artifact. Empty name and
// category fall back to the artifact's style name and DefaultCategory.
func NewSavedComponent(a Artifact, name, category string, now time.Time) SavedComponent {
	if strings.TrimSpace(name) == "" {
		name = a.StyleName
	}
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	return SavedComponent{
		ID:        NewID(),
		Name:      name,
		Category:  category,
		HTML:      a.HTML,
		Timestamp: now.UnixMilli(),
	}
}
