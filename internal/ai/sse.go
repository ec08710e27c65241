package ai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/CodexForgeBR/flash-ui/internal/parser"
)

// maxEventSize bounds a single SSE line; generated HTML chunks can be large.
const maxEventSize = 4 * 1024 * 1024

// sseSource adapts a Gemini server-sent-events body to parser.Source.
// Each "data:" line is one JSON event. Malformed lines are silently
// skipped; events without textual parts yield a fragment with HasText
// false.
type sseSource struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	closed  bool
}

func newSSESource(body io.ReadCloser) *sseSource {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)
	return &sseSource{body: body, scanner: scanner}
}

// Next implements parser.Source.
func (s *sseSource) Next(ctx context.Context) (parser.Fragment, error) {
	for {
		if err := ctx.Err(); err != nil {
			s.Close()
			return parser.Fragment{}, err
		}
		if s.closed {
			return parser.Fragment{}, io.EOF
		}

		if !s.scanner.Scan() {
			err := s.scanner.Err()
			s.Close()
			if err != nil {
				return parser.Fragment{}, fmt.Errorf("read gemini stream: %w", err)
			}
			return parser.Fragment{}, io.EOF
		}

		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var event geminiResponse
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			// Skip malformed events
			continue
		}
		if event.Error != nil {
			s.Close()
			return parser.Fragment{}, event.Error.toAPIError(0)
		}

		text, ok := event.text()
		return parser.Fragment{Text: text, HasText: ok}, nil
	}
}

// Close releases the response body. It is safe to call more than once.
func (s *sseSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}
