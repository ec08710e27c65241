// Package banner provides colored summary displays for the flash-ui CLI.
//
// Banners write to stdout by default with color-coded headers and
// separators. Progress and diagnostics go through the logging package
// instead.
package banner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/CodexForgeBR/flash-ui/internal/logging"
	"github.com/CodexForgeBR/flash-ui/internal/model"
	"github.com/CodexForgeBR/flash-ui/internal/state"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const separator = "═══════════════════════════════════════════════════"

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout
)

// SetOutput redirects banner output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, format, args...)
}

// PrintStartupBanner displays the prompt and model before generation.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  flash-ui - Generative UI Studio
//	═══════════════════════════════════════════════════
//	  Prompt:     a bioluminescent task list
//	  Model:      gemini-3-flash-preview
//	═══════════════════════════════════════════════════
func PrintStartupBanner(prompt, modelName string) {
	sep := headerColor(separator)
	printf("%s\n%s\n%s\n", sep, headerColor("  flash-ui - Generative UI Studio"), sep)
	printf("  Prompt:     %s\n", prompt)
	printf("  Model:      %s\n", modelName)
	printf("%s\n", sep)
}

// statusMark returns the glyph shown next to an artifact.
func statusMark(status string) string {
	switch status {
	case model.StatusComplete:
		return successColor("✓")
	case model.StatusError:
		return errorColor("✗")
	default:
		return warnColor("…")
	}
}

// PrintSessionSummary displays the artifacts of a session after generation.
// The header is green when every artifact completed and yellow otherwise.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ✓ Session 3f2a9c1e complete (3/3)
//	  Duration:   42s (42s)
//	═══════════════════════════════════════════════════
//	  [0] ✓ Tactile Risograph Press      (5120 bytes)
//	  [1] ✓ Kinetic Silhouette Balance   (4388 bytes)
//	  [2] ✓ Primary Pigment Gridwork     (6001 bytes)
//	═══════════════════════════════════════════════════
func PrintSessionSummary(sess model.Session, durationSecs int) {
	complete := 0
	for _, a := range sess.Artifacts {
		if a.Status == model.StatusComplete {
			complete++
		}
	}

	paint := successColor
	mark := "✓"
	if complete < len(sess.Artifacts) {
		paint = warnColor
		mark = "⚠"
	}

	sep := paint(separator)
	printf("%s\n", sep)
	printf("%s\n", paint(fmt.Sprintf("  %s Session %s complete (%d/%d)", mark, shortID(sess.ID), complete, len(sess.Artifacts))))
	printf("  Duration:   %s (%ds)\n", logging.FormatDuration(durationSecs), durationSecs)
	printf("%s\n", sep)
	for i, a := range sess.Artifacts {
		printf("  [%d] %s %-28s (%d bytes)\n", i, statusMark(a.Status), a.StyleName, len(a.HTML))
	}
	printf("%s\n", sep)
}

// PrintSessionList displays the session history, newest last, with the
// 1-based positions accepted by session references.
func PrintSessionList(sessions []model.Session) {
	if len(sessions) == 0 {
		printf("  No sessions yet. Run \"flash-ui generate <prompt>\" to start.\n")
		return
	}

	sep := strings.Repeat("─", 50)
	printf("%s\n", sep)
	for i, s := range sessions {
		ts := time.UnixMilli(s.Timestamp).Format("2006-01-02 15:04")
		printf("  #%-3d %s  %s  %s\n", i+1, shortID(s.ID), ts, s.Prompt)
		for j, a := range s.Artifacts {
			printf("         [%d] %s %s\n", j, statusMark(a.Status), a.StyleName)
		}
	}
	printf("%s\n", sep)
}

// PrintVariation displays one streamed variation as it arrives.
func PrintVariation(i int, v model.Variation) {
	printf("  %s [%d] %s (%d bytes)\n", successColor("+"), i, v.Name, len(v.HTML))
}

// PrintLibrary displays saved components grouped by category.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  Library (2 components)
//	═══════════════════════════════════════════════════
//	  Cards
//	    9b1d2e7a  Glass Pricing Card
//	  General
//	    77aa01c3  Risograph Login
//	═══════════════════════════════════════════════════
func PrintLibrary(groups []state.Category) {
	total := 0
	for _, g := range groups {
		total += len(g.Components)
	}

	sep := headerColor(separator)
	printf("%s\n", sep)
	printf("%s\n", headerColor(fmt.Sprintf("  Library (%d components)", total)))
	printf("%s\n", sep)
	if total == 0 {
		printf("  Your library is empty.\n")
	}
	for _, g := range groups {
		printf("  %s\n", headerColor(g.Name))
		for _, c := range g.Components {
			printf("    %s  %s\n", shortID(c.ID), c.Name)
		}
	}
	printf("%s\n", sep)
}

// PrintInterruptedBanner displays when generation is interrupted.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ⚠ Generation interrupted
//	  Session:   3f2a9c1e
//	  Partial artifacts were saved
//	═══════════════════════════════════════════════════
func PrintInterruptedBanner(sessionID string) {
	sep := warnColor(separator)
	printf("%s\n%s\n", sep, warnColor("  ⚠ Generation interrupted"))
	printf("  Session:   %s\n", shortID(sessionID))
	printf("  Partial artifacts were saved\n")
	printf("%s\n", sep)
}

// shortID returns the first 8 characters of id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
