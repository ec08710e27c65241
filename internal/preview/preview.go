// Package preview opens exported components in the system document viewer.
package preview

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Openers are the viewer commands tried in order.
var Openers = []string{"xdg-open", "open", "wslview"}

// ErrNoOpener is returned when none of the Openers is on PATH.
var ErrNoOpener = errors.New("no document opener found (tried xdg-open, open, wslview)")

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// DetectOpener returns the path of the first available opener.
func DetectOpener() (string, error) {
	for _, name := range Openers {
		if p, err := lookPath(name); err == nil {
			return p, nil
		}
	}
	return "", ErrNoOpener
}

// Open hands path to the system viewer and waits for the opener to exit.
func Open(ctx context.Context, path string) error {
	opener, err := DetectOpener()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, opener, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s %s: %w: %s", opener, path, err, out)
	}
	return nil
}
