package preview

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubLookPath(t *testing.T, available map[string]string) {
	t.Helper()
	prev := lookPath
	lookPath = func(name string) (string, error) {
		if p, ok := available[name]; ok {
			return p, nil
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = prev })
}

func TestDetectOpenerOrder(t *testing.T) {
	stubLookPath(t, map[string]string{
		"open":    "/usr/bin/open",
		"wslview": "/usr/bin/wslview",
	})

	got, err := DetectOpener()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/open", got)
}

func TestDetectOpenerNoneAvailable(t *testing.T) {
	stubLookPath(t, nil)

	_, err := DetectOpener()
	assert.ErrorIs(t, err, ErrNoOpener)

	err = Open(context.Background(), "x.html")
	assert.ErrorIs(t, err, ErrNoOpener)
}

func TestOpenRunsOpener(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script opener")
	}
	dir := t.TempDir()
	marker := filepath.Join(dir, "opened")
	script := filepath.Join(dir, "fake-open")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$1\" > "+marker+"\n"), 0755))
	stubLookPath(t, map[string]string{"xdg-open": script})

	require.NoError(t, Open(context.Background(), "/tmp/card.html"))

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/card.html\n", string(data))
}

func TestOpenReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script opener")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-open")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho nope >&2\nexit 3\n"), 0755))
	stubLookPath(t, map[string]string{"xdg-open": script})

	err := Open(context.Background(), "card.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}
