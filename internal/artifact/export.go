package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/CodexForgeBR/flash-ui/internal/model"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFilename returns the download name for an artifact:
// flash-ui-<style-slug>-<id>.html.
func ExportFilename(styleName, id string) string {
	slug := strings.ToLower(whitespaceRun.ReplaceAllString(styleName, "-"))
	slug = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '-'
		}
		return r
	}, slug)
	return fmt.Sprintf("flash-ui-%s-%s.html", slug, id)
}

// Export writes the artifact's HTML into dir and returns the file path.
func Export(dir string, a model.Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, ExportFilename(a.StyleName, a.ID))
	if err := os.WriteFile(path, []byte(a.HTML), 0644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
