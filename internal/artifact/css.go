// Package artifact provides editing and export helpers for generated HTML
// components.
package artifact

import (
	"regexp"
	"strings"
)

var styleBlock = regexp.MustCompile(`(?s)<style>(.*?)</style>`)

// ExtractCSS returns the trimmed contents of the first <style> block in
// html, or "" if there is none.
func ExtractCSS(html string) string {
	m := styleBlock.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// InjectCSS replaces the first <style> block in html with css. If html has
// no <style> block a new one is prepended.
func InjectCSS(html, css string) string {
	block := "<style>\n" + css + "\n</style>"
	if !strings.Contains(html, "<style>") {
		return block + "\n" + html
	}

	replaced := false
	return styleBlock.ReplaceAllStringFunc(html, func(s string) string {
		if replaced {
			return s
		}
		replaced = true
		return block
	})
}
