package prompt

import "strings"

// BuildStylesPrompt asks for three style direction names for userPrompt.
func BuildStylesPrompt(userPrompt string) string {
	p := strings.ReplaceAll(StylesTemplate, "{{IP_SAFEGUARD}}", strings.TrimSpace(IPSafeguard))
	p = strings.ReplaceAll(p, "{{PROMPT}}", userPrompt)
	return strings.TrimSpace(p)
}

// BuildArtifactPrompt asks for the raw HTML of one component rendered in
// the given style direction.
func BuildArtifactPrompt(userPrompt, style string) string {
	p := strings.ReplaceAll(ArtifactTemplate, "{{STYLE}}", style)
	p = strings.ReplaceAll(p, "{{PROMPT}}", userPrompt)
	return strings.TrimSpace(p)
}

// BuildVariationsPrompt asks for three variations of userPrompt, streamed
// as one {"name","html"} JSON object per line.
func BuildVariationsPrompt(userPrompt string) string {
	p := strings.ReplaceAll(VariationsTemplate, "{{IP_SAFEGUARD}}", strings.TrimSpace(IPSafeguard))
	p = strings.ReplaceAll(p, "{{PROMPT}}", userPrompt)
	return strings.TrimSpace(p)
}

// BuildPlaceholdersPrompt asks for a JSON array of prompt suggestions.
func BuildPlaceholdersPrompt() string {
	return strings.TrimSpace(PlaceholdersTemplate)
}
