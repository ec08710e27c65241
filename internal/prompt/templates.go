// Package prompt builds the model prompts used by flash-ui from
// templates embedded at compile time.
package prompt

import _ "embed"

// Template files embedded at compile time
var (
	//go:embed templates/ip-safeguard.txt
	IPSafeguard string

	//go:embed templates/styles.txt
	StylesTemplate string

	//go:embed templates/artifact.txt
	ArtifactTemplate string

	//go:embed templates/variations.txt
	VariationsTemplate string

	//go:embed templates/placeholders.txt
	PlaceholdersTemplate string
)
