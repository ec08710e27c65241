// Package model defines the flash-ui domain types and their defaults.
//
// Sessions hold the artifacts generated for one prompt; saved components
// form the local library.
package model

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// ArtifactsPerSession is the number of design directions generated for
// every prompt.
const ArtifactsPerSession = 3

// DefaultCategory is the library category used when none is given.
const DefaultCategory = "General"

// DesigningLabel is the style name shown before style names arrive.
const DesigningLabel = "Designing..."

// FallbackStyles are used when the model does not return enough usable
// style names.
var FallbackStyles = []string{
	"Primary Pigment Gridwork",
	"Tactile Risograph Layering",
	"Kinetic Silhouette Balance",
}

// InitialPlaceholders seed the prompt suggestions used by "surprise".
var InitialPlaceholders = []string{
	"Design a bioluminescent task list",
	"Create a brutalist weather dashboard",
	"A music player made of folded paper",
	"Glassmorphic crypto portfolio tracker",
	"Retro-futuristic login screen",
	"A calm meditation timer with breathing rings",
	"Newspaper-style analytics report",
	"Terminal-inspired pricing table",
}

// StylesOrFallback returns the first ArtifactsPerSession styles, or the
// fallback set if fewer were supplied.
func StylesOrFallback(styles []string) []string {
	usable := make([]string, 0, len(styles))
	for _, s := range styles {
		if s != "" {
			usable = append(usable, s)
		}
	}
	if len(usable) < ArtifactsPerSession {
		return append([]string(nil), FallbackStyles...)
	}
	return usable[:ArtifactsPerSession]
}
