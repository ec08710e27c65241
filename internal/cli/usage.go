package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const helpText = `flash-ui - Generative UI studio for the terminal

USAGE
  flash-ui <command> [flags]

COMMANDS
  Generate:
    generate <prompt>                      Generate three design directions for a prompt
    surprise                               Generate from a random prompt suggestion
    variations <session> <index>           Stream radical variations of an artifact

  Browse & Edit:
    sessions                               List generated sessions
    show <session> [index]                 Show a session, or print an artifact's HTML
    css <session> <index> [--set <file>]   Print or replace an artifact's CSS
    export <session> <index>               Write an artifact to the export directory
    open <session> <index>                 Export an artifact and open it in the viewer

  Library:
    save <session> <index>                 Save an artifact to the library
    library                                List saved components by category
    library delete <id>                    Remove a saved component

  Sessions are referenced by ID, unique ID prefix, "last", or 1-based
  position. A number past the end of the history is matched as an ID prefix.

FLAGS
  Model:
    --api-key <key>                        Gemini API key (default: $GEMINI_API_KEY or $API_KEY)
    -m, --model <model>                    Gemini model (default: gemini-3-flash-preview)
    --api-base-url <url>                   Override the Gemini REST endpoint
    --temperature <float>                  Artifact sampling temperature (default: model default)
    --variation-temperature <float>        Variation sampling temperature (default: 1.2)

  Rate Limits:
    --max-retries <int>                    Retries after a rate-limited call (default: 3)
    --base-delay-ms <int>                  Initial backoff delay in milliseconds (default: 2000)

  Storage:
    --state-dir <path>                     Sessions and library directory (default: .flash-ui)
    --export-dir <path>                    Exported HTML directory (default: .)
    --config <path>                        Path to additional config file

  Output:
    -v, --verbose                          Show debug output

  Help & Version:
    -h, --help                             Show this help text
    --version                              Show version, commit, build date

EXIT CODES
  0   Success              Command completed
  1   Error                Invalid arguments, file not found, misconfiguration
  2   GenerationFailed     No artifact could be generated
  130 Interrupted          SIGINT or SIGTERM received

EXAMPLES
  # Generate three directions for a component
  flash-ui generate "a bioluminescent task list"

  # Stream variations of the second artifact of the latest session
  flash-ui variations last 1

  # Replace the CSS of an artifact and open it
  flash-ui css last 0 --set card.css && flash-ui open last 0

  # Save to the library under a category
  flash-ui save last 2 --name "Glass Card" --category Cards

For more information, see: https://github.com/CodexForgeBR/flash-ui
`

// SetCustomHelp prints the flash-ui overview for the root command and keeps
// cobra's generated help for subcommands.
func SetCustomHelp(root *cobra.Command) {
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			defaultHelp(cmd, args)
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), helpText)
	})
}
