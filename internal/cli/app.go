package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/flash-ui/internal/ai"
	"github.com/CodexForgeBR/flash-ui/internal/config"
	"github.com/CodexForgeBR/flash-ui/internal/logging"
	"github.com/CodexForgeBR/flash-ui/internal/model"
	"github.com/CodexForgeBR/flash-ui/internal/state"
	"github.com/CodexForgeBR/flash-ui/internal/studio"
)

// App carries the dependencies shared by every flash-ui command.
type App struct {
	// NewGenerator builds the model backend for a loaded config.
	NewGenerator func(cfg *config.Config) ai.Generator

	// Getenv reads the environment layer of the config chain.
	Getenv func(string) string

	// Now defaults to time.Now.
	Now func() time.Time

	flags Flags
	cfg   *config.Config
}

// NewApp returns an App wired to Gemini and the process environment.
func NewApp() *App {
	return &App{
		NewGenerator: NewGeminiGenerator,
		Getenv:       os.Getenv,
		Now:          time.Now,
	}
}

// NewGeminiGenerator returns a Gemini client wrapped with rate-limit retries
// configured from cfg.
func NewGeminiGenerator(cfg *config.Config) ai.Generator {
	client := ai.NewGeminiClient(cfg.APIKey, cfg.Model)
	if cfg.APIBaseURL != "" {
		client.BaseURL = cfg.APIBaseURL
	}

	retryCfg := ai.DefaultRetryConfig()
	retryCfg.MaxRetries = cfg.MaxRetries
	retryCfg.BaseDelay = cfg.BaseDelay()

	return &ai.RetryGenerator{Inner: client, RetryCfg: retryCfg}
}

// loadConfig assembles the config for cmd from the full precedence chain.
func (a *App) loadConfig(cmd *cobra.Command) error {
	if err := ValidateFlags(cmd, &a.flags); err != nil {
		return err
	}

	cfg, err := config.LoadWithPrecedence(
		config.GlobalConfigPath(),
		config.ProjectConfigPath,
		a.flags.ConfigFile,
		config.EnvOverrides(a.Getenv),
		BuildOverrides(cmd, &a.flags),
	)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// CLI-only flags
	cfg.ConfigFile = a.flags.ConfigFile

	a.cfg = cfg
	logging.SetVerbose(cfg.Verbose)
	logging.Debug(fmt.Sprintf("Config: model=%s state-dir=%s export-dir=%s max-retries=%d", cfg.Model, cfg.StateDir, cfg.ExportDir, cfg.MaxRetries))
	return nil
}

// studio returns a Studio for the loaded config. The API key is required.
func (a *App) studio() (*studio.Studio, error) {
	if a.cfg.APIKey == "" {
		return nil, errors.New("no API key configured: set GEMINI_API_KEY, API_KEY in a config file, or --api-key")
	}
	s := studio.New(a.NewGenerator(a.cfg), a.cfg)
	s.Now = a.now
	return s, nil
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// lookupArtifact resolves a session reference and artifact index against
// the stored history. The returned session points into sessions.
func (a *App) lookupArtifact(sessionRef, indexArg string) ([]model.Session, *model.Session, int, error) {
	sessions, err := state.LoadSessions(a.cfg.StateDir)
	if err != nil {
		return nil, nil, 0, err
	}
	sess, err := state.FindSession(sessions, sessionRef)
	if err != nil {
		return nil, nil, 0, err
	}
	index, err := parseIndex(indexArg)
	if err != nil {
		return nil, nil, 0, err
	}
	if _, err := sess.Artifact(index); err != nil {
		return nil, nil, 0, err
	}
	return sessions, sess, index, nil
}

// NewRootCommand builds the flash-ui command tree.
func NewRootCommand(a *App, version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "flash-ui",
		Short:   "Generative UI studio for the terminal",
		Long:    "flash-ui prompts a Gemini model for HTML/CSS component mockups, streams them to disk, and manages a local component library.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	BindFlags(root, &a.flags)
	SetCustomHelp(root)

	root.AddCommand(
		a.generateCommand(),
		a.surpriseCommand(),
		a.variationsCommand(),
		a.sessionsCommand(),
		a.showCommand(),
		a.cssCommand(),
		a.saveCommand(),
		a.libraryCommand(),
		a.exportCommand(),
		a.openCommand(),
	)

	return root
}

// Execute runs the command tree with ctx and returns the error of the
// command that ran.
func Execute(ctx context.Context, root *cobra.Command, args []string) error {
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
