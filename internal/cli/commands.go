package cli

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/flash-ui/internal/artifact"
	"github.com/CodexForgeBR/flash-ui/internal/banner"
	"github.com/CodexForgeBR/flash-ui/internal/exitcode"
	"github.com/CodexForgeBR/flash-ui/internal/logging"
	"github.com/CodexForgeBR/flash-ui/internal/model"
	"github.com/CodexForgeBR/flash-ui/internal/preview"
	"github.com/CodexForgeBR/flash-ui/internal/state"
	"github.com/CodexForgeBR/flash-ui/internal/studio"
)

// parseIndex parses a 0-based artifact index argument.
func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid artifact index %q", arg)
	}
	return i, nil
}

func (a *App) generateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate three design directions for a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, strings.Join(args, " "))
		},
	}
}

func (a *App) surpriseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "surprise",
		Short: "Generate from a random prompt suggestion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.studio()
			if err != nil {
				return err
			}
			suggestions, err := s.Placeholders(cmd.Context())
			if err != nil {
				logging.Warn(fmt.Sprintf("Using built-in suggestions: %v", err))
			}
			p := suggestions[rand.IntN(len(suggestions))]
			logging.Info(fmt.Sprintf("Surprise prompt: %s", p))
			return a.runGenerate(cmd, p)
		},
	}
}

// runGenerate generates a session for p and records it in the history,
// including when generation is interrupted.
func (a *App) runGenerate(cmd *cobra.Command, p string) error {
	s, err := a.studio()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	banner.PrintStartupBanner(strings.TrimSpace(p), a.cfg.Model)
	start := a.now()

	sess, genErr := s.Generate(ctx, p, func(art model.Artifact) {
		switch art.Status {
		case model.StatusComplete:
			logging.Success(fmt.Sprintf("%s ready (%d bytes)", art.StyleName, len(art.HTML)))
		case model.StatusError:
			logging.Error(fmt.Sprintf("%s failed", art.StyleName))
		default:
			logging.Debug(fmt.Sprintf("%s: %d bytes", art.StyleName, len(art.HTML)))
		}
	})
	if sess == nil {
		return genErr
	}

	if err := state.UpsertSession(a.cfg.StateDir, *sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if genErr != nil {
		if ctx.Err() != nil {
			banner.PrintInterruptedBanner(sess.ID)
		}
		return genErr
	}

	banner.PrintSessionSummary(*sess, int(a.now().Sub(start)/time.Second))

	for _, art := range sess.Artifacts {
		if art.Status == model.StatusComplete {
			return nil
		}
	}
	return fmt.Errorf("session %s: %w: no artifact completed", sess.ID, exitcode.ErrGenerationFailed)
}

func (a *App) variationsCommand() *cobra.Command {
	var apply int
	var export bool

	cmd := &cobra.Command{
		Use:   "variations <session> <index>",
		Short: "Stream radical variations of an artifact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.studio()
			if err != nil {
				return err
			}
			sessions, sess, index, err := a.lookupArtifact(args[0], args[1])
			if err != nil {
				return err
			}

			logging.Section(fmt.Sprintf("Variations of %q", sess.Prompt))
			count := 0
			vars, err := s.Variations(cmd.Context(), sess.Prompt, func(v model.Variation) {
				banner.PrintVariation(count, v)
				count++
			})
			if err != nil {
				if len(vars) == 0 {
					return err
				}
				logging.Warn(fmt.Sprintf("Stream ended early: %v", err))
			}
			if len(vars) == 0 {
				return fmt.Errorf("%w: no variations received", exitcode.ErrGenerationFailed)
			}

			if export {
				for i, v := range vars {
					path, err := artifact.Export(a.cfg.ExportDir, model.Artifact{
						ID:        fmt.Sprintf("%s_%d_v%d", sess.ID, index, i),
						StyleName: v.Name,
						HTML:      v.HTML,
					})
					if err != nil {
						return err
					}
					logging.Info(fmt.Sprintf("Exported %s", path))
				}
			}

			if apply < 0 {
				return nil
			}
			if apply >= len(vars) {
				return fmt.Errorf("--apply %d out of range (received %d variations)", apply, len(vars))
			}
			if err := studio.ApplyVariation(sess, index, vars[apply].HTML); err != nil {
				return err
			}
			if err := state.SaveSessions(a.cfg.StateDir, sessions); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			logging.Success(fmt.Sprintf("Applied %q to artifact %d", vars[apply].Name, index))
			return nil
		},
	}

	cmd.Flags().IntVar(&apply, "apply", -1, "Replace the artifact with the variation at this position")
	cmd.Flags().BoolVar(&export, "export", false, "Write every variation to the export directory")
	return cmd
}

func (a *App) sessionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List generated sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := state.LoadSessions(a.cfg.StateDir)
			if err != nil {
				return err
			}
			banner.PrintSessionList(sessions)
			return nil
		},
	}
}

func (a *App) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session> [index]",
		Short: "Show a session, or print an artifact's HTML",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				sessions, err := state.LoadSessions(a.cfg.StateDir)
				if err != nil {
					return err
				}
				sess, err := state.FindSession(sessions, args[0])
				if err != nil {
					return err
				}
				banner.PrintSessionList([]model.Session{*sess})
				return nil
			}

			_, sess, index, err := a.lookupArtifact(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.Artifacts[index].HTML)
			return nil
		},
	}
}

func (a *App) cssCommand() *cobra.Command {
	var setFile string

	cmd := &cobra.Command{
		Use:   "css <session> <index>",
		Short: "Print or replace an artifact's CSS",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, sess, index, err := a.lookupArtifact(args[0], args[1])
			if err != nil {
				return err
			}

			if setFile == "" {
				fmt.Fprintln(cmd.OutOrStdout(), artifact.ExtractCSS(sess.Artifacts[index].HTML))
				return nil
			}

			css, err := readInput(cmd, setFile)
			if err != nil {
				return err
			}
			if err := studio.EditCSS(sess, index, strings.TrimSpace(css)); err != nil {
				return err
			}
			if err := state.SaveSessions(a.cfg.StateDir, sessions); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			logging.Success(fmt.Sprintf("Updated CSS of %s", sess.Artifacts[index].StyleName))
			return nil
		},
	}

	cmd.Flags().StringVar(&setFile, "set", "", "Replace the CSS with the contents of this file (- for stdin)")
	return cmd
}

// readInput reads path, or the command's stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func (a *App) saveCommand() *cobra.Command {
	var name, category string

	cmd := &cobra.Command{
		Use:   "save <session> <index>",
		Short: "Save an artifact to the library",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, index, err := a.lookupArtifact(args[0], args[1])
			if err != nil {
				return err
			}
			art := sess.Artifacts[index]
			if art.Status != model.StatusComplete {
				return fmt.Errorf("artifact %d is %s; only complete artifacts can be saved", index, art.Status)
			}

			c := model.NewSavedComponent(art, name, category, a.now())
			if _, err := state.AddToLibrary(a.cfg.StateDir, c); err != nil {
				return fmt.Errorf("save to library: %w", err)
			}
			logging.Success(fmt.Sprintf("Saved %q to %s (%s)", c.Name, c.Category, c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Component name (default: style name)")
	cmd.Flags().StringVar(&category, "category", "", "Library category (default: General)")
	return cmd
}

func (a *App) libraryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "List saved components by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := state.LoadLibrary(a.cfg.StateDir)
			if err != nil {
				return err
			}
			banner.PrintLibrary(state.GroupByCategory(items))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a saved component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := state.DeleteFromLibrary(a.cfg.StateDir, args[0]); err != nil {
				return err
			}
			logging.Success(fmt.Sprintf("Deleted %s", args[0]))
			return nil
		},
	})

	return cmd
}

func (a *App) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <session> <index>",
		Short: "Write an artifact to the export directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.export(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (a *App) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <session> <index>",
		Short: "Export an artifact and open it in the viewer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.export(args[0], args[1])
			if err != nil {
				return err
			}
			logging.Info(fmt.Sprintf("Opening %s", path))
			return preview.Open(cmd.Context(), path)
		},
	}
}

func (a *App) export(sessionRef, indexArg string) (string, error) {
	_, sess, index, err := a.lookupArtifact(sessionRef, indexArg)
	if err != nil {
		return "", err
	}
	return artifact.Export(a.cfg.ExportDir, sess.Artifacts[index])
}
