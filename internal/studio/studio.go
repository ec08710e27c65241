// Package studio orchestrates UI component generation: style directions,
// concurrent artifact streams, variations and prompt suggestions.
package studio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/CodexForgeBR/flash-ui/internal/ai"
	"github.com/CodexForgeBR/flash-ui/internal/artifact"
	"github.com/CodexForgeBR/flash-ui/internal/config"
	"github.com/CodexForgeBR/flash-ui/internal/logging"
	"github.com/CodexForgeBR/flash-ui/internal/model"
	"github.com/CodexForgeBR/flash-ui/internal/parser"
	"github.com/CodexForgeBR/flash-ui/internal/prompt"
)

// maxSuggestions caps how many generated prompt suggestions are kept.
const maxSuggestions = 10

// Studio runs generation requests against a Generator using the settings
// in Config.
type Studio struct {
	Gen    ai.Generator
	Config *config.Config

	// Now defaults to time.Now.
	Now func() time.Time
}

// New returns a Studio for gen and cfg.
func New(gen ai.Generator, cfg *config.Config) *Studio {
	return &Studio{Gen: gen, Config: cfg, Now: time.Now}
}

func (s *Studio) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Studio) request(p string, temperature *float64) ai.Request {
	return ai.Request{Model: s.Config.Model, Prompt: p, Temperature: temperature}
}

// ErrorHTML renders an error as the inline block stored in a failed artifact.
func ErrorHTML(err error) string {
	return fmt.Sprintf(`<div style="color: #ff6b6b; padding: 20px;">Error: %s</div>`, err.Error())
}

// Generate creates a session for userPrompt and fills its artifacts.
//
// Style directions are requested first; if fewer than three usable names
// come back the fallback styles are used. Each artifact then streams
// concurrently. onUpdate, when non-nil, receives a copy of an artifact
// every time it changes; calls are serialized.
//
// Per-artifact failures are recorded on the artifact and do not fail the
// session. The returned error is non-nil only when ctx is cancelled, in
// which case the partially filled session is still returned.
func (s *Studio) Generate(ctx context.Context, userPrompt string, onUpdate func(model.Artifact)) (*model.Session, error) {
	userPrompt = strings.TrimSpace(userPrompt)
	if userPrompt == "" {
		return nil, errors.New("prompt is empty")
	}

	sess := model.NewSession(userPrompt, s.now())

	var mu sync.Mutex
	update := func(i int, fn func(a *model.Artifact)) {
		mu.Lock()
		defer mu.Unlock()
		fn(&sess.Artifacts[i])
		if onUpdate != nil {
			onUpdate(sess.Artifacts[i])
		}
	}

	styles := s.styles(ctx, userPrompt)
	if err := ctx.Err(); err != nil {
		return sess, err
	}
	for i := range sess.Artifacts {
		update(i, func(a *model.Artifact) { a.StyleName = styles[i] })
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range sess.Artifacts {
		g.Go(func() error {
			return s.generateArtifact(gctx, userPrompt, styles[i], func(fn func(a *model.Artifact)) { update(i, fn) })
		})
	}
	if err := g.Wait(); err != nil {
		return sess, err
	}
	return sess, ctx.Err()
}

// styles asks for the style direction names. Any failure falls back to
// model.FallbackStyles.
func (s *Studio) styles(ctx context.Context, userPrompt string) []string {
	text, err := s.Gen.Generate(ctx, s.request(prompt.BuildStylesPrompt(userPrompt), s.Config.Temperature))
	if err != nil {
		logging.Warn(fmt.Sprintf("Style generation failed, using fallbacks: %v", err))
		return model.StylesOrFallback(nil)
	}

	names, err := parser.ExtractStringArray(text)
	if err != nil {
		logging.Warn("Failed to parse styles, using fallbacks")
		return model.StylesOrFallback(nil)
	}
	logging.Debug(fmt.Sprintf("Style directions: %q", names))
	return model.StylesOrFallback(names)
}

// generateArtifact streams one artifact, reporting the accumulated HTML on
// every text fragment. Failures are recorded on the artifact; the returned
// error is ctx.Err() once ctx is done, and nil otherwise.
func (s *Studio) generateArtifact(ctx context.Context, userPrompt, style string, update func(func(a *model.Artifact))) error {
	fail := func(err error) error {
		logging.Debug(fmt.Sprintf("Artifact %q failed: %v", style, err))
		update(func(a *model.Artifact) {
			a.HTML = ErrorHTML(err)
			a.Status = model.StatusError
		})
		return ctx.Err()
	}

	src, err := s.Gen.Stream(ctx, s.request(prompt.BuildArtifactPrompt(userPrompt, style), s.Config.Temperature))
	if err != nil {
		return fail(err)
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	var acc strings.Builder
	for {
		frag, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(err)
		}
		if !frag.HasText {
			continue
		}
		acc.WriteString(frag.Text)
		html := acc.String()
		update(func(a *model.Artifact) { a.HTML = html })
	}

	final := parser.StripCodeFences(acc.String())
	update(func(a *model.Artifact) {
		a.HTML = final
		if final == "" {
			a.Status = model.StatusError
		} else {
			a.Status = model.StatusComplete
		}
	})
	return nil
}

// Variations streams alternative renderings of userPrompt. Each object
// with a non-empty name and html is passed to onVariation, when non-nil,
// as soon as it is parsed. Variations received before a stream failure are
// returned together with the error.
func (s *Studio) Variations(ctx context.Context, userPrompt string, onVariation func(model.Variation)) ([]model.Variation, error) {
	temp := s.Config.VariationTemperature
	src, err := s.Gen.Stream(ctx, s.request(prompt.BuildVariationsPrompt(userPrompt), &temp))
	if err != nil {
		return nil, fmt.Errorf("open variations stream: %w", err)
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	var out []model.Variation
	for obj, err := range parser.NewObjectStream(src).All(ctx) {
		if err != nil {
			return out, fmt.Errorf("variations stream: %w", err)
		}
		v, ok := model.VariationFromObject(obj)
		if !ok {
			logging.Debug("Skipping variation without name or html")
			continue
		}
		out = append(out, v)
		if onVariation != nil {
			onVariation(v)
		}
	}
	return out, nil
}

// Placeholders returns the built-in prompt suggestions followed by up to
// ten generated ones in random order. On failure the built-in list is
// returned together with the error.
func (s *Studio) Placeholders(ctx context.Context) ([]string, error) {
	out := append([]string(nil), model.InitialPlaceholders...)

	text, err := s.Gen.Generate(ctx, s.request(prompt.BuildPlaceholdersPrompt(), nil))
	if err != nil {
		return out, fmt.Errorf("generate placeholders: %w", err)
	}

	generated, err := parser.ExtractStringArray(text)
	if err != nil {
		return out, fmt.Errorf("parse placeholders: %w", err)
	}

	rand.Shuffle(len(generated), func(i, j int) {
		generated[i], generated[j] = generated[j], generated[i]
	})
	if len(generated) > maxSuggestions {
		generated = generated[:maxSuggestions]
	}
	return append(out, generated...), nil
}

// ApplyVariation replaces the artifact's HTML with html and marks it
// complete.
func ApplyVariation(sess *model.Session, index int, html string) error {
	a, err := sess.Artifact(index)
	if err != nil {
		return err
	}
	a.HTML = html
	a.Status = model.StatusComplete
	return nil
}

// EditCSS replaces the artifact's first <style> block with css, or
// prepends one.
func EditCSS(sess *model.Session, index int, css string) error {
	a, err := sess.Artifact(index)
	if err != nil {
		return err
	}
	a.HTML = artifact.InjectCSS(a.HTML, css)
	return nil
}
