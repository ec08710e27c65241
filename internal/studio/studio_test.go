package studio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/flash-ui/internal/ai"
	"github.com/CodexForgeBR/flash-ui/internal/config"
	"github.com/CodexForgeBR/flash-ui/internal/logging"
	"github.com/CodexForgeBR/flash-ui/internal/model"
	"github.com/CodexForgeBR/flash-ui/internal/parser"
)

func init() {
	color.NoColor = true
}

// fakeGenerator answers Generate with generateText and Stream with the
// chunks registered for the first matching prompt substring.
type fakeGenerator struct {
	mu sync.Mutex

	generateText string
	generateErr  error
	streams      map[string][]string
	streamErrs   map[string]error

	requests []ai.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req ai.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.generateText, f.generateErr
}

func (f *fakeGenerator) Stream(_ context.Context, req ai.Request) (parser.Source, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	for key, err := range f.streamErrs {
		if strings.Contains(req.Prompt, key) {
			return nil, err
		}
	}
	for key, chunks := range f.streams {
		if strings.Contains(req.Prompt, key) {
			return parser.NewStaticSource(chunks...), nil
		}
	}
	return parser.NewStaticSource(), nil
}

func newTestStudio(t *testing.T, gen ai.Generator) *Studio {
	t.Helper()
	prev := logging.SetOutput(&strings.Builder{})
	t.Cleanup(func() { logging.SetOutput(prev) })

	s := New(gen, config.NewDefaultConfig())
	s.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestGenerateStreamsAllArtifacts(t *testing.T) {
	gen := &fakeGenerator{
		generateText: `Here you go: ["Ink Press", "Wire Mobile", "Glass Fluid"]`,
		streams: map[string][]string{
			"Ink Press":   {"```html\n<div>", "ink</div>\n```"},
			"Wire Mobile": {"<div>wire</div>"},
			"Glass Fluid": {"<div>", "glass", "</div>"},
		},
	}
	s := newTestStudio(t, gen)

	var mu sync.Mutex
	var updates []model.Artifact
	sess, err := s.Generate(context.Background(), "  a login form ", func(a model.Artifact) {
		mu.Lock()
		updates = append(updates, a)
		mu.Unlock()
	})
	require.NoError(t, err)

	assert.Equal(t, "a login form", sess.Prompt)
	assert.Equal(t, int64(1700000000000), sess.Timestamp)
	require.Len(t, sess.Artifacts, 3)

	want := []struct{ style, html string }{
		{"Ink Press", "<div>ink</div>"},
		{"Wire Mobile", "<div>wire</div>"},
		{"Glass Fluid", "<div>glass</div>"},
	}
	for i, w := range want {
		a := sess.Artifacts[i]
		assert.Equal(t, w.style, a.StyleName)
		assert.Equal(t, w.html, a.HTML)
		assert.Equal(t, model.StatusComplete, a.Status)
	}

	// 3 style updates, 6 fragment updates, 3 final updates.
	assert.Len(t, updates, 12)
}

func TestGenerateReportsAccumulatedHTML(t *testing.T) {
	gen := &fakeGenerator{
		generateText: `["A", "B", "C"]`,
		streams: map[string][]string{
			"DIRECTION: A": {"<p>", "one", "</p>"},
		},
	}
	s := newTestStudio(t, gen)

	var seen []string
	_, err := s.Generate(context.Background(), "card", func(a model.Artifact) {
		if a.StyleName == "A" && a.Status == model.StatusStreaming {
			seen = append(seen, a.HTML)
		}
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "<p>", "<p>one", "<p>one</p>"}, seen)
}

func TestGenerateFallsBackToDefaultStyles(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "too few", gen: &fakeGenerator{generateText: `["Only One"]`}},
		{name: "unparseable", gen: &fakeGenerator{generateText: `[oops]`}},
		{name: "no array", gen: &fakeGenerator{generateText: `no styles today`}},
		{name: "call failed", gen: &fakeGenerator{generateErr: errors.New("boom")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := newTestStudio(t, tt.gen).Generate(context.Background(), "card", nil)
			require.NoError(t, err)
			for i, a := range sess.Artifacts {
				assert.Equal(t, model.FallbackStyles[i], a.StyleName)
			}
		})
	}
}

func TestGenerateTruncatesToThreeStyles(t *testing.T) {
	gen := &fakeGenerator{generateText: `["A", "B", "C", "D", "E"]`}
	sess, err := newTestStudio(t, gen).Generate(context.Background(), "card", nil)
	require.NoError(t, err)

	require.Len(t, sess.Artifacts, 3)
	assert.Equal(t, "C", sess.Artifacts[2].StyleName)
}

func TestGenerateArtifactFailures(t *testing.T) {
	gen := &fakeGenerator{
		generateText: `["A", "B", "C"]`,
		streams: map[string][]string{
			"DIRECTION: A": {"<div>ok</div>"},
			"DIRECTION: B": {"   ", "```html\n```"},
		},
		streamErrs: map[string]error{
			"DIRECTION: C": errors.New("gemini API error 429 (RESOURCE_EXHAUSTED): quota"),
		},
	}
	sess, err := newTestStudio(t, gen).Generate(context.Background(), "card", nil)
	require.NoError(t, err)

	assert.Equal(t, model.StatusComplete, sess.Artifacts[0].Status)

	assert.Equal(t, model.StatusError, sess.Artifacts[1].Status)
	assert.Empty(t, sess.Artifacts[1].HTML)

	assert.Equal(t, model.StatusError, sess.Artifacts[2].Status)
	assert.Equal(t,
		`<div style="color: #ff6b6b; padding: 20px;">Error: gemini API error 429 (RESOURCE_EXHAUSTED): quota</div>`,
		sess.Artifacts[2].HTML)
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	_, err := newTestStudio(t, &fakeGenerator{}).Generate(context.Background(), "   ", nil)
	assert.Error(t, err)
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sess, err := newTestStudio(t, &fakeGenerator{generateText: `["A","B","C"]`}).Generate(ctx, "card", nil)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, sess)
}

// stallingSource yields one fragment and then blocks until ctx is done.
type stallingSource struct {
	sent bool
}

func (s *stallingSource) Next(ctx context.Context) (parser.Fragment, error) {
	if !s.sent {
		s.sent = true
		return parser.TextFragment("<div>"), nil
	}
	<-ctx.Done()
	return parser.Fragment{}, ctx.Err()
}

type stallingGenerator struct{}

func (stallingGenerator) Generate(context.Context, ai.Request) (string, error) {
	return `["A","B","C"]`, nil
}

func (stallingGenerator) Stream(context.Context, ai.Request) (parser.Source, error) {
	return &stallingSource{}, nil
}

func TestGenerateCancelledMidStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	studio := newTestStudio(t, stallingGenerator{})
	var once sync.Once
	done := make(chan struct{})
	var sess *model.Session
	var err error
	go func() {
		defer close(done)
		sess, err = studio.Generate(ctx, "card", func(a model.Artifact) {
			if a.HTML == "<div>" {
				once.Do(cancel)
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Generate did not return after cancellation")
	}

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, sess)
	for _, a := range sess.Artifacts {
		assert.NotEqual(t, model.StatusComplete, a.Status)
	}
}

func TestGenerateUsesConfiguredModelAndTemperature(t *testing.T) {
	gen := &fakeGenerator{generateText: `["A","B","C"]`}
	s := newTestStudio(t, gen)
	s.Config.Model = "gemini-test"
	s.Config.Temperature = ai.Temperature(0.4)

	_, err := s.Generate(context.Background(), "card", nil)
	require.NoError(t, err)

	require.Len(t, gen.requests, 4)
	for _, req := range gen.requests {
		assert.Equal(t, "gemini-test", req.Model)
		require.NotNil(t, req.Temperature)
		assert.Equal(t, 0.4, *req.Temperature)
	}
}

func TestVariationsStreamsValidObjects(t *testing.T) {
	gen := &fakeGenerator{
		streams: map[string][]string{
			"RADICAL CONCEPTUAL VARIATIONS": {
				`{ "name": "Ink", "html": "<p>ink</p>" }` + "\n" + `{ "name": "Wi`,
				`re", "html": "<p>wire</p>" }` + "\n",
				`{ "name": "", "html": "<p>nameless</p>" }` + "\n",
				`{ "name": "NoHTML" }` + "\n",
				`{ "name": "Fluid", "html": "<p>fluid</p>" }`,
			},
		},
	}
	s := newTestStudio(t, gen)

	var streamed []string
	got, err := s.Variations(context.Background(), "card", func(v model.Variation) {
		streamed = append(streamed, v.Name)
	})
	require.NoError(t, err)

	assert.Equal(t, []model.Variation{
		{Name: "Ink", HTML: "<p>ink</p>"},
		{Name: "Wire", HTML: "<p>wire</p>"},
		{Name: "Fluid", HTML: "<p>fluid</p>"},
	}, got)
	assert.Equal(t, []string{"Ink", "Wire", "Fluid"}, streamed)

	require.Len(t, gen.requests, 1)
	require.NotNil(t, gen.requests[0].Temperature)
	assert.Equal(t, 1.2, *gen.requests[0].Temperature)
}

func TestVariationsOpenFailure(t *testing.T) {
	gen := &fakeGenerator{streamErrs: map[string]error{"VARIATIONS": errors.New("denied")}}

	got, err := newTestStudio(t, gen).Variations(context.Background(), "card", nil)
	assert.ErrorContains(t, err, "denied")
	assert.Empty(t, got)
}

func TestPlaceholdersMergesAfterBuiltins(t *testing.T) {
	var generated []string
	for i := 0; i < 20; i++ {
		generated = append(generated, `"idea `+string(rune('a'+i))+`"`)
	}
	gen := &fakeGenerator{generateText: "[" + strings.Join(generated, ",") + "]"}

	got, err := newTestStudio(t, gen).Placeholders(context.Background())
	require.NoError(t, err)

	n := len(model.InitialPlaceholders)
	require.Len(t, got, n+10)
	assert.Equal(t, model.InitialPlaceholders, got[:n])

	seen := make(map[string]bool)
	for _, p := range got[n:] {
		assert.True(t, strings.HasPrefix(p, "idea "), p)
		assert.False(t, seen[p], "duplicate %q", p)
		seen[p] = true
	}
}

func TestPlaceholdersFailureKeepsBuiltins(t *testing.T) {
	gen := &fakeGenerator{generateErr: errors.New("offline")}

	got, err := newTestStudio(t, gen).Placeholders(context.Background())
	assert.Error(t, err)
	assert.Equal(t, model.InitialPlaceholders, got)
}

func TestApplyVariation(t *testing.T) {
	sess := model.NewSession("card", time.Now())

	require.NoError(t, ApplyVariation(sess, 1, "<p>new</p>"))
	assert.Equal(t, "<p>new</p>", sess.Artifacts[1].HTML)
	assert.Equal(t, model.StatusComplete, sess.Artifacts[1].Status)

	assert.Error(t, ApplyVariation(sess, 3, "<p/>"))
}

func TestEditCSS(t *testing.T) {
	sess := model.NewSession("card", time.Now())
	sess.Artifacts[0].HTML = "<style>p{color:red}</style><p>x</p>"

	require.NoError(t, EditCSS(sess, 0, "p{color:blue}"))
	assert.Equal(t, "<style>\np{color:blue}\n</style><p>x</p>", sess.Artifacts[0].HTML)

	assert.Error(t, EditCSS(sess, -1, ""))
}
