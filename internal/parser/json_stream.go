// Package parser provides text-parsing utilities for the flash-ui CLI.
//
// ObjectStream extracts JSON objects from a model's token stream as soon as
// each object's closing brace arrives, so design variations can be rendered
// progressively instead of after the whole response.
package parser

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"strings"
)

// Object is a parsed JSON object emitted by an ObjectStream.
type Object = map[string]any

// Fragment is one chunk of text delivered by an upstream streaming call.
// HasText is false when the chunk carried no textual content; such
// fragments are skipped by consumers.
type Fragment struct {
	Text    string
	HasText bool
}

// TextFragment returns a Fragment carrying s.
func TextFragment(s string) Fragment {
	return Fragment{Text: s, HasText: true}
}

// Source yields fragments in arrival order. Next returns io.EOF once the
// upstream is exhausted.
type Source interface {
	Next(ctx context.Context) (Fragment, error)
}

// candidate is the outcome of parsing one brace-balanced span.
type candidate struct {
	obj Object
	ok  bool
}

// ObjectStream is a pull-based iterator over the JSON objects found in a
// Source. It owns its buffer and must be consumed from a single goroutine.
// It is not restartable; to abandon it, stop calling Next.
type ObjectStream struct {
	src     Source
	buf     string
	pending []Object
	done    bool
}

// NewObjectStream returns an ObjectStream reading from src.
func NewObjectStream(src Source) *ObjectStream {
	return &ObjectStream{src: src}
}

// Next returns the next complete object. It blocks on the source until a
// balanced, parseable span is available. When the source is exhausted any
// unconsumed partial text is discarded and io.EOF is returned. Errors from
// the source other than io.EOF are returned unchanged.
func (s *ObjectStream) Next(ctx context.Context) (Object, error) {
	for {
		if len(s.pending) > 0 {
			obj := s.pending[0]
			s.pending = s.pending[1:]
			return obj, nil
		}
		if s.done {
			return nil, io.EOF
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frag, err := s.src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.done = true
				s.buf = ""
				continue
			}
			return nil, err
		}
		if !frag.HasText {
			continue
		}

		s.buf += frag.Text
		s.pending, s.buf = ExtractObjects(s.buf)
	}
}

// All returns a range-over-func view of the stream. The sequence ends after
// the source is exhausted; a source error is yielded once as the final pair.
// Breaking out of the loop abandons the stream.
func (s *ObjectStream) All(ctx context.Context) iter.Seq2[Object, error] {
	return func(yield func(Object, error) bool) {
		for {
			obj, err := s.Next(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(obj, nil) {
				return
			}
		}
	}
}

// Buffered returns the text received but not yet consumed into an object.
func (s *ObjectStream) Buffered() string {
	return s.buf
}

// ExtractObjects performs one scanning pass over buf and returns every
// object it could parse together with the remaining unconsumed text.
//
// Scanning starts at the first '{' and counts brace depth without regard
// to string literals, so a '{' or '}' inside a string value is counted like
// any other. When a balanced span fails to parse, nothing is consumed and
// the search resumes at the next '{' after the span's opening brace. Text
// before a consumed object is dropped along with it.
func ExtractObjects(buf string) ([]Object, string) {
	var objs []Object

	start := strings.IndexByte(buf, '{')
	for start != -1 {
		end := balancedEnd(buf, start)
		if end == -1 {
			break
		}

		c := parseCandidate(buf[start : end+1])
		if c.ok {
			objs = append(objs, c.obj)
			buf = buf[end+1:]
			start = strings.IndexByte(buf, '{')
			continue
		}

		next := strings.IndexByte(buf[start+1:], '{')
		if next == -1 {
			break
		}
		start += next + 1
	}

	return objs, buf
}

// balancedEnd returns the index of the '}' at which brace depth, counted
// from the '{' at start, first returns to zero. Returns -1 if the buffer
// ends first.
func balancedEnd(buf string, start int) int {
	depth := 0
	for i := start; i < len(buf); i++ {
		switch buf[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 && i > start {
			return i
		}
	}
	return -1
}

func parseCandidate(span string) candidate {
	var obj Object
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return candidate{}
	}
	return candidate{obj: obj, ok: true}
}

// StaticSource replays a fixed list of fragments and then reports io.EOF.
type StaticSource struct {
	fragments []Fragment
	pos       int
}

// NewStaticSource returns a Source yielding each chunk as a text fragment.
func NewStaticSource(chunks ...string) *StaticSource {
	frags := make([]Fragment, len(chunks))
	for i, c := range chunks {
		frags[i] = TextFragment(c)
	}
	return &StaticSource{fragments: frags}
}

// NewFragmentSource returns a Source yielding frags verbatim.
func NewFragmentSource(frags ...Fragment) *StaticSource {
	return &StaticSource{fragments: frags}
}

// Next implements Source.
func (s *StaticSource) Next(ctx context.Context) (Fragment, error) {
	if err := ctx.Err(); err != nil {
		return Fragment{}, err
	}
	if s.pos >= len(s.fragments) {
		return Fragment{}, io.EOF
	}
	f := s.fragments[s.pos]
	s.pos++
	return f, nil
}
