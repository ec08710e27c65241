package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStringArray(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		wantErr bool
	}{
		{
			name: "bare array",
			text: `["Tactile Risograph Press", "Kinetic Silhouette Balance"]`,
			want: []string{"Tactile Risograph Press", "Kinetic Silhouette Balance"},
		},
		{
			name: "fenced with prose",
			text: "Sure!\n```json\n[\"a\", \"b\", \"c\"]\n```\nEnjoy.",
			want: []string{"a", "b", "c"},
		},
		{
			name: "no array",
			text: "I could not think of anything.",
			want: nil,
		},
		{
			name:    "not strings",
			text:    `[1, 2, 3]`,
			wantErr: true,
		},
		{
			name:    "greedy span over two arrays",
			text:    `["a"] and ["b"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractStringArray(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain html", "<div>hi</div>", "<div>hi</div>"},
		{"html fence", "```html\n<div>hi</div>\n```", "<div>hi</div>"},
		{"bare fence", "```\n<div>hi</div>\n```", "<div>hi</div>"},
		{"surrounding whitespace", "  \n```html\n<p/>\n```  \n", "<p/>"},
		{"only opening fence", "```html\n<p/>", "<p/>"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}
