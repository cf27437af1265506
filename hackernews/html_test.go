package hackernews

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTMLToText(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"plain", "just text", "just text"},
		{"paragraphs", "one<p>two<p>three", "one\n\ntwo\n\nthree"},
		{"entities", "a &amp; b &gt; c &#x27;d&#x27;", "a & b > c 'd'"},
		{"italics", "this is <i>important</i>!", "this is *important*!"},
		{"link", `see <a href="https://go.dev">the docs</a> here`, "see the docs (https://go.dev) here"},
		{"inline code", "run <code>go vet</code> first", "run `go vet` first"},
		{"line break", "one<br>two", "one\ntwo"},
		{"stray tags stripped", "<div>kept</div>", "kept"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, HTMLToText(tc.in))
		})
	}
}

func TestHTMLToTextCodeBlock(t *testing.T) {
	in := "before<p><pre><code>x := 1\ny := 2</code></pre><p>after"
	want := "before\n\n\n```\nx := 1\ny := 2\n```\n\n\nafter"
	require.Equal(t, want, HTMLToText(in))
}

func TestHTMLToTextTrimmed(t *testing.T) {
	require.Equal(t, "inner", HTMLToText("<p>  inner  <p>"))
}
