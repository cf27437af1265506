package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractVerbatim(t *testing.T) {
	raw, err := Extract(`{"a":1}`)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(raw))
}

func TestExtractFenced(t *testing.T) {
	for _, text := range []string{
		"```json\n{\"a\":1}\n```",
		"```\n{\"a\":1}\n```",
		"  ```json\n{\"a\":1}\n```  ",
	} {
		raw, err := Extract(text)
		require.NoError(t, err, "input %q", text)
		require.JSONEq(t, `{"a":1}`, string(raw))
	}
}

func TestExtractEmbedded(t *testing.T) {
	raw, err := Extract(`Here is the analysis you asked for: {"a":1} hope that helps!`)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(raw))
}

func TestExtractArray(t *testing.T) {
	raw, err := Extract("```json\n[1,2,3]\n```")
	require.NoError(t, err)
	require.JSONEq(t, `[1,2,3]`, string(raw))
}

func TestExtractNested(t *testing.T) {
	// The bracket span is greedy so nested objects survive.
	raw, err := Extract(`noise {"outer":{"inner":[1,2]}} trailing`)
	require.NoError(t, err)
	require.JSONEq(t, `{"outer":{"inner":[1,2]}}`, string(raw))
}

func TestExtractMalformed(t *testing.T) {
	for _, text := range []string{
		"not json at all",
		"",
		"{ broken json",
		"``` also { not } valid ```",
	} {
		_, err := Extract(text)
		require.ErrorIs(t, err, ErrMalformedOutput, "input %q", text)
	}
}

func TestExtractInto(t *testing.T) {
	var out struct {
		Sentiment string `json:"sentiment"`
	}
	err := ExtractInto("```json\n{\"sentiment\": \"## Mixed\"}\n```", &out)
	require.NoError(t, err)
	require.Equal(t, "## Mixed", out.Sentiment)

	err = ExtractInto("nope", &out)
	require.ErrorIs(t, err, ErrMalformedOutput)
}
