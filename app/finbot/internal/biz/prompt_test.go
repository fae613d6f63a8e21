package biz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	text := "Company X reported record profits."

	a := BuildPrompt(text)
	b := BuildPrompt(text)
	assert.Equal(t, a, b)
}

func TestBuildPrompt_TextVerbatimBetweenDelimiters(t *testing.T) {
	texts := []string{
		"Company X reported record profits.",
		"Shares fell 4% after {article_text} appeared in a filing.\n\nSecond paragraph with `code` and %s %d.",
		"  leading and trailing spaces  ",
	}
	for _, text := range texts {
		p := string(BuildPrompt(text))

		start := strings.Index(p, "**Article Text:**\n```")
		require.NotEqual(t, -1, start, "missing opening delimiter")
		body := p[start+len("**Article Text:**\n```"):]
		end := strings.LastIndex(body, "```\n\n**Generated Report:**")
		require.NotEqual(t, -1, end, "missing closing delimiter")

		assert.Equal(t, text, body[:end])
	}
}

func TestBuildPrompt_Structure(t *testing.T) {
	p := string(BuildPrompt("anything"))

	for _, h := range ReportSections {
		assert.Contains(t, p, "`"+h+"`")
	}
	for _, s := range []string{"`Positive`", "`Negative`", "`Neutral`"} {
		assert.Contains(t, p, s)
	}
	assert.Contains(t, p, "one-sentence justification")
	assert.Equal(t, 2, strings.Count(p, "up to 3"))
	assert.Contains(t, p, `You are "FinBot,"`)
	assert.True(t, strings.HasSuffix(p, "**Generated Report:**\n"))
}

func TestNewArticleRequest(t *testing.T) {
	req, err := NewArticleRequest("  https://example.com/news  ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/news", req.URL)

	for _, raw := range []string{"", " ", "\n\t"} {
		_, err := NewArticleRequest(raw)
		assert.True(t, IsValidationFailure(err), "%q", raw)
		assert.Equal(t, MsgEmptyURL, Message(err))
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, assert.AnError.Error(), Message(assert.AnError))
	assert.Equal(t, MsgEmptyURL, Message(ErrValidation()))
}
