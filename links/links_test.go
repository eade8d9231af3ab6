package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLinks(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		text string
		out  []string
	}{
		{text: "no links here", out: []string{}},
		{text: "see https://example.com/page for details", out: []string{"https://example.com/page"}},
		{text: "http://a.com and https://b.com.", out: []string{"http://a.com", "https://b.com"}},
		{text: "bare www.example.org link", out: []string{"https://www.example.org"}},
		{text: "dupe https://x.io https://x.io", out: []string{"https://x.io"}},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.out, ExtractLinks(fix.text), fix.text)
	}
}

func TestExtractInviteCodes(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		text string
		out  []string
	}{
		{text: "nothing to see", out: []string{}},
		{text: "check discord.gg/abc123", out: []string{"abc123"}},
		{text: "https://discord.gg/xYz-9 join now", out: []string{"xYz-9"}},
		{text: "https://discord.com/invite/qqq and discordapp.com/invite/www", out: []string{"qqq", "www"}},
		{text: "discord.gg/same discord.gg/same", out: []string{"same"}},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.out, ExtractInviteCodes(fix.text), fix.text)
	}
}

func TestIsWhitelisted(t *testing.T) {
	assert := assert.New(t)
	wl := []string{"example.com", "trusted.org"}

	assert.True(IsWhitelisted("https://example.com/page", wl))
	// subdomains of a whitelisted domain pass (substring hostname match)
	assert.True(IsWhitelisted("https://cdn.example.com/img.png", wl))
	assert.False(IsWhitelisted("https://evil.io/example", wl))
	// unparsable URLs fail closed
	assert.False(IsWhitelisted("https://%zz^", wl))
	assert.False(IsWhitelisted("https://example.com", nil))
}
