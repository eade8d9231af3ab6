package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldObfuscation(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		text string
		out  string
	}{
		{text: "", out: ""},
		{text: "hello", out: "hello"},
		{text: "h3ll0 w0rld", out: "helloworld"},
		{text: "f.u-c k", out: "fuck"},
		{text: "$h!7", out: "shit"},
		{text: "W4nk3r", out: "wanker"},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.out, FoldObfuscation(fix.text))
	}
}

func TestCollapseRuns(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		text string
		out  string
	}{
		{text: "", out: ""},
		{text: "fuuuuck", out: "fuck"},
		{text: "shiiit", out: "shit"},
		{text: "abab", out: "abab"},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.out, CollapseRuns(fix.text))
	}
}
