package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/lstrings/pkg/bigram"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func TestInputHandlerScoresLines(t *testing.T) {
	ref := bigram.New()
	ref.Add("hello")
	ref.Add("world")

	in := strings.NewReader("hello\n\nqzx\nno\n    \nworld")
	var out bytes.Buffer
	h := NewInputHandler(ref, in, &out, 3, false)
	require.NoError(t, h.Start())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "0.707107  hello", lines[0])
	assert.Equal(t, "0.000000  qzx", lines[1])
	assert.Equal(t, "     n/a      ", lines[2])
	assert.True(t, strings.HasSuffix(lines[3], "  world"))
	assert.Equal(t, 5, h.requestCount)
}

func TestInputHandlerPrompt(t *testing.T) {
	var out bytes.Buffer
	h := NewInputHandler(bigram.FromString("abc"), strings.NewReader("abc\n"), &out, 1, true)
	require.NoError(t, h.Start())
	assert.True(t, strings.HasPrefix(out.String(), "> 1.000000  abc\n"))
}
