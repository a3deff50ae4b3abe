package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetVerbosity(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	SetVerbosity(false, false)
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	SetVerbosity(false, true)
	assert.Equal(t, log.InfoLevel, log.GetLevel())

	SetVerbosity(true, true)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestNewWithWriterUsesPrefixAndLevel(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	log.SetLevel(log.InfoLevel)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "mkbigram")
	l.Debug("hidden")
	l.Info("processing line", "line", 1000)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "mkbigram")
	assert.Contains(t, out, "line=1000")
}
