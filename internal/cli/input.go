// Package cli handles the interactive scoring mode, useful for checking how a
// reference model judges arbitrary text.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/lstrings/pkg/bigram"
	"github.com/bastiangx/lstrings/pkg/rank"
	"github.com/charmbracelet/log"
)

// InputHandler reads lines and prints each line's similarity to the
// reference model.
type InputHandler struct {
	ref          *bigram.Model
	in           io.Reader
	out          io.Writer
	minLength    int
	requestCount int
	prompt       bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters.
// prompt controls whether a "> " prompt is printed before each line.
func NewInputHandler(ref *bigram.Model, in io.Reader, out io.Writer, minLength int, prompt bool) *InputHandler {
	return &InputHandler{
		ref:       ref,
		in:        in,
		out:       out,
		minLength: minLength,
		prompt:    prompt,
	}
}

// Start begins the interface loop. It returns nil at end of input.
func (h *InputHandler) Start() error {
	if h.prompt {
		log.Print("lstrings scoring mode")
		log.Print("type some text and press Enter to see its English score (Ctrl+D to exit):")
	}

	reader := bufio.NewReader(h.in)
	for {
		if h.prompt {
			fmt.Fprint(h.out, "> ")
		}
		line, err := reader.ReadString('\n')
		text := strings.TrimRight(line, "\r\n")
		if text != "" {
			h.handleInput(text)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// handleInput scores one line. Lines shorter than the minimum length are
// reported and skipped, as the scanner would never produce them.
func (h *InputHandler) handleInput(text string) {
	h.requestCount++
	if len(text) < h.minLength {
		log.Warnf("Input too short (%d < %d): %q", len(text), h.minLength, text)
		return
	}

	start := time.Now()
	score, ok := rank.Score([]byte(text), h.ref)
	log.Debugf("Took [ %v ] for request %d", time.Since(start), h.requestCount)

	if !ok {
		fmt.Fprintf(h.out, "%8s  %s\n", "n/a", text)
		return
	}
	fmt.Fprintf(h.out, "%8.6f  %s\n", score, text)
}
