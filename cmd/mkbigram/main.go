// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// mkbigram builds the reference English bigram model used by lstrings from a
// text corpus, one Add per corpus line.
//
//	mkbigram [-every N] [-d] corpus out
//
// Either path may end in .zst or .lz4 to read or write through a compressor.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bastiangx/lstrings/internal/compress"
	"github.com/bastiangx/lstrings/internal/logger"
	"github.com/bastiangx/lstrings/internal/utils"
	"github.com/bastiangx/lstrings/pkg/bigram"
	"github.com/bastiangx/lstrings/pkg/modelfile"
	"github.com/charmbracelet/log"
)

func main() {
	every := flag.Int("every", bigram.DefaultProgressEvery, "Log progress every N lines")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: mkbigram [flags] corpus out\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	corpusPath, outPath := flag.Arg(0), flag.Arg(1)

	// progress is always shown; -d adds timestamps and debug lines
	logger.SetVerbosity(*debugMode, true)
	progress := logger.New("mkbigram")

	start := time.Now()
	m, stats, err := build(corpusPath, *every, func(line int) {
		progress.Info("processing line", "line", utils.FormatWithCommas(int64(line)))
	})
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}
	log.Debugf("Read %d lines, %d bigrams in %v", stats.Lines, stats.Bigrams, time.Since(start))

	if err := modelfile.Save(m, outPath); err != nil {
		log.Fatalf("Failed to save model: %v", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		log.Fatalf("Failed to stat %s: %v", outPath, err)
	}
	progress.Info("wrote model",
		"path", outPath,
		"encoded", utils.FormatWithCommas(bigram.EncodedSize),
		"size", utils.FormatBytes(info.Size()),
		"lines", utils.FormatWithCommas(int64(stats.Lines)))
}

// build folds every line of the corpus at path into a new model.
func build(path string, every int, onProgress func(int)) (*bigram.Model, bigram.BuildStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, bigram.BuildStats{}, err
	}
	defer file.Close()

	kind := compress.KindOf(path)
	r, err := compress.NewReader(bufio.NewReader(file), kind)
	if err != nil {
		return nil, bigram.BuildStats{}, fmt.Errorf("failed to open %s corpus: %w", kind, err)
	}
	defer r.Close()

	b := bigram.NewBuilder()
	b.Every = every
	b.Progress = onProgress
	if err := b.Consume(r); err != nil {
		return nil, bigram.BuildStats{}, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}
	return b.Model(), b.Stats(), nil
}
