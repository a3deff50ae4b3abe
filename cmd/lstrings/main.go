// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements lstrings, a strings-like tool that finds printable
ASCII runs in binary files and can rank them by how much they look like
English.

lstrings maps each input file, finds every run of printable bytes (0x20 to
0x7E) at least -n bytes long and prints them. Runs can be ordered by address,
by length or by bigram similarity to a reference English model, in either
direction.

# Usage

Print strings of at least 4 bytes in file order:

	lstrings /bin/ls

Print strings of at least 8 bytes with hex offsets, most English-like first:

	lstrings -n 8 -t x -s english -r firmware.img

Search several files at once and tag each line with its file name:

	lstrings -f -j 4 a.out b.out core

Score arbitrary lines typed on stdin against the reference model:

	lstrings -c

# Reference Model

English ranking needs a reference bigram model, built from a text corpus
with mkbigram. The model is looked up by name relative to the working
directory, the executable and the config directory:

	mkbigram corpus.txt english-bigram-map.bin
	lstrings -m english-bigram-map.bin -s english file

A model path ending in .zst or .lz4 is read through the matching
decompressor. The model is only loaded when it is needed.

# Configuration

Defaults can be kept in a TOML file, by default
~/.config/lstrings/config.toml. It is never created implicitly; run with
-init-config to write one:

	[scan]
	min_length = 4
	sort = "address"
	reverse = false
	format = "n"
	unique = false

	[model]
	path = "english-bigram-map.bin"

	[output]
	encoding = "text"
	filename = false

	[runtime]
	jobs = 0

Flags given on the command line always win over the config file.

# Output

Text output is one string per line, with an optional "name: " and offset
prefix. With -enc msgpack every string is one MessagePack map:

	{"f": "a.out", "o": 4096, "l": 11, "t": "hello world", "s": 0.82}

Files that cannot be searched produce {"f": "...", "e": "..."} instead.

# Exit Status

0 when every file was searched, 1 when at least one file failed and 2 for
invalid arguments.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/bastiangx/lstrings/internal/cli"
	"github.com/bastiangx/lstrings/internal/logger"
	"github.com/bastiangx/lstrings/internal/utils"
	"github.com/bastiangx/lstrings/pkg/bigram"
	"github.com/bastiangx/lstrings/pkg/config"
	"github.com/bastiangx/lstrings/pkg/modelfile"
	"github.com/bastiangx/lstrings/pkg/rank"
	"github.com/bastiangx/lstrings/pkg/report"
	"github.com/bastiangx/lstrings/pkg/search"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

const (
	Version = "0.3.0"
	AppName = "lstrings"
	gh      = "https://github.com/bastiangx/lstrings"
)

const (
	exitFailed  = 1
	exitInvalid = 2
)

// sigHandler cancels the returned context on the first signal and exits on
// the second one.
func sigHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cancel()
		<-c
		os.Exit(130)
	}()
	return ctx
}

// main only manages the flow; scanning, ranking and output live in the
// search and report packages.
func main() {
	ctx := sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	verbose := flag.Bool("v", false, "Log progress for every file")
	cliMode := flag.Bool("c", false, "Score lines from stdin against the reference model")
	configPath := flag.String("config", "", "Path to a TOML config file")
	initConfig := flag.Bool("init-config", false, "Write the default config file and exit")
	minLen := flag.String("n", strconv.Itoa(defaults.Scan.MinLength), "Minimum string length")
	format := flag.String("t", defaults.Scan.Format, "Offset prefix: n (none), d (decimal), o (octal), x (hex)")
	sortMode := flag.String("s", defaults.Scan.Sort, "Sort by: address, length, english")
	reverse := flag.Bool("r", defaults.Scan.Reverse, "Sort in descending order")
	unique := flag.Bool("u", defaults.Scan.Unique, "Print each distinct string once")
	modelPath := flag.String("m", defaults.Model.Path, "Reference English bigram model")
	showFile := flag.Bool("f", defaults.Output.Filename, "Prefix each line with the file name")
	encoding := flag.String("enc", defaults.Output.Encoding, "Output encoding: text, msgpack")
	jobs := flag.Int("j", defaults.Runtime.Jobs, "Files searched concurrently (0 for GOMAXPROCS)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file...\n", AppName)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.SetVerbosity(*debugMode, *verbose)

	if *initConfig {
		path, err := config.RebuildConfigFile()
		if err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		log.Printf("Wrote default config to %s", path)
		return
	}

	cfg, cfgPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Errorf("Failed to load config: %v", err)
		os.Exit(exitInvalid)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(cfgPath))

	// explicit flags override the config file
	var badLen error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			n, err := strconv.Atoi(*minLen)
			if err != nil {
				badLen = fmt.Errorf("invalid minimum length %q: %w", *minLen, err)
				return
			}
			cfg.Scan.MinLength = n
		case "t":
			cfg.Scan.Format = *format
		case "s":
			cfg.Scan.Sort = *sortMode
		case "r":
			cfg.Scan.Reverse = *reverse
		case "u":
			cfg.Scan.Unique = *unique
		case "m":
			cfg.Model.Path = *modelPath
		case "f":
			cfg.Output.Filename = *showFile
		case "enc":
			cfg.Output.Encoding = *encoding
		case "j":
			cfg.Runtime.Jobs = *jobs
		}
	})
	if badLen == nil {
		badLen = cfg.Validate()
	}
	if badLen != nil {
		log.Errorf("%v", badLen)
		os.Exit(exitInvalid)
	}

	// Validate has already accepted every selector.
	mode, _ := rank.ParseMode(cfg.Scan.Sort)
	offset, _ := report.ParseOffsetFormat(cfg.Scan.Format)
	enc, _ := report.ParseEncoding(cfg.Output.Encoding)

	var ref *bigram.Model
	if mode == rank.English || *cliMode {
		ref = loadModel(cfg.Model.Path)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		prompt := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		inputHandler := cli.NewInputHandler(ref, os.Stdin, os.Stdout, cfg.Scan.MinLength, prompt)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(exitInvalid)
	}

	opts := search.Options{
		MinLen:    cfg.Scan.MinLength,
		Mode:      mode,
		Direction: rank.DirectionOf(cfg.Scan.Reverse),
		Reference: ref,
		Unique:    cfg.Scan.Unique,
		Jobs:      cfg.Runtime.Jobs,
	}
	w := report.NewWriter(os.Stdout, report.Options{
		Encoding: enc,
		Offset:   offset,
		ShowFile: cfg.Output.Filename,
		Scores:   mode == rank.English,
	})

	log.Debug("Search info:",
		"minLength", opts.MinLen,
		"sort", mode,
		"direction", opts.Direction,
		"unique", opts.Unique,
		"jobs", opts.Jobs)

	sum, err := search.Run(ctx, paths, opts, w)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(exitFailed)
		}
		log.Fatalf("Failed to write output: %v", err)
	}
	log.Infof("Searched %d files, found %s strings", sum.Files, utils.FormatWithCommas(int64(sum.Strings)))
	if sum.Failed > 0 {
		log.Warnf("%d of %d files could not be searched", sum.Failed, sum.Files)
		os.Exit(exitFailed)
	}
}

// loadModel resolves and decodes the reference model. Failing to do so is
// fatal since English ranking cannot work without it.
func loadModel(name string) *bigram.Model {
	pathResolver, err := utils.NewPathResolver(AppName)
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	log.Debug("Path resolver", "runtime", pathResolver.GetRuntimeInfo())

	path, err := pathResolver.Resolve(name)
	if err != nil {
		log.Print("Build one with: mkbigram corpus.txt " + modelfile.DefaultName)
		log.Fatalf("Failed to find reference model: %v", err)
	}
	ref, err := modelfile.Load(path)
	if err != nil {
		log.Print("Supported model files:")
		for _, info := range modelfile.ListSupportedFormats() {
			log.Print("  "+info.Description, "ext", strings.Join(info.Extensions, " "))
		}
		log.Fatalf("Failed to load reference model: %v", err)
	}
	if ref.Empty() {
		log.Warnf("Reference model %s is empty, every string will score 0", path)
	}
	log.Debugf("Using reference model at: %s", path)
	return ref
}

// printVersion shows the version banner.
func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ lstrings ] Finds the strings that read like English")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}
