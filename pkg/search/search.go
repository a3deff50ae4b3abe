/*
Package search runs the whole pipeline for input files: map the file, find
printable runs, optionally drop repeated strings, order them and hand them to
a report.Writer.

Several files are searched concurrently, each one independently, while output
is always written in the order the files were given. A file that cannot be
opened is reported and skipped; the remaining files are still searched.

	sum, err := search.Run(ctx, paths, search.Options{MinLen: 4}, w)
*/
package search

import (
	"context"
	"runtime"
	"time"

	"github.com/bastiangx/lstrings/internal/mapfile"
	"github.com/bastiangx/lstrings/pkg/bigram"
	"github.com/bastiangx/lstrings/pkg/rank"
	"github.com/bastiangx/lstrings/pkg/report"
	"github.com/bastiangx/lstrings/pkg/scanner"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Options controls a search.
type Options struct {
	MinLen    int
	Mode      rank.Mode
	Direction rank.Direction
	// Reference is required when Mode is rank.English. It is only read.
	Reference *bigram.Model
	// Unique keeps only the first occurrence of each distinct string.
	Unique bool
	// Jobs bounds concurrently searched files. Zero means GOMAXPROCS.
	Jobs int
}

// Summary counts what Run did.
type Summary struct {
	Files   int
	Failed  int
	Strings int
}

// Result holds the ordered strings of one file and keeps its bytes alive.
type Result struct {
	Path   string
	Ranked []rank.Ranked
	file   *mapfile.File
	buf    []byte
}

// Bytes returns the searched file's contents, valid until Close.
func (r *Result) Bytes() []byte {
	return r.buf
}

// Close releases the file mapping.
func (r *Result) Close() error {
	r.buf = nil
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// Buffer finds, filters and orders the strings of buf.
func Buffer(buf []byte, opts Options) ([]rank.Ranked, error) {
	spans := scanner.Scan(buf, opts.MinLen)
	ranked, err := rank.Sort(buf, spans, opts.Mode, opts.Direction, opts.Reference)
	if err != nil {
		return nil, err
	}
	if opts.Unique {
		ranked = Unique(buf, ranked)
	}
	return ranked, nil
}

// File searches the file at path. The caller must Close the result.
func File(path string, opts Options) (*Result, error) {
	start := time.Now()
	m, err := mapfile.Open(path)
	if err != nil {
		return nil, err
	}

	ranked, err := Buffer(m.Bytes(), opts)
	if err != nil {
		m.Close()
		return nil, err
	}

	log.Debugf("Searched %s: %d bytes, %d strings in %v", path, m.Len(), len(ranked), time.Since(start))
	return &Result{Path: path, Ranked: ranked, file: m, buf: m.Bytes()}, nil
}

type slot struct {
	res  *Result
	err  error
	done chan struct{}
}

// Run searches every path and writes results to w in path order.
// Per-file errors are logged, passed to w.Fail and counted in the summary;
// the returned error is only set when writing fails or ctx is cancelled.
func Run(ctx context.Context, paths []string, opts Options, w report.Writer) (Summary, error) {
	sum := Summary{Files: len(paths)}
	if opts.Mode == rank.English && opts.Reference == nil {
		return sum, rank.ErrNoReference
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slots := make([]slot, len(paths))
	for i := range slots {
		slots[i].done = make(chan struct{})
	}

	var g errgroup.Group
	g.SetLimit(jobs)
	go func() {
		for i, path := range paths {
			i, path := i, path
			if err := ctx.Err(); err != nil {
				slots[i].err = err
				close(slots[i].done)
				continue
			}
			g.Go(func() error {
				log.Infof("Searching file: %s", path)
				slots[i].res, slots[i].err = File(path, opts)
				close(slots[i].done)
				return nil
			})
		}
	}()

	var runErr error
	for i := range slots {
		<-slots[i].done
		res, err := slots[i].res, slots[i].err
		if runErr != nil {
			if res != nil {
				res.Close()
			}
			continue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && err == ctxErr {
				runErr = err
				continue
			}
			sum.Failed++
			log.Errorf("Failed to search %s: %v", paths[i], err)
			if werr := w.Fail(paths[i], err); werr != nil {
				runErr = werr
				cancel()
			}
			continue
		}

		if werr := emit(w, res); werr != nil {
			runErr = werr
			cancel()
		}
		sum.Strings += len(res.Ranked)
		res.Close()
	}

	_ = g.Wait()
	if err := w.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	return sum, runErr
}

func emit(w report.Writer, res *Result) error {
	buf := res.Bytes()
	for _, r := range res.Ranked {
		if err := w.Write(res.Path, buf, r); err != nil {
			return err
		}
	}
	return nil
}
