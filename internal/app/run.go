// Package app implements the memscan command: it scans files for a byte
// string and reports matches in the style of grep -b.
package app

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mhr3/memscan/internal/bytealg"
	"github.com/mhr3/memscan/internal/input"
	"github.com/mhr3/memscan/substr"
)

// Mode selects what Run reports per file.
type Mode uint8

const (
	ModeLines Mode = iota // file:offset:line per match
	ModeCount             // file:count
	ModeFiles             // names of matching files
	ModeQuiet             // nothing
)

// Options configures Run.
type Options struct {
	Needle []byte
	Files  []string
	Mode   Mode
	// Probe answers with the candidate filter instead of exact search.
	// Only ModeFiles and ModeQuiet support it.
	Probe      bool
	Kernel     substr.Kernel
	Ranks      []byte
	Jobs       int
	MaxMatches int
}

type result struct {
	name    string
	matched bool
	count   int
	// out is the rendered report for the file; the file's bytes are not
	// kept once it is built.
	out []byte
}

// Run scans every file in opts.Files with at most opts.Jobs in flight and
// writes the report to out in argument order. It returns whether any file
// matched. The first load error cancels the files not yet started.
func Run(ctx context.Context, opts Options, loader *input.Loader, out io.Writer, log logrus.FieldLogger) (bool, error) {
	scanOpts := []substr.Option{substr.WithKernel(opts.Kernel)}
	if opts.Ranks != nil {
		scanOpts = append(scanOpts, substr.WithRanks(opts.Ranks))
	}
	s, err := substr.NewScanner(opts.Needle, scanOpts...)
	if err != nil {
		return false, err
	}
	off1, off2 := s.Offsets()
	log.WithFields(logrus.Fields{
		"kernel":   s.Kernel().String(),
		"features": bytealg.Features(),
		"offsets":  []int{off1, off2},
		"files":    len(opts.Files),
		"jobs":     opts.Jobs,
	}).Debug("scanner ready")

	results := make([]result, len(opts.Files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Jobs, 1))
	for i, name := range opts.Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			data, err := loader.Load(name)
			if err != nil {
				return err
			}
			res := scanFile(s, opts, displayName(name), data)
			results[i] = res
			log.WithFields(logrus.Fields{
				"file":    res.name,
				"kernel":  s.Kernel().String(),
				"bytes":   len(data),
				"matches": res.count,
				"elapsed": time.Since(start),
			}).Debug("scanned")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	w := bufio.NewWriter(out)
	matched := false
	for i := range results {
		matched = matched || results[i].matched
		if _, err := w.Write(results[i].out); err != nil {
			return matched, err
		}
	}
	return matched, w.Flush()
}

// scanFile scans data and renders its report. The result does not
// reference data.
func scanFile(s *substr.Scanner, opts Options, name string, data []byte) result {
	res, offsets := scan(s, opts, data)
	res.name = name
	var buf bytes.Buffer
	report(&buf, opts, &res, data, offsets)
	res.out = buf.Bytes()
	return res
}

func scan(s *substr.Scanner, opts Options, data []byte) (res result, offsets []int) {
	switch {
	case opts.Probe:
		res.matched = s.MayContain(data)
		if res.matched {
			res.count = 1
		}
	case opts.Mode == ModeCount:
		res.count = s.Count(data)
	case opts.Mode == ModeLines:
		limit := opts.MaxMatches
		if limit <= 0 {
			limit = -1
		}
		offsets = s.IndexAll(data, limit)
		res.count = len(offsets)
	default:
		if s.Contains(data) {
			res.count = 1
		}
	}
	res.matched = res.matched || res.count > 0
	return res, offsets
}

func displayName(name string) string {
	if name == input.Stdin {
		return "(standard input)"
	}
	return name
}
