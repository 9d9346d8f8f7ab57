package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/mhr3/memscan/internal/config"
	"github.com/mhr3/memscan/internal/input"
	"github.com/mhr3/memscan/substr"
)

// Exit statuses returned by Main.
const (
	ExitMatch   = 0
	ExitNoMatch = 1
	ExitError   = 2
)

var errUsage = errors.New("usage: memscan [flags] NEEDLE [FILE...]")

type flags struct {
	count      bool
	filesOnly  bool
	quiet      bool
	probe      bool
	kernel     string
	ranksFrom  string
	rare       bool
	jobs       int
	maxMatches int
	verbose    bool
	logFormat  string
	envFile    string
}

func (f *flags) register(fs *pflag.FlagSet, def config.Config) {
	fs.BoolVarP(&f.count, "count", "c", false, "print the number of matches per file")
	fs.BoolVarP(&f.filesOnly, "files-with-matches", "l", false, "print only the names of matching files")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "print nothing, report through the exit status")
	fs.BoolVarP(&f.probe, "probe", "p", false, "answer with the candidate filter instead of exact search")
	fs.StringVarP(&f.kernel, "kernel", "k", def.Kernel, "search kernel: auto, scalar, swar or vector")
	fs.StringVar(&f.ranksFrom, "ranks-from", "", "build byte ranks from a corpus `FILE` and filter on the rarest needle bytes")
	fs.BoolVar(&f.rare, "rare", false, "filter on the rarest needle bytes using the built-in ranks")
	fs.IntVarP(&f.jobs, "jobs", "j", def.Jobs, "number of files scanned concurrently")
	fs.IntVar(&f.maxMatches, "max-matches", 0, "stop reporting after `N` matches per file (0 means no limit)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&f.logFormat, "log-format", def.LogFormat, "log format: text or json")
	fs.StringVar(&f.envFile, "env", ".env", "dotenv `FILE` read before the environment")
}

// Main runs memscan with args (without the program name) and returns the
// process exit status.
func Main(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("memscan", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	var f flags
	f.register(fs, config.Default())
	fs.Usage = func() {
		fmt.Fprintln(stderr, errUsage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitMatch
		}
		return ExitError
	}

	cfg, err := config.Load(f.envFile)
	if err != nil {
		fmt.Fprintf(stderr, "memscan: %v\n", err)
		return ExitError
	}
	f.override(fs, &cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "memscan: %v\n", err)
		return ExitError
	}
	log := cfg.NewLogger(stderr)

	loader := input.NewLoader(stdin)
	opts, err := f.options(fs.Args(), cfg, loader)
	if err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
		} else {
			log.WithError(err).Error("invalid arguments")
		}
		return ExitError
	}

	matched, err := Run(ctx, opts, loader, stdout, log)
	if err != nil {
		log.WithError(err).Error("scan failed")
		return ExitError
	}
	if matched {
		return ExitMatch
	}
	return ExitNoMatch
}

// override applies the flags set on the command line on top of cfg.
func (f *flags) override(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("kernel") {
		cfg.Kernel = f.kernel
	}
	if fs.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}
}

func (f *flags) options(args []string, cfg config.Config, loader *input.Loader) (Options, error) {
	if len(args) == 0 {
		return Options{}, errUsage
	}
	kernel, err := substr.ParseKernel(cfg.Kernel)
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		Needle:     []byte(args[0]),
		Files:      args[1:],
		Kernel:     kernel,
		Jobs:       cfg.Jobs,
		MaxMatches: f.maxMatches,
		Probe:      f.probe,
	}
	if len(opts.Files) == 0 {
		opts.Files = []string{input.Stdin}
	}

	switch {
	case f.quiet:
		opts.Mode = ModeQuiet
	case f.filesOnly:
		opts.Mode = ModeFiles
	case f.count:
		opts.Mode = ModeCount
	default:
		opts.Mode = ModeLines
	}
	if f.probe {
		switch opts.Mode {
		case ModeCount:
			return Options{}, errors.New("--probe cannot be combined with --count")
		case ModeLines:
			opts.Mode = ModeFiles
		}
	}
	if f.maxMatches < 0 {
		return Options{}, fmt.Errorf("--max-matches must not be negative, got %d", f.maxMatches)
	}

	switch {
	case f.ranksFrom != "":
		corpus, err := loader.Load(f.ranksFrom)
		if err != nil {
			return Options{}, fmt.Errorf("ranks: %w", err)
		}
		ranks := substr.BuildRankTable(corpus)
		opts.Ranks = ranks[:]
	case f.rare:
		ranks := substr.DefaultRanks()
		opts.Ranks = ranks[:]
	}
	return opts, nil
}
