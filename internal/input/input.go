// Package input reads scan targets into memory, decompressing them according
// to their file extension.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// Stdin is the file name that selects the Loader's standard input.
const Stdin = "-"

// Codec identifies a compression format.
type Codec string

const (
	Plain  Codec = "plain"
	Gzip   Codec = "gzip"
	Zstd   Codec = "zstd"
	S2     Codec = "s2"
	Brotli Codec = "brotli"
)

var errNoStdin = errors.New("standard input is not available")

// CodecFor picks the codec from the extension of path.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".s2", ".sz":
		return S2
	case ".br":
		return Brotli
	}
	return Plain
}

// Decompress wraps r in a reader for codec. Closing the result releases
// decoder state but does not close r.
func Decompress(codec Codec, r io.Reader) (io.ReadCloser, error) {
	switch codec {
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case Zstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case S2:
		return io.NopCloser(s2.NewReader(r)), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case Plain:
		return io.NopCloser(r), nil
	}
	return nil, fmt.Errorf("unknown codec %q", codec)
}

// Loader reads whole inputs. It is safe for concurrent use.
type Loader struct {
	stdin io.Reader

	stdinOnce sync.Once
	stdinData []byte
	stdinErr  error
}

// NewLoader returns a Loader whose "-" file name reads stdin, which may be
// nil. Stdin is read once; every "-" gets the same bytes.
func NewLoader(stdin io.Reader) *Loader {
	return &Loader{stdin: stdin}
}

// Load returns the decompressed contents of path, or of standard input when
// path is "-". Standard input is never decompressed. Callers must not modify
// the returned bytes.
func (l *Loader) Load(path string) ([]byte, error) {
	if path == Stdin {
		return l.loadStdin()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	codec := CodecFor(path)
	rc, err := Decompress(codec, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", path, codec, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (l *Loader) loadStdin() ([]byte, error) {
	l.stdinOnce.Do(func() {
		if l.stdin == nil {
			l.stdinErr = errNoStdin
			return
		}
		l.stdinData, l.stdinErr = io.ReadAll(l.stdin)
		if l.stdinErr != nil {
			l.stdinErr = fmt.Errorf("read standard input: %w", l.stdinErr)
		}
	})
	return l.stdinData, l.stdinErr
}
