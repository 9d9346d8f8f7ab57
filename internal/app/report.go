package app

import (
	"bytes"
	"strconv"

	"github.com/segmentio/asm/ascii"
)

// report renders the output for one file into w. offsets are the match
// offsets into data in ModeLines and unused otherwise.
func report(w *bytes.Buffer, opts Options, res *result, data []byte, offsets []int) {
	switch opts.Mode {
	case ModeFiles:
		if res.matched {
			w.WriteString(res.name)
			w.WriteByte('\n')
		}
	case ModeCount:
		w.WriteString(res.name)
		w.WriteByte(':')
		w.WriteString(strconv.Itoa(res.count))
		w.WriteByte('\n')
	case ModeLines:
		for _, off := range offsets {
			w.WriteString(res.name)
			w.WriteByte(':')
			w.WriteString(strconv.Itoa(off))
			w.WriteByte(':')
			w.WriteString(formatLine(lineAt(data, off)))
			w.WriteByte('\n')
		}
	}
}

// lineAt returns the line of data holding offset off, without its
// terminator.
func lineAt(data []byte, off int) []byte {
	start := bytes.LastIndexByte(data[:off], '\n') + 1
	end := bytes.IndexByte(data[off:], '\n')
	if end < 0 {
		end = len(data)
	} else {
		end += off
	}
	return bytes.TrimSuffix(data[start:end], []byte{'\r'})
}

// formatLine quotes lines that would not print cleanly on a terminal.
func formatLine(line []byte) string {
	if ascii.ValidPrint(line) {
		return string(line)
	}
	return strconv.Quote(string(line))
}
