package plotrx

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// OpenOutput returns a rotating file for o, or def when o has no path.
func OpenOutput(o OutputConfig, def io.Writer) io.WriteCloser {
	if o.Path == "" {
		return nopCloser{def}
	}
	return &lumberjack.Logger{
		Filename:   o.Path,
		MaxSize:    o.MaxSizeMB,
		MaxBackups: o.MaxBackups,
		MaxAge:     o.MaxAgeDays,
		Compress:   o.Compress,
	}
}

// NewLogger returns a logger writing to the configured log file, or to
// stderr without one.
func NewLogger(o OutputConfig, prefix string) (*log.Logger, io.Closer) {
	w := OpenOutput(o, os.Stderr)
	return log.New(w, prefix, log.LstdFlags|log.Lmicroseconds), w
}
