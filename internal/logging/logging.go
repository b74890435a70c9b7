// Package logging builds the debug logger shared by the CLI and transport.
package logging

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"

	"itemsync/internal/config"
)

// Prefix is prepended to every log line.
const Prefix = "[itemsync] "

// New returns a logger for cfg. Debug mode writes to errOut; a configured
// log file receives the same lines through a size-rotated writer. With
// neither, the logger discards. The returned closer releases the log file.
func New(cfg *config.Config, errOut io.Writer) (*log.Logger, io.Closer) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if cfg.Debug && errOut != nil {
		writers = append(writers, errOut)
	}
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		}
		writers = append(writers, rotator)
		closer = rotator
	}

	switch len(writers) {
	case 0:
		return Discard(), closer
	case 1:
		return log.New(writers[0], Prefix, log.LstdFlags), closer
	default:
		return log.New(io.MultiWriter(writers...), Prefix, log.LstdFlags), closer
	}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// OrDiscard returns l, or a discard logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
