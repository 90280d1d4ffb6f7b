package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
)

// maxLogSize is the size past which an existing log file is rotated on startup
const maxLogSize = 10 * 1024 * 1024

// setupLogging points slog and the standard logger at path
// The console is in raw mode while running, so nothing may go to stdout or stderr;
// an empty path discards all logs and returns a nil file
func setupLogging(path string, level slog.Level) (*os.File, error) {
	if path == "" {
		// SetDefault redirects the standard logger, so it is silenced afterwards
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}
	if err := rotateLog(path); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}

	slog.SetDefault(slog.New(tint.NewHandler(file, &tint.Options{
		Level:      level,
		TimeFormat: time.StampMilli,
		NoColor:    true,
	})))
	log.SetOutput(file)
	return file, nil
}

// rotateLog renames an oversized log to name.<timestamp>.log
func rotateLog(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return nil
	}
	stamp := time.Now().Format("20060102-150405")
	rotated := strings.TrimSuffix(path, filepath.Ext(path)) + "." + stamp + ".log"
	return errors.Wrap(os.Rename(path, rotated), "rotate log")
}
