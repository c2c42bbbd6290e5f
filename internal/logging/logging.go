// Package logging routes zerolog output to a rotating file. The terminal
// belongs to the TUI, so nothing is ever written to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/chatterm/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup points the global zerolog logger at cfg.File. When debug is set the
// level is forced to debug. The returned Closer flushes and closes the file.
func Setup(cfg config.LogConfig, debug bool) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.LevelOrDefault())
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	if debug {
		level = zerolog.DebugLevel
	}

	if cfg.File == "" {
		log.Logger = zerolog.Nop()
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	log.Logger = New(w, level)
	return w, nil
}

// New returns a timestamped logger writing to w at level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
