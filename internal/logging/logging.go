package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init builds the application logger writing human-readable lines to w.
// Level accepts zerolog's names: trace, debug, info, warn, error, disabled.
func Init(app, level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("unknown log level %q", level)
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).Level(lvl).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger, nil
}

// NewTrace opens a JSONL trace log at path, one JSON event per line. The
// caller owns the returned closer; events written after Close are lost.
func NewTrace(path string) (zerolog.Logger, io.Closer, error) {
	f, err := os.Create(path)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open trace log: %w", err)
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, f, nil
}
