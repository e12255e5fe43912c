package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init routes logging to the given file (opened append-only) and returns the
// configured logger for explicit injection. An empty path keeps stderr, as
// does a file that cannot be opened.
func Init(path string, debug bool) zerolog.Logger {
	var w io.Writer = os.Stderr
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("open log file, using stderr")
		} else {
			w = f
		}
	}

	logger := zerolog.New(w).With().Timestamp().Logger()
	if debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger
	return logger
}
