package logging

import (
	"io"
	"os"
	"strings"

	apperrors "github.com/agbru/digitcalc/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a level name ("debug", "info", "warn", "error",
// "disabled") to a zerolog level. The empty string means info.
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, apperrors.NewConfigError("invalid log level %q", name)
	}
	return level, nil
}

// Configure sets the global zerolog level and points the global logger at
// w, or stderr when w is nil. Console output is human readable; otherwise
// entries are JSON.
func Configure(levelName string, w io.Writer, console bool) error {
	level, err := ParseLevel(levelName)
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stderr
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}
