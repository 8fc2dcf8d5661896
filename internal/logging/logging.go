// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TimeFormat is used by the console writer
const TimeFormat = "2006-01-02 15:04:05"

// Setup points the global logger at out with a console writer and sets the
// global level. An unknown level selects info and is reported as an error.
func Setup(level string, out io.Writer) error {
	if out == nil {
		out = os.Stderr
	}

	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: TimeFormat, NoColor: noColor})

	parsed, err := ParseLevel(level)
	zerolog.SetGlobalLevel(parsed)
	return err
}

// ParseLevel converts a level name, treating "" as info
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return parsed, nil
}
