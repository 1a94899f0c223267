// Package logx configures the process-wide zerolog logger used by the
// CLI frontend and the daemon.
package logx

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs a human-readable console logger at the given level
// ("debug", "info", "error", ...; unrecognized values fall back to
// "info") as the global zerolog logger.
func Setup(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006/01/02 15:04:05"}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}
