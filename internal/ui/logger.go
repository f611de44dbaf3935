package ui

import (
	"os"

	"github.com/charmbracelet/log"
)

// EnvDebug raises the diagnostic log level to debug when set.
const EnvDebug = "DUNE_INSTALL_DEBUG"

// NewLogger builds the diagnostic logger. It stays quiet (warn level)
// unless DUNE_INSTALL_DEBUG is set in the environment.
func NewLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "dune-install",
	})

	if os.Getenv(EnvDebug) != "" {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	return logger
}
