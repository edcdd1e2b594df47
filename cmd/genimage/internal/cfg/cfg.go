// Package cfg contains common configuration variables.
package cfg

import (
	"log/slog"

	"github.com/rusq/osenv/v2"
)

var (
	LogFile     string = osenv.Value("LOG_FILE", "")
	JSONHandler bool   = osenv.Value("JSON_LOG", false)
	Verbose     bool   = osenv.Value("DEBUG", false)

	Log *slog.Logger = slog.Default()
)
