// Package logging builds the diagnostic logger shared by the commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultLevel keeps routine runs quiet.
const DefaultLevel = "warn"

// New creates an hclog logger writing to output, or to stderr when output is nil.
// Unknown levels fall back to DefaultLevel.
func New(name, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.LevelFromString(DefaultLevel)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      lvl,
		Output:     output,
		TimeFormat: time.RFC3339,
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}
