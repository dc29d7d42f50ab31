// Package logging contains data structures useful to implement logging
// across the trace plotting tools.
package logging

import (
	"fmt"
	golog "log"
	"net/http"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
	"github.com/gorilla/handlers"
)

// Logger is a logger that logs messages on the standard error in a
// structured JSON format, to simplify processing of batch runs.
var Logger = log.Logger{
	Handler: json.New(os.Stderr),
	Level:   log.DebugLevel,
}

// Formats accepted by SetFormat.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// SetFormat switches the handler used by Logger. The text format is
// friendlier when the tools are run by hand.
func SetFormat(format string) error {
	switch format {
	case FormatJSON:
		Logger.Handler = json.New(os.Stderr)
	case FormatText:
		Logger.Handler = text.New(os.Stderr)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

// MakeAccessLogHandler wraps |handler| with another handler that logs
// access to each resource on the standard output, in the common log format.
func MakeAccessLogHandler(handler http.Handler) http.Handler {
	return handlers.LoggingHandler(golog.Writer(), handler)
}
