package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/dfsm"
	"github.com/aretw0/dfsm/internal/logging"
	"github.com/aretw0/dfsm/pkg/observability"
)

// Format selects how command results are written to stdout.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", name)
	}
}

// Env is what every command writes to: results go to Out, diagnostics to Logger.
type Env struct {
	Out    io.Writer
	Format Format
	Logger *slog.Logger
}

// NewEnv builds an Env from the global flags. Logs always go to stderr, in
// JSON when results are JSON.
func NewEnv(out io.Writer, format, level string) (*Env, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logFormat := logging.FormatText
	if f == FormatJSON {
		logFormat = logging.FormatJSON
	}
	return &Env{Out: out, Format: f, Logger: logging.New(lvl, logFormat)}, nil
}

// JSON writes v as indented JSON.
func (e *Env) JSON(v any) error {
	enc := json.NewEncoder(e.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Printf writes formatted text.
func (e *Env) Printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

// createEngine initializes an engine with the CLI logger and audit hooks.
func (e *Env) createEngine() *dfsm.Engine[string, string] {
	logger := e.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return dfsm.New[string, string](
		dfsm.WithLogger(logger),
		dfsm.WithLifecycleHooks(observability.LogHooks(logger)),
	)
}
