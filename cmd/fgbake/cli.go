package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/recording"
)

// ExitError carries the process exit code for a failure.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// options are the parsed command-line flags.
type options struct {
	configPath string
	strategy   string
	frames     int
	pngPath    string
	tracePath  string
	quiet      bool
	logLevel   string
	logFormat  string
}

// parseArgs processes command-line arguments. It reports whether the
// program should exit cleanly (help, or no config given).
func parseArgs(args []string, output io.Writer) (*options, bool, error) {
	fs := flag.NewFlagSet("fgbake", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
fgbake - bake a frame graph description and print its pass order and barriers.

Usage:
  fgbake [options] CONFIG

Arguments:
  CONFIG
    Path to a .hcl, .yaml or .yml frame graph description.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintln(output, "\nBackends:")
		for _, b := range recording.Backends() {
			fmt.Fprintf(output, "  %-10s %-6s %s\n", b.Name, b.Output, b.Summary)
		}
	}

	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "Path to the frame graph description.")
	fs.StringVar(&o.strategy, "strategy", "", "Override the scheduling strategy: 'topological' or 'declaration'.")
	fs.IntVar(&o.frames, "frames", 1, "Number of frames to execute.")
	fs.StringVar(&o.pngPath, "png", "", "Write a timeline of the last frame to this PNG file.")
	fs.StringVar(&o.tracePath, "trace", "", "Write a text trace of the last frame to this file, or '-' for stdout.")
	fs.BoolVar(&o.quiet, "quiet", false, "Do not print the plan and frame report.")
	fs.StringVar(&o.logLevel, "log-level", "warn", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	fs.StringVar(&o.logFormat, "log-format", "text", "Log output format: 'text' or 'json'.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if o.configPath == "" && fs.NArg() > 0 {
		o.configPath = fs.Arg(0)
	}
	if o.configPath == "" {
		fs.Usage()
		return nil, true, nil
	}

	if o.strategy != "" {
		if _, err := framegraph.ParseStrategy(o.strategy); err != nil {
			return nil, false, &ExitError{Code: 2, Message: "invalid strategy: must be 'topological' or 'declaration'"}
		}
	}
	if o.frames < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid frames: must be at least 1"}
	}

	o.logFormat = strings.ToLower(o.logFormat)
	if o.logFormat != "text" && o.logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	o.logLevel = strings.ToLower(o.logLevel)
	switch o.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	return o, false, nil
}
