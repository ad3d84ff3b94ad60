// Command fgbake loads a frame graph description, bakes it and executes a
// number of frames into a command recording. It prints the plan and the
// barriers of the last frame, and can write a text trace or a timeline PNG
// of that frame.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/config"
	"github.com/gogpu/framegraph/internal/report"
	"github.com/gogpu/framegraph/recording"

	// Register recording backends.
	_ "github.com/gogpu/framegraph/recording/backends/timeline"
	_ "github.com/gogpu/framegraph/recording/backends/trace"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run holds the program logic so tests can drive it with their own
// writers.
func run(stdout, stderr io.Writer, args []string) error {
	opts, exit, err := parseArgs(args, stdout)
	if err != nil || exit {
		return err
	}

	framegraph.SetLogger(newLogger(opts.logLevel, opts.logFormat, stderr))
	defer framegraph.SetLogger(nil)

	file, err := config.Load(opts.configPath)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	var fgOpts []framegraph.Option
	if opts.strategy != "" {
		s, _ := framegraph.ParseStrategy(opts.strategy)
		fgOpts = append(fgOpts, framegraph.WithStrategy(s))
	}
	fg, err := config.Build(file, fgOpts...)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	if err := fg.Bake(); err != nil {
		return &ExitError{Code: 1, Message: fmt.Sprintf("%s: %v", framegraph.KindOf(err), err)}
	}
	if !opts.quiet {
		fmt.Fprintln(stdout, report.Plan(fg.Plan()))
	}

	var (
		last *framegraph.FrameResult
		rec  *recording.Recording
	)
	recorder := recording.NewRecorder(0)
	for frame := range uint64(opts.frames) {
		recorder.Reset(frame)
		last, err = fg.Execute(framegraph.FrameContext{Frame: frame}, recorder)
		if err != nil {
			return err
		}
		rec = recorder.FinishRecording()
	}
	if !opts.quiet {
		fmt.Fprintln(stdout, report.Frame(last))
	}

	if opts.tracePath != "" {
		if err := writeTrace(rec, opts.tracePath, stdout); err != nil {
			return err
		}
	}
	if opts.pngPath != "" {
		if err := writeTimeline(rec, opts.pngPath); err != nil {
			return err
		}
	}
	return nil
}

func writeTrace(rec *recording.Recording, path string, stdout io.Writer) error {
	backend, err := recording.NewBackend("trace")
	if err != nil {
		return err
	}
	if err := rec.Playback(backend); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	if path == "-" {
		_, err := backend.(recording.WriterBackend).WriteTo(stdout)
		return err
	}
	return backend.(recording.FileBackend).SaveToFile(path)
}

func writeTimeline(rec *recording.Recording, path string) error {
	backend, err := recording.NewBackend("timeline")
	if err != nil {
		return err
	}
	if err := rec.Playback(backend); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	return backend.(recording.FileBackend).SaveToFile(path)
}
