// Command genimage writes the edge detector test image, a 352x288 ASCII
// PGM gray ramp, to output.pgm in the current directory.
//
// Usage:
//
//	genimage
//
// Logging is controlled by the LOG_FILE, JSON_LOG and DEBUG environment
// variables.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/MarlonBando/EdgeDetector-FPGA/cmd/genimage/internal/cfg"
	"github.com/MarlonBando/EdgeDetector-FPGA/testimage"
)

func init() {
	flag.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "Usage: %s\n\nWrites a %dx%d test image to %s.\n", os.Args[0], testimage.Width, testimage.Height, testimage.OutputFile)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	lg, stop, err := initLog(cfg.LogFile, cfg.JSONHandler, cfg.Verbose)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	cfg.Log = lg

	err = run(testimage.OutputFile)
	if err != nil {
		cfg.Log.Error("failed to create the test image", "error", err)
	}
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(filename string) error {
	if err := testimage.WriteFile(filename); err != nil {
		return err
	}
	cfg.Log.Info("image created successfully", "filename", filename, "width", testimage.Width, "height", testimage.Height)
	return nil
}

// initLog initialises the logging and returns the Logger. If the filename is
// not empty, the file will be opened, and the logger output will be switched
// to that file. Returns the initialised logger, stop function and an error,
// if any. The stop function must be called before exit, it will close the log
// file, if it is open.
func initLog(filename string, jsonHandler bool, verbose bool) (*slog.Logger, func(), error) {
	var opts = &slog.HandlerOptions{
		Level: iftrue(verbose, slog.LevelDebug, slog.LevelInfo),
	}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if jsonHandler {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	stop := func() {}
	if filename != "" {
		lf, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
		if err != nil {
			return slog.Default(), stop, fmt.Errorf("failed to create the log file: %w", err)
		}
		log.SetOutput(lf) // redirect the standard log to the file just in case, panics will be logged there.

		h = slog.NewTextHandler(lf, opts)
		if jsonHandler {
			h = slog.NewJSONHandler(lf, opts)
		}
		stop = func() {
			if err := lf.Close(); err != nil {
				slog.Warn("failed to close the log file", "err", err)
			}
		}
	}
	slog.SetDefault(slog.New(h))
	slog.Debug("logging initialised", "filename", filename, "json", jsonHandler)

	return slog.Default(), stop, nil
}

func iftrue[T any](cond bool, t T, f T) T {
	if cond {
		return t
	}
	return f
}
