package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cwbudde/algo-slice/analysis"
	"github.com/cwbudde/algo-slice/internal/config"
	"github.com/cwbudde/algo-slice/internal/wavio"
	"github.com/cwbudde/algo-slice/split"
)

// levelFloor replaces -Inf levels of silent slices in log output.
const levelFloor = -200.0

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "loop-slice error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	inv, err := parseArgs(args, cfg, stderr)
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(stderr)

	buf, err := wavio.Read(inv.input)
	if err != nil {
		return err
	}
	logger.Info("decoded input",
		"path", inv.input,
		"sample_rate", buf.Header.SampleRate,
		"channels", buf.Header.NumChannels,
		"bit_depth", buf.Header.BitDepth,
		"samples", buf.Len(),
		"mode", fmt.Sprintf("%+v", inv.mode),
	)

	slices := split.Split(buf, inv.mode)
	if len(slices) == 0 {
		logger.Warn("no slices produced; input is below the threshold", "path", inv.input)
		return nil
	}

	paths, err := wavio.WriteAll(ctx, inv.outputDir, inv.name, slices, inv.workers)
	if err != nil {
		return err
	}
	for i, p := range paths {
		st := analysis.Measure(slices[i])
		logger.Info("wrote slice",
			"index", i,
			"path", p,
			"frames", st.Frames,
			"duration_s", st.Duration,
			"peak_dbfs", analysis.Finite(st.PeakDBFS, levelFloor),
			"rms_dbfs", analysis.Finite(st.RMSDBFS, levelFloor),
		)
	}
	logger.Info("done", "slices", len(paths), "output_dir", inv.outputDir)
	return nil
}
