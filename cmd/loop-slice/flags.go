package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/algo-slice/internal/config"
	"github.com/cwbudde/algo-slice/internal/wavio"
	"github.com/cwbudde/algo-slice/preset"
	"github.com/cwbudde/algo-slice/split"
)

var errMissingInput = errors.New("missing -input")

// invocation is a fully resolved command line.
type invocation struct {
	input     string
	outputDir string
	name      string
	workers   int
	mode      split.Mode
}

type settings struct {
	input   string
	output  string
	name    string
	preset  string
	workers string
}

func newFlagSet(o *split.Options, s *settings, cfg *config.Config, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("loop-slice", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&s.input, "input", "", "Path of the WAV loop to slice (required)")
	fs.StringVar(&s.output, "output", cfg.OutputDir, "Directory for the slice files")
	fs.StringVar(&s.name, "name", "", "Base name of the slice files (default: input file name)")
	fs.StringVar(&s.preset, "preset", cfg.Preset, "Preset file (.json, .yaml or .yml) applied before flags")
	fs.StringVar(&s.workers, "workers", cfg.Workers, "Parallel file writers: integer >= 1 or 'auto'")

	fs.IntVar(&o.Tempo, "tempo", o.Tempo, "Tempo of the loop in BPM (tempo mode)")
	fs.IntVar(&o.NoteValue, "note", o.NoteValue, "Note value of one slice in tempo mode (4 = quarter)")
	fs.BoolVar(&o.TrimLeading, "trim-leading", o.TrimLeading, "Drop leading silence before slicing in tempo mode")
	fs.BoolVar(&o.TrimTrailing, "trim-trailing", o.TrimTrailing, "Drop trailing silence before slicing in tempo mode")
	fs.Float64Var(&o.TrimThreshold, "trim-threshold", o.TrimThreshold, "Trim silence threshold in dBFS")

	fs.IntVar(&o.Beats, "beats", o.Beats, "Number of equal slices (beats mode)")

	fs.BoolVar(&o.Silence, "silence", o.Silence, "Slice at silence gaps (silence mode)")
	fs.Float64Var(&o.SilenceThreshold, "threshold", o.SilenceThreshold, "Silence threshold in dBFS")
	fs.IntVar(&o.AttackMs, "attack", o.AttackMs, "Audio kept before each detected onset, in ms")
	fs.IntVar(&o.ReleaseMs, "release", o.ReleaseMs, "Silence required to end a slice, in ms")
	fs.IntVar(&o.Hold, "hold", o.Hold, "Loud samples required to confirm an onset")
	return fs
}

// parseArgs resolves defaults, the optional preset and the flags, in that
// order of precedence from lowest to highest. Passing -tempo, -beats or
// -silence discards the mode selected by the preset.
func parseArgs(args []string, cfg *config.Config, out io.Writer) (*invocation, error) {
	// First pass only locates the preset and the explicitly passed mode flags.
	var first settings
	firstOpts := split.DefaultOptions()
	pre := newFlagSet(&firstOpts, &first, cfg, io.Discard)
	if err := pre.Parse(args); err != nil {
		// Report usage and errors through the real flag set below.
		first.preset = cfg.Preset
	}
	modeFlag := false
	pre.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tempo", "beats", "silence":
			modeFlag = true
		}
	})

	opts := split.DefaultOptions()
	if strings.TrimSpace(first.preset) != "" {
		loaded, err := preset.Load(first.preset)
		if err != nil {
			return nil, err
		}
		opts = *loaded
	}
	// A mode flag replaces the preset's mode instead of adding to it.
	if modeFlag {
		opts.Tempo, opts.Beats, opts.Silence = 0, 0, false
	}

	var s settings
	fs := newFlagSet(&opts, &s, cfg, out)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if strings.TrimSpace(s.input) == "" {
		return nil, errMissingInput
	}

	mode, err := opts.Mode()
	if err != nil {
		return nil, err
	}
	workers, err := config.ParseWorkers(s.workers)
	if err != nil {
		return nil, fmt.Errorf("invalid -workers %w", err)
	}
	name := s.name
	if name == "" {
		name = wavio.BaseName(s.input)
	}
	return &invocation{
		input:     s.input,
		outputDir: s.output,
		name:      name,
		workers:   workers,
		mode:      mode,
	}, nil
}
