package split

import (
	"errors"

	"github.com/cwbudde/algo-slice/segment"
)

// Mode selection errors.
var (
	ErrMultipleModes = errors.New("cannot specify more than one of tempo, beats or silence")
	ErrNoMode        = errors.New("must specify one of tempo, beats or silence")
)

// Options is the flat option surface shared by the CLI and preset files.
// Exactly one of Tempo > 0, Beats > 0 or Silence selects the mode.
type Options struct {
	Tempo     int
	NoteValue int
	Beats     int
	Silence   bool

	TrimLeading   bool
	TrimTrailing  bool
	TrimThreshold float64

	SilenceThreshold float64
	AttackMs         int
	ReleaseMs        int
	Hold             int
}

// DefaultOptions returns options with every default filled in and no mode
// selected.
func DefaultOptions() Options {
	return Options{
		NoteValue:        4,
		TrimThreshold:    -40,
		SilenceThreshold: -30,
		AttackMs:         1,
		ReleaseMs:        750,
		Hold:             segment.DefaultHold,
	}
}

// Mode builds and validates the selected mode.
func (o Options) Mode() (Mode, error) {
	selected := 0
	for _, on := range []bool{o.Tempo != 0, o.Beats != 0, o.Silence} {
		if on {
			selected++
		}
	}
	switch {
	case selected > 1:
		return nil, ErrMultipleModes
	case selected == 0:
		return nil, ErrNoMode
	}

	var m Mode
	switch {
	case o.Tempo != 0:
		m = Tempo{
			BPM:          o.Tempo,
			NoteValue:    o.NoteValue,
			TrimLeading:  o.TrimLeading,
			TrimTrailing: o.TrimTrailing,
			Threshold:    o.TrimThreshold,
		}
	case o.Beats != 0:
		m = Beats{Count: o.Beats}
	default:
		m = Silence{
			Threshold: o.SilenceThreshold,
			AttackMs:  o.AttackMs,
			ReleaseMs: o.ReleaseMs,
			Hold:      o.Hold,
		}
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}
