package split

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Mode selects a slicing strategy. It is implemented by Tempo, Beats and
// Silence.
type Mode interface {
	mode()
}

// Tempo slices on a fixed grid of note values at a given tempo.
type Tempo struct {
	// BPM is the tempo in beats per minute.
	BPM int `validate:"gt=0"`
	// NoteValue is the grid denominator (4 = quarter notes).
	NoteValue int `validate:"gt=0"`
	// TrimLeading and TrimTrailing drop silence at the buffer edges before
	// the grid is applied.
	TrimLeading  bool
	TrimTrailing bool
	// Threshold is the trim level in dBFS.
	Threshold float64 `validate:"lte=0"`
}

// Beats slices into a fixed number of equal segments.
type Beats struct {
	Count int `validate:"gt=0"`
}

// Silence keeps the sound regions between detected silence gaps.
type Silence struct {
	// Threshold is the silence level in dBFS.
	Threshold float64 `validate:"lte=0"`
	// AttackMs is kept before each detected onset.
	AttackMs int `validate:"gte=0"`
	// ReleaseMs of silence is required to end a region.
	ReleaseMs int `validate:"gte=0"`
	// Hold is the number of loud samples that confirm an onset.
	// Zero selects segment.DefaultHold.
	Hold int `validate:"gte=0"`
}

func (Tempo) mode()   {}
func (Beats) mode()   {}
func (Silence) mode() {}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate checks the parameter ranges of m. Split does not call it.
func Validate(m Mode) error {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	if m == nil {
		return ErrNoMode
	}
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid %T: %w", m, err)
	}
	return nil
}
