package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-slice/split"
	"gopkg.in/yaml.v3"
)

// File is the schema for slicing presets. Every field is optional; unset
// fields keep their default.
type File struct {
	Tempo     *int  `json:"tempo" yaml:"tempo"`
	NoteValue *int  `json:"note_value" yaml:"note_value"`
	Beats     *int  `json:"beats" yaml:"beats"`
	Silence   *bool `json:"silence" yaml:"silence"`

	TrimLeading   *bool    `json:"trim_leading" yaml:"trim_leading"`
	TrimTrailing  *bool    `json:"trim_trailing" yaml:"trim_trailing"`
	TrimThreshold *float64 `json:"trim_threshold_dbfs" yaml:"trim_threshold_dbfs"`

	SilenceThreshold *float64 `json:"silence_threshold_dbfs" yaml:"silence_threshold_dbfs"`
	AttackMs         *int     `json:"attack_ms" yaml:"attack_ms"`
	ReleaseMs        *int     `json:"release_ms" yaml:"release_ms"`
	Hold             *int     `json:"hold_samples" yaml:"hold_samples"`
}

// Load reads a preset file and applies it on top of default options.
// Files ending in .yaml or .yml are parsed as YAML, anything else as JSON.
func Load(path string) (*split.Options, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &f)
	default:
		err = json.Unmarshal(b, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}

	o := split.DefaultOptions()
	if err := ApplyFile(&o, &f); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return &o, nil
}

// ApplyFile applies a parsed preset file onto existing options.
func ApplyFile(dst *split.Options, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination options")
	}
	if f == nil {
		return nil
	}

	if f.Tempo != nil {
		if *f.Tempo <= 0 {
			return fmt.Errorf("tempo must be > 0")
		}
		dst.Tempo = *f.Tempo
	}
	if f.NoteValue != nil {
		if *f.NoteValue <= 0 {
			return fmt.Errorf("note_value must be > 0")
		}
		dst.NoteValue = *f.NoteValue
	}
	if f.Beats != nil {
		if *f.Beats <= 0 {
			return fmt.Errorf("beats must be > 0")
		}
		dst.Beats = *f.Beats
	}
	if f.Silence != nil {
		dst.Silence = *f.Silence
	}

	if f.TrimLeading != nil {
		dst.TrimLeading = *f.TrimLeading
	}
	if f.TrimTrailing != nil {
		dst.TrimTrailing = *f.TrimTrailing
	}
	if f.TrimThreshold != nil {
		dst.TrimThreshold = *f.TrimThreshold
	}

	if f.SilenceThreshold != nil {
		dst.SilenceThreshold = *f.SilenceThreshold
	}
	if f.AttackMs != nil {
		if *f.AttackMs < 0 {
			return fmt.Errorf("attack_ms must be >= 0")
		}
		dst.AttackMs = *f.AttackMs
	}
	if f.ReleaseMs != nil {
		if *f.ReleaseMs < 0 {
			return fmt.Errorf("release_ms must be >= 0")
		}
		dst.ReleaseMs = *f.ReleaseMs
	}
	if f.Hold != nil {
		if *f.Hold < 0 {
			return fmt.Errorf("hold_samples must be >= 0")
		}
		dst.Hold = *f.Hold
	}
	return nil
}
