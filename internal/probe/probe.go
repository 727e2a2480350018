// Package probe reads WAV format descriptors and compares them against the
// fixed acceptance target (mono, 16 kHz, 16-bit PCM). Only the RIFF header
// is read; sample data never leaves the file.
package probe

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// formatPCM is the WAVE format tag for uncompressed linear PCM.
const formatPCM = 1

// Spec holds the format descriptor of a WAV file.
type Spec struct {
	AudioFormat   int // WAVE format tag; 1 = PCM.
	Channels      int
	SampleRate    int // Hz
	BitsPerSample int
}

// Target is the only spec the denoising backends accept.
var Target = Spec{
	AudioFormat:   formatPCM,
	Channels:      1,
	SampleRate:    16000,
	BitsPerSample: 16,
}

// IsTarget reports whether the file matches the acceptance target exactly.
func (s Spec) IsTarget() bool { return s == Target }

// String renders the spec for diagnostics, e.g. "2ch 44100Hz 16-bit (format 1)".
func (s Spec) String() string {
	return fmt.Sprintf("%dch %dHz %d-bit (format %d)", s.Channels, s.SampleRate, s.BitsPerSample, s.AudioFormat)
}

// Probe opens path and parses its WAV format descriptor. A file that cannot
// be opened or parsed returns an error; callers treat that as fatal because
// the walk only yields *.wav names, so an unparseable one suggests
// corruption rather than a routine format mismatch.
func Probe(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spec{}, fmt.Errorf("open WAV file %q: %w", path, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return Spec{}, fmt.Errorf("parse WAV header %q: %w", path, err)
	}
	if d.NumChans == 0 || d.SampleRate == 0 || d.BitDepth == 0 {
		return Spec{}, fmt.Errorf("parse WAV header %q: missing fmt chunk", path)
	}

	return Spec{
		AudioFormat:   int(d.WavAudioFormat),
		Channels:      int(d.NumChans),
		SampleRate:    int(d.SampleRate),
		BitsPerSample: int(d.BitDepth),
	}, nil
}
