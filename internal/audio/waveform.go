// Package audio produces the deterministic placeholder waveform used when
// real speech synthesis is unavailable, and estimates spoken duration for
// display labels. Both share the same word-count base so the placeholder's
// length and the label shown to the user never disagree.
package audio

import (
	"fmt"
	"math"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// SampleRate is fixed for every placeholder artifact.
	SampleRate = 22050
	// BitDepth of the emitted PCM samples.
	BitDepth = 16
	// NumChannels is mono.
	NumChannels = 1

	toneFrequency = 440.0
	amplitude     = 0.15
	attackSlope   = 10.0
	decayRate     = 0.5

	wordsPerMinute = 150.0
	charsPerWord   = 5.0
	minSeconds     = 30.0
)

// SpeechSeconds estimates how long charCount characters take to narrate at
// an average reading pace, floored at 30 seconds so even a one-character
// script yields an obviously intentional artifact. There is no upper cap.
func SpeechSeconds(charCount int) float64 {
	words := float64(charCount) / charsPerWord
	seconds := words / wordsPerMinute * 60
	if seconds < minSeconds {
		seconds = minSeconds
	}
	return seconds
}

// Samples renders the placeholder tone for the given duration: a single
// soft 440 Hz bell with a fast attack and exponential decay. Recognizably
// intentional audio rather than silence. Pure and deterministic.
func Samples(seconds float64) []int {
	n := int(seconds * SampleRate)
	data := make([]int, n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		attack := math.Min(1, attackSlope*t)
		decay := math.Exp(-decayRate * t)
		v := math.Sin(2*math.Pi*toneFrequency*t) * amplitude * attack * decay
		data[i] = int(math.Round(v * 32767))
	}
	return data
}

// SynthesizePlaceholder produces a complete WAV artifact sized from the
// character count of the script it stands in for. The container is a
// standard 44-byte linear-PCM header followed by the samples; identical
// inputs produce byte-identical output.
func SynthesizePlaceholder(charCount int) ([]byte, error) {
	return EncodeWAV(Samples(SpeechSeconds(charCount)))
}

// EncodeWAV wraps 16-bit mono samples in a RIFF/WAVE container.
func EncodeWAV(samples []int) ([]byte, error) {
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: NumChannels, SampleRate: SampleRate},
		SourceBitDepth: BitDepth,
		Data:           samples,
	}
	w := &seekBuffer{}
	enc := wav.NewEncoder(w, SampleRate, BitDepth, NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close wav encoder: %w", err)
	}
	return w.Bytes(), nil
}
