package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestSpeechSecondsFloor(t *testing.T) {
	// Even a one-character script gets the 30 second floor.
	if got := SpeechSeconds(1); got != 30 {
		t.Errorf("Expected 30 seconds for 1 character, got %f", got)
	}
	if got := SpeechSeconds(0); got != 30 {
		t.Errorf("Expected 30 seconds for empty text, got %f", got)
	}
}

func TestSpeechSecondsNoUpperCap(t *testing.T) {
	// 75000 chars = 15000 words = 100 minutes.
	if got := SpeechSeconds(75000); got != 6000 {
		t.Errorf("Expected 6000 seconds for 75000 characters, got %f", got)
	}
}

func TestSpeechSecondsMonotonic(t *testing.T) {
	prev := 0.0
	for _, chars := range []int{0, 1, 10, 100, 1000, 11250, 11251, 50000, 200000} {
		got := SpeechSeconds(chars)
		if got < prev {
			t.Errorf("SpeechSeconds(%d) = %f, less than previous %f", chars, got, prev)
		}
		prev = got
	}
}

func TestSynthesizePlaceholderDeterministic(t *testing.T) {
	first, err := SynthesizePlaceholder(1234)
	if err != nil {
		t.Fatalf("SynthesizePlaceholder failed: %v", err)
	}
	second, err := SynthesizePlaceholder(1234)
	if err != nil {
		t.Fatalf("SynthesizePlaceholder failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Expected byte-identical output for identical input")
	}
}

func TestWAVHeaderFields(t *testing.T) {
	samples := Samples(SpeechSeconds(100))
	n := len(samples)

	data, err := EncodeWAV(samples)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	if len(data) != 44+n*2 {
		t.Fatalf("Expected %d bytes (44-byte header + %d sample bytes), got %d", 44+n*2, n*2, len(data))
	}

	if string(data[0:4]) != "RIFF" {
		t.Errorf("Expected RIFF marker, got %q", data[0:4])
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != uint32(36+n*2) {
		t.Errorf("Expected RIFF chunk size %d, got %d", 36+n*2, got)
	}
	if string(data[8:12]) != "WAVE" {
		t.Errorf("Expected WAVE marker, got %q", data[8:12])
	}
	if string(data[12:16]) != "fmt " {
		t.Errorf("Expected fmt chunk, got %q", data[12:16])
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != NumChannels {
		t.Errorf("Expected %d channel, got %d", NumChannels, got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != SampleRate {
		t.Errorf("Expected sample rate %d, got %d", SampleRate, got)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != BitDepth {
		t.Errorf("Expected bit depth %d, got %d", BitDepth, got)
	}
	if string(data[36:40]) != "data" {
		t.Errorf("Expected data chunk, got %q", data[36:40])
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != uint32(n*2) {
		t.Errorf("Expected data chunk size %d, got %d", n*2, got)
	}
}

func TestSamplesEnvelope(t *testing.T) {
	samples := Samples(1)
	if len(samples) != SampleRate {
		t.Fatalf("Expected %d samples for 1 second, got %d", SampleRate, len(samples))
	}
	// First sample is at t=0: zero attack, zero sine.
	if samples[0] != 0 {
		t.Errorf("Expected silence at t=0, got %d", samples[0])
	}
	for i, s := range samples {
		if s > 32767 || s < -32768 {
			t.Fatalf("Sample %d out of int16 range: %d", i, s)
		}
	}
}
