package tts

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/hanifra/studycast/server/domain"
	"github.com/hanifra/studycast/server/internal/audio"
)

func TestPlaceholderWritesWAV(t *testing.T) {
	p := NewPlaceholder(zaptest.NewLogger(t))

	outPath := filepath.Join(t.TempDir(), "fallback.wav")
	result, err := p.Synthesize(context.Background(), domain.SynthesisRequest{
		Text:       "a short script",
		Profile:    domain.VoiceProfile{Label: "professional", Language: "en", Accent: "com"},
		OutputPath: outPath,
	})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if result.AudioPath != outPath {
		t.Errorf("Expected audio at %s, got %s", outPath, result.AudioPath)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Artifact missing: %v", err)
	}
	if string(data[0:4]) != "RIFF" {
		t.Errorf("Expected WAV artifact, got leading bytes %q", data[0:4])
	}

	want, err := audio.SynthesizePlaceholder(len("a short script"))
	if err != nil {
		t.Fatalf("SynthesizePlaceholder failed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Error("Expected artifact identical to direct synthesis of the same text length")
	}
}

func TestPlaceholderInlineWhenDirUnwritable(t *testing.T) {
	p := NewPlaceholder(zaptest.NewLogger(t))

	result, err := p.Synthesize(context.Background(), domain.SynthesisRequest{
		Text:       "hello",
		Profile:    domain.VoiceProfile{Label: "professional"},
		OutputPath: filepath.Join(t.TempDir(), "missing", "nested", "fallback.wav"),
	})
	if err != nil {
		t.Fatalf("Synthesize must not fail: %v", err)
	}
	if result.AudioPath != "" {
		t.Errorf("Expected no file path, got %s", result.AudioPath)
	}
	if len(result.AudioData) == 0 {
		t.Error("Expected inline audio data")
	}
}
