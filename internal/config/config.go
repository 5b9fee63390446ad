// Package config loads server configuration from the environment and the
// optional voice profile file. Everything is resolved once at startup and
// immutable afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hanifra/studycast/server/domain"
)

const (
	defaultPort             = "8080"
	defaultAudioDir         = "generated_audio"
	defaultExtractorCommand = "python3 scripts/pdf_text_extractor.py"
	defaultTTSCommand       = "python3 scripts/tts_generate.py"
	defaultExtractorTimeout = 120 * time.Second
	defaultTTSTimeout       = 75 * time.Second
	defaultArtifactTTL      = 10 * time.Minute
	defaultMaxScriptChars   = 5000
	defaultMaxUploadBytes   = 16 << 20
)

// Config is the server's runtime configuration.
type Config struct {
	Port             string
	AudioDir         string
	ExtractorCommand string
	ExtractorTimeout time.Duration
	TTSCommand       string
	TTSTimeout       time.Duration
	ArtifactTTL      time.Duration
	MaxScriptChars   int
	MaxUploadBytes   int64
	MaxSubprocesses  int
	VoicesFile       string
}

// Load reads configuration from the environment, after loading a local
// .env file when one exists.
func Load(logger *zap.Logger) Config {
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env file")
	}

	cfg := Config{
		Port:             getEnv("PORT", defaultPort),
		AudioDir:         getEnv("AUDIO_DIR", defaultAudioDir),
		ExtractorCommand: getEnv("EXTRACTOR_COMMAND", defaultExtractorCommand),
		ExtractorTimeout: getDuration("EXTRACTOR_TIMEOUT", defaultExtractorTimeout, logger),
		TTSCommand:       getEnv("TTS_COMMAND", defaultTTSCommand),
		TTSTimeout:       getDuration("TTS_TIMEOUT", defaultTTSTimeout, logger),
		ArtifactTTL:      getDuration("ARTIFACT_TTL", defaultArtifactTTL, logger),
		MaxScriptChars:   getInt("MAX_SCRIPT_CHARS", defaultMaxScriptChars, logger),
		MaxUploadBytes:   int64(getInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes, logger)),
		MaxSubprocesses:  getInt("MAX_SUBPROCESSES", 0, logger),
		VoicesFile:       os.Getenv("VOICES_FILE"),
	}
	return cfg
}

// LoadVoiceProfiles reads the voice table from a YAML file. An empty path
// or a missing file yields the built-in defaults.
func LoadVoiceProfiles(path string, logger *zap.Logger) (domain.VoiceProfiles, error) {
	if path == "" {
		return domain.DefaultVoiceProfiles(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("Voice profile file not found, using defaults", zap.String("path", path))
			return domain.DefaultVoiceProfiles(), nil
		}
		return domain.VoiceProfiles{}, fmt.Errorf("read voice profiles: %w", err)
	}

	var file struct {
		Voices []domain.VoiceProfile `yaml:"voices"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.VoiceProfiles{}, fmt.Errorf("parse voice profiles: %w", err)
	}
	if len(file.Voices) == 0 {
		return domain.VoiceProfiles{}, fmt.Errorf("voice profile file %s declares no voices", path)
	}
	for _, v := range file.Voices {
		if v.Label == "" || v.Language == "" {
			return domain.VoiceProfiles{}, fmt.Errorf("voice profile file %s has an entry without label or language", path)
		}
	}
	logger.Info("Loaded voice profiles", zap.String("path", path), zap.Int("count", len(file.Voices)))
	return domain.NewVoiceProfiles(file.Voices), nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration, logger *zap.Logger) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn("Invalid duration in environment, using default",
			zap.String("key", key),
			zap.String("value", value),
			zap.Duration("default", fallback))
		return fallback
	}
	return d
}

func getInt(key string, fallback int, logger *zap.Logger) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn("Invalid integer in environment, using default",
			zap.String("key", key),
			zap.String("value", value),
			zap.Int("default", fallback))
		return fallback
	}
	return n
}
