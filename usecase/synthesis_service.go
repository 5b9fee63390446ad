package usecase

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hanifra/studycast/server/domain"
	"github.com/hanifra/studycast/server/domain/repositories"
	"github.com/hanifra/studycast/server/internal/artifacts"
	"github.com/hanifra/studycast/server/internal/audio"
)

// continuationNotice is appended when a script is truncated before being
// sent to the external backend.
const continuationNotice = " ... The full script continues beyond this audio preview."

// fallbackWarning is the non-alarming message attached to placeholder
// results.
const fallbackWarning = "Natural speech synthesis is temporarily unavailable, so a placeholder tone matching the estimated narration length was generated instead."

// SynthesisService orchestrates speech synthesis. It never fails: when the
// external backend errors in any way, the deterministic placeholder stands
// in and the caller only sees a warning string.
type SynthesisService struct {
	primary  repositories.SpeechSynthesizer
	fallback repositories.SpeechSynthesizer
	voices   domain.VoiceProfiles
	store    *artifacts.Manager
	maxChars int
	logger   *zap.Logger
}

// NewSynthesisService creates the orchestrator. maxChars bounds the text
// sent to the external backend; <= 0 defaults to 5000.
func NewSynthesisService(
	primary repositories.SpeechSynthesizer,
	fallback repositories.SpeechSynthesizer,
	voices domain.VoiceProfiles,
	store *artifacts.Manager,
	maxChars int,
	logger *zap.Logger,
) *SynthesisService {
	if maxChars <= 0 {
		maxChars = 5000
	}
	return &SynthesisService{
		primary:  primary,
		fallback: fallback,
		voices:   voices,
		store:    store,
		maxChars: maxChars,
		logger:   logger,
	}
}

// Synthesize cleans and bounds the script, attempts the external backend,
// and falls back to the placeholder on any failure. The placeholder is
// sized from the original pre-truncation text so its duration matches what
// the full script would have run.
func (s *SynthesisService) Synthesize(ctx context.Context, text string, opts domain.VoiceOptions) domain.SynthesisResult {
	profile := s.voices.Resolve(opts.Voice)
	if opts.Voice != "" && opts.Voice != profile.Label {
		s.logger.Info("Unknown voice label, using default",
			zap.String("requested", opts.Voice),
			zap.String("resolved", profile.Label))
	}

	cleaned := cleanScript(text)
	sendText := cleaned
	if len(cleaned) > s.maxChars {
		// Back up to a rune boundary so the cut never produces invalid
		// UTF-8.
		cut := s.maxChars
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		sendText = cleaned[:cut] + continuationNotice
		s.logger.Info("Script truncated for synthesis",
			zap.Int("originalChars", len(cleaned)),
			zap.Int("sentChars", len(sendText)))
	}

	id := uuid.New().String()
	duration := audio.EstimateDuration(cleaned)

	if s.primary != nil {
		result, err := s.primary.Synthesize(ctx, domain.SynthesisRequest{
			Text:       sendText,
			Profile:    profile,
			OutputPath: filepath.Join(s.store.Dir(), id+".mp3"),
		})
		if err == nil {
			s.store.RegisterFile(id, result.AudioPath)
			result.ArtifactID = id
			result.Duration = duration
			result.Voice = profile.Label
			return result
		}
		s.logger.Warn("Speech synthesis backend failed, falling back to placeholder",
			zap.String("voice", profile.Label),
			zap.Error(err))
	}

	result, err := s.fallback.Synthesize(ctx, domain.SynthesisRequest{
		Text:       cleaned,
		Profile:    profile,
		OutputPath: filepath.Join(s.store.Dir(), id+".wav"),
	})
	if err != nil {
		// The placeholder is pure in-memory synthesis; this path is
		// effectively unreachable but the contract still holds.
		s.logger.Error("Placeholder synthesis failed", zap.Error(err))
		result = domain.SynthesisResult{}
	}

	switch {
	case result.AudioPath != "":
		s.store.RegisterFile(id, result.AudioPath)
	case len(result.AudioData) > 0:
		s.store.RegisterData(id, result.AudioData)
	}
	result.ArtifactID = id
	result.Duration = duration
	result.Voice = profile.Label
	result.IsFallback = true
	result.Warning = fallbackWarning
	return result
}

var (
	markdownLink  = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	markupTokens  = regexp.MustCompile("[#*_`~>|]+")
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// cleanScript strips structural markup and control sequences from
// generated script text and collapses whitespace, leaving plain prose for
// the synthesis backend to read.
func cleanScript(text string) string {
	text = markdownLink.ReplaceAllString(text, "$1")
	text = markupTokens.ReplaceAllString(text, " ")
	text = strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
