// Package pipeline implements the three-stage translation orchestrator.
//
// The pipeline chains speech-to-text, translation, and chunked text-to-speech
// against the provider, strictly in order: a stage never starts before the
// previous one completes, and synthesis calls run one after another so the
// returned audio chunks match text order. There is no parallel fan-out, no
// retry, and no partial result — the first stage failure aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vaani-labs/vaani/internal/chunker"
	"github.com/vaani-labs/vaani/internal/config"
	"github.com/vaani-labs/vaani/internal/language"
	"github.com/vaani-labs/vaani/internal/relay"
	"github.com/vaani-labs/vaani/internal/relayerr"
)

// DefaultChunkMaxChars bounds a single synthesis call when config is silent.
const DefaultChunkMaxChars = 900

// Provider supplies the three remote stages. It is satisfied by
// provider/sarvam.Client and by test stubs.
type Provider interface {
	SpeechToText(ctx context.Context, audio []byte, contentType, lang string) (string, error)
	Translate(ctx context.Context, text, fromLang, toLang string) (string, error)
	Synthesize(ctx context.Context, text, toLang string) (string, error)
}

// Pipeline orchestrates one utterance through the provider stages.
type Pipeline struct {
	provider      Provider
	chunkMaxChars int
}

// New creates a pipeline over the given provider.
func New(provider Provider, cfg config.PipelineConfig) *Pipeline {
	maxChars := cfg.ChunkMaxChars
	if maxChars < 1 {
		maxChars = DefaultChunkMaxChars
	}
	return &Pipeline{provider: provider, chunkMaxChars: maxChars}
}

// Translate runs the full pipeline for one request.
//
// Stage failures carry a relayerr kind; causes are logged here and never
// surface past the taxonomy's safe message. A blank translation is passed
// through — it produces zero chunks and an empty audio list.
func (p *Pipeline) Translate(ctx context.Context, req *relay.TranslationRequest) (*relay.TranslationResult, error) {
	start := time.Now()
	logger := slog.With("from", req.FromLang, "to", req.ToLang)

	if err := validate(req); err != nil {
		logger.Warn("request rejected", "error", err)
		return nil, err
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = relay.DefaultContentType
	}

	// Stage 1: speech-to-text.
	logger.Debug("recognizing speech", "audio_bytes", len(req.Audio))
	originalText, err := p.provider.SpeechToText(ctx, req.Audio, contentType, req.FromLang)
	if err != nil {
		logger.Error("speech recognition failed", "stage", "stt", "error", err)
		return nil, err
	}
	originalText = strings.TrimSpace(originalText)
	if originalText == "" {
		logger.Warn("blank transcript", "stage", "stt")
		return nil, relayerr.EmptyTranscript()
	}
	logger.Info("speech recognized", "stage", "stt", "text_length", len(originalText))

	// Stage 2: translation. Blank output is passed through unjudged.
	translatedText, err := p.provider.Translate(ctx, originalText, req.FromLang, req.ToLang)
	if err != nil {
		logger.Error("translation failed", "stage", "translate", "error", err)
		return nil, err
	}
	logger.Info("text translated", "stage", "translate", "text_length", len(translatedText))

	// Stage 3: chunked synthesis, sequential to preserve chunk order.
	chunks := chunker.Split(translatedText, p.chunkMaxChars)
	audioChunks := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		audio, err := p.provider.Synthesize(ctx, chunk, req.ToLang)
		if err != nil {
			logger.Error("synthesis failed", "stage", "tts", "chunk", i, "chunks", len(chunks), "error", err)
			return nil, err
		}
		audioChunks = append(audioChunks, audio)
	}
	logger.Info("speech synthesized", "stage", "tts", "chunks", len(chunks))

	logger.Info("pipeline complete", "duration", time.Since(start))
	return &relay.TranslationResult{
		OriginalText:   originalText,
		TranslatedText: translatedText,
		AudioChunks:    audioChunks,
		FromLang:       req.FromLang,
		ToLang:         req.ToLang,
	}, nil
}

func validate(req *relay.TranslationRequest) error {
	if req == nil || len(req.Audio) == 0 || req.FromLang == "" || req.ToLang == "" {
		return relayerr.Validation("")
	}
	for _, code := range []string{req.FromLang, req.ToLang} {
		if !language.Supported(code) {
			return relayerr.Validation(fmt.Sprintf("Unsupported language code: %s", code))
		}
	}
	return nil
}
