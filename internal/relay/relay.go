// Package relay defines the core data types flowing through the translation
// relay pipeline.
package relay

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultContentType is the MIME type browsers record microphone audio in.
const DefaultContentType = "audio/webm"

// TranslationRequest is one utterance to relay: recorded audio plus the
// direction to translate in. It is consumed once and never persisted.
type TranslationRequest struct {
	// Audio is the raw encoded audio payload.
	Audio []byte `json:"-"`

	// ContentType is the MIME type of Audio. Empty means DefaultContentType.
	ContentType string `json:"content_type,omitempty"`

	// FromLang is the language spoken in Audio.
	FromLang string `json:"from_lang"`

	// ToLang is the language to translate into.
	ToLang string `json:"to_lang"`
}

// TranslationResult is the full outcome of one pipeline run. Ownership
// passes to the caller; the relay retains nothing.
type TranslationResult struct {
	// OriginalText is the transcript recognized from the audio.
	OriginalText string `json:"original_text"`

	// TranslatedText is the transcript rendered in ToLang.
	TranslatedText string `json:"translated_text"`

	// AudioChunks holds base64-encoded synthesized audio, one entry per
	// text chunk, in text order.
	AudioChunks []string `json:"audio_chunks"`

	FromLang string `json:"from_lang"`
	ToLang   string `json:"to_lang"`
}

// Handler runs one utterance through the pipeline. Every transport is handed
// the same Handler by the daemon.
type Handler func(ctx context.Context, req *TranslationRequest) (*TranslationResult, error)

// Speaker identifies one of the two conversation participants.
type Speaker string

const (
	SpeakerA Speaker = "a"
	SpeakerB Speaker = "b"
)

// Other returns the opposite participant.
func (s Speaker) Other() Speaker {
	if s == SpeakerA {
		return SpeakerB
	}
	return SpeakerA
}

// Turn is one recorded-and-translated utterance in a conversation. Turns are
// append-only: once created they are never mutated or deleted for the life
// of the session.
type Turn struct {
	ID             uuid.UUID `json:"id"`
	Speaker        Speaker   `json:"speaker"`
	OriginalText   string    `json:"original_text"`
	TranslatedText string    `json:"translated_text"`
	AudioChunks    []string  `json:"audio_chunks"`
	FromLang       string    `json:"from_lang"`
	ToLang         string    `json:"to_lang"`
	At             time.Time `json:"at"`
}
