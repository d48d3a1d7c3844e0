// Package relayerr defines the error taxonomy for the translation relay.
//
// Every pipeline stage fails with a kinded error carrying two layers: a
// SafeMessage fit for end users, and the wrapped Cause kept for operators.
// Transports map kinds to HTTP statuses here so callers never see raw
// provider errors.
package relayerr

import (
	"errors"
	"net/http"
	"strings"
)

// Kind identifies which stage of the relay an error belongs to.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindConfiguration   Kind = "configuration"
	KindRecognition     Kind = "recognition"
	KindEmptyTranscript Kind = "empty_transcript"
	KindTranslation     Kind = "translation"
	KindSynthesis       Kind = "synthesis"
)

// GenericMessage is what callers see when an error carries no kind at all.
const GenericMessage = "Translation failed. Please try again."

// Error is a kinded relay error.
type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return GenericMessage
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindValidation:
		return "Missing required fields: audio_base64, from_lang, to_lang"
	case KindConfiguration:
		return "Server configuration error: missing API key"
	case KindRecognition:
		return "Speech recognition failed. Please speak clearly and try again."
	case KindEmptyTranscript:
		return "Could not understand audio. Please try again."
	case KindTranslation:
		return "Translation failed. Please try again."
	case KindSynthesis:
		return "Audio generation failed. Please try again."
	default:
		return GenericMessage
	}
}

// New builds a kinded error. An empty safeMessage selects the kind's default.
func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{Kind: kind, SafeMessage: msg, Cause: cause}
}

func Validation(msg string) error { return New(KindValidation, msg, nil) }

func Configuration(cause error) error { return New(KindConfiguration, "", cause) }

func Recognition(cause error) error { return New(KindRecognition, "", cause) }

func EmptyTranscript() error { return New(KindEmptyTranscript, "", nil) }

func Translation(cause error) error { return New(KindTranslation, "", cause) }

func Synthesis(cause error) error { return New(KindSynthesis, "", cause) }

// KindOf extracts the kind from err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// PublicMessage returns the text safe to show a caller. Errors outside the
// taxonomy collapse to the generic message; their detail stays in logs.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return GenericMessage
}

// HTTPStatus maps an error to the response status the relay exposes.
// Caller mistakes and unintelligible audio are 400s; everything else,
// including errors outside the taxonomy, is a 500.
func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case KindValidation, KindEmptyTranscript:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
