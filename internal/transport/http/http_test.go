package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vaani-labs/vaani/internal/config"
	"github.com/vaani-labs/vaani/internal/relay"
	"github.com/vaani-labs/vaani/internal/relayerr"
)

func testMux(handler relay.Handler) *http.ServeMux {
	t := New(config.HTTPConfig{Port: 0})
	return t.routes(handler)
}

func postJSON(mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/voice-translate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v (%s)", err, rec.Body.String())
	}
	return body.Error
}

func TestTranslateHappyPath(t *testing.T) {
	var got *relay.TranslationRequest
	handler := func(ctx context.Context, req *relay.TranslationRequest) (*relay.TranslationResult, error) {
		got = req
		return &relay.TranslationResult{
			OriginalText:   "नमस्ते",
			TranslatedText: "ನಮಸ್ಕಾರ",
			AudioChunks:    []string{"QUJD"},
			FromLang:       req.FromLang,
			ToLang:         req.ToLang,
		}, nil
	}

	audio := base64.StdEncoding.EncodeToString([]byte("webm-bytes"))
	rec := postJSON(testMux(handler), `{"audio_base64":"`+audio+`","from_lang":"hi-IN","to_lang":"kn-IN"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if string(got.Audio) != "webm-bytes" {
		t.Errorf("decoded audio = %q", got.Audio)
	}

	var result relay.TranslationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.OriginalText != "नमस्ते" || len(result.AudioChunks) != 1 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestTranslateWrongMethod(t *testing.T) {
	mux := testMux(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/voice-translate", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Method not allowed" {
		t.Errorf("error = %q", msg)
	}
}

func TestTranslateMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"missing to_lang", `{"audio_base64":"QUJD","from_lang":"hi-IN"}`},
		{"missing audio", `{"from_lang":"hi-IN","to_lang":"kn-IN"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := func(ctx context.Context, req *relay.TranslationRequest) (*relay.TranslationResult, error) {
				called = true
				return nil, nil
			}
			rec := postJSON(testMux(handler), tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			if msg := decodeError(t, rec); msg != "Missing required fields: audio_base64, from_lang, to_lang" {
				t.Errorf("error = %q", msg)
			}
			if called {
				t.Error("handler ran for an invalid request")
			}
		})
	}
}

func TestTranslateInvalidBase64(t *testing.T) {
	rec := postJSON(testMux(nil), `{"audio_base64":"not-base64!!","from_lang":"hi-IN","to_lang":"kn-IN"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestTranslateInvalidJSON(t *testing.T) {
	rec := postJSON(testMux(nil), `{"audio_base64":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	audio := base64.StdEncoding.EncodeToString([]byte("x"))
	body := `{"audio_base64":"` + audio + `","from_lang":"hi-IN","to_lang":"kn-IN"}`

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "empty transcript is a caller problem",
			err:        relayerr.EmptyTranscript(),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Could not understand audio. Please try again.",
		},
		{
			name:       "synthesis failure is a server problem",
			err:        relayerr.Synthesis(errors.New("status 500: internal detail")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Audio generation failed. Please try again.",
		},
		{
			name:       "unknown errors collapse to the generic message",
			err:        errors.New("panic-adjacent internals"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    relayerr.GenericMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(ctx context.Context, req *relay.TranslationRequest) (*relay.TranslationResult, error) {
				return nil, tt.err
			}
			rec := postJSON(testMux(handler), body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if msg := decodeError(t, rec); msg != tt.wantMsg {
				t.Errorf("error = %q, want %q", msg, tt.wantMsg)
			}
			if strings.Contains(rec.Body.String(), "internal detail") {
				t.Error("provider detail leaked to the caller")
			}
		})
	}
}
