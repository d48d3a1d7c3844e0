// Package http implements the HTTP transport for the translation relay.
//
// This transport exposes the voice-translate REST endpoint, optionally serves
// the static conversation page assets, and hosts the Swagger UI. It is the
// transport browsers talk to.
package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vaani-labs/vaani/internal/config"
	"github.com/vaani-labs/vaani/internal/relay"
	"github.com/vaani-labs/vaani/internal/relayerr"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// maxBodyBytes caps the request body; base64 audio of a long utterance
// stays well under this.
const maxBodyBytes = 25 << 20 // 25 MB

// translateRequest is the wire shape of POST /api/voice-translate.
type translateRequest struct {
	AudioBase64 string `json:"audio_base64"`
	FromLang    string `json:"from_lang"`
	ToLang      string `json:"to_lang"`
}

// errorResponse is the wire shape of every non-200 response.
type errorResponse struct {
	Error string `json:"error"`
}

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port      int
	staticDir string
	server    *http.Server
}

// New creates a new HTTP transport from config.
func New(cfg config.HTTPConfig) *Transport {
	return &Transport{port: cfg.Port, staticDir: cfg.StaticDir}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// routes builds the transport's mux around the given handler.
func (t *Transport) routes(handler relay.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// POST /api/voice-translate — the relay endpoint.
	mux.HandleFunc("POST /api/voice-translate", func(w http.ResponseWriter, r *http.Request) {
		t.handleTranslate(w, r, handler)
	})

	// Any other method on the endpoint is answered explicitly, matching the
	// API contract rather than the mux's default plain-text 405.
	mux.HandleFunc("/api/voice-translate", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Swagger UI — serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Static page assets (conversation UI). Content types come from file
	// extensions; missing files are 404s.
	if t.staticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(t.staticDir)))
	}

	return mux
}

// Listen starts the HTTP server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler relay.Handler) error {
	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           t.routes(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "port", t.port, "static_dir", t.staticDir)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// handleTranslate processes a POST /api/voice-translate request.
//
// @Summary     Translate a voice recording
// @Description Accepts base64-encoded audio with source and target language codes.
// @Description The audio is transcribed, the transcript translated, and the translation
// @Description synthesized as ordered audio chunks, all of which are returned together.
// @Tags        translate
// @Accept      json
// @Produce     json
// @Param       request  body      translateRequest  true  "Recorded utterance and translation direction"
// @Success     200  {object}  relay.TranslationResult  "Transcript pair and synthesized audio chunks"
// @Failure     400  {object}  errorResponse  "Missing fields, unsupported language, or unintelligible audio"
// @Failure     405  {object}  errorResponse  "Wrong method"
// @Failure     500  {object}  errorResponse  "Provider-stage failure"
// @Router      /api/voice-translate [post]
func (t *Transport) handleTranslate(w http.ResponseWriter, r *http.Request, handler relay.Handler) {
	var req translateRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.AudioBase64 == "" || req.FromLang == "" || req.ToLang == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: audio_base64, from_lang, to_lang")
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid base64 audio payload")
		return
	}

	result, err := handler(r.Context(), &relay.TranslationRequest{
		Audio:    audio,
		FromLang: req.FromLang,
		ToLang:   req.ToLang,
	})
	if err != nil {
		// The cause stays in logs; callers only ever see the safe message.
		slog.Error("voice translation failed", "error", err)
		writeError(w, relayerr.HTTPStatus(err), relayerr.PublicMessage(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
