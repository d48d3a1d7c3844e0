// Package sarvam implements the speech provider client against the Sarvam AI
// REST APIs.
//
// One provider covers all three pipeline stages: Saarika for speech-to-text
// (multipart upload), Mayura for translation (JSON), and Bulbul for
// text-to-speech (JSON). Every call authenticates with the same subscription
// key header. There is no retry; each method is a single request whose
// failure is reported with the stage's error kind.
package sarvam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/vaani-labs/vaani/internal/config"
	"github.com/vaani-labs/vaani/internal/relayerr"
)

const (
	sttPath       = "/speech-to-text"
	translatePath = "/translate"
	ttsPath       = "/text-to-speech"

	// authHeader carries the shared subscription key on every request.
	authHeader = "api-subscription-key"

	// maxErrBody caps how much of a provider error body is kept for logs.
	maxErrBody = 2048
)

// Client calls the Sarvam speech APIs.
type Client struct {
	baseURL        string
	apiKey         string
	sttModel       string
	translateModel string
	ttsModel       string
	client         *http.Client
}

// New creates a provider client from config. A missing API key is a fatal
// configuration error, reported before any request is attempted.
func New(cfg config.ProviderConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, relayerr.Configuration(fmt.Errorf("provider.api_key is empty (set SARVAM_API_KEY)"))
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		sttModel:       cfg.STTModel,
		translateModel: cfg.TranslateModel,
		ttsModel:       cfg.TTSModel,
		client:         &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// SpeechToText uploads recorded audio and returns the raw transcript.
// The transcript may be blank; judging blankness is the pipeline's job.
func (c *Client) SpeechToText(ctx context.Context, audio []byte, contentType, lang string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "recording"+extFromContentType(contentType))
	if err != nil {
		return "", relayerr.Recognition(fmt.Errorf("creating form file: %w", err))
	}
	if _, err := io.Copy(part, bytes.NewReader(audio)); err != nil {
		return "", relayerr.Recognition(fmt.Errorf("writing audio: %w", err))
	}
	_ = writer.WriteField("language_code", lang)
	_ = writer.WriteField("model", c.sttModel)
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sttPath, body)
	if err != nil {
		return "", relayerr.Recognition(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set(authHeader, c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", relayerr.Recognition(fmt.Errorf("speech-to-text request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", relayerr.Recognition(statusErr("speech-to-text", resp))
	}

	var result struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", relayerr.Recognition(fmt.Errorf("decoding transcript: %w", err))
	}

	slog.Debug("speech-to-text complete", "language", lang, "text_length", len(result.Transcript))
	return result.Transcript, nil
}

// Translate renders text from one supported language into another.
func (c *Client) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	reqBody := translateRequest{
		Input:               text,
		SourceLanguageCode:  fromLang,
		TargetLanguageCode:  toLang,
		Model:               c.translateModel,
		EnablePreprocessing: true,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", relayerr.Translation(fmt.Errorf("marshalling translate request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+translatePath, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", relayerr.Translation(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set(authHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", relayerr.Translation(fmt.Errorf("translate request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", relayerr.Translation(statusErr("translate", resp))
	}

	var result struct {
		TranslatedText string `json:"translated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", relayerr.Translation(fmt.Errorf("decoding translation: %w", err))
	}

	slog.Debug("translate complete", "from", fromLang, "to", toLang, "text_length", len(result.TranslatedText))
	return result.TranslatedText, nil
}

// Synthesize converts one bounded text chunk into base64-encoded audio.
func (c *Client) Synthesize(ctx context.Context, text, toLang string) (string, error) {
	reqBody := ttsRequest{
		Text:               text,
		Model:              c.ttsModel,
		TargetLanguageCode: toLang,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", relayerr.Synthesis(fmt.Errorf("marshalling synthesis request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ttsPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", relayerr.Synthesis(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set(authHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", relayerr.Synthesis(fmt.Errorf("text-to-speech request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", relayerr.Synthesis(statusErr("text-to-speech", resp))
	}

	var result ttsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", relayerr.Synthesis(fmt.Errorf("decoding synthesis response: %w", err))
	}

	audio, ok := result.firstAudio()
	if !ok {
		return "", relayerr.Synthesis(fmt.Errorf("text-to-speech response carried no audio"))
	}

	slog.Debug("synthesis complete", "to", toLang, "audio_b64_length", len(audio))
	return audio, nil
}

// --- Internal types and helpers ---

type translateRequest struct {
	Input               string `json:"input"`
	SourceLanguageCode  string `json:"source_language_code"`
	TargetLanguageCode  string `json:"target_language_code"`
	Model               string `json:"model"`
	EnablePreprocessing bool   `json:"enable_preprocessing"`
}

type ttsRequest struct {
	Text               string `json:"text"`
	Model              string `json:"model"`
	TargetLanguageCode string `json:"target_language_code"`
}

// ttsResponse covers both response shapes the API has shipped: the current
// "audios" list and the older scalar "audio". The union is decoded here,
// once, so nothing downstream branches on shape.
type ttsResponse struct {
	Audios []string `json:"audios"`
	Audio  string   `json:"audio"`
}

func (r ttsResponse) firstAudio() (string, bool) {
	if len(r.Audios) > 0 && r.Audios[0] != "" {
		return r.Audios[0], true
	}
	if r.Audio != "" {
		return r.Audio, true
	}
	return "", false
}

// statusErr captures a bounded slice of the provider error body for logs.
func statusErr(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
	return fmt.Errorf("%s failed (status %d): %s", op, resp.StatusCode, body)
}

func extFromContentType(ct string) string {
	switch {
	case strings.Contains(ct, "wav"):
		return ".wav"
	case strings.Contains(ct, "ogg"):
		return ".ogg"
	case strings.Contains(ct, "mp3"), strings.Contains(ct, "mpeg"):
		return ".mp3"
	case strings.Contains(ct, "flac"):
		return ".flac"
	case strings.Contains(ct, "m4a"):
		return ".m4a"
	default:
		return ".webm"
	}
}
