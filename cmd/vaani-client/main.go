// vaani-client relays one recorded utterance through a running vaani daemon
// and saves the translated audio chunks to disk. It drives the same
// conversation session machinery a UI would, with files standing in for the
// microphone and the speaker.
//
// Usage:
//
//	vaani-client --server http://localhost:3000 --from hi-IN --to kn-IN --audio utterance.webm
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vaani-labs/vaani/internal/conversation"
	"github.com/vaani-labs/vaani/internal/relay"
)

func main() {
	server := flag.String("server", "http://localhost:3000", "base URL of the vaani daemon")
	fromLang := flag.String("from", "hi-IN", "language spoken in the recording")
	toLang := flag.String("to", "kn-IN", "language to translate into")
	audioPath := flag.String("audio", "", "path to the recorded audio file (webm)")
	outDir := flag.String("out", ".", "directory to write translated audio chunks into")
	flag.Parse()

	if *audioPath == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: --audio")
		os.Exit(2)
	}

	session, err := conversation.NewSession(
		*fromLang, *toLang,
		&fileRecorder{path: *audioPath},
		httpHandler(*server),
		&filePlayer{dir: *outDir},
	)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	session.PressMic(ctx, relay.SpeakerA) // start "recording"
	session.PressMic(ctx, relay.SpeakerA) // stop, translate, play

	if notices := session.Notices(); len(notices) > 0 {
		for _, notice := range notices {
			fmt.Fprintln(os.Stderr, notice)
		}
		os.Exit(1)
	}
	for _, turn := range session.Turns() {
		fmt.Printf("heard:      %s\n", turn.OriginalText)
		fmt.Printf("translated: %s\n", turn.TranslatedText)
		fmt.Printf("audio:      %d chunk(s) written to %s\n", len(turn.AudioChunks), *outDir)
	}
}

// httpHandler adapts the daemon's REST endpoint to a relay.Handler.
func httpHandler(baseURL string) relay.Handler {
	return func(ctx context.Context, req *relay.TranslationRequest) (*relay.TranslationResult, error) {
		payload, err := json.Marshal(map[string]string{
			"audio_base64": base64.StdEncoding.EncodeToString(req.Audio),
			"from_lang":    req.FromLang,
			"to_lang":      req.ToLang,
		})
		if err != nil {
			return nil, err
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
			baseURL+"/api/voice-translate", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			var errBody struct {
				Error string `json:"error"`
			}
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
				return nil, fmt.Errorf("%s", errBody.Error)
			}
			return nil, fmt.Errorf("relay returned status %d", resp.StatusCode)
		}

		var result relay.TranslationResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("decoding relay response: %w", err)
		}
		return &result, nil
	}
}

// fileRecorder satisfies conversation.Recorder with a pre-recorded file.
type fileRecorder struct {
	path string
}

func (r *fileRecorder) Start(speaker relay.Speaker) error { return nil }

func (r *fileRecorder) Stop() ([]byte, string, error) {
	audio, err := os.ReadFile(r.path)
	if err != nil {
		return nil, "", err
	}
	return audio, relay.DefaultContentType, nil
}

// filePlayer satisfies playback.Player by writing each chunk to a WAV file.
type filePlayer struct {
	dir string
	n   int
}

func (p *filePlayer) Play(ctx context.Context, chunk string) error {
	audio, err := base64.StdEncoding.DecodeString(chunk)
	if err != nil {
		return err
	}
	p.n++
	name := filepath.Join(p.dir, fmt.Sprintf("chunk_%03d.wav", p.n))
	return os.WriteFile(name, audio, 0o644)
}
