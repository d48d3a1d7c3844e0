// Package conversation models a two-party translated conversation session.
//
// Each session owns its own state — there are no process-wide globals — and
// enforces strict turn-taking: one participant records, the relay processes,
// the translation plays back, and only then may either participant record
// again. Mic presses during processing or playback are ignored, not queued.
package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vaani-labs/vaani/internal/language"
	"github.com/vaani-labs/vaani/internal/playback"
	"github.com/vaani-labs/vaani/internal/relay"
	"github.com/vaani-labs/vaani/internal/relayerr"
)

// State is the session's position in the turn-taking cycle.
type State string

const (
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StateProcessing State = "processing"
	StatePlaying    State = "playing"
)

// micPermissionNotice is shown when audio capture cannot start.
const micPermissionNotice = "Microphone access is required. Please allow microphone permission."

// Recorder captures audio for one utterance. Start begins capture for a
// speaker; Stop ends it and returns the encoded audio and its MIME type.
type Recorder interface {
	Start(speaker relay.Speaker) error
	Stop() (audio []byte, contentType string, err error)
}

// MicControl is the presented state of one mic button.
type MicControl struct {
	Enabled bool
	Label   string
}

// Controls is a snapshot of both mic buttons.
type Controls struct {
	A MicControl
	B MicControl
}

// Session drives one two-party conversation. Speaker A talks fromLang,
// speaker B talks toLang; each utterance is translated toward the listener.
type Session struct {
	fromLang string
	toLang   string
	recorder Recorder
	handle   relay.Handler
	seq      *playback.Sequencer

	mu      sync.Mutex
	state   State
	active  relay.Speaker
	turns   []relay.Turn
	notices []string
}

// NewSession creates a session between two supported languages.
func NewSession(fromLang, toLang string, recorder Recorder, handle relay.Handler, player playback.Player) (*Session, error) {
	for _, code := range []string{fromLang, toLang} {
		if !language.Supported(code) {
			return nil, relayerr.Validation("Unsupported language code: " + code)
		}
	}
	return &Session{
		fromLang: fromLang,
		toLang:   toLang,
		recorder: recorder,
		handle:   handle,
		seq:      playback.NewSequencer(player),
		state:    StateIdle,
	}, nil
}

// PressMic handles one mic button press and returns the resulting state.
//
// From idle it starts recording for the speaker. Pressing the same mic again
// stops capture and runs the turn through the relay, playing the translation
// before returning to idle — PressMic blocks for the whole turn. Presses
// during processing or playback, or on the other mic while recording, are
// ignored.
func (s *Session) PressMic(ctx context.Context, speaker relay.Speaker) State {
	s.mu.Lock()
	switch s.state {
	case StateProcessing, StatePlaying:
		defer s.mu.Unlock()
		return s.state

	case StateRecording:
		if s.active != speaker {
			defer s.mu.Unlock()
			return s.state
		}
		s.state = StateProcessing
		s.mu.Unlock()
		s.runTurn(ctx, speaker)
		return s.currentState()

	default: // StateIdle
		if err := s.recorder.Start(speaker); err != nil {
			s.notices = append(s.notices, micPermissionNotice)
			defer s.mu.Unlock()
			return s.state
		}
		s.state = StateRecording
		s.active = speaker
		defer s.mu.Unlock()
		return s.state
	}
}

// runTurn carries a stopped recording through the relay and playback.
// Whatever happens, the session ends up idle with both mics enabled.
func (s *Session) runTurn(ctx context.Context, speaker relay.Speaker) {
	defer func() {
		s.mu.Lock()
		s.state = StateIdle
		s.active = ""
		s.mu.Unlock()
	}()

	audio, contentType, err := s.recorder.Stop()
	if err != nil {
		s.addNotice(relayerr.PublicMessage(err))
		return
	}

	// Speaker A talks fromLang; speaker B talks toLang. Translation always
	// runs toward the listener.
	speakerLang, listenerLang := s.fromLang, s.toLang
	if speaker == relay.SpeakerB {
		speakerLang, listenerLang = s.toLang, s.fromLang
	}

	result, err := s.handle(ctx, &relay.TranslationRequest{
		Audio:       audio,
		ContentType: contentType,
		FromLang:    speakerLang,
		ToLang:      listenerLang,
	})
	if err != nil {
		s.addNotice(relayerr.PublicMessage(err))
		return
	}

	s.mu.Lock()
	s.turns = append(s.turns, relay.Turn{
		ID:             uuid.New(),
		Speaker:        speaker,
		OriginalText:   result.OriginalText,
		TranslatedText: result.TranslatedText,
		AudioChunks:    result.AudioChunks,
		FromLang:       speakerLang,
		ToLang:         listenerLang,
		At:             time.Now(),
	})
	s.state = StatePlaying
	s.mu.Unlock()

	_ = s.seq.PlayAll(ctx, result.AudioChunks)
}

// Replay plays back a past turn's audio. It is ignored unless the session
// is idle.
func (s *Session) Replay(ctx context.Context, turnID uuid.UUID) State {
	s.mu.Lock()
	if s.state != StateIdle {
		defer s.mu.Unlock()
		return s.state
	}
	var chunks []string
	for _, turn := range s.turns {
		if turn.ID == turnID {
			chunks = turn.AudioChunks
			break
		}
	}
	if chunks == nil {
		defer s.mu.Unlock()
		return s.state
	}
	s.state = StatePlaying
	s.mu.Unlock()

	_ = s.seq.PlayAll(ctx, chunks)

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
	return StateIdle
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.currentState()
}

func (s *Session) currentState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Turns returns a copy of the append-only conversation log.
func (s *Session) Turns() []relay.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]relay.Turn(nil), s.turns...)
}

// Notices returns the error entries shown alongside the conversation.
func (s *Session) Notices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.notices...)
}

func (s *Session) addNotice(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, text)
}

// Controls reports how both mic buttons should be presented for the
// current state.
func (s *Session) Controls() Controls {
	s.mu.Lock()
	defer s.mu.Unlock()

	nameA, _ := language.Name(s.fromLang)
	nameB, _ := language.Name(s.toLang)

	switch s.state {
	case StateRecording:
		c := Controls{
			A: MicControl{Enabled: s.active == relay.SpeakerA, Label: nameA},
			B: MicControl{Enabled: s.active == relay.SpeakerB, Label: nameB},
		}
		if s.active == relay.SpeakerA {
			c.A.Label = "Recording..."
		} else {
			c.B.Label = "Recording..."
		}
		return c
	case StateProcessing:
		return Controls{
			A: MicControl{Label: "Translating..."},
			B: MicControl{Label: "Translating..."},
		}
	case StatePlaying:
		return Controls{
			A: MicControl{Label: "Playing..."},
			B: MicControl{Label: "Playing..."},
		}
	default:
		return Controls{
			A: MicControl{Enabled: true, Label: nameA},
			B: MicControl{Enabled: true, Label: nameB},
		}
	}
}
