// Package playback sequences translated audio chunks through a player.
//
// The relay returns an ordered list of audio chunks; playback must preserve
// that order and never overlap two chunks. A chunk that fails to play is
// skipped, not fatal — the sequence always runs to the end.
package playback

import (
	"context"
	"log/slog"
)

// Player plays a single base64-encoded audio chunk to completion. Play
// returns once the chunk has fully finished or failed to decode/play.
type Player interface {
	Play(ctx context.Context, chunk string) error
}

// Sequencer plays chunk sequences in order through a Player.
type Sequencer struct {
	player Player
}

// NewSequencer creates a sequencer over the given player.
func NewSequencer(player Player) *Sequencer {
	return &Sequencer{player: player}
}

// PlayAll plays every chunk in order, one at a time. A chunk's playback
// error advances to the next chunk; the only early exit is context
// cancellation, checked between chunks. An empty sequence completes
// immediately.
func (s *Sequencer) PlayAll(ctx context.Context, chunks []string) error {
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.player.Play(ctx, chunk); err != nil {
			slog.Warn("audio chunk playback failed, skipping", "chunk", i, "chunks", len(chunks), "error", err)
		}
	}
	return nil
}
