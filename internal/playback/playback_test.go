package playback

import (
	"context"
	"errors"
	"testing"
)

// recordingPlayer logs play calls and fails on configured chunks. The
// inFlight flag trips if a second Play starts before the first returns.
type recordingPlayer struct {
	played   []string
	failOn   map[string]bool
	inFlight bool
	overlap  bool
}

func (p *recordingPlayer) Play(ctx context.Context, chunk string) error {
	if p.inFlight {
		p.overlap = true
	}
	p.inFlight = true
	defer func() { p.inFlight = false }()

	p.played = append(p.played, chunk)
	if p.failOn[chunk] {
		return errors.New("decode error")
	}
	return nil
}

func TestPlayAllInOrder(t *testing.T) {
	player := &recordingPlayer{}
	seq := NewSequencer(player)
	if err := seq.PlayAll(context.Background(), []string{"c1", "c2", "c3"}); err != nil {
		t.Fatal(err)
	}
	want := []string{"c1", "c2", "c3"}
	if len(player.played) != len(want) {
		t.Fatalf("played %v", player.played)
	}
	for i := range want {
		if player.played[i] != want[i] {
			t.Errorf("position %d: played %q, want %q", i, player.played[i], want[i])
		}
	}
	if player.overlap {
		t.Error("chunks overlapped")
	}
}

func TestFailedChunkIsSkippedNotFatal(t *testing.T) {
	player := &recordingPlayer{failOn: map[string]bool{"c2": true}}
	seq := NewSequencer(player)
	if err := seq.PlayAll(context.Background(), []string{"c1", "c2", "c3"}); err != nil {
		t.Fatalf("sequence should complete despite chunk failure: %v", err)
	}
	if len(player.played) != 3 {
		t.Errorf("all 3 chunks should be attempted, got %v", player.played)
	}
	if player.overlap {
		t.Error("chunks overlapped")
	}
}

func TestEmptySequenceCompletesImmediately(t *testing.T) {
	player := &recordingPlayer{}
	seq := NewSequencer(player)
	if err := seq.PlayAll(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if len(player.played) != 0 {
		t.Errorf("nothing should play for an empty sequence, got %v", player.played)
	}
}

func TestCancellationStopsBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	player := &recordingPlayer{}
	seq := NewSequencer(player)
	err := seq.PlayAll(ctx, []string{"c1", "c2"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(player.played) != 0 {
		t.Errorf("cancelled sequence still played %v", player.played)
	}
}
