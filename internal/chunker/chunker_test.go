package chunker

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   []string
	}{
		{
			name:   "fits whole",
			text:   "Hello world.",
			maxLen: 900,
			want:   []string{"Hello world."},
		},
		{
			name:   "sentence boundary",
			text:   "Hello world. This is a test.",
			maxLen: 15,
			want:   []string{"Hello world.", "This is a test."},
		},
		{
			name:   "hard break without boundaries",
			text:   "abcdefghij",
			maxLen: 5,
			want:   []string{"abcde", "fghij"},
		},
		{
			name:   "space fallback",
			text:   "one two three four",
			maxLen: 9,
			want:   []string{"one two", "three", "four"},
		},
		{
			name:   "period before midpoint falls back to space",
			text:   "a. bcdef ghijklmnop",
			maxLen: 12,
			want:   []string{"a. bcdef", "ghijklmnop"},
		},
		{
			name:   "empty input",
			text:   "   ",
			maxLen: 10,
			want:   nil,
		},
		{
			name:   "multibyte runes survive hard breaks",
			text:   "नमस्ते",
			maxLen: 3,
			want:   []string{"नमस", "्ते"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text, tt.maxLen)
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%q, %d) = %q, want %q", tt.text, tt.maxLen, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitBounds(t *testing.T) {
	// Long mixed text: every chunk must respect the cap, be non-empty, and
	// reconstruct the input once whitespace at the split points is ignored.
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)
	for _, maxLen := range []int{1, 7, 44, 45, 100, 900} {
		chunks := Split(text, maxLen)
		var rebuilt strings.Builder
		for i, c := range chunks {
			if c == "" {
				t.Fatalf("maxLen %d: chunk %d is empty", maxLen, i)
			}
			if n := len([]rune(c)); n > maxLen {
				t.Fatalf("maxLen %d: chunk %d has %d runes", maxLen, i, n)
			}
			rebuilt.WriteString(c)
		}
		squash := func(s string) string { return strings.Join(strings.Fields(s), "") }
		if squash(rebuilt.String()) != squash(text) {
			t.Fatalf("maxLen %d: chunks do not reconstruct the input", maxLen)
		}
	}
}

func TestSplitDegenerateMaxLen(t *testing.T) {
	got := Split("hello", 0)
	if len(got) != 1 || got[0] != "hello" {
		t.Errorf("Split with maxLen 0 = %q", got)
	}
}
