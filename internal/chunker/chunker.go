// Package chunker splits text into bounded segments for synthesis.
//
// The TTS provider caps how much text a single call may carry, so translated
// text is cut into chunks that each fit under the cap. Cuts prefer sentence
// boundaries, then word boundaries, and only then fall back to a hard break.
package chunker

import "strings"

// Split cuts text into ordered chunks of at most maxLen characters.
//
// The splitting rule, per chunk: search backward from maxLen for a period;
// if there is none, or it sits before the midpoint, search backward for a
// space instead; if neither exists, cut hard at maxLen. The boundary
// character stays with the chunk it terminates. Chunks and the remainder are
// trimmed of surrounding whitespace, so concatenating the chunks reproduces
// the input up to whitespace at split points.
//
// Lengths are counted in runes, never splitting a multi-byte character.
// Empty input yields nil; maxLen < 1 yields the whole text as one chunk.
//
// TODO: treat the danda (U+0964) as a sentence boundary alongside the period.
func Split(text string, maxLen int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if maxLen < 1 || len(runes) <= maxLen {
		return []string{text}
	}

	var chunks []string
	remaining := runes
	for len(remaining) > 0 {
		if len(remaining) <= maxLen {
			chunks = append(chunks, string(remaining))
			break
		}

		window := remaining[:maxLen]
		splitAt := lastIndex(window, '.')
		if splitAt == -1 || splitAt < maxLen/2 {
			splitAt = lastIndex(window, ' ')
		}

		var chunk, rest []rune
		if splitAt == -1 {
			chunk, rest = remaining[:maxLen], remaining[maxLen:]
		} else {
			chunk, rest = remaining[:splitAt+1], remaining[splitAt+1:]
		}

		// A chunk that trims to nothing is skipped rather than emitted;
		// the remainder still shrinks every iteration, so the loop ends.
		if s := strings.TrimSpace(string(chunk)); s != "" {
			chunks = append(chunks, s)
		}
		remaining = []rune(strings.TrimSpace(string(rest)))
	}
	return chunks
}

func lastIndex(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
