/**
 * @description
 * Width-aware text wrapping for fixed-layout documents. Lines are packed
 * greedily against a rendered-width limit supplied by the caller, so the
 * same routine works for any font and size.
 */
package pdf

import "strings"

// token is one wrappable unit. glued tokens came from splitting a word after
// a hyphen and rejoin their predecessor without a space.
type token struct {
	text  string
	glued bool
}

// tokenize splits s on whitespace, then splits each word after every hyphen.
// The hyphen stays attached to the left piece so the rendered text is
// unchanged when the pieces land on the same line.
func tokenize(s string) []token {
	var tokens []token
	for _, word := range strings.Fields(s) {
		pieces := strings.SplitAfter(word, "-")
		for i, piece := range pieces {
			if piece == "" {
				continue
			}
			tokens = append(tokens, token{text: piece, glued: i > 0})
		}
	}
	return tokens
}

// wrapText breaks s into lines whose rendered width stays under maxWidth.
// Words are packed greedily in order; a single token wider than maxWidth is
// hard-broken character by character rather than overflowing the line.
func wrapText(s string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	var line string

	flush := func() {
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
	}

	appendToken := func(tok token) {
		if line == "" {
			line = tok.text
			return
		}
		joined := line + " " + tok.text
		if tok.glued {
			joined = line + tok.text
		}
		if measure(joined) <= maxWidth {
			line = joined
			return
		}
		flush()
		line = tok.text
	}

	for _, tok := range tokenize(s) {
		if measure(tok.text) <= maxWidth {
			appendToken(tok)
			continue
		}
		// The token alone exceeds the limit; break it into the largest
		// character runs that still fit.
		flush()
		var chunk string
		for _, r := range tok.text {
			next := chunk + string(r)
			if chunk != "" && measure(next) > maxWidth {
				lines = append(lines, chunk)
				chunk = string(r)
				continue
			}
			chunk = next
		}
		line = chunk
	}
	flush()
	return lines
}
