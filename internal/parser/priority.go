// Package parser holds the two pure text grammars of the system: the
// priority notation recognizer and the assistant directive scanner. Both are
// forgiving by design; anything that does not match is simply not a match.
package parser

import "strings"

// Priority is a parsed (urgency, importance) pair, both in [1,3].
type Priority struct {
	Urgency    int
	Importance int
}

const (
	urgencyGlyph    = '!'
	importanceGlyph = '$'
)

// ParsePriority recognizes a single word-like token as priority notation.
// Two mutually exclusive forms are tried in order:
//
//  1. shorthand: the token contains both 'u' and 'i', each immediately
//     followed by one decimal digit ("u2i3", "i1u3"). A letter without its
//     digit, or only one of the two letters, rejects the whole token.
//  2. symbols: the token consists exclusively of '!' (urgency) and '$'
//     (importance); the count of each glyph is the value, an absent glyph
//     defaults to 1. Any foreign character rejects the token so ordinary
//     punctuation-bearing words are never consumed.
//
// Values are clamped to [1,3]. ok is false when the token is not priority
// notation at all, letting callers treat it as title text instead.
func ParsePriority(token string) (p Priority, ok bool) {
	if p, ok = parseShorthand(token); ok {
		return p, true
	}
	return parseSymbols(token)
}

func parseShorthand(token string) (Priority, bool) {
	lower := strings.ToLower(token)
	u, ok := digitAfter(lower, 'u')
	if !ok {
		return Priority{}, false
	}
	i, ok := digitAfter(lower, 'i')
	if !ok {
		return Priority{}, false
	}
	return Priority{Urgency: clamp(u), Importance: clamp(i)}, true
}

// digitAfter finds the first occurrence of letter and returns the decimal
// digit immediately following it. Missing letter or missing digit both fail;
// the grammar never defaults one side of a shorthand pair.
func digitAfter(s string, letter byte) (int, bool) {
	idx := strings.IndexByte(s, letter)
	if idx < 0 || idx+1 >= len(s) {
		return 0, false
	}
	d := s[idx+1]
	if d < '0' || d > '9' {
		return 0, false
	}
	return int(d - '0'), true
}

func parseSymbols(token string) (Priority, bool) {
	var urgency, importance int
	for _, r := range token {
		switch r {
		case urgencyGlyph:
			urgency++
		case importanceGlyph:
			importance++
		default:
			return Priority{}, false
		}
	}
	if urgency == 0 && importance == 0 {
		return Priority{}, false
	}
	if urgency == 0 {
		urgency = 1
	}
	if importance == 0 {
		importance = 1
	}
	return Priority{Urgency: clamp(urgency), Importance: clamp(importance)}, true
}

func clamp(v int) int {
	if v < 1 {
		return 1
	}
	if v > 3 {
		return 3
	}
	return v
}

// SplitTitle tokenizes free text on whitespace, extracting priority notation
// from the words. The last priority token wins; the remaining words joined
// by single spaces form the title. found reports whether any priority token
// was seen.
func SplitTitle(input string) (title string, p Priority, found bool) {
	p = Priority{Urgency: 1, Importance: 1}
	var words []string
	for _, word := range strings.Fields(input) {
		if parsed, ok := ParsePriority(word); ok {
			p = parsed
			found = true
			continue
		}
		words = append(words, word)
	}
	return strings.Join(words, " "), p, found
}
