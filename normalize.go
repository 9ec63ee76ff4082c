package main

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	digitPattern = regexp.MustCompile(`\d`)

	// Multi-word entries are matched as units; alternation order matters.
	stopPhrasePattern = regexp.MustCompile(`\b(a|an|the|is|me|i feel|please|can you|tell me|what is|how to|about)\b`)

	whitespaceRunPattern = regexp.MustCompile(`\s{2,}`)

	rewrites = []struct {
		pattern     *regexp.Regexp
		replacement string
	}{
		{regexp.MustCompile(`\br u\b`), "are you"},
		{regexp.MustCompile(`\bwhats\b`), "what is"},
	}
)

// normalizeStep is one named stage of the normalization pipeline
type normalizeStep struct {
	name  string
	apply func(string) string
}

// normalizePipeline lists the stages in the order they run. Each stage
// consumes the output of the previous one.
var normalizePipeline = []normalizeStep{
	{"lowercase", lowercase},
	{"strip_punctuation", stripPunctuation},
	{"trim", trimSpace},
	{"strip_digits", stripDigits},
	{"remove_stop_phrases", removeStopPhrases},
	{"rewrite", applyRewrites},
	{"trim", trimSpace},
	{"collapse_whitespace", collapseWhitespace},
}

// Normalize canonicalizes raw text for comparison:
//   - Lowercase conversion
//   - Punctuation removal
//   - Digit removal
//   - Stop phrase removal and shorthand rewrites
//   - Whitespace normalization
//
// It accepts any string and never fails; the result may be empty.
func Normalize(raw string) string {
	text := raw
	for _, step := range normalizePipeline {
		text = step.apply(text)
	}
	return text
}

// lowercase applies full Unicode lower-case mapping.
// A Caser keeps state, so one is built per call.
func lowercase(text string) string {
	return cases.Lower(language.Und).String(text)
}

// stripPunctuation drops every rune that is neither an ASCII word
// character nor whitespace. Unicode spaces become plain spaces.
func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case isWordChar(r):
			return r
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, text)
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

func trimSpace(text string) string {
	return strings.TrimSpace(text)
}

func stripDigits(text string) string {
	return digitPattern.ReplaceAllString(text, "")
}

// removeStopPhrases replaces each whole-token stop phrase with a space.
// The gaps left behind are collapsed later in the pipeline.
func removeStopPhrases(text string) string {
	return stopPhrasePattern.ReplaceAllString(text, " ")
}

func applyRewrites(text string) string {
	for _, rw := range rewrites {
		text = rw.pattern.ReplaceAllString(text, rw.replacement)
	}
	return text
}

func collapseWhitespace(text string) string {
	return whitespaceRunPattern.ReplaceAllString(text, " ")
}

// tokenize splits normalized text on whitespace, dropping empty tokens
func tokenize(text string) []string {
	return strings.Fields(text)
}
