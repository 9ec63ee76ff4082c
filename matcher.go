package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

var (
	ErrEmptyTable     = errors.New("pattern table has no intent groups")
	ErrEmptyTriggers  = errors.New("intent group has no trigger phrases")
	ErrEmptyReplies   = errors.New("intent group has no replies")
	ErrEmptyFallbacks = errors.New("pattern table has no fallback replies")
	ErrGroupMismatch  = errors.New("trigger and reply groups differ in length")
)

// RandomSource picks an index in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// defaultRandom draws from the process-wide generator, which is safe for
// concurrent use.
type defaultRandom struct{}

func (defaultRandom) IntN(n int) int { return rand.IntN(n) }

// NewPatternTable validates the groups and builds an immutable table.
// Trigger phrases are normalized once here so scoring sees them exactly
// as it sees user input.
func NewPatternTable(groups []IntentGroup, fallbacks []string, farewell, greeting string) (*PatternTable, error) {
	if len(groups) == 0 {
		return nil, ErrEmptyTable
	}
	if len(fallbacks) == 0 || hasBlank(fallbacks) {
		return nil, ErrEmptyFallbacks
	}
	if farewell == "" {
		farewell = defaultFarewell
	}
	if greeting == "" {
		greeting = defaultGreeting
	}

	pt := &PatternTable{
		names:         make([]string, len(groups)),
		triggerGroups: make([][]string, len(groups)),
		replyGroups:   make([][]string, len(groups)),
		phraseTokens:  make([][][]string, len(groups)),
		fallbacks:     append([]string(nil), fallbacks...),
		farewell:      farewell,
		greeting:      greeting,
	}

	for g, group := range groups {
		label := group.Name
		if label == "" {
			label = fmt.Sprintf("#%d", g)
		}
		if len(group.Triggers) == 0 {
			return nil, fmt.Errorf("group %s: %w", label, ErrEmptyTriggers)
		}
		if len(group.Replies) == 0 || hasBlank(group.Replies) {
			return nil, fmt.Errorf("group %s: %w", label, ErrEmptyReplies)
		}

		pt.names[g] = group.Name
		pt.triggerGroups[g] = append([]string(nil), group.Triggers...)
		pt.replyGroups[g] = append([]string(nil), group.Replies...)

		tokens := make([][]string, len(group.Triggers))
		for p, phrase := range group.Triggers {
			tokens[p] = tokenize(Normalize(phrase))
		}
		pt.phraseTokens[g] = tokens
	}

	return pt, nil
}

// newPatternTableFromGroups builds a table from the two parallel
// collections directly.
func newPatternTableFromGroups(triggerGroups, replyGroups [][]string, fallbacks []string, farewell, greeting string) (*PatternTable, error) {
	if len(triggerGroups) != len(replyGroups) {
		return nil, fmt.Errorf("%d trigger groups, %d reply groups: %w",
			len(triggerGroups), len(replyGroups), ErrGroupMismatch)
	}
	groups := make([]IntentGroup, len(triggerGroups))
	for i := range triggerGroups {
		groups[i] = IntentGroup{Triggers: triggerGroups[i], Replies: replyGroups[i]}
	}
	return NewPatternTable(groups, fallbacks, farewell, greeting)
}

// Len returns the number of intent groups
func (pt *PatternTable) Len() int { return len(pt.triggerGroups) }

// TriggerGroups returns a copy of the trigger phrases, group by group
func (pt *PatternTable) TriggerGroups() [][]string { return copyGroups(pt.triggerGroups) }

// ReplyGroups returns a copy of the replies, group by group
func (pt *PatternTable) ReplyGroups() [][]string { return copyGroups(pt.replyGroups) }

func (pt *PatternTable) Fallbacks() []string { return append([]string(nil), pt.fallbacks...) }

func (pt *PatternTable) Farewell() string { return pt.farewell }

func (pt *PatternTable) Greeting() string { return pt.greeting }

// GroupName returns the informational name of group g, or "" if unnamed
// or out of range.
func (pt *PatternTable) GroupName(g int) string {
	if g < 0 || g >= len(pt.names) {
		return ""
	}
	return pt.names[g]
}

func (pt *PatternTable) triggerCount() int {
	n := 0
	for _, triggers := range pt.triggerGroups {
		n += len(triggers)
	}
	return n
}

func hasBlank(items []string) bool {
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return true
		}
	}
	return false
}

func copyGroups(src [][]string) [][]string {
	out := make([][]string, len(src))
	for i, group := range src {
		out[i] = append([]string(nil), group...)
	}
	return out
}

// Match scores normalized input against every trigger phrase.
//
// A phrase scores the fraction of its tokens found anywhere in the input.
// Only a strict improvement over the running maximum replaces the
// candidate, so the first phrase to reach the top score wins. Whenever the
// running maximum improves and clears the threshold a reply is drawn from
// that phrase's group; the final maximum decides whether it is returned.
func (pt *PatternTable) Match(normalized string, threshold float64, rnd RandomSource) MatchResult {
	inputTokens := tokenize(normalized)
	if len(inputTokens) == 0 {
		return MatchResult{Group: -1}
	}

	inInput := make(map[string]struct{}, len(inputTokens))
	for _, tok := range inputTokens {
		inInput[tok] = struct{}{}
	}

	maxScore := 0.0
	bestReply := ""
	bestGroup := -1

	for g, phrases := range pt.phraseTokens {
		for _, phraseTokens := range phrases {
			if len(phraseTokens) == 0 {
				continue
			}

			// Repeated phrase tokens each count on their own.
			matchCount := 0
			for _, tok := range phraseTokens {
				if _, ok := inInput[tok]; ok {
					matchCount++
				}
			}

			score := float64(matchCount) / float64(len(phraseTokens))
			if score > maxScore {
				maxScore = score
				if maxScore >= threshold {
					bestReply = pickOne(pt.replyGroups[g], rnd)
					bestGroup = g
				}
			}
		}
	}

	if maxScore >= threshold && bestGroup >= 0 {
		return MatchResult{Reply: bestReply, Matched: true, Score: maxScore, Group: bestGroup}
	}
	return MatchResult{Score: maxScore, Group: -1}
}

// pickOne returns a uniformly chosen element of a non-empty slice.
// Out-of-range picks from a misbehaving source are clamped.
func pickOne(items []string, rnd RandomSource) string {
	if rnd == nil {
		rnd = defaultRandom{}
	}
	i := rnd.IntN(len(items))
	if i < 0 || i >= len(items) {
		i = 0
	}
	return items[i]
}
