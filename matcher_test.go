package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRandom always picks the same index and counts draws
type fixedRandom struct {
	idx   int
	calls int
}

func (f *fixedRandom) IntN(n int) int {
	f.calls++
	return f.idx
}

func mustTable(t *testing.T, groups ...IntentGroup) *PatternTable {
	t.Helper()
	pt, err := NewPatternTable(groups, []string{"fallback"}, "", "")
	require.NoError(t, err)
	return pt
}

func TestMatch_EmptyInput(t *testing.T) {
	pt := DefaultPatternTable()
	rnd := &fixedRandom{}

	for _, in := range []string{"", "   "} {
		result := pt.Match(in, DefaultThreshold, rnd)
		assert.False(t, result.Matched)
		assert.Equal(t, 0.0, result.Score)
		assert.Equal(t, "", result.Reply)
		assert.Equal(t, -1, result.Group)
	}
	assert.Zero(t, rnd.calls)
}

func TestMatch_ExactPhrase(t *testing.T) {
	pt := DefaultPatternTable()

	result := pt.Match(Normalize("hello"), DefaultThreshold, &fixedRandom{idx: 1})

	assert.True(t, result.Matched)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, 0, result.Group)
	assert.Equal(t, "Hi there!", result.Reply)
}

func TestMatch_ThresholdBoundary(t *testing.T) {
	pt := mustTable(t, IntentGroup{Triggers: []string{"alpha beta"}, Replies: []string{"half"}})

	at := pt.Match("alpha", 0.5, &fixedRandom{})
	assert.True(t, at.Matched)
	assert.Equal(t, 0.5, at.Score)
	assert.Equal(t, "half", at.Reply)

	above := pt.Match("alpha", 0.51, &fixedRandom{})
	assert.False(t, above.Matched)
	assert.Equal(t, 0.5, above.Score)
	assert.Equal(t, "", above.Reply)
}

func TestMatch_NoOverlap(t *testing.T) {
	result := DefaultPatternTable().Match(Normalize("zzz qqq"), DefaultThreshold, &fixedRandom{})
	assert.False(t, result.Matched)
	assert.Equal(t, 0.0, result.Score)
}

func TestMatch_FirstMaximalPhraseWins(t *testing.T) {
	pt := mustTable(t,
		IntentGroup{Triggers: []string{"ping"}, Replies: []string{"first"}},
		IntentGroup{Triggers: []string{"ping"}, Replies: []string{"second"}},
	)
	rnd := &fixedRandom{}

	result := pt.Match("ping", DefaultThreshold, rnd)

	assert.Equal(t, 0, result.Group)
	assert.Equal(t, "first", result.Reply)
	assert.Equal(t, 1, rnd.calls, "a tie must not draw another reply")
}

func TestMatch_LaterHigherScoreReplaces(t *testing.T) {
	pt := mustTable(t,
		IntentGroup{Triggers: []string{"alpha zeta"}, Replies: []string{"partial"}},
		IntentGroup{Triggers: []string{"alpha"}, Replies: []string{"full"}},
	)
	rnd := &fixedRandom{}

	result := pt.Match("alpha", DefaultThreshold, rnd)

	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, 1, result.Group)
	assert.Equal(t, "full", result.Reply)
	assert.Equal(t, 2, rnd.calls, "each strict improvement above threshold draws a reply")
}

func TestMatch_ImprovementBelowThresholdDrawsNothing(t *testing.T) {
	pt := mustTable(t,
		IntentGroup{Triggers: []string{"alpha beta gamma delta"}, Replies: []string{"quarter"}},
		IntentGroup{Triggers: []string{"alpha beta"}, Replies: []string{"half"}},
	)
	rnd := &fixedRandom{}

	result := pt.Match("alpha", DefaultThreshold, rnd)

	assert.True(t, result.Matched)
	assert.Equal(t, 0.5, result.Score)
	assert.Equal(t, "half", result.Reply)
	assert.Equal(t, 1, rnd.calls)
}

func TestMatch_RepeatedPhraseTokensCountSeparately(t *testing.T) {
	pt := mustTable(t, IntentGroup{Triggers: []string{"go go stop"}, Replies: []string{"r"}})

	result := pt.Match("go", 0.6, &fixedRandom{})

	assert.InDelta(t, 2.0/3.0, result.Score, 1e-9)
	assert.True(t, result.Matched)
}

func TestMatch_MembershipIgnoresOrder(t *testing.T) {
	pt := mustTable(t, IntentGroup{Triggers: []string{"sprint progress"}, Replies: []string{"r"}})

	result := pt.Match("progress of sprint", DefaultThreshold, &fixedRandom{})
	assert.Equal(t, 1.0, result.Score)
}

func TestMatch_SkipsPhrasesThatNormalizeToNothing(t *testing.T) {
	pt := mustTable(t,
		IntentGroup{Triggers: []string{"the", "123"}, Replies: []string{"never"}},
		IntentGroup{Triggers: []string{"hi"}, Replies: []string{"hello"}},
	)

	result := pt.Match(Normalize("the hi"), DefaultThreshold, &fixedRandom{})

	assert.Equal(t, 1, result.Group)
	assert.Equal(t, "hello", result.Reply)
}

func TestMatch_TriggersNormalizedLikeInput(t *testing.T) {
	pt := mustTable(t, IntentGroup{Triggers: []string{"What's the STATUS?"}, Replies: []string{"ok"}})

	result := pt.Match(Normalize("whats status"), DefaultThreshold, &fixedRandom{})
	assert.True(t, result.Matched)
}

func TestMatch_ClampsOutOfRangeRandom(t *testing.T) {
	pt := mustTable(t, IntentGroup{Triggers: []string{"hi"}, Replies: []string{"a", "b"}})

	result := pt.Match("hi", DefaultThreshold, &fixedRandom{idx: 7})
	assert.Equal(t, "a", result.Reply)
}

func TestMatch_DefaultTableScenarios(t *testing.T) {
	pt := DefaultPatternTable()
	replies := pt.ReplyGroups()

	tests := []struct {
		name      string
		input     string
		wantGroup int
	}{
		{"greeting", "hi", 0},
		{"about", "What is ProSyncX?", 4},
		{"tasks", "show my tasks please", 5},
		{"reminder", "Please set a reminder", 7},
		{"sprint", "how is the sprint going", 9},
		{"laughter", "lol", 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pt.Match(Normalize(tt.input), DefaultThreshold, &fixedRandom{})
			require.True(t, result.Matched)
			assert.Equal(t, tt.wantGroup, result.Group)
			assert.Contains(t, replies[tt.wantGroup], result.Reply)
		})
	}

	t.Run("gibberish", func(t *testing.T) {
		result := pt.Match(Normalize("asdkjasnd"), DefaultThreshold, &fixedRandom{})
		assert.False(t, result.Matched)
	})
}

func TestNewPatternTable_Validation(t *testing.T) {
	valid := IntentGroup{Triggers: []string{"hi"}, Replies: []string{"hello"}}

	tests := []struct {
		name      string
		groups    []IntentGroup
		fallbacks []string
		wantErr   error
	}{
		{"no groups", nil, []string{"f"}, ErrEmptyTable},
		{"no fallbacks", []IntentGroup{valid}, nil, ErrEmptyFallbacks},
		{"blank fallback", []IntentGroup{valid}, []string{"f", " "}, ErrEmptyFallbacks},
		{"no triggers", []IntentGroup{valid, {Name: "x", Replies: []string{"r"}}}, []string{"f"}, ErrEmptyTriggers},
		{"no replies", []IntentGroup{{Triggers: []string{"t"}}}, []string{"f"}, ErrEmptyReplies},
		{"blank reply", []IntentGroup{{Triggers: []string{"t"}, Replies: []string{""}}}, []string{"f"}, ErrEmptyReplies},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPatternTable(tt.groups, tt.fallbacks, "", "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewPatternTableFromGroups_LengthMismatch(t *testing.T) {
	_, err := newPatternTableFromGroups(
		[][]string{{"hi"}, {"bye"}},
		[][]string{{"hello"}},
		[]string{"f"}, "", "",
	)
	assert.ErrorIs(t, err, ErrGroupMismatch)
}

func TestPatternTable_IsReadOnly(t *testing.T) {
	groups := []IntentGroup{{Triggers: []string{"hi"}, Replies: []string{"hello"}}}
	pt, err := NewPatternTable(groups, []string{"f"}, "", "")
	require.NoError(t, err)

	groups[0].Replies[0] = "mutated"
	pt.ReplyGroups()[0][0] = "mutated"
	pt.TriggerGroups()[0][0] = "mutated"
	pt.Fallbacks()[0] = "mutated"

	assert.Equal(t, [][]string{{"hello"}}, pt.ReplyGroups())
	assert.Equal(t, [][]string{{"hi"}}, pt.TriggerGroups())
	assert.Equal(t, []string{"f"}, pt.Fallbacks())
	assert.Equal(t, defaultFarewell, pt.Farewell())
	assert.Equal(t, defaultGreeting, pt.Greeting())
}

func TestDefaultPatternTable(t *testing.T) {
	pt := DefaultPatternTable()

	assert.Equal(t, 18, pt.Len())
	assert.Len(t, pt.TriggerGroups(), pt.Len())
	assert.Len(t, pt.ReplyGroups(), pt.Len())
	assert.Len(t, pt.Fallbacks(), 4)
	assert.Equal(t, "greeting", pt.GroupName(0))
	assert.Equal(t, "laughter", pt.GroupName(17))
	assert.Equal(t, "", pt.GroupName(-1))
	assert.Equal(t, "", pt.GroupName(18))
}
