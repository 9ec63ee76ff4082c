package main

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultThreshold is the fraction of a trigger phrase's tokens that must
// appear in the input for the phrase to count.
const DefaultThreshold = 0.5

// TableSource hands out the pattern table to score against
type TableSource interface {
	Table() *PatternTable
}

// staticTable serves one fixed table
type staticTable struct {
	pt *PatternTable
}

func (s staticTable) Table() *PatternTable { return s.pt }

// Responder turns one line of user text into one assistant reply
type Responder struct {
	tables    TableSource
	threshold float64
	rnd       RandomSource
	logger    *zap.Logger
}

// ResponderOption customizes a Responder
type ResponderOption func(*Responder)

// WithThreshold overrides DefaultThreshold
func WithThreshold(threshold float64) ResponderOption {
	return func(r *Responder) { r.threshold = threshold }
}

// WithRandom replaces the random source used for reply selection
func WithRandom(rnd RandomSource) ResponderOption {
	return func(r *Responder) { r.rnd = rnd }
}

func WithLogger(logger *zap.Logger) ResponderOption {
	return func(r *Responder) { r.logger = logger }
}

func NewResponder(tables TableSource, opts ...ResponderOption) *Responder {
	r := &Responder{
		tables:    tables,
		threshold: DefaultThreshold,
		rnd:       defaultRandom{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// isSessionExit reports whether raw is one of the literal exit words
func isSessionExit(raw string) bool {
	word := strings.ToLower(strings.TrimSpace(raw))
	return word == "bye" || word == "exit"
}

// Respond answers one user message.
// "bye" and "exit" end the session without consulting the table; anything
// else is normalized and matched, with a fallback when nothing clears the
// threshold.
func (r *Responder) Respond(raw string) Reply {
	pt := r.tables.Table()

	if isSessionExit(raw) {
		return Reply{Text: pt.Farewell(), EndSession: true}
	}

	normalized := Normalize(raw)
	result := pt.Match(normalized, r.threshold, r.rnd)

	r.logger.Debug("matched input",
		zap.String("normalized", normalized),
		zap.Float64("score", result.Score),
		zap.Bool("matched", result.Matched),
		zap.String("group", pt.GroupName(result.Group)),
	)

	if result.Matched {
		return Reply{Text: result.Reply}
	}
	return Reply{Text: pickOne(pt.fallbacks, r.rnd)}
}

// Greeting is the opening line of a new conversation
func (r *Responder) Greeting() string {
	return r.tables.Table().Greeting()
}

// Threshold returns the threshold Respond matches with
func (r *Responder) Threshold() float64 {
	return r.threshold
}
