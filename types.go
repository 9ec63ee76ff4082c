package main

import "time"

// IntentGroup links a set of equivalent trigger phrases to a set of
// interchangeable replies.
type IntentGroup struct {
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Triggers []string `json:"triggers" yaml:"triggers"`
	Replies  []string `json:"replies" yaml:"replies"`
}

// PatternTable is the read-only lookup the scorer iterates.
// triggerGroups and replyGroups are parallel and always the same length.
type PatternTable struct {
	names         []string
	triggerGroups [][]string
	replyGroups   [][]string
	// phraseTokens[g][p] holds the normalized tokens of triggerGroups[g][p]
	phraseTokens [][][]string
	fallbacks    []string
	farewell     string
	greeting     string
}

// MatchResult is the outcome of scoring one input against the table
type MatchResult struct {
	Reply   string
	Matched bool
	Score   float64
	Group   int // index of the winning group, -1 when nothing matched
}

// Reply is what a conversation turn hands back to the caller
type Reply struct {
	Text       string `json:"text"`
	EndSession bool   `json:"end_session"`
}

// PatternFile is the on-disk schema for JSON and YAML pattern files
type PatternFile struct {
	Farewell  string        `json:"farewell,omitempty" yaml:"farewell,omitempty"`
	Greeting  string        `json:"greeting,omitempty" yaml:"greeting,omitempty"`
	Fallbacks []string      `json:"fallbacks" yaml:"fallbacks"`
	Groups    []IntentGroup `json:"groups" yaml:"groups"`
}

// Request/Response structures
type RespondRequest struct {
	Text string `json:"text" form:"text" query:"text"`
}

type MatchRequest struct {
	Text      string   `json:"text" form:"text" query:"text"`
	Threshold *float64 `json:"threshold,omitempty" form:"threshold" query:"threshold"`
}

type MatchResponse struct {
	Normalized string  `json:"normalized"`
	Score      float64 `json:"score"`
	Matched    bool    `json:"matched"`
	Group      int     `json:"group"`
	GroupName  string  `json:"group_name,omitempty"`
	Reply      string  `json:"reply,omitempty"`
}

type ReloadResponse struct {
	Message    string    `json:"message"`
	Groups     int       `json:"groups"`
	ReloadedAt time.Time `json:"reloaded_at"`
}

// TableInfo describes the table currently served by a TableCache
type TableInfo struct {
	Source    string    `json:"source"`
	LoadedAt  time.Time `json:"loaded_at"`
	Groups    int       `json:"groups"`
	Triggers  int       `json:"triggers"`
	Fallbacks int       `json:"fallbacks"`
	Watching  bool      `json:"watching"`
}
