package models

import (
	"strings"
	"time"
)

// Result is the outcome of one round as chosen by the user. The analyzer
// decides what it accepts, so any value is passed through unchanged.
type Result string

const (
	ResultPlayer Result = "PLAYER"
	ResultBanker Result = "BANKER"
	ResultTie    Result = "TIE"
)

// Signal labels the analyzer is known to return.
const (
	SignalPlayer      = "PLAYER"
	SignalBanker      = "BANKER"
	SignalNoEntry     = "NO_ENTRY"
	SignalWait        = "AGUARDAR"
	SignalEquilibrium = "EQUILÍBRIO"
)

type RoundResponse struct {
	Signal     Value `json:"signal"`
	Confidence Value `json:"confidence"`
	Greens     Value `json:"greens"`
	Reds       Value `json:"reds"`
}

// IsEntry reports whether the analyzer called a side to bet on.
func (r RoundResponse) IsEntry() bool {
	s, ok := r.Signal.Str()
	if !ok {
		return false
	}
	return s == SignalPlayer || s == SignalBanker
}

type RoundRecord struct {
	RequestID  string            `json:"request_id"`
	Result     Result            `json:"result"`
	StatusCode int               `json:"status_code"`
	Response   RoundResponse     `json:"response"`
	Texts      map[string]string `json:"texts"`
	AppliedAt  time.Time         `json:"applied_at"`
}

// ParseResult expands the single-letter shortcuts used at the prompt.
// Anything else is returned as typed.
func ParseResult(input string) Result {
	trimmed := strings.TrimSpace(input)
	switch strings.ToLower(trimmed) {
	case "p", "player":
		return ResultPlayer
	case "b", "banker":
		return ResultBanker
	case "t", "tie":
		return ResultTie
	}
	return Result(trimmed)
}

func (r Result) Known() bool {
	switch r {
	case ResultPlayer, ResultBanker, ResultTie:
		return true
	}
	return false
}
