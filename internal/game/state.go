package game

import "github.com/google/uuid"

// Status is the round's position in the state machine.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Over reports whether the round has reached a terminal state.
func (s Status) Over() bool { return s == StatusWon || s == StatusLost }

const (
	DefaultMaxAttempts = 6
	PointsPerAttempt   = 10
	WrongSolvePenalty  = 2
)

// State is a read-only copy of the session for rendering.
type State struct {
	RoundID     uuid.UUID
	Category    string
	Masked      string // e.g. "C _ _"
	Guessed     []rune // sorted
	Remaining   int
	MaxAttempts int
	Score       int
	HintLevel   int
	HintsTotal  int
	Revealed    []string
	Status      Status
	Word        string // empty while the round is being played
}
