package game

import "github.com/google/uuid"

// Event is something a presentation layer may react to. Events are delivered
// synchronously, in the order the transitions happened.
type Event interface {
	eventName() string
}

type RoundStarted struct {
	RoundID  uuid.UUID
	Category string
}

type LetterCorrect struct{ Letter rune }

type LetterWrong struct{ Letter rune }

type HintRevealed struct{ Text string }

// Won carries the points added to the score for the round.
type Won struct {
	Word       string
	ScoreDelta int
}

type Lost struct{ Word string }

// SolveRejected is emitted for a wrong full-word guess, before any Lost.
type SolveRejected struct{ Guess string }

func (RoundStarted) eventName() string  { return "round_started" }
func (LetterCorrect) eventName() string { return "letter_correct" }
func (LetterWrong) eventName() string   { return "letter_wrong" }
func (HintRevealed) eventName() string  { return "hint_revealed" }
func (Won) eventName() string           { return "won" }
func (Lost) eventName() string          { return "lost" }
func (SolveRejected) eventName() string { return "solve_rejected" }

// Name is a stable identifier for e, handy for logs.
func Name(e Event) string { return e.eventName() }
