// Package game holds the round state machine for the word-guessing game.
//
// A Session is explicitly constructed and owned by its caller (the UI event
// loop or a test). It is not safe for concurrent use: every transition runs to
// completion before the next one is accepted, and listeners are invoked inline.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wordguess-go/internal/history"
	"wordguess-go/internal/wordbank"
)

var (
	ErrRoundOver   = errors.New("no round in progress")
	ErrNoMoreHints = errors.New("all hints for this word have been used")
	ErrNotALetter  = errors.New("guess is not a letter")
)

// HintSource selects the next hint for a word. *hints.Ranker implements it.
type HintSource interface {
	NextHint(word wordbank.WordEntry, guessed []rune) (string, error)
}

// Picker chooses the word for each round. *history.Tracker implements it.
type Picker interface {
	PickNext(all []wordbank.WordEntry) (wordbank.WordEntry, error)
}

// Option configures a Session.
type Option func(*Session)

// WithRand seeds the default word picker. Ignored when WithPicker is given.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

func WithPicker(p Picker) Option {
	return func(s *Session) { s.picker = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithMaxAttempts overrides the number of attempts each round starts with.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// Session is one player's game: a sequence of rounds and a running score.
type Session struct {
	bank        []wordbank.WordEntry
	hints       HintSource
	picker      Picker
	rng         *rand.Rand
	log         zerolog.Logger
	maxAttempts int
	listeners   []func(Event)

	// round state
	roundID   uuid.UUID
	current   wordbank.WordEntry
	guessed   map[rune]bool
	order     []rune
	remaining int
	hintLevel int
	revealed  []string
	status    Status

	score int
}

// NewSession builds a session over bank. No round is started until StartRound.
func NewSession(bank []wordbank.WordEntry, hints HintSource, opts ...Option) (*Session, error) {
	if len(bank) == 0 {
		return nil, history.ErrEmptyBank
	}
	if hints == nil {
		return nil, errors.New("game: nil hint source")
	}
	s := &Session{
		bank:        bank,
		hints:       hints,
		log:         zerolog.Nop(),
		maxAttempts: DefaultMaxAttempts,
		guessed:     make(map[rune]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.picker == nil {
		s.picker = history.New(s.rng)
	}
	return s, nil
}

// Subscribe registers fn to receive every event from now on.
func (s *Session) Subscribe(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Session) emit(e Event) {
	s.log.Debug().Str("round", s.roundID.String()).Str("event", Name(e)).Msg("game event")
	for _, fn := range s.listeners {
		fn(e)
	}
}

// --- TRANSITIONS ---

// StartRound discards the current round, if any, and begins a new one on a
// word not yet played this cycle. The score carries over.
func (s *Session) StartRound() error {
	entry, err := s.picker.PickNext(s.bank)
	if err != nil {
		return fmt.Errorf("pick word: %w", err)
	}
	s.roundID = uuid.New()
	entry.Hints = entry.HintList()
	s.current = entry
	s.guessed = make(map[rune]bool)
	s.order = nil
	s.remaining = s.maxAttempts
	s.hintLevel = 0
	s.revealed = nil
	s.status = StatusPlaying

	s.log.Info().
		Str("round", s.roundID.String()).
		Str("category", entry.Category).
		Int("letters", len([]rune(entry.Word))).
		Msg("round started")
	s.emit(RoundStarted{RoundID: s.roundID, Category: entry.Category})
	return nil
}

// GuessLetter plays a single letter. Guessing a letter twice does nothing.
func (s *Session) GuessLetter(ch rune) error {
	if !unicode.IsLetter(ch) {
		return ErrNotALetter
	}
	if s.status != StatusPlaying {
		return ErrRoundOver
	}
	ch = unicode.ToLower(ch)
	if s.guessed[ch] {
		return nil
	}
	s.guessed[ch] = true
	s.order = append(s.order, ch)

	if strings.ContainsRune(strings.ToLower(s.current.Word), ch) {
		s.emit(LetterCorrect{Letter: ch})
	} else {
		s.remaining--
		s.emit(LetterWrong{Letter: ch})
	}
	s.settle()
	return nil
}

// RequestHint reveals the next hint. On error the round is left untouched.
func (s *Session) RequestHint() (string, error) {
	if s.status != StatusPlaying {
		return "", ErrRoundOver
	}
	if s.hintLevel >= len(s.current.Hints) {
		return "", ErrNoMoreHints
	}
	text, err := s.hints.NextHint(s.current, s.GuessedLetters())
	if err != nil {
		return "", err
	}
	s.hintLevel++
	s.revealed = append(s.revealed, text)
	s.emit(HintRevealed{Text: text})
	return text, nil
}

// AttemptSolve guesses the whole word. A blank guess is ignored without
// penalty; a wrong one costs WrongSolvePenalty attempts.
func (s *Session) AttemptSolve(guess string) error {
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return nil
	}
	if s.status != StatusPlaying {
		return ErrRoundOver
	}
	if s.current.Matches(guess) {
		for _, r := range strings.ToLower(s.current.Word) {
			if unicode.IsLetter(r) && !s.guessed[r] {
				s.guessed[r] = true
				s.order = append(s.order, r)
			}
		}
		s.win()
		return nil
	}
	s.remaining -= WrongSolvePenalty
	s.emit(SolveRejected{Guess: guess})
	s.settle()
	return nil
}

// settle moves the round to a terminal state when a guess has decided it.
func (s *Session) settle() {
	switch {
	case s.complete():
		s.win()
	case s.remaining <= 0:
		s.lose()
	}
}

func (s *Session) win() {
	delta := s.remaining * PointsPerAttempt
	s.score += delta
	s.status = StatusWon
	s.log.Info().Str("round", s.roundID.String()).Int("delta", delta).Int("score", s.score).Msg("round won")
	s.emit(Won{Word: s.current.Word, ScoreDelta: delta})
}

func (s *Session) lose() {
	s.remaining = 0
	s.status = StatusLost
	s.log.Info().Str("round", s.roundID.String()).Msg("round lost")
	s.emit(Lost{Word: s.current.Word})
}

// complete reports whether every letter of the word has been guessed.
func (s *Session) complete() bool {
	for _, r := range strings.ToLower(s.current.Word) {
		if unicode.IsLetter(r) && !s.guessed[r] {
			return false
		}
	}
	return true
}

// --- ACCESSORS ---

func (s *Session) Status() Status     { return s.status }
func (s *Session) Score() int         { return s.score }
func (s *Session) Remaining() int     { return s.remaining }
func (s *Session) HintLevel() int     { return s.hintLevel }
func (s *Session) RoundID() uuid.UUID { return s.roundID }

// GuessedLetters returns the guessed letters in the order they were played.
func (s *Session) GuessedLetters() []rune {
	out := make([]rune, len(s.order))
	copy(out, s.order)
	return out
}

// Masked renders the word with unguessed letters as "_", uppercase and
// space-separated. Characters that are not letters are always shown.
func (s *Session) Masked() string {
	runes := []rune(s.current.Word)
	parts := make([]string, len(runes))
	for i, r := range runes {
		if !unicode.IsLetter(r) || s.guessed[unicode.ToLower(r)] {
			parts[i] = string(unicode.ToUpper(r))
		} else {
			parts[i] = "_"
		}
	}
	return strings.Join(parts, " ")
}

// Snapshot copies everything a renderer needs. The word itself is only
// included once the round is over.
func (s *Session) Snapshot() State {
	guessed := s.GuessedLetters()
	sort.Slice(guessed, func(i, j int) bool { return guessed[i] < guessed[j] })
	st := State{
		RoundID:     s.roundID,
		Category:    s.current.Category,
		Masked:      s.Masked(),
		Guessed:     guessed,
		Remaining:   s.remaining,
		MaxAttempts: s.maxAttempts,
		Score:       s.score,
		HintLevel:   s.hintLevel,
		HintsTotal:  len(s.current.Hints),
		Revealed:    append([]string(nil), s.revealed...),
		Status:      s.status,
	}
	if s.status.Over() {
		st.Word = s.current.Word
	}
	return st
}
