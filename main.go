package main

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"wordguess-go/internal/config"
	"wordguess-go/internal/game"
	"wordguess-go/internal/hints"
	"wordguess-go/internal/logging"
	"wordguess-go/internal/wordbank"
)

// --- STYLING (using Lipgloss) ---

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	styleWord     = lipgloss.NewStyle().Bold(true).Padding(1, 2)
	styleCategory = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleAttempts = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleScore    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleHint     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleCorrect  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleWrong    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleInfo     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleSubtle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
)

// --- DATA STRUCTURES ---

type uiState int

const (
	stateGuessing uiState = iota
	stateSolving
)

// nextRoundMsg asks for a new round once the delay after a finished round has
// passed. It is ignored if the player already moved on to another round.
type nextRoundMsg struct {
	after uuid.UUID
}

// eventLog is the session's subscriber. It is shared by pointer because
// bubbletea copies the model on every update.
type eventLog struct {
	pending []game.Event
}

func (l *eventLog) record(e game.Event) { l.pending = append(l.pending, e) }

func (l *eventLog) drain() []game.Event {
	out := l.pending
	l.pending = nil
	return out
}

type model struct {
	session    *game.Session
	events     *eventLog
	log        zerolog.Logger
	roundDelay time.Duration
	solveInput textinput.Model
	state      uiState
	feedback   []string
	info       string
	err        error
}

// --- BUBBLETEA IMPLEMENTATION ---

func newModel(session *game.Session, log zerolog.Logger, roundDelay time.Duration) model {
	ti := textinput.New()
	ti.Placeholder = "Type the whole word and press Enter..."
	ti.CharLimit = 50
	ti.Width = 50
	ti.Prompt = "> "

	events := &eventLog{}
	session.Subscribe(events.record)

	return model{
		session:    session,
		events:     events,
		log:        log,
		roundDelay: roundDelay,
		solveInput: ti,
		state:      stateGuessing,
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg { return nextRoundMsg{after: m.session.RoundID()} }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case nextRoundMsg:
		if msg.after == m.session.RoundID() {
			cmd = m.startRound()
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.state == stateSolving {
			cmd = m.updateSolving(msg)
		} else {
			cmd = m.updateGuessing(msg)
		}
	case error:
		m.log.Error().Err(msg).Msg("start round")
		m.err = msg
	}
	if next := m.applyEvents(); next != nil {
		cmd = tea.Batch(cmd, next)
	}
	return m, cmd
}

func (m *model) updateGuessing(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		return tea.Quit
	case tea.KeyCtrlN:
		return m.startRound()
	case tea.KeyEnter:
		if m.session.Status() != game.StatusPlaying {
			return nil
		}
		m.state = stateSolving
		m.solveInput.SetValue("")
		return m.solveInput.Focus()
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return nil
		}
		r := msg.Runes[0]
		if r == '?' {
			m.requestHint()
			return nil
		}
		m.report(m.session.GuessLetter(r))
	}
	return nil
}

func (m *model) updateSolving(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeSolve()
		return nil
	case tea.KeyEnter:
		guess := m.solveInput.Value()
		m.closeSolve()
		m.report(m.session.AttemptSolve(guess))
		return nil
	}
	var cmd tea.Cmd
	m.solveInput, cmd = m.solveInput.Update(msg)
	return cmd
}

func (m *model) closeSolve() {
	m.state = stateGuessing
	m.solveInput.Blur()
	m.solveInput.SetValue("")
}

// startRound begins a new round. A failure comes back as an error message
// so Update handles it like any other.
func (m *model) startRound() tea.Cmd {
	m.feedback = nil
	m.info = ""
	if err := m.session.StartRound(); err != nil {
		return func() tea.Msg { return err }
	}
	return nil
}

func (m *model) requestHint() {
	if _, err := m.session.RequestHint(); err != nil {
		m.report(err)
	}
}

// report turns a core error into something the player can see. Hint refusals
// become an info line; anything else unexpected stops the game view.
func (m *model) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, game.ErrNoMoreHints):
		m.info = "No more hints: you've used all available hints for this word!"
		m.log.Warn().Err(err).Str("round", m.session.RoundID().String()).Msg("hint refused")
	case errors.Is(err, hints.ErrNoHintsAvailable):
		m.info = "No hints available for this word."
		m.log.Warn().Err(err).Str("round", m.session.RoundID().String()).Msg("hint refused")
	case errors.Is(err, game.ErrNotALetter), errors.Is(err, game.ErrRoundOver):
		m.log.Debug().Err(err).Msg("input ignored")
	default:
		m.log.Error().Err(err).Msg("game error")
		m.err = err
	}
}

// applyEvents renders everything the session published since the last update.
// A finished round schedules the next one.
func (m *model) applyEvents() tea.Cmd {
	var cmd tea.Cmd
	for _, e := range m.events.drain() {
		if line := describe(e); line != "" {
			m.feedback = append(m.feedback, line)
		}
		switch e.(type) {
		case game.Won, game.Lost:
			m.closeSolve()
			after := m.session.RoundID()
			cmd = tea.Tick(m.roundDelay, func(time.Time) tea.Msg { return nextRoundMsg{after: after} })
		}
	}
	if len(m.feedback) > 3 {
		m.feedback = m.feedback[len(m.feedback)-3:]
	}
	return cmd
}

func describe(e game.Event) string {
	switch e := e.(type) {
	case game.RoundStarted:
		return styleInfo.Render("New word! Category: " + capitalize(e.Category))
	case game.LetterCorrect:
		return styleCorrect.Render(fmt.Sprintf("'%c' is in the word.", unicode.ToUpper(e.Letter)))
	case game.LetterWrong:
		return styleWrong.Render(fmt.Sprintf("No '%c' in this word.", unicode.ToUpper(e.Letter)))
	case game.HintRevealed:
		return styleHint.Render("Hint: " + e.Text)
	case game.SolveRejected:
		return styleWrong.Render(fmt.Sprintf("Sorry, '%s' is not correct.", e.Guess))
	case game.Won:
		return styleCorrect.Render(fmt.Sprintf("🎉 You guessed the word: %s (+%d)", e.Word, e.ScoreDelta))
	case game.Lost:
		return styleWrong.Render("❌ Game over. The word was: " + e.Word)
	default:
		return ""
	}
}

func (m model) View() string {
	if m.err != nil {
		return styleError.Render("Error: " + m.err.Error())
	}
	st := m.session.Snapshot()

	var b strings.Builder
	b.WriteString(styleHeader.Render("Word Guessing Game"))
	b.WriteRune('\n')
	b.WriteString(styleWord.Render(st.Masked))
	b.WriteRune('\n')
	b.WriteString(styleCategory.Render("Category: " + capitalize(st.Category)))
	b.WriteRune('\n')
	b.WriteString(styleAttempts.Render(fmt.Sprintf("Attempts left: %d/%d", st.Remaining, st.MaxAttempts)))
	b.WriteString("   ")
	b.WriteString(styleScore.Render(fmt.Sprintf("Score: %d", st.Score)))
	b.WriteString("\n\n")

	b.WriteString("Guessed: ")
	b.WriteString(renderGuessed(st))
	b.WriteRune('\n')
	for i, h := range st.Revealed {
		b.WriteString(styleHint.Render(fmt.Sprintf("Hint %d/%d: %s", i+1, st.HintsTotal, h)))
		b.WriteRune('\n')
	}
	b.WriteRune('\n')

	for _, line := range m.feedback {
		b.WriteString(line)
		b.WriteRune('\n')
	}
	if m.info != "" {
		b.WriteString(styleInfo.Render(m.info))
		b.WriteRune('\n')
	}

	if m.state == stateSolving {
		b.WriteString("\nSolve: What's the word?\n")
		b.WriteString(m.solveInput.View())
		b.WriteRune('\n')
		b.WriteString(styleSubtle.Render("\nenter: Submit | esc: Cancel"))
		return b.String()
	}
	if st.Status.Over() {
		b.WriteString(styleSubtle.Render("\nNext word coming up..."))
	}
	b.WriteString(styleSubtle.Render("\n a-z: Guess | ?: Hint | enter: Solve | ctrl+n: New Game | esc: Quit"))
	return b.String()
}

// renderGuessed colours each guessed letter by whether it was in the word.
func renderGuessed(st game.State) string {
	if len(st.Guessed) == 0 {
		return styleSubtle.Render("none yet")
	}
	parts := make([]string, len(st.Guessed))
	for i, r := range st.Guessed {
		up := string(unicode.ToUpper(r))
		if strings.Contains(st.Masked, up) {
			parts[i] = styleCorrect.Render(up)
		} else {
			parts[i] = styleWrong.Render(up)
		}
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// --- DATA LOADING ---

func loadBank(cfg config.Config) ([]wordbank.WordEntry, error) {
	if cfg.WordBankPath == "" {
		return wordbank.Default()
	}
	return wordbank.LoadFile(cfg.WordBankPath)
}

// newGame loads the bank and builds a session over it.
func newGame(cfg config.Config, logger zerolog.Logger, rng *rand.Rand) (*game.Session, error) {
	bank, err := loadBank(cfg)
	if err != nil {
		return nil, fmt.Errorf("load word bank: %w", err)
	}
	ranker := hints.Prepare(wordbank.AllHints(bank), rng)
	logger.Info().
		Int("words", len(bank)).
		Int("vocabulary", ranker.VocabularySize()).
		Str("source", cfg.WordBankPath).
		Msg("word bank loaded")

	session, err := game.NewSession(bank, ranker,
		game.WithRand(rng),
		game.WithLogger(logger),
		game.WithMaxAttempts(cfg.MaxAttempts),
	)
	if err != nil {
		return nil, fmt.Errorf("create game session: %w", err)
	}
	return session, nil
}

// --- MAIN FUNCTION ---

// run returns instead of exiting so the deferred log file close always runs.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closer.Close()

	session, err := newGame(cfg, logger, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		logger.Error().Err(err).Msg("startup failed")
		return err
	}

	p := tea.NewProgram(newModel(session, logger, cfg.RoundDelay), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited with error")
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		zlog.Fatal().Err(err).Msg("wordguess")
	}
}
