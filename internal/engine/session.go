package engine

import (
	"fmt"
	"time"

	"cognicare-go/internal/content"
	"cognicare-go/internal/models"
)

// State is the session's position in the per-level state machine.
type State string

const (
	// Idle: level content not yet shuffled/started.
	Idle State = "idle"
	// Armed: content loaded, waiting for the explicit start action.
	Armed State = "armed"
	// InProgress: the timer is running and input is accepted.
	InProgress State = "in_progress"
	// Success: the win condition held before the timer cap.
	Success State = "success"
	// TimedOut: the cap was reached without success. Retry only.
	TimedOut State = "timed_out"
	// Mismatch: a submitted answer was wrong (answer games only).
	Mismatch State = "mismatch"
	// GameComplete: level-10 success. Terminal.
	GameComplete State = "game_complete"
	// Exited: the player left or changed difficulty. Terminal.
	Exited State = "exited"
)

// Clock supplies timestamps for emitted records. Injected so tests can
// pin time.
type Clock func() time.Time

// Session is the per-game-instance state machine. It owns no goroutines:
// the run loop drives it by calling Tick once per wall-clock second while
// the level is in progress, so time never accumulates while a tutorial
// overlay or result dialog suspends play.
type Session struct {
	rules    Rules
	provider content.Provider
	clock    Clock

	difficulty models.Difficulty
	level      int
	attempt    int
	elapsed    int
	secondary  int
	hintsUsed  int
	points     int
	state      State

	content *content.LevelContent
}

// NewSession creates a session at level 1, attempt 1, Idle. Difficulty is
// fixed for the session's lifetime; changing it means a new session.
func NewSession(rules Rules, provider content.Provider, difficulty models.Difficulty, clock Clock) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		rules:      rules,
		provider:   provider,
		clock:      clock,
		difficulty: difficulty,
		level:      1,
		attempt:    1,
		state:      Idle,
	}
}

func (s *Session) State() State                  { return s.state }
func (s *Session) Domain() models.Domain         { return s.rules.Domain }
func (s *Session) Difficulty() models.Difficulty { return s.difficulty }
func (s *Session) Level() int                    { return s.level }
func (s *Session) Attempt() int                  { return s.attempt }
func (s *Session) Elapsed() int                  { return s.elapsed }
func (s *Session) Secondary() int                { return s.secondary }
func (s *Session) HintsUsed() int                { return s.hintsUsed }
func (s *Session) TotalPoints() int              { return s.points }
func (s *Session) Content() *content.LevelContent {
	return s.content
}

// Remaining reports the seconds left before the level times out.
func (s *Session) Remaining() int {
	return s.rules.TimerCap(s.difficulty) - s.elapsed
}

// Arm loads the level content and readies the level. Content failure
// leaves the session Idle and retryable; the level does not advance and
// no record is emitted.
func (s *Session) Arm() error {
	if s.state != Idle {
		return fmt.Errorf("arm from %s: %w", s.state, ErrInvalidTransition)
	}
	lc, err := s.provider.LevelContent(s.rules.Domain, s.difficulty, s.level)
	if err != nil {
		return err
	}
	s.content = lc
	s.state = Armed
	return nil
}

// Start is the explicit shuffle/start action. It begins the per-second
// timer for the current attempt.
func (s *Session) Start() error {
	if s.state != Armed {
		return fmt.Errorf("start from %s: %w", s.state, ErrInvalidTransition)
	}
	s.elapsed = 0
	s.secondary = 0
	s.hintsUsed = 0
	s.state = InProgress
	return nil
}

// Tick advances the timer by one second. Legal only while InProgress;
// the caller must stop ticking the moment the session leaves that state.
// When the cap is reached without success the level times out and a
// zero-point record is emitted.
func (s *Session) Tick() (*models.LevelRecord, error) {
	if s.state != InProgress {
		return nil, fmt.Errorf("tick from %s: %w", s.state, ErrInvalidTransition)
	}
	s.elapsed++
	if s.elapsed >= s.rules.TimerCap(s.difficulty) {
		s.state = TimedOut
		return s.emit(0, false), nil
	}
	return nil, nil
}

// RecordMove increments the domain's secondary effort counter (moves,
// flips, deselects).
func (s *Session) RecordMove() error {
	if s.state != InProgress {
		return fmt.Errorf("move from %s: %w", s.state, ErrInvalidTransition)
	}
	s.secondary++
	return nil
}

// UseHint reveals the next hint for the current riddle and charges the
// hint penalty. Only meaningful for domains with a hint budget.
func (s *Session) UseHint() (string, error) {
	if s.state != InProgress {
		return "", fmt.Errorf("hint from %s: %w", s.state, ErrInvalidTransition)
	}
	if s.rules.HintBudget == 0 || s.hintsUsed >= s.rules.HintBudget {
		return "", ErrHintBudgetExceeded
	}
	hint := ""
	if s.content != nil && s.content.Riddle != nil && s.hintsUsed < len(s.content.Riddle.Hints) {
		hint = s.content.Riddle.Hints[s.hintsUsed]
	}
	s.hintsUsed++
	s.secondary = s.hintsUsed
	return hint, nil
}

// Submit evaluates the win condition. On success a scored record is
// emitted and the session moves to Success, or to GameComplete when this
// was the last level. A failed submission resolves the level as Mismatch
// for answer games (emitting a zero-point record); board games simply
// keep the level in progress.
func (s *Session) Submit(sub Submission) (*models.LevelRecord, error) {
	if s.state != InProgress {
		return nil, fmt.Errorf("submit from %s: %w", s.state, ErrInvalidTransition)
	}

	if !s.rules.CheckWin(s.content, sub) {
		if s.rules.MismatchOnFail {
			s.state = Mismatch
			return s.emit(0, false), nil
		}
		return nil, nil
	}

	pts := Points(s.elapsed, s.attempt)
	if s.rules.HintBudget > 0 && s.attempt == 1 {
		// Hint penalty is deliberately not clamped at zero.
		pts -= s.hintsUsed
	}
	s.points += pts

	if s.level >= s.rules.MaxLevel {
		s.state = GameComplete
	} else {
		s.state = Success
	}
	return s.emit(pts, true), nil
}

// Retry re-arms the current level after a timeout or a wrong answer. The
// attempt counter increments and the timer and secondary metric reset, so
// the retried attempt can never score.
func (s *Session) Retry() error {
	if s.state != TimedOut && s.state != Mismatch {
		return fmt.Errorf("retry from %s: %w", s.state, ErrInvalidTransition)
	}
	s.attempt++
	s.elapsed = 0
	s.secondary = 0
	s.hintsUsed = 0
	s.state = Idle
	if err := s.Arm(); err != nil {
		return err
	}
	return nil
}

// Advance moves to the next level after a success. The attempt counter
// resets to 1 on every level transition.
func (s *Session) Advance() error {
	if s.state != Success {
		return fmt.Errorf("advance from %s: %w", s.state, ErrInvalidTransition)
	}
	s.level++
	s.attempt = 1
	s.elapsed = 0
	s.secondary = 0
	s.hintsUsed = 0
	s.content = nil
	s.state = Idle
	return nil
}

// Exit abandons the session from any non-terminal state. The in-flight
// level is discarded without emitting a record.
func (s *Session) Exit() error {
	if s.state == GameComplete || s.state == Exited {
		return ErrSessionTerminal
	}
	s.state = Exited
	return nil
}

// Summary describes a finished run: the cumulative score and its
// presentational band.
type Summary struct {
	TotalPoints int    `json:"totalPoints"`
	Band        string `json:"band"`
}

// Summary is only meaningful once the session is GameComplete.
func (s *Session) Summary() Summary {
	return Summary{TotalPoints: s.points, Band: Banding(s.points)}
}

func (s *Session) emit(points int, completed bool) *models.LevelRecord {
	return &models.LevelRecord{
		Domain:          s.rules.Domain,
		Level:           s.level,
		Difficulty:      s.difficulty,
		Attempts:        s.attempt,
		TimeTaken:       s.elapsed,
		SecondaryMetric: s.secondary,
		Points:          points,
		Completed:       completed,
		Timestamp:       s.clock(),
	}
}
