package handlers

import (
	"errors"
	"math/rand"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cognicare-go/internal/content"
	"cognicare-go/internal/engine"
	"cognicare-go/internal/event"
	"cognicare-go/internal/models"
	"cognicare-go/internal/store"
)

// activeSession pairs a running state machine with its owner. Each
// browser tab owns at most one active session per game; the in-memory
// registry holds no persistent state and an abandoned entry simply
// never writes another record.
type activeSession struct {
	mu      sync.Mutex
	session *engine.Session
	userID  string
}

// SessionHandler drives LevelSessions from UI events. Persistence is
// fire-and-forget: a failed merge is logged and the level still shows as
// complete for the current page view.
type SessionHandler struct {
	log       *zap.Logger
	provider  content.Provider
	telemetry *store.TelemetryStore
	events    *event.Publisher

	mu       sync.RWMutex
	sessions map[string]*activeSession
}

func NewSessionHandler(log *zap.Logger, provider content.Provider, telemetry *store.TelemetryStore, events *event.Publisher) *SessionHandler {
	return &SessionHandler{
		log:       log,
		provider:  provider,
		telemetry: telemetry,
		events:    events,
		sessions:  make(map[string]*activeSession),
	}
}

type createSessionRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
}

// CreateSession starts a new leveled run for a domain at a chosen
// difficulty and arms level 1. Starting a new puzzle run clears the
// previous aggregate totals, as the game has always done.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	domain, err := models.ParseDomain(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	difficulty, err := models.ParseDifficulty(req.Difficulty)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := engine.NewSession(engine.RulesFor(domain), h.provider, difficulty, nil)
	if err := sess.Arm(); err != nil {
		h.log.Error("Failed to arm level 1", zap.String("domain", string(domain)), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Level content unavailable", "retryable": true})
		return
	}

	userID := currentUserID(c)
	if userID != "" && domain == models.PuzzleSolving {
		if err := h.telemetry.Reset(c.Request.Context(), userID, domain, difficulty); err != nil {
			h.log.Warn("Failed to reset previous run data", zap.String("userID", userID), zap.Error(err))
		}
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.sessions[id] = &activeSession{session: sess, userID: userID}
	h.mu.Unlock()

	h.log.Info("Session created",
		zap.String("sessionID", id),
		zap.String("domain", string(domain)),
		zap.String("difficulty", string(difficulty)),
		zap.Bool("persisted", userID != ""))

	c.JSON(http.StatusCreated, h.view(id, sess))
}

// Arm (re)loads content for the current level after a content failure.
func (h *SessionHandler) Arm(c *gin.Context) {
	h.withSession(c, func(as *activeSession) (gin.H, error) {
		if err := as.session.Arm(); err != nil {
			return nil, err
		}
		return h.view(c.Param("id"), as.session), nil
	})
}

// Start is the explicit shuffle/start action; it begins the timer.
func (h *SessionHandler) Start(c *gin.Context) {
	h.withSession(c, func(as *activeSession) (gin.H, error) {
		if err := as.session.Start(); err != nil {
			return nil, err
		}
		return h.view(c.Param("id"), as.session), nil
	})
}

// Tick advances the level timer by one second. The client run loop calls
// this once per wall-clock second while play is visible, so no ticks
// accumulate while a tutorial or result dialog suspends the game.
func (h *SessionHandler) Tick(c *gin.Context) {
	h.withSession(c, func(as *activeSession) (gin.H, error) {
		rec, err := as.session.Tick()
		if err != nil {
			return nil, err
		}
		if rec != nil {
			h.persist(c, as, rec)
		}
		return h.view(c.Param("id"), as.session), nil
	})
}

// Move records one unit of the domain's secondary effort metric.
func (h *SessionHandler) Move(c *gin.Context) {
	h.withSession(c, func(as *activeSession) (gin.H, error) {
		if err := as.session.RecordMove(); err != nil {
			return nil, err
		}
		return h.view(c.Param("id"), as.session), nil
	})
}

// Hint reveals the next hint and charges the point penalty.
func (h *SessionHandler) Hint(c *gin.Context) {
	h.withSession(c, func(as *activeSession) (gin.H, error) {
		hint, err := as.session.UseHint()
		if err != nil {
			return nil, err
		}
		v := h.view(c.Param("id"), as.session)
		v["hint"] = hint
		return v, nil
	})
}

// Submit evaluates the win condition for the current level.
func (h *SessionHandler) Submit(c *gin.Context) {
	var sub engine.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	h.withSession(c, func(as *activeSession) (gin.H, error) {
		rec, err := as.session.Submit(sub)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			h.persist(c, as, rec)
		}

		v := h.view(c.Param("id"), as.session)
		if as.session.State() == engine.GameComplete {
			v["summary"] = as.session.Summary()
			h.events.Publish("game.completed", gin.H{
				"userId":     as.userID,
				"domain":     as.session.Domain(),
				"difficulty": as.session.Difficulty(),
				"summary":    as.session.Summary(),
			})
		}
		return v, nil
	})
}

// Retry re-arms the current level after a timeout or wrong answer.
func (h *SessionHandler) Retry(c *gin.Context) {
	h.withSession(c, func(as *activeSession) (gin.H, error) {
		if err := as.session.Retry(); err != nil {
			return nil, err
		}
		return h.view(c.Param("id"), as.session), nil
	})
}

// Advance moves to the next level after a success and arms it.
func (h *SessionHandler) Advance(c *gin.Context) {
	h.withSession(c, func(as *activeSession) (gin.H, error) {
		if err := as.session.Advance(); err != nil {
			return nil, err
		}
		if err := as.session.Arm(); err != nil {
			// Level advanced but content failed; the client re-arms.
			return nil, err
		}
		return h.view(c.Param("id"), as.session), nil
	})
}

// Get returns the current session state.
func (h *SessionHandler) Get(c *gin.Context) {
	h.withSession(c, func(as *activeSession) (gin.H, error) {
		return h.view(c.Param("id"), as.session), nil
	})
}

// Exit abandons the session, discarding the in-flight level without
// persisting a record for it.
func (h *SessionHandler) Exit(c *gin.Context) {
	id := c.Param("id")
	h.mu.Lock()
	as, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	as.mu.Lock()
	_ = as.session.Exit()
	as.mu.Unlock()

	h.log.Info("Session exited", zap.String("sessionID", id))
	c.Status(http.StatusNoContent)
}

// persist merges the emitted record; failures never interrupt play.
func (h *SessionHandler) persist(c *gin.Context, as *activeSession, rec *models.LevelRecord) {
	if as.userID == "" {
		h.log.Debug("No user for session, record not persisted",
			zap.String("domain", string(rec.Domain)), zap.Int("level", rec.Level))
		return
	}
	if err := h.telemetry.Merge(c.Request.Context(), as.userID, rec); err != nil {
		// Already logged by the store; the level still reads as complete
		// for this page view and the report catches up on a later write.
		return
	}
	h.events.Publish("level.recorded", gin.H{
		"userId":    as.userID,
		"domain":    rec.Domain,
		"level":     rec.Level,
		"points":    rec.Points,
		"completed": rec.Completed,
	})
}

func (h *SessionHandler) withSession(c *gin.Context, fn func(*activeSession) (gin.H, error)) {
	h.mu.RLock()
	as, ok := h.sessions[c.Param("id")]
	h.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	as.mu.Lock()
	resp, err := fn(as)
	as.mu.Unlock()

	if err != nil {
		switch {
		case errors.Is(err, content.ErrContentUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Level content unavailable", "retryable": true})
		case errors.Is(err, engine.ErrInvalidTransition), errors.Is(err, engine.ErrSessionTerminal):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, engine.ErrHintBudgetExceeded):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			h.log.Error("Session operation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// view renders the session state for the client without leaking the
// canonical answer or ordering.
func (h *SessionHandler) view(id string, s *engine.Session) gin.H {
	v := gin.H{
		"id":         id,
		"domain":     s.Domain(),
		"difficulty": s.Difficulty(),
		"level":      s.Level(),
		"attempt":    s.Attempt(),
		"elapsed":    s.Elapsed(),
		"remaining":  s.Remaining(),
		"state":      s.State(),
		"secondary":  s.Secondary(),
	}
	if lc := s.Content(); lc != nil {
		v["content"] = presentContent(lc)
	}
	return v
}

func presentContent(lc *content.LevelContent) gin.H {
	out := gin.H{"level": lc.Level}
	switch {
	case lc.Riddle != nil:
		out["question"] = lc.Riddle.Question
	case len(lc.Cards) > 0:
		out["cards"] = shuffled(lc.Cards)
	case len(lc.CorrectOrder) > 0:
		out["items"] = shuffled(lc.CorrectOrder)
	}
	return out
}

func shuffled(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
