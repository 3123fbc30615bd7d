package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cognicare-go/internal/models"
	"cognicare-go/internal/report"
)

// TelemetryStore merges LevelRecords into the per-user, per-domain
// documents. Writes are merges, never replacements: the other level keys
// of a document survive a write for one level. A later write for a level
// that already holds a higher-scoring record replaces it: last write
// wins, matching the behavior the games have always had.
type TelemetryStore struct {
	docs  DocumentStore
	log   *zap.Logger
	clock func() time.Time
}

func NewTelemetryStore(docs DocumentStore, log *zap.Logger) *TelemetryStore {
	return &TelemetryStore{docs: docs, log: log, clock: time.Now}
}

// WithClock pins the timestamp source. Test hook.
func (t *TelemetryStore) WithClock(clock func() time.Time) *TelemetryStore {
	t.clock = clock
	return t
}

// Merge persists one level outcome. The caller treats this as
// fire-and-forget: an error is logged and the session continues, the
// report simply undercounts until a later write succeeds.
func (t *TelemetryStore) Merge(ctx context.Context, userID string, rec *models.LevelRecord) error {
	if userID == "" {
		return fmt.Errorf("no user: telemetry not persisted")
	}
	collection := rec.Domain.Collection()

	var err error
	switch rec.Domain {
	case models.MemoryMatch:
		// MemoryMatch keeps every attempt under its own key; the report
		// layer later picks the best-scoring attempt per level.
		fields := map[string]any{
			fmt.Sprintf("level_%d_attempt_%d", rec.Level, rec.Attempts): levelDoc(rec),
		}
		err = t.docs.Merge(ctx, collection, userID, fields)

	case models.ObjectIdentification:
		err = t.mergeObjectIdentification(ctx, collection, userID, rec)

	case models.StoryTelling:
		err = t.mergeKeyed(ctx, collection, userID, rec, fmt.Sprintf("levels.level%d", rec.Level))

	default: // PuzzleSolving, SequenceRecall
		err = t.mergeKeyed(ctx, collection, userID, rec, fmt.Sprintf("level%d", rec.Level))
	}

	if err != nil {
		t.log.Error("Failed to persist level record",
			zap.String("userID", userID),
			zap.String("domain", string(rec.Domain)),
			zap.Int("level", rec.Level),
			zap.Error(err))
		return err
	}
	return nil
}

// Reset zeroes a domain's aggregate fields when a fresh run starts, the
// way the puzzle game clears its previous report before level 1.
func (t *TelemetryStore) Reset(ctx context.Context, userID string, domain models.Domain, difficulty models.Difficulty) error {
	fields := map[string]any{
		"totalPoints":     0,
		"completedLevels": 0,
		"report":          nil,
		"finalReport":     false,
		"stage":           string(difficulty),
		"lastUpdated":     t.clock().UTC().Format(time.RFC3339),
	}
	return t.docs.Merge(ctx, domain.Collection(), userID, fields)
}

// mergeKeyed handles the domains that store one record under a per-level
// field key. Aggregate totals are read-modify-write on top of the stored
// document; a concurrent second tab can therefore lose an increment,
// which is accepted (single-user-per-account model).
func (t *TelemetryStore) mergeKeyed(ctx context.Context, collection, userID string, rec *models.LevelRecord, fieldKey string) error {
	cur, err := t.docs.Get(ctx, collection, userID)
	if err != nil {
		return err
	}
	if cur == nil {
		cur = make(map[string]any)
	}

	totalPoints := report.AsInt(cur["totalPoints"]) + rec.Points
	completedLevels := report.AsInt(cur["completedLevels"])
	if rec.Completed {
		completedLevels++
	}

	now := t.clock().UTC().Format(time.RFC3339)
	fields := map[string]any{
		fieldKey:          levelDoc(rec),
		"totalPoints":     totalPoints,
		"completedLevels": completedLevels,
		"lastUpdated":     now,
		"stage":           string(rec.Difficulty),
	}
	if rec.Domain == models.PuzzleSolving && rec.Completed && rec.Level == 10 {
		fields["finalReport"] = true
		fields["completedAt"] = now
	}

	// Recompute the cached report sub-document over the merged state so
	// the report screen can fall back to it. The per-level records stay
	// the source of truth.
	merged := deepCopy(cur)
	for k, v := range fields {
		setField(merged, k, v)
	}
	if rep := reportDoc(rec.Domain, merged, now); rep != nil {
		fields["report"] = rep
	}

	return t.docs.Merge(ctx, collection, userID, fields)
}

func (t *TelemetryStore) mergeObjectIdentification(ctx context.Context, collection, userID string, rec *models.LevelRecord) error {
	if err := t.docs.Append(ctx, collection, userID, "levels", levelDoc(rec)); err != nil {
		return err
	}

	cur, err := t.docs.Get(ctx, collection, userID)
	if err != nil {
		return err
	}
	if cur == nil {
		cur = make(map[string]any)
	}

	completed := report.AsInt(cur["totalLevelsCompleted"])
	if rec.Completed {
		completed = rec.Level
	}
	fields := map[string]any{
		"totalPoints":          report.AsInt(cur["totalPoints"]) + rec.Points,
		"totalLevelsCompleted": completed,
		"lastUpdated":          t.clock().UTC().Format(time.RFC3339),
		"stage":                string(rec.Difficulty),
	}
	return t.docs.Merge(ctx, collection, userID, fields)
}

// levelDoc renders a record with the field names its domain has always
// persisted, so existing readers keep working.
func levelDoc(rec *models.LevelRecord) map[string]any {
	doc := map[string]any{
		"level":      rec.Level,
		"timeTaken":  rec.TimeTaken,
		"completed":  rec.Completed,
		"difficulty": string(rec.Difficulty),
		"timestamp":  rec.Timestamp.UTC().Format(time.RFC3339),
	}
	switch rec.Domain {
	case models.StoryTelling:
		doc["points"] = rec.Points
		doc["movementCount"] = rec.SecondaryMetric
		doc["attemptNumber"] = rec.Attempts
	case models.MemoryMatch:
		doc["points"] = rec.Points
		doc["moves"] = rec.SecondaryMetric
		doc["attempts"] = rec.Attempts
		doc["attemptNumber"] = rec.Attempts
	case models.ObjectIdentification:
		doc["pointsEarned"] = rec.Points
		doc["hintsUsed"] = rec.SecondaryMetric
		doc["retryUsed"] = rec.Attempts > 1
	case models.SequenceRecall:
		doc["points"] = rec.Points
		doc["deselects"] = rec.SecondaryMetric
		doc["attempts"] = rec.Attempts
	default:
		doc["points"] = rec.Points
		doc["moves"] = rec.SecondaryMetric
		doc["attempts"] = rec.Attempts
	}
	return doc
}

// reportDoc computes the cached per-domain report from a merged document.
func reportDoc(domain models.Domain, doc map[string]any, now string) map[string]any {
	records := report.Normalize(domain, doc)
	if len(records) == 0 {
		return nil
	}
	dr := report.BuildDomainReport(domain, records)
	return map[string]any{
		"score":                dr.TotalPoints,
		"severity":             string(dr.Severity),
		"totalLevelsCompleted": dr.LevelsCompleted,
		"averageTime":          dr.AverageTime,
		averageMetricKey(domain): dr.AverageSecondaryMetric,
		"lastUpdated":          now,
	}
}

func averageMetricKey(domain models.Domain) string {
	switch domain {
	case models.MemoryMatch:
		return "averageFlips"
	case models.ObjectIdentification:
		return "averageHintsUsed"
	case models.SequenceRecall:
		return "averageDeselects"
	default:
		return "averageMoves"
	}
}
