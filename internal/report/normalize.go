package report

import (
	"fmt"
	"sort"
	"time"

	"cognicare-go/internal/models"
)

const maxLevels = 10

// Normalize reads a raw per-domain document in any of the persisted
// shapes and produces the canonical ordered level list. Shapes accepted:
//
//	(a) a "levels" array indexed by position
//	(b) top-level "level1".."level10" keys
//	(c) a nested "levels" map keyed "level1".."level10" or "1".."10"
//	(d) "level_N_attempt_M" keys, one per attempt (MemoryMatch)
//
// A level appearing in more than one shape is counted once: (a)/(b)/(d)
// take precedence over (c). A document matching no shape yields an empty
// list so the report degrades to "no data" instead of failing.
func Normalize(domain models.Domain, doc map[string]any) []models.LevelRecord {
	if doc == nil {
		return nil
	}

	byLevel := make(map[int]models.LevelRecord)

	// Shape (a): positional array.
	if arr, ok := doc["levels"].([]any); ok {
		for i, v := range arr {
			m, ok := asMap(v)
			if !ok {
				continue
			}
			level := AsInt(m["level"])
			if level == 0 {
				level = i + 1
			}
			if rec, ok := parseRecord(domain, level, m); ok {
				byLevel[level] = rec
			}
		}
	}

	// Shape (b): top-level levelN keys.
	for i := 1; i <= maxLevels; i++ {
		if m, ok := asMap(doc[fmt.Sprintf("level%d", i)]); ok {
			if rec, ok := parseRecord(domain, i, m); ok {
				byLevel[i] = rec
			}
		}
	}

	// Shape (d): one key per attempt; keep the best-scoring attempt for
	// each level, never the sum across attempts.
	for i := 1; i <= maxLevels; i++ {
		var best *models.LevelRecord
		for attempt := 1; ; attempt++ {
			m, ok := asMap(doc[fmt.Sprintf("level_%d_attempt_%d", i, attempt)])
			if !ok {
				break
			}
			rec, ok := parseRecord(domain, i, m)
			if !ok {
				continue
			}
			if best == nil || rec.Points > best.Points {
				r := rec
				best = &r
			}
		}
		if best != nil {
			byLevel[i] = *best
		}
	}

	// Shape (c): nested map, checked last to avoid double counting.
	if nested, ok := asMap(doc["levels"]); ok {
		for i := 1; i <= maxLevels; i++ {
			if _, seen := byLevel[i]; seen {
				continue
			}
			m, ok := asMap(nested[fmt.Sprintf("level%d", i)])
			if !ok {
				m, ok = asMap(nested[fmt.Sprintf("%d", i)])
			}
			if !ok {
				continue
			}
			if rec, ok := parseRecord(domain, i, m); ok {
				byLevel[i] = rec
			}
		}
	}

	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	out := make([]models.LevelRecord, 0, len(levels))
	for _, level := range levels {
		out = append(out, byLevel[level])
	}
	return out
}

// parseRecord reads one raw level object, tolerating the field-name
// variants the games have written over time. A record is canonical only
// when its completed flag is truthy or, for records without one, when it
// carries a positive point value.
func parseRecord(domain models.Domain, level int, m map[string]any) (models.LevelRecord, bool) {
	points := AsInt(firstOf(m, "points", "pointsEarned"))

	completed, hasFlag := asBoolField(m, "completed")
	if !hasFlag {
		completed = points > 0
	}
	if !completed && points <= 0 {
		return models.LevelRecord{}, false
	}

	attempts := AsInt(firstOf(m, "attempts", "attemptNumber"))
	if attempts == 0 {
		attempts = 1
	}

	rec := models.LevelRecord{
		Domain:          domain,
		Level:           level,
		Difficulty:      models.Difficulty(asString(m["difficulty"])),
		Attempts:        attempts,
		TimeTaken:       AsInt(m["timeTaken"]),
		SecondaryMetric: AsInt(firstOf(m, "moves", "movementCount", "flips", "deselects", "hintsUsed")),
		Points:          points,
		Completed:       completed,
	}
	if ts, err := time.Parse(time.RFC3339, asString(m["timestamp"])); err == nil {
		rec.Timestamp = ts
	}
	return rec, true
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch tv := v.(type) {
	case map[string]any:
		return tv, true
	case map[any]any:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, true
	}
	return nil, false
}

// AsInt coerces the numeric types the document store may hand back.
func AsInt(v any) int {
	switch tv := v.(type) {
	case int:
		return tv
	case int32:
		return int(tv)
	case int64:
		return int(tv)
	case float64:
		return int(tv)
	case float32:
		return int(tv)
	}
	return 0
}

func asFloat(v any) float64 {
	switch tv := v.(type) {
	case float64:
		return tv
	case float32:
		return float64(tv)
	case int:
		return float64(tv)
	case int32:
		return float64(tv)
	case int64:
		return float64(tv)
	}
	return 0
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBoolField(m map[string]any, key string) (value, present bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return false, false
	}
	b, ok := v.(bool)
	if !ok {
		return false, false
	}
	return b, true
}
