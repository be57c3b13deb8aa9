package detail

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/zoom"
)

// derivationVersion prefixes the RNG derivation input. Bump only together
// with a save-format migration.
const derivationVersion = "detail.v1"

// Subject is the object being described.
type Subject struct {
	ObjectID string
	Level    zoom.Level
	Tags     []string
	Material string
	Era      string
}

type cacheKey struct {
	objectID string
	level    zoom.Level
}

// Generator produces seeded procedural details. It is not safe for
// concurrent use.
type Generator struct {
	seed    int64
	library *Library
	custom  []Template
	cache   map[cacheKey][]string
}

// NewGenerator creates a generator over library. A nil library uses
// DefaultLibrary.
func NewGenerator(seed int64, library *Library) *Generator {
	if library == nil {
		library = DefaultLibrary()
	}
	return &Generator{
		seed:    seed,
		library: library,
		cache:   map[cacheKey][]string{},
	}
}

// Seed returns the active seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed switches seeds and drops every cached detail.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
	g.ClearCache()
}

// ClearCache drops every cached detail without changing the seed.
func (g *Generator) ClearCache() {
	g.cache = map[cacheKey][]string{}
}

// Cached reports whether details for (objectID, level) are memoized.
func (g *Generator) Cached(objectID string, level zoom.Level) bool {
	_, ok := g.cache[cacheKey{objectID: objectID, level: level}]
	return ok
}

// AddTemplate adds a template to this generator only.
func (g *Generator) AddTemplate(t Template) error {
	if t.DetailType == "" {
		t.DetailType = DefaultDetailType
	}
	if err := t.validate(); err != nil {
		return err
	}
	g.custom = append(g.custom, t)
	return nil
}

// GenerateDetail draws one detail of detailType (any type when empty). It
// returns false when no template applies.
func (g *Generator) GenerateDetail(s Subject, detailType string, context map[string]string) (string, bool) {
	candidates := g.applicable(s, detailType, context)
	if len(candidates) == 0 {
		return "", false
	}
	rng := g.rngFor(s.ObjectID, s.Level)
	picked := candidates[rng.Intn(len(candidates))]
	return g.fill(picked.Pattern, s, rng, context), true
}

// GenerateDetails draws up to count details, preferring a different detail
// type for each pick and reusing types once every type has been drawn.
// Results are memoized by (object id, level); later calls return the cached
// list until ClearCache or SetSeed.
func (g *Generator) GenerateDetails(s Subject, count int, context map[string]string) []string {
	key := cacheKey{objectID: s.ObjectID, level: s.Level}
	if cached, ok := g.cache[key]; ok {
		return append([]string(nil), cached...)
	}

	candidates := g.applicable(s, "", context)
	details := []string{}
	if len(candidates) > 0 {
		rng := g.rngFor(s.ObjectID, s.Level)
		used := map[string]bool{}
		for i := 0; i < count; i++ {
			pool := unusedTypes(candidates, used)
			if len(pool) == 0 {
				pool = candidates
			}
			picked := pool[rng.Intn(len(pool))]
			used[picked.DetailType] = true
			details = append(details, g.fill(picked.Pattern, s, rng, context))
		}
	}

	g.cache[key] = details
	return append([]string(nil), details...)
}

// GenerateFactsFromDetails re-derives the subject's random stream and grants
// each applicable template's fact with probability equal to its significance.
// Templates are visited in library order, then custom additions.
func (g *Generator) GenerateFactsFromDetails(s Subject) []string {
	rng := g.rngFor(s.ObjectID, s.Level)
	seen := map[string]bool{}
	var facts []string
	for _, t := range g.applicable(s, "", nil) {
		if t.FactTemplate == "" {
			continue
		}
		if rng.Float64() >= t.Significance {
			continue
		}
		fact := formatFact(t.FactTemplate, s)
		if !seen[fact] {
			seen[fact] = true
			facts = append(facts, fact)
		}
	}
	return facts
}

// applicable lists matching templates whose context placeholders are all
// provided, library templates first.
func (g *Generator) applicable(s Subject, detailType string, context map[string]string) []Template {
	var out []Template
	for _, group := range [][]Template{g.library.templates, g.custom} {
		for _, t := range group {
			if t.AppliesTo(s.Tags, s.Material, detailType) && t.contextSatisfied(context) {
				out = append(out, t)
			}
		}
	}
	return out
}

func unusedTypes(candidates []Template, used map[string]bool) []Template {
	var out []Template
	for _, t := range candidates {
		if !used[t.DetailType] {
			out = append(out, t)
		}
	}
	return out
}

// rngFor derives a private source from (seed, objectID, level).
func (g *Generator) rngFor(objectID string, level zoom.Level) *rand.Rand {
	input := fmt.Sprintf("%s|%d|%s|%d", derivationVersion, g.seed, objectID, int(level))
	sum := sha256.Sum256([]byte(input))
	return rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(sum[:8]))))
}

func (g *Generator) fill(pattern string, s Subject, rng *rand.Rand, context map[string]string) string {
	out := pattern
	for strings.Contains(out, "{adjective}") {
		out = strings.Replace(out, "{adjective}", g.library.adjectives[rng.Intn(len(g.library.adjectives))], 1)
	}
	for strings.Contains(out, "{noun}") {
		out = strings.Replace(out, "{noun}", g.library.nouns[rng.Intn(len(g.library.nouns))], 1)
	}
	out = strings.ReplaceAll(out, "{material}", valueOr(s.Material, "surface"))
	out = strings.ReplaceAll(out, "{era}", valueOr(s.Era, "uncertain"))

	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = strings.ReplaceAll(out, "{"+k+"}", context[k])
	}
	return capitalize(out)
}

func formatFact(template string, s Subject) string {
	replacer := strings.NewReplacer(
		"{object_id}", s.ObjectID,
		"{material}", valueOr(s.Material, "unknown"),
		"{era}", valueOr(s.Era, "unknown"),
		"{zoom}", s.Level.String(),
	)
	return replacer.Replace(template)
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Snapshot is the serialized generator state.
type Snapshot struct {
	Seed           int64               `json:"seed"`
	GeneratedCache map[string][]string `json:"generated_cache"`
}

// Snapshot captures the seed and cache. Custom templates are configuration
// and are not part of the snapshot.
func (g *Generator) Snapshot() Snapshot {
	cache := make(map[string][]string, len(g.cache))
	for key, details := range g.cache {
		cache[key.objectID+":"+strconv.Itoa(int(key.level))] = append([]string(nil), details...)
	}
	return Snapshot{Seed: g.seed, GeneratedCache: cache}
}

// Restore replaces the seed and cache from a snapshot.
func (g *Generator) Restore(s Snapshot) error {
	cache := make(map[cacheKey][]string, len(s.GeneratedCache))
	for raw, details := range s.GeneratedCache {
		idx := strings.LastIndex(raw, ":")
		if idx <= 0 {
			return apperrors.New(apperrors.CodeSnapshotInvalid, fmt.Sprintf("generated cache key %q has no zoom level", raw))
		}
		level, err := zoom.ParseLevel(raw[idx+1:])
		if err != nil {
			return apperrors.Wrap(apperrors.CodeSnapshotInvalid, fmt.Sprintf("generated cache key %q", raw), err)
		}
		cache[cacheKey{objectID: raw[:idx], level: level}] = append([]string(nil), details...)
	}
	g.seed = s.Seed
	g.cache = cache
	return nil
}
