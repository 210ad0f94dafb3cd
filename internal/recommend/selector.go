package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	"spotify-clone/internal/catalog"
	"spotify-clone/internal/models"
)

// MaxResults is the hard cap on a single "made for you" set. Requested
// counts are clamped to [1, MaxResults] before any work happens.
const MaxResults = 10

// Fractions of the result drawn deterministically (best scores) versus
// sampled at random from the whole representative pool.
const (
	topFraction    = 0.7
	randomFraction = 0.3
)

// Strategy reports which path produced a result set. Useful for logs and
// metrics; callers don't need to branch on it.
type Strategy string

const (
	StrategyScored   Strategy = "scored"
	StrategyFallback Strategy = "fallback"
)

// Engine turns the catalog into small personalized track sets. It holds no
// per-request state, so one Engine serves concurrent requests.
type Engine struct {
	catalog catalog.Store
	seed    func() int64
}

func NewEngine(store catalog.Store) *Engine {
	return &Engine{
		catalog: store,
		seed:    func() int64 { return time.Now().UnixNano() },
	}
}

// ForYou returns up to count tracks balancing score quality, one-per-artist
// diversity, and deliberate randomness. Degenerate inputs (empty catalog,
// catalog smaller than count) are handled locally; the only error surfaced
// is a catalog read failing on both the scored path and the random
// fallback.
func (e *Engine) ForYou(ctx context.Context, count int) ([]models.Track, Strategy, error) {
	count = clampCount(count)

	start := time.Now()
	defer func() {
		selectionDuration.Observe(time.Since(start).Seconds())
	}()

	tracks, err := e.catalog.All(ctx)
	if err != nil {
		slog.Warn("catalog enumeration failed, trying random fallback", "error", err)
		return e.fallback(ctx, count, err)
	}

	// Nothing to pick from: an empty result is an answer, not an error.
	if len(tracks) == 0 {
		recommendationsServed.WithLabelValues(string(StrategyScored)).Inc()
		return []models.Track{}, StrategyScored, nil
	}

	// Selection is meaningless when the whole catalog fits in the answer.
	if len(tracks) <= count {
		recommendationsServed.WithLabelValues(string(StrategyScored)).Inc()
		out := make([]models.Track, len(tracks))
		copy(out, tracks)
		return out, StrategyScored, nil
	}

	// Fresh source per call so concurrent requests don't correlate.
	rng := rand.New(rand.NewSource(e.seed()))

	result := e.pick(tracks, count, rng)
	if len(result) == 0 {
		// Edge-case sizes can drain the pipeline. Degrade to a plain
		// random sample rather than answering with nothing.
		slog.Warn("scored selection came back empty, using random fallback", "catalog_size", len(tracks))
		return e.fallback(ctx, count, nil)
	}

	recommendationsServed.WithLabelValues(string(StrategyScored)).Inc()
	return result, StrategyScored, nil
}

// pick runs the scored pipeline: score, group per artist, rank, blend top
// picks with random picks, shuffle, truncate.
func (e *Engine) pick(tracks []models.Track, count int, rng *rand.Rand) []models.Track {
	scorer := NewScorer(rng)
	scored := make([]ScoredTrack, len(tracks))
	for i, t := range tracks {
		scored[i] = scorer.Score(t)
	}

	reps := groupByArtist(scored)

	ranked := make([]ScoredTrack, len(reps))
	copy(ranked, reps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	topN := int(math.Ceil(float64(count) * topFraction))
	if topN > len(ranked) {
		topN = len(ranked)
	}
	randN := int(math.Floor(float64(count) * randomFraction))

	// Random picks come from the full representative pool, not the
	// residual after the top picks, so overlap is possible and deduped
	// below.
	combined := append([]ScoredTrack{}, ranked[:topN]...)
	combined = append(combined, sampleWithoutReplacement(reps, randN, rng)...)

	chosen := make([]models.Track, 0, count)
	seen := make(map[uint]bool, count)
	for _, st := range combined {
		if seen[st.Track.ID] {
			continue
		}
		seen[st.Track.ID] = true
		chosen = append(chosen, st.Track)
	}

	// Overlap between the two halves can leave us short even though more
	// distinct artists exist. Fill from the ranking before shuffling so a
	// big enough pool always yields a full set.
	for _, st := range ranked[topN:] {
		if len(chosen) >= count {
			break
		}
		if seen[st.Track.ID] {
			continue
		}
		seen[st.Track.ID] = true
		chosen = append(chosen, st.Track)
	}

	rng.Shuffle(len(chosen), func(i, j int) {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	})

	if len(chosen) > count {
		chosen = chosen[:count]
	}
	return chosen
}

// fallback serves a plain uniform sample when the scored pipeline cannot.
// If the sample read also fails, that is the one error callers ever see.
func (e *Engine) fallback(ctx context.Context, count int, primaryErr error) ([]models.Track, Strategy, error) {
	sample, err := e.catalog.RandomSample(ctx, count)
	if err != nil {
		recommendationsFailed.Inc()
		if primaryErr != nil {
			return nil, StrategyFallback, fmt.Errorf("catalog unavailable: %v (fallback: %w)", primaryErr, err)
		}
		return nil, StrategyFallback, fmt.Errorf("catalog unavailable: %w", err)
	}
	recommendationsServed.WithLabelValues(string(StrategyFallback)).Inc()
	return sample, StrategyFallback, nil
}

// groupByArtist keeps exactly one representative per distinct artist
// string: the first track, in input order, that attains the group's
// maximum score. Output preserves first-encounter order of artists.
func groupByArtist(scored []ScoredTrack) []ScoredTrack {
	index := make(map[string]int, len(scored))
	reps := make([]ScoredTrack, 0, len(scored))

	for _, st := range scored {
		i, ok := index[st.Track.Artist]
		if !ok {
			index[st.Track.Artist] = len(reps)
			reps = append(reps, st)
			continue
		}
		// Strictly greater keeps the earliest track at the current max.
		if st.Score > reps[i].Score {
			reps[i] = st
		}
	}
	return reps
}

// sampleWithoutReplacement draws n elements uniformly from pool via a
// partial Fisher-Yates over an index permutation.
func sampleWithoutReplacement(pool []ScoredTrack, n int, rng *rand.Rand) []ScoredTrack {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}
	idx := rng.Perm(len(pool))[:n]
	out := make([]ScoredTrack, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

func clampCount(count int) int {
	if count < 1 {
		return 1
	}
	if count > MaxResults {
		return MaxResults
	}
	return count
}
