package recommend

import (
	"math/rand"
	"time"
	"unicode/utf8"

	"spotify-clone/internal/models"
)

// Era buckets for the release-year bonus.
const (
	EraRecent  = "recent"  // 2020 and later
	EraModern  = "modern"  // 2010-2019
	EraClassic = "classic" // 2000-2009
	EraVintage = "vintage" // everything older
)

// Hand-tuned scoring weights. The exploration weight is deliberately in the
// same class as the era bonus so randomness can actually reorder close
// scores between calls instead of being rounding noise.
const (
	eraRecentBonus  = 3.0
	eraModernBonus  = 2.0
	eraClassicBonus = 1.5
	eraVintageBonus = 1.0

	popularityCap    = 10
	popularityWeight = 0.3

	artistLenCap    = 50
	artistLenWeight = 0.02

	explorationWeight = 3.0
)

// ScoredTrack is a Track plus everything the selector needs to rank it.
// Instances live for one request and are never persisted.
type ScoredTrack struct {
	Track      models.Track
	Year       int
	Era        string
	Popularity int
	Score      float64
}

// Scorer computes recommendation scores. Not safe for concurrent use; each
// request builds its own Scorer around a freshly seeded source.
type Scorer struct {
	rng *rand.Rand
	now func() time.Time
}

func NewScorer(rng *rand.Rand) *Scorer {
	return &Scorer{rng: rng, now: time.Now}
}

// Score computes the recommendation score for one track. Every missing
// input (no album, no year, no duration, empty artist) degrades to a
// neutral default; scoring never fails.
func (s *Scorer) Score(t models.Track) ScoredTrack {
	year := s.releaseYear(t)
	era := EraOf(year)
	pop := albumPopularity(t)

	score := eraBonus(era) +
		popularityBonus(pop) +
		durationBonus(t.Duration) +
		artistNameBonus(t.Artist) +
		s.rng.Float64()*explorationWeight

	return ScoredTrack{
		Track:      t,
		Year:       year,
		Era:        era,
		Popularity: pop,
		Score:      score,
	}
}

// releaseYear resolves a track's release year via its album. Tracks without
// one are treated as current-year releases: a neutral "recent" default, not
// a penalty.
func (s *Scorer) releaseYear(t models.Track) int {
	if t.Album != nil && t.Album.ReleaseYear != nil {
		return *t.Album.ReleaseYear
	}
	return s.now().Year()
}

// EraOf buckets a release year. Lower bounds are inclusive and checked
// newest-first, so every year lands in exactly one era.
func EraOf(year int) string {
	switch {
	case year >= 2020:
		return EraRecent
	case year >= 2010:
		return EraModern
	case year >= 2000:
		return EraClassic
	default:
		return EraVintage
	}
}

func eraBonus(era string) float64 {
	switch era {
	case EraRecent:
		return eraRecentBonus
	case EraModern:
		return eraModernBonus
	case EraClassic:
		return eraClassicBonus
	default:
		return eraVintageBonus
	}
}

// albumPopularity uses the album's track count as a popularity proxy,
// floored at 1 for singles and empty albums.
func albumPopularity(t models.Track) int {
	if t.Album != nil && len(t.Album.Tracks) > 0 {
		return len(t.Album.Tracks)
	}
	return 1
}

// popularityBonus caps the proxy so a 40-track compilation doesn't drown
// out everything else.
func popularityBonus(pop int) float64 {
	if pop > popularityCap {
		pop = popularityCap
	}
	return float64(pop) * popularityWeight
}

// durationBonus rewards radio-friendly lengths: the 3-5 minute sweet spot
// gets the full bonus, anything between 2 and 7 minutes half of it.
// Unknown durations (0) get nothing.
func durationBonus(seconds int) float64 {
	switch {
	case seconds >= 180 && seconds <= 300:
		return 2
	case seconds >= 120 && seconds <= 420:
		return 1
	default:
		return 0
	}
}

// artistNameBonus is a crude diversity proxy on artist-name length,
// counted in code points so multi-byte names aren't inflated.
func artistNameBonus(artist string) float64 {
	n := utf8.RuneCountInString(artist)
	if n > artistLenCap {
		n = artistLenCap
	}
	return float64(n) * artistLenWeight
}
