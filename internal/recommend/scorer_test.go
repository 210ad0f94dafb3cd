package recommend

import (
	"math/rand"
	"testing"
	"time"

	"spotify-clone/internal/models"
)

func intPtr(v int) *int { return &v }

func TestEraOfBoundaries(t *testing.T) {
	cases := []struct {
		year int
		want string
	}{
		{2024, EraRecent},
		{2020, EraRecent},
		{2019, EraModern},
		{2010, EraModern},
		{2009, EraClassic},
		{2000, EraClassic},
		{1999, EraVintage},
		{1973, EraVintage},
		{0, EraVintage},
	}

	for _, c := range cases {
		if got := EraOf(c.year); got != c.want {
			t.Errorf("EraOf(%d) = %q, want %q", c.year, got, c.want)
		}
	}
}

func TestAlbumPopularity(t *testing.T) {
	noAlbum := models.Track{}
	if got := albumPopularity(noAlbum); got != 1 {
		t.Errorf("track without album: popularity = %d, want 1", got)
	}

	emptyAlbum := models.Track{Album: &models.Album{}}
	if got := albumPopularity(emptyAlbum); got != 1 {
		t.Errorf("track on empty album: popularity = %d, want 1", got)
	}

	full := models.Track{Album: &models.Album{Tracks: make([]models.Track, 12)}}
	if got := albumPopularity(full); got != 12 {
		t.Errorf("track on 12-track album: popularity = %d, want 12", got)
	}
}

func TestPopularityBonusCap(t *testing.T) {
	// The normalized contribution must never exceed 10 * 0.3 no matter
	// how bloated the album is.
	if got := popularityBonus(200); got != 3.0 {
		t.Errorf("popularityBonus(200) = %v, want 3.0", got)
	}
	if got := popularityBonus(4); got != 1.2 {
		t.Errorf("popularityBonus(4) = %v, want 1.2", got)
	}
	if got := popularityBonus(1); got != 0.3 {
		t.Errorf("popularityBonus(1) = %v, want 0.3", got)
	}
}

func TestDurationBonus(t *testing.T) {
	cases := []struct {
		seconds int
		want    float64
	}{
		{180, 2}, // sweet-spot lower edge
		{240, 2},
		{300, 2}, // sweet-spot upper edge
		{179, 1},
		{301, 1},
		{120, 1},
		{420, 1},
		{119, 0},
		{421, 0},
		{0, 0}, // unknown duration
	}

	for _, c := range cases {
		if got := durationBonus(c.seconds); got != c.want {
			t.Errorf("durationBonus(%d) = %v, want %v", c.seconds, got, c.want)
		}
	}
}

func TestArtistNameBonus(t *testing.T) {
	if got := artistNameBonus(""); got != 0 {
		t.Errorf("empty artist: bonus = %v, want 0", got)
	}

	// 4 code points, not 5 bytes
	if got := artistNameBonus("Röyk"); got != 4*0.02 {
		t.Errorf("unicode artist: bonus = %v, want %v", got, 4*0.02)
	}

	long := make([]byte, 120)
	for i := range long {
		long[i] = 'a'
	}
	if got := artistNameBonus(string(long)); got != 50*0.02 {
		t.Errorf("long artist name not capped: bonus = %v, want %v", got, 50*0.02)
	}
}

func TestScoreDegradesWithoutAlbum(t *testing.T) {
	s := NewScorer(rand.New(rand.NewSource(1)))
	s.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	st := s.Score(models.Track{Title: "Untitled", Artist: "Nobody"})

	if st.Year != 2025 {
		t.Errorf("missing album must default to the current year, got %d", st.Year)
	}
	if st.Era != EraRecent {
		t.Errorf("current-year default must land in %q, got %q", EraRecent, st.Era)
	}
	if st.Popularity != 1 {
		t.Errorf("popularity floor violated: got %d", st.Popularity)
	}
}

func TestScoreStaysInExpectedRange(t *testing.T) {
	// era recent (3) + popularity 5*0.3 + duration 2 + artist 4*0.02
	base := 3 + 1.5 + 2 + 0.08

	track := models.Track{
		Artist:   "ABBA",
		Duration: 200,
		Album: &models.Album{
			ReleaseYear: intPtr(2021),
			Tracks:      make([]models.Track, 5),
		},
	}

	s := NewScorer(rand.New(rand.NewSource(42)))
	for i := 0; i < 100; i++ {
		got := s.Score(track).Score
		if got < base || got >= base+explorationWeight {
			t.Fatalf("score %v outside [%v, %v)", got, base, base+explorationWeight)
		}
	}
}
