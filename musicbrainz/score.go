package musicbrainz

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	titleWeight     = 0.6
	artistWeight    = 0.4
	neutralArtist   = 0.5
	acceptThreshold = 0.6
)

// Candidate is a single recording returned by the search endpoint,
// flattened to the fields the client cares about
type Candidate struct {
	Title     string
	Artist    string // all the credited artists, joined
	Credit    string // first credited artist, used for scoring
	Album     string
	Year      string
	Genre     string
	Track     string
	ReleaseID string
}

// Similarity returns the longest-matching-blocks ratio, in [0,1],
// of the case-insensitive comparison between a and b
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// Score weighs title and artist similarities of the candidate against the query:
// when no artist is queried, its contribution is neutral
func Score(title, artist string, candidate Candidate) float64 {
	artistScore := neutralArtist
	if len(artist) > 0 {
		artistScore = Similarity(artist, candidateArtist(candidate))
	}
	return titleWeight*Similarity(title, candidate.Title) + artistWeight*artistScore
}

// Best returns the candidate with the strictly highest score (first one on ties),
// if such score is above the acceptance threshold
func Best(title, artist string, candidates []Candidate) (Candidate, float64, bool) {
	var (
		best      Candidate
		bestScore float64
		found     bool
	)
	for _, candidate := range candidates {
		if score := Score(title, artist, candidate); !found || score > bestScore {
			best, bestScore, found = candidate, score, true
		}
	}
	return best, bestScore, found && Accept(bestScore)
}

// Accept reports whether a score is high enough for a match to be trusted
func Accept(score float64) bool {
	return score > acceptThreshold
}

func candidateArtist(candidate Candidate) string {
	if len(candidate.Credit) > 0 {
		return candidate.Credit
	}
	return candidate.Artist
}
