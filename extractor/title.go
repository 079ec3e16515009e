package extractor

import (
	"regexp"
	"strings"

	"github.com/streambinder/tubetag/entity"
)

var (
	// separators between artist and title, by priority:
	// each one splits on its first occurrence
	separators = []*regexp.Regexp{
		regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`),
		regexp.MustCompile(`^(.+?)\s+–\s+(.+)$`),
		regexp.MustCompile(`^(.+?)\s*:\s+(.+)$`),
	}
	featuringMarkers  = []string{" feat", " ft.", " ft "}
	featuringVariants = []string{" feat. ", " feat ", " ft. ", " ft "}
)

// ParseTitle splits a free-text video title into artist and title:
// > "Artist - Title"           → (Artist, Title)
// > "Artist ft. Guest - Title" → (Artist, Title)
// > "Title feat. Guest"        → (Title, "Title feat. Guest")
// > "Title"                    → (Unknown Artist, Title)
func ParseTitle(text string) (artist, title string) {
	for _, separator := range separators {
		if match := separator.FindStringSubmatch(text); match != nil {
			artist, title = strings.TrimSpace(match[1]), strings.TrimSpace(match[2])
			if primary, _, ok := cutFeaturing(artist); ok && len(primary) > 0 {
				artist = primary
			}
			return artist, title
		}
	}

	lower := strings.ToLower(text)
	for _, marker := range featuringMarkers {
		if !strings.Contains(lower, marker) {
			continue
		}
		if left, right, ok := cutFeaturing(text); ok {
			return left, left + " feat. " + right
		}
		break
	}

	return entity.UnknownArtist, text
}

// cutFeaturing splits the text around the first featuring variant
// (by variant priority) it literally contains: markers are detected
// regardless of case, but only lowercase variants split
func cutFeaturing(text string) (left, right string, ok bool) {
	for _, variant := range featuringVariants {
		if at := strings.Index(text, variant); at >= 0 {
			return strings.TrimSpace(text[:at]), strings.TrimSpace(text[at+len(variant):]), true
		}
	}
	return "", "", false
}
