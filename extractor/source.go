package extractor

import (
	"strconv"
	"strings"

	"github.com/streambinder/tubetag/entity"
)

const topicMarker = "Topic"

var (
	channelSuffixes   = []string{" - Topic", "VEVO"}
	genericCategories = []string{"music", "entertainment"}
)

// Extract derives the local metadata record of a probed item,
// without any network access
func Extract(source *entity.Source) entity.Metadata {
	artist, title := ParseTitle(source.Title)
	metadata := entity.Metadata{
		Title:       strings.TrimSpace(title),
		Artist:      Artist(artist, source.Uploader, source.Channel),
		Album:       strings.TrimSpace(source.Album),
		Genre:       genre(source),
		AlbumArtURL: Artwork(source),
	}

	if source.PlaylistIndex > 0 {
		metadata.Track = strconv.Itoa(source.PlaylistIndex)
	} else if source.TrackNumber > 0 {
		metadata.Track = strconv.Itoa(source.TrackNumber)
	}
	if len(source.UploadDate) >= 4 {
		metadata.Year = source.UploadDate[:4]
	}
	return metadata
}

// Artist reconciles the artist parsed from the title
// with the uploader and channel fields of the source
func Artist(parsed, uploader, channel string) string {
	artist := strings.TrimSpace(parsed)
	uploader = strings.TrimSpace(uploader)
	channel = strings.TrimSpace(channel)

	if (len(artist) == 0 || artist == entity.UnknownArtist) && len(uploader) > 0 {
		artist = uploader
	}
	if len(channel) > 0 && (len(artist) == 0 || artist == entity.UnknownArtist || strings.Contains(channel, topicMarker)) {
		if stripped := StripChannel(channel); len(stripped) > 0 {
			artist = stripped
		}
	}
	return artist
}

// StripChannel removes the decorations the platform adds
// to auto-generated and label channel names:
// > "Artist - Topic" → "Artist"
// > "ArtistVEVO"     → "Artist"
func StripChannel(channel string) string {
	for _, suffix := range channelSuffixes {
		channel = strings.TrimSuffix(channel, suffix)
	}
	return strings.TrimSpace(channel)
}

// Artwork picks the source cover: the explicit thumbnail, if any,
// otherwise the biggest of the thumbnails (first one on ties)
func Artwork(source *entity.Source) string {
	if url := strings.TrimSpace(source.Thumbnail); len(url) > 0 {
		return url
	}

	var (
		best = -1
		url  string
	)
	for _, thumbnail := range source.Thumbnails {
		if len(thumbnail.URL) == 0 {
			continue
		}
		if area := thumbnail.Area(); area > best {
			best, url = area, thumbnail.URL
		}
	}
	return url
}

func genre(source *entity.Source) string {
	if len(source.Genre) > 0 {
		if genre := strings.TrimSpace(source.Genre[0]); len(genre) > 0 {
			return genre
		}
	}

	for _, category := range source.Categories {
		category = strings.TrimSpace(category)
		if len(category) > 0 && !isGeneric(category) {
			return category
		}
	}
	return ""
}

func isGeneric(category string) bool {
	for _, generic := range genericCategories {
		if strings.EqualFold(category, generic) {
			return true
		}
	}
	return false
}
