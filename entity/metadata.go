package entity

import (
	"strconv"
	"strings"

	"github.com/streambinder/tubetag/util"
)

const (
	UnknownArtist  = "Unknown Artist"
	UnknownTitle   = "Unknown Title"
	UnknownAlbum   = "Unknown Album"
	VariousArtists = "Various Artists"
	SingleAlbum    = "Single"
)

// Metadata is the descriptive record threaded through the pipeline:
// a blank field is absent, which is different from being
// set to a default (defaults are only applied at use, see TrackPath)
type Metadata struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Artist      string `json:"artist,omitempty" yaml:"artist,omitempty"`
	Album       string `json:"album,omitempty" yaml:"album,omitempty"`
	Year        string `json:"year,omitempty" yaml:"year,omitempty"`
	Genre       string `json:"genre,omitempty" yaml:"genre,omitempty"`
	Track       string `json:"track,omitempty" yaml:"track,omitempty"`
	AlbumArtURL string `json:"album_art_url,omitempty" yaml:"album_art_url,omitempty"`
}

// Fuse merges the three layers field by field:
// overrides win over enrichment, which wins over source;
// absent fields never shadow a present one
func Fuse(source, enrichment, overrides Metadata) Metadata {
	return Metadata{
		Title:       util.FirstNonEmpty(overrides.Title, enrichment.Title, source.Title),
		Artist:      util.FirstNonEmpty(overrides.Artist, enrichment.Artist, source.Artist),
		Album:       util.FirstNonEmpty(overrides.Album, enrichment.Album, source.Album),
		Year:        util.FirstNonEmpty(overrides.Year, enrichment.Year, source.Year),
		Genre:       util.FirstNonEmpty(overrides.Genre, enrichment.Genre, source.Genre),
		Track:       util.FirstNonEmpty(overrides.Track, enrichment.Track, source.Track),
		AlbumArtURL: util.FirstNonEmpty(overrides.AlbumArtURL, enrichment.AlbumArtURL, source.AlbumArtURL),
	}
}

// WithTrack returns a copy of the record numbered after
// the given (1-based) position, if positive
func (metadata Metadata) WithTrack(position int) Metadata {
	if position > 0 {
		metadata.Track = strconv.Itoa(position)
	}
	return metadata
}

// IsEmpty reports whether no field is present
func (metadata Metadata) IsEmpty() bool {
	return metadata.fields() == 0
}

// HasArtist reports whether a real artist is set,
// i.e. present and not the unknown placeholder
func (metadata Metadata) HasArtist() bool {
	artist := strings.TrimSpace(metadata.Artist)
	return len(artist) > 0 && artist != UnknownArtist
}

func (metadata Metadata) fields() (count int) {
	for _, value := range []string{
		metadata.Title, metadata.Artist, metadata.Album, metadata.Year,
		metadata.Genre, metadata.Track, metadata.AlbumArtURL,
	} {
		if len(strings.TrimSpace(value)) > 0 {
			count++
		}
	}
	return
}
