package entity

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/streambinder/tubetag/util"
)

type Artwork struct {
	URL  string
	Data []byte
}

type Track struct {
	ID          string
	Metadata    Metadata
	Artwork     Artwork
	Duration    int    // in seconds
	Position    int    // 1-based position within the batch, zero for singles
	UpstreamURL string // URL of the video the track is fetched from
}

type TrackPath struct {
	track *Track
}

const (
	TrackFormat   = "mp3"
	ArtworkFormat = "jpg"
)

// NewTrack binds the given metadata to the probed source
func NewTrack(source *Source, metadata Metadata) *Track {
	return &Track{
		ID:          source.ID,
		Metadata:    metadata,
		Artwork:     Artwork{URL: metadata.AlbumArtURL},
		Duration:    int(source.Duration),
		UpstreamURL: source.Link(),
	}
}

// Artist returns the track artist, defaulted if absent
func (track *Track) Artist() string {
	return util.FirstNonEmpty(track.Metadata.Artist, UnknownArtist)
}

// Title returns the track title, defaulted if absent
func (track *Track) Title() string {
	return util.FirstNonEmpty(track.Metadata.Title, UnknownTitle)
}

// IsSingle reports whether the track is not part of an album,
// i.e. its album is absent or the placeholder "Single"
func (track *Track) IsSingle() bool {
	album := strings.TrimSpace(track.Metadata.Album)
	return len(album) == 0 || album == SingleAlbum
}

func (track *Track) Path() TrackPath {
	return TrackPath{track}
}

// Folder is the destination folder, relative to the library root:
// > single: Artist
// > album:  Artist/Album
func (trackPath TrackPath) Folder() string {
	artist := util.FirstNonEmpty(util.SanitizeSegment(trackPath.track.Artist()), UnknownArtist)
	if trackPath.track.IsSingle() {
		return artist
	}
	return filepath.Join(artist, util.FirstNonEmpty(util.SanitizeSegment(trackPath.track.Metadata.Album), UnknownAlbum))
}

// Name is the destination file name:
// > single: "Artist - Title.mp3"
// > batch:  "03 - Title.mp3"
func (trackPath TrackPath) Name() string {
	if number, err := strconv.Atoi(trackPath.track.Metadata.Track); err == nil && trackPath.track.Position > 0 {
		return util.LegalizeFilename(fmt.Sprintf("%02d - %s.%s", number, trackPath.track.Title(), TrackFormat))
	}
	return util.LegalizeFilename(fmt.Sprintf("%s - %s.%s", trackPath.track.Artist(), trackPath.track.Title(), TrackFormat))
}

// Final is the destination path, relative to the library root
func (trackPath TrackPath) Final() string {
	return filepath.Join(trackPath.Folder(), trackPath.Name())
}

func (trackPath TrackPath) Download() string {
	return util.CacheFile(
		util.LegalizeFilename(fmt.Sprintf("%s.%s", trackPath.key(), TrackFormat)),
	)
}

func (trackPath TrackPath) Artwork() string {
	return util.CacheFile(
		util.LegalizeFilename(fmt.Sprintf("%s.%s", trackPath.key(), ArtworkFormat)),
	)
}

func (trackPath TrackPath) key() string {
	if key := slug.Make(trackPath.track.ID); len(key) > 0 {
		return key
	}
	return slug.Make(trackPath.track.UpstreamURL)
}
