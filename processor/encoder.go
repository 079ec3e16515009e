package processor

import (
	"errors"

	"github.com/bogem/id3v2/v2"
	"github.com/streambinder/tubetag/entity"
	"github.com/streambinder/tubetag/entity/id3"
)

// Encoder writes the track metadata into the ID3v2 tag
// of its downloaded asset
type Encoder struct{}

func (Encoder) Applies(object interface{}) bool {
	_, ok := object.(*entity.Track)
	return ok
}

func (Encoder) Do(object interface{}) error {
	track, ok := object.(*entity.Track)
	if !ok {
		return errors.New("encoder processor expects a track")
	}
	return Tag(track.Path().Download(), track)
}

// Tag writes the track metadata into the tag of the file at path:
// artist and title get their placeholders if absent, the other
// fields are written only if present
func Tag(path string, track *entity.Track) error {
	tag, err := id3.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetTitle(track.Title())
	tag.SetArtist(track.Artist())
	tag.SetAlbumArtist(track.Artist())
	if album := track.Metadata.Album; len(album) > 0 {
		tag.SetAlbum(album)
	}
	if number := track.Metadata.Track; len(number) > 0 {
		tag.SetTrackNumber(number)
	}
	if year := track.Metadata.Year; len(year) > 0 {
		tag.SetYear(year)
	}
	if genre := track.Metadata.Genre; len(genre) > 0 {
		tag.SetGenre(genre)
	}
	if len(track.Artwork.Data) > 0 {
		tag.SetAttachedPicture(track.Artwork.Data)
	}
	tag.SetArtworkURL(track.Artwork.URL)
	tag.SetUpstreamURL(track.UpstreamURL)
	return tag.Save()
}
