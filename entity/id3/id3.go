package id3

import (
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/streambinder/tubetag/entity"
)

const (
	frameUserDefined     = "TXXX"
	frameAttachedPicture = "APIC"
	descUpstreamURL      = "upstream_url"
	descArtworkURL       = "artwork_url"
	mimeJPEG             = "image/jpeg"
)

// Tag wraps an ID3v2.4 tag with the frames the tool reads and writes
type Tag struct {
	*id3v2.Tag
}

// Open opens (or initializes, if the file has none) the tag of the given file
func Open(path string, options id3v2.Options) (*Tag, error) {
	tag, err := id3v2.Open(path, options)
	if err != nil {
		return nil, err
	}
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	return &Tag{tag}, nil
}

func (tag *Tag) SetAlbumArtist(artist string) {
	tag.AddTextFrame(tag.CommonID("Band/Orchestra/Accompaniment"), id3v2.EncodingUTF8, artist)
}

func (tag *Tag) AlbumArtist() string {
	return tag.GetTextFrame(tag.CommonID("Band/Orchestra/Accompaniment")).Text
}

func (tag *Tag) SetTrackNumber(number string) {
	tag.AddTextFrame(tag.CommonID("Track number/Position in set"), id3v2.EncodingUTF8, number)
}

func (tag *Tag) TrackNumber() string {
	return tag.GetTextFrame(tag.CommonID("Track number/Position in set")).Text
}

// SetAttachedPicture replaces any picture with the given
// JPEG blob, flagged as front cover
func (tag *Tag) SetAttachedPicture(picture []byte) {
	tag.DeleteFrames(frameAttachedPicture)
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mimeJPEG,
		PictureType: id3v2.PTFrontCover,
		Description: "Front cover",
		Picture:     picture,
	})
}

// AttachedPicture returns the first embedded picture blob, if any
func (tag *Tag) AttachedPicture() []byte {
	for _, frame := range tag.GetFrames(frameAttachedPicture) {
		if picture, ok := frame.(id3v2.PictureFrame); ok {
			return picture.Picture
		}
	}
	return nil
}

func (tag *Tag) SetUpstreamURL(url string) {
	tag.setUserDefined(descUpstreamURL, url)
}

func (tag *Tag) UpstreamURL() string {
	return tag.userDefined(descUpstreamURL)
}

func (tag *Tag) SetArtworkURL(url string) {
	tag.setUserDefined(descArtworkURL, url)
}

func (tag *Tag) ArtworkURL() string {
	return tag.userDefined(descArtworkURL)
}

// Metadata reads back the record stored in the tag
func (tag *Tag) Metadata() entity.Metadata {
	return entity.Metadata{
		Title:       strings.TrimSpace(tag.Title()),
		Artist:      strings.TrimSpace(tag.Artist()),
		Album:       strings.TrimSpace(tag.Album()),
		Year:        strings.TrimSpace(tag.Year()),
		Genre:       strings.TrimSpace(tag.Genre()),
		Track:       strings.TrimSpace(tag.TrackNumber()),
		AlbumArtURL: strings.TrimSpace(tag.ArtworkURL()),
	}
}

// setUserDefined keeps a single TXXX frame per description
func (tag *Tag) setUserDefined(description, value string) {
	var kept []id3v2.UserDefinedTextFrame
	for _, frame := range tag.GetFrames(frameUserDefined) {
		if udtf, ok := frame.(id3v2.UserDefinedTextFrame); ok && strings.TrimRight(udtf.Description, "\x00") != description {
			kept = append(kept, udtf)
		}
	}
	tag.DeleteFrames(frameUserDefined)
	for _, udtf := range kept {
		tag.AddUserDefinedTextFrame(udtf)
	}
	if len(value) > 0 {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: description,
			Value:       value,
		})
	}
}

func (tag *Tag) userDefined(description string) string {
	for _, frame := range tag.GetFrames(frameUserDefined) {
		if udtf, ok := frame.(id3v2.UserDefinedTextFrame); ok && strings.TrimRight(udtf.Description, "\x00") == description {
			return strings.TrimRight(udtf.Value, "\x00")
		}
	}
	return ""
}
