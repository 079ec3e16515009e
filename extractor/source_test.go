package extractor

import (
	"testing"

	"github.com/streambinder/tubetag/entity"
	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	assert.Equal(t, entity.Metadata{
		Title:       "Song",
		Artist:      "Artist",
		Album:       "Album",
		Year:        "2021",
		Genre:       "Pop",
		Track:       "4",
		AlbumArtURL: "https://i.ytimg.com/vi/id/maxresdefault.jpg",
	}, Extract(&entity.Source{
		Title:         "Artist - Song",
		Uploader:      "Label",
		Album:         " Album ",
		UploadDate:    "20210412",
		Genre:         entity.Genre{"Pop", "Rock"},
		PlaylistIndex: 4,
		Thumbnail:     "https://i.ytimg.com/vi/id/maxresdefault.jpg",
	}))
}

func TestExtractMinimal(t *testing.T) {
	assert.Equal(t, entity.Metadata{
		Title:  "Untitled",
		Artist: entity.UnknownArtist,
	}, Extract(&entity.Source{Title: "Untitled", UploadDate: "202"}))
}

func TestExtractTrackNumber(t *testing.T) {
	assert.Equal(t, "2", Extract(&entity.Source{TrackNumber: 9, PlaylistIndex: 2}).Track)
	assert.Equal(t, "9", Extract(&entity.Source{TrackNumber: 9}).Track)
	assert.Empty(t, Extract(&entity.Source{}).Track)
}

func TestArtist(t *testing.T) {
	for _, fixture := range []struct {
		parsed, uploader, channel, artist string
	}{
		{"Artist", "Uploader", "", "Artist"},
		{entity.UnknownArtist, "Uploader", "", "Uploader"},
		{entity.UnknownArtist, "", "ArtistVEVO", "Artist"},
		{entity.UnknownArtist, "Uploader", "Channel", "Uploader"},
		{"Parsed", "Uploader", "Real Artist - Topic", "Real Artist"},
		{"Parsed", "", "Plain Channel", "Parsed"},
		{entity.UnknownArtist, "", "VEVO", entity.UnknownArtist},
		{entity.UnknownArtist, "", "", entity.UnknownArtist},
	} {
		assert.Equal(t, fixture.artist, Artist(fixture.parsed, fixture.uploader, fixture.channel), fixture)
	}
}

func TestStripChannel(t *testing.T) {
	assert.Equal(t, "Artist", StripChannel("Artist - Topic"))
	assert.Equal(t, "Artist", StripChannel("ArtistVEVO"))
	assert.Equal(t, "Artist", StripChannel("Artist VEVO"))
	assert.Equal(t, "Topical", StripChannel("Topical"))
	assert.Empty(t, StripChannel(" - Topic"))
}

func TestArtwork(t *testing.T) {
	assert.Equal(t, "https://i/explicit.jpg", Artwork(&entity.Source{
		Thumbnail:  "https://i/explicit.jpg",
		Thumbnails: []entity.Thumbnail{{URL: "https://i/big.jpg", Width: 1920, Height: 1080}},
	}))
	assert.Equal(t, "https://i/big.jpg", Artwork(&entity.Source{
		Thumbnails: []entity.Thumbnail{
			{URL: "https://i/small.jpg", Width: 120, Height: 90},
			{URL: "https://i/big.jpg", Width: 1280, Height: 720},
			{URL: "https://i/tie.jpg", Width: 720, Height: 1280},
			{URL: "", Width: 4000, Height: 4000},
		},
	}))
	assert.Equal(t, "https://i/first.webp", Artwork(&entity.Source{
		Thumbnails: []entity.Thumbnail{{URL: "https://i/first.webp"}, {URL: "https://i/second.webp"}},
	}))
	assert.Empty(t, Artwork(&entity.Source{}))
}

func TestGenre(t *testing.T) {
	assert.Equal(t, "Jazz", Extract(&entity.Source{Genre: entity.Genre{"Jazz"}, Categories: []string{"Education"}}).Genre)
	assert.Equal(t, "Gaming", Extract(&entity.Source{Categories: []string{"Music", "ENTERTAINMENT", "Gaming"}}).Genre)
	assert.Equal(t, "Education", Extract(&entity.Source{Genre: entity.Genre{" "}, Categories: []string{"Education"}}).Genre)
	assert.Empty(t, Extract(&entity.Source{Categories: []string{"Music"}}).Genre)
}
