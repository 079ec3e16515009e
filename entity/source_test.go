package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSource(t *testing.T) {
	source, err := ParseSource([]byte(`{
		"id": "abc",
		"title": "Artist - Song",
		"uploader": "ArtistVEVO",
		"channel": "Artist - Topic",
		"upload_date": "20200131",
		"thumbnails": [{"url": "https://i/1.jpg", "width": 120, "height": 90}, {"url": "https://i/2.webp"}],
		"categories": ["Music"],
		"genre": "Pop",
		"playlist_index": 4,
		"duration": 201.5,
		"webpage_url": "https://www.youtube.com/watch?v=abc"
	}`))
	assert.Nil(t, err)
	assert.Equal(t, "abc", source.ID)
	assert.Equal(t, "Artist - Song", source.Title)
	assert.Equal(t, "Artist - Topic", source.Channel)
	assert.Equal(t, "20200131", source.UploadDate)
	assert.Len(t, source.Thumbnails, 2)
	assert.Equal(t, 10800, source.Thumbnails[0].Area())
	assert.Equal(t, 0, source.Thumbnails[1].Area())
	assert.Equal(t, Genre{"Pop"}, source.Genre)
	assert.Equal(t, 4, source.PlaylistIndex)
	assert.False(t, source.IsPlaylist())
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", source.Link())
}

func TestParseSourceGenreShapes(t *testing.T) {
	for data, genre := range map[string]Genre{
		`{"genre": ["Rock", "Pop"]}`: {"Rock", "Pop"},
		`{"genre": ""}`:              nil,
		`{"genre": null}`:            nil,
		`{}`:                         nil,
	} {
		source, err := ParseSource([]byte(data))
		assert.Nil(t, err)
		assert.Equal(t, genre, source.Genre)
	}

	_, err := ParseSource([]byte(`{"genre": 42}`))
	assert.NotNil(t, err)
}

func TestParseSourcePlaylist(t *testing.T) {
	source, err := ParseSource([]byte(`{
		"_type": "playlist",
		"title": "Album",
		"entries": [
			{"_type": "url", "id": "a", "url": "https://www.youtube.com/watch?v=a"},
			{"_type": "url", "id": "b", "url": "https://www.youtube.com/watch?v=b"},
			null
		]
	}`))
	assert.Nil(t, err)
	assert.True(t, source.IsPlaylist())
	assert.Len(t, source.Entries, 3)
	assert.Nil(t, source.Entries[2])
	assert.Equal(t, "https://www.youtube.com/watch?v=b", source.Entries[1].Link())
}

func TestParseSourceMalformed(t *testing.T) {
	_, err := ParseSource([]byte(`{"title": `))
	assert.NotNil(t, err)
}
