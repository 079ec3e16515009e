package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/streambinder/tubetag/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(dir string) *Playlist {
	return &Playlist{
		Name:   "Album: Deluxe",
		Folder: dir,
		Tracks: []*entity.Track{
			{Position: 1, Duration: 200, Metadata: entity.Metadata{Artist: "Artist", Album: "Album", Title: "One", Track: "1"}},
			{Position: 2, Duration: 180, Metadata: entity.Metadata{Artist: "Artist", Album: "Album", Title: "Two", Track: "2"}},
		},
	}
}

func encode(t *testing.T, playlist *Playlist, encoding string) {
	t.Helper()
	encoder, err := playlist.Encoder(encoding)
	require.Nil(t, err)
	for _, track := range playlist.Tracks {
		require.Nil(t, encoder.Add(track))
	}
	require.Nil(t, encoder.Close())
}

func TestEncoderM3U(t *testing.T) {
	dir := t.TempDir()
	encode(t, fixture(dir), EncodingM3U)

	data, err := os.ReadFile(filepath.Join(dir, "Album Deluxe.m3u"))
	require.Nil(t, err)
	assert.Contains(t, string(data), "#EXTM3U")
	assert.Contains(t, string(data), "Artist - One")
	assert.Contains(t, string(data), "Artist/Album/01 - One.mp3")
	assert.Contains(t, string(data), "Artist/Album/02 - Two.mp3")
	assert.Contains(t, string(data), "#EXT-X-ENDLIST")
}

func TestEncoderPLS(t *testing.T) {
	dir := t.TempDir()
	encode(t, fixture(dir), EncodingPLS)

	data, err := os.ReadFile(filepath.Join(dir, "Album Deluxe.pls"))
	require.Nil(t, err)
	assert.Equal(t, "[playlist]\n"+
		"File1=Artist/Album/01 - One.mp3\nTitle1=Artist - One\nLength1=200\n"+
		"File2=Artist/Album/02 - Two.mp3\nTitle2=Artist - Two\nLength2=180\n"+
		"NumberOfEntries=2\nVersion=2\n", string(data))
}

func TestEncoderNone(t *testing.T) {
	dir := t.TempDir()
	encode(t, fixture(dir), EncodingNone)
	entries, err := os.ReadDir(dir)
	require.Nil(t, err)
	assert.Empty(t, entries)
}

func TestEncoderUnsupported(t *testing.T) {
	_, err := fixture(t.TempDir()).Encoder("xspf")
	assert.NotNil(t, err)
}
