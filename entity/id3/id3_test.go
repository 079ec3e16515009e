package id3

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/streambinder/tubetag/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blob(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.mp3")
	require.Nil(t, os.WriteFile(path, append([]byte{0xff, 0xfb, 0x90, 0x00}, make([]byte, 256)...), 0o644))
	return path
}

func TestTagRoundTrip(t *testing.T) {
	path := blob(t)

	tag, err := Open(path, id3v2.Options{Parse: true})
	require.Nil(t, err)
	tag.SetTitle("Song")
	tag.SetArtist("Artist")
	tag.SetAlbumArtist("Artist")
	tag.SetAlbum("Album")
	tag.SetYear("2020")
	tag.SetGenre("Rock")
	tag.SetTrackNumber("3")
	tag.SetArtworkURL("https://coverartarchive.org/release/id/front.jpg")
	tag.SetUpstreamURL("https://www.youtube.com/watch?v=id")
	tag.SetAttachedPicture([]byte{0xff, 0xd8, 0xff})
	require.Nil(t, tag.Save())
	require.Nil(t, tag.Close())

	tag, err = Open(path, id3v2.Options{Parse: true})
	require.Nil(t, err)
	defer tag.Close()
	assert.Equal(t, entity.Metadata{
		Title:       "Song",
		Artist:      "Artist",
		Album:       "Album",
		Year:        "2020",
		Genre:       "Rock",
		Track:       "3",
		AlbumArtURL: "https://coverartarchive.org/release/id/front.jpg",
	}, tag.Metadata())
	assert.Equal(t, "Artist", tag.AlbumArtist())
	assert.Equal(t, "https://www.youtube.com/watch?v=id", tag.UpstreamURL())
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, tag.AttachedPicture())
}

func TestTagUserDefinedReplace(t *testing.T) {
	tag, err := Open(blob(t), id3v2.Options{Parse: true})
	require.Nil(t, err)
	defer tag.Close()

	tag.SetUpstreamURL("first")
	tag.SetArtworkURL("artwork")
	tag.SetUpstreamURL("second")
	assert.Equal(t, "second", tag.UpstreamURL())
	assert.Equal(t, "artwork", tag.ArtworkURL())
	assert.Len(t, tag.GetFrames(frameUserDefined), 2)

	tag.SetUpstreamURL("")
	assert.Empty(t, tag.UpstreamURL())
	assert.Len(t, tag.GetFrames(frameUserDefined), 1)
}

func TestTagEmpty(t *testing.T) {
	tag, err := Open(blob(t), id3v2.Options{Parse: true})
	require.Nil(t, err)
	defer tag.Close()
	assert.True(t, tag.Metadata().IsEmpty())
	assert.Nil(t, tag.AttachedPicture())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.mp3"), id3v2.Options{Parse: true})
	assert.NotNil(t, err)
}
