package downloader

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/streambinder/tubetag/processor"
	"github.com/streambinder/tubetag/util/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixturePicture(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	img.Set(0, 0, color.White)
	var buffer bytes.Buffer
	require.Nil(t, png.Encode(&buffer, img))
	return buffer.Bytes()
}

func fixtureServer(t *testing.T, body []byte) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDownload(t *testing.T) {
	server := fixtureServer(t, []byte("blob"))
	path := filepath.Join(t.TempDir(), "nested", "blob.bin")
	ch := make(chan []byte, 1)

	require.Nil(t, Download(context.Background(), server.URL+"/blob", path, nil, ch))
	assert.Equal(t, []byte("blob"), <-ch)

	data, err := os.ReadFile(path)
	require.Nil(t, err)
	assert.Equal(t, []byte("blob"), data)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.Nil(t, err)
	assert.Len(t, entries, 1)
}

func TestDownloadWithoutPath(t *testing.T) {
	server := fixtureServer(t, []byte("blob"))
	ch := make(chan []byte, 1)
	require.Nil(t, Download(context.Background(), server.URL+"/blob", "", nil, ch))
	assert.Equal(t, []byte("blob"), <-ch)
}

func TestDownloadProcessor(t *testing.T) {
	server := fixtureServer(t, fixturePicture(t))
	ch := make(chan []byte, 1)
	require.Nil(t, Download(context.Background(), server.URL+"/cover.png", "", processor.Artwork{}, ch))

	img, err := jpeg.Decode(bytes.NewReader(<-ch))
	require.Nil(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestDownloadProcessorFailure(t *testing.T) {
	server := fixtureServer(t, []byte("not an image"))
	path := filepath.Join(t.TempDir(), "cover.jpg")
	assert.NotNil(t, Download(context.Background(), server.URL+"/cover.png", path, processor.Artwork{}))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadStatusFailure(t *testing.T) {
	server := fixtureServer(t, nil)
	assert.EqualError(t,
		Download(context.Background(), server.URL+"/missing", "", nil),
		"HTTP 404 fetching "+server.URL+"/missing")
}

func TestDownloadMalformedURL(t *testing.T) {
	assert.NotNil(t, Download(context.Background(), "://nope", "", nil))
}

func TestPainter(t *testing.T) {
	server := fixtureServer(t, fixturePicture(t))
	path := filepath.Join(t.TempDir(), "cover.jpg")

	data, err := Painter{Size: 16}.Paint(context.Background(), server.URL+"/cover.png", path)
	require.Nil(t, err)
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.Nil(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())

	stored, err := os.ReadFile(path)
	require.Nil(t, err)
	assert.Equal(t, data, stored)
}

func TestPainterFailure(t *testing.T) {
	server := fixtureServer(t, nil)
	_, err := Painter{}.Paint(context.Background(), server.URL+"/missing", "")
	assert.NotNil(t, err)
}

func TestYouTubeProbe(t *testing.T) {
	var flags []bool
	patches := gomonkey.ApplyFunc(cmd.YouTubeDlProbe, func(_ context.Context, url string, flat bool) ([]byte, error) {
		flags = append(flags, flat)
		if flat {
			return []byte(`{"_type": "playlist", "title": "Album", "entries": [{"id": "a"}, {"id": "b"}]}`), nil
		}
		return []byte(`{"id": "a", "title": "Artist - Song", "webpage_url": "` + url + `"}`), nil
	})
	defer patches.Reset()

	source, err := YouTube{}.Probe(context.Background(), "https://youtu.be/a")
	require.Nil(t, err)
	assert.Equal(t, "Artist - Song", source.Title)
	assert.Equal(t, "https://youtu.be/a", source.Link())

	playlist, err := YouTube{}.ProbePlaylist(context.Background(), "https://youtube.com/playlist?list=x")
	require.Nil(t, err)
	assert.True(t, playlist.IsPlaylist())
	assert.Len(t, playlist.Entries, 2)
	assert.Equal(t, []bool{false, true}, flags)
}

func TestYouTubeProbeFailure(t *testing.T) {
	patches := gomonkey.ApplyFunc(cmd.YouTubeDlProbe, func(context.Context, string, bool) ([]byte, error) {
		return nil, errors.New("ERROR: video unavailable")
	})
	defer patches.Reset()

	_, err := YouTube{}.Probe(context.Background(), "https://youtu.be/a")
	assert.EqualError(t, err, "ERROR: video unavailable")
	_, err = YouTube{}.ProbePlaylist(context.Background(), "https://youtu.be/a")
	assert.EqualError(t, err, "ERROR: video unavailable")
}

func TestYouTubeFetch(t *testing.T) {
	var quality string
	patches := gomonkey.ApplyFunc(cmd.YouTubeDl, func(_ context.Context, _, _, q string) error {
		quality = q
		return nil
	})
	defer patches.Reset()

	require.Nil(t, YouTube{}.Fetch(context.Background(), "https://youtu.be/a", "a.mp3"))
	assert.Equal(t, DefaultQuality, quality)
	require.Nil(t, YouTube{Quality: "5"}.Fetch(context.Background(), "https://youtu.be/a", "a.mp3"))
	assert.Equal(t, "5", quality)
}
