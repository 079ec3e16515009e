package playlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grafov/m3u8"
	"github.com/streambinder/tubetag/entity"
	"github.com/streambinder/tubetag/util"
)

const (
	EncodingM3U  = "m3u"
	EncodingPLS  = "pls"
	EncodingNone = "none"
)

// Encodings lists the supported playlist file formats
var Encodings = []string{EncodingM3U, EncodingPLS, EncodingNone}

// Playlist is a batch of tracks installed under Folder
// (the library root), to be mixed into a playlist file
type Playlist struct {
	ID     string
	Name   string
	Folder string
	Tracks []*entity.Track
}

type PlaylistEncoder interface {
	Add(*entity.Track) error
	Close() error
}

// Encoder returns an encoder writing the playlist file in the given format:
// the file is placed in Folder and its entries are paths relative to it
func (playlist *Playlist) Encoder(encoding string) (PlaylistEncoder, error) {
	name := util.FirstNonEmpty(util.LegalizeFilename(playlist.Name), entity.UnknownAlbum)
	switch strings.ToLower(encoding) {
	case EncodingM3U:
		capacity := uint(len(playlist.Tracks))
		if capacity == 0 {
			capacity = 1
		}
		media, err := m3u8.NewMediaPlaylist(0, capacity)
		if err != nil {
			return nil, err
		}
		return &m3uEncoder{
			path:  filepath.Join(playlist.Folder, name+"."+EncodingM3U),
			media: media,
		}, nil
	case EncodingPLS:
		return &plsEncoder{path: filepath.Join(playlist.Folder, name+"."+EncodingPLS)}, nil
	case EncodingNone:
		return nopEncoder{}, nil
	default:
		return nil, errors.New("unsupported playlist encoding: " + encoding)
	}
}

type m3uEncoder struct {
	path  string
	media *m3u8.MediaPlaylist
}

func (encoder *m3uEncoder) Add(track *entity.Track) error {
	return encoder.media.Append(
		filepath.ToSlash(track.Path().Final()),
		float64(track.Duration),
		fmt.Sprintf("%s - %s", track.Artist(), track.Title()),
	)
}

func (encoder *m3uEncoder) Close() error {
	encoder.media.Close()
	return write(encoder.path, encoder.media.Encode().Bytes())
}

type plsEncoder struct {
	path    string
	entries []string
}

func (encoder *plsEncoder) Add(track *entity.Track) error {
	number := len(encoder.entries) + 1
	encoder.entries = append(encoder.entries, fmt.Sprintf(
		"File%d=%s\nTitle%d=%s - %s\nLength%d=%d\n",
		number, filepath.ToSlash(track.Path().Final()),
		number, track.Artist(), track.Title(),
		number, track.Duration,
	))
	return nil
}

func (encoder *plsEncoder) Close() error {
	var builder strings.Builder
	builder.WriteString("[playlist]\n")
	for _, entry := range encoder.entries {
		builder.WriteString(entry)
	}
	fmt.Fprintf(&builder, "NumberOfEntries=%d\nVersion=2\n", len(encoder.entries))
	return write(encoder.path, []byte(builder.String()))
}

type nopEncoder struct{}

func (nopEncoder) Add(*entity.Track) error { return nil }
func (nopEncoder) Close() error            { return nil }

func write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
