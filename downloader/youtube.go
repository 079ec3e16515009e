package downloader

import (
	"context"

	"github.com/streambinder/tubetag/entity"
	"github.com/streambinder/tubetag/processor"
	"github.com/streambinder/tubetag/util/cmd"
)

// DefaultQuality is the yt-dlp audio quality, from 0 (best) to 10 (worst)
const DefaultQuality = "0"

// YouTube probes and fetches media through yt-dlp
type YouTube struct {
	Quality string
}

// Probe returns the info of the single video pointed by url
func (youtube YouTube) Probe(ctx context.Context, url string) (*entity.Source, error) {
	data, err := cmd.YouTubeDlProbe(ctx, url, false)
	if err != nil {
		return nil, err
	}
	return entity.ParseSource(data)
}

// ProbePlaylist returns the info of the playlist pointed by url,
// listing its entries without resolving them
func (youtube YouTube) ProbePlaylist(ctx context.Context, url string) (*entity.Source, error) {
	data, err := cmd.YouTubeDlProbe(ctx, url, true)
	if err != nil {
		return nil, err
	}
	return entity.ParseSource(data)
}

// Fetch downloads and transcodes the audio of url to path
func (youtube YouTube) Fetch(ctx context.Context, url, path string) error {
	quality := youtube.Quality
	if len(quality) == 0 {
		quality = DefaultQuality
	}
	return cmd.YouTubeDl(ctx, url, path, quality)
}

// Painter fetches cover art, normalizing it through
// the artwork processor
type Painter struct {
	Size int
}

func (painter Painter) Paint(ctx context.Context, url, path string) ([]byte, error) {
	artwork := make(chan []byte, 1)
	defer close(artwork)

	if err := Download(ctx, url, path, processor.Artwork{Size: painter.Size}, artwork); err != nil {
		return nil, err
	}
	return <-artwork, nil
}
