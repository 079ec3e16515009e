package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arunsworld/nursery"
	"github.com/streambinder/tubetag/entity"
	"github.com/streambinder/tubetag/entity/index"
	"github.com/streambinder/tubetag/util"
)

// process collects, tags and installs the track, returning its installed path.
// The track is indexed as Online while in progress, Flush if it is forced to
// overwrite whatever is installed at its path, Installed once done.
// A tagging failure does not prevent installation: its error (ErrTagWrite)
// is returned along with the path.
func (pipeline *Pipeline) process(ctx context.Context, track *entity.Track, fallbackArtwork string) (string, error) {
	status, indexed := pipeline.Index.Get(track.UpstreamURL)
	switch {
	case indexed && status == index.Installed && !pipeline.Config.Force:
		path, _ := pipeline.Index.Path(track.UpstreamURL)
		pipeline.UI.Printf("%s by %s already installed at %s", track.Title(), track.Artist(), path)
		return path, ErrSkipped
	case pipeline.Config.Force:
		status = index.Flush
	default:
		status = index.Online
	}
	pipeline.Index.Set(track.UpstreamURL, status)
	if path, ok := pipeline.Index.Similar(track.Artist(), track.Title()); ok {
		pipeline.UI.Printf("%s by %s looks like %s", track.Title(), track.Artist(), path)
	}

	defer os.Remove(track.Path().Artwork())
	if err := nursery.RunConcurrently(
		pipeline.routineCollectAsset(ctx, track),
		pipeline.routineCollectArtwork(ctx, track, fallbackArtwork),
	); err != nil {
		return "", wrap(ErrDownload, err)
	}

	var tagErr error
	pipeline.UI.Lot("process").Printf("%s by %s", track.Title(), track.Artist())
	if err := pipeline.Tagger.Do(track); err != nil {
		tagErr = wrap(ErrTagWrite, err)
		pipeline.UI.AnchorPrintf("tagging failed for %s by %s: %s", track.Title(), track.Artist(), err)
	}
	pipeline.UI.Lot("process").Wipe()

	pipeline.UI.Lot("install").Printf("%s by %s", track.Title(), track.Artist())
	path := filepath.Join(pipeline.Config.Output, track.Path().Final())
	if err := util.FileMoveOrCopy(track.Path().Download(), path, status == index.Flush); err != nil {
		pipeline.UI.AnchorPrintf("installation failed for %s by %s: %s", track.Title(), track.Artist(), err)
		return "", wrap(ErrDownload, err)
	}
	pipeline.UI.Lot("install").Wipe()
	pipeline.Index.SetPath(track.UpstreamURL, path, index.Installed)
	pipeline.UI.Printf("%s by %s installed at %s", track.Title(), track.Artist(), path)
	return path, tagErr
}

func (pipeline *Pipeline) routineCollectAsset(ctx context.Context, track *entity.Track) func(context.Context, chan error) {
	return func(_ context.Context, ch chan error) {
		pipeline.UI.Lot("download").Print(track.UpstreamURL)
		if err := pipeline.Source.Fetch(ctx, track.UpstreamURL, track.Path().Download()); err != nil {
			pipeline.UI.AnchorPrintf("download failure for %s: %s", track.UpstreamURL, util.Excerpt(err.Error(), 80))
			ch <- err
			return
		}
		pipeline.UI.Lot("download").Wipe()
	}
}

// routineCollectArtwork never fails: the track is left
// without artwork if none of the candidates can be fetched
func (pipeline *Pipeline) routineCollectArtwork(ctx context.Context, track *entity.Track, fallback string) func(context.Context, chan error) {
	return func(_ context.Context, _ chan error) {
		if !pipeline.Config.Artwork || pipeline.Painter == nil {
			return
		}

		defer pipeline.UI.Lot("paint").Wipe()
		for _, url := range candidates(track.Artwork.URL, fallback) {
			pipeline.UI.Lot("paint").Printf("%s by %s", track.Title(), track.Artist())
			data, err := pipeline.Painter.Paint(ctx, url, track.Path().Artwork())
			if err != nil {
				pipeline.UI.AnchorPrintf("artwork failure for %s: %s", url, err)
				continue
			}
			track.Artwork = entity.Artwork{URL: url, Data: data}
			pipeline.UI.Printf("artwork for %s by %s: %s", track.Title(), track.Artist(), util.HumanizeBytes(len(data)))
			return
		}
	}
}

func candidates(urls ...string) []string {
	var unique []string
	for _, url := range urls {
		if len(url) == 0 {
			continue
		}
		duplicate := false
		for _, seen := range unique {
			duplicate = duplicate || seen == url
		}
		if !duplicate {
			unique = append(unique, url)
		}
	}
	return unique
}
