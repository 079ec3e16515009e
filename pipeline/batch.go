package pipeline

import (
	"context"
	"fmt"

	"github.com/streambinder/tubetag/entity"
	"github.com/streambinder/tubetag/entity/playlist"
	"github.com/streambinder/tubetag/extractor"
	"github.com/streambinder/tubetag/util"
)

// probe is the cached outcome of an item probe
type probe struct {
	source *entity.Source
	err    error
}

// Batch processes every item of the playlist at url, in playlist order:
// a URL pointing to a single video is processed as such.
// Batch defaults (artist, album and the year and genre overrides) win over
// both lookup and source metadata, the playlist position always becomes
// the track number. Failing items are recorded and skipped: only a failure
// to probe the playlist itself is returned.
func (pipeline *Pipeline) Batch(ctx context.Context, url string, overrides entity.Metadata) (*Summary, error) {
	summary := new(Summary)

	pipeline.UI.Lot("probe").Print(url)
	list, err := pipeline.Source.ProbePlaylist(ctx, url)
	pipeline.UI.Lot("probe").Wipe()
	if err != nil {
		err = wrap(ErrProbe, err)
		pipeline.UI.AnchorPrintf("%s: %s", url, util.Excerpt(err.Error(), 80))
		return summary, err
	}

	if !list.IsPlaylist() {
		pipeline.UI.Printf("%s is not a playlist, switching to single mode", url)
		return pipeline.single(ctx, list, overrides)
	}

	var (
		entries  = list.Entries
		probes   = make(map[int]probe, len(entries))
		defaults = pipeline.defaults(ctx, list, entries, overrides, probes)
		tracks   []*entity.Track
	)
	pipeline.UI.Printf("%s by %s: %d items", defaults.Album, defaults.Artist, len(entries))

	for i := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		position := i + 1
		source, err := pipeline.probeEntry(ctx, entries, i, probes)
		if err != nil {
			err = wrap(ErrProbe, err)
			pipeline.UI.AnchorPrintf("item %d: %s", position, util.Excerpt(err.Error(), 80))
			summary.record(position, "", err)
			continue
		}

		pre := entity.Fuse(extractor.Extract(source), entity.Metadata{}, defaults)
		metadata := entity.Fuse(pre, pipeline.enrich(ctx, pre), defaults).WithTrack(position)

		track := entity.NewTrack(source, metadata)
		track.Position = position
		path, err := pipeline.process(ctx, track, extractor.Artwork(source))
		summary.record(position, path, err)
		if err == nil || len(path) > 0 {
			tracks = append(tracks, track)
		}
	}

	pipeline.mix(&playlist.Playlist{
		ID:     list.ID,
		Name:   defaults.Album,
		Folder: pipeline.Config.Output,
		Tracks: tracks,
	})
	pipeline.UI.Lot("batch").Close(summary.String())
	return summary, nil
}

// defaults resolves the batch-level metadata:
// > artist: override, playlist channel or uploader, first probed item artist, "Various Artists"
// > album:  override, playlist title, "Unknown Album"
// > year, genre: override only
func (pipeline *Pipeline) defaults(ctx context.Context, list *entity.Source, entries []*entity.Source, overrides entity.Metadata, probes map[int]probe) entity.Metadata {
	defaults := entity.Metadata{
		Artist: util.FirstNonEmpty(overrides.Artist, extractor.StripChannel(util.FirstNonEmpty(list.Channel, list.Uploader))),
		Album:  util.FirstNonEmpty(overrides.Album, list.Title, entity.UnknownAlbum),
		Year:   overrides.Year,
		Genre:  overrides.Genre,
	}
	if len(defaults.Artist) > 0 {
		return defaults
	}

	for i := range entries {
		if source, err := pipeline.probeEntry(ctx, entries, i, probes); err == nil {
			if artist := extractor.Extract(source).Artist; artist != entity.UnknownArtist {
				defaults.Artist = artist
			}
			break
		}
	}
	defaults.Artist = util.FirstNonEmpty(defaults.Artist, entity.VariousArtists)
	return defaults
}

// probeEntry probes the i-th entry once, caching the outcome
func (pipeline *Pipeline) probeEntry(ctx context.Context, entries []*entity.Source, i int, probes map[int]probe) (*entity.Source, error) {
	if cached, ok := probes[i]; ok {
		return cached.source, cached.err
	}

	// deleted and private videos are listed as null entries
	if entries[i] == nil {
		probes[i] = probe{err: fmt.Errorf("item %d is unavailable", i+1)}
		return nil, probes[i].err
	}
	url := util.FirstNonEmpty(entries[i].Link(), entries[i].ID)
	if len(url) == 0 {
		probes[i] = probe{err: fmt.Errorf("item %d has no URL", i+1)}
		return nil, probes[i].err
	}

	pipeline.UI.Lot("probe").Print(url)
	source, err := pipeline.Source.Probe(ctx, url)
	pipeline.UI.Lot("probe").Wipe()
	probes[i] = probe{source, err}
	return source, err
}

// mix writes the playlist file of the installed tracks, if asked to
func (pipeline *Pipeline) mix(list *playlist.Playlist) {
	if len(list.Tracks) == 0 {
		return
	}

	pipeline.UI.Lot("mix").Printf("%s", list.Name)
	defer pipeline.UI.Lot("mix").Wipe()
	encoder, err := list.Encoder(pipeline.Config.PlaylistEncoding)
	if err != nil {
		pipeline.UI.AnchorPrintf("mixing failed for %s: %s", list.Name, err)
		return
	}
	for _, track := range list.Tracks {
		if err := encoder.Add(track); err != nil {
			pipeline.UI.AnchorPrintf("adding track to %s failed: %s", list.Name, err)
			return
		}
	}
	if err := encoder.Close(); err != nil {
		pipeline.UI.AnchorPrintf("closing playlist %s failed: %s", list.Name, err)
	}
}
