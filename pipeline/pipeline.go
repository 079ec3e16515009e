package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/streambinder/tubetag/entity"
	"github.com/streambinder/tubetag/entity/index"
	"github.com/streambinder/tubetag/entity/playlist"
	"github.com/streambinder/tubetag/extractor"
	"github.com/streambinder/tubetag/processor"
	"github.com/streambinder/tubetag/util"
	"github.com/streambinder/tubetag/util/anchor"
)

// Source probes and fetches media from the source platform
type Source interface {
	Probe(ctx context.Context, url string) (*entity.Source, error)
	ProbePlaylist(ctx context.Context, url string) (*entity.Source, error)
	Fetch(ctx context.Context, url, path string) error
}

// Enricher looks metadata up on an external service:
// it yields an empty record whenever it has nothing to offer
type Enricher interface {
	Lookup(ctx context.Context, title, artist string) entity.Metadata
}

// Painter fetches and normalizes cover art
type Painter interface {
	Paint(ctx context.Context, url, path string) ([]byte, error)
}

type Config struct {
	Output           string // library root
	AutoMetadata     bool
	Artwork          bool
	Force            bool // reinstall tracks already in the library
	PlaylistEncoding string
}

// Pipeline turns source URLs into tagged tracks installed in the library.
// Items are processed one at a time: the enricher is never called concurrently.
type Pipeline struct {
	Config   Config
	Source   Source
	Enricher Enricher
	Painter  Painter
	Tagger   processor.Processor
	Index    *index.Index
	UI       *anchor.Window
}

func New(config Config, source Source, enricher Enricher, painter Painter) *Pipeline {
	if len(config.PlaylistEncoding) == 0 {
		config.PlaylistEncoding = playlist.EncodingNone
	}
	return &Pipeline{
		Config:   config,
		Source:   source,
		Enricher: enricher,
		Painter:  painter,
		Tagger:   processor.Tracks(),
		Index:    index.New(),
		UI:       anchor.Quiet(io.Discard),
	}
}

// Run processes the given URL as a batch if asked to or if it points
// to a playlist, as a single item otherwise
func (pipeline *Pipeline) Run(ctx context.Context, url string, overrides entity.Metadata, batch bool) (*Summary, error) {
	if batch {
		return pipeline.Batch(ctx, url, overrides)
	}
	return pipeline.Single(ctx, url, overrides)
}

// Single processes the video at url with the given overrides taking
// precedence over both lookup and source metadata: a probe or download
// failure is returned
func (pipeline *Pipeline) Single(ctx context.Context, url string, overrides entity.Metadata) (*Summary, error) {
	summary := new(Summary)

	pipeline.UI.Lot("probe").Print(url)
	source, err := pipeline.Source.Probe(ctx, url)
	pipeline.UI.Lot("probe").Wipe()
	if err != nil {
		err = wrap(ErrProbe, err)
		pipeline.UI.AnchorPrintf("%s: %s", url, util.Excerpt(err.Error(), 80))
		summary.record(1, "", err)
		return summary, err
	}
	if source.IsPlaylist() {
		pipeline.UI.Printf("%s is a playlist, switching to album mode", url)
		return pipeline.Batch(ctx, url, overrides)
	}
	return pipeline.single(ctx, source, overrides)
}

// single processes an already probed video
func (pipeline *Pipeline) single(ctx context.Context, source *entity.Source, overrides entity.Metadata) (*Summary, error) {
	summary := new(Summary)
	local := extractor.Extract(source)
	metadata := entity.Fuse(local, pipeline.enrich(ctx, entity.Fuse(local, entity.Metadata{}, overrides)), overrides)

	track := entity.NewTrack(source, metadata)
	path, err := pipeline.process(ctx, track, extractor.Artwork(source))
	summary.record(1, path, err)
	if err != nil && !errors.Is(err, ErrTagWrite) && !errors.Is(err, ErrSkipped) {
		return summary, err
	}
	return summary, nil
}

// enrich looks up the given record, if enabled:
// the placeholder artist is not used as a search term
func (pipeline *Pipeline) enrich(ctx context.Context, metadata entity.Metadata) entity.Metadata {
	if !pipeline.Config.AutoMetadata || pipeline.Enricher == nil || len(metadata.Title) == 0 {
		return entity.Metadata{}
	}

	artist := metadata.Artist
	if !metadata.HasArtist() {
		artist = ""
	}

	pipeline.UI.Lot("lookup").Printf("%s", metadata.Title)
	enrichment := pipeline.Enricher.Lookup(ctx, metadata.Title, artist)
	pipeline.UI.Lot("lookup").Wipe()
	if enrichment.IsEmpty() {
		pipeline.UI.Printf("no metadata found for %s", metadata.Title)
	}
	return enrichment
}
