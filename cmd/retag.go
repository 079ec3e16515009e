package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/spf13/cobra"
	"github.com/streambinder/tubetag/downloader"
	"github.com/streambinder/tubetag/entity"
	"github.com/streambinder/tubetag/entity/id3"
	"github.com/streambinder/tubetag/extractor"
	"github.com/streambinder/tubetag/pipeline"
	"github.com/streambinder/tubetag/processor"
	"github.com/streambinder/tubetag/util"
)

// track number prefix of album tracks file names, e.g. "03 - "
var trackPrefix = regexp.MustCompile(`^\d+\s+-\s+`)

func init() {
	cmdRoot.AddCommand(cmdRetag())
}

func cmdRetag() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "retag",
		Short:        "Enrich the ID3v2 tags of the local library",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			applySettings(cmd.Flags(), map[string]string{"library": settings.Output})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				dir   = util.ErrWrap(settings.Output)(cmd.Flags().GetString("library"))
				force = util.ErrWrap(false)(cmd.Flags().GetBool("force"))
			)
			return retagDirectory(cmd.Context(), dir, lookupClient(), downloader.Painter{Size: settings.ArtworkSize}, force)
		},
	}
	cmd.Flags().StringP("library", "l", settings.Output, "Path to music library")
	cmd.Flags().BoolP("force", "f", false, "Retag files already tagged by tubetag")
	return cmd
}

func retagDirectory(ctx context.Context, dir string, enricher pipeline.Enricher, painter pipeline.Painter, force bool) error {
	var retagged int
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to read directory: %w", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), "."+entity.TrackFormat) {
			return nil
		}

		tui.Lot("retag").Print(filepath.Base(path))
		ok, err := retagFile(ctx, path, enricher, painter, force)
		if err != nil {
			log.Printf("Error processing file %s: %v\n", path, err)
		} else if ok {
			retagged++
		}
		return nil
	})
	tui.Lot("retag").Close(fmt.Sprintf("%d tracks", retagged))
	return err
}

// retagFile enriches the tags of the file at path, using its current tags
// and its file name as source metadata: it reports whether it wrote anything
func retagFile(ctx context.Context, path string, enricher pipeline.Enricher, painter pipeline.Painter, force bool) (bool, error) {
	tag, err := id3.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return false, fmt.Errorf("failed to open mp3 file: %w", err)
	}
	var (
		existing = tag.Metadata()
		upstream = tag.UpstreamURL()
		picture  = tag.AttachedPicture()
	)
	tag.Close()

	if len(upstream) > 0 && len(existing.Title) > 0 && !force {
		log.Printf("File already tagged, skipping: %s\n", path)
		return false, nil
	}

	local := entity.Fuse(parseFileName(path), existing, entity.Metadata{})
	enrichment := enricher.Lookup(ctx, queryTitle(local.Title), lookupArtist(local))
	if enrichment.IsEmpty() {
		log.Printf("No metadata found for %s\n", path)
		return false, nil
	}

	track := &entity.Track{
		Metadata:    entity.Fuse(local, enrichment, entity.Metadata{Track: existing.Track}),
		Artwork:     entity.Artwork{URL: existing.AlbumArtURL, Data: picture},
		UpstreamURL: upstream,
	}
	if url := enrichment.AlbumArtURL; len(url) > 0 && (url != existing.AlbumArtURL || len(picture) == 0) && settings.Artwork {
		if data, err := painter.Paint(ctx, url, ""); err == nil {
			track.Artwork = entity.Artwork{URL: url, Data: data}
		} else {
			log.Printf("Artwork failure for %s: %v\n", path, err)
		}
	}
	if err := processor.Tag(path, track); err != nil {
		return false, err
	}
	tui.Printf("%s by %s retagged", track.Title(), track.Artist())
	return true, nil
}

// parseFileName derives artist and title from library file names:
// > "Artist - Title.mp3"
// > "03 - Title.mp3"
func parseFileName(path string) entity.Metadata {
	stem := util.FileBaseStem(path)
	if prefix := trackPrefix.FindString(stem); len(prefix) > 0 {
		return entity.Metadata{Title: strings.TrimSpace(stem[len(prefix):])}
	}

	artist, title := extractor.ParseTitle(stem)
	if artist == entity.UnknownArtist {
		artist = ""
	}
	return entity.Metadata{Artist: artist, Title: title}
}

// queryTitle removes any parenthesized suffix, such as "(Official Video)"
func queryTitle(title string) string {
	if idx := strings.Index(title, "("); idx > 0 {
		return strings.TrimSpace(title[:idx])
	}
	return title
}

func lookupArtist(metadata entity.Metadata) string {
	if metadata.HasArtist() {
		return metadata.Artist
	}
	return ""
}
