package cmd

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/streambinder/tubetag/downloader"
	"github.com/streambinder/tubetag/entity"
	"github.com/streambinder/tubetag/entity/index"
	"github.com/streambinder/tubetag/entity/playlist"
	"github.com/streambinder/tubetag/musicbrainz"
	"github.com/streambinder/tubetag/pipeline"
	"github.com/streambinder/tubetag/util"
)

// ErrNoURL is returned when no source URL is given
var ErrNoURL = errors.New("no URL supplied")

func init() {
	cmdRoot.AddCommand(cmdDownload())
}

func cmdDownload() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "download URL",
		Short:        "Download and tag a track or a playlist",
		SilenceUsage: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return ErrNoURL
			}
			return cobra.MaximumNArgs(1)(cmd, args)
		},
		PreRun: func(cmd *cobra.Command, _ []string) {
			applySettings(cmd.Flags(), map[string]string{
				"output":            settings.Output,
				"playlist-encoding": settings.PlaylistEncoding,
				"no-auto-metadata":  strconv.FormatBool(!settings.AutoMetadata),
				"no-artwork":        strconv.FormatBool(!settings.Artwork),
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				url       = strings.TrimSpace(args[0])
				output    = util.ErrWrap(settings.Output)(cmd.Flags().GetString("output"))
				encoding  = util.ErrWrap(settings.PlaylistEncoding)(cmd.Flags().GetString("playlist-encoding"))
				albumMode = util.ErrWrap(false)(cmd.Flags().GetBool("album-mode"))
				noLookup  = util.ErrWrap(false)(cmd.Flags().GetBool("no-auto-metadata"))
				noArtwork = util.ErrWrap(false)(cmd.Flags().GetBool("no-artwork"))
				force     = util.ErrWrap(false)(cmd.Flags().GetBool("force"))
				overrides = entity.Metadata{
					Artist: util.ErrWrap("")(cmd.Flags().GetString("artist")),
					Album:  util.ErrWrap("")(cmd.Flags().GetString("album")),
					Title:  util.ErrWrap("")(cmd.Flags().GetString("title")),
					Year:   util.ErrWrap("")(cmd.Flags().GetString("year")),
					Genre:  util.ErrWrap("")(cmd.Flags().GetString("genre")),
				}
			)
			if len(url) == 0 {
				return ErrNoURL
			}

			effective := settings
			effective.Output, effective.PlaylistEncoding = output, strings.ToLower(encoding)
			if err := effective.Validate(); err != nil {
				return err
			}

			tui.Lot("index").Printf("scanning %s", output)
			if err := indexData.Build(output); err != nil {
				tui.Printf("indexing failed: %s", err)
			}
			tui.Lot("index").Close(strconv.Itoa(indexData.Size()) + " tracks")

			runner := pipeline.New(pipeline.Config{
				Output:           output,
				AutoMetadata:     !noLookup,
				Artwork:          !noArtwork,
				Force:            force,
				PlaylistEncoding: effective.PlaylistEncoding,
			},
				downloader.YouTube{Quality: settings.AudioQuality},
				lookupClient(),
				downloader.Painter{Size: settings.ArtworkSize},
			)
			runner.Index = indexData
			runner.UI = tui

			summary, err := runner.Run(cmd.Context(), url, overrides, albumMode)
			report(summary)
			tui.Printf("%d tracks installed in %s", indexData.Size(index.Installed), output)
			return err
		},
	}
	cmd.Flags().StringP("output", "o", settings.Output, "Library path tracks are installed into")
	cmd.Flags().String("artist", "", "Override artist")
	cmd.Flags().String("album", "", "Override album")
	cmd.Flags().String("title", "", "Override title (single track only)")
	cmd.Flags().String("year", "", "Override year")
	cmd.Flags().String("genre", "", "Override genre")
	cmd.Flags().BoolP("album-mode", "a", false, "Process the URL as a playlist/album")
	cmd.Flags().Bool("no-auto-metadata", false, "Disable metadata lookup")
	cmd.Flags().Bool("no-artwork", false, "Disable cover art embedding")
	cmd.Flags().BoolP("force", "f", false, "Download tracks already in the library")
	cmd.Flags().String("playlist-encoding", settings.PlaylistEncoding,
		"Playlist file encoding for albums ("+strings.Join(playlist.Encodings, ", ")+")")
	return cmd
}

// applySettings sets the flags the user did not explicitly
// set to the values loaded from the configuration file
func applySettings(flags *pflag.FlagSet, values map[string]string) {
	flags.VisitAll(func(flag *pflag.Flag) {
		if value, ok := values[flag.Name]; ok && !flag.Changed {
			util.ErrSuppress(flag.Value.Set(value))
		}
	})
}

func lookupClient() *musicbrainz.Client {
	return musicbrainz.New(musicbrainz.Options{
		MusicBrainzURL: settings.Lookup.MusicBrainzURL,
		CoverArtURL:    settings.Lookup.CoverArtURL,
		Version:        version,
		Contact:        settings.Lookup.Contact,
		SearchInterval: settings.Lookup.SearchInterval,
		CoverInterval:  settings.Lookup.CoverInterval,
		Timeout:        settings.Lookup.Timeout,
		Logger:         log.New(tui, "", 0),
	})
}

func report(summary *pipeline.Summary) {
	if summary == nil {
		return
	}
	tui.Printf("%s", summary)
	for _, position := range summary.Failed {
		tui.AnchorPrintf("item %d failed", position)
	}
	for _, path := range summary.Untagged {
		tui.AnchorPrintf("%s installed without tags", path)
	}
}
