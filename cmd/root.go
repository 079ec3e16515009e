package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/streambinder/tubetag/config"
	"github.com/streambinder/tubetag/entity/index"
	"github.com/streambinder/tubetag/util"
	"github.com/streambinder/tubetag/util/anchor"
	utilcmd "github.com/streambinder/tubetag/util/cmd"
)

var (
	version  = "dev"
	settings = config.Default()
	cmdRoot  = &cobra.Command{
		Use:     "tubetag",
		Short:   "Download audio tracks from video sources into a tagged music library",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(util.ErrWrap(config.Path())(cmd.Flags().GetString("config")))
			if err != nil {
				return err
			}
			settings = loaded
			utilcmd.YouTubeDlBinary = util.FirstNonEmpty(settings.YtDlp, utilcmd.YouTubeDlBinary)
			return nil
		},
	}
	indexData = index.New()
	tui       = anchor.New(anchor.Red)
)

func init() {
	cmdRoot.PersistentFlags().String("config", config.Path(), "Configuration file path")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmdRoot.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}
