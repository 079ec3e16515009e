package cmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/streambinder/tubetag/util"
)

// YouTubeDlBinary is the executable used to probe and fetch media
var YouTubeDlBinary = "yt-dlp"

// YouTubeDl fetches the audio stream of the given URL, transcoding it
// to the format implied by the extension of path, at the given quality
func YouTubeDl(ctx context.Context, url, path, quality string) error {
	var (
		output bytes.Buffer
		ext    = strings.TrimPrefix(filepath.Ext(path), ".")
		stem   = filepath.Join(filepath.Dir(path), util.FileBaseStem(path))
		cmd    = exec.CommandContext(ctx, YouTubeDlBinary,
			"--format", "bestaudio/best",
			"--extract-audio",
			"--audio-format", ext,
			"--audio-quality", quality,
			"--output", stem+".%(ext)s",
			"--no-playlist",
			"--continue",
			"--no-overwrites",
			"--retry-sleep", "exp=1::2",
			url,
		)
	)
	if len(ext) == 0 {
		return errors.New("cannot infer audio format from " + path)
	}
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return errors.New(strings.TrimSpace(output.String()))
	}
	return nil
}

// YouTubeDlProbe dumps the info JSON of the given URL without fetching it:
// with flat set, playlists are listed without resolving their entries,
// otherwise only the single video pointed by the URL is probed
func YouTubeDlProbe(ctx context.Context, url string, flat bool) ([]byte, error) {
	var (
		stdout bytes.Buffer
		stderr bytes.Buffer
		args   = []string{"--dump-single-json", "--no-warnings"}
	)
	if flat {
		args = append(args, "--flat-playlist")
	} else {
		args = append(args, "--no-playlist")
	}

	cmd := exec.CommandContext(ctx, YouTubeDlBinary, append(args, url)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, errors.New(strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
