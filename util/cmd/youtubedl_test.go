package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeBinary(t *testing.T, script string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yt-dlp")
	assert.Nil(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	previous := YouTubeDlBinary
	YouTubeDlBinary = path
	t.Cleanup(func() { YouTubeDlBinary = previous })
}

func TestYouTubeDlProbe(t *testing.T) {
	fakeBinary(t, `echo '{"title":"Artist - Song"}'`)
	data, err := YouTubeDlProbe(context.Background(), "https://youtu.be/id", false)
	assert.Nil(t, err)
	assert.JSONEq(t, `{"title":"Artist - Song"}`, string(data))
}

func TestYouTubeDlProbeFailure(t *testing.T) {
	fakeBinary(t, `echo "ERROR: video unavailable" >&2; exit 1`)
	_, err := YouTubeDlProbe(context.Background(), "https://youtu.be/id", true)
	assert.EqualError(t, err, "ERROR: video unavailable")
}

func TestYouTubeDl(t *testing.T) {
	fakeBinary(t, `exit 0`)
	assert.Nil(t, YouTubeDl(context.Background(), "https://youtu.be/id", filepath.Join(t.TempDir(), "id.mp3"), "0"))
}

func TestYouTubeDlFailure(t *testing.T) {
	fakeBinary(t, `echo "ERROR: unable to download" ; exit 1`)
	assert.EqualError(t,
		YouTubeDl(context.Background(), "https://youtu.be/id", filepath.Join(t.TempDir(), "id.mp3"), "0"),
		"ERROR: unable to download")
}

func TestYouTubeDlNoExtension(t *testing.T) {
	assert.NotNil(t, YouTubeDl(context.Background(), "https://youtu.be/id", "noext", "0"))
}
