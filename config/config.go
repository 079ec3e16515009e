package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/streambinder/tubetag/downloader"
	"github.com/streambinder/tubetag/entity/playlist"
	"github.com/streambinder/tubetag/musicbrainz"
	"github.com/streambinder/tubetag/processor"
	"github.com/streambinder/tubetag/util/cmd"
	"gopkg.in/yaml.v3"
)

const (
	dirName  = "tubetag"
	fileName = "config.yml"
)

type Lookup struct {
	MusicBrainzURL string        `yaml:"musicbrainz_url"`
	CoverArtURL    string        `yaml:"coverart_url"`
	Contact        string        `yaml:"contact"`
	SearchInterval time.Duration `yaml:"search_interval"`
	CoverInterval  time.Duration `yaml:"cover_interval"`
	Timeout        time.Duration `yaml:"timeout"`
}

// Config holds the process-wide settings, decided at startup
// and handed to every component needing them
type Config struct {
	Output           string `yaml:"output"`
	AutoMetadata     bool   `yaml:"auto_metadata"`
	Artwork          bool   `yaml:"artwork"`
	ArtworkSize      int    `yaml:"artwork_size"`
	AudioQuality     string `yaml:"audio_quality"`
	YtDlp            string `yaml:"ytdlp"`
	PlaylistEncoding string `yaml:"playlist_encoding"`
	Lookup           Lookup `yaml:"lookup"`
}

func Default() Config {
	return Config{
		Output:           xdg.UserDirs.Music,
		AutoMetadata:     true,
		Artwork:          true,
		ArtworkSize:      processor.DefaultArtworkSize,
		AudioQuality:     downloader.DefaultQuality,
		YtDlp:            cmd.YouTubeDlBinary,
		PlaylistEncoding: playlist.EncodingM3U,
		Lookup: Lookup{
			MusicBrainzURL: musicbrainz.DefaultMusicBrainzURL,
			CoverArtURL:    musicbrainz.DefaultCoverArtURL,
			SearchInterval: musicbrainz.DefaultSearchInterval,
			CoverInterval:  musicbrainz.DefaultCoverInterval,
			Timeout:        musicbrainz.DefaultTimeout,
		},
	}
}

// Path is the default location of the configuration file
func Path() string {
	return filepath.Join(xdg.ConfigHome, dirName, fileName)
}

// Load reads the configuration file at path on top of the defaults:
// a missing file is not an error
func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	} else if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("malformed configuration %s: %w", path, err)
	}
	return config, config.Validate()
}

func (config Config) Validate() error {
	if len(strings.TrimSpace(config.Output)) == 0 {
		return errors.New("output directory not set")
	}
	if config.ArtworkSize <= 0 {
		return fmt.Errorf("invalid artwork size: %d", config.ArtworkSize)
	}
	if !supported(config.PlaylistEncoding) {
		return fmt.Errorf("unsupported playlist encoding: %s (use one of %s)",
			config.PlaylistEncoding, strings.Join(playlist.Encodings, ", "))
	}
	if config.Lookup.SearchInterval <= 0 || config.Lookup.CoverInterval <= 0 {
		return errors.New("lookup intervals must be positive")
	}
	if config.Lookup.Timeout <= 0 {
		return errors.New("lookup timeout must be positive")
	}
	return nil
}

func supported(encoding string) bool {
	for _, supported := range playlist.Encodings {
		if strings.EqualFold(encoding, supported) {
			return true
		}
	}
	return false
}
