package entity

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

const sourceTypePlaylist = "playlist"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Area is the thumbnail pixel count, zero if dimensions are unknown
func (thumbnail Thumbnail) Area() int {
	return thumbnail.Width * thumbnail.Height
}

// Genre holds the genre field of a source, which platforms
// either render as a plain string or as a list of strings
type Genre []string

func (genre *Genre) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*genre = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if len(single) > 0 {
			*genre = Genre{single}
		} else {
			*genre = nil
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("genre is neither a string nor a list of strings")
	}
	*genre = list
	return nil
}

// Source is the raw info the video platform yields for
// one item (or playlist) when probed, as dumped by yt-dlp
type Source struct {
	ID            string      `json:"id"`
	Type          string      `json:"_type"`
	Title         string      `json:"title"`
	Uploader      string      `json:"uploader"`
	Channel       string      `json:"channel"`
	UploadDate    string      `json:"upload_date"`
	Thumbnail     string      `json:"thumbnail"`
	Thumbnails    []Thumbnail `json:"thumbnails"`
	Categories    []string    `json:"categories"`
	Genre         Genre       `json:"genre"`
	Album         string      `json:"album"`
	TrackNumber   int         `json:"track_number"`
	PlaylistIndex int         `json:"playlist_index"`
	PlaylistCount int         `json:"playlist_count"`
	Duration      float64     `json:"duration"`
	URL           string      `json:"url"`
	WebpageURL    string      `json:"webpage_url"`
	Entries       []*Source   `json:"entries"`
}

// ParseSource decodes a probe dump
func ParseSource(data []byte) (*Source, error) {
	var source Source
	if err := json.Unmarshal(data, &source); err != nil {
		return nil, err
	}
	return &source, nil
}

// IsPlaylist reports whether the source is a collection of items
func (source *Source) IsPlaylist() bool {
	return source.Type == sourceTypePlaylist || len(source.Entries) > 0
}

// Link returns the canonical URL of the source
func (source *Source) Link() string {
	if len(source.WebpageURL) > 0 {
		return source.WebpageURL
	}
	return source.URL
}
