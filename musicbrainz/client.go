package musicbrainz

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/streambinder/tubetag/entity"
	"github.com/streambinder/tubetag/util"
	"golang.org/x/time/rate"
)

const (
	DefaultMusicBrainzURL = "https://musicbrainz.org"
	DefaultCoverArtURL    = "https://coverartarchive.org"
	DefaultSearchInterval = time.Second
	DefaultCoverInterval  = 500 * time.Millisecond
	DefaultTimeout        = 10 * time.Second
	product               = "tubetag"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Options struct {
	MusicBrainzURL string
	CoverArtURL    string
	Version        string
	Contact        string
	SearchInterval time.Duration
	CoverInterval  time.Duration
	Timeout        time.Duration
	Logger         *log.Logger
}

// Client queries the recording search endpoint and the cover art archive.
// Each endpoint is guarded by its own limiter, which hands out one token
// per interval: a client must not be shared by concurrent lookups.
type Client struct {
	http          *http.Client
	searchURL     string
	coverURL      string
	userAgent     string
	searchLimiter *rate.Limiter
	coverLimiter  *rate.Limiter
	logger        *log.Logger
}

func New(options Options) *Client {
	if options.SearchInterval <= 0 {
		options.SearchInterval = DefaultSearchInterval
	}
	if options.CoverInterval <= 0 {
		options.CoverInterval = DefaultCoverInterval
	}
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}

	userAgent := product + "/" + util.FirstNonEmpty(options.Version, "dev")
	if contact := strings.TrimSpace(options.Contact); len(contact) > 0 {
		userAgent += " ( " + contact + " )"
	}

	return &Client{
		http:          &http.Client{Timeout: options.Timeout},
		searchURL:     strings.TrimSuffix(util.FirstNonEmpty(options.MusicBrainzURL, DefaultMusicBrainzURL), "/"),
		coverURL:      strings.TrimSuffix(util.FirstNonEmpty(options.CoverArtURL, DefaultCoverArtURL), "/"),
		userAgent:     userAgent,
		searchLimiter: rate.NewLimiter(rate.Every(options.SearchInterval), 1),
		coverLimiter:  rate.NewLimiter(rate.Every(options.CoverInterval), 1),
		logger:        options.Logger,
	}
}

// Lookup returns the enrichment record for the given title and artist:
// any failure is logged and yields an empty record
func (client *Client) Lookup(ctx context.Context, title, artist string) entity.Metadata {
	metadata, err := client.Search(ctx, title, artist)
	if err != nil {
		client.logger.Printf("metadata lookup for %q failed: %v", title, err)
		return entity.Metadata{}
	}
	return metadata
}

// Search queries the recording search endpoint and returns the metadata
// of the best candidate, or an empty record if none is good enough.
// Only failures of the search endpoint are returned: a cover art failure
// leaves the cover art field absent.
func (client *Client) Search(ctx context.Context, title, artist string) (entity.Metadata, error) {
	title, artist = strings.TrimSpace(title), strings.TrimSpace(artist)
	if artist == entity.UnknownArtist {
		artist = ""
	}
	if len(title) == 0 {
		return entity.Metadata{}, nil
	}

	var payload recordingSearch
	if err := client.get(ctx, client.searchLimiter, client.searchURL+"/ws/2/recording/?"+url.Values{
		"query": {strings.TrimSpace(artist + " " + title)},
		"fmt":   {"json"},
	}.Encode(), &payload); err != nil {
		return entity.Metadata{}, err
	}

	candidates := make([]Candidate, 0, len(payload.Recordings))
	for _, recording := range payload.Recordings {
		candidates = append(candidates, recording.candidate())
	}
	best, _, ok := Best(title, artist, candidates)
	if !ok {
		return entity.Metadata{}, nil
	}

	metadata := entity.Metadata{
		Title:  best.Title,
		Artist: best.Artist,
		Album:  best.Album,
		Year:   best.Year,
		Genre:  best.Genre,
		Track:  best.Track,
	}
	if len(best.ReleaseID) > 0 {
		cover, err := client.Cover(ctx, best.ReleaseID)
		if err != nil {
			client.logger.Printf("cover art lookup for release %s failed: %v", best.ReleaseID, err)
		}
		metadata.AlbumArtURL = cover
	}
	return metadata, nil
}

// Cover returns the URL of the front image of the given release,
// or of its first image if none is flagged as front
func (client *Client) Cover(ctx context.Context, releaseID string) (string, error) {
	var payload coverArt
	if err := client.get(ctx, client.coverLimiter, client.coverURL+"/release/"+url.PathEscape(releaseID), &payload); err != nil {
		return "", err
	}
	for _, image := range payload.Images {
		if image.Front && len(image.Image) > 0 {
			return image.Image, nil
		}
	}
	if len(payload.Images) > 0 {
		return payload.Images[0].Image, nil
	}
	return "", nil
}

func (client *Client) get(ctx context.Context, limiter *rate.Limiter, endpoint string, payload interface{}) error {
	if err := limiter.Wait(ctx); err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	request.Header.Set("User-Agent", client.userAgent)
	request.Header.Set("Accept", "application/json")

	response, err := client.http.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return &StatusError{URL: endpoint, StatusCode: response.StatusCode}
	}
	if err := json.NewDecoder(response.Body).Decode(payload); err != nil {
		return fmt.Errorf("malformed payload from %s: %w", endpoint, err)
	}
	return nil
}

type recordingSearch struct {
	Recordings []recording `json:"recordings"`
}

type recording struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	Releases     []release      `json:"releases"`
	Tags         []tag          `json:"tags"`
}

type artistCredit struct {
	Name   string `json:"name"`
	Artist struct {
		Name string `json:"name"`
	} `json:"artist"`
}

type release struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Media []struct {
		TrackOffset int `json:"track-offset"`
		Track       []struct {
			Number string `json:"number"`
		} `json:"track"`
	} `json:"media"`
}

type tag struct {
	Count int    `json:"count"`
	Name  string `json:"name"`
}

type coverArt struct {
	Images []struct {
		Front bool   `json:"front"`
		Image string `json:"image"`
	} `json:"images"`
}

func (recording recording) candidate() Candidate {
	candidate := Candidate{Title: strings.TrimSpace(recording.Title)}

	artists := make([]string, 0, len(recording.ArtistCredit))
	for _, credit := range recording.ArtistCredit {
		if name := util.FirstNonEmpty(credit.Name, credit.Artist.Name); len(name) > 0 {
			artists = append(artists, name)
		}
	}
	if len(artists) > 0 {
		candidate.Artist = strings.Join(artists, ", ")
		candidate.Credit = artists[0]
	}

	if len(recording.Releases) > 0 {
		release := recording.Releases[0]
		candidate.ReleaseID = release.ID
		candidate.Album = strings.TrimSpace(release.Title)
		if len(release.Date) >= 4 {
			candidate.Year = release.Date[:4]
		}
		if len(release.Media) > 0 && len(release.Media[0].Track) > 0 {
			media := release.Media[0]
			candidate.Track = util.FirstNonEmpty(media.Track[0].Number, strconv.Itoa(media.TrackOffset+1))
		}
	}

	tags := make([]tag, len(recording.Tags))
	copy(tags, recording.Tags)
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].Count > tags[j].Count })
	for _, tag := range tags {
		if name := strings.TrimSpace(tag.Name); len(name) > 0 {
			candidate.Genre = name
			break
		}
	}
	return candidate
}
