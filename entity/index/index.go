package index

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/bogem/id3v2/v2"
	"github.com/streambinder/tubetag/entity"
	"github.com/streambinder/tubetag/entity/id3"
)

const (
	Online = iota
	Installed
	Flush
)

// maximum edit distance between two "artist - title" keys,
// as a fraction of the longest one, for them to be deemed similar
const similarityTolerance = 0.1

// Index maps upstream URLs of the local library
// tracks to their status and path
type Index struct {
	lock   sync.RWMutex
	status map[string]int
	paths  map[string]string
	names  map[string]string
}

func New() *Index {
	return &Index{
		status: make(map[string]int),
		paths:  make(map[string]string),
		names:  make(map[string]string),
	}
}

// Build walks the library at the given path indexing every
// tagged track as Installed
func (index *Index) Build(path string) error {
	return filepath.Walk(path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), "."+entity.TrackFormat) {
			return nil
		}

		tag, err := id3.Open(path, id3v2.Options{Parse: true})
		if err != nil {
			// unreadable tracks are not part of the library
			return nil
		}
		defer tag.Close()

		metadata := tag.Metadata()
		if len(metadata.Title) > 0 {
			index.lock.Lock()
			index.names[key(metadata.Artist, metadata.Title)] = path
			index.lock.Unlock()
		}
		if url := tag.UpstreamURL(); len(url) > 0 {
			index.SetPath(url, path, Installed)
		}
		return nil
	})
}

func (index *Index) Set(url string, status int) {
	index.lock.Lock()
	defer index.lock.Unlock()
	index.status[url] = status
}

// SetPath binds the upstream URL to the given path and status
func (index *Index) SetPath(url, path string, status int) {
	index.lock.Lock()
	defer index.lock.Unlock()
	index.status[url] = status
	index.paths[url] = path
}

func (index *Index) Get(url string) (int, bool) {
	index.lock.RLock()
	defer index.lock.RUnlock()
	status, ok := index.status[url]
	return status, ok
}

// Path returns the local path of the track fetched from the given URL
func (index *Index) Path(url string) (string, bool) {
	index.lock.RLock()
	defer index.lock.RUnlock()
	path, ok := index.paths[url]
	return path, ok
}

// Similar looks for a library track whose artist and title
// closely resemble the given ones, returning its path
func (index *Index) Similar(artist, title string) (string, bool) {
	var (
		wanted   = key(artist, title)
		bestPath string
		bestDist = -1
	)
	index.lock.RLock()
	defer index.lock.RUnlock()
	for name, path := range index.names {
		distance := levenshtein.ComputeDistance(wanted, name)
		longest := len([]rune(wanted))
		if runes := len([]rune(name)); runes > longest {
			longest = runes
		}
		if float64(distance) > similarityTolerance*float64(longest) {
			continue
		}
		if bestDist < 0 || distance < bestDist || (distance == bestDist && path < bestPath) {
			bestPath, bestDist = path, distance
		}
	}
	return bestPath, bestDist >= 0
}

// Size returns the amount of indexed tracks, optionally
// restricted to the given statuses
func (index *Index) Size(statuses ...int) int {
	index.lock.RLock()
	defer index.lock.RUnlock()
	if len(statuses) == 0 {
		return len(index.status)
	}
	var counter int
	for _, status := range index.status {
		for _, wanted := range statuses {
			if status == wanted {
				counter++
				break
			}
		}
	}
	return counter
}

func key(artist, title string) string {
	return strings.ToLower(strings.TrimSpace(artist) + " - " + strings.TrimSpace(title))
}
