package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/streambinder/tubetag/processor"
	"github.com/thanhpk/randstr"
)

var client = &http.Client{}

// Download fetches the blob at url, runs the processor on it (if any applies),
// stores it at path (unless empty) and hands it over to every given channel
func Download(ctx context.Context, url, path string, processor processor.Processor, channels ...chan []byte) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	response, err := client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d fetching %s", response.StatusCode, url)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	if processor != nil && processor.Applies(&data) {
		if err := processor.Do(&data); err != nil {
			return err
		}
	}

	if len(path) > 0 {
		if err := write(path, data); err != nil {
			return err
		}
	}

	for _, ch := range channels {
		ch <- data
	}
	return nil
}

// write stores data at a partial path first,
// then moves it to its final location
func write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	partial := path + ".part-" + randstr.Hex(8)
	if err := os.WriteFile(partial, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(partial, path); err != nil {
		_ = os.Remove(partial)
		return err
	}
	return nil
}
