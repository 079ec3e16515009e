package musicbrainz

import "fmt"

// StatusError is returned when an endpoint replies with a status other than 200
type StatusError struct {
	URL        string
	StatusCode int
}

func (err *StatusError) Error() string {
	if err == nil {
		return "HTTP status error"
	}
	return fmt.Sprintf("HTTP %d from %s", err.StatusCode, err.URL)
}
