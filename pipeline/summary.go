package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProbe    = errors.New("probe failed")
	ErrDownload = errors.New("download failed")
	ErrTagWrite = errors.New("tag write failed")
	ErrSkipped  = errors.New("already installed")
)

// Summary accumulates the outcome of a run: items are referred to by their
// 1-based position, installed tracks by their path
type Summary struct {
	Succeeded []string
	Failed    []int
	Skipped   []int
	Untagged  []string
}

func (summary *Summary) String() string {
	parts := []string{fmt.Sprintf("%d succeeded", len(summary.Succeeded))}
	if len(summary.Failed) > 0 {
		parts = append(parts, fmt.Sprintf("%d failed %v", len(summary.Failed), summary.Failed))
	}
	if len(summary.Skipped) > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", len(summary.Skipped)))
	}
	if len(summary.Untagged) > 0 {
		parts = append(parts, fmt.Sprintf("%d untagged", len(summary.Untagged)))
	}
	return strings.Join(parts, ", ")
}

// record files the outcome of the item at the given position
func (summary *Summary) record(position int, path string, err error) {
	switch {
	case err == nil:
		summary.Succeeded = append(summary.Succeeded, path)
	case errors.Is(err, ErrTagWrite):
		summary.Succeeded = append(summary.Succeeded, path)
		summary.Untagged = append(summary.Untagged, path)
	case errors.Is(err, ErrSkipped):
		summary.Skipped = append(summary.Skipped, position)
	default:
		summary.Failed = append(summary.Failed, position)
	}
}

func wrap(kind, err error) error {
	return fmt.Errorf("%w: %s", kind, err)
}
