package util

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
)

const cacheDirName = "tubetag"

var (
	// characters not allowed in a single path segment
	segmentIllegal = regexp.MustCompile(`[\\/*?:"<>|]`)
	// on top of those, file names cannot carry control characters
	filenameIllegal = regexp.MustCompile(`[\\/*?:"<>|\x00-\x1f]`)
)

// SanitizeSegment strips the characters which are not allowed
// in a folder name: \ / * ? : " < > |
// Segments made of dots only, such as "..", are emptied.
func SanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segmentIllegal.ReplaceAllString(segment, ""))
	if len(strings.Trim(segment, ".")) == 0 {
		return ""
	}
	return segment
}

// LegalizeFilename makes the given name usable as a file name
// on every common filesystem
func LegalizeFilename(name string) string {
	name = filenameIllegal.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	// windows refuses trailing dots in names
	return strings.TrimRight(name, ".")
}

// FileBaseStem returns the base name of the given path,
// without its extension
func FileBaseStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CacheDirectory returns the application cache folder,
// creating it if missing
func CacheDirectory() string {
	dir := filepath.Join(xdg.CacheHome, cacheDirName)
	ErrSuppress(os.MkdirAll(dir, 0o755))
	return dir
}

// CacheFile returns the path of the given file
// inside the application cache folder
func CacheFile(name string) string {
	return filepath.Join(CacheDirectory(), name)
}

// FileExists reports whether the given path points to a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FileMoveOrCopy moves the source file to the destination,
// falling back to copy+delete across devices; if overwrite is false
// and the destination exists, os.ErrExist is returned
func FileMoveOrCopy(source, destination string, overwrite ...bool) error {
	if FileExists(destination) && (len(overwrite) == 0 || !overwrite[0]) {
		return os.ErrExist
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return err
	}

	if err := os.Rename(source, destination); err == nil {
		return nil
	}

	if err := FileCopy(source, destination); err != nil {
		return err
	}
	return os.Remove(source)
}

// FileCopy copies the source file content to the destination path
func FileCopy(source, destination string) error {
	input, err := os.Open(source)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := os.Create(destination)
	if err != nil {
		return err
	}

	if _, err := io.Copy(output, input); err != nil {
		ErrSuppress(output.Close())
		return err
	}
	return output.Close()
}
