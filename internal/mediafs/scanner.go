// Package mediafs derives downloaded-state by inspecting the data root.
// The external tool's naming template is user-configurable, so file names
// cannot be predicted; the one structural guarantee is that every media
// file name contains the bracketed external video ID.
package mediafs

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// mediaExtensions is the allow-list of file extensions considered media.
// Sidecar files (.json, .jpg, .description, ...) carry the same ID token
// and must not count as a download.
var mediaExtensions = map[string]struct{}{
	".mp4":  {},
	".mkv":  {},
	".webm": {},
	".m4a":  {},
	".mp3":  {},
	".opus": {},
	".flv":  {},
	".avi":  {},
	".mov":  {},
}

// Scanner locates downloaded media files under a single data root.
type Scanner struct {
	root string
}

func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// FindByVideoID walks the data root looking for a media file whose name
// contains the literal "[<videoID>]" token. Returns the path of the first
// match. A missing or unreadable root reads as "nothing downloaded".
func (s *Scanner) FindByVideoID(videoID string) (string, bool) {
	if videoID == "" {
		return "", false
	}
	token := "[" + videoID + "]"

	var found string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree, keep scanning the rest.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if _, ok := mediaExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}
		if strings.Contains(name, token) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil || found == "" {
		return "", false
	}
	return found, true
}

// IsDownloaded reports whether a media file for the video exists on disk.
func (s *Scanner) IsDownloaded(videoID string) bool {
	_, ok := s.FindByVideoID(videoID)
	return ok
}
