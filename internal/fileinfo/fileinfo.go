// Package fileinfo holds the metadata model for indexed documents as the
// backend reports them, together with the category filter and the pure
// per-row display derivations.
package fileinfo

import (
	"time"
)

// FileStatus marks how an entry changed since the previous refresh
type FileStatus int

const (
	StatusNormal FileStatus = iota
	StatusAdded             // appeared since the last refresh
	StatusModified          // modified_at changed since the last refresh
)

// FileInfo is one document as reported by the indexing backend.
// The backend owns these records; the client never mutates them.
type FileInfo struct {
	ID         string `json:"id"`
	Path       string `json:"path"`
	Filename   string `json:"filename"`
	Extension  string `json:"extension"` // lower-case, leading-dot form; may be empty
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"` // ISO-8601, possibly without zone; may be empty

	Status FileStatus `json:"-"`
}

// modified_at comes from the backend's strftime without a zone designator,
// but accept full RFC 3339 too.
var modifiedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ModifiedTime parses the ModifiedAt timestamp.
// The second return value is false for absent or unparseable timestamps.
func (f FileInfo) ModifiedTime() (time.Time, bool) {
	if f.ModifiedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range modifiedLayouts {
		if t, err := time.Parse(layout, f.ModifiedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
