package fileinfo

import (
	"strings"
	"time"

	"dxview/internal/constants"
	"dxview/internal/format"
)

// Row is the pure per-entry view model derived from a FileInfo.
// Rows are rebuilt on every render; only FileInfo is cached.
type Row struct {
	File        FileInfo
	DisplayName string
	FolderPath  string
	DateLabel   string
	Category    format.Category
}

// BuildRow derives the display fields for one entry at the given instant
func BuildRow(f FileInfo, now time.Time) Row {
	var label string
	if mod, ok := f.ModifiedTime(); ok {
		label = format.RelativeDate(mod, now)
	}
	return Row{
		File:        f,
		DisplayName: DisplayName(f.Filename),
		FolderPath:  FolderPath(f.Path),
		DateLabel:   label,
		Category:    format.IconCategory(f.Extension),
	}
}

// BuildRows derives rows for a whole display list
func BuildRows(files []FileInfo, now time.Time) []Row {
	rows := make([]Row, len(files))
	for i, f := range files {
		rows[i] = BuildRow(f, now)
	}
	return rows
}

// DisplayName truncates over-long filenames for display. Names longer than
// 30 runes are cut to the first 27 runes plus an ellipsis marker.
func DisplayName(name string) string {
	r := []rune(name)
	if len(r) <= constants.MaxDisplayNameLength {
		return name
	}
	return string(r[:constants.TruncatedNameLength]) + constants.EllipsisMarker
}

// FolderPath derives the parent folder from an absolute path. Forward
// slashes are normalized to backslashes (the index stores Windows paths),
// the final segment is dropped and the rest rejoined with backslashes.
// An empty path yields an empty folder path.
func FolderPath(path string) string {
	if path == "" {
		return ""
	}
	normalized := strings.ReplaceAll(path, "/", "\\")
	parts := strings.Split(normalized, "\\")
	if len(parts) <= 1 {
		return ""
	}
	return strings.Join(parts[:len(parts)-1], "\\")
}
