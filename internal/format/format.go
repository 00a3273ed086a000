// Package format holds the shared formatting helpers used by every panel:
// icon category lookup, relative date labels, human-readable sizes and
// markup escaping for untrusted index text.
package format

import (
	"fmt"
	"strings"
	"time"

	"dxview/internal/constants"
)

// Category classifies a file extension for icon selection
type Category int

const (
	CategoryGeneric Category = iota
	CategoryDocument
	CategoryText
	CategoryImage
	CategoryAudio
	CategoryVideo
	CategoryArchive
	CategorySource
)

// String returns a string representation of the category
func (c Category) String() string {
	switch c {
	case CategoryDocument:
		return "document"
	case CategoryText:
		return "text"
	case CategoryImage:
		return "image"
	case CategoryAudio:
		return "audio"
	case CategoryVideo:
		return "video"
	case CategoryArchive:
		return "archive"
	case CategorySource:
		return "source"
	default:
		return "generic"
	}
}

// Fixed extension table. Keys are lower-case, leading-dot form.
var extCategories = map[string]Category{
	// Office documents
	".pdf": CategoryDocument, ".doc": CategoryDocument, ".docx": CategoryDocument,
	".xls": CategoryDocument, ".xlsx": CategoryDocument,
	".ppt": CategoryDocument, ".pptx": CategoryDocument,

	// Plain text
	".txt": CategoryText, ".md": CategoryText, ".log": CategoryText, ".rtf": CategoryText,

	// Images
	".jpg": CategoryImage, ".jpeg": CategoryImage, ".png": CategoryImage,
	".gif": CategoryImage, ".bmp": CategoryImage, ".svg": CategoryImage, ".webp": CategoryImage,

	// Audio
	".mp3": CategoryAudio, ".wav": CategoryAudio, ".flac": CategoryAudio,
	".ogg": CategoryAudio, ".m4a": CategoryAudio,

	// Video
	".mp4": CategoryVideo, ".avi": CategoryVideo, ".mkv": CategoryVideo,
	".mov": CategoryVideo, ".wmv": CategoryVideo, ".webm": CategoryVideo,

	// Archives
	".zip": CategoryArchive, ".rar": CategoryArchive, ".7z": CategoryArchive,
	".tar": CategoryArchive, ".gz": CategoryArchive,

	// Source code
	".go": CategorySource, ".py": CategorySource, ".js": CategorySource,
	".ts": CategorySource, ".java": CategorySource, ".c": CategorySource,
	".cpp": CategorySource, ".h": CategorySource, ".rs": CategorySource,
	".sh": CategorySource, ".html": CategorySource, ".css": CategorySource,
	".json": CategorySource, ".xml": CategorySource,
}

// IconCategory looks up the icon category for a file extension.
// Unknown or empty extensions map to CategoryGeneric.
func IconCategory(ext string) Category {
	if ext == "" {
		return CategoryGeneric
	}
	if c, ok := extCategories[strings.ToLower(ext)]; ok {
		return c
	}
	return CategoryGeneric
}

// RelativeDate formats the time elapsed between modified and now as a short
// label: "now", "<N>min ago", "<N>h ago", "<N>d ago", then a short
// month/day form (e.g. "Mar 3"). A zero modified time yields "".
// All unit counts are integer-floored.
func RelativeDate(modified, now time.Time) string {
	if modified.IsZero() {
		return ""
	}
	elapsed := now.Sub(modified)
	switch {
	case elapsed < constants.RelativeDateMinute:
		return "now"
	case elapsed < constants.RelativeDateHour:
		return fmt.Sprintf("%dmin ago", int(elapsed.Minutes()))
	case elapsed < constants.RelativeDateDay:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < constants.RelativeDateWeek:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	default:
		return modified.Format("Jan 2")
	}
}

// FormatFileSize formats file size in human-readable format
func FormatFileSize(size int64) string {
	const unit = constants.FileSizeUnit
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), constants.FileSizeUnits[exp])
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeMarkup escapes the five markup-significant characters so text taken
// from filenames and paths can never be interpreted as markup.
func EscapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}
