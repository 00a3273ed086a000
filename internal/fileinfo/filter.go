package fileinfo

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Selector is the active category filter constraining the displayed entries
type Selector string

const (
	SelectorAll   Selector = "all"
	SelectorPDF   Selector = "pdf"
	SelectorWord  Selector = "word"
	SelectorExcel Selector = "excel"
)

// Selectors lists the known selectors in display order
var Selectors = []Selector{SelectorAll, SelectorPDF, SelectorWord, SelectorExcel}

// ParseSelector maps a raw selector value to a known Selector.
// Unrecognized values behave as SelectorAll and never fail.
func ParseSelector(s string) Selector {
	switch Selector(strings.ToLower(strings.TrimSpace(s))) {
	case SelectorPDF:
		return SelectorPDF
	case SelectorWord:
		return SelectorWord
	case SelectorExcel:
		return SelectorExcel
	default:
		return SelectorAll
	}
}

// Label returns the button caption for the selector
func (s Selector) Label() string {
	switch s {
	case SelectorPDF:
		return "PDF"
	case SelectorWord:
		return "Word"
	case SelectorExcel:
		return "Excel"
	default:
		return "All"
	}
}

// Matches reports whether a file extension passes the selector's predicate.
// Comparison is case-insensitive.
func (s Selector) Matches(ext string) bool {
	ext = strings.ToLower(ext)
	switch s {
	case SelectorPDF:
		return ext == ".pdf"
	case SelectorWord:
		return ext == ".doc" || ext == ".docx"
	case SelectorExcel:
		return ext == ".xls" || ext == ".xlsx"
	default:
		return true
	}
}

// Filter returns the entries of files passing the selector's predicate,
// preserving relative order. files is never mutated.
func Filter(files []FileInfo, sel Selector) []FileInfo {
	out := make([]FileInfo, 0, len(files))
	for _, f := range files {
		if sel.Matches(f.Extension) {
			out = append(out, f)
		}
	}
	return out
}

// Exclude drops entries whose slash-normalized path matches any of the
// doublestar glob patterns, preserving relative order. Invalid patterns are
// ignored rather than failing the whole refresh. The index serves Windows
// backslash paths, so normalization cannot depend on the build's separator.
func Exclude(files []FileInfo, patterns []string) []FileInfo {
	if len(patterns) == 0 {
		return files
	}
	out := make([]FileInfo, 0, len(files))
	for _, f := range files {
		normalized := strings.ReplaceAll(f.Path, "\\", "/")
		if !excluded(normalized, patterns) {
			out = append(out, f)
		}
	}
	return out
}

func excluded(path string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}
