package fileinfo

import (
	"strings"
	"testing"
	"time"

	"dxview/internal/format"
)

func TestModifiedTime(t *testing.T) {
	testCases := []struct {
		name  string
		raw   string
		ok    bool
		year  int
		month time.Month
	}{
		{"backend layout without zone", "2026-03-03T10:15:00", true, 2026, time.March},
		{"rfc3339", "2026-03-03T10:15:00Z", true, 2026, time.March},
		{"absent", "", false, 0, 0},
		{"garbage", "yesterday", false, 0, 0},
	}

	for _, tc := range testCases {
		f := FileInfo{ModifiedAt: tc.raw}
		got, ok := f.ModifiedTime()
		if ok != tc.ok {
			t.Errorf("%s: expected ok=%v, got %v", tc.name, tc.ok, ok)
			continue
		}
		if ok && (got.Year() != tc.year || got.Month() != tc.month) {
			t.Errorf("%s: unexpected parse result %v", tc.name, got)
		}
	}
}

func TestDisplayName(t *testing.T) {
	name35 := strings.Repeat("a", 35)
	got := DisplayName(name35)
	if got != strings.Repeat("a", 27)+"..." {
		t.Errorf("35-char name: expected 27 chars plus ellipsis, got %q", got)
	}

	name30 := strings.Repeat("b", 30)
	if got := DisplayName(name30); got != name30 {
		t.Errorf("30-char name: expected unchanged, got %q", got)
	}

	if got := DisplayName("short.txt"); got != "short.txt" {
		t.Errorf("short name: expected unchanged, got %q", got)
	}

	// Rune-based, not byte-based
	multibyte := strings.Repeat("議", 35)
	got = DisplayName(multibyte)
	if got != strings.Repeat("議", 27)+"..." {
		t.Errorf("multibyte name: expected 27 runes plus ellipsis, got %q", got)
	}
}

func TestFolderPath(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"C:\\Users\\alice\\docs\\report.docx", "C:\\Users\\alice\\docs"},
		{"C:/Users/alice/docs/report.docx", "C:\\Users\\alice\\docs"},
		{"/mnt/c_users/alice/a.pdf", "\\mnt\\c_users\\alice"},
		{"report.docx", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := FolderPath(tc.path); got != tc.expected {
			t.Errorf("FolderPath(%q) = %q, expected %q", tc.path, got, tc.expected)
		}
	}
}

func TestBuildRow(t *testing.T) {
	now := time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)
	f := FileInfo{
		Path:       "C:\\docs\\meeting notes.docx",
		Filename:   "meeting notes.docx",
		Extension:  ".docx",
		ModifiedAt: "2026-03-13T11:58:40",
	}

	row := BuildRow(f, now)
	if row.DisplayName != "meeting notes.docx" {
		t.Errorf("unexpected display name %q", row.DisplayName)
	}
	if row.FolderPath != "C:\\docs" {
		t.Errorf("unexpected folder path %q", row.FolderPath)
	}
	if row.DateLabel != "1min ago" {
		t.Errorf("unexpected date label %q", row.DateLabel)
	}
	if row.Category != format.CategoryDocument {
		t.Errorf("unexpected category %v", row.Category)
	}
}

func TestBuildRowAbsentTimestamp(t *testing.T) {
	row := BuildRow(FileInfo{Path: "C:\\a\\b.pdf", Filename: "b.pdf", Extension: ".pdf"}, time.Now())
	if row.DateLabel != "" {
		t.Errorf("absent timestamp: expected empty date label, got %q", row.DateLabel)
	}
}
