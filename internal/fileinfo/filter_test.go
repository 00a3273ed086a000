package fileinfo

import (
	"testing"
)

func ff(path, ext string) FileInfo {
	return FileInfo{Path: path, Filename: path, Extension: ext}
}

func sampleCache() []FileInfo {
	return []FileInfo{
		ff("C:\\docs\\report.docx", ".docx"),
		ff("C:\\docs\\manual.pdf", ".pdf"),
		ff("C:\\docs\\budget.xlsx", ".xlsx"),
	}
}

func TestParseSelector(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Selector
	}{
		{"all", SelectorAll},
		{"pdf", SelectorPDF},
		{"word", SelectorWord},
		{"excel", SelectorExcel},
		{"PDF", SelectorPDF},
		{" word ", SelectorWord},
		{"powerpoint", SelectorAll}, // unrecognized values behave as all
		{"", SelectorAll},
	}

	for _, tc := range testCases {
		if got := ParseSelector(tc.raw); got != tc.expected {
			t.Errorf("ParseSelector(%q) = %q, expected %q", tc.raw, got, tc.expected)
		}
	}
}

func TestFilterBySelector(t *testing.T) {
	cache := sampleCache()

	word := Filter(cache, SelectorWord)
	if len(word) != 1 || word[0].Extension != ".docx" {
		t.Errorf("word filter: expected exactly the .docx entry, got %v", word)
	}

	excel := Filter(cache, SelectorExcel)
	if len(excel) != 1 || excel[0].Extension != ".xlsx" {
		t.Errorf("excel filter: expected exactly the .xlsx entry, got %v", excel)
	}

	pdf := Filter(cache, SelectorPDF)
	if len(pdf) != 1 || pdf[0].Extension != ".pdf" {
		t.Errorf("pdf filter: expected exactly the .pdf entry, got %v", pdf)
	}

	all := Filter(cache, SelectorAll)
	if len(all) != len(cache) {
		t.Errorf("all filter: expected %d entries, got %d", len(cache), len(all))
	}
}

func TestFilterUnknownSelectorBehavesAsAll(t *testing.T) {
	cache := sampleCache()
	for _, raw := range []string{"bogus", "", "ALL??", "ppt"} {
		got := Filter(cache, ParseSelector(raw))
		want := Filter(cache, SelectorAll)
		if len(got) != len(want) {
			t.Errorf("selector %q: expected %d entries, got %d", raw, len(want), len(got))
		}
	}
}

func TestFilterIsStable(t *testing.T) {
	cache := []FileInfo{
		ff("a.docx", ".docx"),
		ff("b.pdf", ".pdf"),
		ff("c.doc", ".doc"),
		ff("d.docx", ".docx"),
	}
	got := Filter(cache, SelectorWord)
	want := []string{"a.docx", "c.doc", "d.docx"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i, p := range want {
		if got[i].Path != p {
			t.Errorf("position %d: expected %q, got %q", i, p, got[i].Path)
		}
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	cache := sampleCache()
	for _, sel := range Selectors {
		once := Filter(cache, sel)
		twice := Filter(once, sel)
		if len(once) != len(twice) {
			t.Errorf("selector %q: re-filtering changed length %d -> %d", sel, len(once), len(twice))
		}
		for i := range once {
			if once[i].Path != twice[i].Path {
				t.Errorf("selector %q: re-filtering changed entry %d", sel, i)
			}
		}
	}
}

func TestFilterCountMatchesPredicate(t *testing.T) {
	cache := []FileInfo{
		ff("a", ".pdf"), ff("b", ".docx"), ff("c", ".doc"),
		ff("d", ".xls"), ff("e", ".xlsx"), ff("f", ".txt"), ff("g", ""),
	}
	for _, sel := range Selectors {
		count := 0
		for _, f := range cache {
			if sel.Matches(f.Extension) {
				count++
			}
		}
		if got := len(Filter(cache, sel)); got != count {
			t.Errorf("selector %q: expected %d entries, got %d", sel, count, got)
		}
	}
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	if !SelectorPDF.Matches(".PDF") {
		t.Error("expected .PDF to match the pdf selector")
	}
	if !SelectorWord.Matches(".DocX") {
		t.Error("expected .DocX to match the word selector")
	}
}

func TestExclude(t *testing.T) {
	cache := []FileInfo{
		ff("C:/Users/a/report.docx", ".docx"),
		ff("C:/Users/a/~$report.docx", ".docx"),
		ff("C:/Users/a/tmp/draft.pdf", ".pdf"),
	}

	got := Exclude(cache, []string{"**/~$*", "**/tmp/**"})
	if len(got) != 1 || got[0].Path != "C:/Users/a/report.docx" {
		t.Errorf("expected only report.docx to survive, got %v", got)
	}

	// Backslash paths, as the index actually serves them, must match the
	// same patterns on every platform
	backslash := []FileInfo{
		ff(`C:\Users\a\report.docx`, ".docx"),
		ff(`C:\Users\a\~$report.docx`, ".docx"),
		ff(`C:\Users\a\tmp\draft.pdf`, ".pdf"),
	}
	got = Exclude(backslash, []string{"**/~$*", "**/tmp/**"})
	if len(got) != 1 || got[0].Path != `C:\Users\a\report.docx` {
		t.Errorf("expected only report.docx to survive backslash paths, got %v", got)
	}

	// No patterns returns the input unchanged
	if got := Exclude(cache, nil); len(got) != len(cache) {
		t.Errorf("expected all entries without patterns, got %d", len(got))
	}

	// Invalid patterns are skipped, not fatal
	if got := Exclude(cache, []string{"[bad"}); len(got) != len(cache) {
		t.Errorf("expected invalid pattern to be ignored, got %d entries", len(got))
	}
}
