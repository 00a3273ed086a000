package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"dxview/internal/api"
	"dxview/internal/fileinfo"
)

type stubSearchBackend struct {
	result *api.SearchResult
	err    error
}

func (s *stubSearchBackend) Search(ctx context.Context, q string, opts api.SearchOptions) (*api.SearchResult, error) {
	return s.result, s.err
}

func (s *stubSearchBackend) OpenFolder(ctx context.Context, path string) (*api.Message, error) {
	return &api.Message{Success: true}, nil
}

func newTestSearchPanel(t *testing.T, backend SearchBackend) *SearchPanel {
	t.Helper()
	test.NewApp()
	return NewSearchPanel(backend, nil, 5*time.Second, discardPrint)
}

func TestSearchPanelApplyResult(t *testing.T) {
	p := newTestSearchPanel(t, &stubSearchBackend{})
	p.searchSeq = 1
	p.applySearch(1, &api.SearchResult{
		Hits: []fileinfo.FileInfo{
			{ID: "1", Path: "C:/docs/report.pdf", Filename: "report.pdf", Extension: ".pdf", Size: 2048},
		},
		TotalHits:        1,
		ProcessingTimeMs: 12,
	}, nil)

	if len(p.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(p.rows))
	}
	if p.sizes[0] != 2048 {
		t.Errorf("sizes[0] = %d, want 2048", p.sizes[0])
	}
	if got := p.statusLabel.Text; got != "1 hits (12 ms)" {
		t.Errorf("status = %q", got)
	}
}

func TestSearchPanelTruncatedResultCount(t *testing.T) {
	p := newTestSearchPanel(t, &stubSearchBackend{})
	p.searchSeq = 1
	p.applySearch(1, &api.SearchResult{
		Hits:      []fileinfo.FileInfo{{ID: "1", Filename: "a.pdf", Extension: ".pdf"}},
		TotalHits: 240,
	}, nil)
	if got := p.statusLabel.Text; !strings.HasPrefix(got, "Showing 1 of 240 hits") {
		t.Errorf("status = %q", got)
	}
}

func TestSearchPanelStaleResponseDropped(t *testing.T) {
	p := newTestSearchPanel(t, &stubSearchBackend{})
	p.searchSeq = 2
	p.applySearch(2, &api.SearchResult{
		Hits: []fileinfo.FileInfo{{ID: "1", Filename: "a.pdf", Extension: ".pdf"}},
	}, nil)
	p.applySearch(1, nil, errors.New("timeout"))

	if len(p.rows) != 1 {
		t.Errorf("stale response changed rows to %d", len(p.rows))
	}
}

func TestSearchPanelError(t *testing.T) {
	p := newTestSearchPanel(t, &stubSearchBackend{})
	p.searchSeq = 1
	p.applySearch(1, nil, errors.New("connection refused"))
	if !strings.HasPrefix(p.statusLabel.Text, "Search failed") {
		t.Errorf("status = %q", p.statusLabel.Text)
	}
}
