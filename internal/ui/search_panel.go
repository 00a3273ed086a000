package ui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"dxview/internal/api"
	"dxview/internal/fileinfo"
	"dxview/internal/format"
)

// SearchBackend is what the search panel needs from the backend client
type SearchBackend interface {
	Search(ctx context.Context, q string, opts api.SearchOptions) (*api.SearchResult, error)
	OpenFolder(ctx context.Context, path string) (*api.Message, error)
}

// extension filter choices offered alongside the query box
var searchExtensions = []string{"any", ".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt", ".md"}

const searchPageSize = 50

// SearchPanel runs full-text queries against the index and lists the hits.
// Like the recent panel it owns its results on the UI thread and marshals
// responses back with fyne.Do; a sequence number keeps a slow earlier query
// from overwriting a newer one.
type SearchPanel struct {
	backend    SearchBackend
	window     fyne.Window
	timeout    time.Duration
	debugPrint func(format string, args ...interface{})

	rows      []fileinfo.Row
	sizes     []int64
	searching bool
	searchSeq uint64

	queryEntry  *widget.Entry
	extSelect   *widget.Select
	list        *widget.List
	statusLabel *widget.Label
	root        fyne.CanvasObject
}

// NewSearchPanel builds the search tab
func NewSearchPanel(backend SearchBackend, window fyne.Window, timeout time.Duration, debugPrint func(format string, args ...interface{})) *SearchPanel {
	p := &SearchPanel{
		backend:    backend,
		window:     window,
		timeout:    timeout,
		debugPrint: debugPrint,
	}
	p.buildUI()
	return p
}

func (p *SearchPanel) buildUI() {
	p.queryEntry = widget.NewEntry()
	p.queryEntry.SetPlaceHolder("Search indexed files...")
	p.queryEntry.OnSubmitted = func(string) { p.runSearch() }

	p.extSelect = widget.NewSelect(searchExtensions, nil)
	p.extSelect.SetSelected("any")

	searchBtn := widget.NewButton("Search", p.runSearch)
	header := container.NewBorder(nil, nil, nil, container.NewHBox(p.extSelect, searchBtn), p.queryEntry)

	p.list = widget.NewList(
		func() int { return len(p.rows) },
		func() fyne.CanvasObject {
			icon := widget.NewIcon(categoryIcon(format.CategoryGeneric))
			name := widget.NewLabel("name")
			name.Truncation = fyne.TextTruncateEllipsis
			size := widget.NewLabel("size")
			return container.NewBorder(nil, nil, icon, size, name)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(p.rows) {
				return
			}
			p.updateRowObject(id, obj)
		},
	)
	p.list.OnSelected = func(id widget.ListItemID) {
		p.list.UnselectAll()
		if id >= 0 && id < len(p.rows) {
			p.openRow(p.rows[id].File.Path)
		}
	}

	p.statusLabel = widget.NewLabel("")
	p.root = container.NewBorder(header, p.statusLabel, nil, nil, p.list)
}

// Container returns the panel's root canvas object
func (p *SearchPanel) Container() fyne.CanvasObject {
	return p.root
}

// Focus puts the cursor into the query box
func (p *SearchPanel) Focus() {
	if p.window != nil {
		p.window.Canvas().Focus(p.queryEntry)
	}
}

func (p *SearchPanel) runSearch() {
	q := p.queryEntry.Text
	if q == "" {
		return
	}
	opts := api.SearchOptions{Limit: searchPageSize, Sort: "modified_at:desc"}
	if ext := p.extSelect.Selected; ext != "" && ext != "any" {
		opts.Extension = ext
	}

	p.searchSeq++
	seq := p.searchSeq
	p.searching = true
	p.statusLabel.SetText("Searching...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		result, err := p.backend.Search(ctx, q, opts)
		fyne.Do(func() {
			p.applySearch(seq, result, err)
		})
	}()
}

func (p *SearchPanel) applySearch(seq uint64, result *api.SearchResult, err error) {
	if seq != p.searchSeq {
		p.debugPrint("Dropping stale search response (seq %d, current %d)", seq, p.searchSeq)
		return
	}
	p.searching = false
	if err != nil {
		p.debugPrint("Search failed: %v", err)
		p.statusLabel.SetText(fmt.Sprintf("Search failed: %v", err))
		return
	}
	p.rows = fileinfo.BuildRows(result.Hits, time.Now())
	p.sizes = make([]int64, len(result.Hits))
	for i, hit := range result.Hits {
		p.sizes[i] = hit.Size
	}
	p.list.Refresh()
	if result.TotalHits > len(result.Hits) {
		p.statusLabel.SetText(fmt.Sprintf("Showing %d of %d hits (%d ms)", len(result.Hits), result.TotalHits, result.ProcessingTimeMs))
	} else {
		p.statusLabel.SetText(fmt.Sprintf("%d hits (%d ms)", result.TotalHits, result.ProcessingTimeMs))
	}
}

func (p *SearchPanel) updateRowObject(id int, obj fyne.CanvasObject) {
	border, ok := obj.(*fyne.Container)
	if !ok {
		return
	}
	row := p.rows[id]

	var icon *widget.Icon
	var name, size *widget.Label
	for _, child := range border.Objects {
		switch w := child.(type) {
		case *widget.Icon:
			icon = w
		case *widget.Label:
			// The name label stretches in the border center; the size
			// label sits on the trailing edge. Distinguish by order.
			if name == nil {
				name = w
			} else {
				size = w
			}
		}
	}
	if icon == nil || name == nil || size == nil {
		return
	}

	icon.SetResource(categoryIcon(row.Category))
	if row.FolderPath != "" {
		name.SetText(row.DisplayName + "  " + row.FolderPath)
	} else {
		name.SetText(row.DisplayName)
	}
	size.SetText(format.FormatFileSize(p.sizes[id]))
}

func (p *SearchPanel) openRow(path string) {
	if path == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		_, err := p.backend.OpenFolder(ctx, path)
		if err == nil {
			return
		}
		fyne.Do(func() {
			p.debugPrint("Open folder failed for %s: %v", path, err)
			if p.window != nil {
				ShowErrorDialog(p.window, err)
			}
		})
	}()
}
