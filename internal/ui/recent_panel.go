package ui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"dxview/internal/api"
	"dxview/internal/fileinfo"
	"dxview/internal/format"
)

// PanelStatus is the recent panel's load lifecycle state
type PanelStatus int

const (
	StatusIdle PanelStatus = iota
	StatusLoading
	StatusErrored
	StatusEmpty
	StatusPopulated
)

// RecentBackend is what the panel needs from the backend client
type RecentBackend interface {
	FetchRecent(ctx context.Context, days int) ([]fileinfo.FileInfo, error)
	OpenFolder(ctx context.Context, path string) (*api.Message, error)
}

// RecentPanelConfig carries the panel's tunables out of the app config
type RecentPanelConfig struct {
	Days            int
	Timeout         time.Duration
	ExcludePatterns []string
}

// RecentPanel owns the recent-files session state: the fetched cache, the
// active category selector and the load status. The displayed rows are always
// derived from cache+selector, never stored independently. All state is
// mutated on the UI thread only; network calls run on goroutines and marshal
// their results back with fyne.Do.
type RecentPanel struct {
	backend    RecentBackend
	window     fyne.Window
	cfg        RecentPanelConfig
	debugPrint func(format string, args ...interface{})
	now        func() time.Time

	// OnCacheReplaced, when set, observes every successful cache
	// replacement (used to seed the refresh watcher).
	OnCacheReplaced func([]fileinfo.FileInfo)

	// session state
	cache     []fileinfo.FileInfo
	selector  fileinfo.Selector
	status    PanelStatus
	lastErr   error
	busyPaths map[string]bool
	rows      []fileinfo.Row

	// fetchSeq tags each fetch; only the newest request may update the
	// cache, so a slow earlier response can never clobber a later one.
	fetchSeq uint64

	filterButtons map[fileinfo.Selector]*widget.Button
	list          *widget.List
	countLabel    *widget.Label
	errorLabel    *widget.Label
	loadingBox    fyne.CanvasObject
	errorBox      fyne.CanvasObject
	emptyBox      fyne.CanvasObject
	populatedBox  fyne.CanvasObject
	root          fyne.CanvasObject
}

// NewRecentPanel creates the panel in the Idle state. Call Reload to start
// the first fetch.
func NewRecentPanel(backend RecentBackend, window fyne.Window, cfg RecentPanelConfig, debugPrint func(format string, args ...interface{})) *RecentPanel {
	p := &RecentPanel{
		backend:    backend,
		window:     window,
		cfg:        cfg,
		debugPrint: debugPrint,
		now:        time.Now,
		selector:   fileinfo.SelectorAll,
		status:     StatusIdle,
		busyPaths:  make(map[string]bool),
	}
	p.buildUI()
	return p
}

func (p *RecentPanel) buildUI() {
	// Filter row: one button per category, exactly one marked active
	p.filterButtons = make(map[fileinfo.Selector]*widget.Button, len(fileinfo.Selectors))
	filterRow := container.NewHBox()
	for _, sel := range fileinfo.Selectors {
		sel := sel
		btn := widget.NewButton(sel.Label(), func() {
			p.SetSelector(sel)
		})
		p.filterButtons[sel] = btn
		filterRow.Add(btn)
	}
	refreshBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		p.Reload()
	})
	header := container.NewBorder(nil, nil, filterRow, refreshBtn)

	// Loading state
	spinner := widget.NewProgressBarInfinite()
	spinner.Start()
	loadingLabel := widget.NewLabel("Loading recent files...")
	loadingLabel.Alignment = fyne.TextAlignCenter
	p.loadingBox = container.NewCenter(container.NewVBox(spinner, loadingLabel))

	// Errored state
	p.errorLabel = widget.NewLabel("")
	p.errorLabel.Alignment = fyne.TextAlignCenter
	p.errorLabel.Wrapping = fyne.TextWrapWord
	p.errorLabel.Importance = widget.DangerImportance
	p.errorBox = container.NewCenter(p.errorLabel)

	// Empty state
	emptyLabel := widget.NewLabel("No recent files")
	emptyLabel.Alignment = fyne.TextAlignCenter
	p.emptyBox = container.NewCenter(emptyLabel)

	// Populated state: rows + trailing count label
	p.list = widget.NewList(
		func() int { return len(p.rows) },
		func() fyne.CanvasObject {
			icon := NewTappableIcon(categoryIcon(format.CategoryGeneric), nil)
			name := widget.NewRichTextFromMarkdown("name")
			name.Truncation = fyne.TextTruncateEllipsis
			date := widget.NewLabel("date")
			return container.NewBorder(nil, nil, icon, date, name)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(p.rows) {
				return
			}
			p.updateRowObject(p.rows[id], obj)
		},
	)
	p.list.OnSelected = func(id widget.ListItemID) {
		// Clear the selection right away; activation is an action, not a
		// persistent selection (same approach as the cursor handling in
		// the file list this panel grew out of).
		p.list.UnselectAll()
		if id >= 0 && id < len(p.rows) {
			p.openRow(p.rows[id].File.Path)
		}
	}
	p.countLabel = widget.NewLabel("")
	p.populatedBox = container.NewBorder(nil, p.countLabel, nil, nil, p.list)

	states := container.NewStack(p.loadingBox, p.errorBox, p.emptyBox, p.populatedBox)
	p.root = container.NewBorder(header, nil, nil, nil, states)

	p.markActiveButton()
	p.render()
}

// Container returns the panel's root canvas object for window layout
func (p *RecentPanel) Container() fyne.CanvasObject {
	return p.root
}

// Status returns the current lifecycle state
func (p *RecentPanel) Status() PanelStatus {
	return p.status
}

// Selector returns the active category selector
func (p *RecentPanel) Selector() fileinfo.Selector {
	return p.selector
}

// Reload starts a fresh fetch. The panel shows Loading until the newest
// outstanding request completes; responses of superseded requests are
// dropped.
func (p *RecentPanel) Reload() {
	seq := p.beginLoad()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.cfg.Timeout)
		defer cancel()
		files, err := p.backend.FetchRecent(ctx, p.cfg.Days)
		fyne.Do(func() {
			p.applyFetch(seq, files, err)
		})
	}()
}

// beginLoad advances the fetch sequence and enters the Loading state
func (p *RecentPanel) beginLoad() uint64 {
	p.fetchSeq++
	p.status = StatusLoading
	p.render()
	return p.fetchSeq
}

// applyFetch resolves a completed fetch. Stale responses (a newer fetch was
// issued meanwhile) are discarded without touching any state.
func (p *RecentPanel) applyFetch(seq uint64, files []fileinfo.FileInfo, err error) {
	if seq != p.fetchSeq {
		p.debugPrint("Dropping stale fetch response (seq %d, current %d)", seq, p.fetchSeq)
		return
	}
	if err != nil {
		// The cache keeps its prior value; only the view changes
		p.lastErr = err
		p.status = StatusErrored
		p.render()
		return
	}
	p.replaceCache(files)
}

// ApplyRefresh lets the background watcher replace the cache without a
// Loading transition. The active selector is preserved.
func (p *RecentPanel) ApplyRefresh(files []fileinfo.FileInfo) {
	if p.status == StatusLoading {
		// A user-triggered fetch is in flight; it owns the next update
		return
	}
	p.replaceCache(files)
}

func (p *RecentPanel) replaceCache(files []fileinfo.FileInfo) {
	p.cache = fileinfo.Exclude(files, p.cfg.ExcludePatterns)
	p.lastErr = nil
	if p.OnCacheReplaced != nil {
		p.OnCacheReplaced(p.cache)
	}
	p.refreshView()
}

// SetSelector activates a category filter. The view is recomputed
// synchronously from the cached entries; no network request is issued.
func (p *RecentPanel) SetSelector(sel fileinfo.Selector) {
	p.selector = sel
	p.markActiveButton()
	if p.status == StatusIdle || p.status == StatusLoading {
		// Nothing fetched yet; the button marking is all that changes
		return
	}
	p.refreshView()
}

// refreshView recomputes the displayed rows from cache+selector and settles
// the panel into Populated or Empty
func (p *RecentPanel) refreshView() {
	display := fileinfo.Filter(p.cache, p.selector)
	if len(display) == 0 {
		p.status = StatusEmpty
	} else {
		p.status = StatusPopulated
	}
	p.rows = fileinfo.BuildRows(display, p.now())
	p.render()
}

// markActiveButton enforces mutual exclusivity across the filter buttons
func (p *RecentPanel) markActiveButton() {
	for sel, btn := range p.filterButtons {
		if sel == p.selector {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

// render shows exactly one of the four visual states
func (p *RecentPanel) render() {
	p.loadingBox.Hide()
	p.errorBox.Hide()
	p.emptyBox.Hide()
	p.populatedBox.Hide()

	switch p.status {
	case StatusLoading:
		p.loadingBox.Show()
	case StatusErrored:
		p.errorLabel.SetText(fmt.Sprintf("Could not load recent files: %v", p.lastErr))
		p.errorBox.Show()
	case StatusEmpty:
		p.emptyBox.Show()
	case StatusPopulated:
		p.countLabel.SetText(countText(len(p.rows)))
		p.list.Refresh()
		p.populatedBox.Show()
	default: // StatusIdle: nothing shown yet
	}
}

func countText(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}

// rowMarkup composes the rich-text line for one row. Filename and folder
// path come from the index and are untrusted; both are escaped so they can
// never be interpreted as markup.
func (p *RecentPanel) rowMarkup(row fileinfo.Row) string {
	name := format.EscapeMarkup(row.DisplayName)
	if p.busyPaths[row.File.Path] {
		// Dimmed while the open-folder request is in flight
		if row.FolderPath == "" {
			return fmt.Sprintf("*%s*", name)
		}
		return fmt.Sprintf("*%s  %s*", name, format.EscapeMarkup(row.FolderPath))
	}
	if row.FolderPath == "" {
		return fmt.Sprintf("**%s**", name)
	}
	return fmt.Sprintf("**%s**  %s", name, format.EscapeMarkup(row.FolderPath))
}

// rowDateText decorates the relative date with the refresh watcher's change
// marker, and signals an in-flight open request
func (p *RecentPanel) rowDateText(row fileinfo.Row) string {
	if p.busyPaths[row.File.Path] {
		return "opening..."
	}
	switch row.File.Status {
	case fileinfo.StatusAdded:
		return "new · " + row.DateLabel
	case fileinfo.StatusModified:
		return "updated · " + row.DateLabel
	default:
		return row.DateLabel
	}
}

func (p *RecentPanel) updateRowObject(row fileinfo.Row, obj fyne.CanvasObject) {
	border, ok := obj.(*fyne.Container)
	if !ok {
		return
	}

	var icon *TappableIcon
	var name *widget.RichText
	var date *widget.Label
	for _, child := range border.Objects {
		switch w := child.(type) {
		case *TappableIcon:
			icon = w
		case *widget.RichText:
			name = w
		case *widget.Label:
			date = w
		}
	}
	if icon == nil || name == nil || date == nil {
		return
	}

	path := row.File.Path
	icon.SetResource(categoryIcon(row.Category))
	icon.SetOnTapped(func() {
		p.openRow(path)
	})
	name.ParseMarkdown(p.rowMarkup(row))
	date.SetText(p.rowDateText(row))
}

// openRow asks the backend to reveal the entry's parent folder. The row is
// marked busy while the request is in flight and cleared again on both
// success and failure; a failure is surfaced as a blocking dialog and leaves
// the panel state untouched. Overlapping requests for different rows are
// allowed.
func (p *RecentPanel) openRow(path string) {
	if path == "" {
		return
	}
	p.busyPaths[path] = true
	p.list.Refresh()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.cfg.Timeout)
		defer cancel()
		msg, err := p.backend.OpenFolder(ctx, path)
		fyne.Do(func() {
			delete(p.busyPaths, path)
			p.list.Refresh()
			if err != nil {
				p.debugPrint("Open folder failed for %s: %v", path, err)
				if p.window != nil {
					ShowErrorDialog(p.window, err)
				}
				return
			}
			p.debugPrint("Open folder: %s", msg.Message)
		})
	}()
}
