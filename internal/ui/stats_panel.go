package ui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"dxview/internal/api"
)

// StatsBackend is what the stats panel needs from the backend client
type StatsBackend interface {
	Stats(ctx context.Context) (*api.Stats, error)
	CrawlStatus(ctx context.Context) (*api.CrawlStatus, error)
	Health(ctx context.Context) (*api.Health, error)
	StartCrawl(ctx context.Context) (*api.Message, error)
	StopCrawl(ctx context.Context) (*api.Message, error)
	ClearIndex(ctx context.Context) (*api.Message, error)
}

// StatsPanel shows index statistics and crawl status and hosts the crawl
// control actions. Every refresh re-queries stats, crawl status and health
// in one round.
type StatsPanel struct {
	backend    StatsBackend
	window     fyne.Window
	timeout    time.Duration
	debugPrint func(format string, args ...interface{})

	refreshSeq uint64

	healthLabel *widget.Label
	docsLabel   *widget.Label
	crawlLabel  *widget.Label
	fieldsText  *widget.Label
	root        fyne.CanvasObject
}

// NewStatsPanel builds the stats tab. Call Refresh when the tab is shown.
func NewStatsPanel(backend StatsBackend, window fyne.Window, timeout time.Duration, debugPrint func(format string, args ...interface{})) *StatsPanel {
	p := &StatsPanel{
		backend:    backend,
		window:     window,
		timeout:    timeout,
		debugPrint: debugPrint,
	}
	p.buildUI()
	return p
}

func (p *StatsPanel) buildUI() {
	p.healthLabel = widget.NewLabel("Health: unknown")
	p.docsLabel = widget.NewLabel("Documents: -")
	p.crawlLabel = widget.NewLabel("Crawler: unknown")
	p.fieldsText = widget.NewLabel("")

	startBtn := widget.NewButton("Start crawl", func() {
		p.runControl("Start crawl", p.backend.StartCrawl)
	})
	stopBtn := widget.NewButton("Stop crawl", func() {
		p.runControl("Stop crawl", p.backend.StopCrawl)
	})
	clearBtn := widget.NewButton("Clear index", p.confirmClearIndex)
	clearBtn.Importance = widget.DangerImportance
	refreshBtn := widget.NewButton("Refresh", p.Refresh)

	controls := container.NewHBox(startBtn, stopBtn, clearBtn, refreshBtn)
	p.root = container.NewVBox(
		p.healthLabel,
		p.docsLabel,
		p.crawlLabel,
		widget.NewSeparator(),
		p.fieldsText,
		widget.NewSeparator(),
		controls,
	)
}

// Container returns the panel's root canvas object
func (p *StatsPanel) Container() fyne.CanvasObject {
	return p.root
}

// Refresh re-queries the backend and updates all labels
func (p *StatsPanel) Refresh() {
	p.refreshSeq++
	seq := p.refreshSeq

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		health, healthErr := p.backend.Health(ctx)
		stats, statsErr := p.backend.Stats(ctx)
		crawl, crawlErr := p.backend.CrawlStatus(ctx)

		fyne.Do(func() {
			if seq != p.refreshSeq {
				return
			}
			p.applyHealth(health, healthErr)
			p.applyStats(stats, statsErr)
			p.applyCrawl(crawl, crawlErr)
		})
	}()
}

func (p *StatsPanel) applyHealth(health *api.Health, err error) {
	if err != nil {
		p.healthLabel.SetText(fmt.Sprintf("Health: unreachable (%v)", err))
		return
	}
	p.healthLabel.SetText(fmt.Sprintf("Health: %s (index engine %s)", health.Status, health.Meilisearch))
}

func (p *StatsPanel) applyStats(stats *api.Stats, err error) {
	if err != nil {
		p.docsLabel.SetText("Documents: unavailable")
		p.fieldsText.SetText("")
		return
	}
	indexing := ""
	if stats.IsIndexing {
		indexing = " (indexing)"
	}
	p.docsLabel.SetText(fmt.Sprintf("Documents: %d%s", stats.TotalDocuments, indexing))
	p.fieldsText.SetText(fieldDistributionText(stats.FieldDistribution))
}

func (p *StatsPanel) applyCrawl(crawl *api.CrawlStatus, err error) {
	if err != nil {
		p.crawlLabel.SetText("Crawler: unavailable")
		return
	}
	p.crawlLabel.SetText("Crawler: " + crawl.String())
}

// fieldDistributionText renders the per-field document counts in a stable
// order
func fieldDistributionText(fields map[string]int) string {
	if len(fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := "Field coverage:"
	for _, name := range names {
		out += fmt.Sprintf("\n  %s: %d", name, fields[name])
	}
	return out
}

func (p *StatsPanel) runControl(operation string, call func(context.Context) (*api.Message, error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		msg, err := call(ctx)
		fyne.Do(func() {
			p.controlDone(operation, msg, err)
		})
	}()
}

// controlDone resolves a finished control action on the UI thread: failures
// get the blocking error dialog, successes echo the backend's message and
// re-query the status labels
func (p *StatsPanel) controlDone(operation string, msg *api.Message, err error) {
	if err != nil {
		p.debugPrint("%s failed: %v", operation, err)
		if p.window != nil {
			ShowErrorDialog(p.window, err)
		}
		return
	}
	p.debugPrint("%s: %s", operation, msg.Message)
	if p.window != nil {
		ShowMessageDialog(p.window, operation, msg.Message)
	}
	p.Refresh()
}

func (p *StatsPanel) confirmClearIndex() {
	if p.window == nil {
		return
	}
	dialog.ShowConfirm("Clear index",
		"Remove all documents from the index? A full re-crawl will be needed.",
		func(confirmed bool) {
			if confirmed {
				p.runControl("Clear index", p.backend.ClearIndex)
			}
		}, p.window)
}
