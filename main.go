package main

import (
	"flag"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"dxview/internal/api"
	"dxview/internal/config"
	"dxview/internal/constants"
	"dxview/internal/fileinfo"
	"dxview/internal/secret"
	customtheme "dxview/internal/theme"
	"dxview/internal/ui"
	"dxview/internal/watcher"
)

// Global debug flag
var debugMode bool

// debugPrint prints debug messages only when debug mode is enabled
func debugPrint(format string, args ...interface{}) {
	if debugMode {
		log.Printf("DEBUG: "+format, args...)
	}
}

// Viewer wires the backend client, the panels and the background refresh
// watcher together under one window
type Viewer struct {
	window        fyne.Window
	client        *api.Client
	config        *config.Config
	recentPanel   *ui.RecentPanel
	searchPanel   *ui.SearchPanel
	statsPanel    *ui.StatsPanel
	recentWatcher *watcher.RecentWatcher
}

// resolveToken finds the API token for the backend, preferring the OS
// keyring when enabled, then the environment
func resolveToken(cfg *config.Config) string {
	if cfg.Server.TokenFromRing {
		store, err := secret.NewKeyringStore()
		if err != nil {
			log.Printf("Warning: keyring unavailable: %v", err)
		} else {
			token, found, err := store.GetToken(cfg.Server.BaseURL)
			if err != nil {
				log.Printf("Warning: keyring lookup failed: %v", err)
			} else if found {
				debugPrint("API token loaded from keyring")
				return token
			}
		}
	}
	if token := os.Getenv(constants.APITokenEnvVar); token != "" {
		debugPrint("API token loaded from %s", constants.APITokenEnvVar)
		return token
	}
	return ""
}

func newViewer(cfg *config.Config, window fyne.Window) *Viewer {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	client := api.New(api.Config{
		BaseURL:  cfg.Server.BaseURL,
		Timeout:  timeout,
		APIToken: resolveToken(cfg),
	}, debugPrint)

	v := &Viewer{
		window: window,
		client: client,
		config: cfg,
	}

	v.recentPanel = ui.NewRecentPanel(client, window, ui.RecentPanelConfig{
		Days:            cfg.Server.RecentDays,
		Timeout:         timeout,
		ExcludePatterns: cfg.UI.ExcludePatterns,
	}, debugPrint)
	v.searchPanel = ui.NewSearchPanel(client, window, timeout, debugPrint)
	v.statsPanel = ui.NewStatsPanel(client, window, timeout, debugPrint)

	if cfg.UI.AutoRefresh.Enabled {
		interval := time.Duration(cfg.UI.AutoRefresh.IntervalSeconds) * time.Second
		v.recentWatcher = watcher.NewRecentWatcher(client, cfg.Server.RecentDays, interval,
			func(files []fileinfo.FileInfo) {
				fyne.Do(func() {
					v.recentPanel.ApplyRefresh(files)
				})
			}, debugPrint)
		v.recentPanel.OnCacheReplaced = v.recentWatcher.Seed
	}

	return v
}

func (v *Viewer) buildContent() fyne.CanvasObject {
	tabs := container.NewAppTabs(
		container.NewTabItem("Recent", v.recentPanel.Container()),
		container.NewTabItem("Search", v.searchPanel.Container()),
		container.NewTabItem("Stats", v.statsPanel.Container()),
	)
	tabs.OnSelected = func(item *container.TabItem) {
		switch item.Text {
		case "Search":
			v.searchPanel.Focus()
		case "Stats":
			v.statsPanel.Refresh()
		}
	}
	return tabs
}

// setupKeyHandling installs the global shortcuts: F5 or R reloads the
// recent list, 1-4 switch the category filter
func (v *Viewer) setupKeyHandling() {
	v.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyF5, fyne.KeyR:
			v.recentPanel.Reload()
		case fyne.Key1:
			v.recentPanel.SetSelector(fileinfo.SelectorAll)
		case fyne.Key2:
			v.recentPanel.SetSelector(fileinfo.SelectorPDF)
		case fyne.Key3:
			v.recentPanel.SetSelector(fileinfo.SelectorWord)
		case fyne.Key4:
			v.recentPanel.SetSelector(fileinfo.SelectorExcel)
		}
	})
}

func (v *Viewer) start() {
	v.recentPanel.Reload()
	if v.recentWatcher != nil {
		v.recentWatcher.Start()
	}
}

func (v *Viewer) stop() {
	if v.recentWatcher != nil {
		v.recentWatcher.Stop()
	}
}

// runTokenCommand stores or removes the API token for the configured server
// in the OS keyring
func runTokenCommand(store secret.Store, serverURL, setToken string, deleteToken bool) error {
	if setToken != "" {
		if err := store.SetToken(serverURL, setToken); err != nil {
			return err
		}
		log.Printf("API token stored for %s", serverURL)
		return nil
	}
	if err := store.DeleteToken(serverURL); err != nil {
		return err
	}
	log.Printf("API token removed for %s", serverURL)
	return nil
}

func main() {
	var serverURL string
	var recentDays int
	var setToken string
	var deleteToken bool
	flag.BoolVar(&debugMode, "d", false, "Enable debug output")
	flag.StringVar(&serverURL, "server", "", "Backend server URL (overrides config)")
	flag.IntVar(&recentDays, "days", 0, "Days window for the recent list (overrides config)")
	flag.StringVar(&setToken, "set-token", "", "Store an API token in the OS keyring and exit")
	flag.BoolVar(&deleteToken, "delete-token", false, "Remove the stored API token from the OS keyring and exit")
	flag.Parse()

	configManager := config.NewManager()
	cfg, err := configManager.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}

	if setToken != "" || deleteToken {
		store, err := secret.NewKeyringStore()
		if err != nil {
			log.Fatalf("Error opening keyring: %v", err)
		}
		if err := runTokenCommand(store, cfg.Server.BaseURL, setToken, deleteToken); err != nil {
			log.Fatalf("Error updating keyring: %v", err)
		}
		return
	}
	if recentDays >= constants.MinRecentDays && recentDays <= constants.MaxRecentDays {
		cfg.Server.RecentDays = recentDays
	}

	fyneApp := app.New()
	fyneApp.Settings().SetTheme(customtheme.NewCustomTheme(cfg))

	window := fyneApp.NewWindow(constants.ApplicationTitle)
	window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	viewer := newViewer(cfg, window)
	window.SetContent(viewer.buildContent())
	viewer.setupKeyHandling()
	window.SetCloseIntercept(func() {
		viewer.stop()
		window.Close()
	})

	viewer.start()
	window.ShowAndRun()
}
