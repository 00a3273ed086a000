package theme

import (
	"image/color"
	"log"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"dxview/internal/config"
)

// CustomTheme implements fyne.Theme with configurable dark/light variant,
// font size and an optional font file.
type CustomTheme struct {
	config     *config.Config
	customFont fyne.Resource
}

// NewCustomTheme creates a new custom theme from the configuration
func NewCustomTheme(cfg *config.Config) *CustomTheme {
	t := &CustomTheme{config: cfg}
	if cfg.Theme.FontPath != "" {
		t.loadCustomFont(cfg.Theme.FontPath)
	}
	return t
}

func (t *CustomTheme) loadCustomFont(fontPath string) {
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		log.Printf("Cannot load custom font %s: %v", fontPath, err)
		return
	}
	t.customFont = fyne.NewStaticResource(filepath.Base(fontPath), fontData)
	log.Printf("Loaded custom font: %s", fontPath)
}

func (t *CustomTheme) base() fyne.Theme {
	if t.config.Theme.Dark {
		return theme.DarkTheme()
	}
	return theme.DefaultTheme()
}

func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base().Color(name, variant)
}

func (t *CustomTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base().Icon(name)
}

func (t *CustomTheme) Font(style fyne.TextStyle) fyne.Resource {
	if t.customFont != nil {
		return t.customFont
	}
	return t.base().Font(style)
}

func (t *CustomTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText && t.config.Theme.FontSize > 0 {
		return float32(t.config.Theme.FontSize)
	}
	if t.config.UI.ItemSpacing > 0 && name == theme.SizeNamePadding {
		// Keep a minimum so icons stay readable at tight spacing
		if t.config.UI.ItemSpacing < 2 {
			return 2
		}
		return float32(t.config.UI.ItemSpacing)
	}
	return t.base().Size(name)
}
