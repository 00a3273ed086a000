package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"dxview/internal/format"
)

// categoryIcon maps an icon category to a theme glyph.
// Categories outside the fixed table fall back to the generic file icon.
func categoryIcon(c format.Category) fyne.Resource {
	switch c {
	case format.CategoryDocument:
		return theme.DocumentIcon()
	case format.CategoryText:
		return theme.FileTextIcon()
	case format.CategoryImage:
		return theme.FileImageIcon()
	case format.CategoryAudio:
		return theme.FileAudioIcon()
	case format.CategoryVideo:
		return theme.FileVideoIcon()
	case format.CategoryArchive:
		return theme.StorageIcon()
	case format.CategorySource:
		return theme.FileApplicationIcon()
	default:
		return theme.FileIcon()
	}
}
