package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// FallbackFonts returns the fonts fyne bundles for emoji and symbols, for
// sticker glyphs the configured font lacks. Builds without an emoji font
// return fewer entries.
func FallbackFonts() [][]byte {
	var fonts [][]byte
	for _, res := range []fyne.Resource{theme.DefaultEmojiFont(), theme.DefaultSymbolFont()} {
		if res != nil && len(res.Content()) > 0 {
			fonts = append(fonts, res.Content())
		}
	}
	return fonts
}
