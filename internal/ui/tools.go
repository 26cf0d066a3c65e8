package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PaintTool/internal/state"
)

// defaultCustomSticker pre-fills the custom sticker form.
const defaultCustomSticker = "😀"

var swatchColors = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},         // Red
	color.NRGBA{G: 255, A: 255},         // Green
	color.NRGBA{B: 255, A: 255},         // Blue
	color.NRGBA{R: 255, G: 255, A: 255}, // Yellow
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// toolbar holds the controls around the board.
type toolbar struct {
	board *BoardWidget
	win   fyne.Window

	undo, redo, clear     *widget.Button
	exportPNG, exportPDF  *widget.Button
	thin, thick           *widget.Button
	pickColor, addSticker *widget.Button
	current               *canvas.Rectangle
	stickers              *fyne.Container

	content fyne.CanvasObject
}

// NewToolbar builds the history, export, thickness, color and sticker
// controls for board. Dialogs open on win.
func NewToolbar(board *BoardWidget, win fyne.Window) fyne.CanvasObject {
	return newToolbar(board, win).content
}

func newToolbar(board *BoardWidget, win fyne.Window) *toolbar {
	t := &toolbar{board: board, win: win}

	t.undo = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), board.Undo)
	t.redo = widget.NewButtonWithIcon("Redo", theme.ContentRedoIcon(), board.Redo)
	t.clear = widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), board.Clear)
	t.exportPNG = widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		board.ShowExportDialog(win, PNG)
	})
	t.exportPDF = widget.NewButtonWithIcon("PDF", theme.DocumentPrintIcon(), func() {
		board.ShowExportDialog(win, PDF)
	})

	t.thin = widget.NewButton("Thin", func() { t.setPreset(state.PresetThin) })
	t.thick = widget.NewButton("Thick", func() { t.setPreset(state.PresetThick) })
	t.highlightPreset(state.PresetThin)

	// --- Color Palette ---
	t.current = canvas.NewRectangle(board.Session().Color())
	t.current.SetMinSize(fyne.NewSize(24, 24))
	colorBox := container.NewHBox()
	for _, c := range swatchColors {
		colorBox.Add(newColorSwatch(c, t.setColor))
	}
	t.pickColor = widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), t.showColorPicker)

	// --- Stickers ---
	t.stickers = container.NewHBox()
	t.renderStickers()
	t.addSticker = widget.NewButtonWithIcon("Add Custom Sticker", theme.ContentAddIcon(), t.showStickerForm)

	history := container.NewHBox(t.undo, t.redo, t.clear, t.exportPNG, t.exportPDF)
	tools := container.NewHBox(
		t.thin, t.thick,
		widget.NewSeparator(),
		widget.NewLabel("Color:"), t.current, colorBox, t.pickColor,
		layout.NewSpacer(),
	)
	stickers := container.NewHBox(t.stickers, t.addSticker, layout.NewSpacer())
	t.content = container.NewVBox(history, tools, stickers)
	return t
}

func (t *toolbar) setPreset(p state.Preset) {
	t.board.Session().SetPreset(p)
	t.highlightPreset(p)
}

func (t *toolbar) highlightPreset(p state.Preset) {
	t.thin.Importance, t.thick.Importance = widget.MediumImportance, widget.MediumImportance
	if p == state.PresetThick {
		t.thick.Importance = widget.HighImportance
	} else {
		t.thin.Importance = widget.HighImportance
	}
	t.thin.Refresh()
	t.thick.Refresh()
}

func (t *toolbar) setColor(c color.Color) {
	t.board.Session().SetColor(c)
	t.current.FillColor = c
	t.current.Refresh()
}

func (t *toolbar) showColorPicker() {
	d := dialog.NewColorPicker("Color", "Stroke color", t.setColor, t.win)
	d.Advanced = true
	d.Show()
}

// renderStickers rebuilds one button per glyph in the palette.
func (t *toolbar) renderStickers() {
	t.stickers.RemoveAll()
	for _, glyph := range t.board.Session().Stickers() {
		t.stickers.Add(widget.NewButton(glyph, func() {
			t.board.Session().ArmSticker(glyph)
		}))
	}
}

func (t *toolbar) showStickerForm() {
	entry := widget.NewEntry()
	entry.SetText(defaultCustomSticker)
	items := []*widget.FormItem{widget.NewFormItem("Sticker", entry)}
	dialog.ShowForm("Add Custom Sticker", "Add", "Cancel", items, func(ok bool) {
		if ok {
			t.addCustomSticker(entry.Text)
		}
	}, t.win)
}

// addCustomSticker appends glyph to the palette; blank and duplicate input
// is ignored.
func (t *toolbar) addCustomSticker(glyph string) {
	if !t.board.Session().AddSticker(glyph) {
		return
	}
	t.renderStickers()
	t.board.SetStatus("Added sticker " + glyph)
}
