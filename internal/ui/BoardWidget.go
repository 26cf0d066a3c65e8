package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"PaintTool/internal/config"
	"PaintTool/internal/export"
	"PaintTool/internal/logging"
	"PaintTool/internal/render"
	"PaintTool/internal/state"
)

// BoardWidget is the drawing surface. It forwards pointer events to the
// session and repaints the whole display list whenever the session changes.
type BoardWidget struct {
	widget.BaseWidget
	session    *state.Session
	faces      *render.Faces
	canvasSize fyne.Size
	exportOpts export.Options
	exportName string

	lastPos   fyne.Position
	hasLast   bool
	statusBar *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ desktop.Cursorable = (*BoardWidget)(nil)

func NewBoardWidget(s *state.Session, faces *render.Faces, cfg config.Config) *BoardWidget {
	b := &BoardWidget{
		session:    s,
		faces:      faces,
		canvasSize: fyne.NewSize(float32(cfg.CanvasWidth), float32(cfg.CanvasHeight)),
		exportOpts: cfg.ExportOptions(faces),
		exportName: cfg.ExportName,
		statusBar:  widget.NewLabel("Ready"),
	}
	s.OnChange = b.onChange
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Session() *state.Session { return b.session }

func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

func (b *BoardWidget) SetStatus(text string) {
	b.statusBar.SetText(text)
}

func (b *BoardWidget) onChange(op state.Op) {
	switch op.Type {
	case state.OpUndo:
		b.SetStatus(fmt.Sprintf("Undid %s", op.Item.Kind))
	case state.OpRedo:
		b.SetStatus(fmt.Sprintf("Redid %s", op.Item.Kind))
	case state.OpClear:
		b.SetStatus("Cleared")
	case state.OpCommit:
		b.SetStatus(fmt.Sprintf("Drawing %s", op.Item.Kind))
	}
	b.Refresh()
}

func toPoint(p fyne.Position) state.Point {
	return state.Point{X: float64(p.X), Y: float64(p.Y)}
}

// move forwards p unless it repeats the last forwarded position; fyne may
// report the same motion as both a drag and a hover.
func (b *BoardWidget) move(p fyne.Position) {
	if b.hasLast && p == b.lastPos {
		return
	}
	b.lastPos, b.hasLast = p, true
	b.session.PointerMove(toPoint(p))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.lastPos, b.hasLast = e.Position, true
	b.session.PointerDown(toPoint(e.Position))
}

// MouseUp and DragEnd forget the last position so a hover at the release
// point brings the preview back.
func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.hasLast = false
		b.session.PointerUp()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.move(e.Position)
}

func (b *BoardWidget) DragEnd() {
	b.hasLast = false
	b.session.PointerUp()
}

func (b *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	b.move(e.Position)
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.move(e.Position)
}

func (b *BoardWidget) MouseOut() {
	b.hasLast = false
	b.session.PointerLeave()
}

// Cursor hides the system pointer while the tool preview stands in for it.
func (b *BoardWidget) Cursor() desktop.Cursor {
	if _, ok := b.session.Preview(); ok {
		return desktop.HiddenCursor
	}
	return desktop.DefaultCursor
}

func (b *BoardWidget) Undo() {
	if !b.session.Undo() {
		logging.Logger().Debug("nothing to undo")
	}
}

func (b *BoardWidget) Redo() {
	if !b.session.Redo() {
		logging.Logger().Debug("nothing to redo")
	}
}

func (b *BoardWidget) Clear() {
	b.session.Clear()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return newBoardRenderer(b)
}
