package ui

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaintTool/internal/config"
	"PaintTool/internal/export"
	"PaintTool/internal/render"
	"PaintTool/internal/state"
)

func newTestBoard(t *testing.T) *BoardWidget {
	t.Helper()
	test.NewTempApp(t)

	faces, err := render.LoadFaces("", 0, FallbackFonts()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = faces.Close() })

	cfg := config.Default()
	return NewBoardWidget(state.NewSession(state.DefaultOptions()), faces, cfg)
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

type closeBuffer struct {
	bytes.Buffer
	closed bool
}

func (c *closeBuffer) Close() error {
	c.closed = true
	return nil
}

func TestBoard_DrawStroke(t *testing.T) {
	b := newTestBoard(t)

	b.MouseIn(mouse(10, 10))
	b.MouseDown(mouse(10, 10))
	b.Dragged(drag(20, 20))
	b.MouseMoved(mouse(20, 20)) // same motion reported twice
	b.Dragged(drag(30, 25))
	b.DragEnd()
	b.MouseUp(mouse(30, 25))

	items := b.Session().Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, []state.Point{{X: 10, Y: 10}, {X: 20, Y: 20}, {X: 30, Y: 25}}, items[0].Stroke.Points)
	assert.False(t, b.Session().Dragging())
}

func TestBoard_SecondaryButtonIgnored(t *testing.T) {
	b := newTestBoard(t)
	e := mouse(5, 5)
	e.Button = desktop.MouseButtonSecondary
	b.MouseDown(e)
	assert.Empty(t, b.Session().Snapshot())
}

func TestBoard_Cursor(t *testing.T) {
	b := newTestBoard(t)
	assert.Equal(t, desktop.DefaultCursor, b.Cursor())

	b.MouseIn(mouse(50, 50))
	assert.Equal(t, desktop.HiddenCursor, b.Cursor())

	b.MouseDown(mouse(50, 50))
	assert.Equal(t, desktop.DefaultCursor, b.Cursor(), "no preview while drawing")
	b.MouseUp(mouse(50, 50))

	b.MouseMoved(mouse(60, 60))
	assert.Equal(t, desktop.HiddenCursor, b.Cursor())
	b.MouseOut()
	assert.Equal(t, desktop.DefaultCursor, b.Cursor())
}

func TestBoard_PreviewReturnsAtReleasePoint(t *testing.T) {
	b := newTestBoard(t)
	b.MouseIn(mouse(10, 10))
	b.MouseDown(mouse(10, 10))
	b.Dragged(drag(20, 20))
	b.DragEnd()
	b.MouseUp(mouse(20, 20))
	_, ok := b.Session().Preview()
	require.False(t, ok)

	b.MouseMoved(mouse(20, 20))
	p, ok := b.Session().Preview()
	require.True(t, ok)
	assert.Equal(t, state.Point{X: 20, Y: 20}, p.Position)
	assert.Equal(t, desktop.HiddenCursor, b.Cursor())
}

func TestFallbackFonts(t *testing.T) {
	assert.NotEmpty(t, FallbackFonts())
}

func TestBoard_Status(t *testing.T) {
	b := newTestBoard(t)
	b.MouseDown(mouse(1, 1))
	b.MouseUp(mouse(1, 1))
	assert.Equal(t, "Drawing stroke", b.StatusBar().Text)

	b.Undo()
	assert.Equal(t, "Undid stroke", b.StatusBar().Text)
	b.Redo()
	assert.Equal(t, "Redid stroke", b.StatusBar().Text)
	b.Clear()
	assert.Equal(t, "Cleared", b.StatusBar().Text)
	assert.Empty(t, b.Session().Snapshot())
}

func TestBoard_Renderer(t *testing.T) {
	b := newTestBoard(t)
	r := test.WidgetRenderer(b)
	assert.Len(t, r.Objects(), 2)
	assert.Equal(t, fyne.NewSize(256, 256), r.MinSize())
}

func TestBoard_Paint(t *testing.T) {
	b := newTestBoard(t)
	b.MouseDown(mouse(0, 0))
	b.Dragged(drag(5, 5))
	b.DragEnd()

	img := b.paint(512, 512)
	assert.Equal(t, 512, img.Bounds().Dx())
	_, _, _, a := img.At(5, 5).RGBA()
	assert.NotZero(t, a, "stroke painted at 2x")
	_, _, _, a = img.At(300, 300).RGBA()
	assert.Zero(t, a)

	assert.Equal(t, 1, b.paint(0, 0).Bounds().Dx())
}

func TestBoard_ExportPNG(t *testing.T) {
	b := newTestBoard(t)
	b.MouseDown(mouse(0, 0))
	b.Dragged(drag(5, 5))
	b.DragEnd()

	var out closeBuffer
	require.NoError(t, b.ExportTo(&out, PNG))
	assert.True(t, out.closed)

	img, err := png.Decode(&out.Buffer)
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 1024, img.Bounds().Dy())
	assert.Equal(t, "Exported 1 items as PNG", b.StatusBar().Text)
}

func TestBoard_ExportPDF(t *testing.T) {
	b := newTestBoard(t)
	var out closeBuffer
	require.NoError(t, b.ExportTo(&out, PDF))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
}

func TestBoard_ExportError(t *testing.T) {
	b := newTestBoard(t)
	boom := errors.New("boom")
	f := Format{Name: "broken", Ext: ".x", write: func(io.Writer, []*state.Item, export.Options) error { return boom }}

	var out closeBuffer
	assert.ErrorIs(t, b.ExportTo(&out, f), boom)
	assert.True(t, out.closed)
	assert.Equal(t, "Error exporting broken", b.StatusBar().Text)
}
