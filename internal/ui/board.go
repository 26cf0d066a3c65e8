package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/gogpu/gg"

	"PaintTool/internal/logging"
	"PaintTool/internal/render"
)

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	raster     *canvas.Raster
}

func newBoardRenderer(b *BoardWidget) *boardRenderer {
	r := &boardRenderer{
		board:      b,
		background: canvas.NewRectangle(color.White),
	}
	r.raster = canvas.NewRaster(b.paint)
	return r
}

// paint rasterizes the scene at the raster's pixel size, which is the
// canvas size times the output scale.
func (b *BoardWidget) paint(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	dc := gg.NewContext(w, h)
	defer dc.Close()

	scene := render.Scene{
		Items: b.session.Snapshot(),
		Scale: float64(w) / float64(b.canvasSize.Width),
	}
	if p, ok := b.session.Preview(); ok {
		scene.Preview = &p
	}
	if err := render.Redraw(dc, b.faces, scene); err != nil {
		logging.Logger().Error("redraw failed", "err", err)
	}
	return dc.Image()
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.raster}
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.raster.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return r.board.canvasSize
}

func (r *boardRenderer) Refresh() {
	canvas.Refresh(r.raster)
}

func (r *boardRenderer) Destroy() {}
