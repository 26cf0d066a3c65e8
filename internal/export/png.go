// Package export renders the display list offscreen at a higher resolution
// than the interactive canvas and encodes the result.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"path"
	"strings"

	"github.com/gogpu/gg"

	"PaintTool/internal/logging"
	"PaintTool/internal/render"
	"PaintTool/internal/state"
)

const (
	DefaultScale = 4.0
	DefaultName  = "image.png"
)

var ErrInvalidOptions = errors.New("export: invalid options")

// Options describes the interactive canvas and how much to enlarge it.
type Options struct {
	Width, Height int
	Scale         float64
	Faces         *render.Faces
}

func (o Options) validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case o.Scale <= 0:
		return fmt.Errorf("%w: scale %g", ErrInvalidOptions, o.Scale)
	case o.Faces == nil:
		return fmt.Errorf("%w: %w", ErrInvalidOptions, render.ErrNoFont)
	}
	return nil
}

// Size returns the pixel size of the exported image.
func (o Options) Size() (int, int) {
	return int(math.Round(float64(o.Width) * o.Scale)), int(math.Round(float64(o.Height) * o.Scale))
}

// draw paints items without a preview on a fresh transparent context.
// The caller closes the context.
func draw(items []*state.Item, opts Options) (*gg.Context, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	w, h := opts.Size()
	dc := gg.NewContext(w, h)
	if err := render.Redraw(dc, opts.Faces, render.Scene{Items: items, Scale: opts.Scale}); err != nil {
		dc.Close()
		return nil, fmt.Errorf("export: %w", err)
	}
	return dc, nil
}

// Snapshot renders items at opts.Scale times the canvas size.
func Snapshot(items []*state.Item, opts Options) (image.Image, error) {
	dc, err := draw(items, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// WritePNG renders items and writes them to w as a PNG image.
func WritePNG(w io.Writer, items []*state.Item, opts Options) error {
	dc, err := draw(items, opts)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	width, height := opts.Size()
	logging.Logger().Info("png exported", "items", len(items), "width", width, "height", height)
	return nil
}

// FileName returns name with its extension replaced by ext, falling back to
// DefaultName's base when name is empty.
func FileName(name, ext string) string {
	if name == "" {
		name = DefaultName
	}
	return strings.TrimSuffix(name, path.Ext(name)) + ext
}
