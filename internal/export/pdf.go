package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"PaintTool/internal/logging"
	"PaintTool/internal/state"
)

const snapshotImage = "snapshot"

// WritePDF writes a single page PDF holding the PNG snapshot of items. The
// page measures the canvas size in points, so the raster is placed at
// opts.Scale pixels per point.
func WritePDF(w io.Writer, items []*state.Item, opts Options) error {
	var buf bytes.Buffer
	if err := WritePNG(&buf, items, opts); err != nil {
		return err
	}

	pw, ph := float64(opts.Width), float64(opts.Height)
	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(snapshotImage, imgOpts, &buf)
	p.ImageOptions(snapshotImage, 0, 0, pw, ph, false, imgOpts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	logging.Logger().Info("pdf exported", "items", len(items), "page_width", pw, "page_height", ph)
	return nil
}
