package ui

import (
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"PaintTool/internal/export"
	"PaintTool/internal/logging"
	"PaintTool/internal/state"
)

// Format is an export file type.
type Format struct {
	Name  string
	Ext   string
	write func(io.Writer, []*state.Item, export.Options) error
}

var (
	PNG = Format{Name: "PNG", Ext: ".png", write: export.WritePNG}
	PDF = Format{Name: "PDF", Ext: ".pdf", write: export.WritePDF}
)

// ShowExportDialog asks where to save the drawing in format f.
func (b *BoardWidget) ShowExportDialog(win fyne.Window, f Format) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return // cancelled
		}
		if err := b.ExportTo(writer, f); err != nil {
			dialog.ShowError(err, win)
		}
	}, win)
	d.SetFileName(export.FileName(b.exportName, f.Ext))
	d.Show()
}

// ExportTo renders the current display list in format f and closes writer.
func (b *BoardWidget) ExportTo(writer io.WriteCloser, f Format) error {
	log := logging.Logger()
	defer func() {
		if err := writer.Close(); err != nil {
			log.Error("closing export writer", "err", err)
		}
	}()

	items := b.session.Snapshot()
	if err := f.write(writer, items, b.exportOpts); err != nil {
		log.Error("export failed", "format", f.Name, "err", err)
		b.SetStatus("Error exporting " + f.Name)
		return err
	}
	b.SetStatus(fmt.Sprintf("Exported %d items as %s", len(items), f.Name))
	return nil
}
