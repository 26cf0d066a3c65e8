// Package render paints the display list onto a gg drawing surface.
//
// A redraw is never incremental: the surface is cleared, every stroke is
// painted in insertion order, then every sticker, then the tool preview.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/gg"

	"PaintTool/internal/state"
)

const (
	// PreviewLineWidth is the outline width of the circular stroke preview.
	PreviewLineWidth = 2.0
	// PreviewAlpha is the opacity of an armed sticker's preview glyph.
	PreviewAlpha = 0.5
)

// StickerColor paints outline sticker glyphs. Bitmap emoji keep their own
// colors and take only its alpha.
var StickerColor = color.NRGBA{A: 0xff}

// Surface is the subset of *gg.Context the renderer draws with.
type Surface interface {
	Width() int
	Height() int
	Clear()
	SetLineCap(gg.LineCap)
	SetLineJoin(gg.LineJoin)
	SetLineWidth(float64)
	SetColor(color.Color)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	DrawCircle(x, y, r float64)
	Stroke() error
	// FlushGPU settles pending work before glyphs are composited onto
	// the pixel buffer returned by ResizeTarget.
	FlushGPU() error
	ResizeTarget() *gg.Pixmap
}

var _ Surface = (*gg.Context)(nil)

// Scene is everything a redraw paints. Coordinates are multiplied by Scale
// to map surface units onto pixels.
type Scene struct {
	Items   []*state.Item
	Preview *state.Preview
	Scale   float64
}

// Redraw clears s and paints the scene onto it. Painting continues past a
// failing item; the returned error joins every failure.
func Redraw(s Surface, faces *Faces, scene Scene) error {
	if faces == nil {
		return ErrNoFont
	}
	scale := scene.Scale
	if scale <= 0 {
		scale = 1
	}
	view := state.Rect{MaxX: float64(s.Width()) / scale, MaxY: float64(s.Height()) / scale}

	s.Clear()
	s.SetLineCap(gg.LineCapRound)
	s.SetLineJoin(gg.LineJoinRound)

	var errs []error
	for _, it := range scene.Items {
		if it.Kind != state.KindStroke || !it.Bounds(faces.Size()).Overlaps(view) {
			continue
		}
		if err := Stroke(s, it.Stroke, scale); err != nil {
			errs = append(errs, fmt.Errorf("render: stroke %s: %w", it.ID, err))
		}
	}
	for _, it := range scene.Items {
		if it.Kind != state.KindSticker || !it.Bounds(faces.Size()).Overlaps(view) {
			continue
		}
		if err := Sticker(s, faces, it.Sticker, scale); err != nil {
			errs = append(errs, fmt.Errorf("render: sticker %s: %w", it.ID, err))
		}
	}
	if scene.Preview != nil {
		if err := Preview(s, faces, *scene.Preview, scale); err != nil {
			errs = append(errs, fmt.Errorf("render: preview: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Stroke paints st as a polyline. Strokes with fewer than two points leave
// no mark.
func Stroke(s Surface, st *state.Stroke, scale float64) error {
	if len(st.Points) < 2 {
		return nil
	}
	s.SetLineWidth(st.Thickness * scale)
	s.SetColor(st.Color)
	s.MoveTo(st.Points[0].X*scale, st.Points[0].Y*scale)
	for _, p := range st.Points[1:] {
		s.LineTo(p.X*scale, p.Y*scale)
	}
	return s.Stroke()
}

// Sticker paints the glyph with its baseline-left corner at the sticker
// position.
func Sticker(s Surface, faces *Faces, sk *state.Sticker, scale float64) error {
	return glyphs(s, faces, sk.Glyph, sk.Position, scale, StickerColor)
}

func glyphs(s Surface, faces *Faces, g string, at state.Point, scale float64, c color.NRGBA) error {
	if err := s.FlushGPU(); err != nil {
		return err
	}
	drawGlyphs(s.ResizeTarget(), faces, g, at.X*scale, at.Y*scale, scale, c)
	return nil
}

// Preview paints the tool cursor: the armed glyph at half opacity, or a
// circle as wide as the stroke thickness outlined in the current color.
func Preview(s Surface, faces *Faces, p state.Preview, scale float64) error {
	x, y := p.Position.X*scale, p.Position.Y*scale
	if p.Glyph != "" {
		c := StickerColor
		c.A = uint8(float64(c.A) * PreviewAlpha)
		return glyphs(s, faces, p.Glyph, p.Position, scale, c)
	}
	s.SetLineWidth(PreviewLineWidth * scale)
	s.SetColor(p.Color)
	s.DrawCircle(x, y, p.Thickness/2*scale)
	return s.Stroke()
}
