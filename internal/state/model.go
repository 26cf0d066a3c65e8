package state

import (
	"image/color"

	"github.com/google/uuid"
)

type Point struct{ X, Y float64 }

// Stroke is a freehand line. Thickness and color are fixed when it begins.
type Stroke struct {
	Points    []Point
	Thickness float64
	Color     color.NRGBA
}

func BeginStroke(p Point, thickness float64, c color.NRGBA) *Stroke {
	return &Stroke{
		Points:    []Point{p},
		Thickness: thickness,
		Color:     c,
	}
}

// Extend appends p to the end of the stroke.
func (s *Stroke) Extend(p Point) {
	s.Points = append(s.Points, p)
}

// Sticker is a placed glyph. Only its latest position is kept.
type Sticker struct {
	Position Point
	Glyph    string
}

func PlaceSticker(p Point, glyph string) *Sticker {
	return &Sticker{Position: p, Glyph: glyph}
}

func (s *Sticker) Reposition(p Point) {
	s.Position = p
}

// Kind discriminates the payload carried by an Item.
type Kind int

const (
	KindStroke Kind = iota + 1
	KindSticker
)

func (k Kind) String() string {
	switch k {
	case KindStroke:
		return "stroke"
	case KindSticker:
		return "sticker"
	default:
		return "unknown"
	}
}

// Item is one entry of the display list. Exactly one of Stroke and Sticker
// is set, as named by Kind.
type Item struct {
	ID      string
	Seq     uint64
	Kind    Kind
	Stroke  *Stroke
	Sticker *Sticker
}

func newStrokeItem(seq uint64, s *Stroke) *Item {
	return &Item{ID: uuid.NewString(), Seq: seq, Kind: KindStroke, Stroke: s}
}

func newStickerItem(seq uint64, s *Sticker) *Item {
	return &Item{ID: uuid.NewString(), Seq: seq, Kind: KindSticker, Sticker: s}
}

// Clone returns a deep copy that shares nothing mutable with it.
func (it *Item) Clone() *Item {
	c := *it
	switch it.Kind {
	case KindStroke:
		st := *it.Stroke
		st.Points = append([]Point(nil), it.Stroke.Points...)
		c.Stroke = &st
	case KindSticker:
		sk := *it.Sticker
		c.Sticker = &sk
	}
	return &c
}

// Rect is an axis-aligned box in surface space.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (r Rect) Overlaps(o Rect) bool {
	return !(r.MaxX < o.MinX || o.MaxX < r.MinX ||
		r.MaxY < o.MinY || o.MaxY < r.MinY)
}

// Bounds returns the area the item can paint. Strokes are padded by half
// their thickness; stickers assume a glyph box of glyphSize whose baseline
// sits at the sticker position.
func (it *Item) Bounds(glyphSize float64) Rect {
	switch it.Kind {
	case KindStroke:
		pts := it.Stroke.Points
		if len(pts) == 0 {
			return Rect{}
		}
		r := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
		for _, p := range pts[1:] {
			if p.X < r.MinX {
				r.MinX = p.X
			}
			if p.X > r.MaxX {
				r.MaxX = p.X
			}
			if p.Y < r.MinY {
				r.MinY = p.Y
			}
			if p.Y > r.MaxY {
				r.MaxY = p.Y
			}
		}
		pad := it.Stroke.Thickness / 2
		r.MinX -= pad
		r.MinY -= pad
		r.MaxX += pad
		r.MaxY += pad
		return r
	case KindSticker:
		p := it.Sticker.Position
		return Rect{
			MinX: p.X,
			MinY: p.Y - glyphSize,
			MaxX: p.X + glyphSize*float64(len([]rune(it.Sticker.Glyph))),
			MaxY: p.Y + glyphSize/4,
		}
	}
	return Rect{}
}

// Preview is the transient tool cursor drawn while the pointer hovers
// without a drag. Glyph is set when a sticker is armed.
type Preview struct {
	Position  Point
	Thickness float64
	Color     color.NRGBA
	Glyph     string
}

type OpType string

const (
	OpCommit  OpType = "commit"
	OpUndo    OpType = "undo"
	OpRedo    OpType = "redo"
	OpClear   OpType = "clear"
	OpExtend  OpType = "extend"
	OpPreview OpType = "preview"
	OpTool    OpType = "tool"
)

// Op describes a change that requires a redraw.
type Op struct {
	Type    OpType
	Item    *Item // nil for clear, preview and tool changes
	Lamport uint64
}
