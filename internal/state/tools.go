package state

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

const (
	ThicknessThin  = 3.0
	ThicknessThick = 8.0
)

var DefaultStickers = []string{"🏈", "🏀", "⚾"}

var ErrInvalidColor = errors.New("state: invalid color")

// Preset names one of the two thickness buttons.
type Preset int

const (
	PresetThin Preset = iota
	PresetThick
)

// Tools is the input state: stroke thickness and color, the sticker
// palette and the armed sticker, if any.
type Tools struct {
	thin, thick float64
	thickness   float64
	color       color.NRGBA
	stickers    []string
	armed       string
}

func newTools(opts Options) Tools {
	t := Tools{
		thin:     opts.Thin,
		thick:    opts.Thick,
		color:    opts.Color,
		stickers: make([]string, 0, len(opts.Stickers)),
	}
	if t.thin <= 0 {
		t.thin = ThicknessThin
	}
	if t.thick <= 0 {
		t.thick = ThicknessThick
	}
	t.thickness = t.thin
	for _, g := range opts.Stickers {
		t.addSticker(g)
	}
	return t
}

func (t *Tools) setPreset(p Preset) {
	if p == PresetThick {
		t.thickness = t.thick
		return
	}
	t.thickness = t.thin
}

// addSticker appends glyph to the palette. Blank and duplicate glyphs are
// ignored.
func (t *Tools) addSticker(glyph string) bool {
	glyph = strings.TrimSpace(glyph)
	if glyph == "" || slices.Contains(t.stickers, glyph) {
		return false
	}
	t.stickers = append(t.stickers, glyph)
	return true
}

func (t *Tools) preview(p Point) Preview {
	return Preview{
		Position:  p,
		Thickness: t.thickness,
		Color:     t.color,
		Glyph:     t.armed,
	}
}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa or an SVG color name.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// HexColor formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func HexColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
