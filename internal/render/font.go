package render

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"PaintTool/internal/logging"
)

// DefaultFontSize is the sticker glyph size in surface units.
const DefaultFontSize = 24.0

var ErrNoFont = errors.New("render: no font")

// font is one link of the fallback chain.
type font struct {
	source *text.FontSource
	color  *colorGlyphs // nil for outline-only fonts
}

// faceSet is the chain instantiated at one pixel scale.
type faceSet struct {
	faces []text.Face
	multi text.Face
}

// Faces hands out sticker faces at a fixed size for any pixel scale. Runes
// missing from the primary font are looked up in the fallbacks, in order.
type Faces struct {
	fonts []font
	size  float64

	mu    sync.Mutex
	cache map[float64]*faceSet
}

// NewFaces parses the primary font and any fallbacks. A size of zero or less
// selects DefaultFontSize. Empty fallbacks are skipped.
func NewFaces(data []byte, size float64, fallbacks ...[]byte) (*Faces, error) {
	if len(data) == 0 {
		return nil, ErrNoFont
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	f := &Faces{size: size, cache: make(map[float64]*faceSet)}
	for i, d := range append([][]byte{data}, fallbacks...) {
		if len(d) == 0 {
			continue
		}
		src, err := text.NewFontSource(d)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("render: parse font %d: %w", i, err)
		}
		f.fonts = append(f.fonts, font{source: src, color: loadColorGlyphs(d, src.Parsed().NumGlyphs())})
	}
	return f, nil
}

// LoadFaces reads a font file, or uses the bundled Go Regular font when
// path is empty.
func LoadFaces(path string, size float64, fallbacks ...[]byte) (*Faces, error) {
	if path == "" {
		return NewFaces(goregular.TTF, size, fallbacks...)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: load font %s: %w", path, err)
	}
	f, err := NewFaces(data, size, fallbacks...)
	if err != nil {
		return nil, fmt.Errorf("render: load font %s: %w", path, err)
	}
	logging.Logger().Info("sticker font loaded", "path", path,
		"name", f.fonts[0].source.Name(), "color", f.fonts[0].color != nil)
	return f, nil
}

// Size returns the glyph size in surface units.
func (f *Faces) Size() float64 { return f.size }

func (f *Faces) at(scale float64) *faceSet {
	f.mu.Lock()
	defer f.mu.Unlock()

	if set, ok := f.cache[scale]; ok {
		return set
	}
	set := &faceSet{}
	for _, fo := range f.fonts {
		set.faces = append(set.faces, fo.source.Face(f.size*scale))
	}
	set.multi = set.faces[0]
	if len(set.faces) > 1 {
		if m, err := text.NewMultiFace(set.faces...); err == nil {
			set.multi = m
		} else {
			logging.Logger().Warn("font fallback disabled", "err", err)
		}
	}
	f.cache[scale] = set
	return set
}

// Face returns the face for the given pixel scale, falling back across the
// chain rune by rune.
func (f *Faces) Face(scale float64) text.Face {
	return f.at(scale).multi
}

// faceFor picks the first font in the chain that maps r, or the primary
// font when none does.
func (f *Faces) faceFor(r rune, scale float64) (text.Face, *colorGlyphs) {
	set := f.at(scale)
	for i, face := range set.faces {
		if face.HasGlyph(r) {
			return face, f.fonts[i].color
		}
	}
	return set.faces[0], f.fonts[0].color
}

// Close releases every font source.
func (f *Faces) Close() error {
	var errs []error
	for _, fo := range f.fonts {
		errs = append(errs, fo.source.Close())
	}
	return errors.Join(errs...)
}
