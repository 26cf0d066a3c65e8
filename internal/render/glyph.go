package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/gg/text/emoji"
	xdraw "golang.org/x/image/draw"
)

// colorGlyphs extracts bitmap emoji from a font's CBDT/CBLC or sbix tables.
type colorGlyphs struct {
	cbdt *emoji.CBDTExtractor
	sbix *emoji.SBIXParser
}

func loadColorGlyphs(data []byte, numGlyphs int) *colorGlyphs {
	ld, err := opentype.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	cg := &colorGlyphs{}
	cbdt, _ := ld.RawTable(opentype.MustNewTag("CBDT"))
	cblc, _ := ld.RawTable(opentype.MustNewTag("CBLC"))
	if len(cbdt) > 0 && len(cblc) > 0 {
		if e, err := emoji.NewCBDTExtractor(cbdt, cblc); err == nil {
			cg.cbdt = e
		}
	}
	if sbix, _ := ld.RawTable(opentype.MustNewTag("sbix")); len(sbix) > 0 && numGlyphs > 0 {
		if p, err := emoji.NewSBIXParser(sbix, uint16(min(numGlyphs, 0xffff))); err == nil && p.NumStrikes() > 0 {
			cg.sbix = p
		}
	}
	if cg.cbdt == nil && cg.sbix == nil {
		return nil
	}
	return cg
}

// bitmap returns the decoded glyph image. bottomUp is set for sbix, whose
// vertical origin is measured to the bottom of the image instead of the top.
func (cg *colorGlyphs) bitmap(gid uint16, ppem uint16) (img image.Image, b *emoji.BitmapGlyph, bottomUp bool) {
	var err error
	switch {
	case cg.cbdt != nil:
		b, err = cg.cbdt.GetGlyph(gid, ppem)
	case cg.sbix != nil:
		b, err = cg.sbix.GetGlyph(int(gid), cg.sbix.BestStrikeForPPEM(ppem))
		bottomUp = true
	default:
		return nil, nil, false
	}
	if err != nil {
		return nil, nil, false
	}
	if img, err = b.Decode(); err != nil {
		return nil, nil, false
	}
	return img, b, bottomUp
}

// zeroWidth reports runes that only select presentation or join emoji.
func zeroWidth(r rune) bool {
	return emoji.IsVariationSelector(r) || emoji.IsZWJ(r) || emoji.IsEmojiModifier(r) || emoji.IsTagCharacter(r)
}

// drawGlyphs paints s with its baseline origin at (x, y), choosing a font
// from the chain for every rune. Bitmap emoji keep their own colors and
// take only the alpha of col.
func drawGlyphs(dst draw.Image, faces *Faces, s string, x, y, scale float64, col color.NRGBA) {
	for _, r := range s {
		if zeroWidth(r) {
			continue
		}
		face, cg := faces.faceFor(r, scale)
		glyph := string(r)
		if cg == nil || !drawBitmap(dst, cg, face, r, x, y, col.A) {
			text.DrawWithEmoji(dst, glyph, face, x, y, col)
		}
		x += face.Advance(glyph)
	}
}

func drawBitmap(dst draw.Image, cg *colorGlyphs, face text.Face, r rune, x, y float64, alpha uint8) bool {
	ppem := uint16(min(face.Size(), 0xffff))
	img, b, bottomUp := cg.bitmap(face.Source().Parsed().GlyphIndex(r), ppem)
	if img == nil {
		return false
	}
	k := 1.0
	if b.PPEM > 0 {
		k = float64(ppem) / float64(b.PPEM)
	}
	src := img.Bounds()
	w, h := int(float64(src.Dx())*k), int(float64(src.Dy())*k)
	if w <= 0 || h <= 0 {
		return false
	}
	left := int(x + float64(b.OriginX)*k)
	top := int(y - float64(b.OriginY)*k)
	if bottomUp {
		top -= h
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, src, xdraw.Src, nil)
	draw.DrawMask(dst, image.Rect(left, top, left+w, top+h), scaled, image.Point{},
		image.NewUniform(color.Alpha{A: alpha}), image.Point{}, draw.Over)
	return true
}
