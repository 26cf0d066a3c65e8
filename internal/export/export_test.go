package export

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaintTool/internal/render"
	"PaintTool/internal/state"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	faces, err := render.LoadFaces("", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = faces.Close() })
	return Options{Width: 256, Height: 256, Scale: DefaultScale, Faces: faces}
}

func strokeA() *state.Item {
	st := state.BeginStroke(state.Point{X: 0, Y: 0}, state.ThicknessThin, color.NRGBA{A: 0xff})
	st.Extend(state.Point{X: 5, Y: 5})
	return &state.Item{ID: "a", Kind: state.KindStroke, Stroke: st}
}

func alphaAt(t *testing.T, img interface {
	At(x, y int) color.Color
}, x, y int) uint32 {
	t.Helper()
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestSnapshot_ScalesFourTimes(t *testing.T) {
	opts := testOptions(t)
	img, err := Snapshot([]*state.Item{strokeA()}, opts)
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, 1024, b.Dx())
	assert.Equal(t, 1024, b.Dy())

	// (2.5, 2.5) on the canvas is the middle of A; at 4x it lands on (10, 10).
	assert.NotZero(t, alphaAt(t, img, 10, 10))
	// The stroke ends at (5, 5) -> (20, 20); its 12px wide cap stops well
	// short of (40, 40).
	assert.Zero(t, alphaAt(t, img, 40, 40))
	assert.Zero(t, alphaAt(t, img, 600, 600))
}

func TestSnapshot_Empty(t *testing.T) {
	img, err := Snapshot(nil, testOptions(t))
	require.NoError(t, err)
	assert.Zero(t, alphaAt(t, img, 512, 512), "background stays transparent")
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, []*state.Item{strokeA()}, testOptions(t)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 1024, img.Bounds().Dy())
	assert.NotZero(t, alphaAt(t, img, 10, 10))
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, []*state.Item{strokeA()}, testOptions(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/Subtype /Image")
}

func TestOptions_Invalid(t *testing.T) {
	good := testOptions(t)
	tests := map[string]func(o *Options){
		"zero width":  func(o *Options) { o.Width = 0 },
		"zero height": func(o *Options) { o.Height = 0 },
		"zero scale":  func(o *Options) { o.Scale = 0 },
		"no faces":    func(o *Options) { o.Faces = nil },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			o := good
			mutate(&o)
			_, err := Snapshot(nil, o)
			assert.True(t, errors.Is(err, ErrInvalidOptions), "got %v", err)
			assert.Error(t, WritePNG(&bytes.Buffer{}, nil, o))
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "image.png", FileName("", ".png"))
	assert.Equal(t, "image.pdf", FileName("", ".pdf"))
	assert.Equal(t, "drawing.pdf", FileName("drawing.png", ".pdf"))
	assert.Equal(t, "art.png", FileName("art", ".png"))
}
