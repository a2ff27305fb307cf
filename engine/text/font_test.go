package text

import (
	"testing"

	"github.com/spaghettifunk/quadrant/engine/geometry"
	"github.com/spaghettifunk/quadrant/engine/math"
)

func testFont() *Font {
	return &Font{
		Face:       "test",
		LineHeight: 16,
		Base:       12,
		AtlasSize:  math.NewVec2(64, 64),
		Glyphs: map[rune]Glyph{
			'A': {X: 0, Y: 0, Width: 8, Height: 10, XOffset: 0, YOffset: 2, XAdvance: 9},
			'V': {X: 8, Y: 0, Width: 8, Height: 10, XOffset: 1, YOffset: 2, XAdvance: 9},
			'?': {X: 16, Y: 0, Width: 6, Height: 10, XOffset: 0, YOffset: 2, XAdvance: 7},
			' ': {XAdvance: 4},
		},
		Kernings: map[KerningPair]float32{
			{First: 'A', Second: 'V'}: -2,
		},
	}
}

func TestLayout(t *testing.T) {
	quads := Layout(testFont(), "AV A\nV")
	if len(quads) != 4 {
		t.Fatalf("got %d quads, want 4 (spaces have no quad)", len(quads))
	}

	tests := []struct {
		index  int
		rune   rune
		offset math.Vec2
	}{
		// pen 0, centre x = 0+0+4, y = -(0+2+5)
		{0, 'A', math.NewVec2(4, -7)},
		// pen 9-2 = 7, centre x = 7+1+4
		{1, 'V', math.NewVec2(12, -7)},
		// pen 7+9+4 = 20
		{2, 'A', math.NewVec2(24, -7)},
		// second line
		{3, 'V', math.NewVec2(5, -23)},
	}
	for _, tt := range tests {
		q := quads[tt.index]
		if q.Rune != tt.rune {
			t.Errorf("quad %d rune = %q, want %q", tt.index, q.Rune, tt.rune)
		}
		if !q.Offset.Compare(tt.offset, 1e-6) {
			t.Errorf("quad %d offset = %v, want %v", tt.index, q.Offset, tt.offset)
		}
	}
	if !quads[1].TexelOrigin.Compare(math.NewVec2(8, 0), 0) {
		t.Errorf("texel origin = %v", quads[1].TexelOrigin)
	}
}

func TestLayoutFallback(t *testing.T) {
	quads := Layout(testFont(), "Z")
	if len(quads) != 1 || quads[0].Rune != 'Z' || quads[0].Size.X != 6 {
		t.Errorf("unknown rune should use the fallback glyph, got %+v", quads)
	}

	f := testFont()
	delete(f.Glyphs, '?')
	if quads := Layout(f, "ZZ"); len(quads) != 0 {
		t.Errorf("no fallback glyph: got %d quads", len(quads))
	}
}

func TestGlyphQuadTransform(t *testing.T) {
	q := Layout(testFont(), "A")[0]
	m := geometry.TransformationMatrix(q)

	// The quad's top-left vertex lands on the glyph's top-left corner.
	tl := geometry.QuadVertices()[0]
	got := m.TransformPoint(math.NewVec2(tl[0], tl[1]))
	if !got.Compare(math.NewVec2(0, -2), 1e-6) {
		t.Errorf("top-left corner = %v, want (0, -2)", got)
	}
}

func TestMeasure(t *testing.T) {
	got := Measure(testFont(), "AV\nA")
	want := math.NewVec2(16, 32)
	if !got.Compare(want, 1e-6) {
		t.Errorf("Measure = %v, want %v", got, want)
	}
}
