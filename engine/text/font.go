// Package text lays out bitmap font glyphs as quads.
package text

import (
	"github.com/spaghettifunk/quadrant/engine/geometry"
	"github.com/spaghettifunk/quadrant/engine/math"
)

// Glyph is one character cell of a font atlas, in texels.
type Glyph struct {
	X, Y          float32
	Width, Height float32
	XOffset       float32
	YOffset       float32
	XAdvance      float32
}

type KerningPair struct {
	First, Second rune
}

// Font is the layout information of a bitmap font whose glyphs live on a
// single atlas page.
type Font struct {
	Face       string
	LineHeight float32
	Base       float32
	AtlasSize  math.Vec2
	Glyphs     map[rune]Glyph
	Kernings   map[KerningPair]float32
}

// Replaces runes the font has no glyph for.
const fallbackRune = '?'

func (f *Font) glyph(r rune) (Glyph, bool) {
	if g, ok := f.Glyphs[r]; ok {
		return g, true
	}
	g, ok := f.Glyphs[fallbackRune]
	return g, ok
}

// GlyphQuad is a laid out glyph. Offset is the centre of the glyph relative
// to the top-left corner of the text block, with y pointing up.
type GlyphQuad struct {
	geometry.Identity2D
	Rune   rune
	Offset math.Vec2
	Size   math.Vec2
	// Texel rectangle of the glyph on the atlas.
	TexelOrigin math.Vec2
}

func (g GlyphQuad) TranslationMatrix() math.Mat3 {
	return math.NewMat3Translation2D(g.Offset)
}

func (g GlyphQuad) ScalingMatrix() math.Mat3 {
	return math.NewMat3Scaling2D(g.Size)
}

// Layout places every visible glyph of s. Lines break on '\n'; glyphs with
// no area (such as spaces) only advance the pen.
func Layout(f *Font, s string) []GlyphQuad {
	quads := make([]GlyphQuad, 0, len(s))
	var penX, line float32
	prev := rune(-1)

	for _, r := range s {
		if r == '\n' {
			penX = 0
			line++
			prev = -1
			continue
		}
		g, ok := f.glyph(r)
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 {
			penX += f.Kernings[KerningPair{First: prev, Second: r}]
		}

		if g.Width > 0 && g.Height > 0 {
			quads = append(quads, GlyphQuad{
				Rune: r,
				Offset: math.NewVec2(
					penX+g.XOffset+g.Width/2,
					-(line*f.LineHeight + g.YOffset + g.Height/2),
				),
				Size:        math.NewVec2(g.Width, g.Height),
				TexelOrigin: math.NewVec2(g.X, g.Y),
			})
		}
		penX += g.XAdvance
		prev = r
	}
	return quads
}

// Measure returns the width of the widest line and the total height of s.
func Measure(f *Font, s string) math.Vec2 {
	var width, lineWidth float32
	lines := float32(1)
	prev := rune(-1)
	for _, r := range s {
		if r == '\n' {
			width = math.Max(width, lineWidth)
			lineWidth = 0
			lines++
			prev = -1
			continue
		}
		g, ok := f.glyph(r)
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 {
			lineWidth += f.Kernings[KerningPair{First: prev, Second: r}]
		}
		lineWidth += g.XAdvance
		prev = r
	}
	return math.NewVec2(math.Max(width, lineWidth), lines*f.LineHeight)
}
