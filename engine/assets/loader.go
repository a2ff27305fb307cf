package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/fzipp/bmfont"
	"github.com/spaghettifunk/quadrant/engine/math"
	"github.com/spaghettifunk/quadrant/engine/text"
	"golang.org/x/image/draw"
)

// LoadTexture decodes a PNG, JPEG or TGA file into an NRGBA image.
func LoadTexture(path string) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// LoadFont reads a bitmap font descriptor (.fnt). Only the first atlas page
// is used; its image is loaded separately as a texture.
func LoadFont(path string) (*text.Font, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("font: load %s: %w", path, err)
	}

	desc := font.Descriptor
	f := &text.Font{
		Face:       desc.Info.Face,
		LineHeight: float32(desc.Common.LineHeight),
		Base:       float32(desc.Common.Base),
		AtlasSize:  math.NewVec2(float32(desc.Common.ScaleW), float32(desc.Common.ScaleH)),
		Glyphs:     make(map[rune]text.Glyph, len(desc.Chars)),
		Kernings:   make(map[text.KerningPair]float32, len(desc.Kerning)),
	}

	for _, g := range desc.Chars {
		if g.Page != 0 {
			continue
		}
		f.Glyphs[rune(g.ID)] = text.Glyph{
			X:        float32(g.X),
			Y:        float32(g.Y),
			Width:    float32(g.Width),
			Height:   float32(g.Height),
			XOffset:  float32(g.XOffset),
			YOffset:  float32(g.YOffset),
			XAdvance: float32(g.XAdvance),
		}
	}
	for p, k := range desc.Kerning {
		f.Kernings[text.KerningPair{First: rune(p.First), Second: rune(p.Second)}] = float32(k.Amount)
	}
	return f, nil
}
