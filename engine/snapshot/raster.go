package snapshot

import (
	"fmt"
	"image"

	"github.com/spaghettifunk/quadrant/engine/draw"
	"github.com/spaghettifunk/quadrant/engine/geometry"
	"github.com/spaghettifunk/quadrant/engine/math"
	"github.com/spaghettifunk/quadrant/engine/scene"
)

// TextureSource resolves the textures a frame's batches refer to.
type TextureSource interface {
	Texture(index scene.Index) (*image.NRGBA, error)
}

// screenVertex is a vertex mapped from clip space to pixel space.
type screenVertex struct {
	x, y, z float32
	u, v    float32
	color   geometry.Color
}

func toScreen(v geometry.VertexData, w, h int) screenVertex {
	return screenVertex{
		x:     (v.Position.X + 1) / 2 * float32(w),
		y:     (1 - v.Position.Y) / 2 * float32(h),
		z:     v.Position.Z,
		u:     v.UV.X,
		v:     v.UV.Y,
		color: v.Color,
	}
}

// DrawFrame rasterizes every batch of frame into fb.
func DrawFrame(fb *FrameBuffer, frame *draw.Frame, textures TextureSource) error {
	for _, batch := range frame.Batches {
		tex, err := textures.Texture(batch.Texture)
		if err != nil {
			return err
		}
		end := batch.FirstIndex + batch.IndexCount
		if end > len(frame.Indices) {
			return fmt.Errorf("batch indices %d..%d past %d indices", batch.FirstIndex, end, len(frame.Indices))
		}
		for i := batch.FirstIndex; i+2 < end; i += 3 {
			var tri [3]screenVertex
			for k := 0; k < 3; k++ {
				idx := int(frame.Indices[i+k])
				if idx >= len(frame.Vertices) {
					return fmt.Errorf("index %d past %d vertices", idx, len(frame.Vertices))
				}
				tri[k] = toScreen(frame.Vertices[idx], fb.Width, fb.Height)
			}
			rasterizeTriangle(fb, tri, tex)
		}
	}
	return nil
}

// rasterizeTriangle fills the pixels whose centres fall inside tri. Depth is
// tested with less-or-equal so later quads on the same layer draw on top.
// Fully transparent texels are skipped and leave depth untouched.
func rasterizeTriangle(fb *FrameBuffer, tri [3]screenVertex, tex *image.NRGBA) {
	x0, y0 := tri[0].x, tri[0].y
	x1, y1 := tri[1].x, tri[1].y
	x2, y2 := tri[2].x, tri[2].y

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	minX := math.Clamp(int(math.Min(math.Min(x0, x1), x2)), 0, fb.Width-1)
	maxX := math.Clamp(int(math.Max(math.Max(x0, x1), x2))+1, 0, fb.Width-1)
	minY := math.Clamp(int(math.Min(math.Min(y0, y1), y2)), 0, fb.Height-1)
	maxY := math.Clamp(int(math.Max(math.Max(y0, y1), y2))+1, 0, fb.Height-1)

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		py := float32(sy) + 0.5 - y2
		for sx := minX; sx <= maxX; sx++ {
			px := float32(sx) + 0.5 - x2
			w0 := (dy12*px + dx21*py) * invDet
			w1 := (dy20*px + dx02*py) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*tri[0].z + w1*tri[1].z + w2*tri[2].z
			di := sy*fb.Width + sx
			if z > fb.Depth[di] {
				continue
			}

			u := w0*tri[0].u + w1*tri[1].u + w2*tri[2].u
			v := w0*tri[0].v + w1*tri[1].v + w2*tri[2].v
			r, g, b, a := sampleNearest(tex, u, v)
			c := tri[0].color
			sa := float32(a) / 255 * c.A
			if sa <= 0 {
				continue
			}

			ci := di * 4
			blend(fb.Color[ci:ci+4], float32(r)/255*c.R, float32(g)/255*c.G, float32(b)/255*c.B, sa)
			fb.Depth[di] = z
		}
	}
}

// blend composites a straight-alpha source colour over dst.
func blend(dst []uint8, r, g, b, a float32) {
	da := float32(dst[3]) / 255
	outA := a + da*(1-a)
	if outA <= 0 {
		dst[0], dst[1], dst[2], dst[3] = 0, 0, 0, 0
		return
	}
	mix := func(s float32, d uint8) uint8 {
		c := (s*a + float32(d)/255*da*(1-a)) / outA
		return uint8(math.Clamp(c, 0, 1)*255 + 0.5)
	}
	dst[0] = mix(r, dst[0])
	dst[1] = mix(g, dst[1])
	dst[2] = mix(b, dst[2])
	dst[3] = uint8(math.Clamp(outA, 0, 1)*255 + 0.5)
}

// sampleNearest reads the texel under (u, v), clamped to the texture edge.
func sampleNearest(tex *image.NRGBA, u, v float32) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}
	x := math.Clamp(int(u*float32(w)), 0, w-1)
	y := math.Clamp(int(v*float32(h)), 0, h-1)
	i := y*tex.Stride + x*4
	return tex.Pix[i], tex.Pix[i+1], tex.Pix[i+2], tex.Pix[i+3]
}
