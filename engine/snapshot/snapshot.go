package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/spaghettifunk/quadrant/engine/draw"
	xdraw "golang.org/x/image/draw"
)

// Options controls how a frame is captured.
type Options struct {
	Width  int
	Height int
	// Supersample renders at this multiple of the output size and filters
	// down. Values below 2 render directly.
	Supersample int
	Background  color.NRGBA
}

// Render rasterizes frame into a new image of the requested size. The
// frame's vertices are in clip space, so the same frame renders at any
// resolution.
func Render(frame *draw.Frame, textures TextureSource, opts Options) (*image.NRGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("snapshot: invalid size %dx%d", opts.Width, opts.Height)
	}
	scale := opts.Supersample
	if scale < 2 {
		scale = 1
	}

	fb := NewFrameBuffer(opts.Width*scale, opts.Height*scale)
	fb.Clear(opts.Background)
	if err := DrawFrame(fb, frame, textures); err != nil {
		return nil, err
	}
	img := fb.Image()
	if scale == 1 {
		return img, nil
	}
	return Downsample(img, opts.Width, opts.Height), nil
}

// Downsample filters img down to w x h. Filtering happens on
// premultiplied colour so transparent edges do not darken.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	premul := image.NewRGBA(img.Bounds())
	xdraw.Draw(premul, premul.Bounds(), img, img.Bounds().Min, xdraw.Src)

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), premul, premul.Bounds(), xdraw.Src, nil)

	out := image.NewNRGBA(scaled.Bounds())
	xdraw.Draw(out, out.Bounds(), scaled, image.Point{}, xdraw.Src)
	return out
}

// Encode writes img as lossless WebP.
func Encode(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("snapshot: webp encode: %w", err)
	}
	return nil
}

// WriteFile encodes img as WebP at path, creating parent directories.
func WriteFile(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
