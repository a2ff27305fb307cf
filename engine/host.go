package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/engine/draw"
	"github.com/spaghettifunk/quadrant/engine/geometry"
	"github.com/spaghettifunk/quadrant/engine/scene"
)

// host adapts the engine to ebiten's game loop. Update runs the engine
// tick, Draw uploads the current frame as textured triangles.
type host struct {
	engine   *Engine
	images   map[scene.Index]*ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	profiler *core.Profiler
	err      error
}

func newHost(e *Engine) *host {
	return &host{
		engine:   e,
		images:   make(map[scene.Index]*ebiten.Image),
		profiler: core.NewProfiler("frame"),
	}
}

func runGame(h *host) error {
	err := ebiten.RunGame(h)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (h *host) Update() error {
	running, err := h.engine.update()
	if err != nil {
		return err
	}
	if !running {
		return ebiten.Termination
	}
	if h.err != nil {
		err, h.err = h.err, nil
		return err
	}
	if h.profiler.Since() > 10*time.Second {
		m := h.engine.metrics
		h.profiler.LogTime(fmt.Sprintf("%.1f fps, %.2f ms/frame", m.FPS(), m.FrameTime()))
	}
	return nil
}

func (h *host) Draw(screen *ebiten.Image) {
	if h.engine.isSuspended {
		return
	}
	frame, err := h.engine.Frame(time.Now())
	if err != nil {
		// Reported from the next Update so the loop stops cleanly.
		h.err = err
		return
	}

	w, hgt := screen.Bounds().Dx(), screen.Bounds().Dy()
	for _, batch := range frame.Batches {
		img, err := h.texture(batch.Texture)
		if err != nil {
			h.err = err
			return
		}
		h.buildBatch(frame, batch, img, float32(w), float32(hgt))
		screen.DrawTriangles(h.vertices, h.indices, img, &ebiten.DrawTrianglesOptions{
			Address: ebiten.AddressClampToZero,
		})
	}
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.engine.width || outsideHeight != h.engine.height {
		h.engine.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_RESIZED,
			Data: &core.ResizeEvent{Width: outsideWidth, Height: outsideHeight},
		})
	}
	return outsideWidth, outsideHeight
}

// buildBatch converts the quads of one batch from clip space into screen
// pixels and their UVs into texels of img.
func (h *host) buildBatch(frame *draw.Frame, batch draw.Batch, img *ebiten.Image, screenW, screenH float32) {
	firstQuad := batch.FirstIndex / geometry.QuadIndexCount
	quadCount := batch.IndexCount / geometry.QuadIndexCount
	firstVertex := firstQuad * geometry.QuadVertexCount
	vertices := frame.Vertices[firstVertex : firstVertex+quadCount*geometry.QuadVertexCount]

	texW := float32(img.Bounds().Dx())
	texH := float32(img.Bounds().Dy())

	h.vertices = h.vertices[:0]
	for _, v := range vertices {
		h.vertices = append(h.vertices, ebiten.Vertex{
			DstX:   (v.Position.X + 1) / 2 * screenW,
			DstY:   (1 - v.Position.Y) / 2 * screenH,
			SrcX:   v.UV.X * texW,
			SrcY:   v.UV.Y * texH,
			ColorR: v.Color.R,
			ColorG: v.Color.G,
			ColorB: v.Color.B,
			ColorA: v.Color.A,
		})
	}

	h.indices = h.indices[:0]
	for _, idx := range frame.Indices[batch.FirstIndex : batch.FirstIndex+batch.IndexCount] {
		h.indices = append(h.indices, idx-uint16(firstVertex))
	}
}

// texture returns the GPU image of a scene texture, uploading it on first use.
func (h *host) texture(index scene.Index) (*ebiten.Image, error) {
	if img, ok := h.images[index]; ok {
		return img, nil
	}
	src, err := h.engine.assets.Texture(index)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	h.images[index] = img
	return img, nil
}

// invalidateTextures drops every uploaded image so changed textures are
// uploaded again on the next Draw.
func (h *host) invalidateTextures() {
	for index, img := range h.images {
		img.Deallocate()
		delete(h.images, index)
	}
}
