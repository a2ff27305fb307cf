// Package draw turns scene components into clip-space vertex data ready to
// be uploaded to a vertex buffer.
package draw

import (
	"fmt"
	"sort"
	"time"

	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/engine/geometry"
	"github.com/spaghettifunk/quadrant/engine/math"
	"github.com/spaghettifunk/quadrant/engine/scene"
	"github.com/spaghettifunk/quadrant/engine/text"
)

// MaxQuads is how many quads one 16-bit index buffer can address.
const MaxQuads = (1 << 16) / geometry.QuadVertexCount

// Assets gives the drawing system what it needs to know about loaded media.
type Assets interface {
	TextureSize(index scene.Index) (math.Vec2, error)
	Font(index scene.Index) (*text.Font, error)
}

// DrawingSystem builds vertex data for the components of a scene.
type DrawingSystem struct {
	data       *scene.DataManager
	assets     Assets
	size       math.Vec2
	projection math.Mat4
}

func NewDrawingSystem(data *scene.DataManager, assets Assets, physicalSize math.Vec2) *DrawingSystem {
	ds := &DrawingSystem{
		data:   data,
		assets: assets,
	}
	ds.Resize(physicalSize)
	return ds
}

// Resize recomputes the projection for a new surface size.
func (ds *DrawingSystem) Resize(physicalSize math.Vec2) {
	ds.size = physicalSize
	ds.projection = geometry.ProjectionMatrix(physicalSize)
}

// SetData swaps the scene being drawn, for instance after a reload.
func (ds *DrawingSystem) SetData(data *scene.DataManager) {
	ds.data = data
}

func (ds *DrawingSystem) Size() math.Vec2 {
	return ds.size
}

func (ds *DrawingSystem) Projection() math.Mat4 {
	return ds.projection
}

// quad is a single textured quad ready to be turned into vertices.
type quad struct {
	model   math.Mat3
	uv      math.Mat3
	depth   geometry.LayerDepth
	color   geometry.Color
	texture scene.Index
}

func (ds *DrawingSystem) vertices(q quad) [geometry.QuadVertexCount]geometry.VertexData {
	var out [geometry.QuadVertexCount]geometry.VertexData
	positions := geometry.QuadVertices()
	uvs := geometry.QuadUVs()
	for i := range out {
		p := q.model.TransformPoint(math.NewVec2(positions[i][0], positions[i][1]))
		clip := ds.projection.MulVec4(math.NewVec4(p.X, p.Y, q.depth.Z(), 1.0))
		uv := q.uv.MulVec3(math.NewVec3(uvs[i][0], uvs[i][1], uvs[i][2]))
		out[i] = geometry.VertexData{
			Position:     clip.ToVec3(),
			UV:           uv.XY(),
			Color:        q.color,
			TextureIndex: uint32(q.texture),
		}
	}
	return out
}

// normalization maps texel coordinates of a texture onto [0, 1].
func (ds *DrawingSystem) normalization(texture scene.Index) (math.Mat3, error) {
	size, err := ds.assets.TextureSize(texture)
	if err != nil {
		return math.Mat3{}, err
	}
	if size.X <= 0 || size.Y <= 0 {
		return math.Mat3{}, fmt.Errorf("%w: texture %d has no texels", core.ErrMissingTexture, texture)
	}
	return math.NewMat3Scaling2D(math.NewVec2(1.0/size.X, 1.0/size.Y)), nil
}

// quads expands a component into the quads that draw it.
func (ds *DrawingSystem) quads(c *scene.Component, now time.Time) ([]quad, error) {
	switch data := c.Data.(type) {
	case *scene.QuadData:
		norm, err := ds.normalization(data.TextureIndex)
		if err != nil {
			return nil, err
		}
		uv := norm.
			Mul(math.NewMat3Translation2D(data.UVOffset.ToVec2())).
			Mul(data.ScalingMatrix())
		return []quad{{
			model:   geometry.TransformationMatrix(data),
			uv:      uv,
			depth:   data.Layer,
			color:   geometry.ColorWhite,
			texture: data.TextureIndex,
		}}, nil

	case *scene.Animation2DData:
		norm, err := ds.normalization(data.TextureIndex)
		if err != nil {
			return nil, err
		}
		sheet, err := ds.data.Spritesheet(data.SpritesheetIndex)
		if err != nil {
			return nil, err
		}
		anim, err := data.Current()
		if err != nil {
			return nil, err
		}
		frame := anim.FrameAt(core.ElapsedMillis(data.StartTime, now))
		uv := norm.
			Mul(math.NewMat3Translation2D(FrameOrigin(sheet, frame))).
			Mul(math.NewMat3Translation2D(sheet.Position.ToVec2())).
			Mul(math.NewMat3Scaling2D(sheet.FrameSize.ToVec2()))
		return []quad{{
			model:   geometry.TransformationMatrix(data),
			uv:      uv,
			depth:   data.Layer,
			color:   geometry.ColorWhite,
			texture: data.TextureIndex,
		}}, nil

	case *scene.TextData:
		font, err := ds.assets.Font(data.FontIndex)
		if err != nil {
			return nil, err
		}
		norm, err := ds.normalization(data.TextureIndex)
		if err != nil {
			return nil, err
		}
		block := geometry.TransformationMatrix(data)
		glyphs := text.Layout(font, data.Text)
		out := make([]quad, 0, len(glyphs))
		for _, g := range glyphs {
			out = append(out, quad{
				model: block.Mul(geometry.TransformationMatrix(g)),
				uv: norm.
					Mul(math.NewMat3Translation2D(g.TexelOrigin)).
					Mul(math.NewMat3Scaling2D(g.Size)),
				depth:   data.Layer,
				color:   data.Color,
				texture: data.TextureIndex,
			})
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %T", core.ErrUnknownComponent, c.Data)
	}
}

// FrameOrigin returns the texel offset of frame inside sheet, relative to
// the sheet's own position. Frames are numbered row by row.
func FrameOrigin(sheet scene.Spritesheet, frame uint16) math.Vec2 {
	if sheet.Pitch == 0 {
		return math.NewVec2Zero()
	}
	column := float32(frame % sheet.Pitch)
	row := float32(frame / sheet.Pitch)
	return math.NewVec2(column*sheet.FrameSize.X, row*sheet.FrameSize.Y)
}

// VertexData returns the vertices of every quad of one component, four per
// quad in QuadVertices order.
func (ds *DrawingSystem) VertexData(c *scene.Component, now time.Time) ([]geometry.VertexData, error) {
	qs, err := ds.quads(c, now)
	if err != nil {
		return nil, err
	}
	out := make([]geometry.VertexData, 0, len(qs)*geometry.QuadVertexCount)
	for _, q := range qs {
		v := ds.vertices(q)
		out = append(out, v[:]...)
	}
	return out, nil
}

// Batch is a run of indices that all sample the same texture.
type Batch struct {
	Texture    scene.Index
	FirstIndex int
	IndexCount int
}

// Frame is everything needed to draw one frame with a single vertex and
// index buffer.
type Frame struct {
	Vertices []geometry.VertexData
	Indices  []uint16
	Batches  []Batch
}

// QuadCount returns how many quads the frame draws.
func (f *Frame) QuadCount() int {
	return len(f.Vertices) / geometry.QuadVertexCount
}

// visible returns the components attached to at least one entity, in
// entity order, each at most once.
func (ds *DrawingSystem) visible() ([]*scene.Component, error) {
	seen := make(map[scene.Index]bool)
	out := []*scene.Component{}
	for _, e := range ds.data.Entities.Entities {
		for _, index := range e.Components {
			if seen[index] {
				continue
			}
			seen[index] = true
			c, err := ds.data.Components.Get(index)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return out, nil
}

// Frame builds the vertex and index data of every visible component at time
// now. Quads are ordered far to near so that blending works without a depth
// test, and quads sharing a texture within a layer are batched together.
func (ds *DrawingSystem) Frame(now time.Time) (*Frame, error) {
	components, err := ds.visible()
	if err != nil {
		return nil, err
	}

	all := []quad{}
	for _, c := range components {
		qs, err := ds.quads(c, now)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", c.ID, err)
		}
		all = append(all, qs...)
	}
	if len(all) > MaxQuads {
		return nil, fmt.Errorf("%w: %d quads", core.ErrTooManyQuads, len(all))
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].depth != all[j].depth {
			return all[i].depth > all[j].depth
		}
		return all[i].texture < all[j].texture
	})

	frame := &Frame{
		Vertices: make([]geometry.VertexData, 0, len(all)*geometry.QuadVertexCount),
		Indices:  make([]uint16, 0, len(all)*geometry.QuadIndexCount),
	}
	for n, q := range all {
		v := ds.vertices(q)
		frame.Vertices = append(frame.Vertices, v[:]...)
		idx := geometry.QuadIndicesAt(n)
		first := len(frame.Indices)
		frame.Indices = append(frame.Indices, idx[:]...)

		last := len(frame.Batches) - 1
		if last >= 0 && frame.Batches[last].Texture == q.texture && frame.Batches[last].FirstIndex+frame.Batches[last].IndexCount == first {
			frame.Batches[last].IndexCount += geometry.QuadIndexCount
			continue
		}
		frame.Batches = append(frame.Batches, Batch{
			Texture:    q.texture,
			FirstIndex: first,
			IndexCount: geometry.QuadIndexCount,
		})
	}
	return frame, nil
}
