package draw

import (
	"errors"
	"testing"
	"time"

	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/engine/geometry"
	"github.com/spaghettifunk/quadrant/engine/math"
	"github.com/spaghettifunk/quadrant/engine/scene"
	"github.com/spaghettifunk/quadrant/engine/text"
)

type fakeAssets struct {
	sizes map[scene.Index]math.Vec2
	fonts map[scene.Index]*text.Font
}

func (f fakeAssets) TextureSize(index scene.Index) (math.Vec2, error) {
	if s, ok := f.sizes[index]; ok {
		return s, nil
	}
	return math.Vec2{}, core.ErrMissingTexture
}

func (f fakeAssets) Font(index scene.Index) (*text.Font, error) {
	if font, ok := f.fonts[index]; ok {
		return font, nil
	}
	return nil, core.ErrMissingFont
}

func newScene() *scene.DataManager {
	return &scene.DataManager{
		Components: scene.NewComponentManager(),
		Entities:   scene.NewEntityManager(),
		Spritesheets: []scene.Spritesheet{{
			Index:     0,
			Pitch:     2,
			Position:  scene.Position2D{X: 0, Y: 32},
			Size:      scene.Size{X: 64, Y: 64},
			FrameSize: scene.Size{X: 32, Y: 32},
		}},
	}
}

func attach(t *testing.T, dm *scene.DataManager, entity scene.Index, ct scene.ComponentType, data scene.ComponentData) scene.Index {
	t.Helper()
	id := dm.Components.Create(ct, data)
	if err := dm.Components.AddEntityComponent(entity, dm.Entities, id); err != nil {
		t.Fatal(err)
	}
	return id
}

func td(x, y, sx, sy float32) geometry.TransformData {
	return geometry.NewTransformData(math.NewVec2(x, y), math.NewVec2(sx, sy), 0)
}

var testAssets = fakeAssets{
	sizes: map[scene.Index]math.Vec2{
		0: math.NewVec2(100, 50),
		1: math.NewVec2(64, 128),
		2: math.NewVec2(64, 64),
	},
	fonts: map[scene.Index]*text.Font{
		0: {
			LineHeight: 10,
			AtlasSize:  math.NewVec2(64, 64),
			Glyphs: map[rune]text.Glyph{
				'A': {X: 8, Y: 0, Width: 8, Height: 8, XAdvance: 8},
			},
		},
	},
}

func TestQuadVertexData(t *testing.T) {
	dm := newScene()
	e := dm.Entities.Create(scene.EntityTypeSprite)
	id := attach(t, dm, e, scene.ComponentTypeQuad, &scene.QuadData{
		TextureIndex: 0,
		Transform:    td(0, 0, 100, 50),
		Layer:        geometry.LayerDepthSprite,
	})

	ds := NewDrawingSystem(dm, testAssets, math.NewVec2(200, 100))
	c, _ := dm.Components.Get(id)
	verts, err := ds.VertexData(c, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(verts) != 4 {
		t.Fatalf("got %d vertices", len(verts))
	}

	want := []struct {
		pos math.Vec3
		uv  math.Vec2
	}{
		{math.NewVec3(-0.5, 0.5, 0), math.NewVec2(0, 0)},
		{math.NewVec3(-0.5, -0.5, 0), math.NewVec2(0, 1)},
		{math.NewVec3(0.5, -0.5, 0), math.NewVec2(1, 1)},
		{math.NewVec3(0.5, 0.5, 0), math.NewVec2(1, 0)},
	}
	for i, w := range want {
		if !verts[i].Position.Compare(w.pos, 1e-6) {
			t.Errorf("vertex %d position = %v, want %v", i, verts[i].Position, w.pos)
		}
		if !verts[i].UV.Compare(w.uv, 1e-6) {
			t.Errorf("vertex %d uv = %v, want %v", i, verts[i].UV, w.uv)
		}
		if verts[i].Color != geometry.ColorWhite {
			t.Errorf("vertex %d color = %v", i, verts[i].Color)
		}
	}

	// Halving the window doubles the clip-space size of the same quad.
	ds.Resize(math.NewVec2(100, 50))
	verts, _ = ds.VertexData(c, time.Now())
	if !verts[0].Position.Compare(math.NewVec3(-1, 1, 0), 1e-6) {
		t.Errorf("after resize top-left = %v, want (-1, 1, 0)", verts[0].Position)
	}
}

func TestQuadUVOffset(t *testing.T) {
	dm := newScene()
	e := dm.Entities.Create(scene.EntityTypeSprite)
	id := attach(t, dm, e, scene.ComponentTypeQuad, &scene.QuadData{
		TextureIndex: 2,
		Transform:    td(0, 0, 16, 16),
		UVOffset:     scene.Position2D{X: 32, Y: 16},
	})
	ds := NewDrawingSystem(dm, testAssets, math.NewVec2(64, 64))
	c, _ := dm.Components.Get(id)
	verts, err := ds.VertexData(c, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !verts[0].UV.Compare(math.NewVec2(0.5, 0.25), 1e-6) {
		t.Errorf("top-left uv = %v, want (0.5, 0.25)", verts[0].UV)
	}
	if !verts[2].UV.Compare(math.NewVec2(0.75, 0.5), 1e-6) {
		t.Errorf("bottom-right uv = %v, want (0.75, 0.5)", verts[2].UV)
	}
}

func TestAnimationVertexData(t *testing.T) {
	dm := newScene()
	e := dm.Entities.Create(scene.EntityTypeSprite)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	id := attach(t, dm, e, scene.ComponentTypeAnimation2D, &scene.Animation2DData{
		TextureIndex:     1,
		SpritesheetIndex: 0,
		Animations: []scene.Animation{{
			Frames:      []uint16{0, 1, 2, 3},
			FrameLength: 100,
		}},
		Transform: td(0, 0, 32, 32),
		StartTime: start,
	})

	ds := NewDrawingSystem(dm, testAssets, math.NewVec2(64, 64))
	c, _ := dm.Components.Get(id)

	tests := []struct {
		elapsed time.Duration
		tl, br  math.Vec2
	}{
		// frame 0 sits at the sheet origin (0, 32)
		{0, math.NewVec2(0, 0.25), math.NewVec2(0.5, 0.5)},
		// frame 1 is one column to the right
		{150 * time.Millisecond, math.NewVec2(0.5, 0.25), math.NewVec2(1, 0.5)},
		// frame 2 starts the second row
		{250 * time.Millisecond, math.NewVec2(0, 0.5), math.NewVec2(0.5, 0.75)},
	}
	for _, tt := range tests {
		verts, err := ds.VertexData(c, start.Add(tt.elapsed))
		if err != nil {
			t.Fatal(err)
		}
		if !verts[0].UV.Compare(tt.tl, 1e-6) || !verts[2].UV.Compare(tt.br, 1e-6) {
			t.Errorf("at %v uv = %v..%v, want %v..%v", tt.elapsed, verts[0].UV, verts[2].UV, tt.tl, tt.br)
		}
	}
}

func TestTextVertexData(t *testing.T) {
	dm := newScene()
	e := dm.Entities.Create(scene.EntityTypeSprite)
	red := geometry.Color{R: 1, A: 1}
	id := attach(t, dm, e, scene.ComponentTypeText, &scene.TextData{
		FontIndex:    0,
		TextureIndex: 2,
		Text:         "AA",
		Color:        red,
		Transform:    td(0, 0, 1, 1),
	})

	ds := NewDrawingSystem(dm, testAssets, math.NewVec2(64, 64))
	c, _ := dm.Components.Get(id)
	verts, err := ds.VertexData(c, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(verts) != 8 {
		t.Fatalf("got %d vertices, want 8", len(verts))
	}
	// Second glyph's top-left corner is at (8, 0) in pixels.
	if !verts[4].Position.Compare(math.NewVec3(8.0/32, 0, 0), 1e-6) {
		t.Errorf("second glyph top-left = %v", verts[4].Position)
	}
	if !verts[0].UV.Compare(math.NewVec2(0.125, 0), 1e-6) {
		t.Errorf("glyph uv = %v", verts[0].UV)
	}
	if verts[7].Color != red {
		t.Errorf("color = %v", verts[7].Color)
	}
}

func TestFrameOrdering(t *testing.T) {
	dm := newScene()
	sprite := dm.Entities.Create(scene.EntityTypeSprite)
	bg := dm.Entities.Create(scene.EntityTypeBackground)
	attach(t, dm, sprite, scene.ComponentTypeQuad, &scene.QuadData{TextureIndex: 2, Transform: td(0, 0, 8, 8)})
	attach(t, dm, sprite, scene.ComponentTypeQuad, &scene.QuadData{TextureIndex: 2, Transform: td(8, 0, 8, 8)})
	attach(t, dm, bg, scene.ComponentTypeQuad, &scene.QuadData{TextureIndex: 0, Transform: td(0, 0, 64, 64), Layer: geometry.LayerDepthBackground})
	// Not attached to an entity, so never drawn.
	dm.Components.Create(scene.ComponentTypeQuad, &scene.QuadData{TextureIndex: 1, Transform: td(0, 0, 8, 8)})

	ds := NewDrawingSystem(dm, testAssets, math.NewVec2(64, 64))
	frame, err := ds.Frame(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if frame.QuadCount() != 3 {
		t.Fatalf("quads = %d, want 3", frame.QuadCount())
	}
	if z := frame.Vertices[0].Position.Z; z != 1 {
		t.Errorf("first quad z = %v, want the background first", z)
	}
	if z := frame.Vertices[4].Position.Z; z != 0 {
		t.Errorf("second quad z = %v, want sprite", z)
	}

	wantIndices := []uint16{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4, 8, 9, 10, 10, 11, 8}
	if len(frame.Indices) != len(wantIndices) {
		t.Fatalf("indices = %v", frame.Indices)
	}
	for i := range wantIndices {
		if frame.Indices[i] != wantIndices[i] {
			t.Fatalf("indices = %v, want %v", frame.Indices, wantIndices)
		}
	}

	wantBatches := []Batch{
		{Texture: 0, FirstIndex: 0, IndexCount: 6},
		{Texture: 2, FirstIndex: 6, IndexCount: 12},
	}
	if len(frame.Batches) != len(wantBatches) {
		t.Fatalf("batches = %+v", frame.Batches)
	}
	for i, b := range wantBatches {
		if frame.Batches[i] != b {
			t.Errorf("batch %d = %+v, want %+v", i, frame.Batches[i], b)
		}
	}
}

func TestFrameErrors(t *testing.T) {
	t.Run("too many quads", func(t *testing.T) {
		dm := newScene()
		e := dm.Entities.Create(scene.EntityTypeSprite)
		for i := 0; i <= MaxQuads; i++ {
			attach(t, dm, e, scene.ComponentTypeQuad, &scene.QuadData{Transform: td(0, 0, 1, 1)})
		}
		_, err := NewDrawingSystem(dm, testAssets, math.NewVec2(64, 64)).Frame(time.Now())
		if !errors.Is(err, core.ErrTooManyQuads) {
			t.Errorf("error = %v, want ErrTooManyQuads", err)
		}
	})

	t.Run("missing texture", func(t *testing.T) {
		dm := newScene()
		e := dm.Entities.Create(scene.EntityTypeSprite)
		attach(t, dm, e, scene.ComponentTypeQuad, &scene.QuadData{TextureIndex: 42, Transform: td(0, 0, 1, 1)})
		_, err := NewDrawingSystem(dm, testAssets, math.NewVec2(64, 64)).Frame(time.Now())
		if !errors.Is(err, core.ErrMissingTexture) {
			t.Errorf("error = %v, want ErrMissingTexture", err)
		}
	})

	t.Run("missing font", func(t *testing.T) {
		dm := newScene()
		e := dm.Entities.Create(scene.EntityTypeSprite)
		attach(t, dm, e, scene.ComponentTypeText, &scene.TextData{FontIndex: 5, Text: "A", Transform: td(0, 0, 1, 1)})
		_, err := NewDrawingSystem(dm, testAssets, math.NewVec2(64, 64)).Frame(time.Now())
		if !errors.Is(err, core.ErrMissingFont) {
			t.Errorf("error = %v, want ErrMissingFont", err)
		}
	})
}

func TestFrameOrigin(t *testing.T) {
	sheet := scene.Spritesheet{Pitch: 3, FrameSize: scene.Size{X: 16, Y: 8}}
	tests := []struct {
		frame uint16
		want  math.Vec2
	}{
		{0, math.NewVec2(0, 0)},
		{2, math.NewVec2(32, 0)},
		{3, math.NewVec2(0, 8)},
		{7, math.NewVec2(16, 16)},
	}
	for _, tt := range tests {
		if got := FrameOrigin(sheet, tt.frame); !got.Compare(tt.want, 0) {
			t.Errorf("FrameOrigin(%d) = %v, want %v", tt.frame, got, tt.want)
		}
	}
}
