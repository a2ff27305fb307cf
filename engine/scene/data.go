package scene

import "github.com/spaghettifunk/quadrant/engine/math"

// Index is a position in one of the scene's lists.
type Index int

// Position2D is the serialized form of a 2D point or size: {x: .., y: ..}.
type Position2D struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Size keeps call sites clear about whether they pass an extent or a point.
type Size = Position2D

func (p Position2D) ToVec2() math.Vec2 {
	return math.NewVec2(p.X, p.Y)
}

// Spritesheet is a partitioned texture (or contiguous region of an atlas)
// holding animation frames for a sprite. Every frame in a sheet has the
// same size; the frames are laid out row by row, Pitch frames per row.
type Spritesheet struct {
	Index     Index      `yaml:"index"`
	Pitch     uint16     `yaml:"pitch"`
	Position  Position2D `yaml:"position"`
	Size      Size       `yaml:"size"`
	FrameSize Size       `yaml:"frame_size"`
}

// Background is a static image displayed beneath all other images.
type Background struct {
	Index    Index      `yaml:"index"`
	Position Position2D `yaml:"position"`
	Size     Size       `yaml:"size"`
}

// GameMap holds tile and event data.
type GameMap struct {
	Index    Index   `yaml:"index"`
	Name     string  `yaml:"name"`
	Size     Size    `yaml:"size"`
	Entities []Index `yaml:"entities"`
}

type Author struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email,omitempty"`
}

type Program struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
}

// GameData is metadata about the game itself as a program.
type GameData struct {
	Authors []Author `yaml:"authors"`
	Program Program  `yaml:"program"`
}

// TextureEntry points at an image file on disk.
type TextureEntry struct {
	Index Index  `yaml:"index"`
	File  string `yaml:"file"`
}

// FontEntry points at a bitmap font descriptor (.fnt) on disk.
type FontEntry struct {
	Index Index  `yaml:"index"`
	File  string `yaml:"file"`
}

// Resources lists media files. Paths are relative to the data directory.
type Resources struct {
	Textures []TextureEntry `yaml:"textures"`
	Fonts    []FontEntry    `yaml:"fonts"`
}
