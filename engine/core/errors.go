package core

import (
	"errors"
)

var (
	// ErrMalformedSceneData is returned when a scene description file cannot
	// be decoded into the expected records.
	ErrMalformedSceneData = errors.New("malformed scene data")
	ErrIndex              = errors.New("index not found")
	ErrMissingTexture     = errors.New("texture not loaded")
	ErrMissingFont        = errors.New("font not loaded")
	ErrTooManyQuads       = errors.New("too many quads for a 16-bit index buffer")
	ErrUnknownComponent   = errors.New("unknown component type")
)
