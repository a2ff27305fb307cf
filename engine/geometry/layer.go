package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spaghettifunk/quadrant/engine/core"
	"gopkg.in/yaml.v3"
)

// LayerDepth is the z-coordinate of each layer of quads.
//
// Larger values are further away from the camera. Because the projection is
// orthographic the z-distance never changes size; it only makes sure sprites
// are drawn on top of backgrounds.
type LayerDepth uint16

const (
	LayerDepthSprite     LayerDepth = 0
	LayerDepthBackground LayerDepth = 1
)

var layerNames = map[LayerDepth]string{
	LayerDepthSprite:     "sprite",
	LayerDepthBackground: "background",
}

// Z returns the depth to feed into a vertex position.
func (l LayerDepth) Z() float32 {
	return float32(l)
}

func (l LayerDepth) String() string {
	if name, ok := layerNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LayerDepth(%d)", uint16(l))
}

// Valid reports whether l is one of the known layers.
func (l LayerDepth) Valid() bool {
	_, ok := layerNames[l]
	return ok
}

// ParseLayerDepth accepts a layer name or its numeric depth.
func ParseLayerDepth(s string) (LayerDepth, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for l, name := range layerNames {
		if name == s {
			return l, nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err == nil && LayerDepth(n).Valid() {
		return LayerDepth(n), nil
	}
	return 0, fmt.Errorf("%w: unknown layer %q", core.ErrMalformedSceneData, s)
}

// MarshalYAML writes the layer by name.
func (l LayerDepth) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// UnmarshalYAML accepts the forms ParseLayerDepth does.
func (l *LayerDepth) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: layer must be a scalar (line %d)", core.ErrMalformedSceneData, value.Line)
	}
	parsed, err := ParseLayerDepth(value.Value)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
