package scene

import (
	"fmt"

	"github.com/spaghettifunk/quadrant/engine/core"
	"gopkg.in/yaml.v3"
)

// AnimationType is whether and how an animation repeats.
type AnimationType uint8

const (
	// Repeat by going through the sequence over and over: 1 2 3 1 2 3
	AnimationTypeLoop AnimationType = iota
	// Repeat by going back and forth through the sequence: 1 2 3 2 1 2 3
	AnimationTypeBounce
	// Play once, then hold the last frame.
	AnimationTypeOnce
)

var animationTypeNames = []string{"loop", "bounce", "once"}

func (a AnimationType) String() string {
	if int(a) < len(animationTypeNames) {
		return animationTypeNames[a]
	}
	return fmt.Sprintf("AnimationType(%d)", uint8(a))
}

func (a AnimationType) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

func (a *AnimationType) UnmarshalYAML(value *yaml.Node) error {
	for i, name := range animationTypeNames {
		if value.Value == name {
			*a = AnimationType(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown animation type %q (line %d)", core.ErrMalformedSceneData, value.Value, value.Line)
}

// Animation is a single animation sequence for a sprite. It names frames
// of a spritesheet without being tied to one. All frames last FrameLength
// milliseconds; repeat an index to hold a frame longer.
type Animation struct {
	Frames        []uint16      `yaml:"frames,flow"`
	AnimationType AnimationType `yaml:"animation_type"`
	FrameLength   uint32        `yaml:"frame_length"`
}

// FrameAt returns the spritesheet frame to show elapsedMillis after the
// animation started.
func (a Animation) FrameAt(elapsedMillis uint64) uint16 {
	n := len(a.Frames)
	if n == 0 {
		return 0
	}
	if a.FrameLength == 0 || n == 1 {
		return a.Frames[0]
	}
	step := elapsedMillis / uint64(a.FrameLength)

	switch a.AnimationType {
	case AnimationTypeBounce:
		period := uint64(2*n - 2)
		p := step % period
		if p >= uint64(n) {
			p = period - p
		}
		return a.Frames[p]
	case AnimationTypeOnce:
		if step >= uint64(n) {
			return a.Frames[n-1]
		}
		return a.Frames[step]
	default:
		return a.Frames[core.CalculateFrame(elapsedMillis, n, a.FrameLength)]
	}
}
