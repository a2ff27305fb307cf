package core

import (
	"testing"
	"time"
)

func TestMetricsAverages(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(10 * time.Millisecond)
	}
	if got := m.FrameTime(); got != 10 {
		t.Errorf("FrameTime() = %v, want 10", got)
	}

	// 101 frames of 10ms push the accumulator past one second.
	for i := 0; i < 71; i++ {
		m.Update(10 * time.Millisecond)
	}
	if got := m.FPS(); got != 100 {
		t.Errorf("FPS() = %v, want 100", got)
	}
}
