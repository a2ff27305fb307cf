package core

import "time"

const AVG_COUNT uint8 = 30

// Metrics keeps a rolling frame time average and a frames-per-second count.
// It is owned by the frame loop and is not safe for concurrent use.
type Metrics struct {
	frameAVGCounter    uint8
	msTimes            [AVG_COUNT]float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Update(frameElapsed time.Duration) {
	// Calculate frame ms average
	frameMS := float64(frameElapsed) / float64(time.Millisecond)
	m.msTimes[m.frameAVGCounter] = frameMS
	if m.frameAVGCounter == AVG_COUNT-1 {
		m.msAvg = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			m.msAvg += m.msTimes[i]
		}
		m.msAvg /= float64(AVG_COUNT)
	}
	m.frameAVGCounter++
	m.frameAVGCounter %= AVG_COUNT

	// Calculate frames per second.
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	m.frames++
}

func (m *Metrics) FPS() float64 {
	return m.fps
}

func (m *Metrics) FrameTime() float64 {
	return m.msAvg
}

// Profiler logs how long it has been since its previous report.
type Profiler struct {
	name    string
	lastLog time.Time
}

func NewProfiler(name string) *Profiler {
	return &Profiler{name: name, lastLog: time.Now()}
}

// LogTime writes the time since the last call at warn level and resets the mark.
func (p *Profiler) LogTime(message string) {
	now := time.Now()
	LogWarn("%s (%d): %s", p.name, ElapsedMillis(p.lastLog, now), message)
	p.lastLog = now
}

// Since reports the time since the last LogTime call without resetting it.
func (p *Profiler) Since() time.Duration {
	return time.Since(p.lastLog)
}
