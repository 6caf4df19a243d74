package core

import (
	"sync"

	"github.com/spaghettifunk/meshproxy/engine/containers"
)

const AVG_COUNT uint8 = 30

// FrameSample is what the renderer records after each submitted frame.
type FrameSample struct {
	FrameMS        float64
	StaticBatches  int
	DynamicBatches int
	DebugLines     int
}

// FrameMetrics keeps a rolling window of frame samples plus an FPS counter.
type FrameMetrics struct {
	mu                 sync.Mutex
	history            *containers.RingQueue[FrameSample]
	window             int
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

// NewFrameMetrics creates metrics averaging over window frames (AVG_COUNT when 0).
func NewFrameMetrics(window int) *FrameMetrics {
	if window <= 0 {
		window = int(AVG_COUNT)
	}
	return &FrameMetrics{
		history: containers.NewRingQueue[FrameSample](window),
		window:  window,
	}
}

func (m *FrameMetrics) Update(sample FrameSample) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history.Push(sample)

	// Calculate Frames per second.
	m.accumulatedFrameMS += sample.FrameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	// Count all Frames.
	m.frames++
}

// Resize changes the averaging window, keeping the most recent samples.
func (m *FrameMetrics) Resize(window int) {
	if window <= 0 {
		window = int(AVG_COUNT)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if window == m.window {
		return
	}
	history := containers.NewRingQueue[FrameSample](window)
	m.history.Each(history.Push)
	m.history = history
	m.window = window
}

// Window returns the number of frames averaged.
func (m *FrameMetrics) Window() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.window
}

func (m *FrameMetrics) FPS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fps
}

// AverageFrameMS returns the mean frame time over the window.
func (m *FrameMetrics) AverageFrameMS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.history.IsEmpty() {
		return 0
	}
	total := 0.0
	m.history.Each(func(s FrameSample) { total += s.FrameMS })
	return total / float64(m.history.Len())
}

// AverageBatches returns the mean static and dynamic batch counts over the window.
func (m *FrameMetrics) AverageBatches() (static, dynamic float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.history.IsEmpty() {
		return 0, 0
	}
	m.history.Each(func(s FrameSample) {
		static += float64(s.StaticBatches)
		dynamic += float64(s.DynamicBatches)
	})
	n := float64(m.history.Len())
	return static / n, dynamic / n
}

// Last returns the most recent sample.
func (m *FrameMetrics) Last() (FrameSample, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var last FrameSample
	if m.history.IsEmpty() {
		return last, false
	}
	m.history.Each(func(s FrameSample) { last = s })
	return last, true
}
