package renderer

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
)

// RendererBackend consumes finished frame packets.
type RendererBackend interface {
	BeginFrame(frameNumber uint64) error
	DrawMeshBatch(viewIndex int, batch metadata.MeshBatch) error
	DrawLine(line DebugLine) error
	EndFrame(frameNumber uint64) error
	// AbortFrame drops a frame that failed mid-way so the next one can begin.
	AbortFrame(frameNumber uint64)
}

/** @brief What a headless backend remembers about one frame. */
type FrameRecord struct {
	FrameNumber uint64
	Draws       map[int][]metadata.MeshBatch
	Lines       []DebugLine
}

// RecordingBackend is a headless backend keeping the last frame it drew.
type RecordingBackend struct {
	mu      sync.Mutex
	current *FrameRecord
	last    FrameRecord
	frames  uint64
}

func NewRecordingBackend() *RecordingBackend {
	return &RecordingBackend{}
}

func (b *RecordingBackend) BeginFrame(frameNumber uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != nil {
		return fmt.Errorf("begin frame %d: frame %d still in flight", frameNumber, b.current.FrameNumber)
	}
	b.current = &FrameRecord{FrameNumber: frameNumber, Draws: make(map[int][]metadata.MeshBatch)}
	return nil
}

func (b *RecordingBackend) DrawMeshBatch(viewIndex int, batch metadata.MeshBatch) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return fmt.Errorf("draw outside of a frame")
	}
	if !batch.Geometry.IsValid() {
		return fmt.Errorf("section %d: invalid geometry reference", batch.SectionID)
	}
	b.current.Draws[viewIndex] = append(b.current.Draws[viewIndex], batch)
	return nil
}

func (b *RecordingBackend) DrawLine(line DebugLine) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return fmt.Errorf("draw outside of a frame")
	}
	b.current.Lines = append(b.current.Lines, line)
	return nil
}

func (b *RecordingBackend) EndFrame(frameNumber uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil || b.current.FrameNumber != frameNumber {
		return fmt.Errorf("end frame %d: frame was never begun", frameNumber)
	}
	b.last = *b.current
	b.current = nil
	b.frames++
	return nil
}

func (b *RecordingBackend) AbortFrame(frameNumber uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != nil && b.current.FrameNumber == frameNumber {
		b.current = nil
	}
}

// LastFrame returns the most recently completed frame.
func (b *RecordingBackend) LastFrame() FrameRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *RecordingBackend) FrameCount() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}
