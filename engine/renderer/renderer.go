package renderer

import (
	"github.com/spaghettifunk/meshproxy/engine/core"
	"github.com/spaghettifunk/meshproxy/engine/renderer/metadata"
)

/**
 * @brief A structure which is generated by the renderer system once per
 * frame and handed to the backend. One view packet per rendered view.
 */
type RenderPacket struct {
	FrameNumber uint64
	DeltaTime   float64
	Views       []*RenderViewPacket
	Lines       []DebugLine
}

/**
 * @brief Everything drawn in one view this frame.
 */
type RenderViewPacket struct {
	View           *metadata.SceneView
	StaticBatches  []metadata.MeshBatch
	DynamicBatches []metadata.MeshBatch
}

// BatchCounts returns the static and dynamic batch totals of the packet.
func (p *RenderPacket) BatchCounts() (static, dynamic int) {
	for _, v := range p.Views {
		static += len(v.StaticBatches)
		dynamic += len(v.DynamicBatches)
	}
	return static, dynamic
}

type Renderer struct {
	backend RendererBackend
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

// DrawFrame forwards the packet to the backend, static batches first. A
// frame that fails after BeginFrame is aborted.
func (r *Renderer) DrawFrame(packet *RenderPacket) error {
	if err := r.backend.BeginFrame(packet.FrameNumber); err != nil {
		core.LogError("renderer begin frame failed: %s", err)
		return err
	}
	if err := r.drawPacket(packet); err != nil {
		core.LogError("renderer frame %d aborted: %s", packet.FrameNumber, err)
		r.backend.AbortFrame(packet.FrameNumber)
		return err
	}
	if err := r.backend.EndFrame(packet.FrameNumber); err != nil {
		core.LogError("renderer end frame failed: %s", err)
		return err
	}
	return nil
}

func (r *Renderer) drawPacket(packet *RenderPacket) error {
	for i, v := range packet.Views {
		for _, b := range v.StaticBatches {
			if err := r.backend.DrawMeshBatch(i, b); err != nil {
				return err
			}
		}
		for _, b := range v.DynamicBatches {
			if err := r.backend.DrawMeshBatch(i, b); err != nil {
				return err
			}
		}
	}
	for _, l := range packet.Lines {
		if err := r.backend.DrawLine(l); err != nil {
			return err
		}
	}
	return nil
}
