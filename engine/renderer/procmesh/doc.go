/*
Package procmesh mirrors a runtime (procedurally built) multi-section mesh
into the render side and decides, every frame and for every view, how each
section is submitted.

A SceneProxy is created on the game goroutine from a Component and the
component's MeshSnapshot. It copies everything it needs at that point and is
then handed to the render goroutine, which owns it from then on:

	proxy, err := procmesh.NewSceneProxy(component, component.RuntimeMesh())
	// hand off, then on the render goroutine:
	proxy.CreateRenderThreadResources()
	proxy.DrawStaticElements(staticList)
	proxy.GetDynamicMeshElements(views, family, visibilityMap, collector)

Calls on a single proxy are expected to be sequential. Distinct proxies can
be processed concurrently.
*/
package procmesh
