package core

import (
	"errors"
)

var (
	ErrNilMeshSnapshot    = errors.New("scene proxy requires a runtime mesh snapshot")
	ErrNilComponent       = errors.New("scene proxy requires an owning component")
	ErrRendererStopped    = errors.New("render command queue already shut down")
	ErrPrimitiveNotFound  = errors.New("primitive is not registered with the renderer")
	ErrInvalidSettings    = errors.New("invalid render settings")
	ErrIdentifierReleased = errors.New("identifier is not in use")
)
