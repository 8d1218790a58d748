package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// NewNormalsScene creates a material-less scene: one small sphere resting on a huge
// ground sphere, seen from the origin looking down -z. Hits are shaded by their normals.
func NewNormalsScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          90.0,
		FocusDistance: 1.0,
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	samplingConfig := DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 10
	samplingConfig.MaxDepth = 1

	s := NewScene(cameraConfig, samplingConfig)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, nil),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, nil),
	)

	return s
}
