package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// DefaultTMin is the smallest ray parameter accepted as a hit. It keeps scattered
// rays from re-hitting the surface they start on (shadow acne).
const DefaultTMin = 0.001

// Scene contains all the elements needed for rendering.
// Everything in it is read-only once rendering starts.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.HittableList // Objects in the scene
	Background     Background
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     // Image width
	Height          int     // Image height
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	TMin            float64 // Minimum hit distance along a ray
	Seed            int64   // Seed for the render's random streams
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TMin:            DefaultTMin,
		Seed:            42,
	}
}

// Background is a vertical gradient seen by rays that miss every object
type Background struct {
	Top    core.Vec3 // Color for rays pointing straight up
	Bottom core.Vec3 // Color for rays pointing straight down
}

// DefaultBackground returns the white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Evaluate returns the background color seen along the ray
func (b Background) Evaluate(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1, 1] to [0, 1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Bottom.Lerp(b.Top, t)
}

// NewScene creates an empty scene with a camera built from cameraConfig.
// The image size in samplingConfig is derived from the camera configuration.
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig) *Scene {
	samplingConfig.Width = cameraConfig.Width
	samplingConfig.Height = cameraConfig.Height()
	if samplingConfig.TMin <= 0 {
		samplingConfig.TMin = DefaultTMin
	}

	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(),
		Background:     DefaultBackground(),
		SamplingConfig: samplingConfig,
	}
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.World.Add(objects...)
}

// GetPrimitiveCount returns the total number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// SetCameraConfig rebuilds the camera and image size from a new configuration
func (s *Scene) SetCameraConfig(cameraConfig geometry.CameraConfig) {
	s.CameraConfig = cameraConfig
	s.Camera = geometry.NewCamera(cameraConfig)
	s.SamplingConfig.Width = cameraConfig.Width
	s.SamplingConfig.Height = cameraConfig.Height()
}

// applyCameraOverrides merges the first override, if any, into base
func applyCameraOverrides(base geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) > 0 {
		return geometry.MergeCameraConfig(base, overrides[0])
	}
	return base
}
