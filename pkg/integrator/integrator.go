package integrator

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe to call from multiple goroutines, each with its own sampler.
type Integrator interface {
	// RayColor computes the radiance arriving along ray
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}

// normalColor maps a unit normal from [-1,1]³ into the [0,1]³ color cube
func normalColor(normal core.Vec3) core.Vec3 {
	return normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
