package integrator

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// PathTracingIntegrator implements recursive unidirectional path tracing
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// MaxDepth bounds the recursion; a non-positive TMin falls back to scene.DefaultTMin.
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	if config.TMin <= 0 {
		config.TMin = scene.DefaultTMin
	}
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single ray using the configured depth budget
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.rayColorRecursive(ray, sc.World, sc.Background, sampler, pt.config.MaxDepth)
}

// RayColorWithDepth traces ray through world with an explicit depth budget
func (pt *PathTracingIntegrator) RayColorWithDepth(ray core.Ray, world geometry.Hittable, background scene.Background, sampler core.Sampler, depth int) core.Vec3 {
	return pt.rayColorRecursive(ray, world, background, sampler, depth)
}

func (pt *PathTracingIntegrator) rayColorRecursive(ray core.Ray, world geometry.Hittable, background scene.Background, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, pt.config.TMin, math.Inf(1))
	if !isHit {
		return background.Evaluate(ray)
	}

	// Material-less surfaces are visualized by their normal
	if hit.Material == nil {
		return normalColor(hit.Normal)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(
		pt.rayColorRecursive(scatter.Scattered, world, background, sampler, depth-1))
}
