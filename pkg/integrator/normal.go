package integrator

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// NormalIntegrator shades every hit by its surface normal and ignores materials.
// Useful for checking geometry and camera setup without any light transport.
type NormalIntegrator struct {
	tMin float64
}

// NewNormalIntegrator creates a normal-visualization integrator
func NewNormalIntegrator(config scene.SamplingConfig) *NormalIntegrator {
	tMin := config.TMin
	if tMin <= 0 {
		tMin = scene.DefaultTMin
	}
	return &NormalIntegrator{tMin: tMin}
}

// RayColor returns 0.5*(normal+1) for hits and the background for misses
func (ni *NormalIntegrator) RayColor(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	hit, isHit := sc.World.Hit(ray, ni.tMin, math.Inf(1))
	if !isHit {
		return sc.Background.Evaluate(ray)
	}
	return normalColor(hit.Normal)
}
