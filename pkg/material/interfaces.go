package material

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Material interface for surfaces that can scatter rays.
// Implementations are immutable and may be shared by any number of shapes.
type Material interface {
	// Scatter returns the attenuation and scattered ray for an incoming ray,
	// or false if the ray is absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always facing against the incident ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray hit the outside of the surface
	Material  Material  // Material of the hit object, shared with the shape
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal is assumed to have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends the unit vector uv through a surface with unit normal n using Snell's law.
// etaiOverEtat is the ratio of refractive indices (incident over transmitted).
func Refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := min(uv.Negate().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-sqrtAbs(1.0 - rOutPerp.LengthSquared()))
	return rOutPerp.Add(rOutParallel)
}
