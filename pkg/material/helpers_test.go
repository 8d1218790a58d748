package material

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// fixedSampler returns the same values on every draw
type fixedSampler struct {
	value float64
	vec   core.Vec3
}

func (f fixedSampler) Get1D() float64   { return f.value }
func (f fixedSampler) Get3D() core.Vec3 { return f.vec }
