package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	hasRefraction := false
	for seed := int64(0); seed < 100; seed++ {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
		result, scattered := glass.Scatter(ray, hit, sampler)

		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if !result.Attenuation.Equals(core.NewVec3(1, 1, 1)) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}

		// Refraction bends toward the normal, so the direction is steeper than 45°
		if result.Scattered.Direction.Normalize().Y < -0.75 {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
}

func TestDielectric_UnitIndexDoesNotBend(t *testing.T) {
	air := NewDielectric(1.0)
	normal := core.NewVec3(0, 1, 0)

	// Draws near 1 never pick the Schlick reflection branch for these angles
	sampler := fixedSampler{value: 0.99999}

	for _, degrees := range []float64{0, 15, 30, 45, 60, 75} {
		theta := core.DegreesToRadians(degrees)
		direction := core.NewVec3(math.Sin(theta), -math.Cos(theta), 0)
		ray := core.NewRay(core.NewVec3(0, 1, 0), direction)
		hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal, FrontFace: true}

		result, _ := air.Scatter(ray, hit, sampler)
		if !result.Scattered.Direction.ApproxEquals(direction, 1e-9) {
			t.Errorf("At %v°: expected unbent direction %v, got %v", degrees, direction, result.Scattered.Direction)
		}
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Ray inside glass heading out at 60° from the normal (critical angle is ~41.8°)
	theta := core.DegreesToRadians(60)
	direction := core.NewVec3(math.Sin(theta), math.Cos(theta), 0)
	ray := core.NewRay(core.NewVec3(0, -1, 0), direction)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, -1, 0), // Flipped to face the incident ray
		FrontFace: false,
	}

	// Even a draw that would never pick reflection must reflect
	sampler := fixedSampler{value: 0.99999}
	result, scattered := glass.Scatter(ray, hit, sampler)
	if !scattered {
		t.Fatal("Dielectric should always scatter")
	}

	expected := core.NewVec3(math.Sin(theta), -math.Cos(theta), 0)
	if !result.Scattered.Direction.ApproxEquals(expected, 1e-9) {
		t.Errorf("Expected total internal reflection %v, got %v", expected, result.Scattered.Direction)
	}
}

func TestDielectricReflectBranchFromLowDraw(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	// Normal incidence reflectance is 0.04, a draw of 0 always reflects
	result, _ := glass.Scatter(ray, hit, fixedSampler{value: 0})
	if !result.Scattered.Direction.ApproxEquals(core.NewVec3(0, 1, 0), 1e-12) {
		t.Errorf("Expected reflection straight back, got %v", result.Scattered.Direction)
	}

	// A draw of 0.5 refracts straight through
	result, _ = glass.Scatter(ray, hit, fixedSampler{value: 0.5})
	if !result.Scattered.Direction.ApproxEquals(core.NewVec3(0, -1, 0), 1e-12) {
		t.Errorf("Expected refraction straight through, got %v", result.Scattered.Direction)
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence air to glass", 1.0, 1.0 / 1.5, 0.04},
		{"normal incidence glass to air", 1.0, 1.5, 0.04},
		{"grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"matched indices", 1.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected reflectance %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	ratio := 1.0 / 1.5
	thetaI := core.DegreesToRadians(40)
	incident := core.NewVec3(math.Sin(thetaI), -math.Cos(thetaI), 0)

	refracted := Refract(incident, normal, ratio)

	if math.Abs(refracted.Length()-1.0) > 1e-9 {
		t.Errorf("Refracted direction should be unit length, got %f", refracted.Length())
	}
	sinT := refracted.X
	if math.Abs(sinT-ratio*math.Sin(thetaI)) > 1e-9 {
		t.Errorf("Snell's law violated: sinθt = %f, expected %f", sinT, ratio*math.Sin(thetaI))
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	var front HitRecord
	front.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)), outward)
	if !front.FrontFace || !front.Normal.Equals(outward) {
		t.Errorf("Expected front face with outward normal, got front=%t normal=%v", front.FrontFace, front.Normal)
	}

	var back HitRecord
	back.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), outward)
	if back.FrontFace || !back.Normal.Equals(outward.Negate()) {
		t.Errorf("Expected back face with flipped normal, got front=%t normal=%v", back.FrontFace, back.Normal)
	}
}
