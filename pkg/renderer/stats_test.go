package renderer

import (
	"testing"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if !ps.GetColor().Equals(core.Vec3{}) {
		t.Errorf("Empty pixel should be black, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0.5))
	ps.AddSample(core.NewVec3(0, 1, 0.5))

	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	expected := core.NewVec3(0.5, 0.5, 0.5)
	if !ps.GetColor().Equals(expected) {
		t.Errorf("Expected average %v, got %v", expected, ps.GetColor())
	}
}

func TestRenderStats_Finalize(t *testing.T) {
	var stats RenderStats
	stats.add(RenderStats{TotalPixels: 4, TotalSamples: 10})
	stats.add(RenderStats{TotalPixels: 1, TotalSamples: 5})
	stats.finalize(time.Now().Add(-time.Second))

	if stats.TotalPixels != 5 || stats.TotalSamples != 15 {
		t.Errorf("Unexpected totals: %+v", stats)
	}
	if stats.AverageSamples != 3 {
		t.Errorf("Expected average 3, got %f", stats.AverageSamples)
	}
	if stats.Elapsed < time.Second {
		t.Errorf("Expected elapsed time of at least 1s, got %v", stats.Elapsed)
	}
}

func TestFramebuffer_SetAt(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	color := core.NewVec3(0.1, 0.2, 0.3)
	fb.Set(2, 1, color)

	if !fb.At(2, 1).Equals(color) {
		t.Errorf("Expected %v at (2,1), got %v", color, fb.At(2, 1))
	}
	if fb.Pixels[5] != color {
		t.Errorf("Pixels should be stored row-major")
	}
}
