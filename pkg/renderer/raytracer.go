package renderer

import (
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Raytracer renders a scene on the calling goroutine, one scanline at a time
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	logger     core.Logger
	sampler    core.Sampler
}

// NewRaytracer creates a raytracer whose random stream is seeded from the scene's sampling config
func NewRaytracer(sc *scene.Scene, integ integrator.Integrator, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:      sc,
		integrator: integ,
		logger:     logger,
		sampler:    core.NewSeededSampler(sc.SamplingConfig.Seed),
	}
}

// Render traces every pixel from the bottom scanline up and returns the averaged colors
func (rt *Raytracer) Render() (*Framebuffer, RenderStats) {
	start := time.Now()
	config := rt.scene.SamplingConfig
	width, height := config.Width, config.Height
	fb := NewFramebuffer(width, height)

	var stats RenderStats
	for j := height - 1; j >= 0; j-- {
		rt.logger.Printf("Scanlines remaining: %d\n", j)

		for i := 0; i < width; i++ {
			var ps PixelStats
			samplePixel(rt.scene, rt.integrator, i, j, &ps, rt.sampler, config.SamplesPerPixel)
			fb.Set(i, height-1-j, ps.GetColor())
			stats.add(RenderStats{TotalPixels: 1, TotalSamples: ps.SampleCount})
		}
	}

	stats.finalize(start)
	return fb, stats
}

// samplePixel traces the given number of jittered rays through pixel (i, j) into ps.
// j counts scanlines from the bottom of the image.
func samplePixel(sc *scene.Scene, integ integrator.Integrator, i, j int, ps *PixelStats, sampler core.Sampler, samples int) {
	config := sc.SamplingConfig
	for n := 0; n < samples; n++ {
		s := viewportCoord(i, config.Width, sampler.Get1D())
		t := viewportCoord(j, config.Height, sampler.Get1D())
		ray := sc.Camera.GetRay(s, t, sampler)
		ps.AddSample(integ.RayColor(ray, sc, sampler))
	}
}

// viewportCoord maps a jittered pixel index onto [0, 1] across size pixels
func viewportCoord(index, size int, jitter float64) float64 {
	if size <= 1 {
		return 0.5
	}
	return (float64(index) + jitter) / float64(size-1)
}
