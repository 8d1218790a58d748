package renderer

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// recordingLogger captures every formatted log line
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// createTestScene returns a small, cheap version of the default scene
func createTestScene(width int) *scene.Scene {
	sc := scene.NewDefaultScene(geometry.CameraConfig{Width: width})
	sc.SamplingConfig.SamplesPerPixel = 2
	sc.SamplingConfig.MaxDepth = 4
	return sc
}

// createNormalsScene returns a square normals scene with a few samples per pixel
func createNormalsScene(width int) *scene.Scene {
	sc := scene.NewNormalsScene(geometry.CameraConfig{Width: width, AspectRatio: 1.0})
	sc.SamplingConfig.SamplesPerPixel = 4
	return sc
}
