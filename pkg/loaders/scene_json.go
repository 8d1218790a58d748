package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// SceneFile is the on-disk JSON layout of a scene
type SceneFile struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Camera      CameraEntry              `json:"camera"`
	Image       ImageEntry               `json:"image"`
	Background  *BackgroundEntry         `json:"background"`
	Materials   map[string]MaterialEntry `json:"materials"`
	Spheres     []SphereEntry            `json:"spheres"`
}

// CameraEntry describes the camera placement and lens
type CameraEntry struct {
	LookFrom      [3]float64 `json:"lookFrom"`
	LookAt        [3]float64 `json:"lookAt"`
	ViewUp        [3]float64 `json:"viewUp"`
	VFov          float64    `json:"vfov"`
	Aperture      float64    `json:"aperture"`
	FocusDistance float64    `json:"focusDistance"` // 0 = distance to lookAt
}

// ImageEntry describes the output raster and sampling
type ImageEntry struct {
	Width           int     `json:"width"`
	AspectRatio     float64 `json:"aspectRatio"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	MaxDepth        int     `json:"maxDepth"`
	TMin            float64 `json:"tMin"`
	Seed            int64   `json:"seed"`
}

// BackgroundEntry overrides the sky gradient
type BackgroundEntry struct {
	Top    *Color `json:"top"`
	Bottom *Color `json:"bottom"`
}

// MaterialEntry describes one named material
type MaterialEntry struct {
	Type            string   `json:"type"` // lambertian, metal or dielectric
	Albedo          *Color   `json:"albedo"`
	Fuzz            float64  `json:"fuzz"`
	RefractiveIndex *float64 `json:"refractiveIndex"`
}

// SphereEntry places a sphere. An empty material shades the sphere by its normals.
type SphereEntry struct {
	Center   [3]float64 `json:"center"`
	Radius   float64    `json:"radius"`
	Material string     `json:"material"`
}

// Color is an RGB triple written as [r, g, b], a color name or "#rrggbb"
type Color core.Vec3

// UnmarshalJSON accepts either a 3-element array or a string
func (c *Color) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		v, err := scene.ParseColor(name)
		if err != nil {
			return err
		}
		*c = Color(v)
		return nil
	}

	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be [r, g, b] or a name: %w", err)
	}
	*c = Color(core.NewVec3(rgb[0], rgb[1], rgb[2]))
	return nil
}

// DefaultSceneFile returns the values used for keys a scene file leaves out
func DefaultSceneFile() SceneFile {
	sampling := scene.DefaultSamplingConfig()
	return SceneFile{
		Camera: CameraEntry{
			LookFrom: [3]float64{13, 2, 3},
			LookAt:   [3]float64{0, 0, 0},
			ViewUp:   [3]float64{0, 1, 0},
			VFov:     20,
		},
		Image: ImageEntry{
			Width:           400,
			AspectRatio:     3.0 / 2.0,
			SamplesPerPixel: sampling.SamplesPerPixel,
			MaxDepth:        sampling.MaxDepth,
			TMin:            sampling.TMin,
			Seed:            sampling.Seed,
		},
	}
}

// LoadSceneFile reads and builds a scene from a JSON file
func LoadSceneFile(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sc, err := LoadScene(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	return sc, nil
}

// LoadScene decodes a JSON scene and builds it
func LoadScene(r io.Reader) (*scene.Scene, error) {
	sf := DefaultSceneFile()

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene JSON: %w", err)
	}

	return BuildScene(sf)
}

// BuildScene validates a decoded scene file and constructs the scene.
// Each named material is created once and shared by every sphere that uses it.
func BuildScene(sf SceneFile) (*scene.Scene, error) {
	if err := validateImage(sf.Image); err != nil {
		return nil, err
	}
	if sf.Camera.VFov <= 0 || sf.Camera.VFov >= 180 {
		return nil, fmt.Errorf("vfov must be between 0 and 180 degrees, got %g", sf.Camera.VFov)
	}
	if sf.Camera.Aperture < 0 {
		return nil, fmt.Errorf("aperture must not be negative, got %g", sf.Camera.Aperture)
	}
	viewDir := vec(sf.Camera.LookAt).Subtract(vec(sf.Camera.LookFrom))
	if viewDir.NearZero() {
		return nil, fmt.Errorf("lookFrom and lookAt must differ, both are %v", vec(sf.Camera.LookFrom))
	}
	if vec(sf.Camera.ViewUp).Cross(viewDir).NearZero() {
		return nil, fmt.Errorf("viewUp %v must not be parallel to the view direction", vec(sf.Camera.ViewUp))
	}

	cameraConfig := geometry.CameraConfig{
		Center:        vec(sf.Camera.LookFrom),
		LookAt:        vec(sf.Camera.LookAt),
		Up:            vec(sf.Camera.ViewUp),
		Width:         sf.Image.Width,
		AspectRatio:   sf.Image.AspectRatio,
		VFov:          sf.Camera.VFov,
		Aperture:      sf.Camera.Aperture,
		FocusDistance: sf.Camera.FocusDistance,
	}
	samplingConfig := scene.SamplingConfig{
		SamplesPerPixel: sf.Image.SamplesPerPixel,
		MaxDepth:        sf.Image.MaxDepth,
		TMin:            sf.Image.TMin,
		Seed:            sf.Image.Seed,
	}

	sc := scene.NewScene(cameraConfig, samplingConfig)

	if sf.Background != nil {
		if sf.Background.Top != nil {
			sc.Background.Top = core.Vec3(*sf.Background.Top)
		}
		if sf.Background.Bottom != nil {
			sc.Background.Bottom = core.Vec3(*sf.Background.Bottom)
		}
	}

	materials := make(map[string]material.Material, len(sf.Materials))
	for name, entry := range sf.Materials {
		mat, err := buildMaterial(entry)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, entry := range sf.Spheres {
		if entry.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must not be zero", i)
		}

		var mat material.Material
		if entry.Material != "" {
			var ok bool
			if mat, ok = materials[entry.Material]; !ok {
				return nil, fmt.Errorf("sphere %d: unknown material %q", i, entry.Material)
			}
		}

		sc.Add(geometry.NewSphere(vec(entry.Center), entry.Radius, mat))
	}

	return sc, nil
}

func validateImage(image ImageEntry) error {
	switch {
	case image.Width <= 0:
		return fmt.Errorf("image width must be positive, got %d", image.Width)
	case image.AspectRatio <= 0:
		return fmt.Errorf("aspect ratio must be positive, got %g", image.AspectRatio)
	case image.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", image.SamplesPerPixel)
	case image.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", image.MaxDepth)
	case image.TMin < 0:
		return fmt.Errorf("tMin must not be negative, got %g", image.TMin)
	}
	return nil
}

// buildMaterial creates a material from its description
func buildMaterial(entry MaterialEntry) (material.Material, error) {
	albedo := core.NewVec3(0.5, 0.5, 0.5)
	if entry.Albedo != nil {
		albedo = core.Vec3(*entry.Albedo)
	}

	switch strings.ToLower(entry.Type) {
	case "lambertian", "diffuse":
		return material.NewLambertian(albedo), nil
	case "metal":
		if entry.Fuzz < 0 {
			return nil, fmt.Errorf("fuzz must not be negative, got %g", entry.Fuzz)
		}
		return material.NewMetal(albedo, entry.Fuzz), nil
	case "dielectric", "glass":
		refractiveIndex := 1.5
		if entry.RefractiveIndex != nil {
			refractiveIndex = *entry.RefractiveIndex
		}
		if refractiveIndex <= 0 {
			return nil, fmt.Errorf("refractive index must be positive, got %g", refractiveIndex)
		}
		return material.NewDielectric(refractiveIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", entry.Type)
	}
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
