package loaders

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

const testSceneJSON = `{
  "name": "Test Scene",
  "camera": {"lookFrom": [13, 2, 3], "lookAt": [0, 0, 0], "viewUp": [0, 1, 0], "vfov": 20,
             "aperture": 0.1, "focusDistance": 10},
  "image": {"width": 60, "aspectRatio": 1.5, "samplesPerPixel": 8, "maxDepth": 12, "tMin": 0.01, "seed": 7},
  "background": {"top": "#80b3ff", "bottom": "white"},
  "materials": {
    "ground": {"type": "lambertian", "albedo": [0.5, 0.5, 0.5]},
    "gold": {"type": "metal", "albedo": "goldenrod", "fuzz": 0.3},
    "glass": {"type": "dielectric", "refractiveIndex": 1.5}
  },
  "spheres": [
    {"center": [0, -1000, 0], "radius": 1000, "material": "ground"},
    {"center": [0, 1, 0], "radius": 1, "material": "glass"},
    {"center": [4, 1, 0], "radius": 1, "material": "gold"},
    {"center": [-4, 1, 0], "radius": 1, "material": "glass"},
    {"center": [0, 3, 0], "radius": 0.5}
  ]
}`

func TestLoadScene(t *testing.T) {
	sc, err := LoadScene(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	if sc.SamplingConfig.Width != 60 || sc.SamplingConfig.Height != 40 {
		t.Errorf("Expected 60x40 image, got %dx%d", sc.SamplingConfig.Width, sc.SamplingConfig.Height)
	}
	if sc.SamplingConfig.SamplesPerPixel != 8 || sc.SamplingConfig.MaxDepth != 12 {
		t.Errorf("Unexpected sampling config: %+v", sc.SamplingConfig)
	}
	if sc.SamplingConfig.TMin != 0.01 || sc.SamplingConfig.Seed != 7 {
		t.Errorf("Expected tMin 0.01 and seed 7, got %+v", sc.SamplingConfig)
	}
	if !sc.CameraConfig.Center.Equals(core.NewVec3(13, 2, 3)) {
		t.Errorf("Expected camera at (13,2,3), got %v", sc.CameraConfig.Center)
	}
	if sc.CameraConfig.Aperture != 0.1 || sc.CameraConfig.FocusDistance != 10 {
		t.Errorf("Unexpected lens settings: %+v", sc.CameraConfig)
	}

	expectedTop := core.NewVec3(128.0/255.0, 179.0/255.0, 1.0)
	if !sc.Background.Top.ApproxEquals(expectedTop, 1e-9) {
		t.Errorf("Expected background top %v, got %v", expectedTop, sc.Background.Top)
	}
	if !sc.Background.Bottom.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Expected white background bottom, got %v", sc.Background.Bottom)
	}

	if sc.GetPrimitiveCount() != 5 {
		t.Fatalf("Expected 5 spheres, got %d", sc.GetPrimitiveCount())
	}
}

func TestLoadScene_SharesMaterials(t *testing.T) {
	sc, err := LoadScene(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	spheres := make([]*geometry.Sphere, 0, len(sc.World.Objects))
	for _, obj := range sc.World.Objects {
		sphere, ok := obj.(*geometry.Sphere)
		if !ok {
			t.Fatalf("Expected *geometry.Sphere, got %T", obj)
		}
		spheres = append(spheres, sphere)
	}

	if spheres[1].Material != spheres[3].Material {
		t.Error("Spheres referencing the same material should share one instance")
	}
	if _, ok := spheres[1].Material.(*material.Dielectric); !ok {
		t.Errorf("Expected dielectric material, got %T", spheres[1].Material)
	}

	metal, ok := spheres[2].Material.(*material.Metal)
	if !ok {
		t.Fatalf("Expected metal material, got %T", spheres[2].Material)
	}
	if metal.Fuzzness != 0.3 {
		t.Errorf("Expected fuzz 0.3, got %f", metal.Fuzzness)
	}

	if spheres[4].Material != nil {
		t.Errorf("Sphere without a material should have a nil material, got %T", spheres[4].Material)
	}
}

func TestLoadScene_Defaults(t *testing.T) {
	sc, err := LoadScene(strings.NewReader(`{"spheres": [{"center": [0, 0, 0], "radius": 1}]}`))
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	defaults := DefaultSceneFile()
	if sc.SamplingConfig.Width != defaults.Image.Width {
		t.Errorf("Expected default width %d, got %d", defaults.Image.Width, sc.SamplingConfig.Width)
	}
	if sc.CameraConfig.VFov != 20 {
		t.Errorf("Expected default vfov 20, got %f", sc.CameraConfig.VFov)
	}
	if sc.Background.Top.X != 0.5 {
		t.Errorf("Expected default sky background, got %v", sc.Background)
	}
}

func TestLoadScene_Errors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"invalid JSON", `{"spheres": [`, "parse"},
		{"unknown field", `{"lights": []}`, "lights"},
		{"unknown material reference", `{"spheres": [{"center": [0,0,0], "radius": 1, "material": "chrome"}]}`, "unknown material"},
		{"unknown material type", `{"materials": {"m": {"type": "plastic"}}}`, "unknown material type"},
		{"unknown color", `{"materials": {"m": {"type": "metal", "albedo": "notacolor"}}}`, "unknown color"},
		{"bad color value", `{"materials": {"m": {"type": "metal", "albedo": {"r": 1}}}}`, "color must be"},
		{"zero width", `{"image": {"width": 0}}`, "width"},
		{"negative aspect ratio", `{"image": {"aspectRatio": -1}}`, "aspect ratio"},
		{"zero samples", `{"image": {"samplesPerPixel": 0}}`, "samples"},
		{"negative depth", `{"image": {"maxDepth": -1}}`, "depth"},
		{"vfov out of range", `{"camera": {"vfov": 180}}`, "vfov"},
		{"lookFrom equals lookAt", `{"camera": {"lookFrom": [1, 2, 3], "lookAt": [1, 2, 3]}}`, "must differ"},
		{"viewUp parallel to view", `{"camera": {"lookFrom": [0, 5, 0], "lookAt": [0, 0, 0], "viewUp": [0, 1, 0]}}`, "parallel"},
		{"zero viewUp", `{"camera": {"viewUp": [0, 0, 0]}}`, "parallel"},
		{"zero radius", `{"spheres": [{"center": [0,0,0], "radius": 0}]}`, "radius"},
		{"non-positive refractive index", `{"materials": {"g": {"type": "glass", "refractiveIndex": 0}}}`, "refractive index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := LoadScene(strings.NewReader(tt.json))
			if err == nil {
				t.Fatalf("Expected error containing %q, got none", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
			if sc != nil {
				t.Errorf("Expected nil scene on error")
			}
		})
	}
}

func TestColor_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  core.Vec3
	}{
		{`[0.1, 0.2, 0.3]`, core.NewVec3(0.1, 0.2, 0.3)},
		{`"white"`, core.NewVec3(1, 1, 1)},
		{`"#ff0000"`, core.NewVec3(1, 0, 0)},
		{` "Black" `, core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var c Color
			if err := c.UnmarshalJSON([]byte(tt.input)); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !core.Vec3(c).ApproxEquals(tt.want, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.want, core.Vec3(c))
			}
		})
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")
	if err := os.WriteFile(path, []byte(testSceneJSON), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	sc, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if sc.GetPrimitiveCount() != 5 {
		t.Errorf("Expected 5 spheres, got %d", sc.GetPrimitiveCount())
	}

	if _, err := LoadSceneFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadScene_RendersHollowGlass(t *testing.T) {
	sc, err := LoadScene(strings.NewReader(`{
	  "materials": {"glass": {"type": "glass"}},
	  "spheres": [
	    {"center": [0, 0, 0], "radius": 1, "material": "glass"},
	    {"center": [0, 0, 0], "radius": -0.9, "material": "glass"}
	  ]
	}`))
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	// A ray into the inner sphere sees its inward-facing normal from outside
	ray := core.NewRay(core.NewVec3(0, 0, 0.95), core.NewVec3(0, 0, -1))
	hit, ok := sc.World.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected a hit on the inner surface")
	}
	if math.Abs(hit.T-0.05) > 1e-9 {
		t.Errorf("Expected hit at t=0.05, got %f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Inner sphere with negative radius should report a back-face hit from outside it")
	}
}
