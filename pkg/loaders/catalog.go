package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// DefaultScenesDir is where scene files are looked up by bare name
const DefaultScenesDir = "scenes"

// CreateScene returns a built-in scene by ID or loads a JSON scene file.
// A name that is neither built in nor a .json path is looked up as <scenesDir>/<name>.json.
// seed drives the layout of generated scenes.
func CreateScene(name, scenesDir string, seed int64) (*scene.Scene, error) {
	switch name {
	case "":
		return nil, fmt.Errorf("scene name must not be empty")
	case "default":
		return scene.NewDefaultScene(), nil
	case "random":
		return scene.NewRandomScene(seed), nil
	case "spheregrid":
		return scene.NewSphereGridScene(), nil
	case "normals":
		return scene.NewNormalsScene(), nil
	}

	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadSceneFile(name)
	}

	path := filepath.Join(scenesDir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return LoadSceneFile(path)
}
