package loaders

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateScene(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "three-spheres.json"), []byte(testSceneJSON), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"random scene", "random", false},
		{"spheregrid scene", "spheregrid", false},
		{"normals scene", "normals", false},
		{"file by name", "three-spheres", false},
		{"file by path", filepath.Join(dir, "three-spheres.json"), false},
		{"unknown scene", "nonexistent", true},
		{"missing file path", filepath.Join(dir, "missing.json"), true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := CreateScene(tt.sceneName, dir, 42)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, got none", tt.sceneName)
				}
				if sc != nil {
					t.Errorf("Expected nil scene for %q", tt.sceneName)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene %q: %v", tt.sceneName, err)
			}
			if sc.SamplingConfig.Width <= 0 || sc.SamplingConfig.Height <= 0 {
				t.Errorf("Scene should have a positive image size, got %dx%d", sc.SamplingConfig.Width, sc.SamplingConfig.Height)
			}
			if sc.GetPrimitiveCount() == 0 {
				t.Errorf("Scene %q has no objects", tt.sceneName)
			}
		})
	}
}
