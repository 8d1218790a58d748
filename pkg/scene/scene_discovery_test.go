package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"three-spheres", "Three Spheres"},
		{"glass_marbles", "Glass Marbles"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneFileMetadata(t *testing.T) {
	dir := t.TempDir()

	withMetadata := filepath.Join(dir, "marbles.json")
	if err := os.WriteFile(withMetadata, []byte(`{"name": "Glass Marbles", "description": "Three marbles", "spheres": []}`), 0644); err != nil {
		t.Fatal(err)
	}
	withoutMetadata := filepath.Join(dir, "plain-scene.json")
	if err := os.WriteFile(withoutMetadata, []byte(`{"spheres": []}`), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := ParseSceneFileMetadata(withMetadata)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if info.Name != "Glass Marbles" || info.Description != "Three marbles" || info.Type != "file" {
		t.Errorf("Unexpected metadata: %+v", info)
	}

	info, err = ParseSceneFileMetadata(withoutMetadata)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if info.Name != "Plain Scene" {
		t.Errorf("Expected fallback name 'Plain Scene', got %q", info.Name)
	}
	if info.FilePath != withoutMetadata {
		t.Errorf("Expected file path %s, got %s", withoutMetadata, info.FilePath)
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"b.json":    `{"name": "Bravo"}`,
		"a.json":    `{"name": "Alpha"}`,
		"notes.txt": `not a scene`,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scene files, got %d", len(scenes))
	}
	if scenes[0].Name != "Alpha" || scenes[1].Name != "Bravo" {
		t.Errorf("Scenes should be sorted by name, got %q, %q", scenes[0].Name, scenes[1].Name)
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Missing directory should not be an error: %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestParseSceneFileMetadata_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"name": `), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ParseSceneFileMetadata(path); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
