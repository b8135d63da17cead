package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SceneExtension is appended to save paths that carry no extension.
const SceneExtension = ".scene"

// Save writes the scene as a JSON document. A path with no extension gets
// ".scene" appended; the path actually written is returned.
func (s *Scene) Save(path string) (string, error) {
	if filepath.Ext(path) == "" {
		path += SceneExtension
	}
	data, err := json.MarshalIndent(s, "", "\t")
	if err != nil {
		return path, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return path, err
		}
	}
	return path, os.WriteFile(path, data, 0644)
}

// Load reads a scene file. On any read or parse error the current state is
// the right thing to keep, so the caller gets the error and no scene.
func Load(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, err
	}
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, err
	}
	return s, nil
}
