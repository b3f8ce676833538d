package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// DetectVersion reads the project version from the first manifest found in
// root. It checks package.json, pyproject.toml, and Cargo.toml in that
// order. The boolean reports whether a version was found.
func DetectVersion(root string) (string, bool) {
	if v := packageJSONVersion(filepath.Join(root, "package.json")); v != "" {
		return v, true
	}
	if v := pyprojectVersion(filepath.Join(root, "pyproject.toml")); v != "" {
		return v, true
	}
	if v := cargoVersion(filepath.Join(root, "Cargo.toml")); v != "" {
		return v, true
	}
	return "", false
}

// HasConfigChanged compares the project version on disk against the version
// recorded when the cache was written. Absent on both sides counts as
// unchanged.
func HasConfigChanged(root, cached string) bool {
	current, ok := DetectVersion(root)
	if !ok {
		return cached != ""
	}
	return current != cached
}

func packageJSONVersion(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var manifest struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Version
}

func pyprojectVersion(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var manifest struct {
		Project struct {
			Version string `toml:"version"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Project.Version
}

func cargoVersion(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var manifest struct {
		Package struct {
			Version string `toml:"version"`
		} `toml:"package"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Package.Version
}
