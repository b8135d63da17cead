// Package presets loads plane presets from YAML files so the console's
// "plane add <preset>" has data-driven starting points (assets/presets/).
package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"portalview/internal/pga"
	"portalview/internal/scene"
)

// Dir is the preset directory, relative to the process working directory.
const Dir = "assets/presets"

// Def is the YAML definition of a plane preset. Omitted fields keep the
// default plane's values.
type Def struct {
	Name                    string     `yaml:"name"`
	Position                [3]float32 `yaml:"position"`
	XYRotation              float32    `yaml:"xy_rotation"`
	YZRotation              float32    `yaml:"yz_rotation"`
	XZRotation              float32    `yaml:"xz_rotation"`
	Width                   float32    `yaml:"width"`
	Height                  float32    `yaml:"height"`
	CheckerCountX           uint32     `yaml:"checker_count_x"`
	CheckerCountZ           uint32     `yaml:"checker_count_z"`
	Color                   [3]float32 `yaml:"color"`
	CheckerDarkness         *float32   `yaml:"checker_darkness"`
	EmissiveColor           [3]float32 `yaml:"emissive_color"`
	EmissionIntensity       float32    `yaml:"emission_intensity"`
	EmissiveCheckerDarkness *float32   `yaml:"emissive_checker_darkness"`
}

// Plane converts the definition to a scene plane, starting from the default
// plane so zero-valued size and checker fields stay usable.
func (d Def) Plane() scene.Plane {
	p := scene.DefaultPlane()
	if d.Name != "" {
		p.Name = d.Name
	}
	p.Position = pga.Vector3{X: d.Position[0], Y: d.Position[1], Z: d.Position[2]}
	p.XYRotation = d.XYRotation
	p.YZRotation = d.YZRotation
	p.XZRotation = d.XZRotation
	if d.Width > 0 {
		p.Width = d.Width
	}
	if d.Height > 0 {
		p.Height = d.Height
	}
	if d.CheckerCountX > 0 {
		p.CheckerCountX = d.CheckerCountX
	}
	if d.CheckerCountZ > 0 {
		p.CheckerCountZ = d.CheckerCountZ
	}
	if d.Color != [3]float32{} {
		p.Color = pga.Color{R: d.Color[0], G: d.Color[1], B: d.Color[2]}
	}
	if d.CheckerDarkness != nil {
		p.CheckerDarkness = *d.CheckerDarkness
	}
	p.EmissiveColor = pga.Color{R: d.EmissiveColor[0], G: d.EmissiveColor[1], B: d.EmissiveColor[2]}
	p.EmissionIntensity = d.EmissionIntensity
	if d.EmissiveCheckerDarkness != nil {
		p.EmissiveCheckerDarkness = *d.EmissiveCheckerDarkness
	}
	return p
}

// Registry maps preset names (the YAML file's base name) to definitions.
type Registry struct {
	defs map[string]Def
}

// Load reads every *.yaml file in dir. Files that fail to parse are skipped;
// a missing directory yields an empty registry. "default" is always present.
func Load(dir string) *Registry {
	r := &Registry{defs: make(map[string]Def)}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return r
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		var d Def
		if err := yaml.Unmarshal(data, &d); err != nil {
			continue
		}
		r.defs[strings.TrimSuffix(e.Name(), ".yaml")] = d
	}
	return r
}

// Plane returns the plane for a preset name. The name "default" (or empty)
// always resolves to the default plane, even with no preset files on disk.
func (r *Registry) Plane(name string) (scene.Plane, error) {
	if name == "" || name == "default" {
		if d, ok := r.defs["default"]; ok {
			return d.Plane(), nil
		}
		return scene.DefaultPlane(), nil
	}
	d, ok := r.defs[name]
	if !ok {
		return scene.Plane{}, fmt.Errorf("unknown preset: %s (have: %s)", name, strings.Join(r.Names(), ", "))
	}
	return d.Plane(), nil
}

// Names lists the loaded preset names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
