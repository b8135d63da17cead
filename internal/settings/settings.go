package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"portalview/internal/tracer"
)

// Path is the render-settings file, relative to the process working directory.
const Path = "config/render.json"

// RenderType selects the shading model.
type RenderType string

const (
	Unlit RenderType = "unlit"
	Lit   RenderType = "lit"
)

// Device returns the kernel's numeric render-type code.
func (t RenderType) Device() uint32 {
	if t == Lit {
		return tracer.RenderTypeLit
	}
	return tracer.RenderTypeUnlit
}

// Render holds the render settings document. It is persisted across runs,
// separately from the scene. RenderScale divides the window size to get the
// kernel target size (2 = trace at half resolution).
type Render struct {
	RenderType           RenderType `json:"render_type"`
	Antialiasing         bool       `json:"antialiasing"`
	RecursivePortalCount uint32     `json:"recursive_portal_count"`
	MaxBounces           uint32     `json:"max_bounces"`
	RenderScale          int        `json:"render_scale"`
}

// Default returns the startup settings: unlit, antialiased, ten portal hops,
// three light bounces, half-resolution tracing.
func Default() Render {
	return Render{
		RenderType:           Unlit,
		Antialiasing:         true,
		RecursivePortalCount: 10,
		MaxBounces:           3,
		RenderScale:          2,
	}
}

// UnmarshalJSON fills missing fields from Default.
func (r *Render) UnmarshalJSON(data []byte) error {
	type plain Render
	tmp := plain(Default())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*r = Render(tmp)
	return nil
}

// Sanitise clamps values the kernel cannot work with.
func (r *Render) Sanitise() {
	if r.RenderType != Lit {
		r.RenderType = Unlit
	}
	if r.RenderScale < 1 {
		r.RenderScale = 1
	}
}

// Load reads the settings document. If the file is missing or invalid,
// returns Default() and does not create a file.
func Load() Render {
	data, err := os.ReadFile(Path)
	if err != nil {
		return Default()
	}
	var r Render
	if err := json.Unmarshal(data, &r); err != nil {
		return Default()
	}
	r.Sanitise()
	return r
}

// Save writes the settings document, creating the config directory if needed.
func Save(r Render) error {
	if err := os.MkdirAll(filepath.Dir(Path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(Path, data, 0644)
}
