package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalview/internal/scene"
)

func writePreset(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestLoadMissingDirectory(t *testing.T) {
	r := Load(filepath.Join(t.TempDir(), "absent"))
	assert.Empty(t, r.Names())

	p, err := r.Plane("default")
	require.NoError(t, err)
	assert.Equal(t, scene.DefaultPlane(), p)
}

func TestLoadSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "good.yaml", "name: Good\nwidth: 2")
	writePreset(t, dir, "bad.yaml", "{{{nope")
	writePreset(t, dir, "ignored.txt", "name: NotYaml")

	r := Load(dir)
	assert.Equal(t, []string{"good"}, r.Names())
}

func TestPlaneFromDefinition(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "lamp.yaml", `name: Lamp
position: [0, 3, 0]
width: 2
height: 2
emissive_color: [1, 1, 0.8]
emission_intensity: 5
checker_darkness: 0
`)

	r := Load(dir)
	p, err := r.Plane("lamp")
	require.NoError(t, err)
	assert.Equal(t, "Lamp", p.Name)
	assert.InDelta(t, 3, p.Position.Y, 1e-6)
	assert.InDelta(t, 2, p.Width, 1e-6)
	assert.InDelta(t, 5, p.EmissionIntensity, 1e-6)
	assert.InDelta(t, 0.8, p.EmissiveColor.B, 1e-6)
	assert.Zero(t, p.CheckerDarkness)
	// Omitted fields keep the default plane's values.
	assert.InDelta(t, 1, p.Color.R, 1e-6)
	assert.InDelta(t, 0.5, p.EmissiveCheckerDarkness, 1e-6)
}

func TestPlaneUnknownPreset(t *testing.T) {
	r := Load(t.TempDir())
	_, err := r.Plane("missing")
	assert.Error(t, err)
}

func TestShippedPresetsParse(t *testing.T) {
	// The presets shipped with the binary live two levels up from this package.
	r := Load(filepath.Join("..", "..", Dir))
	for _, name := range []string{"ground", "portal", "lamp"} {
		_, err := r.Plane(name)
		assert.NoError(t, err, name)
	}
}
