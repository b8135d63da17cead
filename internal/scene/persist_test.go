package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalview/internal/pga"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := Default()
	s.Camera.Position = pga.Vector3{X: 1, Y: 2, Z: 3}
	s.SunIntensity = 42
	portal := DefaultPlane()
	portal.Name = "Portal"
	portal.XZRotation = 0.7
	portal.FrontPortal.Connect(0)
	portal.FrontPortal.Flip = true
	s.AddPlane(portal)

	path, err := s.Save(filepath.Join(t.TempDir(), "world"))
	require.NoError(t, err)
	assert.Equal(t, SceneExtension, filepath.Ext(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestSaveKeepsExplicitExtension(t *testing.T) {
	s := Default()
	want := filepath.Join(t.TempDir(), "world.json")

	path, err := s.Save(want)
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestSaveCreatesDirectories(t *testing.T) {
	s := Default()
	path := filepath.Join(t.TempDir(), "saves", "nested", "world")

	written, err := s.Save(path)
	require.NoError(t, err)
	_, err = os.Stat(written)
	assert.NoError(t, err)
}

func TestLoadPartialDocumentFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.scene")
	require.NoError(t, os.WriteFile(path, []byte(`{"sun_intensity": 7}`), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 7, loaded.SunIntensity, eps)

	want := Default()
	assert.Equal(t, want.Camera, loaded.Camera)
	assert.Equal(t, want.UpSkyColor, loaded.UpSkyColor)
	require.Len(t, loaded.Planes, 1)
	assert.Equal(t, "Ground", loaded.Planes[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.scene"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.scene")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
