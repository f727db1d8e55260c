package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDescription(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDescriptionsParsesYaml(t *testing.T) {
	dir := t.TempDir()
	path := writeDescription(t, dir, "vision.yaml", `
api_version: robot-models/v1
kind: models
metadata:
  name: vision
  version: 1.0.0
services:
  - name: ImageProvider
    ports:
      - name: frame
        type: ImageFrame
        direction: output
components:
  - name: Camera
    ports:
      - name: image_out
        type: ImageFrame
        direction: output
    provides:
      - service: ImageProvider
        port_mappings:
          frame: image_out
`)

	adapter := NewModelFileAdapter()
	descs, err := adapter.LoadDescriptions([]string{path})
	require.NoError(t, err)
	require.Len(t, descs, 1)

	desc := descs[0]
	assert.Equal(t, "vision", desc.Metadata.Name)
	require.Len(t, desc.Services, 1)
	assert.Equal(t, "ImageProvider", desc.Services[0].Name)
	require.Len(t, desc.Components, 1)
	require.Len(t, desc.Components[0].Provides, 1)
	assert.Equal(t, map[string]string{"frame": "image_out"},
		desc.Components[0].Provides[0].PortMappings)
}

func TestLoadDescriptionsMissingFile(t *testing.T) {
	adapter := NewModelFileAdapter()
	_, err := adapter.LoadDescriptions([]string{filepath.Join(t.TempDir(), "absent.yaml")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestLoadDescriptionsInvalidYaml(t *testing.T) {
	dir := t.TempDir()
	path := writeDescription(t, dir, "broken.yaml", "services: [unterminated")

	adapter := NewModelFileAdapter()
	_, err := adapter.LoadDescriptions([]string{path})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestLoadDescriptionsArbitratesByVersion(t *testing.T) {
	dir := t.TempDir()
	older := writeDescription(t, dir, "camera-1.yaml", `
api_version: robot-models/v1
kind: models
metadata:
  name: camera
  version: 1.0.0
components:
  - name: Camera
    ports:
      - name: image_out
        type: ImageFrame
        direction: output
`)
	newer := writeDescription(t, dir, "camera-2.yaml", `
api_version: robot-models/v1
kind: models
metadata:
  name: camera
  version: 1.2.0-1
components:
  - name: Camera
    abstract: true
    ports:
      - name: image_out
        type: ImageFrame
        direction: output
`)

	adapter := NewModelFileAdapter()
	descs, err := adapter.LoadDescriptions([]string{older, newer})
	require.NoError(t, err)
	require.Len(t, descs, 1)
	require.Len(t, descs[0].Components, 1)
	assert.Equal(t, "1.2.0-1", descs[0].Metadata.Version)
	assert.True(t, descs[0].Components[0].Abstract, "higher-versioned declaration must win")
}

func TestLoadDescriptionsEqualVersionConflict(t *testing.T) {
	dir := t.TempDir()
	first := writeDescription(t, dir, "a.yaml",
		"api_version: robot-models/v1\nkind: models\nmetadata:\n  name: a\n  version: 1.0.0\ncomponents:\n  - name: Camera\n")
	second := writeDescription(t, dir, "b.yaml",
		"api_version: robot-models/v1\nkind: models\nmetadata:\n  name: b\n  version: 1.0.0\ncomponents:\n  - name: Camera\n")

	adapter := NewModelFileAdapter()
	_, err := adapter.LoadDescriptions([]string{first, second})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeAlreadyExists, errbuilder.CodeOf(err))
}

func TestLoadDescriptionsInvalidVersion(t *testing.T) {
	dir := t.TempDir()
	first := writeDescription(t, dir, "a.yaml",
		"api_version: robot-models/v1\nkind: models\nmetadata:\n  name: a\n  version: not a version\ncomponents:\n  - name: Camera\n")
	second := writeDescription(t, dir, "b.yaml",
		"api_version: robot-models/v1\nkind: models\nmetadata:\n  name: b\n  version: 1.0.0\ncomponents:\n  - name: Camera\n")

	adapter := NewModelFileAdapter()
	_, err := adapter.LoadDescriptions([]string{first, second})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
