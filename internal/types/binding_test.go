package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundServiceEqual(t *testing.T) {
	model := &ServiceModel{Name: "ImageProvider"}
	other := &ServiceModel{Name: "RangeProvider"}
	camera := &ComponentType{Name: "Camera"}
	lidar := &ComponentType{Name: "Lidar"}

	a := &BoundService{Model: model, Component: camera}
	b := &BoundService{Model: model, Component: camera}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(&BoundService{Model: other, Component: camera}))
	assert.False(t, a.Equal(&BoundService{Model: model, Component: lidar}))

	task := &TaskInstance{Name: "cam0", Type: camera}
	bound := &BoundService{Model: model, Component: camera, Task: task}
	assert.True(t, bound.Equal(&BoundService{Model: model, Component: camera, Task: task}))
	assert.False(t, bound.Equal(a), "instance-bound and type-bound views differ")

	var nilService *BoundService
	assert.True(t, nilService.Equal(nil))
	assert.False(t, a.Equal(nil))
}

func TestBoundServiceAsNarrowsView(t *testing.T) {
	base := &ServiceModel{Name: "ImageProvider", Ports: map[string]Port{
		"frame": {Name: "frame", Type: "ImageFrame", Direction: PortDirectionOutput},
	}}
	derived := &ServiceModel{Name: "DepthProvider", Parent: base, Ports: map[string]Port{
		"depth": {Name: "depth", Type: "DepthFrame", Direction: PortDirectionOutput},
	}}
	camera := &ComponentType{Name: "DepthCamera"}

	full := &BoundService{
		Model:        derived,
		Component:    camera,
		InstanceName: "depthProvider",
		Main:         true,
		PortMapping:  map[string]string{"frame": "frame", "depth": "depth"},
	}

	narrowed := full.As(base)
	assert.Same(t, base, narrowed.Model)
	assert.Same(t, camera, narrowed.Component)
	assert.Equal(t, map[string]string{"frame": "frame"}, narrowed.PortMapping)
	// The receiver keeps its full mapping.
	assert.Equal(t, map[string]string{"frame": "frame", "depth": "depth"}, full.PortMapping)

	target, ok := narrowed.TranslatePort("frame")
	require.True(t, ok)
	assert.Equal(t, "frame", target)
	_, ok = narrowed.TranslatePort("depth")
	assert.False(t, ok)
}

func TestBoundServiceDupAndAttach(t *testing.T) {
	model := &ServiceModel{Name: "ImageProvider"}
	camera := &ComponentType{Name: "Camera"}
	bound := &BoundService{
		Model:        model,
		Component:    camera,
		InstanceName: "imageProvider",
		PortMapping:  map[string]string{"frame": "image_out"},
	}

	dup := bound.Dup()
	dup.PortMapping["frame"] = "other"
	assert.Equal(t, "image_out", bound.PortMapping["frame"])

	task := &TaskInstance{Name: "cam0", Type: camera}
	attached := bound.AttachTo(task)
	assert.Same(t, task, attached.Task)
	assert.Nil(t, bound.Task)
}

func TestSelectionDup(t *testing.T) {
	camera := &ComponentType{Name: "Camera"}
	service := &ServiceModel{Name: "ImageProvider"}

	deferred := SelectDeferred(Requirement{Component: camera, Services: []*ServiceModel{service}})
	dup := deferred.Dup()
	dup.Deferred.Services[0] = nil
	require.NotNil(t, deferred.Deferred.Services[0])

	selected := SelectComponent(camera)
	assert.Same(t, camera, selected.ComponentType())
}
