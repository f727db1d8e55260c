package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robot-models/internal/types"
)

func TestDeclareMainServiceIdentityMapping(t *testing.T) {
	r := NewRegistry()
	newService(t, r, "Foo", nil, outPort("bar", "Float"))
	widget := newComponent(t, r, "Widget", outPort("bar", "Float"))

	bound, err := r.DeclareService(t.Context(), widget, "Foo", DeclareServiceOptions{})
	require.NoError(t, err)
	assert.True(t, bound.Main)
	assert.Equal(t, "foo", bound.InstanceName)
	assert.Equal(t, map[string]string{"bar": "bar"}, bound.PortMapping)
	assert.Contains(t, widget.Arguments, "foo_name")
}

func TestDeclareNamedServicePrefixedMapping(t *testing.T) {
	r := NewRegistry()
	newService(t, r, "Foo", nil, outPort("bar", "Float"))
	widget := newComponent(t, r, "Widget", outPort("leftBar", "Float"))

	bound, err := r.DeclareService(t.Context(), widget, "Foo", DeclareServiceOptions{As: "left"})
	require.NoError(t, err)
	assert.False(t, bound.Main)
	assert.Equal(t, map[string]string{"bar": "leftBar"}, bound.PortMapping)
	assert.Contains(t, widget.Arguments, "left_name")
}

func TestDeclareSnakeCasePortCamelJoin(t *testing.T) {
	r := NewRegistry()
	newService(t, r, "ImageProvider", nil, outPort("image_out", "ImageFrame"))
	rig := newComponent(t, r, "StereoRig", outPort("leftImageOut", "ImageFrame"))

	bound, err := r.DeclareService(t.Context(), rig, "ImageProvider", DeclareServiceOptions{As: "left"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"image_out": "leftImageOut"}, bound.PortMapping)
}

func TestDeclareExplicitMappingOverride(t *testing.T) {
	r := NewRegistry()
	newService(t, r, "ImageProvider", nil, outPort("frame", "ImageFrame"))
	camera := newComponent(t, r, "Camera", outPort("image_out", "ImageFrame"))

	bound, err := r.DeclareService(t.Context(), camera, "ImageProvider", DeclareServiceOptions{
		PortMappings: map[string]string{"frame": "image_out"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"frame": "image_out"}, bound.PortMapping)
}

func TestDeclareMissingPort(t *testing.T) {
	r := NewRegistry()
	newService(t, r, "Foo", nil, outPort("bar", "Float"))
	widget := newComponent(t, r, "Widget")

	_, err := r.DeclareService(t.Context(), widget, "Foo", DeclareServiceOptions{})
	requireErrKind(t, err, errbuilder.CodeFailedPrecondition, MsgMissingPort)
}

func TestDeclareMismatchedPortTypeIsMissing(t *testing.T) {
	r := NewRegistry()
	newService(t, r, "Foo", nil, outPort("bar", "Float"))
	widget := newComponent(t, r, "Widget", outPort("bar", "Integer"))

	_, err := r.DeclareService(t.Context(), widget, "Foo", DeclareServiceOptions{})
	requireErrKind(t, err, errbuilder.CodeFailedPrecondition, MsgMissingPort)
}

func TestDeclareRefinementReplacesBinding(t *testing.T) {
	r := NewRegistry()
	base := newService(t, r, "ImageProvider", nil, outPort("frame", "ImageFrame"))
	derived := newService(t, r, "DepthProvider", base, outPort("frame", "ImageFrame"))
	camera := newComponent(t, r, "Camera", outPort("leftFrame", "ImageFrame"))

	first, err := r.DeclareService(t.Context(), camera, "ImageProvider", DeclareServiceOptions{As: "left"})
	require.NoError(t, err)
	assert.Same(t, base, first.Model)

	second, err := r.DeclareService(t.Context(), camera, "DepthProvider", DeclareServiceOptions{As: "left"})
	require.NoError(t, err)
	assert.Same(t, derived, second.Model)

	declared, ok := camera.FindService("left")
	require.True(t, ok)
	assert.Same(t, derived, declared.Model)
}

func TestDeclareUnrelatedRedeclarationRejected(t *testing.T) {
	r := NewRegistry()
	newService(t, r, "ImageProvider", nil, outPort("frame", "ImageFrame"))
	newService(t, r, "RangeProvider", nil, outPort("frame", "ImageFrame"))
	camera := newComponent(t, r, "Camera", outPort("leftFrame", "ImageFrame"))

	_, err := r.DeclareService(t.Context(), camera, "ImageProvider", DeclareServiceOptions{As: "left"})
	require.NoError(t, err)

	_, err = r.DeclareService(t.Context(), camera, "RangeProvider", DeclareServiceOptions{As: "left"})
	requireErrKind(t, err, errbuilder.CodeAlreadyExists, MsgDuplicateServiceName)
}

func TestDeclareSlaveService(t *testing.T) {
	r := NewRegistry()
	newService(t, r, "Mount", nil)
	newService(t, r, "ImageProvider", nil, outPort("frame", "ImageFrame"))
	rig := newComponent(t, r, "Rig", outPort("camFrame", "ImageFrame"))

	_, err := r.DeclareService(t.Context(), rig, "Mount", DeclareServiceOptions{As: "head"})
	require.NoError(t, err)

	slave, err := r.DeclareService(t.Context(), rig, "ImageProvider", DeclareServiceOptions{As: "cam", SlaveOf: "head"})
	require.NoError(t, err)
	assert.Equal(t, "head.cam", slave.InstanceName)
	assert.NotContains(t, rig.Arguments, "cam_name")

	_, ok := rig.FindService("head.cam")
	assert.True(t, ok)
}

func TestDeclareSlaveOfUnknownMaster(t *testing.T) {
	r := NewRegistry()
	newService(t, r, "ImageProvider", nil, outPort("frame", "ImageFrame"))
	rig := newComponent(t, r, "Rig", outPort("camFrame", "ImageFrame"))

	_, err := r.DeclareService(t.Context(), rig, "ImageProvider", DeclareServiceOptions{As: "cam", SlaveOf: "head"})
	requireErrKind(t, err, errbuilder.CodeInvalidArgument, MsgUnknownService)
}

func TestSelectedDataSource(t *testing.T) {
	r := NewRegistry()
	newService(t, r, "Mount", nil)
	newService(t, r, "ImageProvider", nil, outPort("frame", "ImageFrame"))
	rig := newComponent(t, r, "Rig", outPort("camFrame", "ImageFrame"))
	_, err := r.DeclareService(t.Context(), rig, "Mount", DeclareServiceOptions{As: "head"})
	require.NoError(t, err)
	_, err = r.DeclareService(t.Context(), rig, "ImageProvider", DeclareServiceOptions{As: "cam", SlaveOf: "head"})
	require.NoError(t, err)

	task := &types.TaskInstance{
		Name:      "rig",
		Type:      rig,
		Arguments: map[string]string{},
	}
	assert.Equal(t, "head.cam", SelectedDataSource(task, "head.cam"))

	model, err := DataSourceType(task, "head.cam")
	require.NoError(t, err)
	assert.Equal(t, "ImageProvider", model.Name)

	_, err = DataSourceType(task, "head.lidar")
	requireErrKind(t, err, errbuilder.CodeInvalidArgument, MsgUnknownService)
}

func TestSelectedDataSourceFollowsArguments(t *testing.T) {
	r := NewRegistry()
	rig := newComponent(t, r, "Rig")
	task := &types.TaskInstance{
		Name: "rig",
		Type: rig,
		Arguments: map[string]string{
			"head_name":     "frontHead",
			"frontHead.cam": "wideCam",
		},
	}
	assert.Equal(t, "frontHead.wideCam", SelectedDataSource(task, "head.cam"))
}
