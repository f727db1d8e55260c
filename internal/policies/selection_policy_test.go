package policies

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robot-models/internal/types"
)

func TestParseDirective(t *testing.T) {
	directive, err := ParseDirective("ImageProvider=left")
	require.NoError(t, err)
	assert.Equal(t, SelectionDirective{Service: "ImageProvider", Instance: "left"}, directive)

	directive, err = ParseDirective("  ImageProvider = left ")
	require.NoError(t, err)
	assert.Equal(t, SelectionDirective{Service: "ImageProvider", Instance: "left"}, directive)
}

func TestParseDirectiveRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "ImageProvider", "ImageProvider=", "=left"} {
		_, err := ParseDirective(raw)
		require.Error(t, err, "directive %q must be rejected", raw)
		assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	}
}

func TestApplyDirective(t *testing.T) {
	model := &types.ServiceModel{Name: "ImageProvider", Ports: map[string]types.Port{}}
	component := &types.ComponentType{
		Name: "Rig",
		Services: map[string]*types.BoundService{
			"left": {Model: model, InstanceName: "left"},
		},
	}

	bound, err := ApplyDirective(component, SelectionDirective{Service: "ImageProvider", Instance: "left"})
	require.NoError(t, err)
	assert.Equal(t, "left", bound.InstanceName)

	_, err = ApplyDirective(component, SelectionDirective{Service: "ImageProvider", Instance: "right"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
