package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"robot-models/internal/types"
)

func outPort(name string, portType string) types.Port {
	return types.Port{Name: name, Type: portType, Direction: types.PortDirectionOutput}
}

func newService(t *testing.T, r *Registry, name string, parent *types.ServiceModel, ports ...types.Port) *types.ServiceModel {
	t.Helper()
	model := &types.ServiceModel{Name: name, Parent: parent, Ports: map[string]types.Port{}}
	for _, port := range ports {
		model.Ports[port.Name] = port
	}
	require.NoError(t, r.RegisterServiceType(model))
	return model
}

func newComponent(t *testing.T, r *Registry, name string, ports ...types.Port) *types.ComponentType {
	t.Helper()
	component := &types.ComponentType{Name: name, Ports: map[string]types.Port{}}
	for _, port := range ports {
		component.Ports[port.Name] = port
	}
	require.NoError(t, r.RegisterComponentType(component))
	return component
}

func requireErrKind(t *testing.T, err error, code errbuilder.ErrCode, prefix string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, errbuilder.CodeOf(err))
	var builder *errbuilder.ErrBuilder
	require.True(t, errors.As(err, &builder))
	require.True(t, strings.HasPrefix(builder.Msg, prefix),
		"expected message %q to start with %q", builder.Msg, prefix)
}
