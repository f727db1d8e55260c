package core

import (
	"context"

	"robot-models/internal/ports"
	"robot-models/internal/types"
)

// ConnectPorts translates abstract service port names on both sides of
// a connection through the bound mappings, then delegates the concrete
// wiring to the component-level connector collaborator. The mappings
// argument is keyed source abstract port -> sink abstract port.
func ConnectPorts(ctx context.Context, connector ports.PortConnectorPort, source *types.BoundService, sink *types.BoundService, mappings map[string]string) error {
	concrete := make(map[string]string, len(mappings))
	for sourceAbstract, sinkAbstract := range mappings {
		sourcePort, ok := source.TranslatePort(sourceAbstract)
		if !ok {
			return errMissingPort(source.Component, source.Model, sourceAbstract, sourceAbstract)
		}
		sinkPort, ok := sink.TranslatePort(sinkAbstract)
		if !ok {
			return errMissingPort(sink.Component, sink.Model, sinkAbstract, sinkAbstract)
		}
		concrete[sourcePort] = sinkPort
	}
	return connector.Connect(ctx, source, sink, concrete)
}
