package app

import (
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"robot-models/internal/types"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	name := strings.TrimSpace(req.Component)
	if name == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("component name is required")
	}
	registry, _, err := s.loadRegistry(ctx, req.ModelPaths)
	if err != nil {
		return InspectResult{}, err
	}
	component, err := registry.LookupComponentType(name)
	if err != nil {
		return InspectResult{}, err
	}
	return summarizeComponent(component), nil
}

func summarizeComponent(component *types.ComponentType) InspectResult {
	result := InspectResult{
		Name:     component.Name,
		Abstract: component.Abstract,
	}

	portNames := map[string]types.Port{}
	for current := component; current != nil; current = current.Parent {
		for name, port := range current.Ports {
			if _, ok := portNames[name]; !ok {
				portNames[name] = port
			}
		}
	}
	for _, name := range sortedKeys(portNames) {
		port := portNames[name]
		result.Ports = append(result.Ports, InspectPort{
			Name:      port.Name,
			Type:      port.Type,
			Direction: string(port.Direction),
		})
	}

	services := component.EachService()
	for _, instance := range sortedKeys(services) {
		service := services[instance]
		mapping := make(map[string]string, len(service.PortMapping))
		for abstract, concrete := range service.PortMapping {
			mapping[abstract] = concrete
		}
		result.Services = append(result.Services, InspectService{
			Instance: instance,
			Model:    service.Model.Name,
			Main:     service.Main,
			Mapping:  mapping,
		})
	}
	return result
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
