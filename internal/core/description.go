package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"robot-models/internal/types"
)

// DescriptionCompiler validates model description documents before they
// are loaded into a registry.
type DescriptionCompiler struct{}

func NewDescriptionCompiler() DescriptionCompiler {
	return DescriptionCompiler{}
}

var validPortDirections = map[string]struct{}{
	string(types.PortDirectionInput):  {},
	string(types.PortDirectionOutput): {},
}

func (c DescriptionCompiler) ValidateDescription(ctx context.Context, desc types.Description) error {
	assert.NotEmpty(ctx, desc.APIVersion, "api_version must be set")
	assert.NotEmpty(ctx, string(desc.Kind), "kind must be set")
	assert.NotEmpty(ctx, desc.Metadata.Name, "metadata.name must be set")
	assert.NotEmpty(ctx, desc.Metadata.Version, "metadata.version must be set")
	if desc.Kind != types.DescriptionKindModels {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("description kind must be %s", types.DescriptionKindModels))
	}
	if len(desc.Services) == 0 && len(desc.Components) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("description declares neither services nor components")
	}

	serviceNames := map[string]struct{}{}
	for _, service := range desc.Services {
		if service.Name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("service name must not be empty")
		}
		if _, dup := serviceNames[service.Name]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("service declared twice: %s", service.Name))
		}
		serviceNames[service.Name] = struct{}{}
		if err := validatePorts(service.Name, service.Ports); err != nil {
			return err
		}
	}

	componentNames := map[string]struct{}{}
	for _, component := range desc.Components {
		if component.Name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("component name must not be empty")
		}
		if _, dup := componentNames[component.Name]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("component declared twice: %s", component.Name))
		}
		componentNames[component.Name] = struct{}{}
		if err := validatePorts(component.Name, component.Ports); err != nil {
			return err
		}
		for _, provides := range component.Provides {
			if provides.Service == "" {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("component %s has a provides clause without a service", component.Name))
			}
		}
	}
	log.Ctx(ctx).Debug().Str("description", desc.Metadata.Name).Msg("description validated")
	return nil
}

func validatePorts(owner string, declared []types.PortDescription) error {
	seen := map[string]struct{}{}
	for _, port := range declared {
		if port.Name == "" || port.Type == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s declares a port without name or type", owner))
		}
		if _, ok := validPortDirections[port.Direction]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s port %s has invalid direction %s", owner, port.Name, port.Direction))
		}
		if _, dup := seen[port.Name]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s declares port %s twice", owner, port.Name))
		}
		seen[port.Name] = struct{}{}
	}
	return nil
}

// LoadDescriptions registers every model from the given descriptions:
// all services first (parents before children), then components with
// their provides declarations.
func (r *Registry) LoadDescriptions(ctx context.Context, descs []types.Description) error {
	pending := map[string]types.ServiceDescription{}
	for _, desc := range descs {
		for _, service := range desc.Services {
			pending[service.Name] = service
		}
	}
	models := map[string]*types.ServiceModel{}
	for name, service := range pending {
		models[name] = &types.ServiceModel{Name: name, Ports: portSet(service.Ports)}
	}
	for name, service := range pending {
		if service.Parent == "" {
			continue
		}
		if parent, ok := models[service.Parent]; ok {
			models[name].Parent = parent
			continue
		}
		parent, err := r.LookupServiceType(service.Parent)
		if err != nil {
			return err
		}
		models[name].Parent = parent
	}
	if err := r.registerServiceModels(models); err != nil {
		return err
	}

	for _, desc := range descs {
		for _, component := range desc.Components {
			if err := r.loadComponent(ctx, desc, component); err != nil {
				return err
			}
		}
	}
	log.Ctx(ctx).Debug().
		Int("descriptions", len(descs)).
		Msg("model descriptions loaded")
	return nil
}

// registerServiceModels registers a batch in parent-first order,
// rejecting parent cycles.
func (r *Registry) registerServiceModels(models map[string]*types.ServiceModel) error {
	remaining := len(models)
	done := map[string]struct{}{}
	for remaining > 0 {
		progressed := false
		for name, model := range models {
			if _, ok := done[name]; ok {
				continue
			}
			if model.Parent != nil {
				if _, local := models[model.Parent.Name]; local {
					if _, ok := done[model.Parent.Name]; !ok {
						continue
					}
				}
			}
			if err := r.RegisterServiceType(model); err != nil {
				return err
			}
			done[name] = struct{}{}
			remaining--
			progressed = true
		}
		if !progressed {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("service parent declarations form a cycle")
		}
	}
	return nil
}

func (r *Registry) loadComponent(ctx context.Context, desc types.Description, component types.ComponentDescription) error {
	var parent *types.ComponentType
	if component.Parent != "" {
		registered, err := r.LookupComponentType(component.Parent)
		if err != nil {
			return err
		}
		parent = registered
	}
	registered := &types.ComponentType{
		Name:     component.Name,
		Version:  desc.Metadata.Version,
		Abstract: component.Abstract,
		Parent:   parent,
		Ports:    portSet(component.Ports),
	}
	if err := r.RegisterComponentType(registered); err != nil {
		return err
	}
	for _, provides := range component.Provides {
		opts := DeclareServiceOptions{
			As:           provides.As,
			SlaveOf:      provides.SlaveOf,
			PortMappings: provides.PortMappings,
		}
		if _, err := r.DeclareService(ctx, registered, provides.Service, opts); err != nil {
			return err
		}
	}
	return nil
}

func portSet(declared []types.PortDescription) map[string]types.Port {
	set := make(map[string]types.Port, len(declared))
	for _, port := range declared {
		set[port.Name] = types.Port{
			Name:      port.Name,
			Type:      port.Type,
			Direction: types.PortDirection(port.Direction),
		}
	}
	return set
}
