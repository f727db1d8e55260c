package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"robot-models/internal/shared"
	"robot-models/internal/types"
)

// DeclareServiceOptions controls how a service is attached to a
// component type.
type DeclareServiceOptions struct {
	// Model overrides the registry lookup of the service type name.
	Model *types.ServiceModel

	// As is the service instance name. Leaving it empty declares the
	// component's main service (identity port mapping) under the
	// model's default instance name.
	As string

	// SlaveOf nests the declaration under an already-declared service
	// of the same component; the declaration is keyed by the qualified
	// "master.slave" name and registers no instance argument.
	SlaveOf string

	// PortMappings overrides the computed mapping for the listed
	// abstract port names; unlisted ports keep the default (identity
	// for main services, instance-name prefixed otherwise).
	PortMappings map[string]string
}

// DeclareService attaches a service model to a component type,
// computing and freezing the port mapping. Redeclaring an instance name
// is only allowed when the new model refines (fulfills) the previously
// declared one.
func (r *Registry) DeclareService(ctx context.Context, component *types.ComponentType, serviceTypeName string, opts DeclareServiceOptions) (*types.BoundService, error) {
	model := opts.Model
	if model == nil {
		resolved, err := r.LookupServiceType(serviceTypeName)
		if err != nil {
			return nil, err
		}
		model = resolved
	}

	main := opts.As == "" && opts.SlaveOf == ""
	instanceName := opts.As
	if instanceName == "" {
		instanceName = shared.InstanceName(model.Name)
	}

	key := instanceName
	if opts.SlaveOf != "" {
		if _, ok := component.FindService(opts.SlaveOf); !ok {
			return nil, errUnknownService(component, opts.SlaveOf)
		}
		key = opts.SlaveOf + "." + instanceName
	}

	if existing, ok := component.Services[key]; ok {
		if !r.ServiceFulfills(model, existing.Model) {
			return nil, errDuplicateServiceName(component, key)
		}
	}

	mapping, err := computePortMapping(component, model, instanceName, main, opts.PortMappings)
	if err != nil {
		return nil, err
	}

	service := &types.BoundService{
		Model:        model,
		Component:    component,
		InstanceName: key,
		Main:         main,
		PortMapping:  mapping,
	}
	component.Services[key] = service
	if opts.SlaveOf == "" {
		component.Arguments[instanceName+"_name"] = struct{}{}
	}
	log.Ctx(ctx).Debug().
		Str("component", component.Name).
		Str("service", model.Name).
		Str("as", key).
		Msg("service declared")
	return service, nil
}

// computePortMapping maps every abstract port of the service to a
// concrete port of the component: identity for main services, camel
// prefixed with the instance name otherwise. A mapped name without a
// matching component port is a fatal configuration error.
func computePortMapping(component *types.ComponentType, model *types.ServiceModel, instanceName string, main bool, overrides map[string]string) (map[string]string, error) {
	mapping := make(map[string]string, len(model.Ports))
	for _, ancestor := range model.Ancestry() {
		for abstract, declared := range ancestor.Ports {
			if _, done := mapping[abstract]; done {
				continue
			}
			concrete, overridden := overrides[abstract]
			if !overridden {
				concrete = abstract
				if !main {
					concrete = shared.CamelJoin(instanceName, abstract)
				}
			}
			port, ok := component.FindPort(concrete)
			if !ok {
				return nil, errMissingPort(component, model, abstract, concrete)
			}
			if port.Type != declared.Type || port.Direction != declared.Direction {
				return nil, errMissingPort(component, model, abstract, concrete)
			}
			mapping[abstract] = concrete
		}
	}
	return mapping, nil
}

// SelectedDataSource resolves a dotted slave-service path against a
// task's instance arguments. Each root segment is resolved through its
// "<name>_name" argument, nested segments through the qualified
// "resolved.segment" argument; unset arguments default to the segment
// name itself.
func SelectedDataSource(task *types.TaskInstance, path string) string {
	segments := strings.Split(path, ".")
	resolved := ""
	for i, segment := range segments {
		key := segment + "_name"
		if i > 0 {
			key = resolved + "." + segment
		}
		selected := ""
		if task.Arguments != nil {
			selected = task.Arguments[key]
		}
		if selected == "" {
			selected = segment
		}
		if i == 0 {
			resolved = selected
		} else {
			resolved = resolved + "." + selected
		}
	}
	return resolved
}

// DataSourceType returns the service model selected for a dotted
// slave-service path on a task, resolving the path through the task's
// arguments first.
func DataSourceType(task *types.TaskInstance, path string) (*types.ServiceModel, error) {
	resolved := SelectedDataSource(task, path)
	if service, ok := task.Type.FindService(resolved); ok {
		return service.Model, nil
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s: %s has no data source %s (resolved from %s)",
			MsgUnknownService, task.Type.Name, resolved, path))
}
