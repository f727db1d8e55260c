package core

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"robot-models/internal/ports"
	"robot-models/internal/shared"
	"robot-models/internal/types"
)

// ServiceSelection maps each required service model to the bound
// service chosen to satisfy it.
type ServiceSelection map[*types.ServiceModel]*types.BoundService

// Dup returns an independent copy of the table.
func (s ServiceSelection) Dup() ServiceSelection {
	duplicate := make(ServiceSelection, len(s))
	for required, selected := range s {
		duplicate[required] = selected
	}
	return duplicate
}

// sortedRequired returns the table's keys ordered by model name so that
// iteration over the table is deterministic.
func (s ServiceSelection) sortedRequired() []*types.ServiceModel {
	keys := make([]*types.ServiceModel, 0, len(s))
	for required := range s {
		keys = append(keys, required)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	return keys
}

// InstanceSelection is the outcome of mapping a requirement onto a
// selected component: the narrowed selection, the service-selection
// table, and the lazily merged port mappings.
type InstanceSelection struct {
	registry *Registry

	// Component is a pre-existing concrete instance, when one was
	// supplied; Instanciate then only attaches a service view to it.
	Component *types.TaskInstance

	Selected types.Selection
	Required types.Requirement

	// Services is the service-selection table. Replaced wholesale,
	// never mutated after construction.
	Services ServiceSelection

	// Components records required component type -> selected component
	// type (the registry root stands in when the requirement named
	// none).
	Components map[*types.ComponentType]*types.ComponentType

	portMappings map[string]string
}

// NewInstanceSelection resolves a requirement against a selection,
// building the full service-selection table. The requirement and the
// hint table are only read or duplicated, never mutated.
func (r *Registry) NewInstanceSelection(ctx context.Context, component *types.TaskInstance, selected types.Selection, required types.Requirement, hints ServiceSelection) (*InstanceSelection, error) {
	selection := &InstanceSelection{
		registry:  r,
		Component: component,
		Required:  required.Dup(),
	}

	narrowed, err := r.autoSelectService(selected, required, hints)
	if err != nil {
		return nil, err
	}
	selection.Selected = narrowed

	if err := selection.computeServiceSelection(hints); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().
		Int("services", len(selection.Services)).
		Msg("instance selection resolved")
	return selection, nil
}

// autoSelectService narrows a component selection down to one of its
// bound services when the requirement names exactly one service. With
// zero or several required services the selection is used unchanged
// (duplicated, not mutated).
func (r *Registry) autoSelectService(selected types.Selection, required types.Requirement, hints ServiceSelection) (types.Selection, error) {
	narrowed := selected.Dup()
	if narrowed.Kind == types.SelectionKindService {
		return narrowed, nil
	}
	if len(required.Services) != 1 {
		return narrowed, nil
	}
	component, err := r.selectionComponentType(narrowed)
	if err != nil {
		return types.Selection{}, err
	}
	requiredService := required.Services[0]

	if bound := findServiceByModelName(component, requiredService.Name); bound != nil {
		return types.SelectService(bound), nil
	}
	if hinted, ok := hints[requiredService]; ok {
		if r.ComponentFulfills(component, hinted.Component) {
			reattached, err := r.reattach(hinted, component, requiredService)
			if err != nil {
				return types.Selection{}, err
			}
			return types.SelectService(reattached), nil
		}
	}
	matches := r.FindMatchingServices(component, requiredService)
	switch len(matches) {
	case 0:
		// Left for computeServiceSelection to report.
		return narrowed, nil
	case 1:
		return types.SelectService(matches[0]), nil
	default:
		var names []string
		for _, match := range matches {
			names = append(names, match.InstanceName)
		}
		return types.Selection{}, errAmbiguousServiceSelection(component, requiredService, names)
	}
}

// computeServiceSelection builds the service-selection table from the
// hints, the narrowed selection, and the requirement. Hints must pass
// two independent checks: their owner must be compatible with the
// selected component type, and their model must fulfill the required
// service.
func (s *InstanceSelection) computeServiceSelection(hints ServiceSelection) error {
	registry := s.registry
	table := hints.Dup()

	if s.Selected.Kind == types.SelectionKindService {
		table[s.Selected.Service.Model] = s.Selected.Service
	}

	selectedType, err := registry.selectionComponentType(s.Selected)
	if err != nil {
		return err
	}
	requiredType := s.Required.Component
	if requiredType == nil {
		requiredType = registry.root
	}
	s.Components = map[*types.ComponentType]*types.ComponentType{requiredType: selectedType}

	requiredServices := append([]*types.ServiceModel(nil), s.Required.Services...)
	sort.Slice(requiredServices, func(i, j int) bool {
		return requiredServices[i].Name < requiredServices[j].Name
	})
	for _, requiredService := range requiredServices {
		if hinted, ok := table[requiredService]; ok {
			if !registry.ComponentFulfills(selectedType, hinted.Component) {
				return errIncompatibleServiceSelection(hinted, requiredService, selectedType)
			}
			if !registry.ServiceFulfills(hinted.Model, requiredService) {
				return errIncompatibleServiceSelection(hinted, requiredService, selectedType)
			}
			reattached, err := registry.reattach(hinted, selectedType, requiredService)
			if err != nil {
				return err
			}
			table[requiredService] = reattached
			continue
		}
		matches := registry.FindMatchingServices(selectedType, requiredService)
		switch len(matches) {
		case 0:
			return errUnknownService(selectedType, requiredService.Name)
		case 1:
			table[requiredService] = matches[0]
		default:
			var names []string
			for _, match := range matches {
				names = append(names, match.InstanceName)
			}
			return errAmbiguousServiceSelection(selectedType, requiredService, names)
		}
	}
	s.Services = table
	return nil
}

// reattach rebinds a service selection to the actually selected
// component type. Port mappings are declaration-relative, so the
// declaration is looked up again under the selected type (which may be
// a subtype of the one the hint was recorded against).
func (r *Registry) reattach(service *types.BoundService, component *types.ComponentType, required *types.ServiceModel) (*types.BoundService, error) {
	if service.Component == component {
		return service, nil
	}
	declared, ok := component.FindService(service.InstanceName)
	if !ok {
		return nil, errIncompatibleServiceSelection(service, required, component)
	}
	rebound := declared.Dup()
	rebound.Component = component
	return rebound, nil
}

// selectionComponentType materializes the component type a selection
// resolves to; deferred selections are materialized through the
// placeholder builder.
func (r *Registry) selectionComponentType(selected types.Selection) (*types.ComponentType, error) {
	switch selected.Kind {
	case types.SelectionKindComponent:
		if selected.Component == nil {
			return r.root, nil
		}
		return selected.Component, nil
	case types.SelectionKindService:
		return selected.Service.Component, nil
	case types.SelectionKindDeferred:
		models := []types.Model{}
		if selected.Deferred.Component != nil {
			models = append(models, selected.Deferred.Component)
		}
		for _, service := range selected.Deferred.Services {
			models = append(models, service)
		}
		return r.ProxyTypeFor(context.Background(), models)
	}
	return r.root, nil
}

// findServiceByModelName finds the service declared under exactly the
// given model name, as opposed to the subtyping-aware matching of
// FindMatchingServices. Several declarations of the same model leave
// the choice to the later matching stages.
func findServiceByModelName(component *types.ComponentType, modelName string) *types.BoundService {
	visible := component.EachService()
	var found *types.BoundService
	for _, service := range visible {
		if service.Model.Name != modelName {
			continue
		}
		if found != nil {
			return nil
		}
		found = service
	}
	return found
}

// PortMappings merges the per-service port mappings of the selection
// table into a single table keyed by abstract port name. Computed once
// and cached on the selection.
//
// Two services mapping the same abstract name to different concrete
// ports is tolerated (the name is simply left out of the merged table)
// unless a further required service also claims that name, in which
// case the situation is genuinely ambiguous. Collisions that appear
// only after prefix-mapping are deliberately not detected; this is a
// known looseness of the contract.
func (s *InstanceSelection) PortMappings() (map[string]string, error) {
	if s.portMappings != nil {
		return s.portMappings, nil
	}

	type claim struct {
		service *types.ServiceModel
		target  string
	}
	claims := map[string][]claim{}
	var order []string

	for _, required := range s.Services.sortedRequired() {
		selected := s.Services[required]
		portNames := make([]string, 0, len(required.Ports))
		for name := range required.Ports {
			portNames = append(portNames, name)
		}
		sort.Strings(portNames)
		for _, name := range portNames {
			target, ok := selected.TranslatePort(name)
			if !ok {
				return nil, errMissingPort(selected.Component, required, name, name)
			}
			if _, seen := claims[name]; !seen {
				order = append(order, name)
			}
			claims[name] = append(claims[name], claim{service: required, target: target})
		}
	}

	merged := map[string]string{}
	for _, name := range order {
		entries := claims[name]
		targets := map[string]struct{}{}
		for _, entry := range entries {
			targets[entry.target] = struct{}{}
		}
		if len(targets) == 1 {
			merged[name] = entries[0].target
			continue
		}
		first, second := entries[0], entries[1]
		for _, entry := range entries[1:] {
			if entry.target != first.target {
				second = entry
				break
			}
		}
		if len(entries) > 2 {
			return nil, errAmbiguousPortMappings(first.service, second.service, name)
		}
		// Two-way disagreement with no further claimant: each side
		// keeps its own mapping, the merged table omits the name.
	}
	s.portMappings = merged
	return merged, nil
}

// Instanciate produces the concrete task for this selection. With a
// pre-existing component the call only attaches the selected service
// view; otherwise a new task is fully constructed and handed to the
// plan in a single insert.
func (s *InstanceSelection) Instanciate(ctx context.Context, plan ports.PlanPort, injection any, name string) (*types.TaskInstance, error) {
	if s.Component != nil {
		s.attachSelectedService(s.Component)
		return s.Component, nil
	}

	componentType, err := s.registry.selectionComponentType(s.Selected)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = shared.InstanceName(componentType.Name)
	}
	task := &types.TaskInstance{
		Name:      name,
		Type:      componentType,
		Arguments: map[string]string{},
		Services:  map[string]*types.BoundService{},
		Injection: injection,
	}
	s.attachSelectedService(task)

	handle, err := plan.Insert(ctx, task)
	if err != nil {
		return nil, err
	}
	task.Handle = handle
	log.Ctx(ctx).Debug().
		Str("task", task.Name).
		Str("type", componentType.Name).
		Msg("task instantiated")
	return task, nil
}

func (s *InstanceSelection) attachSelectedService(task *types.TaskInstance) {
	if s.Selected.Kind != types.SelectionKindService {
		return
	}
	service := s.Selected.Service.AttachTo(task)
	if task.Services == nil {
		task.Services = map[string]*types.BoundService{}
	}
	task.Services[service.InstanceName] = service
}

// Fulfills delegates to the selected side of the resolution.
func (s *InstanceSelection) Fulfills(models []types.Model) bool {
	return s.registry.Fulfills(s.Selected, models)
}

// EachFulfilledModel delegates to the required side of the resolution.
func (s *InstanceSelection) EachFulfilledModel() []types.Model {
	return s.Required.EachFulfilledModel()
}

// Dup deep-copies the selection so narrowing a copy never perturbs the
// original.
func (s *InstanceSelection) Dup() *InstanceSelection {
	duplicate := &InstanceSelection{
		registry:  s.registry,
		Component: s.Component,
		Selected:  s.Selected.Dup(),
		Required:  s.Required.Dup(),
		Services:  s.Services.Dup(),
	}
	duplicate.Components = make(map[*types.ComponentType]*types.ComponentType, len(s.Components))
	for required, selected := range s.Components {
		duplicate.Components[required] = selected
	}
	return duplicate
}
