package core

import (
	"sort"

	"robot-models/internal/types"
)

// ServiceFulfills reports whether a service model satisfies a required
// one: identity or specialization, via the closure table computed at
// registration.
func (r *Registry) ServiceFulfills(model *types.ServiceModel, required *types.ServiceModel) bool {
	if model == nil || required == nil {
		return false
	}
	if closure, ok := r.serviceClosure[model]; ok {
		for _, ancestor := range closure {
			if ancestor == required {
				return true
			}
		}
		return false
	}
	// Unregistered models fall back to a parent-chain walk.
	for _, ancestor := range model.Ancestry() {
		if ancestor == required {
			return true
		}
	}
	return false
}

// ComponentFulfills reports whether a component type satisfies a
// required component type through its ancestry. Every type fulfills the
// registry root.
func (r *Registry) ComponentFulfills(component *types.ComponentType, required *types.ComponentType) bool {
	if component == nil || required == nil {
		return false
	}
	if required == r.root {
		return true
	}
	for current := component; current != nil; current = current.Parent {
		if current == required {
			return true
		}
	}
	return false
}

// ProvidesService reports whether a component type declares, directly
// or through an ancestor, a service fulfilling the required model.
func (r *Registry) ProvidesService(component *types.ComponentType, required *types.ServiceModel) bool {
	return len(r.FindMatchingServices(component, required)) > 0
}

// FindMatchingServices returns every service declared on the component
// type (ancestors included) whose model fulfills the required one,
// ordered by instance name for deterministic selection.
func (r *Registry) FindMatchingServices(component *types.ComponentType, required *types.ServiceModel) []*types.BoundService {
	if component == nil || required == nil {
		return nil
	}
	visible := component.EachService()
	var names []string
	for name, service := range visible {
		if r.ServiceFulfills(service.Model, required) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	matches := make([]*types.BoundService, 0, len(names))
	for _, name := range names {
		matches = append(matches, visible[name])
	}
	return matches
}

// Fulfills reports whether a selection satisfies every model in the
// given set: component requirements through ancestry, service
// requirements through declared provisions.
func (r *Registry) Fulfills(selected types.Selection, models []types.Model) bool {
	component, err := r.selectionComponentType(selected)
	if err != nil || component == nil {
		return false
	}
	for _, model := range models {
		switch required := model.(type) {
		case *types.ComponentType:
			if !r.ComponentFulfills(component, required) {
				return false
			}
		case *types.ServiceModel:
			if selected.Kind == types.SelectionKindService {
				if r.ServiceFulfills(selected.Service.Model, required) {
					continue
				}
			}
			if !r.ProvidesService(component, required) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
