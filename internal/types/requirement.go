package types

// Requirement is the abstract "what is needed" side of resolution: at
// most one component type plus any number of service models that must
// all be satisfied by the same selection. The resolver only ever reads
// or duplicates a requirement.
type Requirement struct {
	Component *ComponentType
	Services  []*ServiceModel
}

// Dup returns a requirement whose service list can be mutated without
// perturbing the receiver.
func (r Requirement) Dup() Requirement {
	services := make([]*ServiceModel, len(r.Services))
	copy(services, r.Services)
	return Requirement{Component: r.Component, Services: services}
}

// EachFulfilledModel lists the models the requirement stands for: the
// component type, if named, followed by the required services.
func (r Requirement) EachFulfilledModel() []Model {
	var models []Model
	if r.Component != nil {
		models = append(models, r.Component)
	}
	for _, service := range r.Services {
		models = append(models, service)
	}
	return models
}

// Selection is the "what was chosen" side of resolution: a concrete
// component type, a bound service, or a still-unresolved nested
// requirement. Tagged union; exactly the field matching Kind is set.
type Selection struct {
	Kind      SelectionKind
	Component *ComponentType
	Service   *BoundService
	Deferred  *Requirement
}

func SelectComponent(component *ComponentType) Selection {
	return Selection{Kind: SelectionKindComponent, Component: component}
}

func SelectService(service *BoundService) Selection {
	return Selection{Kind: SelectionKindService, Service: service}
}

func SelectDeferred(required Requirement) Selection {
	deferred := required.Dup()
	return Selection{Kind: SelectionKindDeferred, Deferred: &deferred}
}

// ComponentType returns the component type the selection points at, or
// nil when it cannot be determined without synthesis (deferred
// selections are materialized by the registry, not here).
func (s Selection) ComponentType() *ComponentType {
	switch s.Kind {
	case SelectionKindComponent:
		return s.Component
	case SelectionKindService:
		if s.Service == nil {
			return nil
		}
		return s.Service.Component
	case SelectionKindDeferred:
		if s.Deferred == nil {
			return nil
		}
		return s.Deferred.Component
	}
	return nil
}

// Dup deep-copies the selection so the copy can be narrowed without
// touching the original.
func (s Selection) Dup() Selection {
	duplicate := Selection{Kind: s.Kind, Component: s.Component}
	if s.Service != nil {
		duplicate.Service = s.Service.Dup()
	}
	if s.Deferred != nil {
		deferred := s.Deferred.Dup()
		duplicate.Deferred = &deferred
	}
	return duplicate
}
