package core

import (
	"fmt"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"robot-models/internal/types"
)

// RootComponentTypeName is the name of the universal base type every
// component type implicitly derives from.
const RootComponentTypeName = "component"

// Registry owns the component and service type namespaces, the fulfills
// closure side-tables, and the placeholder-type cache. Registration and
// lookups are model-load-time, single-threaded operations; only the
// placeholder cache is accessed during resolution and is guarded by its
// own mutex (see proxy.go).
type Registry struct {
	components map[string]*types.ComponentType
	services   map[string]*types.ServiceModel

	// serviceClosure maps each registered service model to itself plus
	// all its ancestors, computed once at registration.
	serviceClosure map[*types.ServiceModel][]*types.ServiceModel

	proxyMu sync.Mutex
	proxies map[string]*types.ComponentType

	root *types.ComponentType
}

func NewRegistry() *Registry {
	registry := &Registry{}
	registry.reset()
	return registry
}

func (r *Registry) reset() {
	r.components = map[string]*types.ComponentType{}
	r.services = map[string]*types.ServiceModel{}
	r.serviceClosure = map[*types.ServiceModel][]*types.ServiceModel{}
	r.root = &types.ComponentType{
		Name:      RootComponentTypeName,
		Abstract:  true,
		Ports:     map[string]types.Port{},
		Services:  map[string]*types.BoundService{},
		Arguments: map[string]struct{}{},
	}
	r.components[r.root.Name] = r.root

	r.proxyMu.Lock()
	r.proxies = map[string]*types.ComponentType{}
	r.proxyMu.Unlock()
}

// Clear drops every registered type and invalidates the placeholder
// cache. Called when model descriptions are reloaded; placeholder
// identity is only stable within one registry generation.
func (r *Registry) Clear() {
	r.reset()
}

// RootType returns the universal base component type.
func (r *Registry) RootType() *types.ComponentType {
	return r.root
}

// RegisterComponentType adds a component type to the registry. The
// parent, if set, must already be registered.
func (r *Registry) RegisterComponentType(component *types.ComponentType) error {
	if component.Name == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("component type name must not be empty")
	}
	if _, exists := r.components[component.Name]; exists {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("component type already registered: %s", component.Name))
	}
	if component.Parent == nil {
		component.Parent = r.root
	} else if registered, ok := r.components[component.Parent.Name]; !ok || registered != component.Parent {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("parent component type not registered: %s", component.Parent.Name))
	}
	if component.Ports == nil {
		component.Ports = map[string]types.Port{}
	}
	if component.Services == nil {
		component.Services = map[string]*types.BoundService{}
	}
	if component.Arguments == nil {
		component.Arguments = map[string]struct{}{}
	}
	r.components[component.Name] = component
	return nil
}

// RegisterServiceType adds a service model to the registry and computes
// its ancestry closure. The parent, if set, must already be registered.
func (r *Registry) RegisterServiceType(service *types.ServiceModel) error {
	if service.Name == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("service model name must not be empty")
	}
	if _, exists := r.services[service.Name]; exists {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("service model already registered: %s", service.Name))
	}
	if service.Parent != nil {
		if registered, ok := r.services[service.Parent.Name]; !ok || registered != service.Parent {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("parent service model not registered: %s", service.Parent.Name))
		}
	}
	if service.Ports == nil {
		service.Ports = map[string]types.Port{}
	}
	closure := []*types.ServiceModel{service}
	if service.Parent != nil {
		closure = append(closure, r.serviceClosure[service.Parent]...)
	}
	r.services[service.Name] = service
	r.serviceClosure[service] = closure
	return nil
}

// LookupComponentType resolves a component type by name.
func (r *Registry) LookupComponentType(name string) (*types.ComponentType, error) {
	if component, ok := r.components[name]; ok {
		return component, nil
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("unknown component type: %s", name))
}

// LookupServiceType resolves a service model by name.
func (r *Registry) LookupServiceType(name string) (*types.ServiceModel, error) {
	if service, ok := r.services[name]; ok {
		return service, nil
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("unknown service type: %s", name))
}
