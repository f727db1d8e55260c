package types

// Model is either a *ComponentType or a *ServiceModel. The resolver and
// the placeholder builder accept mixed lists of both.
type Model interface {
	ModelName() string
}

// Port is a typed named endpoint declared on a component type or a
// service model. It is a pure value object; equality is field equality.
type Port struct {
	Name      string
	Type      string
	Direction PortDirection
}

// ComponentType identifies a concrete or abstract component kind.
// Instances are registry-owned; identity (pointer) equality is
// meaningful and relied upon by the placeholder cache.
type ComponentType struct {
	Name     string
	Version  string
	Abstract bool
	Parent   *ComponentType

	// Ports declared on this type itself. Ports of ancestors are
	// reachable through FindPort.
	Ports map[string]Port

	// Services maps instance names (qualified "master.slave" names for
	// slave services) to the bound service declared under that name.
	Services map[string]*BoundService

	// Arguments is the set of per-instance configuration argument
	// names declared on this type.
	Arguments map[string]struct{}

	// ProxiedServices is only set on synthesized placeholder types: the
	// exact service set the placeholder stands in for, sorted by name.
	// Immutable after creation.
	ProxiedServices []*ServiceModel
}

func (c *ComponentType) ModelName() string { return c.Name }

// FindPort looks a concrete port up on this type or any ancestor.
func (c *ComponentType) FindPort(name string) (Port, bool) {
	for current := c; current != nil; current = current.Parent {
		if port, ok := current.Ports[name]; ok {
			return port, true
		}
	}
	return Port{}, false
}

// FindService looks a declared service up by instance name on this type
// or any ancestor. Declarations on subtypes shadow same-named ones on
// their ancestors.
func (c *ComponentType) FindService(instanceName string) (*BoundService, bool) {
	for current := c; current != nil; current = current.Parent {
		if service, ok := current.Services[instanceName]; ok {
			return service, true
		}
	}
	return nil, false
}

// EachService yields every declared service visible on this type,
// ancestor declarations included, with subtype declarations shadowing.
func (c *ComponentType) EachService() map[string]*BoundService {
	visible := map[string]*BoundService{}
	chain := []*ComponentType{}
	for current := c; current != nil; current = current.Parent {
		chain = append(chain, current)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for name, service := range chain[i].Services {
			visible[name] = service
		}
	}
	return visible
}

// ServiceModel identifies an abstract interface a component type can
// provide. A service may specialize a parent service.
type ServiceModel struct {
	Name   string
	Parent *ServiceModel
	Ports  map[string]Port
}

func (m *ServiceModel) ModelName() string { return m.Name }

// Ancestry returns the model followed by its parents, most derived
// first.
func (m *ServiceModel) Ancestry() []*ServiceModel {
	var chain []*ServiceModel
	for current := m; current != nil; current = current.Parent {
		chain = append(chain, current)
	}
	return chain
}
