package types

// BoundService is a service model attached to one component type (or,
// after instantiation, to a task instance) together with the port
// mapping computed at declaration time.
type BoundService struct {
	Model     *ServiceModel
	Component *ComponentType

	// Task is set when the service is viewed on a live instance rather
	// than on the bare type.
	Task *TaskInstance

	// InstanceName is the declaration name; slave services carry the
	// qualified "master.slave" form.
	InstanceName string

	// Main marks the service declared without an explicit instance
	// name; its port mapping is the identity.
	Main bool

	// PortMapping maps the service model's abstract port names to the
	// component's concrete port names. Frozen at declaration.
	PortMapping map[string]string
}

// Equal reports structural equality: same model on the same owner. For
// instance-bound services the owner is the task, otherwise the type.
func (b *BoundService) Equal(other *BoundService) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Model != other.Model {
		return false
	}
	if b.Task != nil || other.Task != nil {
		return b.Task == other.Task
	}
	return b.Component == other.Component
}

// As returns a new bound service presenting the same attachment under a
// different service model view. The receiver is not mutated; the port
// mapping is restricted to the view's port names.
func (b *BoundService) As(model *ServiceModel) *BoundService {
	narrowed := &BoundService{
		Model:        model,
		Component:    b.Component,
		Task:         b.Task,
		InstanceName: b.InstanceName,
		Main:         b.Main,
		PortMapping:  map[string]string{},
	}
	for name := range model.Ports {
		if target, ok := b.PortMapping[name]; ok {
			narrowed.PortMapping[name] = target
		}
	}
	return narrowed
}

// TranslatePort resolves an abstract port name through the bound
// mapping.
func (b *BoundService) TranslatePort(abstract string) (string, bool) {
	target, ok := b.PortMapping[abstract]
	return target, ok
}

// Dup returns a copy with an independent port mapping.
func (b *BoundService) Dup() *BoundService {
	if b == nil {
		return nil
	}
	mapping := make(map[string]string, len(b.PortMapping))
	for name, target := range b.PortMapping {
		mapping[name] = target
	}
	duplicate := *b
	duplicate.PortMapping = mapping
	return &duplicate
}

// AttachTo returns a view of the service bound to a live task instance.
func (b *BoundService) AttachTo(task *TaskInstance) *BoundService {
	attached := b.Dup()
	attached.Task = task
	return attached
}

// TaskHandle is the opaque identifier the plan collaborator assigns to
// an inserted task.
type TaskHandle int

// TaskInstance is a concrete task created from a component type. The
// core only builds these and hands them to the plan; scheduling and
// lifecycle belong to the host framework.
type TaskInstance struct {
	Name      string
	Type      *ComponentType
	Handle    TaskHandle
	Arguments map[string]string
	Services  map[string]*BoundService

	// Injection is the dependency-injection context threaded through
	// instantiation. The core never interprets it.
	Injection any
}
