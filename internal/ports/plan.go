package ports

import (
	"context"

	"robot-models/internal/types"
)

// PlanPort is the slice of the host task-execution framework the core
// needs: a single atomic insert. The core never removes or queries
// unrelated plan contents.
type PlanPort interface {
	Insert(ctx context.Context, task *types.TaskInstance) (types.TaskHandle, error)
}

// PortConnectorPort is the component-level port-connection primitive
// owned by the host framework; the core only translates abstract names
// before delegating.
type PortConnectorPort interface {
	Connect(ctx context.Context, source *types.BoundService, sink *types.BoundService, concrete map[string]string) error
}
