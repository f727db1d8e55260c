package adapters

import (
	"context"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"robot-models/internal/types"
)

// MemoryPlanAdapter is an in-process plan: an ordered task list with
// handle allocation. It stands in for the host task-execution framework
// so resolution can run end to end.
type MemoryPlanAdapter struct {
	mu    sync.Mutex
	next  types.TaskHandle
	tasks []*types.TaskInstance
}

func NewMemoryPlanAdapter() *MemoryPlanAdapter {
	return &MemoryPlanAdapter{next: 1}
}

func (p *MemoryPlanAdapter) Insert(_ context.Context, task *types.TaskInstance) (types.TaskHandle, error) {
	if task == nil || task.Type == nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plan insert requires a fully constructed task")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	handle := p.next
	p.next++
	p.tasks = append(p.tasks, task)
	return handle, nil
}

// Tasks returns the inserted tasks in insertion order.
func (p *MemoryPlanAdapter) Tasks() []*types.TaskInstance {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*types.TaskInstance(nil), p.tasks...)
}
