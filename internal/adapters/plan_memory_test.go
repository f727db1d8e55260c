package adapters

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robot-models/internal/types"
)

func TestMemoryPlanInsertAllocatesHandles(t *testing.T) {
	plan := NewMemoryPlanAdapter()
	component := &types.ComponentType{Name: "Camera"}

	first, err := plan.Insert(t.Context(), &types.TaskInstance{Name: "cam0", Type: component})
	require.NoError(t, err)
	second, err := plan.Insert(t.Context(), &types.TaskInstance{Name: "cam1", Type: component})
	require.NoError(t, err)

	assert.Equal(t, types.TaskHandle(1), first)
	assert.Equal(t, types.TaskHandle(2), second)

	tasks := plan.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "cam0", tasks[0].Name)
	assert.Equal(t, "cam1", tasks[1].Name)
}

func TestMemoryPlanRejectsIncompleteTasks(t *testing.T) {
	plan := NewMemoryPlanAdapter()

	_, err := plan.Insert(t.Context(), nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = plan.Insert(t.Context(), &types.TaskInstance{Name: "untyped"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Empty(t, plan.Tasks())
}

func TestMemoryPlanTasksReturnsCopy(t *testing.T) {
	plan := NewMemoryPlanAdapter()
	component := &types.ComponentType{Name: "Camera"}
	_, err := plan.Insert(t.Context(), &types.TaskInstance{Name: "cam0", Type: component})
	require.NoError(t, err)

	tasks := plan.Tasks()
	tasks[0] = nil
	require.NotNil(t, plan.Tasks()[0])
}
