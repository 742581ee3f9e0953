package tasks_models

import (
	"encoding/json"
	"testing"
	"time"

	tasks_enums "trailiva-backend/internal/features/tasks/enums"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TaskList_CopiesOnConstruction(t *testing.T) {
	original := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	dueDate := original
	source := []*Task{{ID: uuid.New(), Name: "T1", Priority: tasks_enums.PriorityHigh, DueDate: &dueDate}}

	list := NewTaskList(source)
	source[0].Name = "changed"
	*source[0].DueDate = original.AddDate(1, 0, 0)

	assert.Equal(t, "T1", list.At(0).Name)
	assert.Equal(t, original, *list.At(0).DueDate)
}

func Test_TaskList_AccessorsReturnCopies(t *testing.T) {
	assigneeID := uuid.New()
	list := NewTaskList([]*Task{{ID: uuid.New(), Name: "T1", AssigneeID: &assigneeID}})

	task := list.At(0)
	task.Name = "changed"
	*task.AssigneeID = uuid.New()

	slice := list.Slice()
	slice[0].Name = "changed too"

	for task := range list.All() {
		task.Name = "changed in loop"
	}

	assert.Equal(t, 1, list.Len())
	assert.Equal(t, "T1", list.At(0).Name)
	assert.Equal(t, assigneeID, *list.At(0).AssigneeID)
}

func Test_TaskList_FilterKeepsOrder(t *testing.T) {
	list := NewTaskList([]*Task{
		{Name: "a", Tab: tasks_enums.TabPending},
		{Name: "b", Tab: tasks_enums.TabCompleted},
		{Name: "c", Tab: tasks_enums.TabPending},
	})

	pending := list.Filter(func(task Task) bool { return task.Tab == tasks_enums.TabPending })

	require.Equal(t, 2, pending.Len())
	assert.Equal(t, "a", pending.At(0).Name)
	assert.Equal(t, "c", pending.At(1).Name)
	assert.Equal(t, 3, list.Len())
}

func Test_TaskList_MarshalsAsArray(t *testing.T) {
	empty, err := json.Marshal(TaskList{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))

	list := NewTaskList([]*Task{{Name: "T1"}})
	body, err := json.Marshal(list)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "T1", decoded[0]["name"])
}
