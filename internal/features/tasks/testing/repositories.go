package tasks_testing

import (
	"fmt"
	"slices"
	"sync"
	"time"

	tasks_models "trailiva-backend/internal/features/tasks/models"

	"github.com/google/uuid"
)

// InMemoryTaskRepository keeps tasks in insertion order, which equals
// creation order.
type InMemoryTaskRepository struct {
	mu    sync.Mutex
	tasks []tasks_models.Task
}

func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{}
}

func (r *InMemoryTaskRepository) CreateTask(task *tasks_models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *InMemoryTaskRepository) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(taskID)
	if i < 0 {
		return nil, nil
	}

	task := r.tasks[i]
	return &task, nil
}

func (r *InMemoryTaskRepository) GetTasksByWorkspaceID(workspaceID uuid.UUID) ([]*tasks_models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []*tasks_models.Task
	for _, task := range r.tasks {
		if task.WorkspaceID == workspaceID {
			tasks = append(tasks, &task)
		}
	}

	return tasks, nil
}

func (r *InMemoryTaskRepository) UpdateTask(task *tasks_models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(task.ID)
	if i < 0 {
		return fmt.Errorf("task %s does not exist", task.ID)
	}

	task.UpdatedAt = time.Now().UTC()
	r.tasks[i] = *task
	return nil
}

func (r *InMemoryTaskRepository) DeleteTask(taskID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = slices.DeleteFunc(r.tasks, func(task tasks_models.Task) bool {
		return task.ID == taskID
	})
	return nil
}

func (r *InMemoryTaskRepository) DeleteTasksByWorkspaceID(workspaceID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = slices.DeleteFunc(r.tasks, func(task tasks_models.Task) bool {
		return task.WorkspaceID == workspaceID
	})
	return nil
}

func (r *InMemoryTaskRepository) indexOf(taskID uuid.UUID) int {
	return slices.IndexFunc(r.tasks, func(task tasks_models.Task) bool {
		return task.ID == taskID
	})
}
