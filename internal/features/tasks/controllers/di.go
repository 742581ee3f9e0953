package tasks_controllers

import (
	"sync"

	tasks_services "trailiva-backend/internal/features/tasks/services"
)

var (
	taskController *TaskController
	controllerOnce sync.Once
)

func GetTaskController() *TaskController {
	controllerOnce.Do(func() {
		taskController = NewTaskController(tasks_services.GetTaskService())
	})

	return taskController
}
