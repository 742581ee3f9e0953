package tasks_repositories

import (
	"errors"

	tasks_models "trailiva-backend/internal/features/tasks/models"
	"trailiva-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct{}

func (r *TaskRepository) CreateTask(task *tasks_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	return storage.GetDb().Create(task).Error
}

func (r *TaskRepository) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	if err := storage.GetDb().Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) GetTasksByWorkspaceID(workspaceID uuid.UUID) ([]*tasks_models.Task, error) {
	var tasks []*tasks_models.Task

	if err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepository) UpdateTask(task *tasks_models.Task) error {
	return storage.GetDb().Save(task).Error
}

func (r *TaskRepository) DeleteTask(taskID uuid.UUID) error {
	return storage.GetDb().Delete(&tasks_models.Task{}, taskID).Error
}

func (r *TaskRepository) DeleteTasksByWorkspaceID(workspaceID uuid.UUID) error {
	return storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Delete(&tasks_models.Task{}).Error
}
