package projects

import (
	"errors"

	"trailiva-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Save(project *Project) error
	FindByID(id uuid.UUID) (*Project, error)
	FindByWorkspaceAndName(workspaceID uuid.UUID, name string) (*Project, error)
	FindByWorkspaceID(workspaceID uuid.UUID) ([]*Project, error)
	CountByWorkspaceID(workspaceID uuid.UUID) (int64, error)
	Delete(id uuid.UUID) error
	DeleteByWorkspaceID(workspaceID uuid.UUID) error
}

type GormProjectRepository struct{}

func (r *GormProjectRepository) Save(project *Project) error {
	return storage.GetDb().Save(project).Error
}

func (r *GormProjectRepository) FindByID(id uuid.UUID) (*Project, error) {
	var project Project

	if err := storage.GetDb().Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *GormProjectRepository) FindByWorkspaceAndName(
	workspaceID uuid.UUID,
	name string,
) (*Project, error) {
	var project Project

	if err := storage.GetDb().
		Where("workspace_id = ? AND LOWER(name) = LOWER(?)", workspaceID, name).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *GormProjectRepository) FindByWorkspaceID(workspaceID uuid.UUID) ([]*Project, error) {
	var projects []*Project

	if err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("name ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *GormProjectRepository) CountByWorkspaceID(workspaceID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&Project{}).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error

	return count, err
}

func (r *GormProjectRepository) Delete(id uuid.UUID) error {
	return storage.GetDb().Delete(&Project{}, id).Error
}

func (r *GormProjectRepository) DeleteByWorkspaceID(workspaceID uuid.UUID) error {
	return storage.GetDb().Where("workspace_id = ?", workspaceID).Delete(&Project{}).Error
}
