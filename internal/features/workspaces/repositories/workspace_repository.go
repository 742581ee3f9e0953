package workspaces_repositories

import (
	"errors"
	"time"

	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"
	workspaces_models "trailiva-backend/internal/features/workspaces/models"
	"trailiva-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct{}

func (r *WorkspaceRepository) CreateWorkspace(workspace *workspaces_models.Workspace) error {
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}

	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(workspace).Error
}

func (r *WorkspaceRepository) GetWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	return r.first(storage.GetDb().Where("id = ?", workspaceID))
}

func (r *WorkspaceRepository) GetWorkspaceByName(name string) (*workspaces_models.Workspace, error) {
	return r.first(storage.GetDb().Where("LOWER(name) = LOWER(?)", name))
}

func (r *WorkspaceRepository) GetWorkspaceByCreatorAndKind(
	creatorID uuid.UUID,
	kind workspaces_enums.WorkspaceKind,
) (*workspaces_models.Workspace, error) {
	return r.first(storage.GetDb().Where("creator_id = ? AND kind = ?", creatorID, kind))
}

func (r *WorkspaceRepository) GetWorkspacesByKind(
	kind workspaces_enums.WorkspaceKind,
) ([]*workspaces_models.Workspace, error) {
	var workspaces []*workspaces_models.Workspace

	err := storage.GetDb().
		Where("kind = ?", kind).
		Order("created_at DESC").
		Find(&workspaces).Error

	return workspaces, err
}

func (r *WorkspaceRepository) GetWorkspacesByIDs(
	workspaceIDs []uuid.UUID,
) ([]*workspaces_models.Workspace, error) {
	var workspaces []*workspaces_models.Workspace
	if len(workspaceIDs) == 0 {
		return workspaces, nil
	}

	err := storage.GetDb().
		Where("id IN ?", workspaceIDs).
		Order("created_at ASC").
		Find(&workspaces).Error

	return workspaces, err
}

func (r *WorkspaceRepository) GetWorkspacesByCreator(
	creatorID uuid.UUID,
) ([]*workspaces_models.Workspace, error) {
	var workspaces []*workspaces_models.Workspace

	err := storage.GetDb().
		Where("creator_id = ?", creatorID).
		Order("created_at ASC").
		Find(&workspaces).Error

	return workspaces, err
}

func (r *WorkspaceRepository) UpdateWorkspace(workspace *workspaces_models.Workspace) error {
	return storage.GetDb().Save(workspace).Error
}

func (r *WorkspaceRepository) DeleteWorkspace(workspaceID uuid.UUID) error {
	return storage.GetDb().Delete(&workspaces_models.Workspace{}, workspaceID).Error
}

func (r *WorkspaceRepository) first(query *gorm.DB) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := query.First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &workspace, nil
}
