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

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(
	membership *workspaces_models.WorkspaceMembership,
) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(membership).Error
}

func (r *MembershipRepository) GetMembership(
	workspaceID, userID uuid.UUID,
) (*workspaces_models.WorkspaceMembership, error) {
	var membership workspaces_models.WorkspaceMembership

	if err := storage.GetDb().
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetMemberships(
	workspaceID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, error) {
	var memberships []*workspaces_models.WorkspaceMembership

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC, id ASC").
		Find(&memberships).Error

	return memberships, err
}

func (r *MembershipRepository) GetMembershipsByUser(
	userID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, error) {
	var memberships []*workspaces_models.WorkspaceMembership

	err := storage.GetDb().
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error

	return memberships, err
}

func (r *MembershipRepository) CountByRole(
	workspaceID uuid.UUID,
	role workspaces_enums.MemberRole,
) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&workspaces_models.WorkspaceMembership{}).
		Where("workspace_id = ? AND role = ?", workspaceID, role).
		Count(&count).Error

	return count, err
}

func (r *MembershipRepository) RemoveMembership(
	workspaceID, userID uuid.UUID,
	role workspaces_enums.MemberRole,
) (bool, error) {
	result := storage.GetDb().
		Where("workspace_id = ? AND user_id = ? AND role = ?", workspaceID, userID, role).
		Delete(&workspaces_models.WorkspaceMembership{})

	return result.RowsAffected > 0, result.Error
}

func (r *MembershipRepository) DeleteByWorkspace(workspaceID uuid.UUID) error {
	return storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Delete(&workspaces_models.WorkspaceMembership{}).Error
}
