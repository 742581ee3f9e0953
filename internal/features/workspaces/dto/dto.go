package workspaces_dto

import (
	"time"

	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"
	workspaces_models "trailiva-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

type CreateWorkspaceRequestDTO struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

type UpdateWorkspaceRequestDTO struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

type WorkspaceResponseDTO struct {
	ID            uuid.UUID                      `json:"id"`
	Name          string                         `json:"name"`
	ReferenceName string                         `json:"referenceName"`
	Kind          workspaces_enums.WorkspaceKind `json:"kind"`
	CreatorID     uuid.UUID                      `json:"creatorId"`
	CreatedAt     time.Time                      `json:"createdAt"`

	// populated when listing the workspaces of a specific user
	IsCreator  bool                         `json:"isCreator"`
	MemberRole *workspaces_enums.MemberRole `json:"memberRole,omitempty"`
}

type ListWorkspacesResponseDTO struct {
	Workspaces []WorkspaceResponseDTO `json:"workspaces"`
}

type AddMemberRequestDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type WorkspaceMemberResponseDTO struct {
	UserID   uuid.UUID                   `json:"userId"`
	Email    string                      `json:"email"`
	Name     string                      `json:"name"`
	Role     workspaces_enums.MemberRole `json:"role,omitempty"`
	JoinedAt time.Time                   `json:"joinedAt"`
}

type GetMembersResponseDTO struct {
	Creator      WorkspaceMemberResponseDTO   `json:"creator"`
	Contributors []WorkspaceMemberResponseDTO `json:"contributors"`
	Moderators   []WorkspaceMemberResponseDTO `json:"moderators"`
}

func ToWorkspaceResponseDTO(workspace *workspaces_models.Workspace) WorkspaceResponseDTO {
	return WorkspaceResponseDTO{
		ID:            workspace.ID,
		Name:          workspace.Name,
		ReferenceName: workspace.ReferenceName,
		Kind:          workspace.Kind,
		CreatorID:     workspace.CreatorID,
		CreatedAt:     workspace.CreatedAt,
	}
}
