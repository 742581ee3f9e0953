package workspaces_interfaces

import (
	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"
	workspaces_models "trailiva-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

type WorkspaceDeletionListener interface {
	OnBeforeWorkspaceDeletion(workspaceID uuid.UUID) error
}

// WorkspaceRepository single-record lookups return (nil, nil) when nothing
// matches.
type WorkspaceRepository interface {
	CreateWorkspace(workspace *workspaces_models.Workspace) error
	GetWorkspaceByID(workspaceID uuid.UUID) (*workspaces_models.Workspace, error)
	GetWorkspaceByName(name string) (*workspaces_models.Workspace, error)
	GetWorkspaceByCreatorAndKind(
		creatorID uuid.UUID,
		kind workspaces_enums.WorkspaceKind,
	) (*workspaces_models.Workspace, error)
	GetWorkspacesByKind(kind workspaces_enums.WorkspaceKind) ([]*workspaces_models.Workspace, error)
	GetWorkspacesByIDs(workspaceIDs []uuid.UUID) ([]*workspaces_models.Workspace, error)
	GetWorkspacesByCreator(creatorID uuid.UUID) ([]*workspaces_models.Workspace, error)
	UpdateWorkspace(workspace *workspaces_models.Workspace) error
	DeleteWorkspace(workspaceID uuid.UUID) error
}

type MembershipRepository interface {
	CreateMembership(membership *workspaces_models.WorkspaceMembership) error
	GetMembership(workspaceID, userID uuid.UUID) (*workspaces_models.WorkspaceMembership, error)

	// GetMemberships returns memberships in join order.
	GetMemberships(workspaceID uuid.UUID) ([]*workspaces_models.WorkspaceMembership, error)
	GetMembershipsByUser(userID uuid.UUID) ([]*workspaces_models.WorkspaceMembership, error)
	CountByRole(workspaceID uuid.UUID, role workspaces_enums.MemberRole) (int64, error)

	// RemoveMembership deletes the membership only when it has the given role
	// and reports whether a row was removed.
	RemoveMembership(workspaceID, userID uuid.UUID, role workspaces_enums.MemberRole) (bool, error)
	DeleteByWorkspace(workspaceID uuid.UUID) error
}
