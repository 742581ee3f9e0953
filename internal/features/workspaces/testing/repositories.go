package workspaces_testing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"
	workspaces_models "trailiva-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

type InMemoryWorkspaceRepository struct {
	mu         sync.Mutex
	workspaces map[uuid.UUID]workspaces_models.Workspace
}

func NewInMemoryWorkspaceRepository() *InMemoryWorkspaceRepository {
	return &InMemoryWorkspaceRepository{workspaces: map[uuid.UUID]workspaces_models.Workspace{}}
}

func (r *InMemoryWorkspaceRepository) CreateWorkspace(workspace *workspaces_models.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.workspaces {
		if strings.EqualFold(existing.Name, workspace.Name) {
			return fmt.Errorf("duplicate workspace name %s", workspace.Name)
		}
	}

	r.workspaces[workspace.ID] = *workspace
	return nil
}

func (r *InMemoryWorkspaceRepository) GetWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	workspace, ok := r.workspaces[workspaceID]
	if !ok {
		return nil, nil
	}

	return &workspace, nil
}

func (r *InMemoryWorkspaceRepository) GetWorkspaceByName(name string) (*workspaces_models.Workspace, error) {
	return r.find(func(w workspaces_models.Workspace) bool {
		return strings.EqualFold(w.Name, name)
	}), nil
}

func (r *InMemoryWorkspaceRepository) GetWorkspaceByCreatorAndKind(
	creatorID uuid.UUID,
	kind workspaces_enums.WorkspaceKind,
) (*workspaces_models.Workspace, error) {
	return r.find(func(w workspaces_models.Workspace) bool {
		return w.CreatorID == creatorID && w.Kind == kind
	}), nil
}

func (r *InMemoryWorkspaceRepository) GetWorkspacesByKind(
	kind workspaces_enums.WorkspaceKind,
) ([]*workspaces_models.Workspace, error) {
	return r.filter(func(w workspaces_models.Workspace) bool { return w.Kind == kind }), nil
}

func (r *InMemoryWorkspaceRepository) GetWorkspacesByIDs(
	workspaceIDs []uuid.UUID,
) ([]*workspaces_models.Workspace, error) {
	return r.filter(func(w workspaces_models.Workspace) bool {
		return slices.Contains(workspaceIDs, w.ID)
	}), nil
}

func (r *InMemoryWorkspaceRepository) GetWorkspacesByCreator(
	creatorID uuid.UUID,
) ([]*workspaces_models.Workspace, error) {
	return r.filter(func(w workspaces_models.Workspace) bool { return w.CreatorID == creatorID }), nil
}

func (r *InMemoryWorkspaceRepository) UpdateWorkspace(workspace *workspaces_models.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.workspaces[workspace.ID] = *workspace
	return nil
}

func (r *InMemoryWorkspaceRepository) DeleteWorkspace(workspaceID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.workspaces, workspaceID)
	return nil
}

func (r *InMemoryWorkspaceRepository) find(
	match func(workspaces_models.Workspace) bool,
) *workspaces_models.Workspace {
	found := r.filter(match)
	if len(found) == 0 {
		return nil
	}

	return found[0]
}

func (r *InMemoryWorkspaceRepository) filter(
	match func(workspaces_models.Workspace) bool,
) []*workspaces_models.Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*workspaces_models.Workspace
	for _, workspace := range r.workspaces {
		if match(workspace) {
			result = append(result, &workspace)
		}
	}

	slices.SortFunc(result, func(a, b *workspaces_models.Workspace) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return result
}

// InMemoryMembershipRepository keeps memberships in insertion order and
// enforces the (workspace, user) uniqueness of the real table.
type InMemoryMembershipRepository struct {
	mu          sync.Mutex
	memberships []workspaces_models.WorkspaceMembership
}

func NewInMemoryMembershipRepository() *InMemoryMembershipRepository {
	return &InMemoryMembershipRepository{}
}

func (r *InMemoryMembershipRepository) CreateMembership(
	membership *workspaces_models.WorkspaceMembership,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.memberships {
		if existing.WorkspaceID == membership.WorkspaceID && existing.UserID == membership.UserID {
			return fmt.Errorf("duplicate membership for user %s", membership.UserID)
		}
	}

	r.memberships = append(r.memberships, *membership)
	return nil
}

func (r *InMemoryMembershipRepository) GetMembership(
	workspaceID, userID uuid.UUID,
) (*workspaces_models.WorkspaceMembership, error) {
	found := r.filter(func(m workspaces_models.WorkspaceMembership) bool {
		return m.WorkspaceID == workspaceID && m.UserID == userID
	})
	if len(found) == 0 {
		return nil, nil
	}

	return found[0], nil
}

func (r *InMemoryMembershipRepository) GetMemberships(
	workspaceID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, error) {
	return r.filter(func(m workspaces_models.WorkspaceMembership) bool {
		return m.WorkspaceID == workspaceID
	}), nil
}

func (r *InMemoryMembershipRepository) GetMembershipsByUser(
	userID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, error) {
	return r.filter(func(m workspaces_models.WorkspaceMembership) bool {
		return m.UserID == userID
	}), nil
}

func (r *InMemoryMembershipRepository) CountByRole(
	workspaceID uuid.UUID,
	role workspaces_enums.MemberRole,
) (int64, error) {
	found := r.filter(func(m workspaces_models.WorkspaceMembership) bool {
		return m.WorkspaceID == workspaceID && m.Role == role
	})

	return int64(len(found)), nil
}

func (r *InMemoryMembershipRepository) RemoveMembership(
	workspaceID, userID uuid.UUID,
	role workspaces_enums.MemberRole,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.memberships)
	r.memberships = slices.DeleteFunc(r.memberships, func(m workspaces_models.WorkspaceMembership) bool {
		return m.WorkspaceID == workspaceID && m.UserID == userID && m.Role == role
	})

	return len(r.memberships) < before, nil
}

func (r *InMemoryMembershipRepository) DeleteByWorkspace(workspaceID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.memberships = slices.DeleteFunc(r.memberships, func(m workspaces_models.WorkspaceMembership) bool {
		return m.WorkspaceID == workspaceID
	})

	return nil
}

func (r *InMemoryMembershipRepository) filter(
	match func(workspaces_models.WorkspaceMembership) bool,
) []*workspaces_models.WorkspaceMembership {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*workspaces_models.WorkspaceMembership
	for _, membership := range r.memberships {
		if match(membership) {
			result = append(result, &membership)
		}
	}

	slices.SortStableFunc(result, func(a, b *workspaces_models.WorkspaceMembership) int {
		return cmp.Compare(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	})

	return result
}
