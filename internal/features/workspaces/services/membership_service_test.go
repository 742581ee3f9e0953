package workspaces_services_test

import (
	"testing"

	users_enums "trailiva-backend/internal/features/users/enums"
	users_models "trailiva-backend/internal/features/users/models"
	users_services "trailiva-backend/internal/features/users/services"
	users_testing "trailiva-backend/internal/features/users/testing"
	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"
	workspaces_testing "trailiva-backend/internal/features/workspaces/testing"
	"trailiva-backend/internal/util/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AddMember_RejectsExistingMembersAndCreator(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	alice, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	bob, _ := users_testing.CreateTestUser(services.UserService, "b@x.com")

	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)
	workspaces_testing.AddTestContributor(services, workspace, alice)

	_, err := services.MembershipService.AddMember(workspace.ID, "a@x.com")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	membership, err := services.MembershipService.AddMember(workspace.ID, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, membership.UserID)
	assert.Equal(t, workspaces_enums.MemberRoleContributor, membership.Role)

	_, err = services.MembershipService.AddMember(workspace.ID, "c@x.com")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = services.MembershipService.AddModerator(workspace.ID, "a@x.com")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	count, err := services.MembershipService.CountContributors(workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func Test_AddMember_WithUnknownEmailOrWorkspace_ReturnsNotFound(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)

	_, err := services.MembershipService.AddMember(workspace.ID, "nobody@x.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = services.MembershipService.AddMember(uuid.New(), "c@x.com")
	assert.ErrorIs(t, err, workspaces_services.ErrWorkspaceNotFound)
}

func Test_AddMember_ToPersonalWorkspace_ReturnsNotFound(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	users_testing.CreateTestUser(services.UserService, "b@x.com")
	workspace := workspaces_testing.CreateTestPersonalWorkspace(services, "Mine", creator)

	_, err := services.MembershipService.AddMember(workspace.ID, "b@x.com")

	assert.ErrorIs(t, err, workspaces_services.ErrWorkspaceNotFound)
}

func Test_AddModerator_GrantsGlobalRoleOnce(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	creator1, _ := users_testing.CreateTestUser(services.UserService, "c1@x.com")
	creator2, _ := users_testing.CreateTestUser(services.UserService, "c2@x.com")
	moderator, _ := users_testing.CreateTestUser(services.UserService, "m@x.com")

	workspace1 := workspaces_testing.CreateTestOfficialWorkspace(services, "First", creator1)
	workspace2 := workspaces_testing.CreateTestOfficialWorkspace(services, "Second", creator2)

	workspaces_testing.AddTestModerator(services, workspace1, moderator)
	workspaces_testing.AddTestModerator(services, workspace2, moderator)

	reloaded, err := services.UserService.GetUserByID(moderator.ID)
	require.NoError(t, err)

	moderatorGrants := 0
	for _, role := range reloaded.Roles {
		if role == users_enums.UserRoleModerator {
			moderatorGrants++
		}
	}
	assert.Equal(t, 1, moderatorGrants)

	isModerator, err := services.MembershipService.IsModerator(workspace1.ID, moderator.ID)
	require.NoError(t, err)
	assert.True(t, isModerator)

	isContributor, err := services.MembershipService.IsContributor(workspace1.ID, moderator.ID)
	require.NoError(t, err)
	assert.False(t, isContributor)
}

func Test_Onboard_WhenModeratorGrantFails_CreatesNoMembership(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)

	// not stored in the user repository, so the role grant fails
	ghost := &users_models.User{ID: uuid.New(), Email: "ghost@x.com", IsEnabled: true}

	_, err := services.MembershipService.Onboard(workspace.ID, ghost, workspaces_enums.MemberRoleModerator)
	assert.ErrorIs(t, err, users_services.ErrUserNotFound)

	membership, err := services.MembershipRepository.GetMembership(workspace.ID, ghost.ID)
	require.NoError(t, err)
	assert.Nil(t, membership)

	isModerator, err := services.MembershipService.IsModerator(workspace.ID, ghost.ID)
	require.NoError(t, err)
	assert.False(t, isModerator)
}

func Test_RemoveContributor_DoesNotRemoveModerators(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	contributor, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	moderator, _ := users_testing.CreateTestUser(services.UserService, "m@x.com")

	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)
	workspaces_testing.AddTestContributor(services, workspace, contributor)
	workspaces_testing.AddTestModerator(services, workspace, moderator)

	err := services.MembershipService.RemoveContributor(workspace.ID, moderator.ID)
	assert.ErrorIs(t, err, workspaces_services.ErrContributorNotFound)

	moderators, err := services.MembershipService.CountModerators(workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), moderators)

	require.NoError(t, services.MembershipService.RemoveContributor(workspace.ID, contributor.ID))
	contributors, err := services.MembershipService.CountContributors(workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), contributors)

	require.NoError(t, services.MembershipService.RemoveModerator(workspace.ID, moderator.ID))
	assert.ErrorIs(
		t,
		services.MembershipService.RemoveModerator(workspace.ID, moderator.ID),
		workspaces_services.ErrModeratorNotFound,
	)
}

func Test_GetMembers_ReturnsCreatorContributorsAndModerators(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	alice, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	bob, _ := users_testing.CreateTestUser(services.UserService, "b@x.com")
	moderator, _ := users_testing.CreateTestUser(services.UserService, "m@x.com")

	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)
	workspaces_testing.AddTestContributor(services, workspace, alice)
	workspaces_testing.AddTestModerator(services, workspace, moderator)
	workspaces_testing.AddTestContributor(services, workspace, bob)

	members, err := services.MembershipService.GetMembers(workspace.ID)
	require.NoError(t, err)

	assert.Equal(t, creator.ID, members.Creator.UserID)
	require.Len(t, members.Contributors, 2)
	assert.Equal(t, alice.ID, members.Contributors[0].UserID)
	assert.Equal(t, bob.ID, members.Contributors[1].UserID)
	require.Len(t, members.Moderators, 1)
	assert.Equal(t, moderator.ID, members.Moderators[0].UserID)
}

func Test_AddMemberAs_RequiresManagerOfWorkspace(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	stranger, _ := users_testing.CreateTestUser(services.UserService, "s@x.com")
	admin, _ := users_testing.CreateTestAdmin(services.UserService, "admin@x.com")
	users_testing.CreateTestUser(services.UserService, "b@x.com")

	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)

	_, err := services.MembershipService.AddMemberAs(
		stranger, workspace.ID, "b@x.com", workspaces_enums.MemberRoleContributor,
	)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = services.MembershipService.AddMemberAs(
		admin, workspace.ID, "b@x.com", workspaces_enums.MemberRoleModerator,
	)
	require.NoError(t, err)

	_, err = services.MembershipService.AddMemberAs(
		creator, workspace.ID, "s@x.com", "OWNER",
	)
	assert.ErrorIs(t, err, workspaces_services.ErrInvalidMemberRole)
}

func Test_GetModerators_ReturnsModeratorUsers(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	contributor, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	moderator, _ := users_testing.CreateTestUser(services.UserService, "m@x.com")

	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)
	workspaces_testing.AddTestContributor(services, workspace, contributor)
	workspaces_testing.AddTestModerator(services, workspace, moderator)

	moderators, err := services.MembershipService.GetModerators(workspace.ID)
	require.NoError(t, err)

	require.Len(t, moderators, 1)
	assert.Equal(t, "m@x.com", moderators[0].Email)
}
