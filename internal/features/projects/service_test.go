package projects

import (
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	users_testing "trailiva-backend/internal/features/users/testing"
	workspaces_testing "trailiva-backend/internal/features/workspaces/testing"
	"trailiva-backend/internal/util/apperr"
	test_utils "trailiva-backend/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProjectService(services *workspaces_testing.TestServices) (*ProjectService, *InMemoryProjectRepository) {
	repository := NewInMemoryProjectRepository()
	service := NewProjectService(
		repository,
		services.WorkspaceService,
		services.MembershipService,
		services.AuditLogService,
		slog.New(slog.DiscardHandler),
	)
	services.WorkspaceService.AddWorkspaceDeletionListener(service)

	return service, repository
}

func Test_CreateProject_ByModerator_Succeeds(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, _ := newTestProjectService(services)
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	moderator, _ := users_testing.CreateTestUser(services.UserService, "m@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)
	workspaces_testing.AddTestModerator(services, workspace, moderator)

	project, err := projectService.CreateProject(
		workspace.ID,
		&ProjectRequestDTO{Name: " Website ", Description: "landing page"},
		moderator,
	)
	require.NoError(t, err)

	assert.Equal(t, "Website", project.Name)
	assert.Equal(t, workspace.ID, project.WorkspaceID)
	assert.Contains(t, services.AuditLogRepository.Messages(), "Project created: Website in workspace Acme")
}

func Test_CreateProject_ByContributor_ReturnsUnauthorized(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, _ := newTestProjectService(services)
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	contributor, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)
	workspaces_testing.AddTestContributor(services, workspace, contributor)

	_, err := projectService.CreateProject(workspace.ID, &ProjectRequestDTO{Name: "Website"}, contributor)

	assert.ErrorIs(t, err, ErrNotAllowedToModify)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func Test_CreateProject_DuplicateNameInWorkspace_ReturnsConflict(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, _ := newTestProjectService(services)
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)

	_, err := projectService.CreateProject(workspace.ID, &ProjectRequestDTO{Name: "Website"}, creator)
	require.NoError(t, err)

	_, err = projectService.CreateProject(workspace.ID, &ProjectRequestDTO{Name: "website"}, creator)
	assert.ErrorIs(t, err, ErrProjectNameTaken)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func Test_CreateProject_SameNameInOtherWorkspace_Succeeds(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, _ := newTestProjectService(services)
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	official := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)
	personal := workspaces_testing.CreateTestPersonalWorkspace(services, "Mine", creator)

	_, err := projectService.CreateProject(official.ID, &ProjectRequestDTO{Name: "Website"}, creator)
	require.NoError(t, err)

	_, err = projectService.CreateProject(personal.ID, &ProjectRequestDTO{Name: "Website"}, creator)
	assert.NoError(t, err)
}

func Test_CreateProject_UnknownWorkspace_ReturnsNotFound(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, _ := newTestProjectService(services)
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")

	_, err := projectService.CreateProject(uuid.New(), &ProjectRequestDTO{Name: "Website"}, creator)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func Test_UpdateProject_RenamesAndKeepsUniqueness(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, _ := newTestProjectService(services)
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)

	website, err := projectService.CreateProject(workspace.ID, &ProjectRequestDTO{Name: "Website"}, creator)
	require.NoError(t, err)
	_, err = projectService.CreateProject(workspace.ID, &ProjectRequestDTO{Name: "Mobile"}, creator)
	require.NoError(t, err)

	_, err = projectService.UpdateProject(website.ID, &ProjectRequestDTO{Name: "mobile"}, creator)
	assert.ErrorIs(t, err, ErrProjectNameTaken)

	updated, err := projectService.UpdateProject(website.ID, &ProjectRequestDTO{Name: "Web"}, creator)
	require.NoError(t, err)
	assert.Equal(t, "Web", updated.Name)

	// renaming to its own name is not a conflict
	_, err = projectService.UpdateProject(website.ID, &ProjectRequestDTO{Name: "Web"}, creator)
	assert.NoError(t, err)
}

func Test_GetProjects_VisibleToMembersOnly(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, _ := newTestProjectService(services)
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	contributor, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	stranger, _ := users_testing.CreateTestUser(services.UserService, "s@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)
	workspaces_testing.AddTestContributor(services, workspace, contributor)

	_, err := projectService.CreateProject(workspace.ID, &ProjectRequestDTO{Name: "Website"}, creator)
	require.NoError(t, err)

	projects, err := projectService.GetProjectsByWorkspace(workspace.ID, contributor)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	_, err = projectService.GetProjectsByWorkspace(workspace.ID, stranger)
	assert.ErrorIs(t, err, ErrNotAllowedToViewProjects)
}

func Test_GetProjects_EmptyWorkspace_ReturnsEmptySlice(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, _ := newTestProjectService(services)
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)

	projects, err := projectService.GetProjectsByWorkspace(workspace.ID, creator)

	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func Test_DeleteProject_RemovesItAndCountDrops(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, _ := newTestProjectService(services)
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)

	project, err := projectService.CreateProject(workspace.ID, &ProjectRequestDTO{Name: "Website"}, creator)
	require.NoError(t, err)

	count, err := projectService.CountProjects(workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, projectService.DeleteProject(project.ID, creator))

	count, err = projectService.CountProjects(workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = projectService.GetProject(project.ID, creator)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func Test_DeleteWorkspace_RemovesItsProjects(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, repository := newTestProjectService(services)
	creator, _ := users_testing.CreateTestUser(services.UserService, "c@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)

	_, err := projectService.CreateProject(workspace.ID, &ProjectRequestDTO{Name: "Website"}, creator)
	require.NoError(t, err)

	require.NoError(t, services.WorkspaceService.DeleteWorkspace(workspace.ID, creator))

	remaining, err := repository.FindByWorkspaceID(workspace.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func Test_GetWorkspaceStats_ViaAPI(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, _ := newTestProjectService(services)
	router := workspaces_testing.CreateTestRouter(services.UserService, NewProjectController(projectService))

	creator, creatorToken := users_testing.CreateTestUser(services.UserService, "c@x.com")
	contributor, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	moderator, _ := users_testing.CreateTestUser(services.UserService, "m@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)
	workspaces_testing.AddTestContributor(services, workspace, contributor)
	workspaces_testing.AddTestModerator(services, workspace, moderator)

	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/projects", workspace.ID),
		"Bearer "+creatorToken.Token,
		ProjectRequestDTO{Name: "Website"},
		http.StatusOK,
	)

	var stats WorkspaceStatsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/stats", workspace.ID),
		"Bearer "+creatorToken.Token,
		http.StatusOK,
		&stats,
	)

	assert.Equal(t, int64(1), stats.Projects)
	assert.Equal(t, int64(1), stats.Contributors)
	assert.Equal(t, int64(1), stats.Moderators)
}

func Test_CreateProject_WithoutName_ReturnsBadRequestViaAPI(t *testing.T) {
	services := workspaces_testing.NewTestServices()
	projectService, _ := newTestProjectService(services)
	router := workspaces_testing.CreateTestRouter(services.UserService, NewProjectController(projectService))
	creator, creatorToken := users_testing.CreateTestUser(services.UserService, "c@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services, "Acme", creator)

	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/projects", workspace.ID),
		"Bearer "+creatorToken.Token,
		ProjectRequestDTO{},
		http.StatusBadRequest,
	)
}
