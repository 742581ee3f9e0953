package tasks_services_test

import (
	"testing"

	tasks_dto "trailiva-backend/internal/features/tasks/dto"
	tasks_enums "trailiva-backend/internal/features/tasks/enums"
	tasks_services "trailiva-backend/internal/features/tasks/services"
	tasks_testing "trailiva-backend/internal/features/tasks/testing"
	users_testing "trailiva-backend/internal/features/users/testing"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"
	workspaces_testing "trailiva-backend/internal/features/workspaces/testing"
	"trailiva-backend/internal/util/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateTask_AppliesDefaults(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)

	task, err := services.TaskService.CreateTask(
		workspace.ID,
		&tasks_dto.TaskRequestDTO{Name: "  Write docs "},
		creator,
	)
	require.NoError(t, err)

	assert.Equal(t, "Write docs", task.Name)
	assert.Equal(t, tasks_enums.PriorityMedium, task.Priority)
	assert.Equal(t, tasks_enums.TabPending, task.Tab)
	assert.False(t, task.IsAssigned)
	assert.False(t, task.CreatedAt.IsZero())
}

func Test_CreateTask_WithInvalidPriority_ReturnsBadRequest(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)

	_, err := services.TaskService.CreateTask(
		workspace.ID,
		&tasks_dto.TaskRequestDTO{Name: "T", Priority: "CRITICAL"},
		creator,
	)

	assert.ErrorIs(t, err, tasks_services.ErrInvalidPriority)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func Test_CreateTask_ByContributor_ReturnsUnauthorized(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	contributor, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)
	workspaces_testing.AddTestContributor(services.TestServices, workspace, contributor)

	_, err := services.TaskService.CreateTask(workspace.ID, &tasks_dto.TaskRequestDTO{Name: "T"}, contributor)

	assert.ErrorIs(t, err, tasks_services.ErrNotAllowedToModify)
}

func Test_FilterTasks_MatchesOnlyRequestedValue(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)

	tasks_testing.CreateTestTask(
		services, workspace, creator, "T1", tasks_enums.PriorityHigh, tasks_enums.TabInProgress,
	)
	t2 := tasks_testing.CreateTestTask(
		services, workspace, creator, "T2", tasks_enums.PriorityLow, tasks_enums.TabPending,
	)

	low, err := services.TaskService.FilterByPriority(workspace.ID, tasks_enums.PriorityLow)
	require.NoError(t, err)
	require.Equal(t, 1, low.Len())
	assert.Equal(t, t2.ID, low.At(0).ID)
	assert.Equal(t, "T2", low.At(0).Name)
	assert.Equal(t, tasks_enums.TabPending, low.At(0).Tab)

	completed, err := services.TaskService.FilterByTab(workspace.ID, tasks_enums.TabCompleted)
	require.NoError(t, err)
	assert.Equal(t, 0, completed.Len())
	assert.Empty(t, completed.Slice())
}

func Test_FilterTasks_PreservesInsertionOrder(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)

	for _, name := range []string{"first", "second", "third"} {
		tasks_testing.CreateTestTask(
			services, workspace, creator, name, tasks_enums.PriorityUrgent, tasks_enums.TabPending,
		)
	}

	urgent, err := services.TaskService.FilterByPriority(workspace.ID, tasks_enums.PriorityUrgent)
	require.NoError(t, err)

	var names []string
	for task := range urgent.All() {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"first", "second", "third"}, names)
}

func Test_FilterTasks_EmptyWorkspace_ReturnsEmptyList(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	workspace := workspaces_testing.CreateTestPersonalWorkspace(services.TestServices, "Mine", creator)

	byPriority, err := services.TaskService.FilterByPriority(workspace.ID, tasks_enums.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, 0, byPriority.Len())

	byTab, err := services.TaskService.FilterByTab(workspace.ID, tasks_enums.TabPending)
	require.NoError(t, err)
	assert.Equal(t, 0, byTab.Len())
}

func Test_FilterTasks_UnknownWorkspace_ReturnsNotFound(t *testing.T) {
	services := tasks_testing.NewTestServices()

	_, err := services.TaskService.FilterByPriority(uuid.New(), tasks_enums.PriorityHigh)
	assert.ErrorIs(t, err, workspaces_services.ErrWorkspaceNotFound)
	assert.EqualError(t, err, "workspace not found")

	_, err = services.TaskService.FilterByTab(uuid.New(), tasks_enums.TabPending)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// a missing workspace wins over a malformed filter value
	_, err = services.TaskService.FilterByPriority(uuid.New(), "SOMEDAY")
	assert.ErrorIs(t, err, workspaces_services.ErrWorkspaceNotFound)

	_, err = services.TaskService.FilterByTab(uuid.New(), "ARCHIVED")
	assert.ErrorIs(t, err, workspaces_services.ErrWorkspaceNotFound)
}

func Test_FilterTasks_InvalidEnum_ReturnsBadRequest(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)

	_, err := services.TaskService.FilterByPriority(workspace.ID, "SOMEDAY")
	assert.ErrorIs(t, err, tasks_services.ErrInvalidPriority)

	_, err = services.TaskService.FilterByTab(workspace.ID, "ARCHIVED")
	assert.ErrorIs(t, err, tasks_services.ErrInvalidTab)
}

func Test_FilterTasks_ResultIsIsolatedFromStore(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)
	tasks_testing.CreateTestTask(
		services, workspace, creator, "T1", tasks_enums.PriorityHigh, tasks_enums.TabPending,
	)

	first, err := services.TaskService.FilterByPriority(workspace.ID, tasks_enums.PriorityHigh)
	require.NoError(t, err)

	copied := first.Slice()
	copied[0].Name = "mutated"

	second, err := services.TaskService.FilterByPriority(workspace.ID, tasks_enums.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, "T1", first.At(0).Name)
	assert.Equal(t, "T1", second.At(0).Name)
}

func Test_AssignTask_ByModeratorToContributor_Succeeds(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	moderator, _ := users_testing.CreateTestUser(services.UserService, "m@x.com")
	contributor, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)
	workspaces_testing.AddTestModerator(services.TestServices, workspace, moderator)
	workspaces_testing.AddTestContributor(services.TestServices, workspace, contributor)
	task := tasks_testing.CreateTestTask(
		services, workspace, creator, "T1", tasks_enums.PriorityHigh, tasks_enums.TabPending,
	)

	assigned, err := services.TaskService.AssignTask(workspace.ID, moderator.ID, contributor.ID, task.ID)
	require.NoError(t, err)

	assert.True(t, assigned.IsAssigned)
	require.NotNil(t, assigned.AssigneeID)
	require.NotNil(t, assigned.ReporterID)
	assert.Equal(t, contributor.ID, *assigned.AssigneeID)
	assert.Equal(t, moderator.ID, *assigned.ReporterID)

	stored, err := services.TaskService.GetTaskByID(task.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAssigned)
}

func Test_AssignTask_WithNonMembers_ReturnsNotAValidMember(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	moderator, _ := users_testing.CreateTestUser(services.UserService, "m@x.com")
	contributor, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	stranger, _ := users_testing.CreateTestUser(services.UserService, "s@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)
	workspaces_testing.AddTestModerator(services.TestServices, workspace, moderator)
	workspaces_testing.AddTestContributor(services.TestServices, workspace, contributor)
	task := tasks_testing.CreateTestTask(
		services, workspace, creator, "T1", tasks_enums.PriorityHigh, tasks_enums.TabPending,
	)

	tests := []struct {
		name          string
		moderatorID   uuid.UUID
		contributorID uuid.UUID
	}{
		{"stranger as moderator", stranger.ID, contributor.ID},
		{"stranger as contributor", moderator.ID, stranger.ID},
		{"roles swapped", contributor.ID, moderator.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.TaskService.AssignTask(workspace.ID, tt.moderatorID, tt.contributorID, task.ID)

			assert.ErrorIs(t, err, tasks_services.ErrNotAValidMember)
			assert.ErrorIs(t, err, apperr.ErrUnauthorized)
			assert.EqualError(t, err, "not a valid member")
		})
	}

	stored, err := services.TaskService.GetTaskByID(task.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsAssigned)
}

func Test_AssignTask_TaskOfOtherWorkspace_ReturnsTaskNotFound(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	otherCreator, _ := users_testing.CreateTestUser(services.UserService, "p@x.com")
	moderator, _ := users_testing.CreateTestUser(services.UserService, "m@x.com")
	contributor, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)
	other := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Other", otherCreator)
	workspaces_testing.AddTestModerator(services.TestServices, workspace, moderator)
	workspaces_testing.AddTestContributor(services.TestServices, workspace, contributor)
	foreignTask := tasks_testing.CreateTestTask(
		services, other, otherCreator, "T1", tasks_enums.PriorityHigh, tasks_enums.TabPending,
	)

	_, err := services.TaskService.AssignTask(workspace.ID, moderator.ID, contributor.ID, foreignTask.ID)
	assert.ErrorIs(t, err, tasks_services.ErrTaskNotFound)

	_, err = services.TaskService.AssignTask(workspace.ID, moderator.ID, contributor.ID, uuid.New())
	assert.EqualError(t, err, "task not found")
}

func Test_UpdateTask_ChangesFieldsAndKeepsAssignment(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)
	task := tasks_testing.CreateTestTask(
		services, workspace, creator, "T1", tasks_enums.PriorityHigh, tasks_enums.TabPending,
	)

	updated, err := services.TaskService.UpdateTask(
		task.ID,
		&tasks_dto.TaskRequestDTO{Name: "T1 renamed", Tab: tasks_enums.TabUnderReview, Tag: "docs"},
		creator,
	)
	require.NoError(t, err)

	assert.Equal(t, "T1 renamed", updated.Name)
	assert.Equal(t, tasks_enums.PriorityHigh, updated.Priority)
	assert.Equal(t, tasks_enums.TabUnderReview, updated.Tab)
	assert.Equal(t, "docs", updated.Tag)
}

func Test_UpdateTaskTag_ReplacesTag(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)
	task := tasks_testing.CreateTestTask(
		services, workspace, creator, "T1", tasks_enums.PriorityHigh, tasks_enums.TabPending,
	)

	updated, err := services.TaskService.UpdateTaskTag(task.ID, " backend ", creator)
	require.NoError(t, err)
	assert.Equal(t, "backend", updated.Tag)
}

func Test_GetTaskDetail_ChecksWorkspaceAndAccess(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	contributor, _ := users_testing.CreateTestUser(services.UserService, "a@x.com")
	stranger, _ := users_testing.CreateTestUser(services.UserService, "s@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)
	workspaces_testing.AddTestContributor(services.TestServices, workspace, contributor)
	task := tasks_testing.CreateTestTask(
		services, workspace, creator, "T1", tasks_enums.PriorityHigh, tasks_enums.TabPending,
	)

	detail, err := services.TaskService.GetTaskDetail(workspace.ID, task.ID, contributor)
	require.NoError(t, err)
	assert.Equal(t, task.ID, detail.ID)

	_, err = services.TaskService.GetTaskDetail(workspace.ID, task.ID, stranger)
	assert.ErrorIs(t, err, tasks_services.ErrNotAllowedToViewTasks)

	_, err = services.TaskService.GetTaskDetail(workspace.ID, uuid.New(), creator)
	assert.ErrorIs(t, err, tasks_services.ErrTaskNotFound)
}

func Test_DeleteWorkspace_RemovesItsTasks(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)
	task := tasks_testing.CreateTestTask(
		services, workspace, creator, "T1", tasks_enums.PriorityHigh, tasks_enums.TabPending,
	)

	require.NoError(t, services.WorkspaceService.DeleteWorkspace(workspace.ID, creator))

	_, err := services.TaskService.GetTaskByID(task.ID)
	assert.ErrorIs(t, err, tasks_services.ErrTaskNotFound)
}

func Test_DeleteTask_ByModerator_Succeeds(t *testing.T) {
	services := tasks_testing.NewTestServices()
	creator, _ := users_testing.CreateTestUser(services.UserService, "o@x.com")
	moderator, _ := users_testing.CreateTestUser(services.UserService, "m@x.com")
	workspace := workspaces_testing.CreateTestOfficialWorkspace(services.TestServices, "Acme", creator)
	workspaces_testing.AddTestModerator(services.TestServices, workspace, moderator)
	task := tasks_testing.CreateTestTask(
		services, workspace, creator, "T1", tasks_enums.PriorityHigh, tasks_enums.TabPending,
	)

	require.NoError(t, services.TaskService.DeleteTask(task.ID, moderator))

	tasks, err := services.TaskService.GetTasksByWorkspaceID(workspace.ID, creator)
	require.NoError(t, err)
	assert.Equal(t, 0, tasks.Len())
}
