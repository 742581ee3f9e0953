package projects

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type InMemoryProjectRepository struct {
	mu       sync.Mutex
	projects map[uuid.UUID]Project
}

func NewInMemoryProjectRepository() *InMemoryProjectRepository {
	return &InMemoryProjectRepository{projects: map[uuid.UUID]Project{}}
}

func (r *InMemoryProjectRepository) Save(project *Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.projects {
		if existing.ID != project.ID &&
			existing.WorkspaceID == project.WorkspaceID &&
			strings.EqualFold(existing.Name, project.Name) {
			return fmt.Errorf("duplicate project name %s", project.Name)
		}
	}

	r.projects[project.ID] = *project
	return nil
}

func (r *InMemoryProjectRepository) FindByID(id uuid.UUID) (*Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, nil
	}

	return &project, nil
}

func (r *InMemoryProjectRepository) FindByWorkspaceAndName(
	workspaceID uuid.UUID,
	name string,
) (*Project, error) {
	for _, project := range r.byWorkspace(workspaceID) {
		if strings.EqualFold(project.Name, name) {
			return project, nil
		}
	}

	return nil, nil
}

func (r *InMemoryProjectRepository) FindByWorkspaceID(workspaceID uuid.UUID) ([]*Project, error) {
	return r.byWorkspace(workspaceID), nil
}

func (r *InMemoryProjectRepository) CountByWorkspaceID(workspaceID uuid.UUID) (int64, error) {
	return int64(len(r.byWorkspace(workspaceID))), nil
}

func (r *InMemoryProjectRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.projects, id)
	return nil
}

func (r *InMemoryProjectRepository) DeleteByWorkspaceID(workspaceID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, project := range r.projects {
		if project.WorkspaceID == workspaceID {
			delete(r.projects, id)
		}
	}
	return nil
}

func (r *InMemoryProjectRepository) byWorkspace(workspaceID uuid.UUID) []*Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	var projects []*Project
	for _, project := range r.projects {
		if project.WorkspaceID == workspaceID {
			projects = append(projects, &project)
		}
	}

	slices.SortFunc(projects, func(a, b *Project) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return projects
}
