package projects

import "github.com/google/uuid"

type ProjectRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

type WorkspaceStatsResponseDTO struct {
	WorkspaceID  uuid.UUID `json:"workspaceId"`
	Projects     int64     `json:"projects"`
	Contributors int64     `json:"contributors"`
	Moderators   int64     `json:"moderators"`
}
