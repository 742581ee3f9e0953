package workspaces_models

import (
	"strings"
	"time"
	"unicode/utf8"

	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"

	"github.com/google/uuid"
)

type Workspace struct {
	ID            uuid.UUID                      `json:"id"            gorm:"column:id;primaryKey;type:uuid"`
	Name          string                         `json:"name"          gorm:"column:name"`
	ReferenceName string                         `json:"referenceName" gorm:"column:reference_name"`
	Kind          workspaces_enums.WorkspaceKind `json:"kind"          gorm:"column:kind"`
	CreatorID     uuid.UUID                      `json:"creatorId"     gorm:"column:creator_id;type:uuid"`
	CreatedAt     time.Time                      `json:"createdAt"     gorm:"column:created_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

func (w *Workspace) IsOfficial() bool {
	return w.Kind == workspaces_enums.WorkspaceKindOfficial
}

func (w *Workspace) Rename(name string) {
	w.Name = name
	w.ReferenceName = ReferenceNameOf(name)
}

// ReferenceNameOf returns the first two letters of name, upper-cased. Names
// shorter than two characters have no reference name.
func ReferenceNameOf(name string) string {
	if utf8.RuneCountInString(name) < 2 {
		return ""
	}

	return strings.ToUpper(string([]rune(name)[:2]))
}
