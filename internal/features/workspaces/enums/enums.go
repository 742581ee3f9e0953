package workspaces_enums

type WorkspaceKind string

const (
	WorkspaceKindPersonal WorkspaceKind = "PERSONAL"
	WorkspaceKindOfficial WorkspaceKind = "OFFICIAL"
)

func (k WorkspaceKind) IsValid() bool {
	return k == WorkspaceKindPersonal || k == WorkspaceKindOfficial
}

// MemberRole is the role a user holds inside one official workspace. The
// creator has no membership row and is not represented here.
type MemberRole string

const (
	MemberRoleContributor MemberRole = "CONTRIBUTOR"
	MemberRoleModerator   MemberRole = "MODERATOR"
)

func (r MemberRole) IsValid() bool {
	return r == MemberRoleContributor || r == MemberRoleModerator
}
