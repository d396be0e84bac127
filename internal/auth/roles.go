package auth

import "github.com/spec-kit/repair-service/internal/domain"

// Action enumerates workspace-scoped capabilities.
type Action string

const (
	ActionViewRepairs     Action = "view_repairs"
	ActionCreateRepair    Action = "create_repair"
	ActionCompleteRepair  Action = "complete_repair"
	ActionAnnotateRepair  Action = "annotate_repair"
	ActionMessageCustomer Action = "message_customer"
	ActionViewMembers     Action = "view_members"
	ActionManageMembers   Action = "manage_members"
)

var roleActions = map[domain.WorkspaceRole]map[Action]bool{
	domain.WorkspaceRoleOwner: {
		ActionViewRepairs:     true,
		ActionCreateRepair:    true,
		ActionCompleteRepair:  true,
		ActionAnnotateRepair:  true,
		ActionMessageCustomer: true,
		ActionViewMembers:     true,
		ActionManageMembers:   true,
	},
	domain.WorkspaceRoleAdmin: {
		ActionViewRepairs:     true,
		ActionCreateRepair:    true,
		ActionCompleteRepair:  true,
		ActionAnnotateRepair:  true,
		ActionMessageCustomer: true,
		ActionViewMembers:     true,
		ActionManageMembers:   true,
	},
	domain.WorkspaceRoleMember: {
		ActionViewRepairs:     true,
		ActionCreateRepair:    true,
		ActionCompleteRepair:  true,
		ActionAnnotateRepair:  true,
		ActionMessageCustomer: true,
		ActionViewMembers:     true,
	},
}

// Can reports whether a workspace role may perform an action. Unknown roles
// and unknown actions are denied.
func Can(role domain.WorkspaceRole, action Action) bool {
	actions, ok := roleActions[role]
	if !ok {
		return false
	}
	return actions[action]
}
