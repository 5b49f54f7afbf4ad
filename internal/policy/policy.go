// Package policy decides what a signed-in user may do to an account.
package policy

import "unicatalog/internal/entity"

type Action int

const (
	ListUsers Action = iota
	EditAccount
	DeleteAccount
)

func (a Action) String() string {
	switch a {
	case ListUsers:
		return "list users"
	case EditAccount:
		return "edit account"
	case DeleteAccount:
		return "delete account"
	}
	return "unknown"
}

func IsAdmin(actor entity.SessionUser) bool {
	return actor.RoleName == entity.RoleAdmin
}

// Can reports whether actor may perform action on the account targetID.
//
// Accounts can be edited by their owner or an admin. Only admins delete,
// and never their own account.
func Can(actor entity.SessionUser, action Action, targetID int) bool {
	if actor.ID == 0 {
		return false
	}

	switch action {
	case ListUsers:
		return true
	case EditAccount:
		return actor.ID == targetID || IsAdmin(actor)
	case DeleteAccount:
		return IsAdmin(actor) && actor.ID != targetID
	}
	return false
}
