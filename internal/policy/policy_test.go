package policy

import (
	"testing"

	"unicatalog/internal/entity"
)

func TestCan(t *testing.T) {
	admin := entity.SessionUser{ID: 1, RoleName: entity.RoleAdmin}
	owner := entity.SessionUser{ID: 2, RoleName: entity.RoleUser}
	anonymous := entity.SessionUser{}

	cases := []struct {
		name   string
		actor  entity.SessionUser
		action Action
		target int
		want   bool
	}{
		{"owner edits self", owner, EditAccount, 2, true},
		{"owner edits other", owner, EditAccount, 3, false},
		{"admin edits other", admin, EditAccount, 2, true},
		{"admin deletes other", admin, DeleteAccount, 2, true},
		{"admin deletes self", admin, DeleteAccount, 1, false},
		{"user deletes other", owner, DeleteAccount, 3, false},
		{"user deletes self", owner, DeleteAccount, 2, false},
		{"user lists", owner, ListUsers, 0, true},
		{"anonymous lists", anonymous, ListUsers, 0, false},
		{"anonymous edits", anonymous, EditAccount, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Can(tc.actor, tc.action, tc.target); got != tc.want {
				t.Fatalf("Can(%+v, %s, %d) = %v, want %v", tc.actor, tc.action, tc.target, got, tc.want)
			}
		})
	}
}
