package access

import (
	"testing"

	"github.com/habariblog/core/internal/models"
)

func user(id uint, role models.Role, status models.UserStatus) *models.UserModel {
	u := &models.UserModel{Role: role, Status: status}
	u.ID = id
	return u
}

func TestIsAdmin(t *testing.T) {
	if IsAdmin(nil) {
		t.Error("nil user must not be admin")
	}
	if IsAdmin(user(1, models.RoleAuthor, models.UserActive)) {
		t.Error("author must not be admin")
	}
	if !IsAdmin(user(1, models.RoleAdmin, models.UserActive)) {
		t.Error("admin role not recognized")
	}
}

func TestCanMutatePost(t *testing.T) {
	post := &models.PostModel{UserID: 7}

	tests := []struct {
		name string
		u    *models.UserModel
		want bool
	}{
		{"anonymous", nil, false},
		{"owner author", user(7, models.RoleAuthor, models.UserActive), true},
		{"other author", user(8, models.RoleAuthor, models.UserActive), false},
		{"admin non-owner", user(9, models.RoleAdmin, models.UserActive), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutatePost(tt.u, post); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLastActiveAdminGuard(t *testing.T) {
	tests := []struct {
		name         string
		target       *models.UserModel
		activeAdmins int64
		newRole      models.Role
		newStatus    models.UserStatus
		wantErr      bool
	}{
		{
			name:         "demote sole active admin",
			target:       user(1, models.RoleAdmin, models.UserActive),
			activeAdmins: 1,
			newRole:      models.RoleAuthor,
			newStatus:    models.UserActive,
			wantErr:      true,
		},
		{
			name:         "suspend sole active admin",
			target:       user(1, models.RoleAdmin, models.UserActive),
			activeAdmins: 1,
			newRole:      models.RoleAdmin,
			newStatus:    models.UserSuspended,
			wantErr:      true,
		},
		{
			name:         "deactivate sole active admin",
			target:       user(1, models.RoleAdmin, models.UserActive),
			activeAdmins: 1,
			newRole:      models.RoleAdmin,
			newStatus:    models.UserInactive,
			wantErr:      true,
		},
		{
			name:         "second admin exists",
			target:       user(1, models.RoleAdmin, models.UserActive),
			activeAdmins: 2,
			newRole:      models.RoleAuthor,
			newStatus:    models.UserActive,
			wantErr:      false,
		},
		{
			name:         "target is a plain author",
			target:       user(5, models.RoleAuthor, models.UserActive),
			activeAdmins: 1,
			newRole:      models.RoleAuthor,
			newStatus:    models.UserSuspended,
			wantErr:      false,
		},
		{
			name:         "target is an inactive admin",
			target:       user(3, models.RoleAdmin, models.UserInactive),
			activeAdmins: 1,
			newRole:      models.RoleAuthor,
			newStatus:    models.UserInactive,
			wantErr:      false,
		},
		{
			name:         "no-op transition on sole admin",
			target:       user(1, models.RoleAdmin, models.UserActive),
			activeAdmins: 1,
			newRole:      models.RoleAdmin,
			newStatus:    models.UserActive,
			wantErr:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := LastActiveAdminGuard(tt.target, tt.activeAdmins, tt.newRole, tt.newStatus)
			if (err != nil) != tt.wantErr {
				t.Errorf("got err=%v, wantErr=%v", err, tt.wantErr)
			}
			if err != nil && err != ErrLastAdmin {
				t.Errorf("got %v, want ErrLastAdmin", err)
			}
		})
	}
}

// The guard outranks the self-deletion rule: a sole active admin deleting
// their own account is told about the admin constraint, not self-deletion.
func TestGuardPrecedesSelfDelete(t *testing.T) {
	self := user(1, models.RoleAdmin, models.UserActive)
	err := LastActiveAdminGuard(self, 1, models.RoleAuthor, models.UserInactive)
	if err != ErrLastAdmin {
		t.Fatalf("got %v, want ErrLastAdmin", err)
	}
}
