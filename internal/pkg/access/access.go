// Package access holds the authorization predicates applied at the boundary
// of every mutation.
package access

import (
	"errors"

	"github.com/habariblog/core/internal/models"
)

var (
	// ErrLastAdmin is returned when an operation would leave the system
	// without a single active administrator.
	ErrLastAdmin = errors.New("cannot remove or demote the last active administrator")
	// ErrSelfDelete is returned on any attempt at self-deletion.
	ErrSelfDelete = errors.New("you cannot delete your own account")
)

// IsAdmin reports whether the user holds the admin role.
func IsAdmin(u *models.UserModel) bool {
	return u != nil && u.Role == models.RoleAdmin
}

// IsOwner reports whether the user authored the post.
func IsOwner(u *models.UserModel, p *models.PostModel) bool {
	return u != nil && p != nil && u.ID == p.UserID
}

// CanMutatePost gates post update/delete: admins and the owning author only.
func CanMutatePost(u *models.UserModel, p *models.PostModel) bool {
	return IsAdmin(u) || IsOwner(u, p)
}

// LastActiveAdminGuard refuses any transition that would leave zero active
// admins: deleting, suspending, deactivating, or demoting the target while
// it is the only active admin. activeAdmins is the current count of users
// with role=admin and status=active.
func LastActiveAdminGuard(target *models.UserModel, activeAdmins int64, newRole models.Role, newStatus models.UserStatus) error {
	if target == nil {
		return nil
	}
	if target.Role != models.RoleAdmin || target.Status != models.UserActive {
		return nil
	}
	if activeAdmins > 1 {
		return nil
	}
	if newRole == models.RoleAdmin && newStatus == models.UserActive {
		return nil
	}
	return ErrLastAdmin
}
