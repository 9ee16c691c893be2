package repository

import (
	"context"

	"app/internal/domain/model"
)

// GroupRepository is the role directory: group rows plus the
// user_groups membership join.
type GroupRepository interface {
	// ListNamesByUserID returns every group name the user belongs to.
	ListNamesByUserID(ctx context.Context, userID int64) ([]string, error)
	ListUsers(ctx context.Context, groupName string) ([]model.User, error)
	// AddUser is idempotent: adding an existing member succeeds.
	AddUser(ctx context.Context, groupName string, userID int64) error
	RemoveUser(ctx context.Context, groupName string, userID int64) error
}
