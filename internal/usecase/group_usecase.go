package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "app/internal/repository"
)

// GroupUsecase administers the Manager and Delivery Crew staff groups.
// Every operation is manager-only.
type GroupUsecase struct {
	groups repo.GroupRepository
	users  repo.UserRepository
	policy *AccessPolicy
}

func NewGroupUsecase(groups repo.GroupRepository, users repo.UserRepository, policy *AccessPolicy) *GroupUsecase {
	return &GroupUsecase{groups: groups, users: users, policy: policy}
}

type GroupMemberOutput struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (u *GroupUsecase) requireManager(ctx context.Context, callerID int64) error {
	if callerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	roles, err := u.policy.RolesOf(ctx, callerID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !roles.IsManager() {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}

func (u *GroupUsecase) ListMembers(ctx context.Context, callerID int64, groupName string) ([]GroupMemberOutput, error) {
	if err := u.requireManager(ctx, callerID); err != nil {
		return nil, err
	}

	users, err := u.groups.ListUsers(ctx, groupName)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "group not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]GroupMemberOutput, 0, len(users))
	for _, m := range users {
		out = append(out, GroupMemberOutput{ID: m.ID, Username: m.Username})
	}
	return out, nil
}

func (u *GroupUsecase) AddMember(ctx context.Context, callerID int64, groupName string, userID int64) error {
	if err := u.requireManager(ctx, callerID); err != nil {
		return err
	}
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err := u.groups.AddUser(ctx, groupName, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "group not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *GroupUsecase) RemoveMember(ctx context.Context, callerID int64, groupName string, userID int64) error {
	if err := u.requireManager(ctx, callerID); err != nil {
		return err
	}
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err := u.groups.RemoveUser(ctx, groupName, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "group not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
