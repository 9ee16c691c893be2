package usecase

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// Roles is the set of staff groups an identity belongs to, resolved
// once per request from the group directory. Ordinary customers have
// an empty set.
type Roles []string

func (r Roles) Has(name string) bool {
	for _, n := range r {
		if n == name {
			return true
		}
	}
	return false
}

func (r Roles) IsManager() bool      { return r.Has(model.GroupManager) }
func (r Roles) IsDeliveryCrew() bool { return r.Has(model.GroupDeliveryCrew) }

// AccessPolicy gates order reads and writes: owner, Manager, or the
// assigned delivery crew member. All role checks in the usecases go
// through here instead of ad-hoc string comparisons.
type AccessPolicy struct {
	groups repo.GroupRepository
}

func NewAccessPolicy(groups repo.GroupRepository) *AccessPolicy {
	return &AccessPolicy{groups: groups}
}

func (p *AccessPolicy) RolesOf(ctx context.Context, userID int64) (Roles, error) {
	names, err := p.groups.ListNamesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Roles(names), nil
}

func IsOwner(userID int64, o model.Order) bool {
	return o.UserID == userID
}

func IsAssignedCrew(userID int64, o model.Order) bool {
	return o.DeliveryCrewID != nil && *o.DeliveryCrewID == userID
}

// CanReadOrder: owner, Manager, or the crew member the order is
// assigned to.
func CanReadOrder(userID int64, roles Roles, o model.Order) bool {
	return IsOwner(userID, o) || roles.IsManager() || IsAssignedCrew(userID, o)
}
