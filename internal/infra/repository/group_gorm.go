package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GroupGormRepository struct {
	db *gorm.DB
}

func NewGroupGormRepository(db *gorm.DB) *GroupGormRepository {
	return &GroupGormRepository{db: db}
}

type userGroup struct {
	UserID  int64 `gorm:"primaryKey"`
	GroupID int64 `gorm:"primaryKey"`
}

func (userGroup) TableName() string { return "user_groups" }

func (r *GroupGormRepository) findByName(ctx context.Context, name string) (model.Group, error) {
	var g model.Group
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Group{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Group{}, err
	}
	return g, nil
}

func (r *GroupGormRepository) ListNamesByUserID(ctx context.Context, userID int64) ([]string, error) {
	var names []string

	err := r.db.WithContext(ctx).
		Table("groups").
		Joins("join user_groups on user_groups.group_id = groups.id").
		Where("user_groups.user_id = ?", userID).
		Pluck("groups.name", &names).Error
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (r *GroupGormRepository) ListUsers(ctx context.Context, groupName string) ([]model.User, error) {
	g, err := r.findByName(ctx, groupName)
	if err != nil {
		return nil, err
	}

	var users []model.User
	err = r.db.WithContext(ctx).
		Joins("join user_groups on user_groups.user_id = users.id").
		Where("user_groups.group_id = ?", g.ID).
		Order("users.id asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Re-adding an existing member is a no-op.
func (r *GroupGormRepository) AddUser(ctx context.Context, groupName string, userID int64) error {
	g, err := r.findByName(ctx, groupName)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&userGroup{UserID: userID, GroupID: g.ID}).Error
}

func (r *GroupGormRepository) RemoveUser(ctx context.Context, groupName string, userID int64) error {
	g, err := r.findByName(ctx, groupName)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userID, g.ID).
		Delete(&userGroup{}).Error
}
