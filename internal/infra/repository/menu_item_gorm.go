package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type MenuItemGormRepository struct {
	db *gorm.DB
}

func NewMenuItemGormRepository(db *gorm.DB) *MenuItemGormRepository {
	return &MenuItemGormRepository{db: db}
}

func (r *MenuItemGormRepository) List(ctx context.Context, q repo.MenuItemListQuery) ([]model.MenuItem, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	base := r.db.WithContext(ctx).Model(&model.MenuItem{})

	if q.Search != "" {
		base = base.Where("menu_items.title ILIKE ?", "%"+q.Search+"%")
	}
	if q.CategorySlug != "" {
		base = base.Joins("join categories on categories.id = menu_items.category_id").
			Where("categories.slug = ?", q.CategorySlug)
	}
	if q.Featured != nil {
		base = base.Where("menu_items.featured = ?", *q.Featured)
	}
	if q.MaxPrice != nil {
		base = base.Where("menu_items.price <= ?", *q.MaxPrice)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return []model.MenuItem{}, 0, err
	}

	switch q.Sort {
	case "price_asc":
		base = base.Order("menu_items.price asc")
	case "price_desc":
		base = base.Order("menu_items.price desc")
	default:
		base = base.Order("menu_items.id asc")
	}

	var items []model.MenuItem
	offset := (q.Page - 1) * q.Limit
	if err := base.Preload("Category").
		Limit(q.Limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		return []model.MenuItem{}, 0, err
	}

	return items, total, nil
}

func (r *MenuItemGormRepository) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MenuItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.MenuItem{}, err
	}
	return m, nil
}

func (r *MenuItemGormRepository) Create(ctx context.Context, m model.MenuItem) (model.MenuItem, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.MenuItem{}, err
	}
	return r.FindByID(ctx, m.ID)
}

func (r *MenuItemGormRepository) Update(ctx context.Context, m model.MenuItem) error {
	res := r.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"title":       m.Title,
			"price":       m.Price,
			"featured":    m.Featured,
			"category_id": m.CategoryID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MenuItemGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.MenuItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
