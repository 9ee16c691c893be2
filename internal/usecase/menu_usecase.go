package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type MenuUsecase struct {
	menuRepo     repo.MenuItemRepository
	categoryRepo repo.CategoryRepository
	policy       *AccessPolicy
}

func NewMenuUsecase(menuRepo repo.MenuItemRepository, categoryRepo repo.CategoryRepository, policy *AccessPolicy) *MenuUsecase {
	return &MenuUsecase{
		menuRepo:     menuRepo,
		categoryRepo: categoryRepo,
		policy:       policy,
	}
}

type ListMenuItemsInput struct {
	Page         int
	Limit        int
	Search       string
	CategorySlug string
	Featured     *bool
	MaxPrice     *decimal.Decimal
	Sort         string
}

type MenuItemListOutput struct {
	Items []model.MenuItem `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (u *MenuUsecase) List(ctx context.Context, in ListMenuItemsInput) (MenuItemListOutput, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = 20
	}
	if in.Page < 1 {
		return MenuItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return MenuItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	switch in.Sort {
	case "", "price_asc", "price_desc":
	default:
		return MenuItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.menuRepo.List(ctx, repo.MenuItemListQuery{
		Page:         in.Page,
		Limit:        in.Limit,
		Search:       strings.TrimSpace(in.Search),
		CategorySlug: strings.TrimSpace(in.CategorySlug),
		Featured:     in.Featured,
		MaxPrice:     in.MaxPrice,
		Sort:         in.Sort,
	})
	if err != nil {
		return MenuItemListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return MenuItemListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *MenuUsecase) Get(ctx context.Context, id int64) (model.MenuItem, error) {
	if id <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.menuRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

type SaveMenuItemInput struct {
	Title      string
	Price      decimal.Decimal
	Featured   bool
	CategoryID int64
}

func (u *MenuUsecase) requireManager(ctx context.Context, userID int64) error {
	roles, err := u.policy.RolesOf(ctx, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !roles.IsManager() {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}

func (u *MenuUsecase) validateSave(ctx context.Context, in SaveMenuItemInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if !in.Price.IsPositive() {
		return NewHTTPError(http.StatusBadRequest, "price must be greater than zero")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "category_id is required")
	}

	_, err := u.categoryRepo.FindByID(ctx, in.CategoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusBadRequest, "category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *MenuUsecase) Create(ctx context.Context, userID int64, in SaveMenuItemInput) (model.MenuItem, error) {
	if err := u.requireManager(ctx, userID); err != nil {
		return model.MenuItem{}, err
	}
	if err := u.validateSave(ctx, in); err != nil {
		return model.MenuItem{}, err
	}

	item, err := u.menuRepo.Create(ctx, model.MenuItem{
		Title:      strings.TrimSpace(in.Title),
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: in.CategoryID,
	})
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

func (u *MenuUsecase) Update(ctx context.Context, userID int64, id int64, in SaveMenuItemInput) (model.MenuItem, error) {
	if err := u.requireManager(ctx, userID); err != nil {
		return model.MenuItem{}, err
	}
	if id <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.validateSave(ctx, in); err != nil {
		return model.MenuItem{}, err
	}

	err := u.menuRepo.Update(ctx, model.MenuItem{
		ID:         id,
		Title:      strings.TrimSpace(in.Title),
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: in.CategoryID,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.Get(ctx, id)
}

type PatchMenuItemInput struct {
	Title      *string
	Price      *decimal.Decimal
	Featured   *bool
	CategoryID *int64
}

// Patch merges the provided fields onto the stored item, then runs the
// same validation a full update does.
func (u *MenuUsecase) Patch(ctx context.Context, userID int64, id int64, in PatchMenuItemInput) (model.MenuItem, error) {
	if err := u.requireManager(ctx, userID); err != nil {
		return model.MenuItem{}, err
	}
	if id <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	current, err := u.menuRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	merged := SaveMenuItemInput{
		Title:      current.Title,
		Price:      current.Price,
		Featured:   current.Featured,
		CategoryID: current.CategoryID,
	}
	if in.Title != nil {
		merged.Title = *in.Title
	}
	if in.Price != nil {
		merged.Price = *in.Price
	}
	if in.Featured != nil {
		merged.Featured = *in.Featured
	}
	if in.CategoryID != nil {
		merged.CategoryID = *in.CategoryID
	}

	if err := u.validateSave(ctx, merged); err != nil {
		return model.MenuItem{}, err
	}

	err = u.menuRepo.Update(ctx, model.MenuItem{
		ID:         id,
		Title:      strings.TrimSpace(merged.Title),
		Price:      merged.Price,
		Featured:   merged.Featured,
		CategoryID: merged.CategoryID,
	})
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.Get(ctx, id)
}

func (u *MenuUsecase) Delete(ctx context.Context, userID int64, id int64) error {
	if err := u.requireManager(ctx, userID); err != nil {
		return err
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.menuRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
