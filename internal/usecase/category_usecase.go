package usecase

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	policy       *AccessPolicy
}

func NewCategoryUsecase(categoryRepo repo.CategoryRepository, policy *AccessPolicy) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo, policy: policy}
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	cats, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cats, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

type CreateCategoryInput struct {
	Slug  string
	Title string
}

// Create requires an authenticated caller; any signed-in user may add
// a category.
func (u *CategoryUsecase) Create(ctx context.Context, userID int64, in CreateCategoryInput) (model.Category, error) {
	if userID <= 0 {
		return model.Category{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	slug := strings.TrimSpace(in.Slug)
	title := strings.TrimSpace(in.Title)
	if slug == "" || title == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "slug and title are required")
	}
	if !slugPattern.MatchString(slug) {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "slug must be URL-safe")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{Slug: slug, Title: title})
	if errors.Is(err, repo.ErrConflict) {
		return model.Category{}, NewHTTPError(http.StatusConflict, "slug already exists")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// Delete is manager-only and refuses to remove a category that menu
// items still reference.
func (u *CategoryUsecase) Delete(ctx context.Context, userID int64, id int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	roles, err := u.policy.RolesOf(ctx, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !roles.IsManager() {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err = u.categoryRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrConflict) {
		return NewHTTPError(http.StatusConflict, "category is referenced by menu items")
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
