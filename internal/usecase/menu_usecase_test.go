package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMenuFixture() (*usecase.MenuUsecase, *MenuItemRepoMock, *CategoryRepoMock, *GroupRepoMock) {
	menuRepo := new(MenuItemRepoMock)
	categoryRepo := new(CategoryRepoMock)
	groupRepo := new(GroupRepoMock)
	uc := usecase.NewMenuUsecase(menuRepo, categoryRepo, usecase.NewAccessPolicy(groupRepo))
	return uc, menuRepo, categoryRepo, groupRepo
}

func TestMenuWrites_ForbiddenForNonManagers(t *testing.T) {
	for _, tt := range []struct {
		name  string
		roles []string
	}{
		{"customer", nil},
		{"delivery crew", []string{model.GroupDeliveryCrew}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			uc, menuRepo, _, groupRepo := newMenuFixture()
			groupRepo.On("ListNamesByUserID", mock.Anything, int64(5)).Return(tt.roles, nil)

			in := usecase.SaveMenuItemInput{Title: "Pasta", Price: mustDecimal(t, "12.00"), CategoryID: 1}

			_, err := uc.Create(context.Background(), 5, in)
			he, ok := usecase.AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusForbidden, he.Status)

			_, err = uc.Update(context.Background(), 5, 1, in)
			he, ok = usecase.AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusForbidden, he.Status)

			err = uc.Delete(context.Background(), 5, 1)
			he, ok = usecase.AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusForbidden, he.Status)

			menuRepo.AssertNotCalled(t, "Create")
			menuRepo.AssertNotCalled(t, "Update")
			menuRepo.AssertNotCalled(t, "Delete")
		})
	}
}

func TestMenuCreate_ValidatesInput(t *testing.T) {
	uc, _, categoryRepo, groupRepo := newMenuFixture()
	groupRepo.On("ListNamesByUserID", mock.Anything, int64(9)).Return([]string{model.GroupManager}, nil)
	categoryRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Category{}, repo.ErrNotFound)

	tests := []struct {
		name string
		in   usecase.SaveMenuItemInput
		msg  string
	}{
		{"empty title", usecase.SaveMenuItemInput{Price: mustDecimal(t, "1.00"), CategoryID: 1}, "title is required"},
		{"zero price", usecase.SaveMenuItemInput{Title: "Pasta", CategoryID: 1}, "price must be greater than zero"},
		{"negative price", usecase.SaveMenuItemInput{Title: "Pasta", Price: mustDecimal(t, "-1.00"), CategoryID: 1}, "price must be greater than zero"},
		{"missing category", usecase.SaveMenuItemInput{Title: "Pasta", Price: mustDecimal(t, "1.00")}, "category_id is required"},
		{"unknown category", usecase.SaveMenuItemInput{Title: "Pasta", Price: mustDecimal(t, "1.00"), CategoryID: 42}, "category not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), 9, tt.in)
			he, ok := usecase.AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
			assert.Equal(t, tt.msg, he.Message)
		})
	}
}

func TestMenuCreate_Manager(t *testing.T) {
	uc, menuRepo, categoryRepo, groupRepo := newMenuFixture()
	groupRepo.On("ListNamesByUserID", mock.Anything, int64(9)).Return([]string{model.GroupManager}, nil)
	categoryRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Category{ID: 1, Slug: "mains"}, nil)

	menuRepo.On("Create", mock.Anything, mock.MatchedBy(func(m model.MenuItem) bool {
		return m.Title == "Pasta" && m.Price.Equal(mustDecimal(t, "12.00")) && m.CategoryID == 1
	})).Return(model.MenuItem{ID: 3, Title: "Pasta", Price: mustDecimal(t, "12.00"), CategoryID: 1}, nil)

	out, err := uc.Create(context.Background(), 9, usecase.SaveMenuItemInput{
		Title:      "Pasta",
		Price:      mustDecimal(t, "12.00"),
		CategoryID: 1,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.ID)
	menuRepo.AssertExpectations(t)
}

func TestMenuGet_NotFound(t *testing.T) {
	uc, menuRepo, _, _ := newMenuFixture()
	menuRepo.On("FindByID", mock.Anything, int64(99)).Return(model.MenuItem{}, repo.ErrNotFound)

	_, err := uc.Get(context.Background(), 99)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestMenuPatch_MergesOntoStoredItem(t *testing.T) {
	uc, menuRepo, categoryRepo, groupRepo := newMenuFixture()
	groupRepo.On("ListNamesByUserID", mock.Anything, int64(9)).Return([]string{model.GroupManager}, nil)

	stored := model.MenuItem{ID: 3, Title: "Pasta", Price: mustDecimal(t, "12.00"), CategoryID: 1}
	menuRepo.On("FindByID", mock.Anything, int64(3)).Return(stored, nil)
	categoryRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Category{ID: 1}, nil)

	newPrice := mustDecimal(t, "13.50")
	menuRepo.On("Update", mock.Anything, mock.MatchedBy(func(m model.MenuItem) bool {
		// only the price moves, everything else stays as stored
		return m.ID == 3 && m.Title == "Pasta" && m.Price.Equal(newPrice) && m.CategoryID == 1
	})).Return(nil)

	_, err := uc.Patch(context.Background(), 9, 3, usecase.PatchMenuItemInput{Price: &newPrice})

	assert.NoError(t, err)
	menuRepo.AssertExpectations(t)
}
