package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Message string `json:"message"`
}

// GroupHandler serves the role administration surface under /groups.
type GroupHandler struct {
	uc     *usecase.GroupUsecase
	groups repository.GroupRepository
}

// DI
func NewGroupHandler(uc *usecase.GroupUsecase, groups repository.GroupRepository) *GroupHandler {
	return &GroupHandler{uc: uc, groups: groups}
}

type GroupMemberRequest struct {
	UserID int64 `json:"user_id"`
}

// All group routes are manager only.
func (h *GroupHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/groups")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.RequireRole(h.groups, model.GroupManager))

	g.GET("/manager/users", h.listMembers(model.GroupManager))
	g.POST("/manager/users", h.addMember(model.GroupManager))
	g.DELETE("/manager/users/:id", h.removeMember(model.GroupManager))

	g.GET("/delivery-crew/users", h.listMembers(model.GroupDeliveryCrew))
	g.POST("/delivery-crew/users", h.addMember(model.GroupDeliveryCrew))
	g.DELETE("/delivery-crew/users/:id", h.removeMember(model.GroupDeliveryCrew))
}

func (h *GroupHandler) listMembers(groupName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		callerID, ok := getUserIDFromContext(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: "unauthorized"})
		}

		out, err := h.uc.ListMembers(c.Request().Context(), callerID, groupName)
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(http.StatusOK, out)
	}
}

func (h *GroupHandler) addMember(groupName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		callerID, ok := getUserIDFromContext(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: "unauthorized"})
		}

		var req GroupMemberRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "invalid body"})
		}

		if err := h.uc.AddMember(c.Request().Context(), callerID, groupName, req.UserID); err != nil {
			return writeError(c, err)
		}

		return c.JSON(http.StatusCreated, SuccessResponse{Message: "user added to group"})
	}
}

func (h *GroupHandler) removeMember(groupName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		callerID, ok := getUserIDFromContext(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: "unauthorized"})
		}

		userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "invalid id"})
		}

		if err := h.uc.RemoveMember(c.Request().Context(), callerID, groupName, userID); err != nil {
			return writeError(c, err)
		}

		return c.JSON(http.StatusOK, SuccessResponse{Message: "user removed from group"})
	}
}
