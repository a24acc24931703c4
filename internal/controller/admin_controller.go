package controller

import (
	"errors"

	"kvizmajstor_backend/internal/service"
	"kvizmajstor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController routes sit behind AdminMiddleware; role checks are
// already done by the time a handler runs.
type AdminController struct {
	UserService     *service.UserService
	CategoryService *service.CategoryService
}

func NewAdminController(userService *service.UserService, categoryService *service.CategoryService) *AdminController {
	return &AdminController{
		UserService:     userService,
		CategoryService: categoryService,
	}
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 403 {object} util.Response
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// ToggleCreator godoc
// @Summary Toggle a user's creator role
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/users/{id}/creator [put]
func (c *AdminController) ToggleCreator(ctx *gin.Context) {
	isCreator, err := c.UserService.ToggleCreator(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	message := "creator role revoked"
	if isCreator {
		message = "creator role granted"
	}
	util.Success(ctx, gin.H{"message": message, "isCreator": isCreator})
}

// swagger:model CategoryRequest
type CategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Icon  string `json:"icon" binding:"required"`
	Color string `json:"color" binding:"required"`
}

// CreateCategory godoc
// @Summary Create a category
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CategoryRequest true "Category payload"
// @Success 200 {object} util.Response{data=model.Category}
// @Failure 400 {object} util.Response "Name already exists"
// @Router /admin/categories [post]
func (c *AdminController) CreateCategory(ctx *gin.Context) {
	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.UnprocessableEntity(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.Create(req.Name, req.Icon, req.Color)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNameTaken) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, category)
}

// DeleteCategory godoc
// @Summary Delete an empty category
// @Description Refused while any quiz still references the category
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Category id"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Category not empty"
// @Failure 404 {object} util.Response
// @Router /admin/categories/{id} [delete]
func (c *AdminController) DeleteCategory(ctx *gin.Context) {
	err := c.CategoryService.Delete(ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCategoryNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrCategoryNotEmpty):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "category deleted"})
}
