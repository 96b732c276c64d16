package controller

import (
	"skillswap_backend/internal/service"
	"skillswap_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	ProfileService *service.ProfileService
}

func NewUserController(profileService *service.ProfileService) *UserController {
	return &UserController{ProfileService: profileService}
}

// Browse godoc
// @Summary Browse users
// @Description Lists other users' public profiles, optionally filtered by offered skill and location
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "Offered skill name contains"
// @Param location query string false "Location contains"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/users [get]
func (c *UserController) Browse(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	q := service.BrowseQuery{
		Skill:    ctx.Query("q"),
		Location: ctx.Query("location"),
		Page:     queryInt(ctx, "page", 1),
		PageSize: queryInt(ctx, "limit", 20),
	}
	if q.Page < 1 {
		q.Page = 1
	}
	profiles, total, err := c.ProfileService.Browse(ctx.Request.Context(), claims.UserID, q)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  profiles,
		Total: total,
		Page:  q.Page,
		Limit: q.PageSize,
	})
}

// PublicProfile godoc
// @Summary View a user's profile
// @Description Public profile with the three most recent reviews and whether a swap already links the caller and the user
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=service.PublicProfile}
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [get]
func (c *UserController) PublicProfile(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	userID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	view, err := c.ProfileService.Public(ctx.Request.Context(), claims.UserID, userID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
