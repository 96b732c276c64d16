package controller

import (
	"skillswap_backend/internal/service"
	"skillswap_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// swagger:model AddSkillRequest
type AddSkillRequest struct {
	SkillID uint   `json:"skillId"`
	Name    string `json:"name"`
}

// GetProfile godoc
// @Summary Own profile
// @Description Returns the caller's profile with completeness score, badges and rating
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.OwnProfile}
// @Router /api/profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	profile, err := c.ProfileService.GetOwn(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProfileUpdate true "Fields to change"
// @Success 200 {object} util.Response{data=model.Profile}
// @Failure 400 {object} util.Response
// @Router /api/profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	profile, err := c.ProfileService.Update(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// AddSkill godoc
// @Summary Offer a skill
// @Description Adds a catalog skill by id, or by name creating it if needed, to the caller's offered list
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AddSkillRequest true "Skill id or name"
// @Success 200 {object} util.Response{data=model.UserSkill}
// @Router /api/profile/skills [post]
func (c *ProfileController) AddSkill(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req AddSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	us, err := c.ProfileService.AddOfferedSkill(ctx.Request.Context(), claims.UserID, req.SkillID, req.Name)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, us)
}

// RemoveSkill godoc
// @Summary Stop offering a skill
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Param skillId path int true "Skill ID"
// @Success 200 {object} util.Response
// @Router /api/profile/skills/{skillId} [delete]
func (c *ProfileController) RemoveSkill(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	skillID, ok := idParam(ctx, "skillId")
	if !ok {
		return
	}
	if err := c.ProfileService.RemoveOfferedSkill(ctx.Request.Context(), claims.UserID, skillID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadPhoto godoc
// @Summary Upload profile photo
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param photo formData file true "Image file"
// @Success 200 {object} util.Response{data=object}
// @Router /api/profile/photo [post]
func (c *ProfileController) UploadPhoto(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	header, err := ctx.FormFile("photo")
	if err != nil {
		util.BadRequest(ctx, "photo file is required")
		return
	}
	url, err := c.ProfileService.UploadPhoto(ctx.Request.Context(), claims.UserID, header)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"photoUrl": url})
}
