package controller

import (
	"skillswap_backend/internal/service"
	"skillswap_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
}

func NewSkillController(skillService *service.SkillService) *SkillController {
	return &SkillController{SkillService: skillService}
}

// swagger:model CreateSkillRequest
type CreateSkillRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListSkills godoc
// @Summary List catalog skills
// @Tags skills
// @Produce json
// @Security ApiKeyAuth
// @Param query query string false "Name contains"
// @Param limit query int false "Max results" default(50)
// @Success 200 {object} util.Response{data=[]model.Skill}
// @Router /api/skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	skills, err := c.SkillService.List(ctx.Request.Context(), ctx.Query("query"), queryInt(ctx, "limit", 0))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// CreateSkill godoc
// @Summary Get or create a catalog skill
// @Description Returns the skill with exactly this trimmed name, creating it if it does not exist
// @Tags skills
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateSkillRequest true "Skill name"
// @Success 200 {object} util.Response{data=model.Skill}
// @Success 201 {object} util.Response{data=model.Skill}
// @Router /api/skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	var req CreateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	skill, created, err := c.SkillService.GetOrCreate(ctx.Request.Context(), req.Name)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if created {
		util.Created(ctx, skill)
		return
	}
	util.Success(ctx, skill)
}

// SuggestSkills godoc
// @Summary AI skill suggestions
// @Description Up to five skills related to the query. Generator failures give an empty list
// @Tags skills
// @Produce json
// @Security ApiKeyAuth
// @Param query query string true "Seed skill"
// @Success 200 {object} util.Response{data=object}
// @Router /api/skills/suggest [get]
func (c *SkillController) SuggestSkills(ctx *gin.Context) {
	suggestions, err := c.SkillService.SuggestSkills(ctx.Request.Context(), ctx.Query("query"))
	resp := gin.H{"suggestions": suggestions}
	if err != nil {
		resp["apiError"] = err.Error()
	}
	util.Success(ctx, resp)
}
