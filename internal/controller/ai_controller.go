package controller

import (
	"errors"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/service"
	"skillswap_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	Matchmaking *service.MatchmakingService
	Assistant   *service.AssistantService
}

func NewAIController(matchmaking *service.MatchmakingService, assistant *service.AssistantService) *AIController {
	return &AIController{
		Matchmaking: matchmaking,
		Assistant:   assistant,
	}
}

// swagger:model ChatRequest
type ChatRequest struct {
	Message string `json:"message"`
}

// Matches godoc
// @Summary AI matchmaker
// @Description Suggests swap partners among recently active public profiles. Generator failures answer 200 with an empty list and apiError set
// @Tags ai
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/ai/matches [get]
func (c *AIController) Matches(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	matches, err := c.Matchmaking.Matchmake(ctx.Request.Context(), claims.UserID)
	if err != nil && !errors.Is(err, util.ErrExternalService) {
		util.HandleServiceError(ctx, err)
		return
	}
	resp := softAIResponse{Result: matches}
	if err != nil {
		resp.Result = []model.MatchSuggestion{}
		resp.APIError = "Could not get AI suggestions at this time. " + err.Error()
	}
	util.Success(ctx, resp)
}

// Chat godoc
// @Summary Ask the SkillSwap helper
// @Description Always answers 200 with a reply; generator failures become an apology
// @Tags ai
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ChatRequest true "Question"
// @Success 200 {object} util.Response{data=object}
// @Router /api/ai/chat [post]
func (c *AIController) Chat(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	reply, err := c.Assistant.Chat(ctx.Request.Context(), claims.Username, req.Message)
	resp := gin.H{"reply": reply}
	if err != nil {
		resp["apiError"] = err.Error()
	}
	util.Success(ctx, resp)
}
